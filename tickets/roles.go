package tickets

import (
	"strconv"
	"strings"
)

// ParseRoleList parses a comma-separated list of role IDs or <@&ID> mentions.
// Malformed tokens are skipped; duplicates are dropped.
func ParseRoleList(raw string) []string {
	roles := make([]string, 0)
	seen := make(map[string]bool)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if strings.HasPrefix(token, "<@&") && strings.HasSuffix(token, ">") {
			token = token[3 : len(token)-1]
		}
		if _, err := strconv.ParseUint(token, 10, 64); err != nil {
			continue
		}
		if seen[token] {
			continue
		}
		seen[token] = true
		roles = append(roles, token)
	}
	return roles
}

func hasAnyRole(held, allowed []string) bool {
	for _, a := range allowed {
		for _, h := range held {
			if a == h {
				return true
			}
		}
	}
	return false
}
