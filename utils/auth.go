package utils

import (
	"github.com/bwmarrin/discordgo"
)

// IsAdmin checks if the member has the administrator permission in the interaction's channel.
func IsAdmin(member *discordgo.Member) bool {
	if member == nil {
		return false
	}
	return member.Permissions&discordgo.PermissionAdministrator != 0
}

// HasPermission checks if the member holds perm. Administrators hold every permission.
func HasPermission(member *discordgo.Member, perm int64) bool {
	if member == nil {
		return false
	}
	return IsAdmin(member) || member.Permissions&perm == perm
}

// CheckPermission checks the interaction's member against the required permission bit.
// Interactions outside a guild never pass.
func CheckPermission(i *discordgo.InteractionCreate, requiredPermission int64) bool {
	if i.GuildID == "" || i.Member == nil {
		return false
	}
	if requiredPermission == 0 {
		return true
	}
	return HasPermission(i.Member, requiredPermission)
}
