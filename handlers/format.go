package handlers

import (
	"fmt"
	"strings"
	"time"

	"discord-tickets/models"
	"discord-tickets/tickets"

	"github.com/dustin/go-humanize"
)

// maxListed keeps listings within the embed description limit.
const maxListed = 40

func channelOrUnset(id *string, unset string) string {
	if id == nil || *id == "" {
		return unset
	}
	return "<#" + *id + ">"
}

func valueOrDefault(v *string) string {
	if v == nil || *v == "" {
		return "Default"
	}
	return *v
}

func describePanel(p *models.Panel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Panel: %s\n", p.Name)
	fmt.Fprintf(&b, "Category: %s\n", channelOrUnset(p.CategoryID, "No category set"))
	fmt.Fprintf(&b, "Log Channel: %s\n", channelOrUnset(p.LogChannelID, "No log channel set"))
	fmt.Fprintf(&b, "Panel Title: %s\n", valueOrDefault(p.Title))
	fmt.Fprintf(&b, "Panel Description: %s", valueOrDefault(p.Description))
	if p.PostedChannelID != nil && p.PostedMessageID != nil {
		fmt.Fprintf(&b, "\nPosted: https://discord.com/channels/%s/%s/%s", p.GuildID, *p.PostedChannelID, *p.PostedMessageID)
	}
	return b.String()
}

func roleMentions(roles []string) string {
	if len(roles) == 0 {
		return "None (administrators only)"
	}
	mentions := make([]string, len(roles))
	for i, r := range roles {
		mentions[i] = "<@&" + r + ">"
	}
	return strings.Join(mentions, ", ")
}

func describeButton(cfg *tickets.ButtonConfig) string {
	btn := cfg.Button
	style := "Default"
	if btn.Style != nil {
		style = string(*btn.Style)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**Button %d Configuration:**\n", btn.Position)
	fmt.Fprintf(&b, "Label: %s\n", valueOrDefault(btn.Label))
	fmt.Fprintf(&b, "Ticket Title: %s\n", valueOrDefault(btn.TicketTitle))
	fmt.Fprintf(&b, "Ticket Message: %s\n", valueOrDefault(btn.TicketMessage))
	fmt.Fprintf(&b, "Emoji: %s\n", valueOrDefault(btn.Emoji))
	fmt.Fprintf(&b, "Style: %s\n", style)
	fmt.Fprintf(&b, "Ticket Color: %s\n", valueOrDefault(btn.TicketColor))
	fmt.Fprintf(&b, "Support Roles: %s", roleMentions(cfg.Roles))
	return b.String()
}

func describePanels(panels []tickets.PanelSummary) string {
	if len(panels) == 0 {
		return "No panels configured. Use `/tickets settings` to create one."
	}
	var b strings.Builder
	for _, s := range panels {
		where := "not posted"
		if s.Panel.PostedChannelID != nil {
			where = "posted in <#" + *s.Panel.PostedChannelID + ">"
		}
		fmt.Fprintf(&b, "• **%s**: %d button(s), %s\n", s.Panel.Name, s.Buttons, where)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func describeTickets(open []*models.Ticket, now time.Time) string {
	if len(open) == 0 {
		return "No open tickets."
	}
	shown := open
	if len(shown) > maxListed {
		shown = shown[:maxListed]
	}
	var b strings.Builder
	for _, t := range shown {
		fmt.Fprintf(&b, "• <#%s> by <@%s>, opened %s\n", t.ChannelID, t.UserID, humanize.RelTime(t.CreatedAt, now, "ago", "from now"))
	}
	if rest := len(open) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "…and %d more\n", rest)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
