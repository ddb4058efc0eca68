package models

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// DefaultPanelName is used by every command when no panel option is given.
const DefaultPanelName = "default"

// Defaults applied when a panel or button leaves a display field unset.
const (
	DefaultPanelTitle       = "Support Tickets"
	DefaultPanelDescription = "Click a button below to create a support ticket"
	DefaultButtonLabel      = "Create Ticket"
	DefaultButtonEmoji      = "🎫"
	DefaultTicketTitle      = "Support Ticket"
	DefaultTicketMessage    = "Support will be with you shortly."
	DefaultTicketColor      = "green"
)

// Panel is one named ticket panel of a guild.
type Panel struct {
	ID              int64   `db:"id"`
	GuildID         string  `db:"guild_id"`
	Name            string  `db:"name"`
	CategoryID      *string `db:"category_id"`
	LogChannelID    *string `db:"log_channel_id"`
	Title           *string `db:"panel_title"`
	Description     *string `db:"panel_description"`
	PostedChannelID *string `db:"channel_id"`
	PostedMessageID *string `db:"message_id"`
}

// DisplayTitle returns the configured title or the default one.
func (p *Panel) DisplayTitle() string {
	if p.Title != nil && *p.Title != "" {
		return *p.Title
	}
	return DefaultPanelTitle
}

// DisplayDescription returns the configured description or the default one.
func (p *Panel) DisplayDescription() string {
	if p.Description != nil && *p.Description != "" {
		return *p.Description
	}
	return DefaultPanelDescription
}

// PanelSettings carries the optional fields of a panel upsert. A nil field
// keeps the stored value.
type PanelSettings struct {
	CategoryID   *string
	LogChannelID *string
	Title        *string
	Description  *string
}

// Empty reports whether no field was supplied.
func (s PanelSettings) Empty() bool {
	return s.CategoryID == nil && s.LogChannelID == nil && s.Title == nil && s.Description == nil
}

// ButtonStyle is the visual style stored for a panel button.
type ButtonStyle string

const (
	StylePrimary   ButtonStyle = "primary"
	StyleSecondary ButtonStyle = "secondary"
	StyleSuccess   ButtonStyle = "success"
	StyleDanger    ButtonStyle = "danger"
	StyleLink      ButtonStyle = "link"
	StylePremium   ButtonStyle = "premium"
)

// ButtonStyles lists every accepted style in display order.
var ButtonStyles = []ButtonStyle{StylePrimary, StyleSecondary, StyleSuccess, StyleDanger, StyleLink, StylePremium}

// ParseButtonStyle maps a style name to a ButtonStyle, defaulting to primary.
func ParseButtonStyle(s string) ButtonStyle {
	name := ButtonStyle(strings.ToLower(strings.TrimSpace(s)))
	for _, style := range ButtonStyles {
		if style == name {
			return style
		}
	}
	return StylePrimary
}

// Discord returns the discordgo style for the button. Link and premium
// buttons cannot carry a custom ID, so they render as primary.
func (s ButtonStyle) Discord() discordgo.ButtonStyle {
	switch s {
	case StyleSecondary:
		return discordgo.SecondaryButton
	case StyleSuccess:
		return discordgo.SuccessButton
	case StyleDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}

// Button is one configured button of a panel.
type Button struct {
	ID            int64        `db:"id"`
	PanelID       int64        `db:"panel_id"`
	Position      int          `db:"button_position"`
	Label         *string      `db:"button_label"`
	TicketTitle   *string      `db:"ticket_title"`
	TicketMessage *string      `db:"ticket_message"`
	Emoji         *string      `db:"button_emoji"`
	Style         *ButtonStyle `db:"button_style"`
	TicketColor   *string      `db:"ticket_color"`
}

// ButtonSettings carries the optional fields of a button upsert. Roles is
// the raw comma-separated role list; nil leaves bindings untouched and an
// empty string clears them.
type ButtonSettings struct {
	Label         *string
	TicketTitle   *string
	TicketMessage *string
	Emoji         *string
	Style         *ButtonStyle
	TicketColor   *string
	Roles         *string
}

// Empty reports whether no field was supplied.
func (s ButtonSettings) Empty() bool {
	return s.Label == nil && s.TicketTitle == nil && s.TicketMessage == nil &&
		s.Emoji == nil && s.Style == nil && s.TicketColor == nil && s.Roles == nil
}

// ButtonSpec is a fully resolved button as rendered on a panel.
type ButtonSpec struct {
	ButtonID      *int64
	Position      int
	Label         string
	Emoji         string
	Style         ButtonStyle
	TicketTitle   string
	TicketMessage string
	TicketColor   string
}

// DefaultButtonSpec is the button synthesized for panels without buttons.
func DefaultButtonSpec() ButtonSpec {
	return ButtonSpec{
		Position:      0,
		Label:         DefaultButtonLabel,
		Emoji:         DefaultButtonEmoji,
		Style:         StylePrimary,
		TicketTitle:   DefaultTicketTitle,
		TicketMessage: DefaultTicketMessage,
		TicketColor:   DefaultTicketColor,
	}
}

// Spec resolves the stored button against the defaults.
func (b *Button) Spec() ButtonSpec {
	spec := DefaultButtonSpec()
	id := b.ID
	spec.ButtonID = &id
	spec.Position = b.Position
	if b.Label != nil && *b.Label != "" {
		spec.Label = *b.Label
	}
	if b.Emoji != nil && *b.Emoji != "" {
		spec.Emoji = *b.Emoji
	}
	if b.Style != nil {
		spec.Style = ParseButtonStyle(string(*b.Style))
	}
	if b.TicketTitle != nil && *b.TicketTitle != "" {
		spec.TicketTitle = *b.TicketTitle
	}
	if b.TicketMessage != nil && *b.TicketMessage != "" {
		spec.TicketMessage = *b.TicketMessage
	}
	if b.TicketColor != nil && *b.TicketColor != "" {
		spec.TicketColor = *b.TicketColor
	}
	return spec
}
