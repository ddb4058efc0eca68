package handlers

import (
	"strings"

	"discord-tickets/models"

	"github.com/bwmarrin/discordgo"
)

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// str returns the trimmed string option, or nil when it was not supplied.
func (m optionMap) str(name string) *string {
	opt, ok := m[name]
	if !ok {
		return nil
	}
	v := strings.TrimSpace(opt.StringValue())
	return &v
}

// channel returns the channel option's ID, or nil when it was not supplied.
func (m optionMap) channel(name string) *string {
	opt, ok := m[name]
	if !ok {
		return nil
	}
	id := opt.ChannelValue(nil).ID
	return &id
}

func (m optionMap) panel() string {
	if v := m.str("panel"); v != nil {
		return *v
	}
	return ""
}

func (m optionMap) position() int {
	if opt, ok := m["position"]; ok {
		return int(opt.IntValue())
	}
	return 0
}

func panelSettings(m optionMap) models.PanelSettings {
	return models.PanelSettings{
		CategoryID:   m.channel("category"),
		LogChannelID: m.channel("log_channel"),
		Title:        m.str("panel_title"),
		Description:  m.str("panel_description"),
	}
}

func buttonSettings(m optionMap) models.ButtonSettings {
	s := models.ButtonSettings{
		Label:         m.str("button_label"),
		TicketTitle:   m.str("ticket_title"),
		TicketMessage: m.str("ticket_message"),
		Emoji:         m.str("button_emoji"),
		TicketColor:   m.str("ticket_color"),
		Roles:         m.str("support_roles"),
	}
	if v := m.str("button_style"); v != nil {
		style := models.ButtonStyle(*v)
		s.Style = &style
	}
	return s
}

// subcommand returns the invoked /tickets subcommand and its options.
func subcommand(data discordgo.ApplicationCommandInteractionData) (string, optionMap) {
	if len(data.Options) == 0 {
		return "", optionMap{}
	}
	sub := data.Options[0]
	return sub.Name, newOptionMap(sub.Options)
}
