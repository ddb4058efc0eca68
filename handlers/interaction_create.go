package handlers

import (
	"discord-tickets/bot"
	"discord-tickets/monitoring"
	"discord-tickets/tickets"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus"
)

// InteractionCreate handles slash command, autocomplete and button interactions.
func InteractionCreate(b *bot.Bot) func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		kind, name := interactionLabels(i)
		monitoring.TotalDiscordEvents.WithLabelValues(kind, name).Inc()
		timer := prometheus.NewTimer(monitoring.DiscordCommandDuration.WithLabelValues(kind, name))
		defer timer.ObserveDuration()

		switch i.Type {
		case discordgo.InteractionApplicationCommand:
			CommandDispatcher(b, s, i)
		case discordgo.InteractionApplicationCommandAutocomplete:
			HandleAutocomplete(b, s, i)
		case discordgo.InteractionMessageComponent:
			HandleComponent(b, s, i)
		}
	}
}

// interactionLabels returns the metric labels of an interaction. Panel
// buttons share one label so the label set stays bounded.
func interactionLabels(i *discordgo.InteractionCreate) (kind, name string) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
		data := i.ApplicationCommandData()
		sub, _ := subcommand(data)
		kind = "command"
		if i.Type == discordgo.InteractionApplicationCommandAutocomplete {
			kind = "autocomplete"
		}
		return kind, data.Name + " " + sub
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == tickets.CloseButtonID {
			return "component", "close"
		}
		return "component", "open"
	default:
		return "other", i.Type.String()
	}
}
