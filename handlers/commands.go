package handlers

import (
	"discord-tickets/bot"
	"discord-tickets/command"
	"discord-tickets/monitoring"
	"discord-tickets/utils"

	"github.com/bwmarrin/discordgo"
)

// CommandDispatcher is the central handler for all application command interactions.
// It performs permission checks and then dispatches the interaction to the appropriate handler.
func CommandDispatcher(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != command.Name {
		utils.Failure(s, i, "Internal error: unknown command.")
		return
	}

	sub, opts := subcommand(data)
	required, ok := command.RequiredPermissions[sub]
	if !ok {
		utils.Failure(s, i, "Internal error: unknown command.")
		return
	}
	if !utils.CheckPermission(i, required) {
		monitoring.FailedInteractions.WithLabelValues(sub).Inc()
		utils.Failure(s, i, "🚫 You do not have permission to run this command.")
		return
	}

	switch sub {
	case command.SubSettings:
		HandleSettings(b, s, i, opts)
	case command.SubButton:
		HandleButton(b, s, i, opts)
	case command.SubDeleteButton:
		HandleDeleteButton(b, s, i, opts)
	case command.SubDeletePanel:
		HandleDeletePanel(b, s, i, opts)
	case command.SubHere:
		HandleHere(b, s, i, opts)
	case command.SubClose:
		HandleClose(b, s, i)
	case command.SubList:
		HandleList(b, s, i)
	case command.SubPanels:
		HandlePanels(b, s, i)
	}
}
