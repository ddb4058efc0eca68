package handlers

import (
	"context"
	"log"

	"discord-tickets/bot"
	"discord-tickets/command"

	"github.com/bwmarrin/discordgo"
)

// maxChoices is the number of autocomplete choices Discord accepts.
const maxChoices = 25

// HandleAutocomplete handles all autocomplete interactions.
func HandleAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if data.Name != command.Name {
		return
	}
	_, opts := subcommand(data)
	if opt, ok := opts["panel"]; ok && opt.Focused {
		handlePanelAutocomplete(b, s, i, opt.StringValue())
	}
}

func handlePanelAutocomplete(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, prefix string) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	names, err := b.Manager.PanelNames(ctx, i.GuildID, prefix)
	if err != nil {
		log.Printf("Error loading panel names for autocomplete: %v", err)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: panelChoices(names),
		},
	})
	if err != nil {
		log.Printf("Error responding to autocomplete interaction: %v", err)
	}
}

func panelChoices(names []string) []*discordgo.ApplicationCommandOptionChoice {
	if len(names) > maxChoices {
		names = names[:maxChoices]
	}
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(names))
	for _, name := range names {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  name,
			Value: name,
		})
	}
	return choices
}
