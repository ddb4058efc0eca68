package utils

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// Response colors.
const (
	ColorSuccess = 0x2ecc71
	ColorFailure = 0xe74c3c
	ColorClient  = 0x5865f2
)

// SuccessEmbed builds the uniform success notification.
func SuccessEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: "✅ Success", Description: message, Color: ColorSuccess}
}

// FailureEmbed builds the uniform failure notification.
func FailureEmbed(message string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: "❌ Failure", Description: message, Color: ColorFailure}
}

// ClientEmbed builds an informational notification.
func ClientEmbed(title, message string) *discordgo.MessageEmbed {
	if title == "" {
		title = "Tickets"
	}
	return &discordgo.MessageEmbed{Title: title, Description: message, Color: ColorClient}
}

// Success answers the interaction with an ephemeral success embed.
func Success(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, SuccessEmbed(message), true)
}

// Failure answers the interaction with an ephemeral failure embed.
func Failure(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respond(s, i, FailureEmbed(message), true)
}

// Client answers the interaction with an ephemeral informational embed.
func Client(s *discordgo.Session, i *discordgo.InteractionCreate, title, message string) {
	respond(s, i, ClientEmbed(title, message), true)
}

// Defer acknowledges the interaction so the answer can be sent later with Edit.
func Defer(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

// Edit replaces the deferred answer with embed.
func Edit(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	embeds := []*discordgo.MessageEmbed{embed}
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds}); err != nil {
		log.Printf("Error editing interaction response: %v", err)
	}
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Printf("Error responding to interaction: %v", err)
	}
}
