package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"discord-tickets/bot"
	"discord-tickets/utils"

	"github.com/bwmarrin/discordgo"
)

// ChannelDeleteHandler closes the ticket of a channel removed outside the close flow.
func ChannelDeleteHandler(b *bot.Bot) func(s *discordgo.Session, c *discordgo.ChannelDelete) {
	return func(s *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.Channel == nil || c.Type != discordgo.ChannelTypeGuildText {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		closed, err := b.Lifecycle.MarkClosed(ctx, c.ID)
		if err != nil {
			log.Printf("Error marking ticket %s closed: %v", c.ID, err)
			return
		}
		if closed {
			utils.Info("Tickets", "ChannelDelete", fmt.Sprintf("Ticket channel #%s was deleted, ticket marked closed", c.Name))
		}
	}
}
