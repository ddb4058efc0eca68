package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"

	"discord-tickets/bot"
	"discord-tickets/tickets"
	"discord-tickets/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleComponent routes button clicks to the registered ticket handlers.
func HandleComponent(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID
	if !b.Registry.Handles(customID) {
		return
	}
	if customID == tickets.CloseButtonID {
		HandleClose(b, s, i)
		return
	}
	HandleOpen(b, s, i, customID)
}

// HandleOpen opens a ticket for the member who clicked a panel button.
func HandleOpen(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	if err := utils.Defer(s, i, true); err != nil {
		log.Printf("Error deferring interaction: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	view, spec, err := b.Registry.Lookup(ctx, customID)
	if err != nil {
		failDeferred(s, i, "open", failureMessage(err))
		return
	}

	ticket, err := b.Lifecycle.Open(ctx, tickets.OpenRequest{
		GuildID: i.GuildID,
		UserID:  memberID(i),
		PanelID: view.PanelID,
		Button:  spec,
	})
	if err != nil {
		failDeferred(s, i, "open", failureMessage(err))
		return
	}
	utils.Edit(s, i, utils.SuccessEmbed(fmt.Sprintf("Ticket created! Please check <#%s>", ticket.ChannelID)))
}

// HandleClose closes the ticket of the interaction's channel and deletes the
// channel after the close delay.
func HandleClose(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := utils.Defer(s, i, false); err != nil {
		log.Printf("Error deferring interaction: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	req := tickets.CloseRequest{
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Actor:     actorOf(i),
	}
	if ch, err := s.State.Channel(i.ChannelID); err == nil {
		req.ChannelName = ch.Name
	}

	result, err := b.Lifecycle.Close(ctx, req)
	notice, remove := closeNotice(err)
	if !remove {
		failDeferred(s, i, "close", notice)
		return
	}

	utils.Edit(s, i, utils.ClientEmbed("Ticket Closed", notice))
	if err != nil {
		utils.Warn("Tickets", "Close", fmt.Sprintf("Ticket <#%s> was already closed, <@%s> removes its leftover channel", i.ChannelID, req.Actor.UserID))
	} else {
		utils.Info("Tickets", "Close", fmt.Sprintf("Ticket <#%s> of <@%s> closed by <@%s> (transcript sent: %t, threads locked: %d)",
			i.ChannelID, result.Ticket.UserID, req.Actor.UserID, result.TranscriptSent, result.ThreadsLocked))
	}

	if err := b.Lifecycle.DeleteAfterDelay(ctx, i.ChannelID); err != nil {
		utils.Error("Tickets", "Close", err.Error())
	}
}

// closeNotice maps the outcome of a close onto the message shown in the
// channel and whether the channel is deleted afterwards. An already closed
// ticket reaches here only for an authorized actor, so its channel is removed.
func closeNotice(err error) (notice string, remove bool) {
	switch {
	case err == nil:
		return "Closing ticket in 5 seconds...", true
	case errors.Is(err, tickets.ErrAlreadyClosed):
		return "This ticket is already closed. Deleting the channel in 5 seconds...", true
	case errors.Is(err, tickets.ErrNotFound):
		return "This channel is not a ticket.", false
	default:
		return failureMessage(err), false
	}
}

func actorOf(i *discordgo.InteractionCreate) tickets.Actor {
	actor := tickets.Actor{UserID: memberID(i)}
	if i.Member != nil {
		actor.RoleIDs = i.Member.Roles
		actor.Admin = utils.IsAdmin(i.Member)
	}
	return actor
}
