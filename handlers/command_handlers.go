package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"discord-tickets/bot"
	"discord-tickets/command"
	"discord-tickets/monitoring"
	"discord-tickets/tickets"
	"discord-tickets/utils"

	"github.com/bwmarrin/discordgo"
)

const commandTimeout = 30 * time.Second

// fail answers the interaction with an ephemeral failure message.
func fail(s *discordgo.Session, i *discordgo.InteractionCreate, name, message string) {
	monitoring.FailedInteractions.WithLabelValues(name).Inc()
	utils.Failure(s, i, message)
}

// failDeferred replaces a deferred answer with the failure text.
func failDeferred(s *discordgo.Session, i *discordgo.InteractionCreate, name, message string) {
	monitoring.FailedInteractions.WithLabelValues(name).Inc()
	utils.Edit(s, i, utils.FailureEmbed(message))
}

// HandleSettings handles /tickets settings.
func HandleSettings(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	panel, changed, err := b.Manager.UpsertPanel(ctx, i.GuildID, opts.panel(), panelSettings(opts))
	switch {
	case errors.Is(err, tickets.ErrNotConfigured):
		utils.Client(s, i, "", "No configuration found. Please provide parameters to set up.")
		return
	case err != nil:
		fail(s, i, command.SubSettings, failureMessage(err))
		return
	}

	if !changed {
		utils.Client(s, i, "Ticket System Configuration", describePanel(panel))
		return
	}
	utils.Info("Tickets", "Settings", fmt.Sprintf("<@%s> configured panel **%s**", memberID(i), panel.Name))
	utils.Success(s, i, fmt.Sprintf("Ticket panel **%s** configured successfully!", panel.Name))
}

// HandleButton handles /tickets button.
func HandleButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	position := opts.position()
	cfg, changed, err := b.Manager.UpsertButton(ctx, i.GuildID, opts.panel(), position, buttonSettings(opts))
	switch {
	case errors.Is(err, tickets.ErrNotConfigured):
		fail(s, i, command.SubButton, "Please configure the ticket system first using `/tickets settings`")
		return
	case errors.Is(err, tickets.ErrNotFound):
		utils.Client(s, i, "", fmt.Sprintf("No configuration found for button %d. Please provide parameters to set it up.", position))
		return
	case err != nil:
		fail(s, i, command.SubButton, failureMessage(err))
		return
	}

	if !changed {
		utils.Client(s, i, fmt.Sprintf("Ticket Button %d Configuration", position), describeButton(cfg))
		return
	}
	utils.Success(s, i, fmt.Sprintf("Button %d configured successfully!", position))
}

// HandleDeleteButton handles /tickets delete_button.
func HandleDeleteButton(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	position := opts.position()
	err := b.Manager.DeleteButton(ctx, i.GuildID, opts.panel(), position)
	switch {
	case errors.Is(err, tickets.ErrNotFound):
		fail(s, i, command.SubDeleteButton, fmt.Sprintf("No button found at position %d to delete.", position))
		return
	case err != nil:
		fail(s, i, command.SubDeleteButton, failureMessage(err))
		return
	}
	utils.Success(s, i, fmt.Sprintf("Button %d deleted successfully!", position))
}

// HandleDeletePanel handles /tickets delete_panel.
func HandleDeletePanel(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	name := tickets.PanelName(opts.panel())
	err := b.Manager.DeletePanel(ctx, i.GuildID, name)
	switch {
	case errors.Is(err, tickets.ErrNotFound):
		fail(s, i, command.SubDeletePanel, fmt.Sprintf("No panel named **%s** to delete.", name))
		return
	case err != nil:
		fail(s, i, command.SubDeletePanel, failureMessage(err))
		return
	}
	utils.Info("Tickets", "DeletePanel", fmt.Sprintf("<@%s> deleted panel **%s**", memberID(i), name))
	utils.Success(s, i, fmt.Sprintf("Panel **%s** deleted successfully!", name))
}

// HandleHere handles /tickets here.
func HandleHere(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, opts optionMap) {
	if err := utils.Defer(s, i, true); err != nil {
		log.Printf("Error deferring interaction: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if _, err := b.Renderer.RenderAndPost(ctx, i.GuildID, opts.panel(), i.ChannelID); err != nil {
		if errors.Is(err, tickets.ErrNotConfigured) {
			failDeferred(s, i, command.SubHere, "Ticket system not configured! Ask an admin to run `/tickets settings`")
			return
		}
		failDeferred(s, i, command.SubHere, failureMessage(err))
		return
	}
	utils.Edit(s, i, utils.SuccessEmbed("Ticket panel created successfully!"))
}

// HandleList handles /tickets list.
func HandleList(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	open, err := b.Manager.OpenTickets(ctx, i.GuildID)
	if err != nil {
		fail(s, i, command.SubList, failureMessage(err))
		return
	}
	utils.Client(s, i, fmt.Sprintf("Open Tickets (%d)", len(open)), describeTickets(open, time.Now()))
}

// HandlePanels handles /tickets panels.
func HandlePanels(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	panels, err := b.Manager.ListPanels(ctx, i.GuildID)
	if err != nil {
		fail(s, i, command.SubPanels, failureMessage(err))
		return
	}
	utils.Client(s, i, "Ticket Panels", describePanels(panels))
}

func memberID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
