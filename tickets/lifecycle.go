package tickets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"discord-tickets/models"
	"discord-tickets/monitoring"

	"github.com/bwmarrin/discordgo"
)

const (
	// CloseDelay is how long a closed ticket channel stays before deletion.
	CloseDelay = 5 * time.Second

	// StaffThreadName is the name of the private staff thread of a ticket.
	StaffThreadName = "Staff Discussion"

	ticketAccess = discordgo.PermissionViewChannel | discordgo.PermissionSendMessages |
		discordgo.PermissionReadMessageHistory | discordgo.PermissionAttachFiles
)

// OpenRequest is a panel button activation.
type OpenRequest struct {
	GuildID string
	UserID  string
	PanelID int64
	Button  models.ButtonSpec
}

// Actor is the member closing a ticket.
type Actor struct {
	UserID  string
	RoleIDs []string
	Admin   bool
}

// CloseRequest asks to close the ticket bound to ChannelID.
type CloseRequest struct {
	GuildID     string
	ChannelID   string
	ChannelName string
	Actor       Actor
}

// CloseResult reports what the close path did.
type CloseResult struct {
	Ticket         *models.Ticket
	TranscriptSent bool
	ThreadsLocked  int
}

// Lifecycle opens and closes tickets.
type Lifecycle struct {
	store    Store
	platform Platform
	clock    Clock
	throttle *Throttle
}

// NewLifecycle returns a Lifecycle. A nil throttle disables rate limiting.
func NewLifecycle(store Store, platform Platform, clock Clock, throttle *Throttle) *Lifecycle {
	if clock == nil {
		clock = RealClock()
	}
	return &Lifecycle{store: store, platform: platform, clock: clock, throttle: throttle}
}

// Open creates the ticket channel and staff thread for req and records the ticket.
func (l *Lifecycle) Open(ctx context.Context, req OpenRequest) (*models.Ticket, error) {
	if !l.throttle.Allow(req.GuildID, req.UserID) {
		return nil, ErrRateLimited
	}

	panel, err := l.store.GetPanelByID(ctx, req.PanelID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("panel %d: %w", req.PanelID, ErrNotConfigured)
		}
		return nil, err
	}
	if panel.GuildID != req.GuildID || panel.CategoryID == nil || *panel.CategoryID == "" {
		return nil, fmt.Errorf("panel %s has no category: %w", panel.Name, ErrNotConfigured)
	}

	supportRoles, err := l.supportRoles(ctx, req.Button.ButtonID)
	if err != nil {
		return nil, err
	}
	supportRoles, err = l.resolvableRoles(ctx, req.GuildID, supportRoles)
	if err != nil {
		return nil, err
	}

	channel, err := l.platform.CreateChannel(ctx, req.GuildID, *panel.CategoryID, "ticket-new",
		l.overwrites(req.GuildID, req.UserID, supportRoles))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket channel: %w", err)
	}

	if name, err := ChannelName(channel.ID); err == nil {
		if renamed, err := l.platform.RenameChannel(ctx, channel.ID, name); err != nil {
			log.Printf("Could not rename ticket channel %s: %v", channel.ID, err)
		} else {
			channel = renamed
		}
	}

	thread, err := l.platform.CreatePrivateThread(ctx, channel.ID, StaffThreadName)
	if err != nil {
		l.discardChannel(ctx, channel.ID)
		return nil, fmt.Errorf("failed to create staff thread: %w", err)
	}
	l.addStaff(ctx, req.GuildID, thread.ID, supportRoles)

	_, err = l.platform.SendMessage(ctx, channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       req.Button.TicketTitle,
			Description: fmt.Sprintf("Ticket created by <@%s>\n%s", req.UserID, req.Button.TicketMessage),
			Color:       ParseColor(req.Button.TicketColor),
			Timestamp:   l.clock.Now().Format(time.RFC3339),
		}},
		Components: CloseComponents(),
	})
	if err != nil {
		log.Printf("Could not send ticket message to %s: %v", channel.ID, err)
	}

	_, err = l.platform.SendMessage(ctx, thread.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Staff Discussion Thread",
			Description: fmt.Sprintf("Use this private thread to discuss the ticket of <@%s>.", req.UserID),
			Color:       ColorBlue,
			Timestamp:   l.clock.Now().Format(time.RFC3339),
		}},
	})
	if err != nil {
		log.Printf("Could not send staff notice to thread %s: %v", thread.ID, err)
	}

	ticket := &models.Ticket{
		ChannelID: channel.ID,
		GuildID:   req.GuildID,
		PanelID:   panel.ID,
		ButtonID:  req.Button.ButtonID,
		UserID:    req.UserID,
		CreatedAt: l.clock.Now(),
	}
	if err := l.store.InsertTicket(ctx, ticket); err != nil {
		l.discardChannel(ctx, channel.ID)
		return nil, err
	}

	monitoring.TicketsOpened.Inc()
	return ticket, nil
}

// Close checks the actor, marks the ticket closed, sends the transcript to
// the panel's log channel and locks the staff threads. The channel itself is
// removed by DeleteAfterDelay. For an authorized actor on a ticket that is
// already closed it returns the ticket together with ErrAlreadyClosed, so the
// leftover channel can still be removed.
func (l *Lifecycle) Close(ctx context.Context, req CloseRequest) (*CloseResult, error) {
	ticket, err := l.store.GetTicket(ctx, req.ChannelID)
	if err != nil {
		return nil, err
	}

	supportRoles, err := l.supportRoles(ctx, ticket.ButtonID)
	if err != nil {
		return nil, err
	}
	if !req.Actor.Admin && !hasAnyRole(req.Actor.RoleIDs, supportRoles) {
		return nil, ErrPermissionDenied
	}
	if ticket.IsClosed() {
		return &CloseResult{Ticket: ticket}, ErrAlreadyClosed
	}

	var logChannelID string
	panel, err := l.store.GetPanelByID(ctx, ticket.PanelID)
	switch {
	case err == nil:
		if panel.LogChannelID != nil {
			logChannelID = *panel.LogChannelID
		}
	case errors.Is(err, ErrNotFound):
	default:
		return nil, err
	}

	now := l.clock.Now()
	if err := l.store.CloseTicket(ctx, ticket.ChannelID, now); err != nil {
		return nil, err
	}
	ticket.ClosedAt = &now
	monitoring.TicketsClosed.Inc()

	result := &CloseResult{Ticket: ticket}
	if logChannelID != "" {
		if err := l.sendTranscript(ctx, req, logChannelID, now); err != nil {
			log.Printf("Could not archive transcript of ticket %s: %v", ticket.ChannelID, err)
		} else {
			result.TranscriptSent = true
		}
	}

	threads, err := l.platform.Threads(ctx, req.GuildID, req.ChannelID)
	if err != nil {
		log.Printf("Could not list threads of ticket %s: %v", ticket.ChannelID, err)
	}
	for _, th := range threads {
		if !strings.HasPrefix(th.Name, StaffThreadName) {
			continue
		}
		if err := l.platform.ArchiveThread(ctx, th.ID); err != nil {
			log.Printf("Could not lock staff thread %s: %v", th.ID, err)
			continue
		}
		result.ThreadsLocked++
	}
	return result, nil
}

// DeleteAfterDelay waits CloseDelay and deletes the ticket channel. It is not cancellable.
func (l *Lifecycle) DeleteAfterDelay(ctx context.Context, channelID string) error {
	l.clock.Sleep(CloseDelay)
	if err := l.platform.DeleteChannel(context.WithoutCancel(ctx), channelID); err != nil {
		return fmt.Errorf("failed to delete ticket channel %s: %w", channelID, err)
	}
	return nil
}

// MarkClosed records that a ticket channel disappeared without going through Close.
// It reports whether an open ticket was found.
func (l *Lifecycle) MarkClosed(ctx context.Context, channelID string) (bool, error) {
	err := l.store.CloseTicket(ctx, channelID, l.clock.Now())
	switch {
	case err == nil:
		monitoring.TicketsClosed.Inc()
		return true, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrAlreadyClosed):
		return false, nil
	default:
		return false, err
	}
}

// Reconcile closes open tickets whose channel no longer exists and returns how many were closed.
// Channels the bot merely cannot see are left open.
func (l *Lifecycle) Reconcile(ctx context.Context) (int, error) {
	open, err := l.store.ListOpenTickets(ctx, "")
	if err != nil {
		return 0, err
	}
	closed := 0
	for _, tk := range open {
		_, err := l.platform.Channel(ctx, tk.ChannelID)
		if !errors.Is(err, ErrUnknownTarget) {
			continue
		}
		ok, err := l.MarkClosed(ctx, tk.ChannelID)
		if err != nil {
			return closed, err
		}
		if ok {
			closed++
		}
	}
	return closed, nil
}

func (l *Lifecycle) sendTranscript(ctx context.Context, req CloseRequest, logChannelID string, now time.Time) error {
	if _, err := l.platform.Channel(ctx, logChannelID); err != nil {
		return fmt.Errorf("log channel %s is not resolvable: %w", logChannelID, err)
	}

	channelName := req.ChannelName
	if channelName == "" {
		ch, err := l.platform.Channel(ctx, req.ChannelID)
		if err != nil {
			return err
		}
		channelName = ch.Name
	}

	history, err := l.platform.ChannelHistory(ctx, req.ChannelID)
	if err != nil {
		return err
	}

	_, err = l.platform.SendMessage(ctx, logChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Ticket Closed - #" + channelName,
			Description: fmt.Sprintf("Closed by: <@%s>", req.Actor.UserID),
			Color:       ColorRed,
			Timestamp:   now.Format(time.RFC3339),
		}},
		Files: []*discordgo.File{{
			Name:        TranscriptFileName(now, channelName),
			ContentType: "text/plain",
			Reader:      bytes.NewReader([]byte(RenderTranscript(history))),
		}},
	})
	return err
}

// supportRoles returns the roles bound to buttonID; no button means no roles.
func (l *Lifecycle) supportRoles(ctx context.Context, buttonID *int64) ([]string, error) {
	if buttonID == nil {
		return []string{}, nil
	}
	return l.store.ButtonRoles(ctx, *buttonID)
}

// resolvableRoles drops bound roles that no longer exist in the guild.
func (l *Lifecycle) resolvableRoles(ctx context.Context, guildID string, bound []string) ([]string, error) {
	if len(bound) == 0 {
		return bound, nil
	}
	roles, err := l.platform.GuildRoles(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve support roles: %w", err)
	}
	exists := make(map[string]bool, len(roles))
	for _, r := range roles {
		exists[r.ID] = true
	}
	resolved := make([]string, 0, len(bound))
	for _, id := range bound {
		if exists[id] {
			resolved = append(resolved, id)
		}
	}
	return resolved, nil
}

func (l *Lifecycle) overwrites(guildID, userID string, roles []string) []*discordgo.PermissionOverwrite {
	ow := []*discordgo.PermissionOverwrite{
		{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		{ID: userID, Type: discordgo.PermissionOverwriteTypeMember, Allow: ticketAccess},
		{ID: l.platform.BotUserID(), Type: discordgo.PermissionOverwriteTypeMember, Allow: ticketAccess | discordgo.PermissionManageChannels | discordgo.PermissionManageThreads},
	}
	for _, roleID := range roles {
		ow = append(ow, &discordgo.PermissionOverwrite{ID: roleID, Type: discordgo.PermissionOverwriteTypeRole, Allow: ticketAccess})
	}
	return ow
}

// addStaff adds the bot and every support member to the thread. Failures are skipped.
func (l *Lifecycle) addStaff(ctx context.Context, guildID, threadID string, roles []string) {
	if err := l.platform.AddThreadMember(ctx, threadID, l.platform.BotUserID()); err != nil {
		log.Printf("Could not add bot to staff thread %s: %v", threadID, err)
	}
	if len(roles) == 0 {
		return
	}
	members, err := l.platform.MembersWithRoles(ctx, guildID, roles)
	if err != nil {
		log.Printf("Could not list support members for thread %s: %v", threadID, err)
		return
	}
	for _, userID := range members {
		if err := l.platform.AddThreadMember(ctx, threadID, userID); err != nil {
			log.Printf("Could not add %s to staff thread %s: %v", userID, threadID, err)
		}
	}
}

func (l *Lifecycle) discardChannel(ctx context.Context, channelID string) {
	if err := l.platform.DeleteChannel(ctx, channelID); err != nil {
		log.Printf("Could not remove incomplete ticket channel %s: %v", channelID, err)
	}
}
