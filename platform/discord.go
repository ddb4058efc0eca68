package platform

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"discord-tickets/tickets"

	"github.com/bwmarrin/discordgo"
)

const (
	messagePageSize = 100
	memberPageSize  = 1000
)

// Discord implements tickets.Platform on a discordgo session.
type Discord struct {
	s *discordgo.Session
}

// NewDiscord wraps an opened session.
func NewDiscord(s *discordgo.Session) *Discord {
	return &Discord{s: s}
}

// BotUserID returns the session user's ID.
func (d *Discord) BotUserID() string {
	if d.s.State == nil || d.s.State.User == nil {
		return ""
	}
	return d.s.State.User.ID
}

func (d *Discord) CreateChannel(ctx context.Context, guildID, categoryID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	ch, err := d.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites,
	}, discordgo.WithContext(ctx))
	return ch, classify(err)
}

func (d *Discord) RenameChannel(ctx context.Context, channelID, name string) (*discordgo.Channel, error) {
	ch, err := d.s.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	return ch, classify(err)
}

func (d *Discord) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if d.s.State != nil {
		if ch, err := d.s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	ch, err := d.s.Channel(channelID, discordgo.WithContext(ctx))
	return ch, classify(err)
}

func (d *Discord) DeleteChannel(ctx context.Context, channelID string) error {
	_, err := d.s.ChannelDelete(channelID, discordgo.WithContext(ctx))
	return classify(err)
}

func (d *Discord) CreatePrivateThread(ctx context.Context, channelID, name string) (*discordgo.Channel, error) {
	th, err := d.s.ThreadStartComplex(channelID, &discordgo.ThreadStart{
		Name:                name,
		Type:                discordgo.ChannelTypeGuildPrivateThread,
		AutoArchiveDuration: 10080,
		Invitable:           false,
	}, discordgo.WithContext(ctx))
	return th, classify(err)
}

func (d *Discord) AddThreadMember(ctx context.Context, threadID, userID string) error {
	return classify(d.s.ThreadMemberAdd(threadID, userID, discordgo.WithContext(ctx)))
}

func (d *Discord) Threads(ctx context.Context, guildID, channelID string) ([]*discordgo.Channel, error) {
	list, err := d.s.GuildThreadsActive(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(err)
	}
	var threads []*discordgo.Channel
	for _, th := range list.Threads {
		if th.ParentID == channelID {
			threads = append(threads, th)
		}
	}
	return threads, nil
}

func (d *Discord) ArchiveThread(ctx context.Context, threadID string) error {
	archived, locked := true, true
	_, err := d.s.ChannelEdit(threadID, &discordgo.ChannelEdit{Archived: &archived, Locked: &locked}, discordgo.WithContext(ctx))
	return classify(err)
}

// ChannelHistory pages backwards through the channel and returns the messages oldest first.
func (d *Discord) ChannelHistory(ctx context.Context, channelID string) ([]*discordgo.Message, error) {
	var (
		all    []*discordgo.Message
		before string
	)
	for {
		page, err := d.s.ChannelMessages(channelID, messagePageSize, before, "", "", discordgo.WithContext(ctx))
		if err != nil {
			return nil, classify(err)
		}
		all = append(all, page...)
		if len(page) < messagePageSize {
			break
		}
		before = page[len(page)-1].ID
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (d *Discord) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	m, err := d.s.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
	return m, classify(err)
}

func (d *Discord) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return classify(d.s.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx)))
}

func (d *Discord) GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	roles, err := d.s.GuildRoles(guildID, discordgo.WithContext(ctx))
	return roles, classify(err)
}

func (d *Discord) MembersWithRoles(ctx context.Context, guildID string, roleIDs []string) ([]string, error) {
	wanted := make(map[string]bool, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = true
	}

	var (
		ids   []string
		after string
	)
	for {
		page, err := d.s.GuildMembers(guildID, after, memberPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, classify(err)
		}
		for _, m := range page {
			if m.User == nil || m.User.Bot {
				continue
			}
			for _, r := range m.Roles {
				if wanted[r] {
					ids = append(ids, m.User.ID)
					break
				}
			}
		}
		if len(page) < memberPageSize {
			break
		}
		after = page[len(page)-1].User.ID
	}
	return ids, nil
}

// Ping checks the Discord API is reachable.
func (d *Discord) Ping(ctx context.Context) error {
	_, err := d.s.GatewayBot(discordgo.WithContext(ctx))
	return err
}

// classify wraps unknown-target failures in tickets.ErrUnknownTarget and
// missing-access failures in tickets.ErrDelivery.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsUnknownTarget(err) {
		return fmt.Errorf("%w: %v", tickets.ErrUnknownTarget, err)
	}
	if IsDeliveryFailure(err) {
		return fmt.Errorf("%w: %v", tickets.ErrDelivery, err)
	}
	return err
}

// IsDeliveryFailure reports whether err means the target is gone or not accessible.
func IsDeliveryFailure(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownMessage,
			discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownMember,
			discordgo.ErrCodeMissingAccess,
			discordgo.ErrCodeMissingPermissions:
			return true
		}
	}
	if restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound, http.StatusForbidden:
			return true
		}
	}
	return false
}

// IsUnknownTarget reports whether err means the target no longer exists.
// Missing access is not enough: the target may still be there.
func IsUnknownTarget(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownChannel,
			discordgo.ErrCodeUnknownMessage,
			discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownMember:
			return true
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return false
		}
	}
	return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
}
