package tickets

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"discord-tickets/database"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

const botID = "999"

type sentMessage struct {
	ChannelID string
	Msg       *discordgo.MessageSend
	File      string
}

type fakePlatform struct {
	mu sync.Mutex

	nextID          uint64
	channels        map[string]*discordgo.Channel
	history         map[string][]*discordgo.Message
	members         map[string][]string // thread -> users
	roles           []*discordgo.Role
	roleUsers       map[string][]string // role -> users
	sent            []sentMessage
	deleted         []string // channels
	deletedMessages []string
	archived        []string

	channelErr        map[string]error
	failThread        bool
	failDeleteMessage bool
	failAddUser       map[string]bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		nextID:      1234567890123456789,
		channels:    make(map[string]*discordgo.Channel),
		history:     make(map[string][]*discordgo.Message),
		members:     make(map[string][]string),
		roleUsers:   make(map[string][]string),
		failAddUser: make(map[string]bool),
		channelErr:  make(map[string]error),
	}
}

func (f *fakePlatform) newID() string {
	f.nextID++
	return fmt.Sprint(f.nextID)
}

func (f *fakePlatform) addChannel(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[id] = &discordgo.Channel{ID: id, Name: name}
}

func (f *fakePlatform) addRole(id string, users ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles = append(f.roles, &discordgo.Role{ID: id})
	f.roleUsers[id] = users
}

func (f *fakePlatform) BotUserID() string { return botID }

func (f *fakePlatform) CreateChannel(ctx context.Context, guildID, categoryID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := &discordgo.Channel{ID: f.newID(), GuildID: guildID, ParentID: categoryID, Name: name, PermissionOverwrites: overwrites}
	f.channels[ch.ID] = ch
	return ch, nil
}

func (f *fakePlatform) RenameChannel(ctx context.Context, channelID, name string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("rename: %w", ErrDelivery)
	}
	ch.Name = name
	return ch, nil
}

func (f *fakePlatform) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.channelErr[channelID]; err != nil {
		return nil, err
	}
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrUnknownTarget)
	}
	return ch, nil
}

func (f *fakePlatform) DeleteChannel(ctx context.Context, channelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[channelID]; !ok {
		return fmt.Errorf("delete %s: %w", channelID, ErrUnknownTarget)
	}
	delete(f.channels, channelID)
	f.deleted = append(f.deleted, channelID)
	return nil
}

func (f *fakePlatform) CreatePrivateThread(ctx context.Context, channelID, name string) (*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failThread {
		return nil, fmt.Errorf("thread: %w", ErrDelivery)
	}
	th := &discordgo.Channel{ID: f.newID(), ParentID: channelID, Name: name, Type: discordgo.ChannelTypeGuildPrivateThread}
	f.channels[th.ID] = th
	return th, nil
}

func (f *fakePlatform) AddThreadMember(ctx context.Context, threadID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAddUser[userID] {
		return fmt.Errorf("add %s: %w", userID, ErrDelivery)
	}
	f.members[threadID] = append(f.members[threadID], userID)
	return nil
}

func (f *fakePlatform) Threads(ctx context.Context, guildID, channelID string) ([]*discordgo.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*discordgo.Channel
	for _, ch := range f.channels {
		if ch.ParentID == channelID && ch.Type == discordgo.ChannelTypeGuildPrivateThread {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakePlatform) ArchiveThread(ctx context.Context, threadID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, threadID)
	return nil
}

func (f *fakePlatform) ChannelHistory(ctx context.Context, channelID string) ([]*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Message(nil), f.history[channelID]...), nil
}

func (f *fakePlatform) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.channels[channelID]; !ok {
		return nil, fmt.Errorf("send to %s: %w", channelID, ErrDelivery)
	}
	sent := sentMessage{ChannelID: channelID, Msg: msg}
	for _, file := range msg.Files {
		b, _ := io.ReadAll(file.Reader)
		sent.File = string(b)
	}
	f.sent = append(f.sent, sent)
	return &discordgo.Message{ID: f.newID(), ChannelID: channelID}, nil
}

func (f *fakePlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDeleteMessage {
		return fmt.Errorf("delete message: %w", ErrDelivery)
	}
	f.deletedMessages = append(f.deletedMessages, messageID)
	return nil
}

func (f *fakePlatform) GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*discordgo.Role(nil), f.roles...), nil
}

func (f *fakePlatform) MembersWithRoles(ctx context.Context, guildID string, roleIDs []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	var ids []string
	for _, r := range roleIDs {
		for _, u := range f.roleUsers[r] {
			if !seen[u] {
				seen[u] = true
				ids = append(ids, u)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakePlatform) sentTo(channelID string) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMessage
	for _, s := range f.sent {
		if s.ChannelID == channelID {
			out = append(out, s)
		}
	}
	return out
}

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func newTestStore(t *testing.T) *database.TicketDB {
	t.Helper()
	db, err := database.NewTicketDB(filepath.Join(t.TempDir(), "tickets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }
