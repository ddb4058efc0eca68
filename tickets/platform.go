package tickets

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Platform is the chat capability the ticket workflow calls into.
// Failures caused by missing access or a vanished target wrap ErrDelivery.
type Platform interface {
	// BotUserID is the bot's own user ID.
	BotUserID() string

	CreateChannel(ctx context.Context, guildID, categoryID, name string, overwrites []*discordgo.PermissionOverwrite) (*discordgo.Channel, error)
	RenameChannel(ctx context.Context, channelID, name string) (*discordgo.Channel, error)
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error

	CreatePrivateThread(ctx context.Context, channelID, name string) (*discordgo.Channel, error)
	AddThreadMember(ctx context.Context, threadID, userID string) error
	// Threads lists the active threads whose parent is channelID.
	Threads(ctx context.Context, guildID, channelID string) ([]*discordgo.Channel, error)
	ArchiveThread(ctx context.Context, threadID string) error

	// ChannelHistory returns every message of the channel, oldest first.
	ChannelHistory(ctx context.Context, channelID string) ([]*discordgo.Message, error)
	SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	GuildRoles(ctx context.Context, guildID string) ([]*discordgo.Role, error)
	// MembersWithRoles returns the IDs of members holding any of roleIDs.
	MembersWithRoles(ctx context.Context, guildID string, roleIDs []string) ([]string, error)
}
