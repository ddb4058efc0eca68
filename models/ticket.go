package models

import "time"

// Ticket is one opened ticket channel.
type Ticket struct {
	ChannelID string     `db:"channel_id"`
	GuildID   string     `db:"guild_id"`
	PanelID   int64      `db:"panel_id"`
	ButtonID  *int64     `db:"button_id"`
	UserID    string     `db:"user_id"`
	CreatedAt time.Time  `db:"created_at"`
	ClosedAt  *time.Time `db:"closed_at"`
}

// IsClosed reports whether the ticket has been closed.
func (t *Ticket) IsClosed() bool {
	return t.ClosedAt != nil
}
