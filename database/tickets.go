package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"discord-tickets/models"
)

const ticketColumns = `channel_id, guild_id, panel_id, button_id, user_id, created_at, closed_at`

func scanTicket(row rowScanner) (*models.Ticket, error) {
	var (
		tk        models.Ticket
		createdAt int64
		closedAt  sql.NullInt64
	)
	if err := row.Scan(&tk.ChannelID, &tk.GuildID, &tk.PanelID, &tk.ButtonID, &tk.UserID, &createdAt, &closedAt); err != nil {
		return nil, err
	}
	tk.CreatedAt = time.Unix(createdAt, 0).UTC()
	if closedAt.Valid {
		at := time.Unix(closedAt.Int64, 0).UTC()
		tk.ClosedAt = &at
	}
	return &tk, nil
}

// InsertTicket records a newly opened ticket channel.
func (t *TicketDB) InsertTicket(ctx context.Context, tk *models.Ticket) error {
	defer track("insert_ticket", "tickets")()

	_, err := t.db.ExecContext(ctx,
		`INSERT INTO tickets (channel_id, guild_id, panel_id, button_id, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		tk.ChannelID, tk.GuildID, tk.PanelID, tk.ButtonID, tk.UserID, tk.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert ticket %s: %w", tk.ChannelID, classify(err))
	}
	return nil
}

// GetTicket returns the ticket bound to channelID, or ErrNotFound.
func (t *TicketDB) GetTicket(ctx context.Context, channelID string) (*models.Ticket, error) {
	defer track("get_ticket", "tickets")()

	row := t.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE channel_id = ?`, channelID)
	tk, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket %s: %w", channelID, classify(err))
	}
	return tk, nil
}

// CloseTicket sets closed_at once. A second close returns ErrAlreadyClosed.
func (t *TicketDB) CloseTicket(ctx context.Context, channelID string, at time.Time) error {
	defer track("close_ticket", "tickets")()

	res, err := t.db.ExecContext(ctx,
		`UPDATE tickets SET closed_at = ? WHERE channel_id = ? AND closed_at IS NULL`, at.Unix(), channelID)
	if err != nil {
		return fmt.Errorf("failed to close ticket %s: %w", channelID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for ticket %s: %w", channelID, err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = t.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE channel_id = ?`, channelID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to close ticket %s: %w", channelID, classify(err))
	}
	return fmt.Errorf("failed to close ticket %s: %w", channelID, ErrAlreadyClosed)
}

// ListOpenTickets returns the open tickets of a guild, oldest first. An empty guildID lists every guild.
func (t *TicketDB) ListOpenTickets(ctx context.Context, guildID string) ([]*models.Ticket, error) {
	defer track("list_open_tickets", "tickets")()

	var (
		rows *sql.Rows
		err  error
	)
	if guildID == "" {
		rows, err = t.db.QueryContext(ctx,
			`SELECT `+ticketColumns+` FROM tickets WHERE closed_at IS NULL ORDER BY created_at ASC`)
	} else {
		rows, err = t.db.QueryContext(ctx,
			`SELECT `+ticketColumns+` FROM tickets WHERE guild_id = ? AND closed_at IS NULL ORDER BY created_at ASC`, guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list open tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		tk, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, tk)
	}
	return tickets, rows.Err()
}
