package database

import (
	"context"
	"database/sql"
	"fmt"

	"discord-tickets/models"
)

const panelColumns = `id, guild_id, name, category_id, log_channel_id, panel_title, panel_description, channel_id, message_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPanel(row rowScanner) (*models.Panel, error) {
	var p models.Panel
	err := row.Scan(&p.ID, &p.GuildID, &p.Name, &p.CategoryID, &p.LogChannelID,
		&p.Title, &p.Description, &p.PostedChannelID, &p.PostedMessageID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPanel returns the panel named name in guildID, or ErrNotFound.
func (t *TicketDB) GetPanel(ctx context.Context, guildID, name string) (*models.Panel, error) {
	defer track("get_panel", "ticket_panels")()

	row := t.db.QueryRowContext(ctx,
		`SELECT `+panelColumns+` FROM ticket_panels WHERE guild_id = ? AND name = ?`, guildID, name)
	p, err := scanPanel(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get panel %s: %w", name, classify(err))
	}
	return p, nil
}

// GetPanelByID returns the panel with the given row ID, or ErrNotFound.
func (t *TicketDB) GetPanelByID(ctx context.Context, id int64) (*models.Panel, error) {
	defer track("get_panel_by_id", "ticket_panels")()

	row := t.db.QueryRowContext(ctx, `SELECT `+panelColumns+` FROM ticket_panels WHERE id = ?`, id)
	p, err := scanPanel(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get panel %d: %w", id, classify(err))
	}
	return p, nil
}

// ListPanels returns the panels of a guild ordered by name. An empty guildID lists every panel.
func (t *TicketDB) ListPanels(ctx context.Context, guildID string) ([]*models.Panel, error) {
	defer track("list_panels", "ticket_panels")()

	var (
		rows *sql.Rows
		err  error
	)
	if guildID == "" {
		rows, err = t.db.QueryContext(ctx, `SELECT `+panelColumns+` FROM ticket_panels ORDER BY guild_id, name`)
	} else {
		rows, err = t.db.QueryContext(ctx, `SELECT `+panelColumns+` FROM ticket_panels WHERE guild_id = ? ORDER BY name`, guildID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list panels: %w", err)
	}
	defer rows.Close()

	var panels []*models.Panel
	for rows.Next() {
		p, err := scanPanel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan panel: %w", err)
		}
		panels = append(panels, p)
	}
	return panels, rows.Err()
}

// UpsertPanel inserts the panel or merges the supplied settings over the stored row.
// Nil settings keep their stored value.
func (t *TicketDB) UpsertPanel(ctx context.Context, guildID, name string, s models.PanelSettings) (*models.Panel, error) {
	defer track("upsert_panel", "ticket_panels")()

	query := `
    INSERT INTO ticket_panels (guild_id, name, category_id, log_channel_id, panel_title, panel_description)
    VALUES (?, ?, ?, ?, ?, ?)
    ON CONFLICT (guild_id, name) DO UPDATE SET
        category_id = COALESCE(excluded.category_id, ticket_panels.category_id),
        log_channel_id = COALESCE(excluded.log_channel_id, ticket_panels.log_channel_id),
        panel_title = COALESCE(excluded.panel_title, ticket_panels.panel_title),
        panel_description = COALESCE(excluded.panel_description, ticket_panels.panel_description);`

	if _, err := t.db.ExecContext(ctx, query, guildID, name, s.CategoryID, s.LogChannelID, s.Title, s.Description); err != nil {
		return nil, fmt.Errorf("failed to upsert panel %s: %w", name, classify(err))
	}
	return t.GetPanel(ctx, guildID, name)
}

// SetPanelMessage records where the panel message was last posted.
func (t *TicketDB) SetPanelMessage(ctx context.Context, panelID int64, channelID, messageID string) error {
	defer track("set_panel_message", "ticket_panels")()

	res, err := t.db.ExecContext(ctx,
		`UPDATE ticket_panels SET channel_id = ?, message_id = ? WHERE id = ?`, channelID, messageID, panelID)
	if err != nil {
		return fmt.Errorf("failed to record panel message for panel %d: %w", panelID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("failed to record panel message for panel %d: %w", panelID, ErrNotFound)
	}
	return nil
}

// DeletePanel removes a panel together with its buttons and their role bindings.
// Tickets opened from the panel are kept as history with their button reference cleared.
func (t *TicketDB) DeletePanel(ctx context.Context, guildID, name string) error {
	defer track("delete_panel", "ticket_panels")()

	return t.withTx(ctx, func(tx *sql.Tx) error {
		var panelID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM ticket_panels WHERE guild_id = ? AND name = ?`, guildID, name).Scan(&panelID)
		if err != nil {
			return fmt.Errorf("failed to find panel %s: %w", name, classify(err))
		}

		stmts := []string{
			`DELETE FROM ticket_button_roles WHERE button_id IN (SELECT id FROM ticket_buttons WHERE panel_id = ?)`,
			`UPDATE tickets SET button_id = NULL WHERE button_id IN (SELECT id FROM ticket_buttons WHERE panel_id = ?)`,
			`DELETE FROM ticket_buttons WHERE panel_id = ?`,
			`DELETE FROM ticket_panels WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, panelID); err != nil {
				return fmt.Errorf("failed to delete panel %s: %w", name, err)
			}
		}
		return nil
	})
}
