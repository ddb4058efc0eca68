package database

import (
	"context"
	"database/sql"
	"fmt"

	"discord-tickets/models"
)

const buttonColumns = `id, panel_id, button_position, button_label, ticket_title, ticket_message, button_emoji, button_style, ticket_color`

func scanButton(row rowScanner) (*models.Button, error) {
	var b models.Button
	err := row.Scan(&b.ID, &b.PanelID, &b.Position, &b.Label, &b.TicketTitle,
		&b.TicketMessage, &b.Emoji, &b.Style, &b.TicketColor)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetButton returns the button at position of panelID, or ErrNotFound.
func (t *TicketDB) GetButton(ctx context.Context, panelID int64, position int) (*models.Button, error) {
	defer track("get_button", "ticket_buttons")()

	row := t.db.QueryRowContext(ctx,
		`SELECT `+buttonColumns+` FROM ticket_buttons WHERE panel_id = ? AND button_position = ?`, panelID, position)
	b, err := scanButton(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get button %d of panel %d: %w", position, panelID, classify(err))
	}
	return b, nil
}

// ListButtons returns the buttons of a panel ordered by position.
func (t *TicketDB) ListButtons(ctx context.Context, panelID int64) ([]*models.Button, error) {
	defer track("list_buttons", "ticket_buttons")()

	rows, err := t.db.QueryContext(ctx,
		`SELECT `+buttonColumns+` FROM ticket_buttons WHERE panel_id = ? ORDER BY button_position ASC`, panelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list buttons of panel %d: %w", panelID, err)
	}
	defer rows.Close()

	var buttons []*models.Button
	for rows.Next() {
		b, err := scanButton(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan button: %w", err)
		}
		buttons = append(buttons, b)
	}
	return buttons, rows.Err()
}

// UpsertButton inserts the button or merges the supplied settings over the stored row.
// When s.Roles is non-nil the button's role bindings are replaced by roles.
func (t *TicketDB) UpsertButton(ctx context.Context, panelID int64, position int, s models.ButtonSettings, roles []string) (*models.Button, error) {
	defer track("upsert_button", "ticket_buttons")()

	query := `
    INSERT INTO ticket_buttons (panel_id, button_position, button_label, ticket_title, ticket_message, button_emoji, button_style, ticket_color)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    ON CONFLICT (panel_id, button_position) DO UPDATE SET
        button_label = COALESCE(excluded.button_label, ticket_buttons.button_label),
        ticket_title = COALESCE(excluded.ticket_title, ticket_buttons.ticket_title),
        ticket_message = COALESCE(excluded.ticket_message, ticket_buttons.ticket_message),
        button_emoji = COALESCE(excluded.button_emoji, ticket_buttons.button_emoji),
        button_style = COALESCE(excluded.button_style, ticket_buttons.button_style),
        ticket_color = COALESCE(excluded.ticket_color, ticket_buttons.ticket_color);`

	var button *models.Button
	err := t.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, panelID, position,
			s.Label, s.TicketTitle, s.TicketMessage, s.Emoji, s.Style, s.TicketColor)
		if err != nil {
			return fmt.Errorf("failed to upsert button %d of panel %d: %w", position, panelID, classify(err))
		}

		row := tx.QueryRowContext(ctx,
			`SELECT `+buttonColumns+` FROM ticket_buttons WHERE panel_id = ? AND button_position = ?`, panelID, position)
		if button, err = scanButton(row); err != nil {
			return fmt.Errorf("failed to reload button %d of panel %d: %w", position, panelID, classify(err))
		}

		if s.Roles == nil {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM ticket_button_roles WHERE button_id = ?`, button.ID); err != nil {
			return fmt.Errorf("failed to clear roles of button %d: %w", button.ID, err)
		}
		for _, roleID := range roles {
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO ticket_button_roles (button_id, role_id) VALUES (?, ?)`, button.ID, roleID)
			if err != nil {
				return fmt.Errorf("failed to bind role %s to button %d: %w", roleID, button.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return button, nil
}

// ButtonRoles returns the support role IDs bound to a button.
func (t *TicketDB) ButtonRoles(ctx context.Context, buttonID int64) ([]string, error) {
	defer track("button_roles", "ticket_button_roles")()

	rows, err := t.db.QueryContext(ctx,
		`SELECT role_id FROM ticket_button_roles WHERE button_id = ? ORDER BY id`, buttonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles of button %d: %w", buttonID, err)
	}
	defer rows.Close()

	roles := make([]string, 0)
	for rows.Next() {
		var roleID string
		if err := rows.Scan(&roleID); err != nil {
			return nil, fmt.Errorf("failed to scan role ID: %w", err)
		}
		roles = append(roles, roleID)
	}
	return roles, rows.Err()
}

// DeleteButton removes the button at position of panelID together with its role bindings.
func (t *TicketDB) DeleteButton(ctx context.Context, panelID int64, position int) error {
	defer track("delete_button", "ticket_buttons")()

	return t.withTx(ctx, func(tx *sql.Tx) error {
		var buttonID int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM ticket_buttons WHERE panel_id = ? AND button_position = ?`, panelID, position).Scan(&buttonID)
		if err != nil {
			return fmt.Errorf("failed to find button %d of panel %d: %w", position, panelID, classify(err))
		}

		stmts := []string{
			`DELETE FROM ticket_button_roles WHERE button_id = ?`,
			`UPDATE tickets SET button_id = NULL WHERE button_id = ?`,
			`DELETE FROM ticket_buttons WHERE id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, buttonID); err != nil {
				return fmt.Errorf("failed to delete button %d: %w", buttonID, err)
			}
		}
		return nil
	})
}
