package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"discord-tickets/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *TicketDB {
	t.Helper()
	db, err := NewTicketDB(filepath.Join(t.TempDir(), "nested", "tickets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr[T any](v T) *T { return &v }

func TestUpsertPanelMergesFields(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	p, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{CategoryID: ptr("c1"), Title: ptr("Help")})
	require.NoError(t, err)
	assert.Equal(t, "c1", *p.CategoryID)
	assert.Nil(t, p.LogChannelID)

	p2, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{LogChannelID: ptr("l1")})
	require.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)
	assert.Equal(t, "c1", *p2.CategoryID)
	assert.Equal(t, "l1", *p2.LogChannelID)
	assert.Equal(t, "Help", *p2.Title)

	_, err = db.GetPanel(ctx, "g2", "default")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPanelNameUniquePerGuild(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_, err := db.UpsertPanel(ctx, "g1", "a", models.PanelSettings{})
	require.NoError(t, err)
	_, err = db.UpsertPanel(ctx, "g2", "a", models.PanelSettings{})
	require.NoError(t, err)

	_, err = db.db.ExecContext(ctx, `INSERT INTO ticket_panels (guild_id, name) VALUES ('g1', 'a')`)
	require.ErrorIs(t, classify(err), ErrConflict)

	panels, err := db.ListPanels(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, panels, 1)

	all, err := db.ListPanels(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestButtonPositionUniqueness(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{})
	require.NoError(t, err)

	for pos := 1; pos <= 3; pos++ {
		_, err := db.UpsertButton(ctx, p.ID, pos, models.ButtonSettings{Label: ptr("b")}, nil)
		require.NoError(t, err)
	}

	_, err = db.db.ExecContext(ctx, `INSERT INTO ticket_buttons (panel_id, button_position) VALUES (?, 2)`, p.ID)
	require.ErrorIs(t, classify(err), ErrConflict)

	_, err = db.db.ExecContext(ctx, `INSERT INTO ticket_buttons (panel_id, button_position) VALUES (?, 4)`, p.ID)
	require.ErrorIs(t, classify(err), ErrConflict)

	buttons, err := db.ListButtons(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, buttons, 3)
	for i, b := range buttons {
		assert.Equal(t, i+1, b.Position)
	}
}

func TestUpsertButtonPreservesFieldsAndRoles(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{})
	require.NoError(t, err)

	style := models.StyleDanger
	b, err := db.UpsertButton(ctx, p.ID, 1,
		models.ButtonSettings{Label: ptr("A"), Style: &style, Roles: ptr("1,2")}, []string{"1", "2"})
	require.NoError(t, err)

	b2, err := db.UpsertButton(ctx, p.ID, 1, models.ButtonSettings{Emoji: ptr("🔥")}, nil)
	require.NoError(t, err)
	assert.Equal(t, b.ID, b2.ID)
	assert.Equal(t, "A", *b2.Label)
	assert.Equal(t, "🔥", *b2.Emoji)
	assert.Equal(t, models.StyleDanger, *b2.Style)

	roles, err := db.ButtonRoles(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, roles)

	_, err = db.UpsertButton(ctx, p.ID, 1, models.ButtonSettings{Roles: ptr("")}, nil)
	require.NoError(t, err)
	roles, err = db.ButtonRoles(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{})
	require.NoError(t, err)
	b1, err := db.UpsertButton(ctx, p.ID, 1, models.ButtonSettings{Roles: ptr("1")}, []string{"1"})
	require.NoError(t, err)
	b2, err := db.UpsertButton(ctx, p.ID, 2, models.ButtonSettings{Roles: ptr("2")}, []string{"2"})
	require.NoError(t, err)

	require.NoError(t, db.InsertTicket(ctx, &models.Ticket{
		ChannelID: "ch1", GuildID: "g1", PanelID: p.ID, ButtonID: &b1.ID, UserID: "u", CreatedAt: time.Now(),
	}))

	require.NoError(t, db.DeleteButton(ctx, p.ID, 1))
	require.ErrorIs(t, db.DeleteButton(ctx, p.ID, 1), ErrNotFound)

	tk, err := db.GetTicket(ctx, "ch1")
	require.NoError(t, err)
	assert.Nil(t, tk.ButtonID)

	var orphans int
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ticket_button_roles WHERE button_id = ?`, b1.ID).Scan(&orphans))
	assert.Zero(t, orphans)

	require.NoError(t, db.DeletePanel(ctx, "g1", "default"))
	require.ErrorIs(t, db.DeletePanel(ctx, "g1", "default"), ErrNotFound)

	var buttons int
	require.NoError(t, db.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ticket_buttons WHERE id = ?`, b2.ID).Scan(&buttons))
	assert.Zero(t, buttons)
	require.NoError(t, db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticket_button_roles`).Scan(&orphans))
	assert.Zero(t, orphans)

	_, err = db.GetTicket(ctx, "ch1")
	require.NoError(t, err)
}

func TestCloseTicketOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	created := time.Unix(1700000000, 0)

	require.NoError(t, db.InsertTicket(ctx, &models.Ticket{
		ChannelID: "ch1", GuildID: "g1", PanelID: 1, UserID: "u", CreatedAt: created,
	}))
	err := db.InsertTicket(ctx, &models.Ticket{ChannelID: "ch1", GuildID: "g1", PanelID: 1, UserID: "u", CreatedAt: created})
	require.ErrorIs(t, err, ErrConflict)

	open, err := db.ListOpenTickets(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, open, 1)

	closedAt := created.Add(time.Hour)
	require.NoError(t, db.CloseTicket(ctx, "ch1", closedAt))
	require.ErrorIs(t, db.CloseTicket(ctx, "ch1", closedAt.Add(time.Hour)), ErrAlreadyClosed)
	require.ErrorIs(t, db.CloseTicket(ctx, "missing", closedAt), ErrNotFound)

	tk, err := db.GetTicket(ctx, "ch1")
	require.NoError(t, err)
	require.True(t, tk.IsClosed())
	assert.Equal(t, closedAt.Unix(), tk.ClosedAt.Unix())
	assert.Equal(t, created.Unix(), tk.CreatedAt.Unix())

	open, err = db.ListOpenTickets(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestPruneClosedTickets(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	now := time.Unix(1700000000, 0)

	for _, id := range []string{"old", "recent", "open"} {
		require.NoError(t, db.InsertTicket(ctx, &models.Ticket{
			ChannelID: id, GuildID: "g1", PanelID: 1, UserID: "u", CreatedAt: now.Add(-48 * time.Hour),
		}))
	}
	require.NoError(t, db.CloseTicket(ctx, "old", now.Add(-30*time.Hour)))
	require.NoError(t, db.CloseTicket(ctx, "recent", now.Add(-time.Hour)))

	n, err := db.PruneClosedTickets(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = db.GetTicket(ctx, "old")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = db.GetTicket(ctx, "recent")
	require.NoError(t, err)
	_, err = db.GetTicket(ctx, "open")
	require.NoError(t, err)
}

func TestSetPanelMessage(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	p, err := db.UpsertPanel(ctx, "g1", "default", models.PanelSettings{})
	require.NoError(t, err)

	require.NoError(t, db.SetPanelMessage(ctx, p.ID, "ch", "msg"))
	require.ErrorIs(t, db.SetPanelMessage(ctx, p.ID+100, "ch", "msg"), ErrNotFound)

	p, err = db.GetPanelByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "ch", *p.PostedChannelID)
	assert.Equal(t, "msg", *p.PostedMessageID)
}
