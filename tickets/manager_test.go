package tickets

import (
	"context"
	"testing"

	"discord-tickets/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *Registry, Store) {
	t.Helper()
	store := newTestStore(t)
	registry := NewRegistry(store)
	return NewManager(store, registry), registry, store
}

func TestUpsertPanelDisplayDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	_, changed, err := m.UpsertPanel(ctx, "g1", "", models.PanelSettings{})
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, changed)

	created, changed, err := m.UpsertPanel(ctx, "g1", "", models.PanelSettings{CategoryID: ptr("cat"), Title: ptr("Help")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, models.DefaultPanelName, created.Name)

	shown, changed, err := m.UpsertPanel(ctx, "g1", "default", models.PanelSettings{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, created, shown)
}

func TestUpsertButtonPreservesFields(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	_, _, err := m.UpsertButton(ctx, "g1", "", 1, models.ButtonSettings{Label: ptr("A")})
	require.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = m.UpsertPanel(ctx, "g1", "", models.PanelSettings{CategoryID: ptr("cat")})
	require.NoError(t, err)

	cfg, changed, err := m.UpsertButton(ctx, "g1", "", 1, models.ButtonSettings{Label: ptr("A"), Roles: ptr("<@&10>, 20, junk")})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"10", "20"}, cfg.Roles)

	cfg, _, err = m.UpsertButton(ctx, "g1", "", 1, models.ButtonSettings{Emoji: ptr("🔥")})
	require.NoError(t, err)
	assert.Equal(t, "A", *cfg.Button.Label)
	assert.Equal(t, "🔥", *cfg.Button.Emoji)
	assert.Equal(t, []string{"10", "20"}, cfg.Roles, "omitted roles stay bound")

	cfg, _, err = m.UpsertButton(ctx, "g1", "", 1, models.ButtonSettings{Roles: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, cfg.Roles)
	assert.Equal(t, "A", *cfg.Button.Label)

	shown, changed, err := m.UpsertButton(ctx, "g1", "", 1, models.ButtonSettings{})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, cfg.Button, shown.Button)

	_, _, err = m.UpsertButton(ctx, "g1", "", 2, models.ButtonSettings{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertButtonStyleAndPositions(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)
	_, _, err := m.UpsertPanel(ctx, "g1", "", models.PanelSettings{CategoryID: ptr("cat")})
	require.NoError(t, err)

	for _, pos := range []int{0, 4, -1} {
		_, _, err := m.UpsertButton(ctx, "g1", "", pos, models.ButtonSettings{Label: ptr("x")})
		require.ErrorIs(t, err, ErrInvalidPosition)
	}

	weird := models.ButtonStyle("sparkly")
	cfg, _, err := m.UpsertButton(ctx, "g1", "", 3, models.ButtonSettings{Style: &weird})
	require.NoError(t, err)
	assert.Equal(t, models.StylePrimary, *cfg.Button.Style)

	for pos := 1; pos <= 2; pos++ {
		_, _, err := m.UpsertButton(ctx, "g1", "", pos, models.ButtonSettings{Label: ptr("x")})
		require.NoError(t, err)
	}

	summaries, err := m.ListPanels(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].Buttons)
}

func TestDeleteButtonAndPanel(t *testing.T) {
	ctx := context.Background()
	m, registry, store := newTestManager(t)

	require.ErrorIs(t, m.DeleteButton(ctx, "g1", "", 1), ErrNotConfigured)
	require.ErrorIs(t, m.DeletePanel(ctx, "g1", ""), ErrNotFound)

	panel, _, err := m.UpsertPanel(ctx, "g1", "support", models.PanelSettings{CategoryID: ptr("cat")})
	require.NoError(t, err)
	_, _, err = m.UpsertButton(ctx, "g1", "support", 1, models.ButtonSettings{Label: ptr("A")})
	require.NoError(t, err)

	require.NoError(t, registry.Load(ctx))
	_, spec, err := registry.Lookup(ctx, PanelButtonID(panel.ID, 1))
	require.NoError(t, err)
	assert.Equal(t, "A", spec.Label)

	require.ErrorIs(t, m.DeleteButton(ctx, "g1", "support", 2), ErrNotFound)
	require.NoError(t, m.DeleteButton(ctx, "g1", "support", 1))

	_, _, err = registry.Lookup(ctx, PanelButtonID(panel.ID, 1))
	require.ErrorIs(t, err, ErrNotFound)
	_, spec, err = registry.Lookup(ctx, PanelButtonID(panel.ID, 0))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultButtonLabel, spec.Label)

	require.NoError(t, m.DeletePanel(ctx, "g1", "support"))
	assert.Zero(t, registry.Len())
	_, err = store.GetPanel(ctx, "g1", "support")
	require.ErrorIs(t, err, ErrNotFound)
	_, _, err = registry.Lookup(ctx, PanelButtonID(panel.ID, 0))
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPanelNames(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)
	for _, name := range []string{"default", "billing", "Bugs"} {
		_, _, err := m.UpsertPanel(ctx, "g1", name, models.PanelSettings{Title: ptr(name)})
		require.NoError(t, err)
	}

	names, err := m.PanelNames(ctx, "g1", "b")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"billing", "Bugs"}, names)

	names, err = m.PanelNames(ctx, "g2", "")
	require.NoError(t, err)
	assert.Empty(t, names)
}
