package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"discord-tickets/models"
)

// ButtonConfig is a stored button together with its bound support roles.
type ButtonConfig struct {
	Button *models.Button
	Roles  []string
}

// PanelSummary describes one panel for listings.
type PanelSummary struct {
	Panel   *models.Panel
	Buttons int
}

// Manager creates, updates and deletes panel and button configuration.
type Manager struct {
	store    Store
	registry *Registry
}

// NewManager returns a Manager that invalidates registry views on every change.
func NewManager(store Store, registry *Registry) *Manager {
	return &Manager{store: store, registry: registry}
}

// PanelName normalizes a panel name option.
func PanelName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.DefaultPanelName
	}
	return name
}

// UpsertPanel stores the supplied panel settings over the existing ones.
// With no settings it only returns the current panel; changed is false then.
func (m *Manager) UpsertPanel(ctx context.Context, guildID, name string, s models.PanelSettings) (panel *models.Panel, changed bool, err error) {
	name = PanelName(name)
	if s.Empty() {
		panel, err := m.store.GetPanel(ctx, guildID, name)
		if errors.Is(err, ErrNotFound) {
			return nil, false, fmt.Errorf("panel %s: %w", name, ErrNotConfigured)
		}
		return panel, false, err
	}

	panel, err = m.store.UpsertPanel(ctx, guildID, name, s)
	if err != nil {
		return nil, false, err
	}
	return panel, true, nil
}

// UpsertButton stores the supplied button settings over the existing ones.
// Roles, when present, fully replace the bindings; an empty list clears them.
// With no settings it only returns the current button.
func (m *Manager) UpsertButton(ctx context.Context, guildID, panelName string, position int, s models.ButtonSettings) (cfg *ButtonConfig, changed bool, err error) {
	if position < 1 || position > 3 {
		return nil, false, ErrInvalidPosition
	}
	panel, err := m.panel(ctx, guildID, panelName)
	if err != nil {
		return nil, false, err
	}

	if s.Empty() {
		button, err := m.store.GetButton(ctx, panel.ID, position)
		if err != nil {
			return nil, false, err
		}
		roles, err := m.store.ButtonRoles(ctx, button.ID)
		if err != nil {
			return nil, false, err
		}
		return &ButtonConfig{Button: button, Roles: roles}, false, nil
	}

	var roles []string
	if s.Roles != nil {
		roles = ParseRoleList(*s.Roles)
	}
	if s.Style != nil {
		style := models.ParseButtonStyle(string(*s.Style))
		s.Style = &style
	}

	button, err := m.store.UpsertButton(ctx, panel.ID, position, s, roles)
	if err != nil {
		return nil, false, err
	}
	m.registry.Invalidate(panel.ID)

	bound, err := m.store.ButtonRoles(ctx, button.ID)
	if err != nil {
		return nil, false, err
	}
	return &ButtonConfig{Button: button, Roles: bound}, true, nil
}

// DeleteButton removes a button and its role bindings.
func (m *Manager) DeleteButton(ctx context.Context, guildID, panelName string, position int) error {
	if position < 1 || position > 3 {
		return ErrInvalidPosition
	}
	panel, err := m.panel(ctx, guildID, panelName)
	if err != nil {
		return err
	}
	if err := m.store.DeleteButton(ctx, panel.ID, position); err != nil {
		return err
	}
	m.registry.Invalidate(panel.ID)
	return nil
}

// DeletePanel removes a panel with its buttons and bindings.
func (m *Manager) DeletePanel(ctx context.Context, guildID, panelName string) error {
	panelName = PanelName(panelName)
	panel, err := m.store.GetPanel(ctx, guildID, panelName)
	if err != nil {
		return err
	}
	if err := m.store.DeletePanel(ctx, guildID, panelName); err != nil {
		return err
	}
	m.registry.Remove(panel.ID)
	return nil
}

// ListPanels returns the guild's panels with their button counts.
func (m *Manager) ListPanels(ctx context.Context, guildID string) ([]PanelSummary, error) {
	panels, err := m.store.ListPanels(ctx, guildID)
	if err != nil {
		return nil, err
	}
	summaries := make([]PanelSummary, 0, len(panels))
	for _, p := range panels {
		buttons, err := m.store.ListButtons(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, PanelSummary{Panel: p, Buttons: len(buttons)})
	}
	return summaries, nil
}

// PanelNames returns the names of the guild's panels that start with prefix.
func (m *Manager) PanelNames(ctx context.Context, guildID, prefix string) ([]string, error) {
	panels, err := m.store.ListPanels(ctx, guildID)
	if err != nil {
		return nil, err
	}
	prefix = strings.ToLower(prefix)
	names := make([]string, 0, len(panels))
	for _, p := range panels {
		if strings.HasPrefix(strings.ToLower(p.Name), prefix) {
			names = append(names, p.Name)
		}
	}
	return names, nil
}

// OpenTickets returns the guild's open tickets, oldest first.
func (m *Manager) OpenTickets(ctx context.Context, guildID string) ([]*models.Ticket, error) {
	return m.store.ListOpenTickets(ctx, guildID)
}

func (m *Manager) panel(ctx context.Context, guildID, name string) (*models.Panel, error) {
	name = PanelName(name)
	panel, err := m.store.GetPanel(ctx, guildID, name)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("panel %s: %w", name, ErrNotConfigured)
	}
	return panel, err
}
