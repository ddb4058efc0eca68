package tickets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"discord-tickets/models"

	"github.com/bwmarrin/discordgo"
)

const (
	// CloseButtonID is the custom ID of the close control posted in every ticket.
	CloseButtonID = "persistent_close_ticket_button"

	panelButtonPrefix = "ticket_button_"
)

// PanelButtonID is the activation ID of the button at position on a panel.
// It only depends on stored identity so controls survive restarts.
func PanelButtonID(panelID int64, position int) string {
	return fmt.Sprintf("%s%d_%d", panelButtonPrefix, panelID, position)
}

// ParsePanelButtonID reverses PanelButtonID.
func ParsePanelButtonID(customID string) (panelID int64, position int, ok bool) {
	rest, found := strings.CutPrefix(customID, panelButtonPrefix)
	if !found {
		return 0, 0, false
	}
	idPart, posPart, found := strings.Cut(rest, "_")
	if !found {
		return 0, 0, false
	}
	panelID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	position, err = strconv.Atoi(posPart)
	if err != nil || position < 0 || position > 3 {
		return 0, 0, false
	}
	return panelID, position, true
}

// CloseComponents is the close control attached to every ticket message.
func CloseComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Close Ticket",
				Style:    discordgo.DangerButton,
				Emoji:    &discordgo.ComponentEmoji{Name: "🔒"},
				CustomID: CloseButtonID,
			},
		}},
	}
}

// PanelView is the interactive handler of one panel. Buttons are read from
// storage once and cached until the panel is reconfigured.
type PanelView struct {
	PanelID int64
	GuildID string

	mu      sync.Mutex
	loaded  bool
	buttons []models.ButtonSpec
}

// LoadButtons reads the panel's buttons unless they are already cached.
func (v *PanelView) LoadButtons(ctx context.Context, store Store) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loaded {
		return nil
	}

	stored, err := store.ListButtons(ctx, v.PanelID)
	if err != nil {
		return fmt.Errorf("failed to load buttons of panel %d: %w", v.PanelID, err)
	}
	specs := make([]models.ButtonSpec, 0, len(stored))
	for _, b := range stored {
		specs = append(specs, b.Spec())
	}
	if len(specs) == 0 {
		specs = append(specs, models.DefaultButtonSpec())
	}
	v.buttons = specs
	v.loaded = true
	return nil
}

// Buttons returns the cached buttons ordered by position.
func (v *PanelView) Buttons() []models.ButtonSpec {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]models.ButtonSpec(nil), v.buttons...)
}

// Button returns the cached button at position.
func (v *PanelView) Button(position int) (models.ButtonSpec, bool) {
	for _, b := range v.Buttons() {
		if b.Position == position {
			return b, true
		}
	}
	return models.ButtonSpec{}, false
}

// Components builds the action row of the panel message.
func (v *PanelView) Components() []discordgo.MessageComponent {
	buttons := v.Buttons()
	row := make([]discordgo.MessageComponent, 0, len(buttons))
	for _, b := range buttons {
		row = append(row, discordgo.Button{
			Label:    b.Label,
			Style:    b.Style.Discord(),
			Emoji:    &discordgo.ComponentEmoji{Name: b.Emoji},
			CustomID: PanelButtonID(v.PanelID, b.Position),
		})
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: row}}
}

func (v *PanelView) invalidate() {
	v.mu.Lock()
	v.loaded = false
	v.buttons = nil
	v.mu.Unlock()
}

// Registry keeps the interactive handlers that make posted panels and
// ticket controls clickable after a restart. Load it at startup and Close
// it at shutdown.
type Registry struct {
	store Store

	mu     sync.RWMutex
	open   bool
	panels map[int64]*PanelView
}

// NewRegistry returns an empty registry backed by store.
func NewRegistry(store Store) *Registry {
	return &Registry{store: store, panels: make(map[int64]*PanelView)}
}

// Load registers the close handler and one view per stored panel.
func (r *Registry) Load(ctx context.Context) error {
	panels, err := r.store.ListPanels(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to load panels: %w", err)
	}

	views := make(map[int64]*PanelView, len(panels))
	for _, p := range panels {
		v := &PanelView{PanelID: p.ID, GuildID: p.GuildID}
		if err := v.LoadButtons(ctx, r.store); err != nil {
			return err
		}
		views[p.ID] = v
	}

	r.mu.Lock()
	r.panels = views
	r.open = true
	r.mu.Unlock()

	log.Printf("Registered %d panel views and the ticket close handler", len(views))
	return nil
}

// Close removes every registered view.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panels = make(map[int64]*PanelView)
	r.open = false
}

// Len returns the number of registered panel views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.panels)
}

// Handles reports whether customID belongs to a registered handler.
func (r *Registry) Handles(customID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.open {
		return false
	}
	if customID == CloseButtonID {
		return true
	}
	_, _, ok := ParsePanelButtonID(customID)
	return ok
}

// View returns the loaded view of panel, registering it when it is new.
func (r *Registry) View(ctx context.Context, panel *models.Panel) (*PanelView, error) {
	r.mu.Lock()
	v, ok := r.panels[panel.ID]
	if !ok {
		v = &PanelView{PanelID: panel.ID, GuildID: panel.GuildID}
		r.panels[panel.ID] = v
	}
	r.mu.Unlock()

	if err := v.LoadButtons(ctx, r.store); err != nil {
		return nil, err
	}
	return v, nil
}

// Lookup resolves a panel button activation to its view and button. A
// control whose position the panel no longer has yields ErrStalePanel.
func (r *Registry) Lookup(ctx context.Context, customID string) (*PanelView, models.ButtonSpec, error) {
	panelID, position, ok := ParsePanelButtonID(customID)
	if !ok || !r.isOpen() {
		return nil, models.ButtonSpec{}, fmt.Errorf("no handler for %q: %w", customID, ErrNotFound)
	}

	r.mu.RLock()
	v, found := r.panels[panelID]
	r.mu.RUnlock()

	if !found {
		panel, err := r.store.GetPanelByID(ctx, panelID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, models.ButtonSpec{}, fmt.Errorf("panel %d: %w", panelID, ErrNotConfigured)
			}
			return nil, models.ButtonSpec{}, err
		}
		if v, err = r.View(ctx, panel); err != nil {
			return nil, models.ButtonSpec{}, err
		}
	} else if err := v.LoadButtons(ctx, r.store); err != nil {
		return nil, models.ButtonSpec{}, err
	}

	spec, ok := v.Button(position)
	if !ok {
		return nil, models.ButtonSpec{}, fmt.Errorf("button %d of panel %d: %w", position, panelID, ErrStalePanel)
	}
	return v, spec, nil
}

// Invalidate drops the cached buttons of a panel after reconfiguration.
func (r *Registry) Invalidate(panelID int64) {
	r.mu.RLock()
	v, ok := r.panels[panelID]
	r.mu.RUnlock()
	if ok {
		v.invalidate()
	}
}

// Remove unregisters a deleted panel.
func (r *Registry) Remove(panelID int64) {
	r.mu.Lock()
	delete(r.panels, panelID)
	r.mu.Unlock()
}

func (r *Registry) isOpen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.open
}
