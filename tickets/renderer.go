package tickets

import (
	"context"
	"errors"
	"fmt"
	"log"

	"discord-tickets/monitoring"

	"github.com/bwmarrin/discordgo"
)

// Renderer posts panel messages.
type Renderer struct {
	store    Store
	platform Platform
	registry *Registry
}

// NewRenderer returns a Renderer.
func NewRenderer(store Store, platform Platform, registry *Registry) *Renderer {
	return &Renderer{store: store, platform: platform, registry: registry}
}

// RenderAndPost posts the panel to channelID, replacing its previous message.
func (r *Renderer) RenderAndPost(ctx context.Context, guildID, panelName, channelID string) (*discordgo.Message, error) {
	panelName = PanelName(panelName)
	panel, err := r.store.GetPanel(ctx, guildID, panelName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("panel %s: %w", panelName, ErrNotConfigured)
		}
		return nil, err
	}

	if panel.PostedChannelID != nil && panel.PostedMessageID != nil {
		err := r.platform.DeleteMessage(ctx, *panel.PostedChannelID, *panel.PostedMessageID)
		if err != nil {
			log.Printf("Could not delete previous panel message %s of panel %s: %v", *panel.PostedMessageID, panel.Name, err)
		}
	}

	view, err := r.registry.View(ctx, panel)
	if err != nil {
		return nil, err
	}

	msg, err := r.platform.SendMessage(ctx, channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       panel.DisplayTitle(),
			Description: panel.DisplayDescription(),
			Color:       ColorBlurple,
		}},
		Components: view.Components(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post panel %s: %w", panel.Name, err)
	}

	if err := r.store.SetPanelMessage(ctx, panel.ID, channelID, msg.ID); err != nil {
		return nil, err
	}
	monitoring.PanelsPosted.Inc()
	return msg, nil
}
