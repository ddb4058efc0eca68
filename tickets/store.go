package tickets

import (
	"context"
	"time"

	"discord-tickets/models"
)

// Store is the persistence the ticket workflow needs. *database.TicketDB implements it.
type Store interface {
	GetPanel(ctx context.Context, guildID, name string) (*models.Panel, error)
	GetPanelByID(ctx context.Context, id int64) (*models.Panel, error)
	ListPanels(ctx context.Context, guildID string) ([]*models.Panel, error)
	UpsertPanel(ctx context.Context, guildID, name string, s models.PanelSettings) (*models.Panel, error)
	SetPanelMessage(ctx context.Context, panelID int64, channelID, messageID string) error
	DeletePanel(ctx context.Context, guildID, name string) error

	GetButton(ctx context.Context, panelID int64, position int) (*models.Button, error)
	ListButtons(ctx context.Context, panelID int64) ([]*models.Button, error)
	UpsertButton(ctx context.Context, panelID int64, position int, s models.ButtonSettings, roles []string) (*models.Button, error)
	ButtonRoles(ctx context.Context, buttonID int64) ([]string, error)
	DeleteButton(ctx context.Context, panelID int64, position int) error

	InsertTicket(ctx context.Context, tk *models.Ticket) error
	GetTicket(ctx context.Context, channelID string) (*models.Ticket, error)
	CloseTicket(ctx context.Context, channelID string, at time.Time) error
	ListOpenTickets(ctx context.Context, guildID string) ([]*models.Ticket, error)
}
