package command

import (
	"discord-tickets/models"

	"github.com/bwmarrin/discordgo"
)

// Subcommand names of the /tickets group.
const (
	Name = "tickets"

	SubSettings     = "settings"
	SubButton       = "button"
	SubDeleteButton = "delete_button"
	SubDeletePanel  = "delete_panel"
	SubHere         = "here"
	SubClose        = "close"
	SubList         = "list"
	SubPanels       = "panels"
)

var (
	minPosition float64 = 1
	dmAllowed           = false
)

// TicketsCommand defines the structure for the /tickets command group.
type TicketsCommand struct{}

func panelOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:         "panel",
		Description:  "The panel name (default: " + models.DefaultPanelName + ")",
		Type:         discordgo.ApplicationCommandOptionString,
		Required:     required,
		Autocomplete: true,
	}
}

func positionOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Name:        "position",
		Description: "Button position (1-3)",
		Type:        discordgo.ApplicationCommandOptionInteger,
		Required:    true,
		MinValue:    &minPosition,
		MaxValue:    3,
	}
}

func styleChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.ButtonStyles))
	for _, style := range models.ButtonStyles {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(style), Value: string(style)})
	}
	return choices
}

// Definition returns the application command definition.
func (c *TicketsCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:         Name,
		Description:  "Support ticket system",
		DMPermission: &dmAllowed,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        SubSettings,
				Description: "Setup the ticket system",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					panelOption(false),
					{
						Name:         "category",
						Description:  "Category where ticket channels are created",
						Type:         discordgo.ApplicationCommandOptionChannel,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory},
					},
					{
						Name:         "log_channel",
						Description:  "Channel receiving closed ticket transcripts",
						Type:         discordgo.ApplicationCommandOptionChannel,
						ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
					},
					{
						Name:        "panel_title",
						Description: "Title of the panel message",
						Type:        discordgo.ApplicationCommandOptionString,
					},
					{
						Name:        "panel_description",
						Description: "Description of the panel message",
						Type:        discordgo.ApplicationCommandOptionString,
					},
				},
			},
			{
				Name:        SubButton,
				Description: "Configure a custom ticket button",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					positionOption(),
					panelOption(false),
					{Name: "button_label", Description: "Label of the button", Type: discordgo.ApplicationCommandOptionString},
					{Name: "ticket_title", Description: "Title of the ticket message", Type: discordgo.ApplicationCommandOptionString},
					{Name: "ticket_message", Description: "Body of the ticket message", Type: discordgo.ApplicationCommandOptionString},
					{Name: "button_emoji", Description: "Emoji of the button", Type: discordgo.ApplicationCommandOptionString},
					{
						Name:        "button_style",
						Description: "Style of the button",
						Type:        discordgo.ApplicationCommandOptionString,
						Choices:     styleChoices(),
					},
					{Name: "ticket_color", Description: "Color of the ticket message (name or #RRGGBB)", Type: discordgo.ApplicationCommandOptionString},
					{Name: "support_roles", Description: "Comma-separated role IDs or mentions, empty to clear", Type: discordgo.ApplicationCommandOptionString},
				},
			},
			{
				Name:        SubDeleteButton,
				Description: "Delete a custom ticket button",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					positionOption(),
					panelOption(false),
				},
			},
			{
				Name:        SubDeletePanel,
				Description: "Delete a ticket panel with its buttons",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					panelOption(true),
				},
			},
			{
				Name:        SubHere,
				Description: "Create the ticket buttons in the current channel",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandOption{
					panelOption(false),
				},
			},
			{
				Name:        SubClose,
				Description: "Close a ticket",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubList,
				Description: "List open tickets",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        SubPanels,
				Description: "List configured panels",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	}
}

// RequiredPermissions maps each subcommand to the permission its caller needs.
var RequiredPermissions = map[string]int64{
	SubSettings:     discordgo.PermissionManageGuild,
	SubButton:       discordgo.PermissionManageGuild,
	SubDeleteButton: discordgo.PermissionManageGuild,
	SubDeletePanel:  discordgo.PermissionManageGuild,
	SubPanels:       discordgo.PermissionManageGuild,
	SubHere:         discordgo.PermissionManageChannels,
	SubClose:        discordgo.PermissionManageChannels,
	SubList:         discordgo.PermissionManageChannels,
}
