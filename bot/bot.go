package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discord-tickets/command"
	"discord-tickets/config"
	"discord-tickets/database"
	"discord-tickets/models"
	"discord-tickets/monitoring"
	"discord-tickets/platform"
	"discord-tickets/tickets"
	"discord-tickets/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session *discordgo.Session
	Config  *models.BotConfig
	DB      *database.TicketDB

	Registry  *tickets.Registry
	Manager   *tickets.Manager
	Renderer  *tickets.Renderer
	Lifecycle *tickets.Lifecycle

	platform *platform.Discord
	throttle *tickets.Throttle
	commands map[string]command.Command
	created  []*discordgo.ApplicationCommand
	cron     *cron.Cron
	monitor  *monitoring.Server
}

// NewBot creates and initializes a new Bot instance.
func NewBot() (*Bot, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	db, err := database.NewTicketDB(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("error opening ticket database: %w", err)
	}

	discord := platform.NewDiscord(dg)
	registry := tickets.NewRegistry(db)
	throttle := tickets.NewThrottle(cfg.Tickets.CreateCooldown, cfg.Tickets.CreateBurst)

	return &Bot{
		Session:   dg,
		Config:    cfg,
		DB:        db,
		Registry:  registry,
		Manager:   tickets.NewManager(db, registry),
		Renderer:  tickets.NewRenderer(db, discord, registry),
		Lifecycle: tickets.NewLifecycle(db, discord, tickets.RealClock(), throttle),
		platform:  discord,
		throttle:  throttle,
		commands:  make(map[string]command.Command),
	}, nil
}

// RegisterCommands registers the provided commands.
func (b *Bot) RegisterCommands(commands []command.Command) {
	for _, cmd := range commands {
		b.commands[cmd.Definition().Name] = cmd
	}
}

// Start opens the bot's session and registers handlers.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	utils.InitLogger(b.Session, b.Config.Bot.AdminChannelID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := b.Registry.Load(ctx); err != nil {
		return fmt.Errorf("error loading ticket views: %w", err)
	}

	// Register slash commands
	for _, cmd := range b.commands {
		created, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.Config.Bot.GuildID, cmd.Definition())
		if err != nil {
			utils.Warn("Bot", "RegisterCommands", fmt.Sprintf("Cannot create '%v' command: %v", cmd.Definition().Name, err))
			continue
		}
		b.created = append(b.created, created)
	}

	c, err := startScheduler(b.Config.Tickets.ReconcileSchedule, &maintenance{
		reconciler:    b.Lifecycle,
		pruner:        b.DB,
		limiters:      b.throttle,
		retentionDays: b.Config.Tickets.RetentionDays,
		now:           time.Now,
	})
	if err != nil {
		return err
	}
	b.cron = c

	if b.Config.Monitoring.Enabled {
		b.monitor = monitoring.NewServer(b.Config.Monitoring.Port, b.DB.Ping, b.platform.Ping)
		b.monitor.Start()
	}

	utils.Info("Bot", "Start", fmt.Sprintf("Ticket bot started with %d panel views", b.Registry.Len()))
	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	stopScheduler(b.cron)
	b.Registry.Close()

	if b.Config.Bot.CleanupCommands && b.Session.State != nil && b.Session.State.User != nil {
		for _, cmd := range b.created {
			if err := b.Session.ApplicationCommandDelete(b.Session.State.User.ID, b.Config.Bot.GuildID, cmd.ID); err != nil {
				log.Printf("Cannot delete '%v' command: %v", cmd.Name, err)
			}
		}
	}

	if b.monitor != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := b.monitor.Shutdown(ctx); err != nil {
			log.Printf("Error stopping monitoring server: %v", err)
		}
		cancel()
	}

	if b.Session != nil {
		b.Session.Close()
	}
	if err := b.DB.Close(); err != nil {
		log.Printf("Error closing ticket database: %v", err)
	}
	fmt.Println("Bot stopped gracefully.")
}

// Run is the main entry point for the bot application.
func Run(registerHandlers func(*Bot), commands []command.Command) {
	bot, err := NewBot()
	if err != nil {
		log.Fatalf("Error initializing bot: %v", err)
	}

	bot.RegisterCommands(commands)

	if err := bot.Start(registerHandlers); err != nil {
		log.Fatalf("Error starting bot: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	bot.Stop()
}
