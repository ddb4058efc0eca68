package models

import "time"

// BotConfig represents the merged config.yaml / config/tickets.json / environment settings.
type BotConfig struct {
	BotToken   string           `mapstructure:"-"` // read from BOT_TOKEN
	Bot        BotSection       `mapstructure:"bot"`
	Database   DatabaseSection  `mapstructure:"database"`
	Tickets    TicketsSection   `mapstructure:"tickets"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// BotSection holds the Discord session settings.
type BotSection struct {
	GuildID         string `mapstructure:"guildId"`         // empty registers commands globally
	AdminChannelID  string `mapstructure:"adminChannelId"`  // admin log channel
	CleanupCommands bool   `mapstructure:"cleanupCommands"` // delete commands on shutdown
}

// DatabaseSection holds the storage settings.
type DatabaseSection struct {
	Path string `mapstructure:"path"`
}

// TicketsSection holds the ticket workflow tuning knobs.
type TicketsSection struct {
	CreateCooldown    time.Duration `mapstructure:"createCooldown"`
	CreateBurst       int           `mapstructure:"createBurst"`
	ReconcileSchedule string        `mapstructure:"reconcileSchedule"`
	RetentionDays     int           `mapstructure:"retentionDays"` // 0 keeps closed tickets forever
}

// MonitoringConfig holds the metrics/health server settings.
type MonitoringConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}
