package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDefaults(t *testing.T) {
	v := viper.New()
	v.Set("BOT_TOKEN", "token")

	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, "db/tickets.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Second, cfg.Tickets.CreateCooldown)
	assert.Equal(t, 1, cfg.Tickets.CreateBurst)
	assert.Equal(t, "@hourly", cfg.Tickets.ReconcileSchedule)
	assert.Zero(t, cfg.Tickets.RetentionDays)
	assert.True(t, cfg.Monitoring.Enabled)
	assert.Equal(t, "8080", cfg.Monitoring.Port)
}

func TestDecodeYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
bot:
  guildId: "123"
  adminChannelId: "456"
  cleanupCommands: true
database:
  path: /tmp/t.db
tickets:
  createCooldown: 30s
  createBurst: 0
  retentionDays: -4
monitoring:
  enabled: false
  port: "9090"
`)))
	v.Set("BOT_TOKEN", "token")

	cfg, err := Decode(v)
	require.NoError(t, err)

	assert.Equal(t, "123", cfg.Bot.GuildID)
	assert.Equal(t, "456", cfg.Bot.AdminChannelID)
	assert.True(t, cfg.Bot.CleanupCommands)
	assert.Equal(t, "/tmp/t.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Tickets.CreateCooldown)
	assert.Equal(t, 1, cfg.Tickets.CreateBurst)
	assert.Zero(t, cfg.Tickets.RetentionDays)
	assert.False(t, cfg.Monitoring.Enabled)
	assert.Equal(t, "9090", cfg.Monitoring.Port)
}

func TestDecodeRequiresToken(t *testing.T) {
	_, err := Decode(viper.New())
	require.Error(t, err)
}
