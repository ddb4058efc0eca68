package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"discord-tickets/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig 从多个源加载配置：.env 文件、config.yaml、以及 ./config/tickets.json。
// 配置加载顺序:
// 1. .env 文件 (用于环境变量)
// 2. config.yaml (基础配置)
// 3. config/tickets.json (合并到主配置)
// 环境变量会覆盖配置文件中的同名设置。
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Printf("未找到 .env 文件，将跳过加载。")
	}

	setDefaults(viper.GetViper())

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("未找到基础配置文件 (config.yaml)，将仅使用环境变量和后续合并的配置。")
		} else {
			panic(fmt.Errorf("解析基础配置文件时发生致命错误: %w", err))
		}
	}

	// 合并工单配置文件 (config/tickets.json)。
	viper.SetConfigName("tickets")
	viper.SetConfigType("json")
	viper.AddConfigPath("./config")

	if err := viper.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Printf("未找到工单配置文件 (config/tickets.json)，将跳过合并。")
		} else {
			panic(fmt.Errorf("合并工单配置文件时发生致命错误: %w", err))
		}
	}
}

// Load reads every source through LoadConfig and decodes the typed view.
func Load() (*models.BotConfig, error) {
	LoadConfig()
	return Decode(viper.GetViper())
}

// Decode builds a BotConfig from an already populated viper instance.
func Decode(v *viper.Viper) (*models.BotConfig, error) {
	setDefaults(v)

	var cfg models.BotConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.BotToken = v.GetString("BOT_TOKEN")
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("no bot token provided")
	}
	if cfg.Tickets.CreateBurst < 1 {
		cfg.Tickets.CreateBurst = 1
	}
	if cfg.Tickets.RetentionDays < 0 {
		cfg.Tickets.RetentionDays = 0
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.guildId", "")
	v.SetDefault("bot.adminChannelId", "")
	v.SetDefault("bot.cleanupCommands", false)
	v.SetDefault("database.path", "db/tickets.db")
	v.SetDefault("tickets.createCooldown", 10*time.Second)
	v.SetDefault("tickets.createBurst", 1)
	v.SetDefault("tickets.reconcileSchedule", "@hourly")
	v.SetDefault("tickets.retentionDays", 0)
	v.SetDefault("monitoring.enabled", true)
	v.SetDefault("monitoring.port", "8080")
}
