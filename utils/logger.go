package utils

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	ColorInfo  = 0x00ff00 // Green
	ColorWarn  = 0xffff00 // Yellow
	ColorError = 0xff0000 // Red
)

var (
	mu        sync.RWMutex
	session   *discordgo.Session
	channelID string
)

// InitLogger initializes the logger with a Discord session and the admin channel.
func InitLogger(s *discordgo.Session, adminChannelID string) {
	mu.Lock()
	defer mu.Unlock()
	session = s
	channelID = adminChannelID
	if channelID == "" {
		log.Println("Warning: bot.adminChannelId is not set in config.yaml. Logging to channel will be disabled.")
	}
}

// Log sends a log message to the admin channel, falling back to the process log.
func Log(level, module, operation, details string) {
	mu.RLock()
	s, ch := session, channelID
	mu.RUnlock()

	log.Printf("[%s] Module: %s, Operation: %s, Details: %s", level, module, operation, details)
	if s == nil || ch == "" {
		return
	}

	_, err := s.ChannelMessageSendEmbed(ch, logEmbed(level, module, operation, details, time.Now()))
	if err != nil {
		log.Printf("Error sending log message to Discord: %v", err)
	}
}

func logEmbed(level, module, operation, details string, now time.Time) *discordgo.MessageEmbed {
	var color int
	switch level {
	case "WARN":
		color = ColorWarn
	case "ERROR":
		color = ColorError
	default:
		color = ColorInfo
	}

	if details == "" {
		details = "-"
	}
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("Log Level: %s", level),
		Color:     color,
		Timestamp: now.Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Module", Value: module, Inline: true},
			{Name: "Operation", Value: operation, Inline: true},
			{Name: "Details", Value: details},
		},
	}
}

// Info logs an informational message.
func Info(module, operation, details string) {
	Log("INFO", module, operation, details)
}

// Warn logs a warning message.
func Warn(module, operation, details string) {
	Log("WARN", module, operation, details)
}

// Error logs an error message.
func Error(module, operation, details string) {
	Log("ERROR", module, operation, details)
}
