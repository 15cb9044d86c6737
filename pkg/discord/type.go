package discord

import (
	"errors"
	"time"

	pkghttp "analytics-srv/pkg/http"
	"analytics-srv/pkg/log"
)

var errWebhookRequired = errors.New("discord: webhook id and token are required")

const (
	webhookBaseURL = "https://discord.com/api/webhooks"

	colorError = 0xE74C3C
	colorInfo  = 0x3498DB

	// maxDescriptionLen is the Discord embed description limit.
	maxDescriptionLen = 4096
)

// Config contains configuration for Discord service.
type Config struct {
	Timeout         time.Duration
	RetryCount      int
	RetryDelay      time.Duration
	DefaultUsername string
}

// DefaultConfig returns the default Discord configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:         10 * time.Second,
		RetryCount:      2,
		RetryDelay:      500 * time.Millisecond,
		DefaultUsername: "analytics-srv",
	}
}

type discordImpl struct {
	l       log.Logger
	webhook *DiscordWebhook
	config  Config
	client  pkghttp.IClient
}

// EmbedField represents a field in a Discord embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed represents a Discord embed message.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

// WebhookPayload represents the payload sent to Discord webhook.
type WebhookPayload struct {
	Content  string  `json:"content,omitempty"`
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds,omitempty"`
}
