package discord

import (
	"context"
	"fmt"
	"net/http"
	"time"

	pkghttp "analytics-srv/pkg/http"
)

func newHTTPClient(cfg Config) pkghttp.IClient {
	return pkghttp.NewClient(pkghttp.ClientConfig{
		Timeout:   cfg.Timeout,
		Retries:   cfg.RetryCount,
		RetryWait: cfg.RetryDelay,
	})
}

func (d *discordImpl) url() string {
	return fmt.Sprintf("%s/%s/%s", webhookBaseURL, d.webhook.ID, d.webhook.Token)
}

func (d *discordImpl) send(ctx context.Context, payload WebhookPayload) error {
	if payload.Username == "" {
		payload.Username = d.config.DefaultUsername
	}
	body, status, err := d.client.Post(ctx, d.url(), payload, nil)
	if err != nil {
		return fmt.Errorf("discord: send failed: %w", err)
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return fmt.Errorf("discord: unexpected status %d: %s", status, string(body))
	}
	return nil
}

// SendMessage posts plain text content.
func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	return d.send(ctx, WebhookPayload{Content: content})
}

// SendError posts an error embed.
func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	embed := Embed{
		Title:       title,
		Description: truncate(description),
		Color:       colorError,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil {
		embed.Fields = append(embed.Fields, EmbedField{Name: "Error", Value: truncate(err.Error())})
	}
	return d.send(ctx, WebhookPayload{Embeds: []Embed{embed}})
}

// ReportBug posts an informational bug report.
func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.send(ctx, WebhookPayload{Embeds: []Embed{{
		Title:       "Bug report",
		Description: truncate(message),
		Color:       colorInfo,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}}})
}

// Close releases resources. The webhook client is stateless.
func (d *discordImpl) Close() error {
	return nil
}

func truncate(s string) string {
	if len(s) <= maxDescriptionLen {
		return s
	}
	return s[:maxDescriptionLen-3] + "..."
}
