package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/pokerledger/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// WebhookURLPrefix is the only webhook URL form that is accepted
const WebhookURLPrefix = "https://discord.com/api/webhooks/"

// DefaultWebhookUsername is shown as the sender of webhook messages
const DefaultWebhookUsername = "Poker Ledger Bot"

// ErrInvalidWebhookURL is returned for URLs that are not Discord webhooks
var ErrInvalidWebhookURL = errors.New("not a discord webhook URL")

// ParseWebhookURL splits a webhook URL into its ID and token
func ParseWebhookURL(url string) (id, token string, err error) {
	if !strings.HasPrefix(url, WebhookURLPrefix) {
		return "", "", ErrInvalidWebhookURL
	}
	parts := strings.Split(strings.TrimPrefix(url, WebhookURLPrefix), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidWebhookURL
	}
	return parts[0], parts[1], nil
}

// DiscordWebhookConfig holds configuration for the webhook sink
type DiscordWebhookConfig struct {
	// WebhookURL must start with WebhookURLPrefix
	WebhookURL string

	// Executor posts the message, usually a *discordgo.Session
	Executor WebhookExecutor

	// MessagingService renders the embed
	MessagingService messaging.Service

	// Username overrides DefaultWebhookUsername
	Username string
}

// DiscordWebhookSink posts one embed per ledger entry to a Discord webhook
type DiscordWebhookSink struct {
	webhookID string
	token     string
	username  string
	executor  WebhookExecutor
	messaging messaging.Service
}

// NewDiscordWebhook creates a webhook sink
func NewDiscordWebhook(cfg *DiscordWebhookConfig) (*DiscordWebhookSink, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Executor == nil {
		return nil, errors.New("webhook executor cannot be nil")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	id, token, err := ParseWebhookURL(cfg.WebhookURL)
	if err != nil {
		return nil, err
	}

	username := cfg.Username
	if username == "" {
		username = DefaultWebhookUsername
	}

	return &DiscordWebhookSink{
		webhookID: id,
		token:     token,
		username:  username,
		executor:  cfg.Executor,
		messaging: cfg.MessagingService,
	}, nil
}

// Name implements Sink
func (d *DiscordWebhookSink) Name() string {
	return "discord_webhook"
}

// Send implements Sink
func (d *DiscordWebhookSink) Send(ctx context.Context, input *NotifyInput) error {
	out, err := d.messaging.GetEntryEmbed(ctx, &messaging.GetEntryEmbedInput{
		SessionID: input.SessionID,
		Entry:     input.Entry,
		ChipValue: input.ChipValue,
		Players:   input.Players,
	})
	if err != nil {
		return fmt.Errorf("failed to build embed: %w", err)
	}

	_, err = d.executor.WebhookExecute(d.webhookID, d.token, false, &discordgo.WebhookParams{
		Username: d.username,
		Embeds:   []*discordgo.MessageEmbed{out.Embed},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to execute webhook: %w", err)
	}

	return nil
}
