package notification

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/pokerledger/internal/services/notification Service
//go:generate mockgen -package=mocks -destination=mocks/mock_sink.go github.com/KirkDiggler/pokerledger/internal/services/notification Sink
//go:generate mockgen -package=mocks -destination=mocks/mock_webhook_executor.go github.com/KirkDiggler/pokerledger/internal/services/notification WebhookExecutor

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Service fans ledger entries out to downstream consumers. Delivery is best
// effort: Notify never blocks on a sink and never reports a failure.
type Service interface {
	// Notify queues an entry for delivery
	Notify(ctx context.Context, input *NotifyInput)

	// Close stops accepting entries and waits for queued ones to be delivered
	Close() error
}

// Sink delivers one entry to one destination
type Sink interface {
	// Name identifies the sink in logs
	Name() string

	// Send delivers the entry
	Send(ctx context.Context, input *NotifyInput) error
}

// WebhookExecutor posts to a Discord webhook. *discordgo.Session satisfies it.
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
