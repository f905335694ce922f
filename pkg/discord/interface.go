package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chat-realtime/pkg/log"
)

var errWebhookRequired = errors.New("discord: webhook id and token are required")

// IDiscord posts operational messages to a Discord webhook.
type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}

// New creates a webhook client from the webhook id and token.
func New(l log.Logger, id, token string) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, errWebhookRequired
	}
	return newWithURL(l, fmt.Sprintf(webhookURLTemplate, id, token), DefaultConfig()), nil
}

func newWithURL(l log.Logger, webhookURL string, cfg Config) *discordImpl {
	if l == nil {
		l = log.NewNop()
	}
	return &discordImpl{
		l:          l,
		webhookURL: webhookURL,
		config:     cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}
