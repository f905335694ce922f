package minio

import (
	"context"
	"fmt"
	"time"

	"chat-realtime/config"
	miniopkg "chat-realtime/pkg/minio"
)

const (
	defaultConnectTimeout = 5 * time.Second
	defaultMaxRetries     = 3
)

// Enabled reports whether an attachment store is configured.
func Enabled(cfg config.MinIOConfig) bool {
	return cfg.Endpoint != ""
}

// Connect creates the attachment store client and verifies it, retrying with
// exponential backoff up to defaultMaxRetries times.
func Connect(ctx context.Context, cfg config.MinIOConfig) (miniopkg.MinIO, error) {
	impl, err := miniopkg.NewMinIO(miniopkg.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	var lastErr error
	for i := 0; i < defaultMaxRetries; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
		lastErr = impl.Connect(connectCtx)
		cancel()
		if lastErr == nil {
			fmt.Printf("[MinIO] Successfully connected to %s\n", cfg.Endpoint)
			return impl, nil
		}

		if i < defaultMaxRetries-1 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			fmt.Printf("[MinIO] Connection attempt %d/%d failed, retrying in %v...\n", i+1, defaultMaxRetries, backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d retries: %w", defaultMaxRetries, lastErr)
}
