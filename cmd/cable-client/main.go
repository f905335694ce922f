package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"
)

// cable-client subscribes to the caller's user stream and the configured
// conversations, then logs every event until interrupted.
func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.LogLevel,
		Mode:         log.ModeDevelopment,
		Encoding:     cfg.LogEncoding,
		ColorEnabled: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	header := http.Header{}
	header.Set("Authorization", "Bearer "+cfg.Token)

	router, err := cable.New(cfg.URL,
		cable.WithLogger(logger),
		cable.WithHeader(header),
		cable.WithReconnectDelay(cfg.ReconnectDelay),
		cable.WithStateListener(func(s cable.State) {
			logger.Infof(ctx, "cable state: %s", s)
		}),
	)
	if err != nil {
		logger.Errorf(ctx, "Failed to create router: %v", err)
		return
	}
	defer router.Close()

	if !cfg.SkipUserStream {
		if _, err := router.SubscribeToUserStream(cable.EventHandler(logEvent(ctx, logger, "user"))); err != nil {
			logger.Errorf(ctx, "Failed to subscribe to user stream: %v", err)
			return
		}
	}
	for _, id := range cfg.Conversations {
		source := fmt.Sprintf("conversation:%d", id)
		if _, err := router.SubscribeToConversationChat(id, cable.EventHandler(logEvent(ctx, logger, source))); err != nil {
			logger.Errorf(ctx, "Failed to subscribe to %s: %v", source, err)
			return
		}
	}

	logger.Infof(ctx, "Listening on %s with %d subscriptions", cfg.URL, len(router.Identifiers()))
	<-ctx.Done()
	logger.Info(ctx, "Shutting down")
}

func logEvent(ctx context.Context, logger log.Logger, source string) func(cable.Event) {
	return func(ev cable.Event) {
		switch p := ev.Payload().(type) {
		case *cable.MessageCreated:
			logger.Infof(ctx, "[%s] message %d from %s: %s", source, p.ID, p.AuthorName, p.Body)
		case *cable.TypingIndicator:
			logger.Debugf(ctx, "[%s] %s typing=%t", source, p.UserName, p.IsTyping)
		default:
			logger.Infof(ctx, "[%s] %s %+v", source, ev.Type, p)
		}
	}
}
