package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chat-realtime/internal/model"
	ws "chat-realtime/internal/websocket"
	"chat-realtime/pkg/cable"
	"chat-realtime/pkg/log"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const maxCommandDelay = 5 * time.Second

// connection is one client socket. readPump owns inbound commands and
// writePump is the only writer; subs is guarded by the hub lock.
type connection struct {
	id      string
	uc      *implUseCase
	hub     *Hub
	conn    *websocket.Conn
	scope   model.Scope
	send    chan []byte
	subs    map[string]string // identifier -> stream
	limiter *rate.Limiter
	logger  log.Logger
}

func (c *connection) start(ctx context.Context) {
	c.hub.deliver(c, welcomeFrame())
	go c.writePump(ctx)
	go c.readPump(ctx)
}

func (c *connection) readPump(ctx context.Context) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	cfg := c.uc.cfg
	if cfg.MaxMessageSize > 0 {
		c.conn.SetReadLimit(cfg.MaxMessageSize)
	}
	extend := func() {
		if cfg.PongWait > 0 {
			c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
		}
	}
	extend()
	c.conn.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Warnf(ctx, "internal.websocket.usecase.connection.readPump: %v", err)
			}
			return
		}
		extend()

		if err := c.pace(ctx); err != nil {
			c.hub.commandsRejected.Add(1)
			c.logger.Warnf(ctx, "internal.websocket.usecase.connection.readPump: %v", err)
			return
		}
		c.handleCommand(ctx, data)
	}
}

// pace delays a command until the limiter admits it. A client that would
// have to wait longer than maxCommandDelay is disconnected so its router
// reconnects and resubscribes; commands are never dropped on an open socket.
func (c *connection) pace(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, maxCommandDelay)
	defer cancel()
	if err := c.limiter.Wait(waitCtx); err != nil {
		return fmt.Errorf("%w: %v", ws.ErrRateLimited, err)
	}
	return nil
}

func (c *connection) handleCommand(ctx context.Context, data []byte) {
	var cmd cable.Command
	if err := json.Unmarshal(data, &cmd); err != nil || cmd.Identifier == "" {
		c.logger.Debugf(ctx, "internal.websocket.usecase.connection.handleCommand: %v", ws.ErrInvalidCommand)
		return
	}

	switch cmd.Command {
	case cable.CommandSubscribe:
		c.subscribe(ctx, cmd.Identifier)
	case cable.CommandUnsubscribe:
		c.hub.unsubscribe(c, cmd.Identifier)
	default:
		c.logger.Debugf(ctx, "internal.websocket.usecase.connection.handleCommand: unsupported command %q", cmd.Command)
	}
}

func (c *connection) subscribe(ctx context.Context, identifier string) {
	stream, err := c.uc.resolveStream(ctx, c.scope, identifier)
	if err != nil {
		if !errors.Is(err, ws.ErrNotParticipant) && !errors.Is(err, ws.ErrUnknownChannel) && !errors.Is(err, ws.ErrInvalidCommand) {
			c.logger.Errorf(ctx, "internal.websocket.usecase.connection.subscribe.resolveStream: %v", err)
		} else {
			c.logger.Infof(ctx, "internal.websocket.usecase.connection.subscribe: rejected %s: %v", identifier, err)
		}
		c.hub.deliver(c, rejectFrame(identifier))
		return
	}

	if c.hub.subscribe(c, identifier, stream) {
		c.hub.deliver(c, confirmFrame(identifier))
	}
}

func (c *connection) writePump(ctx context.Context) {
	cfg := c.uc.cfg
	interval := cfg.PingInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	deadline := func() {
		if cfg.WriteWait > 0 {
			c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
		}
	}

	for {
		select {
		case message, ok := <-c.send:
			deadline()
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debugf(ctx, "internal.websocket.usecase.connection.writePump: %v", err)
				return
			}

		case now := <-ticker.C:
			deadline()
			if err := c.conn.WriteMessage(websocket.TextMessage, pingFrame(now)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
