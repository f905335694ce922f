package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/multierr"
)

// Run starts the HTTP server and all background services, then blocks until shutdown signal.
//  1. Map HTTP handlers and routes (builds the hub, subscriber and dispatcher)
//  2. Start the hub and the Redis subscriber
//  3. Start HTTP server
//  4. Wait for shutdown signal, then stop everything in reverse order
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	go srv.wsUC.Run()
	srv.logger.Info(ctx, "Cable hub started")

	if err := srv.wsSubscriber.Start(); err != nil {
		srv.logger.Errorf(ctx, "Failed to start Redis subscriber: %v", err)
		_ = srv.wsUC.Shutdown(ctx)
		return err
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	srv.logger.Infof(ctx, "HTTP server started on %s", httpSrv.Addr)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	var runErr error
	select {
	case sig := <-ch:
		srv.logger.Infof(ctx, "Received signal %v, stopping chat realtime service...", sig)
	case runErr = <-errCh:
		srv.logger.Errorf(ctx, "HTTP server error: %v", runErr)
	}

	return multierr.Append(runErr, srv.shutdown(httpSrv))
}

// shutdown stops intake first so no new broadcasts reach a closing hub.
// The hub sends every client a server_restart disconnect before closing.
func (srv *HTTPServer) shutdown(httpSrv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	var err error
	if e := srv.wsSubscriber.Shutdown(ctx); e != nil {
		srv.logger.Errorf(ctx, "Redis subscriber shutdown error: %v", e)
		err = multierr.Append(err, e)
	}
	if e := srv.wsUC.Shutdown(ctx); e != nil {
		srv.logger.Errorf(ctx, "Cable hub shutdown error: %v", e)
		err = multierr.Append(err, e)
	}
	if e := httpSrv.Shutdown(ctx); e != nil {
		srv.logger.Errorf(ctx, "HTTP server shutdown error: %v", e)
		err = multierr.Append(err, e)
	}

	srv.logger.Info(ctx, "Chat realtime service stopped")
	return err
}
