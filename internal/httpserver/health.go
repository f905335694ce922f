package httpserver

import (
	"context"
	"net/http"
	"time"

	"chat-realtime/internal/websocket"
	"chat-realtime/pkg/errors"
	"chat-realtime/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
)

const (
	serviceName    = "chat-realtime"
	serviceVersion = "1.0.0"
	healthTimeout  = 3 * time.Second
)

type dependencyStatus map[string]string

// checkDependencies pings every backing service. Optional services that are
// not configured are reported as "disabled".
func (srv *HTTPServer) checkDependencies(ctx context.Context) (dependencyStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	status := dependencyStatus{}
	var err error

	if _, e := srv.redis.Ping(ctx); e != nil {
		status["redis"] = "unavailable"
		err = multierr.Append(err, e)
	} else {
		status["redis"] = "connected"
	}

	if e := srv.postgres.PingContext(ctx); e != nil {
		status["postgres"] = "unavailable"
		err = multierr.Append(err, e)
	} else {
		status["postgres"] = "connected"
	}

	switch {
	case srv.minio == nil:
		status["minio"] = "disabled"
	case srv.minio.HealthCheck(ctx) != nil:
		// Presigning still works offline, so storage never fails readiness.
		status["minio"] = "unavailable"
	default:
		status["minio"] = "connected"
	}

	return status, err
}

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check backing services and report cable hub statistics
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Service is healthy"
// @Failure 503 {object} response.Resp "A backing service is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	deps, err := srv.checkDependencies(ctx)
	if err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.healthCheck: %v", err)
		response.Error(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Backing service unavailable", http.StatusServiceUnavailable), nil)
		return
	}

	hubStats, err := srv.wsUC.GetStats(ctx)
	if err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.healthCheck.GetStats: %v", err)
		hubStats = websocket.HubStats{}
	}

	response.OK(c, gin.H{
		"status":       "healthy",
		"service":      serviceName,
		"version":      serviceVersion,
		"environment":  srv.environment,
		"dependencies": deps,
		"hub":          hubStats,
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the service is ready to accept cable connections and broadcasts
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	deps, err := srv.checkDependencies(ctx)
	if err != nil {
		srv.logger.Warnf(ctx, "internal.httpserver.readyCheck: %v", err)
		response.Error(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Service not ready", http.StatusServiceUnavailable), nil)
		return
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"service":      serviceName,
		"version":      serviceVersion,
		"dependencies": deps,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": serviceName,
		"version": serviceVersion,
	})
}
