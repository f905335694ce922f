package middleware

import (
	"crypto/subtle"
	"strings"

	"chat-realtime/pkg/response"
	"chat-realtime/pkg/scope"

	"github.com/gin-gonic/gin"
)

// InternalKeyHeader carries the shared secret of the internal API.
const InternalKeyHeader = "X-Internal-Key"

// Auth verifies the caller's JWT and stores its scope in the request context.
// Browsers cannot set headers on a WebSocket handshake, so the token is also
// accepted from the "token" query parameter and from the auth cookie.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		tokenString := m.extractToken(c)
		if tokenString == "" {
			m.l.Warnf(ctx, "internal.middleware.Auth: missing token | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			return
		}

		sc, err := m.jwtManager.VerifyScope(tokenString)
		if err != nil {
			m.l.Warnf(ctx, "internal.middleware.Auth: token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			return
		}

		ctx = scope.SetScopeToContext(ctx, sc)
		ctx = m.l.With(ctx, "user_id", sc.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func (m Middleware) extractToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}
	if t := c.Query("token"); t != "" {
		return t
	}
	if cookie, err := c.Cookie(m.cookieConfig.Name); err == nil {
		return cookie
	}
	return ""
}

// InternalKey guards the internal API with the shared key.
func (m Middleware) InternalKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(InternalKeyHeader)
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(m.internalKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "internal.middleware.InternalKey: rejected | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
