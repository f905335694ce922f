package scope

import "github.com/golang-jwt/jwt/v5"

// Payload represents the JWT token claims. The user id travels in "sub".
type Payload struct {
	jwt.RegisteredClaims
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type implManager struct {
	secretKey []byte
}

// ScopeCtxKey is the context key of the caller Scope.
type ScopeCtxKey struct{}
