package scope

import "chat-realtime/internal/model"

// Manager verifies socket tokens and resolves them to a Scope.
// Implementations are safe for concurrent use.
type Manager interface {
	Verify(token string) (Payload, error)
	VerifyScope(token string) (model.Scope, error)
	CreateToken(payload Payload) (string, error)
}

// New creates a new scope Manager with the provided secret key.
// Panics if secretKey is empty.
func New(secretKey string) Manager {
	if secretKey == "" {
		panic("scope: secret key cannot be empty")
	}
	return &implManager{secretKey: []byte(secretKey)}
}
