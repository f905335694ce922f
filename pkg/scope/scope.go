package scope

import (
	"fmt"
	"strconv"
	"time"

	"chat-realtime/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verify checks the token signature and expiry and returns its claims.
func (m *implManager) Verify(token string) (Payload, error) {
	if token == "" {
		return Payload{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}

	keyFunc := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidToken, t.Header["alg"])
		}
		return m.secretKey, nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &Payload{}, keyFunc, jwt.WithExpirationRequired())
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !jwtToken.Valid {
		return Payload{}, fmt.Errorf("%w: token is not valid", ErrInvalidToken)
	}

	payload, ok := jwtToken.Claims.(*Payload)
	if !ok {
		return Payload{}, fmt.Errorf("%w: failed to parse claims", ErrInvalidToken)
	}
	return *payload, nil
}

// VerifyScope verifies the token and builds the caller Scope from it.
func (m *implManager) VerifyScope(token string) (model.Scope, error) {
	payload, err := m.Verify(token)
	if err != nil {
		return model.Scope{}, err
	}
	return NewScope(payload)
}

// CreateToken signs payload with HS256. Expiry defaults to TokenExpirationDuration.
func (m *implManager) CreateToken(payload Payload) (string, error) {
	now := time.Now()
	if payload.ExpiresAt == nil {
		payload.ExpiresAt = jwt.NewNumericDate(now.Add(TokenExpirationDuration))
	}
	payload.IssuedAt = jwt.NewNumericDate(now)
	payload.NotBefore = jwt.NewNumericDate(now)
	payload.ID = uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return token.SignedString(m.secretKey)
}

// NewScope builds model.Scope from Payload.
func NewScope(payload Payload) (model.Scope, error) {
	userID, err := strconv.ParseInt(payload.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return model.Scope{}, fmt.Errorf("%w: %q", ErrInvalidSubject, payload.Subject)
	}
	return model.Scope{
		UserID:    userID,
		Username:  payload.Username,
		Name:      payload.Name,
		AvatarURL: payload.AvatarURL,
	}, nil
}
