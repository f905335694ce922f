package scope

import (
	"context"

	"chat-realtime/internal/model"
)

// SetScopeToContext attaches model.Scope to context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, ScopeCtxKey{}, sc)
}

// GetScopeFromContext returns model.Scope from context.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(ScopeCtxKey{}).(model.Scope)
	return sc, ok
}
