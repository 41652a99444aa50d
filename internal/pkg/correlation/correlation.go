package correlation

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithID returns a context carrying the given correlation id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id carried by ctx, minting a new
// one when none is present so every external call is traceable.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}
