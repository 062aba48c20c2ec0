// Package requestid assigns each HTTP request a UUID that travels in the
// context, so every log line of one login or chat call can be correlated.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID arrives in and is echoed back on.
const Header = "X-Request-ID"

type contextKey struct{}

// New returns a fresh UUID v4 identifier.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying the ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the ID carried by ctx, or "" when there is none.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
