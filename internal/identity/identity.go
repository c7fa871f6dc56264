package identity

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a core operation. The session layer
// resolves it once per request; every mutating call receives it explicitly.
type Actor struct {
	ID    uuid.UUID
	Email string
}

type contextKey struct{}

// WithActor returns a context carrying the authenticated actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext extracts the actor placed by the auth middleware.
func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok
}
