package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntry records a single successful mutation of a domain entity.
// Entries are written asynchronously; per-entity ordering is preserved by the
// dispatcher sharding on EntityID.
type AuditEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Entity    string    `json:"entity" gorm:"size:32;not null;index"`
	EntityID  uuid.UUID `json:"entity_id" gorm:"type:uuid;not null;index"`
	Action    string    `json:"action" gorm:"size:32;not null"`
	Actor     string    `json:"actor" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
}

type actorKey struct{}

// WithActor stores the acting username on the context. The auth middleware
// sets it after decoding the session token.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFrom returns the acting username, or "" for unauthenticated flows
// (signup, seeding).
func ActorFrom(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey{}).(string)
	return actor
}
