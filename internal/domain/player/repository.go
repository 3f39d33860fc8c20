package player

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("player not found")

// Repository describes canonical-identity persistence. Reference additions
// carry add-to-set semantics: re-adding an existing value is a no-op, and
// concurrent additions for the same slug must not lose updates.
type Repository interface {
	FindOrCreateBySlug(ctx context.Context, slug string) (Player, error)
	GetBySlug(ctx context.Context, slug string) (Player, error)
	// SetIdentity records the display name, full name, and owning reference
	// on the master record for the slug.
	SetIdentity(ctx context.Context, slug, name, fullName string, masterRef int64) error
	AddPlayerRef(ctx context.Context, slug string, playerRef int64) error
	AddCareerID(ctx context.Context, slug, careerID string) error
}
