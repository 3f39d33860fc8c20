package career

import (
	"context"
	"errors"
)

// ErrHasPerformances reports an attempt to delete a career that still owns
// performance rows. Callers must remove the children first; deletion never
// cascades.
var ErrHasPerformances = errors.New("career still owns performances")

var ErrNotFound = errors.New("career not found")

type Repository interface {
	FindOrCreate(ctx context.Context, playerRef int64, format Format) (Career, error)
	GetByID(ctx context.Context, id string) (Career, error)
	ListDirty(ctx context.Context) ([]Career, error)
	ListByPlayerRef(ctx context.Context, playerRef int64) ([]Career, error)
	Update(ctx context.Context, c Career) error
	// Delete returns ErrHasPerformances while performance rows still
	// reference the career.
	Delete(ctx context.Context, id string) error
	// ListRanked returns scored careers for one format, highest XFactor
	// first. Unscored careers are excluded.
	ListRanked(ctx context.Context, format Format, limit int) ([]Career, error)
}
