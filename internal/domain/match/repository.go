package match

import "context"

type Repository interface {
	// GetByRef returns ErrNotFound when the catalog has no such reference.
	GetByRef(ctx context.Context, ref string) (Match, error)
	// Create inserts or refreshes a catalog entry; the catalog feed replays
	// matches with corrected dates.
	Create(ctx context.Context, m Match) error
	// FindOrCreateInnings resolves an innings atomically; concurrent calls
	// for the same (match, number) must yield the same row.
	FindOrCreateInnings(ctx context.Context, matchRef string, number int) (Innings, error)
}
