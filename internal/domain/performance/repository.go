package performance

import "context"

type Repository interface {
	// FindOrCreate resolves the row keyed by (innings, career), creating an
	// empty one on first sight.
	FindOrCreate(ctx context.Context, inningsID, careerID string) (Performance, error)
	// Update overwrites the stored row. Re-ingestion is an upsert, not an
	// append.
	Update(ctx context.Context, p Performance) error
	ListByCareer(ctx context.Context, careerID string) ([]Performance, error)
	CountByCareer(ctx context.Context, careerID string) (int, error)
}
