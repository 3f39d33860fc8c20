package usecase

import (
	"context"

	"github.com/crickstat/xfactor/internal/domain/career"
)

// StatsSourceProvider fetches one player's per-innings fielding history for
// a format from the external statistics source. Implementations own all
// network and markup concerns; the core only sees the extracted shape.
type StatsSourceProvider interface {
	FetchFieldingDocument(ctx context.Context, playerRef int64, format career.Format) (SourceDocument, error)
}

// SourceDocument is the provider's extraction of one source page.
type SourceDocument struct {
	// PageTitle is the raw section heading the display name is cut from.
	PageTitle string
	// Scripts holds embedded script blocks; the full name, when present,
	// hides in one of them.
	Scripts []string
	// Rows are the data rows of the innings table, in page order.
	Rows []SourceRow
}

// SourceRow is one table row: the cell texts plus the href of the match
// link cell, empty when the row carries no link (summary rows).
type SourceRow struct {
	Cells     []string
	MatchLink string
}
