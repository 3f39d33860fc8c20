package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/domain/match"
	"github.com/crickstat/xfactor/internal/domain/performance"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

// IngestService normalizes parsed source rows into match, innings, and
// performance records for one career.
type IngestService struct {
	matches      match.Repository
	performances performance.Repository
	careers      career.Repository
	logger       *logging.Logger
}

func NewIngestService(
	matches match.Repository,
	performances performance.Repository,
	careers career.Repository,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		matches:      matches,
		performances: performances,
		careers:      careers,
		logger:       logger,
	}
}

type IngestResult struct {
	MatchRows   int
	SummaryRows int
	SkippedRows int
}

// Ingest upserts a performance row per per-match source row and tracks the
// career's span. Did-not-field rows advance the span without writing a
// performance. An empty document is a valid outcome (the source has no
// data for this reference); a row referencing an uncatalogued match is a
// data-integrity fault that aborts this career's pass. The first truncated
// row ends the table; everything after is footer. Re-running with the same
// document overwrites rather than accumulates.
func (s *IngestService) Ingest(ctx context.Context, c *career.Career, doc SourceDocument) (IngestResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Ingest")
	defer span.End()

	if c == nil || c.ID == "" {
		return IngestResult{}, fmt.Errorf("%w: career is required", ErrInvalidInput)
	}

	var result IngestResult
	var lastMatchEnd *time.Time

rows:
	for _, row := range doc.Rows {
		parsed := ParseFieldingRow(row)
		switch parsed.Kind {
		case RowKindSummary:
			count := parsed.MatchCount
			c.MatchCount = &count
			result.SummaryRows++

		case RowKindMatch:
			m, err := s.matches.GetByRef(ctx, parsed.MatchRef)
			if errors.Is(err, match.ErrNotFound) {
				return result, fmt.Errorf("%w: match %s is not in the catalog", ErrDataIntegrity, parsed.MatchRef)
			}
			if err != nil {
				return result, fmt.Errorf("look up match %s: %w", parsed.MatchRef, err)
			}

			if c.FirstMatch == nil {
				debut := m.DateStart
				c.FirstMatch = &debut
			}
			end := m.DateEnd
			lastMatchEnd = &end

			// Did-not-field rows still move the span; there is just no
			// innings to record for them.
			if parsed.Fielded {
				if err := s.upsertFielding(ctx, c.ID, m.Ref, parsed); err != nil {
					return result, err
				}
			}
			result.MatchRows++

		case RowKindEnd:
			break rows

		default:
			result.SkippedRows++
		}
	}

	if lastMatchEnd != nil {
		c.LastMatch = lastMatchEnd
	}

	if err := s.careers.Update(ctx, *c); err != nil {
		return result, fmt.Errorf("persist career %s after ingest: %w", c.ID, err)
	}

	if result.SkippedRows > 0 {
		s.logger.DebugContext(ctx, "skipped unusable rows",
			"player_ref", c.PlayerRef,
			"format", c.Format.String(),
			"skipped", result.SkippedRows,
		)
	}

	return result, nil
}

func (s *IngestService) upsertFielding(ctx context.Context, careerID, matchRef string, parsed ParsedRow) error {
	innings, err := s.matches.FindOrCreateInnings(ctx, matchRef, parsed.InningsNumber)
	if err != nil {
		return fmt.Errorf("resolve innings %s/%d: %w", matchRef, parsed.InningsNumber, err)
	}

	perf, err := s.performances.FindOrCreate(ctx, innings.ID, careerID)
	if err != nil {
		return fmt.Errorf("resolve performance innings=%s career=%s: %w", innings.ID, careerID, err)
	}

	perf.Dismissals = performance.CountOf(parsed.Fielding.Dismissals)
	perf.CatchesTotal = parsed.Fielding.CatchesTotal
	perf.Stumpings = parsed.Fielding.Stumpings
	perf.CatchesKeeper = parsed.Fielding.CatchesKeeper
	perf.Catches = parsed.Fielding.Catches

	if err := s.performances.Update(ctx, perf); err != nil {
		return fmt.Errorf("upsert performance innings=%s career=%s: %w", innings.ID, careerID, err)
	}
	return nil
}
