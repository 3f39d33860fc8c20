package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

const defaultRefreshWorkers = 4

// RefreshService drives the ingest -> aggregate -> score pipeline. Careers
// in a batch share no mutable state, so they run on a worker pool; every
// store operation underneath is an atomic find-or-create or a set union.
type RefreshService struct {
	provider StatsSourceProvider
	identity *IdentityService
	ingest   *IngestService
	stats    *StatsService
	score    *ScoreService
	careers  career.Repository
	logger   *logging.Logger

	maxWorkers int
	now        func() time.Time
}

func NewRefreshService(
	provider StatsSourceProvider,
	identity *IdentityService,
	ingest *IngestService,
	stats *StatsService,
	score *ScoreService,
	careers career.Repository,
	maxWorkers int,
	logger *logging.Logger,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = defaultRefreshWorkers
	}
	return &RefreshService{
		provider:   provider,
		identity:   identity,
		ingest:     ingest,
		stats:      stats,
		score:      score,
		careers:    careers,
		logger:     logger,
		maxWorkers: maxWorkers,
		now:        time.Now,
	}
}

type RefreshResult struct {
	Processed int `json:"processed"`
	Cleaned   int `json:"cleaned"`
	Removed   int `json:"removed"`
	Failed    int `json:"failed"`
}

// RefreshDirty recomputes every career flagged dirty. Failures are
// per-career: one bad career never stops the batch, it just stays dirty
// for the next run.
func (s *RefreshService) RefreshDirty(ctx context.Context) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshDirty")
	defer span.End()

	dirty, err := s.careers.ListDirty(ctx)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("list dirty careers: %w", err)
	}
	if len(dirty) == 0 {
		return RefreshResult{}, nil
	}

	workers := s.maxWorkers
	if workers > len(dirty) {
		workers = len(dirty)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("create refresh worker pool: %w", err)
	}
	defer pool.Release()

	var cleaned, removed, failed atomic.Int64
	var wg sync.WaitGroup

	started := s.now()
	for i := range dirty {
		c := dirty[i]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			s.countOutcome(ctx, c, &cleaned, &removed, &failed)
		})
		if submitErr != nil {
			wg.Done()
			failed.Add(1)
			s.logger.ErrorContext(ctx, "submit refresh task", "career_id", c.ID, "error", submitErr)
		}
	}
	wg.Wait()

	result := RefreshResult{
		Processed: len(dirty),
		Cleaned:   int(cleaned.Load()),
		Removed:   int(removed.Load()),
		Failed:    int(failed.Load()),
	}
	s.logger.InfoContext(ctx, "dirty refresh finished",
		"processed", result.Processed,
		"cleaned", result.Cleaned,
		"removed", result.Removed,
		"failed", result.Failed,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

// RefreshPlayerRef recomputes every career for one external reference
// regardless of freshness (forced recompute). This is how a new reference
// enters the system: the career for each format is found or created, and
// formats the source has no data for are cleaned up again by the stats
// pass. A reference has at most one career per format, so the fan-out is
// tiny.
func (s *RefreshService) RefreshPlayerRef(ctx context.Context, playerRef int64) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RefreshService.RefreshPlayerRef")
	defer span.End()

	if playerRef <= 0 {
		return RefreshResult{}, fmt.Errorf("%w: player ref must be positive", ErrInvalidInput)
	}

	formats := career.Formats()
	list := make([]career.Career, 0, len(formats))
	for _, format := range formats {
		c, err := s.careers.FindOrCreate(ctx, playerRef, format)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("resolve career ref=%d format=%s: %w", playerRef, format, err)
		}
		list = append(list, c)
	}

	var cleaned, removed, failed atomic.Int64
	var wg conc.WaitGroup
	for i := range list {
		c := list[i]
		wg.Go(func() {
			s.countOutcome(ctx, c, &cleaned, &removed, &failed)
		})
	}
	wg.Wait()

	return RefreshResult{
		Processed: len(list),
		Cleaned:   int(cleaned.Load()),
		Removed:   int(removed.Load()),
		Failed:    int(failed.Load()),
	}, nil
}

func (s *RefreshService) countOutcome(ctx context.Context, c career.Career, cleaned, removed, failed *atomic.Int64) {
	switch err := s.refreshOne(ctx, c); {
	case err == nil:
		cleaned.Add(1)
	case errors.Is(err, ErrNoPerformances):
		removed.Add(1)
	default:
		failed.Add(1)
		s.logger.ErrorContext(ctx, "career refresh failed",
			"career_id", c.ID,
			"player_ref", c.PlayerRef,
			"format", c.Format.String(),
			"error", err,
		)
	}
}

// refreshOne runs the full pipeline for one career. On any abort the
// career's freshness is left as it was, so a dirty career stays dirty;
// only full success marks it clean.
func (s *RefreshService) refreshOne(ctx context.Context, c career.Career) error {
	doc, err := s.provider.FetchFieldingDocument(ctx, c.PlayerRef, c.Format)
	if err != nil {
		return fmt.Errorf("fetch source document ref=%d format=%s: %w", c.PlayerRef, c.Format, err)
	}

	if err := s.identity.Resolve(ctx, &c, doc); err != nil {
		return err
	}

	if _, err := s.ingest.Ingest(ctx, &c, doc); err != nil {
		return err
	}

	if _, err := s.stats.Recompute(ctx, &c); err != nil {
		return err
	}

	s.score.Apply(ctx, &c)

	c.Freshness = career.FreshnessClean
	if err := s.careers.Update(ctx, c); err != nil {
		return fmt.Errorf("persist refreshed career %s: %w", c.ID, err)
	}
	return nil
}
