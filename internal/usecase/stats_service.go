package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/domain/performance"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

// Dismissal descriptions that leave an innings uncompleted.
var notOutDescriptions = []string{"not out", "retired hurt", "absent hurt"}

// StatsService folds a career's full performance history into cumulative
// totals. The fold is a plain sum, so row order never changes the result.
type StatsService struct {
	performances performance.Repository
	careers      career.Repository
	logger       *logging.Logger
}

func NewStatsService(
	performances performance.Repository,
	careers career.Repository,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		performances: performances,
		careers:      careers,
		logger:       logger,
	}
}

// Recompute rebuilds the career's totals from its performances and writes
// cumulative snapshots back onto each row. Malformed stored counters are
// healed to zero as they are read. A career with no performances at all is
// deleted and ErrNoPerformances reported; callers treat that as "no data",
// not as a failure.
func (s *StatsService) Recompute(ctx context.Context, c *career.Career) (career.Totals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Recompute")
	defer span.End()

	if c == nil || c.ID == "" {
		return career.Totals{}, fmt.Errorf("%w: career is required", ErrInvalidInput)
	}

	perfs, err := s.performances.ListByCareer(ctx, c.ID)
	if err != nil {
		return career.Totals{}, fmt.Errorf("list performances for career %s: %w", c.ID, err)
	}

	if len(perfs) == 0 {
		// The reference produced no match data; the career is not worth
		// keeping. The emptiness check above is the delete precondition:
		// performances are never cascaded away.
		if err := s.careers.Delete(ctx, c.ID); err != nil {
			return career.Totals{}, fmt.Errorf("delete empty career %s: %w", c.ID, err)
		}
		s.logger.InfoContext(ctx, "career removed: no performances",
			"player_ref", c.PlayerRef,
			"format", c.Format.String(),
		)
		return career.Totals{}, ErrNoPerformances
	}

	totals := s.fold(ctx, c, perfs)
	c.Totals = totals

	return totals, nil
}

func (s *StatsService) fold(ctx context.Context, c *career.Career, perfs []performance.Performance) career.Totals {
	var t career.Totals

	// Rates carry over from the previous pass until their denominator has
	// been positive; a zero denominator must never zero out a prior value.
	t.Batting.Average = c.Totals.Batting.Average
	t.Batting.StrikeRate = c.Totals.Batting.StrikeRate
	t.Bowling.Average = c.Totals.Bowling.Average
	t.Bowling.StrikeRate = c.Totals.Bowling.StrikeRate
	t.Bowling.Economy = c.Totals.Bowling.Economy

	ballsDelivered := 0
	sawBowling := false

	for i := range perfs {
		pf := &perfs[i]

		if pf.Runs != nil {
			s.foldBatting(ctx, &t.Batting, pf)
		}
		if pf.Overs != nil {
			sawBowling = true
			ballsDelivered += performance.TotalBalls(*pf.Overs, pf.OddBalls)
			s.foldBowling(&t.Bowling, pf, ballsDelivered)
		}
		if d, ok := performance.ParseCount(pf.Dismissals); ok {
			t.Fielding.Dismissals += d
			t.Fielding.CatchesTotal += pf.CatchesTotal
			t.Fielding.Stumpings += pf.Stumpings
			t.Fielding.CatchesKeeper += pf.CatchesKeeper
			t.Fielding.Catches += pf.Catches
		}

		// Persist healed counters and refreshed snapshots.
		if err := s.performances.Update(ctx, *pf); err != nil {
			s.logger.WarnContext(ctx, "snapshot write failed",
				"performance_id", pf.ID,
				"error", err,
			)
		}
	}

	t.Bowling.Overs, t.Bowling.OddBalls = performance.SplitBalls(ballsDelivered)
	if sawBowling {
		t.Bowling.OversString = performance.OversString(ballsDelivered)
	}

	return t
}

func (s *StatsService) foldBatting(ctx context.Context, b *career.Batting, pf *performance.Performance) {
	runsClean, runs, runsHealed := normalizeStoredCount(pf.Runs)
	pf.Runs = runsClean

	sixes := 0
	if pf.Sixes != nil {
		sixesClean, n, sixesHealed := normalizeStoredCount(pf.Sixes)
		pf.Sixes = sixesClean
		sixes = n
		if runsHealed || sixesHealed {
			s.logger.DebugContext(ctx, "healed malformed batting counters", "performance_id", pf.ID)
		}
	} else if runsHealed {
		s.logger.DebugContext(ctx, "healed malformed batting counters", "performance_id", pf.ID)
	}

	pf.NotOut = isNotOutDescription(pf.HowOut)

	b.Innings++
	if !pf.NotOut {
		b.Completed++
	}
	b.Runs += runs
	b.Minutes += intOrZero(pf.Minutes)
	b.Balls += intOrZero(pf.Balls)
	b.Fours += intOrZero(pf.Fours)
	b.Sixes += sixes

	if b.Completed > 0 {
		avg := float64(b.Runs) / float64(b.Completed)
		b.Average = &avg
		pf.Average = &avg
	}
	if b.Balls > 0 {
		sr := 100 * float64(b.Runs) / float64(b.Balls)
		b.StrikeRate = &sr
		pf.CumStrikeRate = &sr
	}
}

func (s *StatsService) foldBowling(b *career.Bowling, pf *performance.Performance, ballsDelivered int) {
	b.Maidens += pf.Maidens
	b.RunsConceded += pf.RunsConceded
	b.Wickets += pf.Wickets

	if pf.Wickets > 0 {
		sr := float64(performance.TotalBalls(*pf.Overs, pf.OddBalls)) / float64(pf.Wickets)
		pf.StrikeRate = &sr
	}

	if b.Wickets > 0 {
		avg := float64(b.RunsConceded) / float64(b.Wickets)
		b.Average = &avg
		pf.Average = &avg

		sr := float64(ballsDelivered) / float64(b.Wickets)
		b.StrikeRate = &sr
		pf.CumStrikeRate = &sr
	}

	if ballsDelivered > 0 {
		oversFloat := float64(ballsDelivered) / float64(performance.BallsPerOver)
		econ := float64(b.RunsConceded) / oversFloat
		b.Economy = &econ
		pf.CumEconomy = &econ
	}
}

// normalizeStoredCount heals a raw counter: non-numeric values become a
// stored zero. The healed flag drives audit logging.
func normalizeStoredCount(raw *string) (cleaned *string, value int, healed bool) {
	if n, ok := performance.ParseCount(raw); ok {
		return raw, n, false
	}
	return performance.CountOf(0), 0, true
}

func isNotOutDescription(howOut string) bool {
	desc := strings.ToLower(strings.TrimSpace(howOut))
	for _, phrase := range notOutDescriptions {
		if desc == phrase {
			return true
		}
	}
	return false
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
