package usecase

import (
	"context"
	"time"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/logging"
)

// Qualification floor for long-form careers: matches before the modern era
// are not comparable.
var longFormEraFloor = time.Date(1945, time.January, 1, 0, 0, 0, 0, time.UTC)

// ScoreService computes the eligibility-gated composite score from already
// aggregated totals. Pure: no I/O, only the career value changes.
type ScoreService struct {
	logger *logging.Logger
}

func NewScoreService(logger *logging.Logger) *ScoreService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoreService{logger: logger}
}

// Apply sets the career's XFactor, or clears it when the career does not
// qualify. Cleared means nil: zero is a legitimate low score and stays
// distinguishable from "never computed". An unrecognized format is a
// configuration fault; it is reported and the score left untouched.
func (s *ScoreService) Apply(ctx context.Context, c *career.Career) {
	_, span := startUsecaseSpan(ctx, "usecase.ScoreService.Apply")
	defer span.End()

	if c == nil {
		return
	}

	bat := c.Totals.Batting
	bowl := c.Totals.Bowling

	// A zero match count cannot happen for a career with averages, but a
	// bad summary row could put one there and catchesPerMatch divides by it.
	if c.MatchCount == nil || *c.MatchCount <= 0 || bat.Average == nil || bowl.Average == nil {
		c.XFactor = nil
		return
	}

	switch c.Format {
	case career.FormatTest:
		if bat.Runs < 500 ||
			*bat.Average < 30 ||
			bowl.Wickets < 50 ||
			*bowl.Average > 35 ||
			c.LastMatch == nil || c.LastMatch.Before(longFormEraFloor) {
			c.XFactor = nil
			return
		}
		score := 5 + *bat.Average - *bowl.Average + catchesPerMatch(c)
		c.XFactor = &score

	case career.FormatODI:
		if bat.Runs < 500 || *bat.Average < 20 || bowl.Wickets < 50 || !hasLimitedOversRates(c) {
			c.XFactor = nil
			return
		}
		score := limitedOversScore(c)
		c.XFactor = &score

	case career.FormatT20I:
		if bat.Runs < 150 || *bat.Average < 10 || bowl.Wickets < 15 || !hasLimitedOversRates(c) {
			c.XFactor = nil
			return
		}
		// Same blend as the one-day score; the formats have never diverged.
		score := limitedOversScore(c)
		c.XFactor = &score

	default:
		s.logger.ErrorContext(ctx, "unknown format, score left unchanged",
			"format", int(c.Format),
			"player_ref", c.PlayerRef,
		)
	}
}

// hasLimitedOversRates verifies every rate the limited-overs blend reads.
// The wicket threshold implies most of them, but scraped histories with
// missing ball counts do exist.
func hasLimitedOversRates(c *career.Career) bool {
	bat := c.Totals.Batting
	bowl := c.Totals.Bowling
	return bat.StrikeRate != nil && bat.Completed > 0 &&
		bowl.StrikeRate != nil && bowl.Economy != nil
}

// limitedOversScore compares batting strike rate against economy, balls
// faced per completed innings against bowling strike rate, and adds whole
// catches per match.
func limitedOversScore(c *career.Career) float64 {
	bat := c.Totals.Batting
	bowl := c.Totals.Bowling

	score := *bat.StrikeRate - *bowl.Economy*100/float64(6)
	score += float64(bat.Balls/bat.Completed) - *bowl.StrikeRate
	score += catchesPerMatch(c)
	return score
}

// catchesPerMatch is deliberately whole-valued: partial catches per match
// carry no signal.
func catchesPerMatch(c *career.Career) float64 {
	return float64(c.Totals.Fielding.Catches / *c.MatchCount)
}
