package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/crickstat/xfactor/internal/domain/career"
)

func floatPtr(f float64) *float64 { return &f }

func qualifiedTestCareer() career.Career {
	last := time.Date(1999, time.June, 1, 0, 0, 0, 0, time.UTC)
	matchCount := 100
	return career.Career{
		ID:         "c-test",
		PlayerRef:  52337,
		Format:     career.FormatTest,
		MatchCount: &matchCount,
		LastMatch:  &last,
		Totals: career.Totals{
			Batting: career.Batting{
				Runs:       8000,
				Completed:  160,
				Balls:      16000,
				Average:    floatPtr(50),
				StrikeRate: floatPtr(50),
			},
			Bowling: career.Bowling{
				Wickets:    235,
				Average:    floatPtr(34),
				StrikeRate: floatPtr(60),
				Economy:    floatPtr(3.4),
			},
			Fielding: career.Fielding{Catches: 110},
		},
	}
}

func TestScoreService_LongFormScore(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)
	c := qualifiedTestCareer()

	svc.Apply(context.Background(), &c)

	if c.XFactor == nil {
		t.Fatal("expected a score for a qualified long-form career")
	}
	// 5 + 50 - 34 + 110/100 (whole catches per match).
	want := 5.0 + 50 - 34 + 1
	if *c.XFactor != want {
		t.Fatalf("unexpected score: got %v want %v", *c.XFactor, want)
	}
}

func TestScoreService_LongFormEligibilityGate(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)

	t.Run("runs just below threshold", func(t *testing.T) {
		c := qualifiedTestCareer()
		c.Totals.Batting.Runs = 499
		svc.Apply(context.Background(), &c)
		if c.XFactor != nil {
			t.Fatalf("expected cleared score, got %v", *c.XFactor)
		}
	})

	t.Run("runs at threshold", func(t *testing.T) {
		c := qualifiedTestCareer()
		c.Totals.Batting.Runs = 500
		svc.Apply(context.Background(), &c)
		if c.XFactor == nil {
			t.Fatal("expected a score at the threshold")
		}
	})

	t.Run("bowling average too high", func(t *testing.T) {
		c := qualifiedTestCareer()
		c.Totals.Bowling.Average = floatPtr(35.5)
		svc.Apply(context.Background(), &c)
		if c.XFactor != nil {
			t.Fatal("expected cleared score for expensive bowling")
		}
	})

	t.Run("career ended before 1945", func(t *testing.T) {
		c := qualifiedTestCareer()
		last := time.Date(1938, time.August, 20, 0, 0, 0, 0, time.UTC)
		c.LastMatch = &last
		svc.Apply(context.Background(), &c)
		if c.XFactor != nil {
			t.Fatal("expected cleared score for a pre-1945 career")
		}
	})
}

func TestScoreService_MissingAveragesClearScore(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)

	c := qualifiedTestCareer()
	c.XFactor = floatPtr(12)
	c.Totals.Bowling.Average = nil

	svc.Apply(context.Background(), &c)
	if c.XFactor != nil {
		t.Fatal("missing bowling average must clear the score")
	}

	c = qualifiedTestCareer()
	c.XFactor = floatPtr(12)
	c.MatchCount = nil

	svc.Apply(context.Background(), &c)
	if c.XFactor != nil {
		t.Fatal("missing match count must clear the score")
	}
}

func TestScoreService_ZeroMatchCountClearsScore(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)

	c := qualifiedTestCareer()
	c.XFactor = floatPtr(12)
	zero := 0
	c.MatchCount = &zero

	svc.Apply(context.Background(), &c)
	if c.XFactor != nil {
		t.Fatal("zero match count must clear the score, not divide by it")
	}
}

func TestScoreService_LimitedOversScore(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)
	matchCount := 200
	c := career.Career{
		ID:         "c-odi",
		Format:     career.FormatODI,
		MatchCount: &matchCount,
		Totals: career.Totals{
			Batting: career.Batting{
				Runs:       5000,
				Completed:  100,
				Balls:      6000,
				Average:    floatPtr(50),
				StrikeRate: floatPtr(83.3),
			},
			Bowling: career.Bowling{
				Wickets:    150,
				Average:    floatPtr(30),
				StrikeRate: floatPtr(36),
				Economy:    floatPtr(4.8),
			},
			Fielding: career.Fielding{Catches: 90},
		},
	}

	svc.Apply(context.Background(), &c)
	if c.XFactor == nil {
		t.Fatal("expected a score for a qualified one-day career")
	}

	// strike rate - economy*100/6 + balls/completed (whole) - bowling
	// strike rate + catches/matches (whole).
	want := 83.3 - 4.8*100/6 + 60 - 36 + 0
	if diff := *c.XFactor - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected score: got %v want %v", *c.XFactor, want)
	}
}

func TestScoreService_ShortFormUsesSameBlend(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)
	matchCount := 40
	base := career.Career{
		MatchCount: &matchCount,
		Totals: career.Totals{
			Batting: career.Batting{
				Runs:       900,
				Completed:  30,
				Balls:      700,
				Average:    floatPtr(30),
				StrikeRate: floatPtr(128.6),
			},
			Bowling: career.Bowling{
				Wickets:    25,
				Average:    floatPtr(22),
				StrikeRate: floatPtr(18),
				Economy:    floatPtr(7.3),
			},
			Fielding: career.Fielding{Catches: 20},
		},
	}

	odi := base
	odi.Format = career.FormatODI
	odi.Totals.Batting.Runs = 5000
	odi.Totals.Bowling.Wickets = 60
	svc.Apply(context.Background(), &odi)

	t20 := base
	t20.Format = career.FormatT20I
	svc.Apply(context.Background(), &t20)

	if odi.XFactor == nil || t20.XFactor == nil {
		t.Fatal("expected both formats to score")
	}
	if *odi.XFactor != *t20.XFactor {
		t.Fatalf("formats should share the blend: odi=%v t20=%v", *odi.XFactor, *t20.XFactor)
	}
}

func TestScoreService_ShortFormThresholds(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)
	matchCount := 40
	c := career.Career{
		Format:     career.FormatT20I,
		MatchCount: &matchCount,
		Totals: career.Totals{
			Batting: career.Batting{
				Runs:       149,
				Completed:  10,
				Balls:      120,
				Average:    floatPtr(15),
				StrikeRate: floatPtr(124),
			},
			Bowling: career.Bowling{
				Wickets:    20,
				Average:    floatPtr(21),
				StrikeRate: floatPtr(16),
				Economy:    floatPtr(7.9),
			},
		},
	}

	svc.Apply(context.Background(), &c)
	if c.XFactor != nil {
		t.Fatal("149 runs must not qualify in the short format")
	}

	c.Totals.Batting.Runs = 150
	svc.Apply(context.Background(), &c)
	if c.XFactor == nil {
		t.Fatal("150 runs must qualify in the short format")
	}
}

func TestScoreService_UnknownFormatLeavesScoreUntouched(t *testing.T) {
	t.Parallel()

	svc := NewScoreService(nil)
	c := qualifiedTestCareer()
	c.Format = career.Format(9)
	c.XFactor = floatPtr(42)

	svc.Apply(context.Background(), &c)
	if c.XFactor == nil || *c.XFactor != 42 {
		t.Fatal("unknown format must leave the score unchanged")
	}
}
