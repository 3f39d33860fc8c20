package career

import (
	"fmt"
	"strings"
	"time"
)

// Format is a match type. The numeric values are the source's class codes.
type Format int

const (
	FormatTest Format = 1
	FormatODI  Format = 2
	FormatT20I Format = 3
)

// Formats lists every supported match type in class-code order.
func Formats() []Format {
	return []Format{FormatTest, FormatODI, FormatT20I}
}

func (f Format) Valid() bool {
	switch f {
	case FormatTest, FormatODI, FormatT20I:
		return true
	default:
		return false
	}
}

func (f Format) String() string {
	switch f {
	case FormatTest:
		return "test"
	case FormatODI:
		return "odi"
	case FormatT20I:
		return "t20i"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "test":
		return FormatTest, nil
	case "odi":
		return FormatODI, nil
	case "t20i", "t20":
		return FormatT20I, nil
	default:
		return 0, fmt.Errorf("unknown format %q", raw)
	}
}

// Freshness is the aggregate's recompute state. The zero value means the
// career has never been through a stats pass, which is not the same as
// needing one: a dirty career has known-stale totals, an indeterminate one
// has none at all.
type Freshness int

const (
	FreshnessIndeterminate Freshness = iota
	FreshnessDirty
	FreshnessClean
)

func (f Freshness) String() string {
	switch f {
	case FreshnessDirty:
		return "dirty"
	case FreshnessClean:
		return "clean"
	default:
		return "indeterminate"
	}
}

// Batting holds cumulative batting counters. Average and StrikeRate stay
// nil until their denominators have been positive at least once.
type Batting struct {
	Innings    int
	Completed  int
	Runs       int
	Minutes    int
	Balls      int
	Fours      int
	Sixes      int
	Average    *float64
	StrikeRate *float64
}

// Bowling holds cumulative bowling counters. Overs and OddBalls are the
// mixed-radix split of the total balls delivered; OversString is the
// rendered scorecard form.
type Bowling struct {
	Overs        int
	OddBalls     int
	OversString  string
	Maidens      int
	RunsConceded int
	Wickets      int
	Average      *float64
	StrikeRate   *float64
	Economy      *float64
}

// Fielding holds cumulative fielding counters. Catches counts catches taken
// while not keeping wicket; CatchesKeeper the rest.
type Fielding struct {
	Dismissals    int
	CatchesTotal  int
	Stumpings     int
	CatchesKeeper int
	Catches       int
}

type Totals struct {
	Batting  Batting
	Bowling  Bowling
	Fielding Fielding
}

// Career is the cumulative record of one external player reference within
// one format. (PlayerRef, Format) is unique. A career that ends an
// ingestion pass with no performances is deleted rather than kept empty.
type Career struct {
	ID         string
	PlayerRef  int64
	Format     Format
	Name       string
	FullName   string
	PlayerSlug string
	Freshness  Freshness
	MatchCount *int
	FirstMatch *time.Time
	LastMatch  *time.Time
	// XFactor is nil when the career has not qualified; zero is a valid low
	// score and must stay distinguishable from "not computed".
	XFactor *float64
	Totals  Totals
}
