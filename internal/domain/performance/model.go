package performance

import "strconv"

// Performance is one player's record within one innings, keyed uniquely by
// (innings, career). Raw counters that upstream pages occasionally corrupt
// (runs, sixes, dismissals) are kept as raw strings; everything downstream
// goes through ParseCount.
//
// A nil Runs means the player did not bat that innings, which is distinct
// from scoring zero. A nil Overs means they did not bowl. A nil Dismissals
// means no fielding data was recorded (or the row carried a did-not-field
// marker).
type Performance struct {
	ID        string
	CareerID  string
	InningsID string

	// Batting
	Runs    *string
	Minutes *int
	Balls   *int
	Fours   *int
	Sixes   *string
	HowOut  string
	NotOut  bool

	// Bowling
	Overs        *int
	OddBalls     int
	Maidens      int
	RunsConceded int
	Wickets      int

	// Fielding
	Dismissals    *string
	CatchesTotal  int
	Stumpings     int
	CatchesKeeper int
	Catches       int

	// Cumulative snapshots written back during aggregation. Average holds
	// the batting average while batting is folded and the bowling average
	// once bowling is folded, mirroring how the source history reads.
	Average       *float64
	StrikeRate    *float64
	CumStrikeRate *float64
	CumEconomy    *float64
}

// ParseCount interprets a raw counter. ok is false for nil or non-numeric
// values such as a did-not-field marker.
func ParseCount(raw *string) (int, bool) {
	if raw == nil {
		return 0, false
	}
	n, err := strconv.Atoi(*raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// CountOf wraps an integer counter as a stored raw value.
func CountOf(n int) *string {
	s := strconv.Itoa(n)
	return &s
}
