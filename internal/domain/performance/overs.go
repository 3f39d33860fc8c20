package performance

import "strconv"

// Overs are recorded in mixed radix: whole six-ball overs plus 0-5 leftover
// balls. Totals are always carried as a flat ball count and re-split on
// render, so the two parts cannot drift apart across additions.

const BallsPerOver = 6

// TotalBalls flattens an (overs, oddBalls) pair into a ball count.
func TotalBalls(overs, oddBalls int) int {
	return overs*BallsPerOver + oddBalls
}

// SplitBalls converts a flat ball count back to whole overs and remainder.
func SplitBalls(totalBalls int) (overs, oddBalls int) {
	if totalBalls <= 0 {
		return 0, 0
	}
	return totalBalls / BallsPerOver, totalBalls % BallsPerOver
}

// OversString renders a ball count in scorecard notation: "3.5" for 23
// balls, "3" for 18, "0" for none. The remainder is omitted when zero.
func OversString(totalBalls int) string {
	overs, odd := SplitBalls(totalBalls)
	if odd == 0 {
		return strconv.Itoa(overs)
	}
	return strconv.Itoa(overs) + "." + strconv.Itoa(odd)
}
