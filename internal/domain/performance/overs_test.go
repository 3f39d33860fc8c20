package performance

import "testing"

func TestOversString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		balls int
		want  string
	}{
		{0, "0"},
		{5, "0.5"},
		{6, "1"},
		{18, "3"},
		{23, "3.5"},
		{600, "100"},
		{601, "100.1"},
	}

	for _, tc := range cases {
		if got := OversString(tc.balls); got != tc.want {
			t.Fatalf("OversString(%d): got %q want %q", tc.balls, got, tc.want)
		}
	}
}

func TestBallsRoundTrip(t *testing.T) {
	t.Parallel()

	for balls := 0; balls <= 1000; balls++ {
		overs, odd := SplitBalls(balls)
		if odd < 0 || odd >= BallsPerOver {
			t.Fatalf("SplitBalls(%d): remainder %d out of range", balls, odd)
		}
		if got := TotalBalls(overs, odd); got != balls {
			t.Fatalf("round trip for %d balls: got %d", balls, got)
		}
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	if _, ok := ParseCount(nil); ok {
		t.Fatal("nil counter should not parse")
	}

	dnf := "TDNF"
	if _, ok := ParseCount(&dnf); ok {
		t.Fatal("non-numeric marker should not parse")
	}

	three := "3"
	n, ok := ParseCount(&three)
	if !ok || n != 3 {
		t.Fatalf("ParseCount(3): got %d ok=%t", n, ok)
	}

	if got, ok := ParseCount(CountOf(42)); !ok || got != 42 {
		t.Fatalf("CountOf round trip: got %d ok=%t", got, ok)
	}
}
