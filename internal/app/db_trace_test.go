package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM careers \t WHERE player_ref = $1 ")
	want := "SELECT * FROM careers WHERE player_ref = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestFormatDBQueryForTrace_CapsLength(t *testing.T) {
	long := "SELECT " + strings.Repeat("x", 2*maxTracedQueryLength)
	got := formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("long query not capped: len=%d", len(got))
	}
}
