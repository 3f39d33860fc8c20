package usecase

import "testing"

func matchCells(dismissals, catchesTotal, stumpings, catchesWkt, catches, innings string) []string {
	return []string{dismissals, catchesTotal, stumpings, catchesWkt, catches, innings, "", "", "", "", "link"}
}

func TestParseFieldingRow_Summary(t *testing.T) {
	t.Parallel()

	row := SourceRow{Cells: []string{"", "", "52", "", "", "", "", "", "", "", ""}}
	got := ParseFieldingRow(row)

	if got.Kind != RowKindSummary {
		t.Fatalf("expected summary row, got kind %d", got.Kind)
	}
	if got.MatchCount != 52 {
		t.Fatalf("unexpected match count: %d", got.MatchCount)
	}
}

func TestParseFieldingRow_Match(t *testing.T) {
	t.Parallel()

	row := SourceRow{
		Cells:     matchCells("2", "2", "0", "0", "2", "1"),
		MatchLink: "/ci/engine/match/63438.html",
	}
	got := ParseFieldingRow(row)

	if got.Kind != RowKindMatch {
		t.Fatalf("expected match row, got kind %d", got.Kind)
	}
	if got.MatchRef != "63438" {
		t.Fatalf("unexpected match ref: %q", got.MatchRef)
	}
	if got.InningsNumber != 1 {
		t.Fatalf("unexpected innings number: %d", got.InningsNumber)
	}
	if !got.Fielded {
		t.Fatal("numeric dismissals must mark the row as fielded")
	}
	want := FieldingCounts{Dismissals: 2, CatchesTotal: 2, Stumpings: 0, CatchesKeeper: 0, Catches: 2}
	if got.Fielding != want {
		t.Fatalf("unexpected fielding counts: %+v", got.Fielding)
	}
}

func TestParseFieldingRow_DidNotFieldKeepsMatchRef(t *testing.T) {
	t.Parallel()

	row := SourceRow{
		Cells:     matchCells("TDNF", "0", "0", "0", "0", "2"),
		MatchLink: "/ci/engine/match/63438.html",
	}
	got := ParseFieldingRow(row)

	if got.Kind != RowKindMatch {
		t.Fatalf("expected match row for did-not-field marker, got kind %d", got.Kind)
	}
	if got.MatchRef != "63438" {
		t.Fatalf("unexpected match ref: %q", got.MatchRef)
	}
	if got.Fielded {
		t.Fatal("did-not-field marker must not mark the row as fielded")
	}
}

func TestParseFieldingRow_UnparseableLinkSkips(t *testing.T) {
	t.Parallel()

	row := SourceRow{
		Cells:     matchCells("1", "1", "0", "0", "1", "1"),
		MatchLink: "/ci/engine/series/1234.html",
	}
	if got := ParseFieldingRow(row); got.Kind != RowKindSkip {
		t.Fatalf("expected skip for foreign link, got kind %d", got.Kind)
	}
}

func TestParseFieldingRow_TruncatedRowEndsTable(t *testing.T) {
	t.Parallel()

	row := SourceRow{Cells: []string{"1"}}
	if got := ParseFieldingRow(row); got.Kind != RowKindEnd {
		t.Fatalf("expected end-of-table for truncated row, got kind %d", got.Kind)
	}
}

func TestMatchRefFromLink(t *testing.T) {
	t.Parallel()

	ref, ok := matchRefFromLink("/ci/engine/match/287853.json")
	if !ok || ref != "287853" {
		t.Fatalf("got ref=%q ok=%t", ref, ok)
	}

	if _, ok := matchRefFromLink("/ci/engine/match/"); ok {
		t.Fatal("empty trailing segment should not parse")
	}
}
