package usecase

import (
	"strconv"
	"strings"
)

// Fixed column layout of the source's per-innings fielding table.
const (
	colDismissals    = 0
	colCatchesTotal  = 1
	colStumpings     = 2 // doubles as the match count on summary rows
	colCatchesKeeper = 3
	colCatches       = 4
	colInningsNumber = 5
	colMatchLink     = 10
)

const matchLinkPrefix = "/ci/engine/match/"

type RowKind int

const (
	// RowKindSkip marks rows that carry nothing usable: unparseable
	// links or counts. Skipping is row-local and never aborts the batch.
	RowKindSkip RowKind = iota
	// RowKindSummary is the aggregate-only row with no match link.
	RowKindSummary
	// RowKindMatch is a per-innings row tied to one match.
	RowKindMatch
	// RowKindEnd is a truncated row. The table's data rows are contiguous,
	// so the first truncated row is the start of the footer and everything
	// after it is ignored.
	RowKindEnd
)

type FieldingCounts struct {
	Dismissals    int
	CatchesTotal  int
	Stumpings     int
	CatchesKeeper int
	Catches       int
}

// ParsedRow is the typed result of one source row. Exactly the fields for
// its Kind are meaningful. Fielded is false on match rows whose dismissal
// cell is a did-not-field marker; such rows still carry the match reference
// but no usable counts.
type ParsedRow struct {
	Kind          RowKind
	MatchCount    int
	MatchRef      string
	InningsNumber int
	Fielded       bool
	Fielding      FieldingCounts
}

// ParseFieldingRow classifies and extracts one row of the fielding table.
// Pure: no lookups, no side effects.
func ParseFieldingRow(row SourceRow) ParsedRow {
	if len(row.Cells) <= colCatchesTotal {
		return ParsedRow{Kind: RowKindEnd}
	}

	link := strings.TrimSpace(row.MatchLink)
	if link == "" {
		count, ok := cellInt(row.Cells, colStumpings)
		if !ok {
			return ParsedRow{Kind: RowKindSkip}
		}
		return ParsedRow{Kind: RowKindSummary, MatchCount: count}
	}

	ref, ok := matchRefFromLink(link)
	if !ok {
		return ParsedRow{Kind: RowKindSkip}
	}

	// A dismissal cell that is not a number is a did-not-field marker
	// (TDNF, DNF and friends). The match still counts toward the career's
	// span, there is just no innings to record.
	dismissals, ok := cellInt(row.Cells, colDismissals)
	if !ok {
		return ParsedRow{Kind: RowKindMatch, MatchRef: ref}
	}

	inningsNumber, ok := cellInt(row.Cells, colInningsNumber)
	if !ok || inningsNumber <= 0 {
		return ParsedRow{Kind: RowKindMatch, MatchRef: ref}
	}

	return ParsedRow{
		Kind:          RowKindMatch,
		MatchRef:      ref,
		InningsNumber: inningsNumber,
		Fielded:       true,
		Fielding: FieldingCounts{
			Dismissals:    dismissals,
			CatchesTotal:  cellIntOrZero(row.Cells, colCatchesTotal),
			Stumpings:     cellIntOrZero(row.Cells, colStumpings),
			CatchesKeeper: cellIntOrZero(row.Cells, colCatchesKeeper),
			Catches:       cellIntOrZero(row.Cells, colCatches),
		},
	}
}

// matchRefFromLink cuts the match reference out of a link target: the
// trailing path segment minus the fixed prefix and the file extension.
func matchRefFromLink(link string) (string, bool) {
	if !strings.HasPrefix(link, matchLinkPrefix) {
		return "", false
	}
	rest := link[len(matchLinkPrefix):]
	ref, _, _ := strings.Cut(rest, ".")
	if ref == "" {
		return "", false
	}
	return ref, true
}

func cellInt(cells []string, idx int) (int, bool) {
	if idx >= len(cells) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(cells[idx]))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func cellIntOrZero(cells []string, idx int) int {
	n, ok := cellInt(cells, idx)
	if !ok {
		return 0
	}
	return n
}
