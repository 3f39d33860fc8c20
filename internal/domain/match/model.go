package match

import (
	"errors"
	"time"
)

// ErrNotFound reports a reference missing from the match catalog. The
// catalog is populated by a separate loader, so an unknown reference during
// ingestion is a data-integrity fault rather than a retryable miss.
var ErrNotFound = errors.New("match not found")

// Match is one external fixture keyed by the source's match reference.
// Created once and never mutated afterwards.
type Match struct {
	Ref       string
	DateStart time.Time
	DateEnd   time.Time
}

// Innings is one innings within a match, keyed by its number on the
// scorecard.
type Innings struct {
	ID       string
	MatchRef string
	Number   int
}
