package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLength = 512

var querySpacing = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace flattens a query to one line and caps its length
// so span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := querySpacing.ReplaceAllString(query, " ")
	if len(flat) <= maxTracedQueryLength {
		return flat
	}

	return flat[:maxTracedQueryLength] + "..."
}
