package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrDataIntegrity marks a fault in the stored catalog, e.g. a scraped
	// row pointing at a match the loader never recorded. It aborts the
	// current career's pass; retrying without fixing the data cannot help.
	ErrDataIntegrity = errors.New("data integrity fault")

	// ErrNoPerformances reports that a career ended a pass with no match
	// data at all. The career is removed; this is a terminal outcome for
	// that career, not a failure.
	ErrNoPerformances = errors.New("career has no performances")
)
