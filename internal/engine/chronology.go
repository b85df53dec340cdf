package engine

import "time"

// ValidateChronology checks that a flight's landing timestamp is strictly
// later than its start. It is pure and idempotent: it must be re-run on
// every create and on every edit touching either timestamp, and
// re-validating an already valid pair never fails.
func ValidateChronology(start, landing time.Time) error {
	if !landing.After(start) {
		return &TimeOrderError{Start: start, Landing: landing}
	}
	return nil
}
