package domain

import "time"

// DateRange is an inclusive interval of absolute timestamps.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (d DateRange) Validate() error {
	if d.Start.IsZero() || d.End.IsZero() {
		return ErrInvalidDateRange
	}
	if d.End.Before(d.Start) {
		return ErrInvalidDateRange
	}
	return nil
}

// Overlaps reports whether two inclusive ranges share at least one instant.
// Touching boundaries (one range ending exactly when the other starts) count
// as an overlap.
func (d DateRange) Overlaps(other DateRange) bool {
	return !d.Start.After(other.End) && !other.Start.After(d.End)
}
