// Package schedule contains the pure calendar arithmetic for recurring
// templates: advancing an occurrence date by a frequency unit and filtering
// templates due within a period.
package schedule

import (
	"iter"
	"time"

	"github.com/kakeibo-app/kakeibo_backend/internal/core/domain"
)

// Advance returns the next occurrence date after d for the given frequency
// unit and interval. Month arithmetic clamps to the last day of the target
// month when the source day does not exist there (Jan 31 + 1 month is Feb 28,
// or Feb 29 in a leap year); year arithmetic applies the same clamp for
// Feb 29 in non-leap target years. The result is normalized to UTC midnight.
//
// interval < 1 is rejected at template-creation time and never reaches here;
// Advance treats it as the caller's bug and returns d unchanged.
func Advance(d time.Time, unit domain.FrequencyUnit, interval int) time.Time {
	if interval < 1 {
		return Normalize(d)
	}

	d = Normalize(d)
	var target time.Time
	switch unit {
	case domain.Years:
		target = addClamped(d, interval*12)
	default: // domain.Months
		target = addClamped(d, interval)
	}
	return target
}

// addClamped adds months calendar months to d, clamping the day-of-month to
// the length of the target month instead of letting time.AddDate roll over
// (Jan 31 + 1 month must be Feb 28, not Mar 3).
func addClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	// First day of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Normalize truncates a date to UTC midnight so occurrence dates compare
// exactly regardless of the wall-clock time they were constructed with.
func Normalize(d time.Time) time.Time {
	year, month, day := d.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// OccurrencesDue yields the templates whose NextOccurrenceDate falls within
// [start, end] inclusive, preserving input order. The returned sequence is
// lazy and restartable; ranging over it twice re-filters the same slice.
func OccurrencesDue(templates []domain.RecurringTemplate, start, end time.Time) iter.Seq[domain.RecurringTemplate] {
	start = Normalize(start)
	end = Normalize(end)
	return func(yield func(domain.RecurringTemplate) bool) {
		for _, t := range templates {
			next := Normalize(t.NextOccurrenceDate)
			if next.Before(start) || next.After(end) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}
