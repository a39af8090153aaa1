// Package interval models rental periods as closed calendar-date intervals.
//
// Rental granularity is one day: a vehicle handed back on some date cannot
// be picked up by another customer the same date, so both boundaries are
// inclusive and a shared boundary day counts as an overlap.
package interval

import (
	"fleetrent/shared/constant"
	"fleetrent/shared/failure"
	"fleetrent/shared/timezone"
	"time"
)

// Interval is a closed date range [Start, End]. Time-of-day components are
// truncated on construction; only the calendar date matters.
type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval from two dates. The start must not be after the
// end; malformed ranges are rejected before any comparison is attempted.
func New(start, end time.Time) (Interval, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if start.After(end) {
		return Interval{}, failure.InvalidInterval("start date must not be after end date") //nolint:wrapcheck
	}

	return Interval{Start: start, End: end}, nil
}

// Parse builds an interval from two YYYY-MM-DD strings in the application
// timezone.
func Parse(startDate, endDate string) (Interval, error) {
	start, err := timezone.Parse(constant.RentalDateFormat, startDate)
	if err != nil {
		return Interval{}, failure.InvalidInterval("invalid start date: " + startDate) //nolint:wrapcheck
	}

	end, err := timezone.Parse(constant.RentalDateFormat, endDate)
	if err != nil {
		return Interval{}, failure.InvalidInterval("invalid end date: " + endDate) //nolint:wrapcheck
	}

	return New(start, end)
}

// Overlaps reports whether the two closed intervals share at least one day.
func (i Interval) Overlaps(other Interval) bool {
	return !i.Start.After(other.End) && !other.Start.After(i.End)
}

// Contains reports whether the given date falls inside the interval.
func (i Interval) Contains(t time.Time) bool {
	day := truncateToDay(t)

	return !day.Before(i.Start) && !day.After(i.End)
}

// Days returns the rental length in days, boundary days included.
func (i Interval) Days() int {
	return int(i.End.Sub(i.Start).Hours()/24) + 1
}

func (i Interval) String() string {
	return i.Start.Format(constant.RentalDateFormat) + ".." + i.End.Format(constant.RentalDateFormat)
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.In(timezone.GetLocation()).Date()

	return time.Date(year, month, day, 0, 0, 0, 0, timezone.GetLocation())
}
