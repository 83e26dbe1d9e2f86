package record

import (
	"fmt"
	"time"
)

const layoutISO = "2006-01-02"

// Day is a calendar day in canonical YYYY-MM-DD form. All aggregation keys
// on this exact string, so normalization happens once at write time.
type Day string

// DayOf normalizes a point in time to its local calendar day.
func DayOf(t time.Time) Day {
	return Day(t.Local().Format(layoutISO))
}

// Today returns the current local calendar day.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay validates raw as a canonical calendar day string.
func ParseDay(raw string) (Day, error) {
	t, err := time.Parse(layoutISO, raw)
	if err != nil {
		return "", fmt.Errorf("record: invalid day %q: %w", raw, err)
	}
	return DayOf(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)), nil
}

// MustDay parses the input and panics on error. Intended for tests.
func MustDay(raw string) Day {
	d, err := ParseDay(raw)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight local time for the day. Zero time when invalid.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(layoutISO, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the day shifted by n calendar days.
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// In reports whether the day falls inside the given month.
func (d Day) In(year int, month time.Month) bool {
	t := d.Time()
	return t.Year() == year && t.Month() == month
}

func (d Day) String() string {
	return string(d)
}

// NewDay builds the canonical day string for a year/month/day triple.
func NewDay(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}
