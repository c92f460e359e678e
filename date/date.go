// Package date provides day-granular calendar values for the time ledger.
//
// All computations are wall-clock local: a Date identifies a local calendar
// day, and the bridging functions (StartOfDay, EndOfDay, ElapsedMinutes)
// interpret instants in the local timezone.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read format (allows single-digit month/day).

// DateFormat is the canonical representation of a date, ISO-8601.
const DateFormat = "2006-01-02"

// MinutesPerDay is the capacity of a full calendar day.
const MinutesPerDay = 24 * 60

// Date represents a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.midnight().Date()
	return d
}

// Of returns the local calendar day containing the instant t.
func Of(t time.Time) Date { return New(t.Date()) }

// Today returns the current local date.
func Today() Date { return Of(time.Now()) }

// midnight returns the local midnight opening day d.
func (d Date) midnight() time.Time {
	return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.Local)
}

// StartOfDay returns the instant the day d begins, local time.
func (d Date) StartOfDay() time.Time { return d.midnight() }

// EndOfDay returns the first instant of the following day. The day d covers
// the half-open interval [StartOfDay, EndOfDay).
func (d Date) EndOfDay() time.Time { return d.Add(1).midnight() }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.midnight().Weekday() }

// Add returns a new Date with the given number of days added.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.midnight().Before(x.midnight()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.midnight().After(x.midnight()) }

// String formats the date in its canonical format.
func (d Date) String() string { return d.midnight().Format(DateFormat) }

// Parse parses a Date from a string. It is lenient and accepts forms like
// "2025-7-1".
func Parse(str string) (Date, error) {
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return New(on.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ElapsedMinutes returns the number of minutes of the day d that have passed
// at the instant now: the full day for a past day, zero for a future day,
// and the truncated wall-clock time since midnight for the current day.
func ElapsedMinutes(d Date, now time.Time) int {
	today := Of(now)
	switch {
	case d.Before(today):
		return MinutesPerDay
	case d.After(today):
		return 0
	default:
		elapsed := int(now.Sub(d.StartOfDay()) / time.Minute)
		if elapsed < 0 {
			return 0
		}
		if elapsed > MinutesPerDay {
			return MinutesPerDay
		}
		return elapsed
	}
}

// UnmarshalJSON decodes a date from a JSON string in canonical format.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	d, err := Parse(str)
	if err != nil {
		return err
	}
	*j = d
	return nil
}

// MarshalJSON encodes the date as a JSON string in canonical format.
func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
