package klocking

import (
	"fmt"
	"time"

	"github.com/etnz/klocking/date"
	"github.com/shopspring/decimal"
)

// FormatMinutes renders a minute count for display, either as raw minutes
// ("95min") or in hour/minute form ("1h35m").
func FormatMinutes(mins int, asMinutes bool) string {
	if mins < 0 {
		mins = 0
	}
	if asMinutes {
		return fmt.Sprintf("%dmin", mins)
	}
	h, m := mins/60, mins%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatHMS renders an elapsed duration as hh:mm:ss, for the live session
// counter.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Percent is a share of a whole, computed exactly.
type Percent struct{ d decimal.Decimal }

// Share returns the percentage part/total, or zero percent of an empty
// whole.
func Share(part, total int) Percent {
	if total <= 0 {
		return Percent{}
	}
	p := decimal.NewFromInt(int64(part) * 100).Div(decimal.NewFromInt(int64(total)))
	return Percent{d: p}
}

// String rounds to the nearest whole percent, the chart tooltip form.
func (p Percent) String() string { return p.d.Round(0).String() + "%" }

// Hours returns the minute count as an exact decimal hour fraction, e.g.
// 90 minutes is "1.5h".
func Hours(mins int) string {
	h := decimal.NewFromInt(int64(mins)).Div(decimal.NewFromInt(60))
	return h.RoundBank(2).String() + "h"
}

// FormatDateShort renders a day in the user's preferred order, dd/mm/yyyy
// by default or mm/dd/yyyy when the setting asks for it.
func FormatDateShort(d date.Date, useMMDDYYYY bool) string {
	if useMMDDYYYY {
		return fmt.Sprintf("%02d/%02d/%04d", d.Month(), d.Day(), d.Year())
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day(), d.Month(), d.Year())
}

// ParseDateInput parses a dd/mm/yyyy (or mm/dd/yyyy) user entry into a day,
// rejecting impossible dates such as 31/02.
func ParseDateInput(s string, useMMDDYYYY bool) (date.Date, error) {
	var a, b, y int
	if _, err := fmt.Sscanf(s, "%2d/%2d/%4d", &a, &b, &y); err != nil {
		return date.Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	dd, mm := a, b
	if useMMDDYYYY {
		dd, mm = b, a
	}
	if mm < 1 || mm > 12 || dd < 1 {
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	d := date.New(y, time.Month(mm), dd)
	if d.Year() != y || d.Month() != time.Month(mm) || d.Day() != dd {
		// Normalization moved the date: the day did not exist.
		return date.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return d, nil
}
