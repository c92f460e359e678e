package date

import (
	"fmt"
	"iter"
	"time"
)

// Range represents an inclusive range of days.
type Range struct{ From, To Date }

// NewRange returns the range of the well-known period containing the anchor
// day. Life has no fixed boundaries and must be built directly from the
// life-start marker.
func NewRange(anchor Date, period Period) Range {
	return Range{From: anchor.StartOf(period), To: anchor.EndOf(period)}
}

// Between returns the range with explicit bounds, both included.
func Between(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether the day is included in the range (boundaries
// included).
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// ContainsInstant reports whether the instant t falls within the range's
// days.
func (r Range) ContainsInstant(t time.Time) bool { return r.Contains(Of(t)) }

// Days returns the number of days in the range.
func (r Range) Days() int {
	if r.To.Before(r.From) {
		return 0
	}
	// Counted in UTC so a 23- or 25-hour local day (DST transition) still
	// counts as one day, keeping Days consistent with Dates.
	from := time.Date(r.From.y, r.From.m, r.From.d, 0, 0, 0, 0, time.UTC)
	to := time.Date(r.To.y, r.To.m, r.To.d, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from)/(24*time.Hour)) + 1
}

// Dates iterates over every day of the range in chronological order.
func (r Range) Dates() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Period returns the standard period this range covers, if it is one.
func (r Range) Period() (p Period, ok bool) {
	switch {
	case r.From == r.To:
		return Daily, true
	case r.From.Weekday() == time.Sunday && r.From.EndOf(Weekly) == r.To:
		return Weekly, true
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return Monthly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == r.To:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Identifier computes a short unique identifier for the range, used in
// export names and report titles.
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		return fmt.Sprintf("%s-w", r.From)
	case Monthly:
		return r.From.midnight().Format("2006-01")
	case Yearly:
		return r.From.midnight().Format("2006")
	default:
		panic("unknown period")
	}
}
