package date

import (
	"slices"
	"testing"
	"time"
)

func TestRangeDays(t *testing.T) {
	testCases := []struct {
		name string
		r    Range
		want int
	}{
		{name: "single day", r: Range{MustParse("2025-03-15"), MustParse("2025-03-15")}, want: 1},
		{name: "week", r: NewRange(MustParse("2025-03-15"), Weekly), want: 7},
		{name: "february", r: NewRange(MustParse("2025-02-10"), Monthly), want: 28},
		{name: "year", r: NewRange(MustParse("2024-06-01"), Yearly), want: 366},
		{name: "inverted is empty", r: Range{MustParse("2025-03-16"), MustParse("2025-03-15")}, want: 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Days(); got != tc.want {
				t.Errorf("Days() = %d, want %d", got, tc.want)
			}
		})
	}
}

// A week containing a daylight-saving transition has a 23- or 25-hour local
// day; the count must not depend on wall-clock duration and must always
// agree with the day iterator.
func TestRangeDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tz database unavailable: %v", err)
	}
	defer func(l *time.Location) { time.Local = l }(time.Local)
	time.Local = loc

	testCases := []struct {
		name string
		r    Range
	}{
		{name: "spring forward", r: Between(MustParse("2025-03-09"), MustParse("2025-03-15"))},
		{name: "fall back", r: Between(MustParse("2025-11-02"), MustParse("2025-11-08"))},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Days(); got != 7 {
				t.Errorf("Days() = %d, want 7", got)
			}
			n := 0
			for range tc.r.Dates() {
				n++
			}
			if tc.r.Days() != n {
				t.Errorf("Days() = %d, but Dates() yields %d days", tc.r.Days(), n)
			}
		})
	}
}

func TestRangeDates(t *testing.T) {
	// The iterator must cross a month boundary in order.
	r := Range{MustParse("2025-01-30"), MustParse("2025-02-02")}
	var got []string
	for d := range r.Dates() {
		got = append(got, d.String())
	}
	want := []string{"2025-01-30", "2025-01-31", "2025-02-01", "2025-02-02"}
	if !slices.Equal(got, want) {
		t.Errorf("Dates() = %v, want %v", got, want)
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(MustParse("2025-03-15"), Monthly)
	if !r.Contains(MustParse("2025-03-01")) || !r.Contains(MustParse("2025-03-31")) {
		t.Errorf("range %v must contain its boundaries", r)
	}
	if r.Contains(MustParse("2025-04-01")) || r.Contains(MustParse("2025-02-28")) {
		t.Errorf("range %v must not contain neighboring days", r)
	}
}

func TestRangePeriod(t *testing.T) {
	testCases := []struct {
		name   string
		r      Range
		want   Period
		wantOk bool
	}{
		{name: "day", r: NewRange(MustParse("2025-03-15"), Daily), want: Daily, wantOk: true},
		{name: "week", r: NewRange(MustParse("2025-03-15"), Weekly), want: Weekly, wantOk: true},
		{name: "month", r: NewRange(MustParse("2025-03-15"), Monthly), want: Monthly, wantOk: true},
		{name: "year", r: NewRange(MustParse("2025-03-15"), Yearly), want: Yearly, wantOk: true},
		{name: "custom", r: Range{MustParse("2025-03-02"), MustParse("2025-03-20")}, wantOk: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.r.Period()
			if ok != tc.wantOk {
				t.Fatalf("Period() ok = %v, want %v", ok, tc.wantOk)
			}
			if ok && got != tc.want {
				t.Errorf("Period() = %v, want %v", got, tc.want)
			}
		})
	}
}
