package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/klocking"
	"github.com/etnz/klocking/date"
)

func fixtureState(t *testing.T) (*klocking.Store, time.Time) {
	t.Helper()
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
	s := klocking.NewStore()
	s.SetClock(func() time.Time { return now })
	w := s.CreateActivity("Work", "#ef4444")
	r := s.CreateActivity("Read", "#3b82f6")
	s.SetDayTotal("2025-03-15", w.ID, 120)
	s.SetDayTotal("2025-03-15", r.ID, 45)
	return s, now
}

func TestSummaryMarkdown(t *testing.T) {
	s, now := fixtureState(t)
	d := date.MustParse("2025-03-15")
	got := SummaryMarkdown(s.State(), date.Between(d, d), now)

	for _, want := range []string{
		"# Summary for 2025-03-15",
		"Work",
		"2h",
		"Read",
		"45m",
		"Untracked",
		"Future",
		"Tracked 2h45m of 12h elapsed.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q in:\n%s", want, got)
		}
	}
	// Declared order: Work before Read, meta rows after.
	if strings.Index(got, "Work") > strings.Index(got, "Read") {
		t.Errorf("rows out of declared order:\n%s", got)
	}
	if strings.Index(got, "Untracked") > strings.Index(got, "Future") {
		t.Errorf("future row must come last:\n%s", got)
	}
}

func TestSummaryMarkdownEmpty(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.Local)
	s := klocking.NewStore()
	s.SetClock(func() time.Time { return now })
	d := date.MustParse("2025-03-15")
	got := SummaryMarkdown(s.State(), date.Between(d, d), now)
	// Midnight sharp: nothing elapsed and nothing tracked, only future.
	if !strings.Contains(got, "Future") {
		t.Errorf("expected future row:\n%s", got)
	}
}

func TestSummaryMarkdownRunning(t *testing.T) {
	s, now := fixtureState(t)
	s.StartActivity(s.State().Activities[0].ID)
	later := now.Add(30*time.Minute + 5*time.Second)
	d := date.MustParse("2025-03-15")
	got := SummaryMarkdown(s.State(), date.Between(d, d), later)

	if !strings.Contains(got, "Running: Work for 00:30:05.") {
		t.Errorf("missing running line in:\n%s", got)
	}
	// Overlay counted: 120 committed + 30 running.
	if !strings.Contains(got, "2h30m") {
		t.Errorf("overlay not folded into Work row:\n%s", got)
	}
}

func TestRangeTitle(t *testing.T) {
	testCases := []struct {
		from, to string
		want     string
	}{
		{"2025-03-15", "2025-03-15", "2025-03-15"},
		{"2025-03-09", "2025-03-15", "week of 2025-03-09"},
		{"2025-03-01", "2025-03-31", "March 2025"},
		{"2025-01-01", "2025-12-31", "2025"},
		{"2025-03-02", "2025-03-10", "2025-03-02 to 2025-03-10"},
	}
	for _, tc := range testCases {
		r := date.Between(date.MustParse(tc.from), date.MustParse(tc.to))
		if got := rangeTitle(r); got != tc.want {
			t.Errorf("rangeTitle(%s..%s) = %q, want %q", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestActivitiesMarkdown(t *testing.T) {
	s, _ := fixtureState(t)
	s.StartActivity(s.State().Activities[0].ID)
	s.State().Activities[1].Archived = true

	got := ActivitiesMarkdown(s.State())
	for _, want := range []string{"# Activities", "Work", "running", "Read", "archived", "15/03/2025"} {
		if !strings.Contains(got, want) {
			t.Errorf("activities missing %q in:\n%s", want, got)
		}
	}

	// The created column follows the date-order preference.
	s.State().Settings.UseMMDDYYYY = true
	if got := ActivitiesMarkdown(s.State()); !strings.Contains(got, "03/15/2025") {
		t.Errorf("created column must honor mm/dd/yyyy:\n%s", got)
	}

	empty := ActivitiesMarkdown(klocking.NewStore().State())
	if !strings.Contains(empty, "No activities yet.") {
		t.Errorf("empty roster:\n%s", empty)
	}
}

func TestDayMarkdown(t *testing.T) {
	s, now := fixtureState(t)
	got := DayMarkdown(s.State(), date.MustParse("2025-03-15"), now)

	for _, want := range []string{
		"# Day 2025-03-15",
		"Work",
		"Read",
		"Unallocated: 9h15m of 12h elapsed.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("day view missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Future") {
		t.Errorf("day view must not list the future row:\n%s", got)
	}
}

func TestSessionMarkdown(t *testing.T) {
	s, now := fixtureState(t)
	w := s.State().Activities[0]

	if got := SessionMarkdown(s.State(), now); !strings.Contains(got, "No session running.") {
		t.Errorf("idle view:\n%s", got)
	}

	s.StartActivity(w.ID)
	got := SessionMarkdown(s.State(), now.Add(95*time.Second))
	if !strings.Contains(got, "Work") || !strings.Contains(got, "00:01:35") {
		t.Errorf("running view:\n%s", got)
	}

	s.StopRunning()
	got = SessionMarkdown(s.State(), now)
	if !strings.Contains(got, "Last activity: Work.") {
		t.Errorf("idle view must hint the last activity:\n%s", got)
	}
}
