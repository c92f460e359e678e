package klocking

import (
	"testing"

	"github.com/etnz/klocking/date"
)

func TestSliceClickDecisions(t *testing.T) {
	s, _ := testStore(at(2025, 3, 15, 12, 0))
	w := s.CreateActivity("Work", "#111")
	r := s.CreateActivity("Read", "#222")
	s.StartActivity(r.ID)
	today := date.MustParse("2025-03-15")

	testCases := []struct {
		name   string
		period date.Period
		anchor date.Date
		rowID  string
		want   SliceDecision
	}{
		{name: "non-day range is blocked", period: date.Weekly, anchor: today, rowID: w.ID, want: BlockedRange},
		{name: "future day is blocked", period: date.Daily, anchor: today.Add(1), rowID: w.ID, want: BlockedFutureDay},
		{name: "future slice is ignored", period: date.Daily, anchor: today, rowID: FutureID, want: Ignore},
		{name: "untracked opens allocation", period: date.Daily, anchor: today, rowID: UntrackedID, want: OpenAllocate},
		{name: "running activity is blocked", period: date.Daily, anchor: today, rowID: r.ID, want: BlockedRunning},
		{name: "idle activity opens edit", period: date.Daily, anchor: today, rowID: w.ID, want: OpenEdit},
		{name: "past day opens edit", period: date.Daily, anchor: today.Add(-3), rowID: w.ID, want: OpenEdit},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewDayEditor(s, tc.period, tc.anchor)
			if got := e.SliceClick(tc.rowID); got != tc.want {
				t.Errorf("SliceClick(%q) = %v, want %v", tc.rowID, got, tc.want)
			}
		})
	}
}

func TestSliceClickUntrackedWithoutActivities(t *testing.T) {
	s, _ := testStore(at(2025, 3, 15, 12, 0))
	e := NewDayEditor(s, date.Daily, date.MustParse("2025-03-15"))
	if got := e.SliceClick(UntrackedID); got != CreateActivityFirst {
		t.Errorf("decision = %v, want CreateActivityFirst", got)
	}

	// Only archived activities counts as none.
	a := s.CreateActivity("Old", "#1")
	s.ArchiveActivity(a.ID, true)
	if got := e.SliceClick(UntrackedID); got != CreateActivityFirst {
		t.Errorf("decision with only archived = %v, want CreateActivityFirst", got)
	}
}

func TestEditActivityTotalClamps(t *testing.T) {
	// Requesting above elapsed-others writes the cap, not the raw value,
	// and reports the cap for the notification.
	s, _ := testStore(at(2025, 3, 15, 12, 0)) // 720 elapsed today
	w := s.CreateActivity("Work", "#111")
	r := s.CreateActivity("Read", "#222")
	day := date.MustParse("2025-03-15")
	s.SetDayTotal(day.String(), r.ID, 300)

	e := NewDayEditor(s, date.Daily, day)
	res, ok := e.EditActivityTotal(w.ID, 1000)
	if !ok {
		t.Fatal("edit rejected")
	}
	if !res.Capped || res.Cap != 420 || res.Applied != 420 {
		t.Errorf("result = %+v, want capped at 420", res)
	}
	if got := s.State().DailyTotals[day.String()][w.ID]; got != 420 {
		t.Errorf("ledger = %d, want clamped 420", got)
	}

	// A fitting value applies as-is.
	res, ok = e.EditActivityTotal(w.ID, 100)
	if !ok || res.Capped || res.Applied != 100 {
		t.Errorf("result = %+v, want uncapped 100", res)
	}

	// Zero removes the entry.
	if _, ok := e.EditActivityTotal(w.ID, 0); !ok {
		t.Fatal("zero edit rejected")
	}
	if _, present := s.State().DailyTotals[day.String()][w.ID]; present {
		t.Errorf("zero edit must remove the entry")
	}
}

func TestEditActivityTotalCountsRunningOverlay(t *testing.T) {
	// The overlay of a different running activity consumes capacity.
	s, now := testStore(at(2025, 3, 15, 10, 0))
	w := s.CreateActivity("Work", "#111")
	r := s.CreateActivity("Read", "#222")
	s.StartActivity(r.ID)
	*now = at(2025, 3, 15, 12, 0) // overlay r = 120, elapsed 720

	e := NewDayEditor(s, date.Daily, date.MustParse("2025-03-15"))
	res, ok := e.EditActivityTotal(w.ID, 10000)
	if !ok {
		t.Fatal("edit rejected")
	}
	if res.Cap != 600 || res.Applied != 600 {
		t.Errorf("result = %+v, want cap 720-120=600", res)
	}
}

func TestEditActivityTotalRejections(t *testing.T) {
	s, _ := testStore(at(2025, 3, 15, 12, 0))
	w := s.CreateActivity("Work", "#111")
	r := s.CreateActivity("Read", "#222")
	s.StartActivity(r.ID)
	today := date.MustParse("2025-03-15")

	testCases := []struct {
		name   string
		period date.Period
		anchor date.Date
		id     string
	}{
		{name: "non-day range", period: date.Monthly, anchor: today, id: w.ID},
		{name: "future day", period: date.Daily, anchor: today.Add(1), id: w.ID},
		{name: "running activity", period: date.Daily, anchor: today, id: r.ID},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewDayEditor(s, tc.period, tc.anchor)
			if _, ok := e.EditActivityTotal(tc.id, 60); ok {
				t.Error("edit must be rejected")
			}
			if len(s.State().DailyTotals) != 0 {
				t.Error("rejected edit must not touch the ledger")
			}
		})
	}
}

func TestCurrentMinutesIncludesOverlay(t *testing.T) {
	s, now := testStore(at(2025, 3, 15, 10, 0))
	w := s.CreateActivity("Work", "#111")
	s.SetDayTotal("2025-03-15", w.ID, 30)
	s.StartActivity(w.ID)
	*now = at(2025, 3, 15, 10, 45)

	e := NewDayEditor(s, date.Daily, date.MustParse("2025-03-15"))
	if got := e.CurrentMinutes(w.ID); got != 75 {
		t.Errorf("current = %d, want 30 committed + 45 overlay", got)
	}
}

func TestUnallocated(t *testing.T) {
	s, _ := testStore(at(2025, 3, 15, 12, 0))
	w := s.CreateActivity("Work", "#111")
	s.SetDayTotal("2025-03-15", w.ID, 200)

	e := NewDayEditor(s, date.Daily, date.MustParse("2025-03-15"))
	if got := e.Unallocated(); got != 520 {
		t.Errorf("unallocated = %d, want 720-200", got)
	}
}
