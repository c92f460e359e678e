package klocking

import (
	"sort"
	"time"

	"github.com/etnz/klocking/date"
)

// unknownColor is the display token for minutes attributed to an activity no
// longer present in the store.
const unknownColor = "#94a3b8"

// runningOverlay returns the minutes of the running session that fall within
// the day d at the instant now. The overlay is transient display data: it is
// never written to the ledger. A session starting at or after now
// contributes nothing (a session cannot overlay the future).
func runningOverlay(run *Running, d date.Date, now time.Time) int {
	if run == nil {
		return 0
	}
	start := time.UnixMilli(run.Start)
	if !start.Before(now) {
		return 0
	}
	begin, end := d.StartOfDay(), d.EndOfDay()
	if start.After(begin) {
		begin = start
	}
	if now.Before(end) {
		end = now
	}
	if !begin.Before(end) {
		return 0
	}
	return int(end.Sub(begin) / time.Minute)
}

// Totals aggregates a date range: committed ledger minutes combined with the
// running-session overlay, plus the untracked and future remainders.
type Totals struct {
	PerActivity map[string]int // activity id to minutes (committed + overlay)

	TrackedPast   int // sum over days of min(daySum, elapsed), clamping over-allocation
	UntrackedPast int // max(0, ElapsedWindow - TrackedPast)
	Future        int // max(0, TotalWindow - ElapsedWindow)
	ElapsedWindow int // sum of per-day elapsed minutes, capped at a full day each
	TotalWindow   int // full capacity of the range, 1440 per day
}

// Aggregate computes the totals of the inclusive day range r at the instant
// now. It is a pure read: display layers call it on demand (on a state
// change or a clock tick) rather than through any reactive dependency.
func Aggregate(s *State, r date.Range, now time.Time) Totals {
	tot := Totals{PerActivity: map[string]int{}}
	for d := range r.Dates() {
		day := d.String()
		daySum := 0
		for id, mins := range s.DailyTotals[day] {
			if mins <= 0 {
				continue
			}
			daySum += mins
			tot.PerActivity[id] += mins
		}
		if overlay := runningOverlay(s.Running, d, now); overlay > 0 {
			daySum += overlay
			tot.PerActivity[s.Running.ActivityID] += overlay
		}
		elapsed := date.ElapsedMinutes(d, now)
		tot.ElapsedWindow += elapsed
		tot.TrackedPast += min(daySum, elapsed)
	}
	tot.TotalWindow = r.Days() * date.MinutesPerDay
	tot.UntrackedPast = max(0, tot.ElapsedWindow-tot.TrackedPast)
	tot.Future = max(0, tot.TotalWindow-tot.ElapsedWindow)
	return tot
}

// ChartRow is one slice of the range chart.
type ChartRow struct {
	ID        string
	Name      string
	Color     string
	Minutes   int
	Untracked bool
	Future    bool
}

// ChartRows produces the display rows for the aggregated totals: one row per
// activity with a positive total in the declared display order (activities
// no longer known sort after known ones), then the untracked row when
// positive, then the future row, always last. Rows hidden by the visibility
// map and rows with no minutes are dropped. This exact sequence is part of
// the display contract.
func ChartRows(s *State, tot Totals) []ChartRow {
	order := make(map[string]int, len(s.Activities))
	for i, a := range s.Activities {
		order[a.ID] = i
	}

	type ordered struct {
		ChartRow
		order int
	}
	rows := make([]ordered, 0, len(tot.PerActivity)+2)
	for id, mins := range tot.PerActivity {
		row := ChartRow{ID: id, Name: "Unknown", Color: unknownColor, Minutes: mins}
		idx, known := order[id]
		if !known {
			idx = int(^uint(0)>>1) - 2 // unknowns sort after every known activity
		}
		if a := s.Activity(id); a != nil {
			row.Name, row.Color = a.Name, a.Color
		}
		rows = append(rows, ordered{row, idx})
	}
	if tot.UntrackedPast > 0 {
		rows = append(rows, ordered{
			ChartRow{
				ID:        UntrackedID,
				Name:      "Untracked",
				Color:     metaColors[UntrackedID][s.Theme],
				Minutes:   tot.UntrackedPast,
				Untracked: true,
			},
			int(^uint(0)>>1) - 1,
		})
	}
	if tot.Future > 0 {
		rows = append(rows, ordered{
			ChartRow{
				ID:      FutureID,
				Name:    "Future",
				Color:   metaColors[FutureID][s.Theme],
				Minutes: tot.Future,
				Future:  true,
			},
			int(^uint(0) >> 1),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		return rows[i].ID < rows[j].ID // deterministic order for unknowns
	})

	out := make([]ChartRow, 0, len(rows))
	for _, r := range rows {
		if r.Minutes <= 0 || !s.Visibility.Visible(r.ID) {
			continue
		}
		out = append(out, r.ChartRow)
	}
	return out
}
