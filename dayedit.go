package klocking

import (
	"github.com/etnz/klocking/date"
)

// SliceDecision is the outcome of selecting a chart slice for editing.
type SliceDecision int

const (
	// OpenEdit opens the edit-total form for the selected activity and day.
	OpenEdit SliceDecision = iota
	// OpenAllocate opens the allocate-from-untracked form.
	OpenAllocate
	// Ignore is the silent no-op for the future slice.
	Ignore
	// BlockedRange rejects the edit because the active range is not a day.
	BlockedRange
	// BlockedFutureDay rejects the edit because the day has not happened.
	BlockedFutureDay
	// BlockedRunning rejects the edit because the selected activity is
	// currently running; the session must be stopped first.
	BlockedRunning
	// CreateActivityFirst routes to activity creation: the untracked slice
	// was selected but no active activity exists to allocate to.
	CreateActivityFirst
)

func (d SliceDecision) String() string {
	switch d {
	case OpenEdit:
		return "open-edit"
	case OpenAllocate:
		return "open-allocate"
	case Ignore:
		return "ignore"
	case BlockedRange:
		return "blocked-range"
	case BlockedFutureDay:
		return "blocked-future-day"
	case BlockedRunning:
		return "blocked-running"
	case CreateActivityFirst:
		return "create-activity-first"
	default:
		return "unknown"
	}
}

// DayEditor adjudicates user edits of a single day's totals. Only a day
// range may be edited directly; it enforces the rule that a day's minutes
// are finite and mutually exclusive across activities, clamping any request
// that would overflow the day's elapsed capacity.
type DayEditor struct {
	store  *Store
	period date.Period // kind of the active display range
	anchor date.Date   // the day under edit
}

// NewDayEditor returns an editor for the given day under the given active
// range kind.
func NewDayEditor(store *Store, period date.Period, anchor date.Date) *DayEditor {
	return &DayEditor{store: store, period: period, anchor: anchor}
}

// SliceClick decides what selecting the chart row id leads to. It never
// mutates state; the caller presents the decision (notification, form, or
// nothing).
func (e *DayEditor) SliceClick(rowID string) SliceDecision {
	if e.period != date.Daily {
		return BlockedRange
	}
	if e.anchor.After(date.Of(e.store.Now())) {
		return BlockedFutureDay
	}
	if rowID == FutureID {
		return Ignore
	}
	if rowID == UntrackedID {
		if !e.store.State().HasActiveActivities() {
			return CreateActivityFirst
		}
		return OpenAllocate
	}
	run := e.store.State().Running
	if run != nil && run.ActivityID == rowID {
		return BlockedRunning
	}
	return OpenEdit
}

// CurrentMinutes returns the minutes displayed for the activity on the
// anchor day: committed plus the overlay when that activity is running.
func (e *DayEditor) CurrentMinutes(activityID string) int {
	day := e.anchor.String()
	state := e.store.State()
	persisted := state.DailyTotals[day][activityID]
	if persisted < 0 {
		persisted = 0
	}
	if run := state.Running; run != nil && run.ActivityID == activityID {
		persisted += runningOverlay(run, e.anchor, e.store.Now())
	}
	return persisted
}

// Unallocated returns the anchor day's minutes not yet attributed to any
// activity.
func (e *DayEditor) Unallocated() int {
	return e.store.AvailableUntrackedForDate(e.anchor.String())
}

// EditResult reports a completed day edit.
type EditResult struct {
	Applied int  // minutes written to the ledger
	Capped  bool // the raw request exceeded the day's remaining capacity
	Cap     int  // the maximum permissible value, for the capped notice
}

// EditActivityTotal sets the activity's committed total for the anchor day,
// clamped to the day's remaining capacity: elapsed minutes less every other
// activity's committed minutes and the overlay of a (different) running
// activity. It reports ok=false without touching state when the active
// range is not a day, the day is in the future, or the activity is
// currently running.
func (e *DayEditor) EditActivityTotal(activityID string, targetMinutes int) (EditResult, bool) {
	if e.period != date.Daily {
		return EditResult{}, false
	}
	now := e.store.Now()
	if e.anchor.After(date.Of(now)) {
		return EditResult{}, false
	}
	state := e.store.State()
	if run := state.Running; run != nil && run.ActivityID == activityID {
		return EditResult{}, false
	}

	day := e.anchor.String()
	others := 0
	for id, m := range state.DailyTotals[day] {
		if id != activityID && m > 0 {
			others += m
		}
	}
	others += runningOverlay(state.Running, e.anchor, now)

	limit := date.ElapsedMinutes(e.anchor, now) - others
	if limit < 0 {
		limit = 0
	}
	desired := targetMinutes
	if desired < 0 {
		desired = 0
	}
	capped := desired > limit
	if capped {
		desired = limit
	}
	e.store.SetDayTotal(day, activityID, desired)
	return EditResult{Applied: desired, Capped: capped, Cap: limit}, true
}
