package klocking

import (
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/etnz/klocking/date"
)

// Store is the single source of truth for the activity ledger. Every
// mutation goes through it, and each successful mutation is persisted to the
// configured Storage before the action returns (best effort: persistence
// failures are logged and swallowed, the in-memory state remains
// authoritative for the session).
//
// A Store is not safe for concurrent mutation; the engine is single-threaded
// by contract. Only Halt/Halted may be called from another goroutine.
type Store struct {
	state   State
	storage Storage
	halted  atomic.Bool

	// lastCommit is the commit counter value of this store's latest write,
	// used by the guard to tell its own commits from a foreign one.
	lastCommit atomic.Uint64

	now func() time.Time // injectable clock
}

// Open loads the durable state from storage and returns a ready Store.
// Loading is lenient and never fatal: a missing or malformed record yields
// defaults, field by field.
func Open(storage Storage) *Store {
	s := &Store{storage: storage, now: time.Now}
	s.state = loadState(storage, s.now())
	if storage != nil {
		s.lastCommit.Store(storage.Commit())
	}
	return s
}

// NewStore returns an in-memory Store with no durable storage behind it.
func NewStore() *Store {
	s := &Store{now: time.Now}
	s.state = emptyState(s.now())
	return s
}

// SetClock replaces the store's clock. Intended for tests.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// State returns the current state for reading. Callers must not mutate it.
func (s *Store) State() *State { return &s.state }

// Now returns the store's current instant.
func (s *Store) Now() time.Time { return s.now() }

// Halt switches the store into the halted state: persistence stops so this
// process can no longer overwrite a newer foreign commit. The transition is
// one-way; a halted store can only be abandoned and reopened.
func (s *Store) Halt() { s.halted.Store(true) }

// Halted reports whether the store has been halted.
func (s *Store) Halted() bool { return s.halted.Load() }

// LastCommit returns the commit counter value of this store's latest write.
func (s *Store) LastCommit() uint64 { return s.lastCommit.Load() }

// persist writes the full state and bumps the shared commit counter.
// Failures are swallowed: storage availability is outside the engine's
// control and the in-memory state stays authoritative.
func (s *Store) persist() {
	if s.storage == nil || s.halted.Load() {
		return
	}
	blob, err := encodeState(&s.state)
	if err != nil {
		log.Printf("warning: could not encode state: %v", err)
		return
	}
	if err := s.storage.WriteState(blob); err != nil {
		log.Printf("warning: could not persist state: %v", err)
		return
	}
	// Recorded before the bump lands so the guard never mistakes this
	// store's own commit for a foreign one.
	s.lastCommit.Store(s.storage.Commit() + 1)
	n, err := s.storage.BumpCommit()
	if err != nil {
		log.Printf("warning: could not bump commit counter: %v", err)
		return
	}
	s.lastCommit.Store(n)
}

// CreateActivity appends a new activity and returns it. An empty (or
// all-space) name is a silent no-op returning nil. An empty color picks the
// next palette default.
func (s *Store) CreateActivity(name, color string) *Activity {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}
	if color == "" {
		color = Palette[len(s.state.Activities)%len(Palette)]
	}
	a := Activity{
		ID:        newActivityID(),
		Name:      trimmed,
		Color:     color,
		CreatedAt: s.now().UnixMilli(),
	}
	s.state.Activities = append(s.state.Activities, a)
	s.persist()
	return s.state.Activity(a.ID)
}

// UpdateActivity replaces the name and color of an existing activity,
// preserving id, creation time and archived flag. Unknown id or empty name
// is a no-op.
func (s *Store) UpdateActivity(id, name, color string) bool {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false
	}
	a := s.state.Activity(id)
	if a == nil {
		return false
	}
	a.Name = trimmed
	a.Color = color
	s.persist()
	return true
}

// ArchiveActivity sets the archived flag. Archiving the running activity
// first reconciles the session into the ledger, then clears it, so no
// elapsed time is lost. Archiving the last-used activity clears that
// reference.
func (s *Store) ArchiveActivity(id string, archive bool) {
	a := s.state.Activity(id)
	if a == nil {
		return
	}
	a.Archived = archive
	if archive {
		if s.state.Running != nil && s.state.Running.ActivityID == id {
			s.reconcileRunning()
			s.state.Running = nil
		}
		if s.state.LastActID == id {
			s.state.LastActID = ""
		}
	}
	s.persist()
}

// DeleteActivityAndData removes the activity and purges its minutes from
// every day bucket. Buckets left empty are kept, not removed. Dangling
// references (last used, running, visibility) are cleared.
func (s *Store) DeleteActivityAndData(id string) {
	if s.state.Activity(id) == nil {
		return
	}
	kept := s.state.Activities[:0]
	for _, a := range s.state.Activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	s.state.Activities = kept
	for _, bucket := range s.state.DailyTotals {
		delete(bucket, id)
	}
	if s.state.LastActID == id {
		s.state.LastActID = ""
	}
	if s.state.Running != nil && s.state.Running.ActivityID == id {
		s.state.Running = nil
	}
	delete(s.state.Visibility, id)
	s.persist()
}

// ReorderActivities moves the source activity immediately before the
// target's current position in the display order. Missing ids or equal
// source and target are a no-op.
func (s *Store) ReorderActivities(sourceID, targetID string) {
	from, to := -1, -1
	for i, a := range s.state.Activities {
		switch a.ID {
		case sourceID:
			from = i
		case targetID:
			to = i
		}
	}
	if from == -1 || to == -1 || from == to {
		return
	}
	moved := s.state.Activities[from]
	next := append(s.state.Activities[:from], s.state.Activities[from+1:]...)
	// to was computed before removal; the target's index shifts down when
	// the source sat before it.
	if from < to {
		to--
	}
	next = append(next, Activity{})
	copy(next[to+1:], next[to:])
	next[to] = moved
	s.state.Activities = next
	s.persist()
}

// StartActivity opens a running session for the activity at the current
// instant, first reconciling any session already running. The activity is
// recorded as last used. Unknown or archived ids are a no-op.
func (s *Store) StartActivity(activityID string) {
	a := s.state.Activity(activityID)
	if a == nil || a.Archived {
		return
	}
	s.reconcileRunning()
	s.state.Running = &Running{ActivityID: activityID, Start: s.now().UnixMilli()}
	s.state.LastActID = activityID
	s.persist()
}

// StopRunning reconciles the running session into the ledger and clears it.
// Calling it with no session running leaves the state unchanged.
func (s *Store) StopRunning() {
	if s.state.Running == nil {
		return
	}
	s.reconcileRunning()
	s.state.Running = nil
	s.persist()
}

// SetDayTotal sets the committed minutes for an activity on a day to
// max(0, floor(minutes)). A resulting zero removes the entry rather than
// storing it.
func (s *Store) SetDayTotal(day, activityID string, minutes int) {
	s.setBucket(day, activityID, minutes)
	s.persist()
}

// IncDayTotal adds delta (possibly negative) to the committed minutes,
// floored at zero with the same zero-removal rule as SetDayTotal.
func (s *Store) IncDayTotal(day, activityID string, delta int) {
	current := 0
	if bucket, ok := s.state.DailyTotals[day]; ok {
		current = bucket[activityID]
	}
	s.setBucket(day, activityID, current+delta)
	s.persist()
}

// setBucket applies the zero-floor/zero-removal write rule without
// persisting.
func (s *Store) setBucket(day, activityID string, minutes int) {
	if s.state.DailyTotals == nil {
		s.state.DailyTotals = DailyTotals{}
	}
	bucket, ok := s.state.DailyTotals[day]
	if !ok {
		bucket = DayBucket{}
		s.state.DailyTotals[day] = bucket
	}
	if minutes <= 0 {
		delete(bucket, activityID)
		return
	}
	bucket[activityID] = minutes
}

// AddResult reports the outcome of AddManualTime.
type AddResult struct {
	Added  int  // minutes actually committed
	Capped bool // the request exceeded the day's unallocated minutes
}

// AddManualTime adds up to the requested minutes to the activity on the
// given day (today when day is empty), capped at the day's currently
// unallocated minutes.
func (s *Store) AddManualTime(activityID string, minutes int, day string) AddResult {
	if day == "" {
		day = date.Of(s.now()).String()
	}
	want := minutes
	if want < 0 {
		want = 0
	}
	avail := s.AvailableUntrackedForDate(day)
	add := min(want, avail)
	if add > 0 {
		s.IncDayTotal(day, activityID, add)
	}
	return AddResult{Added: add, Capped: add < want}
}

// AvailableUntrackedForDate returns the minutes of the day not yet
// attributed to any activity, counting both committed entries and the
// running-session overlay.
func (s *Store) AvailableUntrackedForDate(day string) int {
	d, err := date.Parse(day)
	if err != nil {
		return 0
	}
	now := s.now()
	sum := s.state.DailyTotals[day].Sum() + runningOverlay(s.state.Running, d, now)
	avail := date.ElapsedMinutes(d, now) - sum
	if avail < 0 {
		return 0
	}
	return avail
}

// SetVisibility replaces the chart visibility map.
func (s *Store) SetVisibility(next VisibilityMap) {
	if next == nil {
		next = VisibilityMap{}
	}
	s.state.Visibility = next
	s.persist()
}

// SetSettings replaces the presentation settings.
func (s *Store) SetSettings(next Settings) {
	if next.Language != LangPTBR {
		next.Language = LangEN
	}
	s.state.Settings = next
	s.persist()
}

// ToggleTheme flips between the light and dark chart palettes.
func (s *Store) ToggleTheme() {
	if s.state.Theme == Dark {
		s.state.Theme = Light
	} else {
		s.state.Theme = Dark
	}
	s.persist()
}

// SetLifeStart moves the lifetime aggregation marker to the local start of
// the given day. A marker in the future is a no-op.
func (s *Store) SetLifeStart(t time.Time) bool {
	d := date.Of(t)
	if d.After(date.Of(s.now())) {
		return false
	}
	s.state.LifeStart = d.StartOfDay().UnixMilli()
	s.persist()
	return true
}

// ResetAll clears durable storage and resets every field to its default.
func (s *Store) ResetAll() {
	if s.storage != nil && !s.halted.Load() {
		if err := s.storage.Reset(); err != nil {
			log.Printf("warning: could not clear storage: %v", err)
		}
	}
	s.state = emptyState(s.now())
	s.persist()
}
