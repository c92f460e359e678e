package klocking

import (
	"time"

	"github.com/etnz/klocking/date"
	"github.com/google/uuid"
)

// Reserved pseudo-activity ids used by chart rows and the visibility map.
const (
	UntrackedID = "__untracked__"
	FutureID    = "__future__"
)

// Palette is the default color cycle for new activities.
var Palette = []string{
	"#4f46e5", "#22c55e", "#eab308", "#06b6d4", "#f97316",
	"#a855f7", "#10b981", "#ef4444", "#14b8a6", "#0ea5e9",
}

// Theme selects the display palette for meta chart rows.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// metaColors maps the reserved rows to their theme-dependent display colors.
var metaColors = map[string]map[Theme]string{
	UntrackedID: {Light: "#cbd5e1", Dark: "#878b91ff"},
	FutureID:    {Light: "#e2e8f0", Dark: "#aeb3b9ff"},
}

// Activity is a user-defined category time is tracked against. It is owned
// by the Store and referenced everywhere else by its id.
type Activity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds.
	Archived  bool   `json:"archived,omitempty"`
}

// newActivityID generates a fresh opaque activity id.
func newActivityID() string { return "act_" + uuid.NewString() }

// DayBucket maps an activity id to committed whole minutes for one day.
// Entries are strictly positive: a zero total is removed, never stored.
type DayBucket map[string]int

// DailyTotals is the committed ledger: canonical date key to day bucket.
type DailyTotals map[string]DayBucket

// Sum returns the committed minutes of the bucket, treating stray negative
// or fractional values defensively the same way the aggregator does.
func (b DayBucket) Sum() int {
	sum := 0
	for _, m := range b {
		if m > 0 {
			sum += m
		}
	}
	return sum
}

// clone returns a deep copy of the ledger.
func (dt DailyTotals) clone() DailyTotals {
	out := make(DailyTotals, len(dt))
	for day, bucket := range dt {
		c := make(DayBucket, len(bucket))
		for id, m := range bucket {
			c[id] = m
		}
		out[day] = c
	}
	return out
}

// Running is the single open session: an interval from Start to "now" that
// is not reflected in DailyTotals until reconciled.
type Running struct {
	ActivityID string `json:"activityId"`
	Start      int64  `json:"start"` // Unix milliseconds.
}

// VisibilityMap flags chart rows (activity ids plus the reserved pseudo-ids)
// as shown or hidden. A missing entry means shown.
type VisibilityMap map[string]bool

// Visible reports whether the row id should be displayed.
func (v VisibilityMap) Visible(id string) bool {
	shown, ok := v[id]
	return !ok || shown
}

// LangCode is a display language preference.
type LangCode string

const (
	LangEN   LangCode = "en"
	LangPTBR LangCode = "pt-BR"
)

// Settings are pure presentation preferences. They carry no ledger
// invariant beyond being always present with defaults.
type Settings struct {
	UseMMDDYYYY        bool     `json:"useMMDDYYYY"`
	ShowMinutes        bool     `json:"showMinutes"`
	ShowPercentTooltip bool     `json:"showPercentTooltip"`
	Language           LangCode `json:"language"`
}

// DefaultSettings returns the settings applied when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{Language: LangEN}
}

// State is the full durable state of the engine. It is owned by a Store and
// must not be mutated by readers.
type State struct {
	Activities  []Activity    `json:"activities"`
	DailyTotals DailyTotals   `json:"dailyTotals"`
	Running     *Running      `json:"running"`
	LastActID   string        `json:"lastActivityId,omitempty"`
	Visibility  VisibilityMap `json:"visibility"`
	Theme       Theme         `json:"theme"`
	Settings    Settings      `json:"settings"`
	LifeStart   int64         `json:"lifeStart"` // Unix milliseconds, local start of day.
}

// Activity returns the activity with the given id, or nil if unknown.
func (s *State) Activity(id string) *Activity {
	for i := range s.Activities {
		if s.Activities[i].ID == id {
			return &s.Activities[i]
		}
	}
	return nil
}

// HasActiveActivities reports whether at least one non-archived activity
// exists.
func (s *State) HasActiveActivities() bool {
	for _, a := range s.Activities {
		if !a.Archived {
			return true
		}
	}
	return false
}

// emptyState returns the reset/default state at the instant now.
func emptyState(now time.Time) State {
	return State{
		Activities:  []Activity{},
		DailyTotals: DailyTotals{},
		Visibility:  VisibilityMap{},
		Theme:       Light,
		Settings:    DefaultSettings(),
		LifeStart:   date.Of(now).StartOfDay().UnixMilli(),
	}
}

// earliestDataStart returns the life-start default: local midnight of the
// earliest ledger day, else of today.
func earliestDataStart(dt DailyTotals, now time.Time) int64 {
	min := ""
	for day := range dt {
		if min == "" || day < min {
			min = day
		}
	}
	if min == "" {
		return date.Of(now).StartOfDay().UnixMilli()
	}
	d, err := date.Parse(min)
	if err != nil {
		return date.Of(now).StartOfDay().UnixMilli()
	}
	return d.StartOfDay().UnixMilli()
}
