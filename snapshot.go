package klocking

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/klocking/date"
)

// ErrInvalidSnapshot rejects an import whose minimal shape is wrong:
// activities must be a sequence and dailyTotals a mapping. Every other field
// is defaulted leniently.
var ErrInvalidSnapshot = errors.New("invalid snapshot: want an activities sequence and a dailyTotals mapping")

// encodeState marshals the persisted-state record, pretty-printed. Date keys
// come out in ascending order (encoding/json sorts map keys), which is the
// canonical form of the ledger.
func encodeState(s *State) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ExportFileName returns the download name for an export taken at the local
// instant now.
func ExportFileName(now time.Time) string {
	return fmt.Sprintf("klocking-%s.json", date.Of(now))
}

// rawSnapshot splits the persisted record into independently decodable
// fields so that one malformed field never poisons the others.
type rawSnapshot struct {
	Activities  json.RawMessage `json:"activities"`
	DailyTotals json.RawMessage `json:"dailyTotals"`
	Running     json.RawMessage `json:"running"`
	LastActID   json.RawMessage `json:"lastActivityId"`
	Visibility  json.RawMessage `json:"visibility"`
	Theme       json.RawMessage `json:"theme"`
	Settings    json.RawMessage `json:"settings"`
	LifeStart   json.RawMessage `json:"lifeStart"`
}

// decodeTotals reads a dailyTotals mapping leniently: values are floored to
// whole minutes and non-positive entries are dropped, never stored as zero.
func decodeTotals(raw json.RawMessage) (DailyTotals, error) {
	var loose map[string]map[string]float64
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, err
	}
	if loose == nil {
		return nil, errors.New("dailyTotals is not a mapping")
	}
	dt := make(DailyTotals, len(loose))
	for day, bucket := range loose {
		b := DayBucket{}
		for id, m := range bucket {
			if v := int(m); v > 0 {
				b[id] = v
			}
		}
		dt[day] = b
	}
	return dt, nil
}

// decodeState assembles a State from the raw fields, defaulting each field
// individually. activities and dailyTotals must already be decoded by the
// caller, which owns the strictness policy for them.
func decodeState(raw rawSnapshot, activities []Activity, totals DailyTotals, now time.Time) State {
	s := emptyState(now)
	s.Activities = activities
	s.DailyTotals = totals

	var run *Running
	if json.Unmarshal(raw.Running, &run) == nil && run != nil && run.ActivityID != "" {
		s.Running = run
	}

	var last string
	if json.Unmarshal(raw.LastActID, &last) == nil && last != "" {
		// Accepted only when it names a present, non-archived activity.
		for _, a := range activities {
			if a.ID == last && !a.Archived {
				s.LastActID = last
				break
			}
		}
	}

	var vis VisibilityMap
	if json.Unmarshal(raw.Visibility, &vis) == nil && vis != nil {
		s.Visibility = vis
	}

	var theme string
	if json.Unmarshal(raw.Theme, &theme) == nil && theme == string(Dark) {
		s.Theme = Dark
	}

	var settings Settings
	if raw.Settings != nil && json.Unmarshal(raw.Settings, &settings) == nil {
		if settings.Language != LangPTBR {
			settings.Language = LangEN
		}
		s.Settings = settings
	}

	var lifeStart int64
	if raw.LifeStart != nil && json.Unmarshal(raw.LifeStart, &lifeStart) == nil {
		s.LifeStart = lifeStart
	} else {
		s.LifeStart = earliestDataStart(totals, now)
	}
	return s
}

// loadState decodes the durable record leniently. A load is never fatal:
// missing or malformed input, or any malformed field, falls back to its
// default.
func loadState(storage Storage, now time.Time) State {
	if storage == nil {
		return emptyState(now)
	}
	blob, err := storage.ReadState()
	if err != nil || len(blob) == 0 {
		return emptyState(now)
	}
	var raw rawSnapshot
	if err := json.Unmarshal(blob, &raw); err != nil {
		return emptyState(now)
	}

	activities := []Activity{}
	if raw.Activities != nil {
		if err := json.Unmarshal(raw.Activities, &activities); err != nil || activities == nil {
			activities = []Activity{}
		}
	}
	totals := DailyTotals{}
	if raw.DailyTotals != nil {
		if dt, err := decodeTotals(raw.DailyTotals); err == nil {
			totals = dt
		}
	}
	return decodeState(raw, activities, totals, now)
}

// Snapshot returns a deep copy of the full durable state, suitable for
// export or for feeding back into ImportSnapshot.
func (s *Store) Snapshot() State {
	snap := s.state
	snap.Activities = append([]Activity(nil), s.state.Activities...)
	snap.DailyTotals = s.state.DailyTotals.clone()
	if s.state.Running != nil {
		run := *s.state.Running
		snap.Running = &run
	}
	snap.Visibility = make(VisibilityMap, len(s.state.Visibility))
	for id, v := range s.state.Visibility {
		snap.Visibility[id] = v
	}
	return snap
}

// Export serializes the snapshot as the pretty-printed persisted record.
func (s *Store) Export() ([]byte, error) {
	snap := s.Snapshot()
	return encodeState(&snap)
}

// ImportSnapshot replaces the whole state with the given record. The import
// is accepted only when activities is a sequence and dailyTotals a mapping
// (ErrInvalidSnapshot otherwise, prior state untouched); all other fields
// are defaulted leniently, like a load.
func (s *Store) ImportSnapshot(data []byte) error {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}
	if raw.Activities == nil || raw.DailyTotals == nil {
		return ErrInvalidSnapshot
	}
	var activities []Activity
	if err := json.Unmarshal(raw.Activities, &activities); err != nil || string(raw.Activities) == "null" {
		return ErrInvalidSnapshot
	}
	if activities == nil {
		activities = []Activity{}
	}
	totals, err := decodeTotals(raw.DailyTotals)
	if err != nil {
		return ErrInvalidSnapshot
	}

	s.state = decodeState(raw, activities, totals, s.now())
	s.persist()
	return nil
}
