package klocking

import (
	"time"

	"github.com/etnz/klocking/date"
)

// reconcileRunning converts the open running session into committed
// day-bucket minutes, walking from the session start to now one calendar
// day at a time and splitting at each midnight. Each chunk is converted to
// whole minutes by truncating division; sub-minute remainders are dropped
// on every split and on the final chunk.
//
// This is the only place committed minutes are created from a session. The
// caller owns the transition and must clear or replace the session
// afterwards; reconciling the same interval twice would double-count it.
func (s *Store) reconcileRunning() {
	run := s.state.Running
	if run == nil {
		return
	}
	now := s.now()
	cursor := time.UnixMilli(run.Start)
	for cursor.Before(now) {
		chunkEnd := date.Of(cursor).EndOfDay()
		if now.Before(chunkEnd) {
			chunkEnd = now
		}
		if mins := int(chunkEnd.Sub(cursor) / time.Minute); mins > 0 {
			day := date.Of(cursor).String()
			current := 0
			if bucket, ok := s.state.DailyTotals[day]; ok {
				current = bucket[run.ActivityID]
			}
			s.setBucket(day, run.ActivityID, current+mins)
		}
		cursor = chunkEnd
	}
	s.state.LastActID = run.ActivityID
}
