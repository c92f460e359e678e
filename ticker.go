package klocking

import (
	"context"
	"time"

	"github.com/etnz/klocking/date"
)

// NeedsTick reports whether a live view of the range must recompute every
// second: only while a session is running or the displayed range touches the
// current instant. Purely historical ranges never tick.
func NeedsTick(s *State, r date.Range, now time.Time) bool {
	return s.Running != nil || r.ContainsInstant(now)
}

// RunLive invokes fn once immediately and then once per second for as long
// as the view needs ticking, until the context is canceled. Ticking only
// drives re-aggregation; it never touches persisted data.
func RunLive(ctx context.Context, store *Store, r date.Range, fn func(now time.Time)) {
	fn(store.Now())
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := store.Now()
			if !NeedsTick(store.State(), r, now) {
				continue
			}
			fn(now)
		}
	}
}
