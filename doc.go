// Package klocking implements the activity ledger and live session engine
// behind the klk time tracker.
//
// The Store owns the durable state: activities, the day-bucketed minutes
// ledger, the single running session, display preferences, and the
// life-start marker. Every mutation goes through the Store and is persisted
// to a Storage after it settles. Aggregation over a date range (committed
// minutes plus the not-yet-committed running overlay, untracked and future
// remainders) is a pure read computed on demand.
//
// The central accounting invariant: for any day, the sum of committed
// entries plus the running-session overlay never exceeds the minutes
// elapsed in that day. Day edits are adjudicated by the DayEditor, which
// clamps rather than rejects, and the reconciler converts a running session
// into committed minutes exactly once per transition, splitting at
// midnight boundaries.
//
// Concurrent processes never merge: the Guard observes the shared commit
// counter and halts every store but the last writer.
package klocking
