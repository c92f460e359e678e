package klocking

import (
	"context"
	"testing"
	"time"
)

func guardedStore(t *testing.T, fs *FileStore) (*Store, *Guard) {
	t.Helper()
	s := Open(fs)
	s.SetClock(func() time.Time { return at(2025, 3, 15, 10, 0) })
	g, err := NewGuard(s, fs)
	if err != nil {
		t.Fatal(err)
	}
	return s, g
}

func TestGuardHaltsOnForeignCommit(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s1, g := guardedStore(t, fs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- g.Run(ctx) }()

	// A second store on the same directory plays the other process.
	s2 := Open(fs)
	s2.SetClock(func() time.Time { return at(2025, 3, 15, 10, 0) })
	s2.CreateActivity("Work", "#111")

	select {
	case <-g.Halted():
	case <-time.After(5 * time.Second):
		t.Fatal("guard did not halt on foreign commit")
	}
	if !s1.Halted() {
		t.Error("store must be halted")
	}
	if err := <-done; err != nil {
		t.Errorf("Run returned %v after halting, want nil", err)
	}

	// The halted store no longer writes, so the winner's ledger survives.
	before := fs.Commit()
	s1.CreateActivity("Stray", "#222")
	if got := fs.Commit(); got != before {
		t.Errorf("counter moved from %d to %d after halt", before, got)
	}
}

func TestGuardIgnoresOwnCommits(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, g := guardedStore(t, fs)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go g.Run(ctx)

	s.CreateActivity("Work", "#111")
	s.SetDayTotal("2025-03-10", s.State().Activities[0].ID, 30)

	select {
	case <-g.Halted():
		t.Fatal("guard halted on the store's own commits")
	case <-time.After(300 * time.Millisecond):
	}
	if s.Halted() {
		t.Error("store must not be halted")
	}
}

func TestGuardHaltsOnMissedCommit(t *testing.T) {
	// A commit that landed before Run starts is caught by the initial check.
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, g := guardedStore(t, fs)

	if _, err := fs.BumpCommit(); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatalf("Run = %v, want nil", err)
	}
	select {
	case <-g.Halted():
	default:
		t.Error("halted channel must be closed")
	}
	if !s.Halted() {
		t.Error("store must be halted")
	}
}
