package klocking

import (
	"context"
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Guard watches the shared commit counter and halts the local store the
// moment another process commits. The policy is last writer continues, all
// others must reload: a halted store stops persisting and the transition is
// one-way, so two processes can never write divergent ledgers.
type Guard struct {
	store   *Store
	storage *FileStore
	watcher *fsnotify.Watcher
	halted  chan struct{}
}

// NewGuard attaches a guard to the store over its file storage. Call Run to
// start observing.
func NewGuard(store *Store, storage *FileStore) (*Guard, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating commit watcher: %w", err)
	}
	// The counter file is replaced on every bump, so the directory is
	// watched rather than the file itself.
	if err := watcher.Add(storage.Dir()); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %q: %w", storage.Dir(), err)
	}
	return &Guard{
		store:   store,
		storage: storage,
		watcher: watcher,
		halted:  make(chan struct{}),
	}, nil
}

// Halted is closed once the guard has halted the store.
func (g *Guard) Halted() <-chan struct{} { return g.halted }

// Run observes the commit counter until the context is canceled or a
// foreign commit halts the store. It blocks; run it in its own goroutine.
func (g *Guard) Run(ctx context.Context) error {
	defer g.watcher.Close()

	// A commit may have landed between the store's load and the watch start.
	if g.check() {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-g.watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != g.storage.CommitPath() {
				continue
			}
			if g.check() {
				return nil
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("warning: commit watcher: %v", err)
		}
	}
}

// check compares the shared counter with the store's own last write and
// halts on a foreign commit. Reports whether the store is now halted.
func (g *Guard) check() bool {
	if g.storage.Commit() > g.store.LastCommit() {
		g.store.Halt()
		close(g.halted)
		return true
	}
	return false
}
