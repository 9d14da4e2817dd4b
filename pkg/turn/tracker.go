// Package turn holds the shared turn state for a two-peer coordination
// session. Exactly one identity holds the turn at any instant; only the
// holder may advance it, and advancing always flips to the other identity.
package turn

import (
	"errors"
	"sync"
)

var ErrNotHolder = errors.New("turn: advance by non-holder")

type Tracker struct {
	mu      sync.Mutex
	current int
	changed chan struct{}
}

// New starts the session with identity first holding the turn.
func New(first int) *Tracker {
	return &Tracker{current: first, changed: make(chan struct{})}
}

func (t *Tracker) Current() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Holds reports whether id currently owns the turn. Because the turn is
// only ever mutated by its holder, a true result cannot go stale under the
// caller's feet until the caller itself advances.
func (t *Tracker) Holds(id int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current == id
}

// Changed returns a channel that is closed on the next transition. Callers
// must re-fetch it after every wakeup.
func (t *Tracker) Changed() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

// Advance flips the turn to the other identity. Only the holder may call
// it; anything else is a programming error surfaced as ErrNotHolder.
func (t *Tracker) Advance(id int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != id {
		return ErrNotHolder
	}
	t.current = Other(id)
	close(t.changed)
	t.changed = make(chan struct{})
	return nil
}

// Other maps between the two peer identities.
func Other(id int) int {
	if id == 1 {
		return 2
	}
	return 1
}
