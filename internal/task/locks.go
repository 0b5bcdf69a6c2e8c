package task

import (
	"sync"

	"github.com/google/uuid"
)

// keyedMutex hands out one mutex per task ID. Entries are reference counted
// and dropped when the last holder unlocks, so the map only grows with the
// number of tasks being operated on concurrently.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uuid.UUID]*refMutex)}
}

// Lock blocks until the lock for id is held and returns the function that
// releases it.
func (k *keyedMutex) Lock(id uuid.UUID) (unlock func()) {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &refMutex{}
		k.locks[id] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()

	return func() {
		m.Unlock()

		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

// size returns the number of IDs currently locked or waited on.
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
