package reservations

import (
	"sort"
	"sync"

	"hotelpremier/internal/app/middleware"
)

// RoomLocks serializes check-then-insert sequences per room. The conflict
// predicate alone cannot prevent two concurrent bookings from both
// passing their check; holding the room's lock from the check through the
// transaction commit closes that race inside this process.
type RoomLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRoomLocks() *RoomLocks {
	return &RoomLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks every room in the set, in sorted order so two commands
// over overlapping room sets cannot deadlock. The returned release
// function unlocks in reverse order.
func (l *RoomLocks) Acquire(keys []string) func() {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	var last string
	for i, key := range sorted {
		if i > 0 && key == last {
			continue
		}
		last = key
		mu := l.lockFor(key)
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (l *RoomLocks) lockFor(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	mu, ok := l.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		l.locks[key] = mu
	}
	return mu
}

var _ middleware.KeyedLocker = (*RoomLocks)(nil)
