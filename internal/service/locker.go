package service

import "sync"

// CommunityLocker serializes mutating operations per community. All
// membership, registry and pin mutations take this lock before their
// guard checks so two concurrent transitions cannot both pass a guard
// that only one of them should.
type CommunityLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewCommunityLocker() *CommunityLocker {
	return &CommunityLocker{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for the community and returns its unlock
// function. Locks are never removed from the map; the set of active
// communities is small relative to process lifetime.
func (l *CommunityLocker) Lock(communityID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[communityID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[communityID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
