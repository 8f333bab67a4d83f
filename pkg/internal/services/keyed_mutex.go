package services

import "sync"

// keyedMutex hands out one mutex per key so two independent entities never
// block each other. Entries are reference counted and dropped once the last
// holder releases, keeping the map from growing with the key space.
type keyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedMutexEntry
}

type keyedMutexEntry struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{entries: make(map[string]*keyedMutexEntry)}
}

// Lock blocks until the key is held and returns the release function.
func (m *keyedMutex) Lock(key string) func() {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &keyedMutexEntry{}
		m.entries[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.Lock()
	return func() {
		entry.Unlock()
		m.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(m.entries, key)
		}
		m.mu.Unlock()
	}
}
