package utils

import "sync"

// KeyLock hands out one mutex per string key, so check-then-act sequences
// (duplicate-period check before insert, slot-overlap check before insert) can
// be serialized per invariant key instead of globally.
//
// Entries are never evicted. Keys here are building-period and service-date
// combinations actually touched, a few bytes each, so the map stays small for
// the lifetime of the process. Revisit with an eviction pass if a caller ever
// feeds it unbounded key material.
type KeyLock struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyLock) get(key string) *sync.Mutex {
	k.mu.RLock()
	m, ok := k.locks[key]
	k.mu.RUnlock()
	if ok {
		return m
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	// Double-check after acquiring write lock
	if m, ok = k.locks[key]; ok {
		return m
	}
	m = &sync.Mutex{}
	k.locks[key] = m
	return m
}

func (k *KeyLock) Lock(key string) {
	k.get(key).Lock()
}

func (k *KeyLock) Unlock(key string) {
	k.get(key).Unlock()
}
