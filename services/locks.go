package services

import "sync"

// lockRegistry hands out one mutex per key so check-then-act sequences
// against the same resource serialize. Lock order across registries is
// always stylist-day before wallet.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*sync.Mutex)}
}

func (r *lockRegistry) get(key string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[key]
	if !ok {
		l = &sync.Mutex{}
		r.locks[key] = l
	}
	return l
}

// Serializes reservation creation per (stylist, date).
var stylistDayLocks = newLockRegistry()

// Serializes balance mutations per wallet.
var walletLocks = newLockRegistry()
