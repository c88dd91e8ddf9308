package pool

import (
	"sync"

	"sympool/internal/symbol"
)

// Locked is a Pool guarded by a read-write mutex. Lookups of already interned
// values only take the read lock.
type Locked[T comparable, I symbol.ID] struct {
	mu sync.RWMutex
	p  *Pool[T, I]
}

var _ symbol.Interner[string, Sym[uint32]] = (*Locked[string, uint32])(nil)

// NewLocked wraps p. The caller must not use p directly afterwards.
func NewLocked[T comparable, I symbol.ID](p *Pool[T, I]) *Locked[T, I] {
	if p == nil {
		p = New[T, I]()
	}
	return &Locked[T, I]{p: p}
}

// Intern is the synchronized form of Pool.Intern.
func (l *Locked[T, I]) Intern(value T) (Sym[I], error) {
	l.mu.RLock()
	sym, ok := l.p.Lookup(value)
	l.mu.RUnlock()
	if ok {
		return sym, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Pool.Intern re-checks the index, so a racing writer is handled there.
	return l.p.Intern(value)
}

// Lookup is the synchronized form of Pool.Lookup.
func (l *Locked[T, I]) Lookup(value T) (Sym[I], bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.p.Lookup(value)
}

// Resolve is the synchronized form of Pool.Resolve.
func (l *Locked[T, I]) Resolve(sym Sym[I]) (T, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.p.Resolve(sym)
}

// Len returns the number of interned values.
func (l *Locked[T, I]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.p.Len()
}

// IsFull reports whether the next new value would overflow.
func (l *Locked[T, I]) IsFull() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.p.IsFull()
}

// Snapshot returns a copy of all values in identifier order.
func (l *Locked[T, I]) Snapshot() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.p.Snapshot()
}
