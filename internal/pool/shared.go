package pool

import "sync"

// Shared returns the process-wide string pool, creating it on first use.
//
// Nothing in this module interns into it implicitly; code that wants symbols
// shared across packages must call Shared explicitly. Symbols from the shared
// pool must never be resolved against another pool.
var Shared = sync.OnceValue(func() *Locked[string, uint32] {
	return NewLocked(NewStrings[uint32](WithCapacity(1024)))
})
