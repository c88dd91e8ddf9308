package pool

import (
	"fmt"

	"sympool/internal/symbol"
)

// Sym is a handle produced by a Pool. It is a plain identifier: cheap to copy,
// comparable with ==, and meaningful only for the pool that created it.
// Symbols carry no pool identity. Resolving one against another pool gives
// ErrNotFound when the id is out of range and an unrelated value otherwise.
type Sym[I symbol.ID] struct {
	id I
}

// MakeSym wraps a raw identifier. Used by strategies that nest a Pool and by
// callers that persist identifiers on their own.
func MakeSym[I symbol.ID](id I) Sym[I] {
	return Sym[I]{id: id}
}

// ID returns the raw identifier.
func (s Sym[I]) ID() I { return s.id }

func (s Sym[I]) String() string {
	return fmt.Sprintf("#%d", uint64(s.id))
}
