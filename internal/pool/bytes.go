package pool

import "sympool/internal/symbol"

// InternBytes interns the string form of b into a string pool.
// The bytes are copied, so b may be reused by the caller afterwards.
func InternBytes[I symbol.ID](p *Pool[string, I], b []byte) (Sym[I], error) {
	return p.Intern(string(b))
}
