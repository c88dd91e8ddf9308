package pool

// Option configures a pool at construction time.
type Option func(*config)

type config struct {
	capHint int
	limit   uint64
}

// WithCapacity preallocates storage for n values.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capHint = n
		}
	}
}

// WithLimit caps the number of identifiers the pool hands out below what the
// identifier width allows. Zero means no extra cap.
func WithLimit(n uint64) Option {
	return func(c *config) {
		c.limit = n
	}
}
