package symbol

import "math/bits"

// ID is the set of unsigned integer types a pool may use as identifiers.
// The width of the chosen type bounds the number of values a pool can hold.
type ID interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// MaxID returns the largest identifier representable by I.
func MaxID[I ID]() I {
	return ^I(0)
}

// Bits returns the bit width of I.
func Bits[I ID]() int {
	return bits.Len64(uint64(MaxID[I]()))
}

// Capacity returns how many distinct identifiers fit into I, saturated at
// math.MaxUint64 for 64-bit identifiers.
func Capacity[I ID]() uint64 {
	maxID := uint64(MaxID[I]())
	if maxID == ^uint64(0) {
		return maxID
	}
	return maxID + 1
}
