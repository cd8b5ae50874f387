package packing

import (
	"fmt"
	"math"

	"github.com/Elieslns/bit-packing-compression/errs"
)

// The signed value codec maps signed integers into the unsigned packed
// representation using an additive offset for negative values.
//
// For a field width k the representable range is [-(2^(k-1)-1), 2^(k-1)-1]:
//
//	v >= 0  stored as v
//	v <  0  stored as 2^(k-1) + |v|
//
// The range is deliberately one value short of two's-complement symmetry;
// widening it would change the wire format, so the asymmetry is preserved.
// The mapping is a bijection on the representable range and composes with
// every packer: it is applied per scalar before packing and after unpacking,
// never altering the layout itself.

// EncodeSigned maps a signed value into its unsigned offset representation
// for a k-bit field.
//
// Returns errs.ErrValueOutOfRange when v falls outside
// [-(2^(k-1)-1), 2^(k-1)-1]; callers must route such values to an overflow
// store or choose a larger width. Width outside (0, 64] returns
// errs.ErrInvalidBitWidth.
func EncodeSigned(v int64, k uint8) (uint64, error) {
	if k == 0 || k > 64 {
		return 0, fmt.Errorf("%w: signed encode width %d", errs.ErrInvalidBitWidth, k)
	}

	threshold := uint64(1) << (k - 1)
	maxMag := threshold - 1

	if v >= 0 {
		if uint64(v) > maxMag {
			return 0, fmt.Errorf("%w: %d exceeds %d-bit signed maximum %d", errs.ErrValueOutOfRange, v, k, maxMag)
		}

		return uint64(v), nil
	}

	if v == math.MinInt64 || uint64(-v) > maxMag {
		return 0, fmt.Errorf("%w: %d below %d-bit signed minimum -%d", errs.ErrValueOutOfRange, v, k, maxMag)
	}

	return threshold + uint64(-v), nil
}

// DecodeSigned inverts EncodeSigned for a k-bit field.
//
// Stored values above 2^(k-1)-1 decode to -(stored - 2^(k-1)); everything
// else decodes to itself. The input must come from a k-bit field, so no
// range check is needed beyond the width.
func DecodeSigned(u uint64, k uint8) int64 {
	threshold := uint64(1) << (k - 1)

	if u > threshold-1 {
		return -int64(u - threshold)
	}

	return int64(u)
}
