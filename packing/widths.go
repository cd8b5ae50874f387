package packing

import (
	"math"
	"math/bits"
	"sort"
)

// magnitude returns |v| as a uint64, correct for math.MinInt64.
func magnitude(v int64) uint64 {
	if v < 0 {
		if v == math.MinInt64 {
			return 1 << 63
		}

		return uint64(-v)
	}

	return uint64(v)
}

// neededBits returns the minimum field width able to hold v.
//
// Unsigned: k such that v < 2^k. Signed (offset encoding): one extra bit, so
// that |v| <= 2^(k-1)-1. A zero value needs one bit either way.
func neededBits(v int64, signed bool) int {
	m := magnitude(v)
	if m == 0 {
		return 1
	}

	n := bits.Len64(m)
	if signed {
		n++
	}

	return n
}

// autoBitWidth computes the automatic field width for a value set:
// ceil(log2(max|v| + 1)) plus one sign bit when negatives are encoded.
// An empty or all-zero set yields width 1.
func autoBitWidth(values []int64, signed bool) int {
	var maxAbs uint64
	for _, v := range values {
		if m := magnitude(v); m > maxAbs {
			maxAbs = m
		}
	}

	if maxAbs == 0 {
		return 1
	}

	w := bits.Len64(maxAbs)
	if signed {
		w++
	}

	return w
}

// hasNegative reports whether any value is negative. Used to auto-detect the
// signed codec when the caller does not force it either way.
func hasNegative(values []int64) bool {
	for _, v := range values {
		if v < 0 {
			return true
		}
	}

	return false
}

// classification is the outcome of splitting a value set into regular values
// and overflow outliers.
type classification struct {
	isOverflow []bool  // per input index
	overflow   []int64 // outliers in input order
	smallWidth uint8   // field width for the regular values
}

// classifyByWidth routes every value needing more than smallWidth bits to
// the overflow store.
func classifyByWidth(values []int64, smallWidth uint8, signed bool) classification {
	c := classification{
		isOverflow: make([]bool, len(values)),
		smallWidth: smallWidth,
	}

	for i, v := range values {
		if neededBits(v, signed) > int(smallWidth) {
			c.isOverflow[i] = true
			c.overflow = append(c.overflow, v)
		}
	}

	return c
}

// classifyAuto splits values by the median width heuristic: values whose
// magnitude needs more than median + gap bits (gap of at least 3) become
// overflow outliers. When the split saves no space and would route more than
// 30% of the values to the overflow store, everything stays regular.
func classifyAuto(values []int64, signed bool) classification {
	if len(values) == 0 {
		return classification{smallWidth: 1}
	}

	widths := make([]int, len(values))
	maxWidth := 1
	for i, v := range values {
		m := magnitude(v)
		if m == 0 {
			widths[i] = 1
		} else {
			widths[i] = bits.Len64(m)
		}
		if widths[i] > maxWidth {
			maxWidth = widths[i]
		}
	}

	sorted := make([]int, len(widths))
	copy(sorted, widths)
	sort.Ints(sorted)
	median := sorted[len(sorted)/2]

	gap := median / 2
	if gap < 3 {
		gap = 3
	}
	cutoff := median + gap

	c := classification{isOverflow: make([]bool, len(values))}
	var regular []int64
	for i, v := range values {
		if widths[i] > cutoff {
			c.isOverflow[i] = true
			c.overflow = append(c.overflow, v)
		} else {
			regular = append(regular, v)
		}
	}

	if len(c.overflow) > 0 {
		regularWidth := autoBitWidth(regular, signed)
		withoutOverflow := maxWidth * len(values)
		withOverflow := (regularWidth+1)*len(values) + len(c.overflow)*64
		ratio := float64(len(c.overflow)) / float64(len(values))

		// Not worth it: the overflow store costs more than it saves and
		// too many values are outliers.
		if withOverflow > withoutOverflow && ratio > 0.3 {
			return classification{
				isOverflow: make([]bool, len(values)),
				smallWidth: uint8(autoBitWidth(values, signed)),
			}
		}
	}

	c.smallWidth = uint8(autoBitWidth(regular, signed))

	return c
}

// neededBitsForMagnitude returns the field width able to hold any value with
// magnitude up to m (plus a sign bit when the signed codec is in play).
func neededBitsForMagnitude(m uint64, signed bool) int {
	if m == 0 {
		return 1
	}

	n := bits.Len64(m)
	if signed {
		n++
	}

	return n
}

// overflowIndexWidth returns the field width needed to address n overflow
// entries, with a minimum of one bit.
func overflowIndexWidth(n int) uint8 {
	if n <= 1 {
		return 1
	}

	return uint8(bits.Len64(uint64(n - 1)))
}
