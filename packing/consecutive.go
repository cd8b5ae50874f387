package packing

import "github.com/Elieslns/bit-packing-compression/wordbuf"

// Consecutive layout: fields are packed back to back with no padding, so a
// field may straddle two adjacent words. Density is maximal (every bit of
// every word except the final tail is used) and the bit offset of element i
// is the pure function i*k, which keeps random access O(1); the cross-word
// assembly cost is paid inside wordbuf.Buffer.ReadAt, not by the caller.

// consecutiveOffset returns the bit offset of element i for field width k.
func consecutiveOffset(i int, k uint8) int {
	return i * int(k)
}

// consecutiveBits returns the populated bit length of n fields of width k.
func consecutiveBits(n int, k uint8) int {
	return n * int(k)
}

// writeConsecutive appends every k-bit field to the buffer back to back.
func writeConsecutive(buf *wordbuf.Buffer, fields []uint64, k uint8) {
	for _, f := range fields {
		buf.WriteBits(f, k)
	}
}
