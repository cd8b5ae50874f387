package packing

import "github.com/Elieslns/bit-packing-compression/wordbuf"

// Non-consecutive layout: a field never crosses a word boundary. When the
// current word cannot hold another full k-bit field, the cursor jumps to the
// next word and the trailing bits stay zero. This wastes up to k-1 bits of
// padding per word in the worst case, in exchange for single-word reads with
// no cross-word assembly. Element i lives in word i/elementsPerWord at local
// bit offset (i mod elementsPerWord) * k, so random access stays O(1).

// elementsPerWord returns how many k-bit fields fit in one word of width w.
func elementsPerWord(k, w uint8) int {
	return int(w) / int(k)
}

// nonConsecutiveOffset returns the bit offset of element i for field width k
// in a buffer of word width w.
func nonConsecutiveOffset(i int, k, w uint8) int {
	epw := elementsPerWord(k, w)

	return (i/epw)*int(w) + (i%epw)*int(k)
}

// nonConsecutiveBits returns the populated bit length of n fields of width k
// in a buffer of word width w: full words plus the used part of the last.
func nonConsecutiveBits(n int, k, w uint8) int {
	if n == 0 {
		return 0
	}

	return nonConsecutiveOffset(n-1, k, w) + int(k)
}

// writeNonConsecutive appends every k-bit field, padding to the next word
// boundary whenever the current word cannot hold another full field.
func writeNonConsecutive(buf *wordbuf.Buffer, fields []uint64, k uint8) {
	w := int(buf.WordWidth())
	for _, f := range fields {
		if w-buf.Len()%w < int(k) {
			buf.PadToWordBoundary()
		}
		buf.WriteBits(f, k)
	}
}
