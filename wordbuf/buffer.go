// Package wordbuf implements the bit-addressed word buffer underlying every
// packed array.
//
// A Buffer is a growable sequence of fixed-width unsigned words with two
// primitives: WriteBits, which appends a bit field at the write cursor and
// transparently allocates words as the cursor crosses word boundaries, and
// ReadAt, which extracts a bit field at an arbitrary bit offset without
// mutating the buffer, assembling fields that span two adjacent words.
//
// # Bit order
//
// Bits are addressed most-significant-bit first: bit offset 0 of a word is
// its highest bit. When a field straddles two words, its most significant
// chunk lands in the tail of the first word and the remainder in the head of
// the next. This order is fixed and load-bearing for the wire layout; both
// primitives apply it consistently.
//
// # Concurrency
//
// WriteBits is the only mutator. Once writing is complete the buffer is
// effectively immutable and any number of goroutines may call ReadAt
// concurrently without synchronization.
package wordbuf

import (
	"fmt"

	"github.com/Elieslns/bit-packing-compression/errs"
)

// DefaultWordWidth is the word width used when callers do not choose one.
const DefaultWordWidth = 64

// Buffer is a mutable sequence of fixed-width unsigned words with a
// bit-granular write cursor.
//
// Each word occupies the low WordWidth bits of a uint64 slot; for widths
// below 64 the upper bits of a slot are always zero. The write cursor never
// exceeds len(words) * WordWidth.
type Buffer struct {
	words  []uint64
	bitLen int   // populated length in bits (write cursor)
	width  uint8 // word width in bits, fixed for the buffer's lifetime
}

// New creates an empty Buffer with the given word width.
//
// Supported word widths are 8, 16, 32 and 64 bits; anything else returns
// errs.ErrInvalidWordWidth.
func New(wordWidth uint8) (*Buffer, error) {
	if err := ValidateWordWidth(wordWidth); err != nil {
		return nil, err
	}

	return &Buffer{width: wordWidth}, nil
}

// FromWords reconstructs a Buffer from previously serialized words.
//
// bitLen is the populated length in bits recorded at serialization time; it
// must fit within len(words) * wordWidth or errs.ErrCorruptedPayload is
// returned. The buffer takes ownership of the words slice.
func FromWords(words []uint64, wordWidth uint8, bitLen int) (*Buffer, error) {
	if err := ValidateWordWidth(wordWidth); err != nil {
		return nil, err
	}
	if bitLen < 0 || bitLen > len(words)*int(wordWidth) {
		return nil, fmt.Errorf("%w: bit length %d exceeds %d words of %d bits",
			errs.ErrCorruptedPayload, bitLen, len(words), wordWidth)
	}

	return &Buffer{words: words, width: wordWidth, bitLen: bitLen}, nil
}

// ValidateWordWidth reports whether w is a supported word width.
func ValidateWordWidth(w uint8) error {
	switch w {
	case 8, 16, 32, 64:
		return nil
	default:
		return fmt.Errorf("%w: %d (must be 8, 16, 32 or 64)", errs.ErrInvalidWordWidth, w)
	}
}

// WordWidth returns the fixed word width in bits.
func (b *Buffer) WordWidth() uint8 {
	return b.width
}

// Len returns the populated length of the buffer in bits.
func (b *Buffer) Len() int {
	return b.bitLen
}

// WordCount returns the number of allocated words.
func (b *Buffer) WordCount() int {
	return len(b.words)
}

// Words returns the underlying word slice.
//
// The caller must not modify the returned slice; it backs concurrent
// readers once the buffer is handed off inside a packed array.
func (b *Buffer) Words() []uint64 {
	return b.words
}

// WriteBits appends the width low-order bits of value at the write cursor,
// most significant bit first, and advances the cursor by width.
//
// A new word is allocated transparently whenever the cursor crosses a word
// boundary, so a field may end up split across two adjacent words.
//
// WriteBits is the only mutator of a Buffer. Calling it with width 0 or
// width greater than the word width is a programming error in the packers
// and panics.
func (b *Buffer) WriteBits(value uint64, width uint8) {
	if width == 0 || width > b.width {
		panic(fmt.Sprintf("wordbuf: WriteBits width %d outside (0, %d]", width, b.width))
	}

	value &= lowMask(width)

	w := int(b.width)
	remaining := int(width)
	for remaining > 0 {
		bitPos := b.bitLen % w
		if b.bitLen == len(b.words)*w {
			b.words = append(b.words, 0)
		}

		avail := w - bitPos
		take := remaining
		if take > avail {
			take = avail
		}

		// Most significant chunk of the remaining bits, placed at the
		// cursor's position within the current word.
		chunk := (value >> uint(remaining-take)) & lowMask(uint8(take))
		b.words[b.bitLen/w] |= chunk << uint(avail-take)

		b.bitLen += take
		remaining -= take
	}
}

// PadToWordBoundary advances the write cursor to the next word boundary,
// leaving the skipped trailing bits zero. It is a no-op when the cursor is
// already aligned. Used by the non-consecutive layout to keep fields from
// spanning words.
func (b *Buffer) PadToWordBoundary() {
	w := int(b.width)
	if rem := b.bitLen % w; rem != 0 {
		b.bitLen += w - rem
	}
}

// ReadAt returns the width-bit field starting at bitOffset.
//
// The read is side-effect free: it never moves the write cursor and never
// allocates. A field spanning two words is assembled by extracting the tail
// of the first word and the head of the next and combining them. Reads past
// the populated length return errs.ErrOutOfBounds; width outside
// (0, WordWidth] returns errs.ErrInvalidBitWidth.
func (b *Buffer) ReadAt(bitOffset int, width uint8) (uint64, error) {
	if width == 0 || width > b.width {
		return 0, fmt.Errorf("%w: read width %d outside (0, %d]", errs.ErrInvalidBitWidth, width, b.width)
	}
	if bitOffset < 0 || bitOffset+int(width) > b.bitLen {
		return 0, fmt.Errorf("%w: [%d, %d) outside populated length %d",
			errs.ErrOutOfBounds, bitOffset, bitOffset+int(width), b.bitLen)
	}

	w := int(b.width)
	wordIdx := bitOffset / w
	bitPos := bitOffset % w
	avail := w - bitPos

	if int(width) <= avail {
		// Field lives entirely in one word.
		return (b.words[wordIdx] >> uint(avail-int(width))) & lowMask(width), nil
	}

	// Field straddles the boundary: tail of this word holds the high bits,
	// head of the next word holds the rest.
	rest := int(width) - avail
	hi := b.words[wordIdx] & lowMask(uint8(avail))
	lo := b.words[wordIdx+1] >> uint(w-rest)

	return hi<<uint(rest) | lo, nil
}

// lowMask returns a mask of the n low-order bits, valid for n in [0, 64].
func lowMask(n uint8) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}
