package packing

import (
	"fmt"
	"iter"

	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
	"github.com/Elieslns/bit-packing-compression/wordbuf"
)

// PackedArray is the immutable result of compressing an integer array.
//
// It owns its word buffer exclusively; nothing mutates it after
// construction, so any number of goroutines may call Get, Decompress and All
// concurrently on the same instance without synchronization.
//
// The primary store holds one fixed-width field per element, laid out by the
// variant tag (consecutive or non-consecutive). For overflow arrays the
// field is 1 + payloadWidth bits: a flag bit followed by either the
// sign-encoded value (flag 0) or an overflow reference (flag 1), with the
// outlier values themselves kept full-width in the overflow store.
type PackedArray struct {
	buf      *wordbuf.Buffer
	overflow []int64 // outliers in source order; nil for plain arrays

	count    int
	variant  format.VariantType
	signed   bool
	bitWidth uint8 // total field width in the primary store

	// Overflow extension. smallWidth > 0 marks the overflow format;
	// indexWidth 0 selects the compact (flag-only) payload encoding.
	smallWidth uint8
	indexWidth uint8
}

// Parts describes a packed array reassembled from its serialized sections.
type Parts struct {
	Variant    format.VariantType
	Signed     bool
	BitWidth   uint8
	SmallWidth uint8
	IndexWidth uint8
	Count      int
	Buffer     *wordbuf.Buffer
	Overflow   []int64
}

// FromParts reconstructs a PackedArray from its serialized sections,
// validating structural consistency. A buffer shorter than the layout
// requires, a field width outside (0, wordWidth], or overflow metadata that
// contradicts itself is reported as a consistency failure.
func FromParts(p Parts) (*PackedArray, error) {
	if p.Buffer == nil {
		return nil, fmt.Errorf("%w: missing word buffer", errs.ErrCorruptedPayload)
	}

	switch p.Variant {
	case format.VariantConsecutive, format.VariantNonConsecutive:
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidVariant, p.Variant)
	}

	w := p.Buffer.WordWidth()
	if p.Count > 0 && (p.BitWidth == 0 || p.BitWidth > w) {
		return nil, fmt.Errorf("%w: field width %d with word width %d", errs.ErrInvalidBitWidth, p.BitWidth, w)
	}
	if p.Count < 0 {
		return nil, fmt.Errorf("%w: negative element count", errs.ErrCorruptedPayload)
	}

	if p.SmallWidth > 0 {
		payloadWidth := int(p.BitWidth) - 1
		if payloadWidth < int(p.SmallWidth) || payloadWidth < int(p.IndexWidth) {
			return nil, fmt.Errorf("%w: payload width %d below small width %d / index width %d",
				errs.ErrCorruptedPayload, payloadWidth, p.SmallWidth, p.IndexWidth)
		}
	} else if p.IndexWidth > 0 || len(p.Overflow) > 0 {
		return nil, fmt.Errorf("%w: overflow sections without overflow format", errs.ErrCorruptedPayload)
	}

	arr := &PackedArray{
		buf:        p.Buffer,
		overflow:   p.Overflow,
		count:      p.Count,
		variant:    p.Variant,
		signed:     p.Signed,
		bitWidth:   p.BitWidth,
		smallWidth: p.SmallWidth,
		indexWidth: p.IndexWidth,
	}

	if need := arr.requiredBits(); need > p.Buffer.Len() {
		return nil, fmt.Errorf("%w: buffer holds %d bits, layout requires %d",
			errs.ErrCorruptedPayload, p.Buffer.Len(), need)
	}

	return arr, nil
}

// Count returns the number of packed elements.
func (a *PackedArray) Count() int { return a.count }

// Variant returns the primary layout tag.
func (a *PackedArray) Variant() format.VariantType { return a.variant }

// Signed reports whether elements are run through the signed value codec.
func (a *PackedArray) Signed() bool { return a.signed }

// BitWidth returns the total field width in the primary store. For overflow
// arrays this includes the flag bit.
func (a *PackedArray) BitWidth() uint8 { return a.bitWidth }

// WordWidth returns the word width of the underlying buffer.
func (a *PackedArray) WordWidth() uint8 { return a.buf.WordWidth() }

// Buffer exposes the underlying word buffer for serialization. The caller
// must treat it as read-only.
func (a *PackedArray) Buffer() *wordbuf.Buffer { return a.buf }

// HasOverflow reports whether the array uses the overflow format.
func (a *PackedArray) HasOverflow() bool { return a.smallWidth > 0 }

// SmallWidth returns the field width of regular values in an overflow array
// (0 for plain arrays).
func (a *PackedArray) SmallWidth() uint8 { return a.smallWidth }

// IndexWidth returns the width of overflow index payloads; 0 means the
// compact flag-only encoding (or a plain array).
func (a *PackedArray) IndexWidth() uint8 { return a.indexWidth }

// OverflowValues returns the overflow store in source order. The caller must
// treat it as read-only.
func (a *PackedArray) OverflowValues() []int64 { return a.overflow }

// SizeBits returns the populated size of the primary store in bits.
func (a *PackedArray) SizeBits() int { return a.buf.Len() }

// payloadWidth returns the payload bits of an overflow field.
func (a *PackedArray) payloadWidth() uint8 { return a.bitWidth - 1 }

// fieldOffset returns the bit offset of element i in the primary store.
func (a *PackedArray) fieldOffset(i int) int {
	if a.variant == format.VariantNonConsecutive {
		return nonConsecutiveOffset(i, a.bitWidth, a.buf.WordWidth())
	}

	return consecutiveOffset(i, a.bitWidth)
}

// requiredBits returns the populated bit length the layout demands.
func (a *PackedArray) requiredBits() int {
	if a.count == 0 {
		return 0
	}
	if a.variant == format.VariantNonConsecutive {
		return nonConsecutiveBits(a.count, a.bitWidth, a.buf.WordWidth())
	}

	return consecutiveBits(a.count, a.bitWidth)
}

// Get returns the element at index without decompressing the rest of the
// array.
//
// For plain arrays and indexed overflow arrays the access is O(1). For
// compact overflow arrays a flagged element costs an O(n) scan over the
// preceding flag bits to locate its overflow store position.
//
// Returns errs.ErrIndexOutOfRange when index is outside [0, count).
func (a *PackedArray) Get(index int) (int64, error) {
	if index < 0 || index >= a.count {
		return 0, fmt.Errorf("%w: %d outside [0, %d)", errs.ErrIndexOutOfRange, index, a.count)
	}

	field, err := a.buf.ReadAt(a.fieldOffset(index), a.bitWidth)
	if err != nil {
		return 0, err
	}

	if !a.HasOverflow() {
		return a.decodeValue(field, a.bitWidth), nil
	}

	flag := field >> a.payloadWidth()
	payload := field & lowMask(a.payloadWidth())

	if flag == 0 {
		return a.decodeValue(payload&lowMask(a.smallWidth), a.smallWidth), nil
	}

	oi := int(payload)
	if a.indexWidth == 0 {
		// Compact encoding: the payload is a placeholder, so the overflow
		// position is the rank of this flag among all set flags.
		oi, err = a.overflowRank(index)
		if err != nil {
			return 0, err
		}
	}

	return a.overflowAt(oi)
}

// overflowRank counts flagged elements at positions < index; that count is
// the overflow store position of the flagged element at index.
func (a *PackedArray) overflowRank(index int) (int, error) {
	rank := 0
	for j := 0; j < index; j++ {
		flag, err := a.buf.ReadAt(a.fieldOffset(j), 1)
		if err != nil {
			return 0, err
		}
		if flag == 1 {
			rank++
		}
	}

	return rank, nil
}

// overflowAt fetches the overflow store entry, surfacing a reference past
// the store length as a fatal consistency failure: it can only happen when
// the packed data was corrupted or mis-constructed.
func (a *PackedArray) overflowAt(oi int) (int64, error) {
	if oi >= len(a.overflow) {
		return 0, fmt.Errorf("%w: overflow index %d past store length %d",
			errs.ErrCorruptedPayload, oi, len(a.overflow))
	}

	return a.overflow[oi], nil
}

// decodeValue maps a stored field back to its signed value.
func (a *PackedArray) decodeValue(u uint64, k uint8) int64 {
	if a.signed {
		return DecodeSigned(u, k)
	}

	return int64(u)
}

// decodeAt decodes element i during a sequential pass. rank tracks the
// running count of flagged elements so compact overflow lookups stay O(1)
// per element.
func (a *PackedArray) decodeAt(i int, rank *int) (int64, error) {
	field, err := a.buf.ReadAt(a.fieldOffset(i), a.bitWidth)
	if err != nil {
		return 0, err
	}

	if !a.HasOverflow() {
		return a.decodeValue(field, a.bitWidth), nil
	}

	flag := field >> a.payloadWidth()
	payload := field & lowMask(a.payloadWidth())

	if flag == 0 {
		return a.decodeValue(payload&lowMask(a.smallWidth), a.smallWidth), nil
	}

	oi := *rank
	if a.indexWidth > 0 {
		oi = int(payload)
	}
	*rank++

	return a.overflowAt(oi)
}

// Decompress reconstructs the full original array in element order.
//
// The reconstruction is a single sequential pass: an overflow array tracks
// its store position incrementally, so the total cost stays O(n) for both
// payload encodings.
func (a *PackedArray) Decompress() ([]int64, error) {
	out := make([]int64, 0, a.count)
	rank := 0

	for i := 0; i < a.count; i++ {
		v, err := a.decodeAt(i, &rank)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// All returns an iterator over the decompressed elements in order.
//
// The iterator stops early if the packed data turns out to be inconsistent;
// use Decompress when the error matters.
func (a *PackedArray) All() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		rank := 0
		for i := 0; i < a.count; i++ {
			v, err := a.decodeAt(i, &rank)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// lowMask returns a mask of the n low-order bits, valid for n in [0, 64].
func lowMask(n uint8) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << n) - 1
}
