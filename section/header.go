package section

import (
	"fmt"

	"github.com/Elieslns/bit-packing-compression/errs"
)

// Header represents the fixed-size header section at the start of a
// serialized packed array.
type Header struct {
	// Count is the number of packed elements (n).
	Count uint32 // byte offset 4-7
	// WordCount is the number of serialized words in the word payload.
	WordCount uint32 // byte offset 12-15
	// OverflowCount is the number of entries in the overflow payload.
	OverflowCount uint32 // byte offset 16-19
	// BitLen is the populated length of the word buffer in bits.
	BitLen uint32 // byte offset 20-23
	// WordPayloadOffset is the byte offset where the word payload starts.
	WordPayloadOffset uint32 // byte offset 24-27
	// OverflowPayloadOffset is the byte offset where the overflow payload
	// starts. It records the offset after the (possibly compressed) word
	// payload; equal to the blob length when there is no overflow payload.
	OverflowPayloadOffset uint32 // byte offset 28-31
	// Checksum is the xxHash64 of the payload bytes exactly as stored
	// (after compression, word payload then overflow payload).
	Checksum uint64 // byte offset 32-39

	// BitWidth is the total primary field width k.
	BitWidth uint8 // byte offset 8
	// WordWidth is the word width W of the packed buffer.
	WordWidth uint8 // byte offset 9
	// SmallWidth is the overflow small width; 0 marks a plain array.
	SmallWidth uint8 // byte offset 10
	// IndexWidth is the overflow index payload width; 0 marks the compact
	// flag-only encoding (or a plain array).
	IndexWidth uint8 // byte offset 11

	// Flag is the packed field for options, variant, compression and the
	// magic number.
	Flag Flag // byte offset 0-3
}

// NewHeader creates a Header with default flags. Counts, widths, offsets and
// the checksum are filled in by the blob encoder when it finishes.
func NewHeader() *Header {
	return &Header{
		Flag:              NewFlag(),
		WordPayloadOffset: HeaderSize,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not HeaderSize bytes, or
//     flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	// Parse options first to determine endianness (the Options field itself
	// is always little-endian).
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Variant = data[VariantOffset]
	h.Flag.Compression = data[CompressionOffset]

	engine := h.Flag.GetEndianEngine()

	h.Count = engine.Uint32(data[CountOffset : CountOffset+4])
	h.BitWidth = data[BitWidthOffset]
	h.WordWidth = data[WordWidthOffset]
	h.SmallWidth = data[SmallWidthOffset]
	h.IndexWidth = data[IndexWidthOffset]
	h.WordCount = engine.Uint32(data[WordCountOffset : WordCountOffset+4])
	h.OverflowCount = engine.Uint32(data[OverflowCountOffset : OverflowCountOffset+4])
	h.BitLen = engine.Uint32(data[BitLenOffset : BitLenOffset+4])
	h.WordPayloadOffset = engine.Uint32(data[WordPayloadOffset : WordPayloadOffset+4])
	h.OverflowPayloadOffset = engine.Uint32(data[OverflowPayloadPos : OverflowPayloadPos+4])
	h.Checksum = engine.Uint64(data[ChecksumOffset : ChecksumOffset+8])

	return h.Flag.Validate()
}

// Bytes serializes the Header into a byte slice of HeaderSize bytes.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	// Options is always little-endian so a decoder can read the endianness
	// bit before anything else.
	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[VariantOffset] = h.Flag.Variant
	b[CompressionOffset] = h.Flag.Compression

	engine.PutUint32(b[CountOffset:CountOffset+4], h.Count)
	b[BitWidthOffset] = h.BitWidth
	b[WordWidthOffset] = h.WordWidth
	b[SmallWidthOffset] = h.SmallWidth
	b[IndexWidthOffset] = h.IndexWidth
	engine.PutUint32(b[WordCountOffset:WordCountOffset+4], h.WordCount)
	engine.PutUint32(b[OverflowCountOffset:OverflowCountOffset+4], h.OverflowCount)
	engine.PutUint32(b[BitLenOffset:BitLenOffset+4], h.BitLen)
	engine.PutUint32(b[WordPayloadOffset:WordPayloadOffset+4], h.WordPayloadOffset)
	engine.PutUint32(b[OverflowPayloadPos:OverflowPayloadPos+4], h.OverflowPayloadOffset)
	engine.PutUint64(b[ChecksumOffset:ChecksumOffset+8], h.Checksum)

	return b
}

// ParseHeader parses a Header from a byte slice carrying at least
// HeaderSize bytes.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
