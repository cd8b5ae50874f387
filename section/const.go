// Package section defines the fixed wire layout of a serialized packed
// array: the packed option flag and the binary header that precedes the word
// and overflow payloads.
package section

const (
	// Bit masks for the packed Options field
	EndiannessMask      = 0x0001 // Mask for endianness bit (bit 0), 0 = little-endian
	SignedMask          = 0x0002 // Mask for signed codec bit (bit 1)
	IndexedOverflowMask = 0x0004 // Mask for indexed overflow payload bit (bit 2)
	ReservedBitsMask    = 0x0008 // Mask for reserved bit (bit 3), must be 0
	MagicNumberMask     = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicPackedV1Opt is the version 1 magic number for the packed-array
	// blob format (bits 4-15 of the Options field).
	MagicPackedV1Opt = 0xBC10
)

// Byte offsets and sizes in the serialized blob. The exact layout is
// load-bearing for cross-implementation compatibility: the Options field is
// always little-endian; every other multi-byte field uses the endianness
// declared by bit 0 of Options.
const (
	HeaderSize = 40 // fixed header size in bytes

	// Header field offsets
	OptionsOffset        = 0  // uint16: flags and magic number
	VariantOffset        = 2  // uint8: format.VariantType
	CompressionOffset    = 3  // uint8: format.CompressionType
	CountOffset          = 4  // uint32: element count n
	BitWidthOffset       = 8  // uint8: total primary field width k
	WordWidthOffset      = 9  // uint8: word width W
	SmallWidthOffset     = 10 // uint8: overflow small width (0 = plain array)
	IndexWidthOffset     = 11 // uint8: overflow index payload width (0 = compact)
	WordCountOffset      = 12 // uint32: number of serialized words
	OverflowCountOffset  = 16 // uint32: overflow store length
	BitLenOffset         = 20 // uint32: populated bits of the word buffer
	WordPayloadOffset    = 24 // uint32: byte offset of the word payload
	OverflowPayloadPos   = 28 // uint32: byte offset of the overflow payload
	ChecksumOffset       = 32 // uint64: xxHash64 of the payload bytes as stored
	OverflowValueSize    = 8  // overflow values serialize as two's-complement uint64
	MaxSerializableCount = 1<<32 - 1
)
