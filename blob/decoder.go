package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/Elieslns/bit-packing-compression/compress"
	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/packing"
	"github.com/Elieslns/bit-packing-compression/section"
	"github.com/Elieslns/bit-packing-compression/wordbuf"
)

// Decode restores a packed array from a blob produced by Encode.
//
// The header is validated first (size, magic number, reserved bits), then
// the stored payload bytes are verified against the header checksum before
// any decompression happens.
//
// Returns:
//   - *packing.PackedArray: Restored array
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidMagicNumber,
//     errs.ErrChecksumMismatch or errs.ErrCorruptedPayload depending on
//     which validation failed
func Decode(data []byte) (*packing.PackedArray, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if header.WordPayloadOffset != section.HeaderSize {
		return nil, fmt.Errorf("%w: word payload offset %d", errs.ErrCorruptedPayload, header.WordPayloadOffset)
	}
	if header.OverflowPayloadOffset < section.HeaderSize || int(header.OverflowPayloadOffset) > len(data) {
		return nil, fmt.Errorf("%w: overflow payload offset %d", errs.ErrCorruptedPayload, header.OverflowPayloadOffset)
	}

	stored := data[section.HeaderSize:]
	if sum := xxhash.Sum64(stored); sum != header.Checksum {
		return nil, fmt.Errorf("%w: got 0x%016X, want 0x%016X", errs.ErrChecksumMismatch, sum, header.Checksum)
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType())
	if err != nil {
		return nil, err
	}

	wordPayload, err := codec.Decompress(data[section.HeaderSize:header.OverflowPayloadOffset])
	if err != nil {
		return nil, fmt.Errorf("%w: word payload: %s", errs.ErrCorruptedPayload, err)
	}

	words, err := parseWords(wordPayload, &header)
	if err != nil {
		return nil, err
	}

	overflow, err := parseOverflow(data[header.OverflowPayloadOffset:], &header, codec)
	if err != nil {
		return nil, err
	}

	buf, err := wordbuf.FromWords(words, header.WordWidth, int(header.BitLen))
	if err != nil {
		return nil, err
	}

	return packing.FromParts(packing.Parts{
		Variant:    header.Flag.VariantType(),
		Signed:     header.Flag.IsSigned(),
		BitWidth:   header.BitWidth,
		SmallWidth: header.SmallWidth,
		IndexWidth: header.IndexWidth,
		Count:      int(header.Count),
		Buffer:     buf,
		Overflow:   overflow,
	})
}

// parseWords rebuilds the word slice from the decompressed word payload.
func parseWords(payload []byte, header *section.Header) ([]uint64, error) {
	// An unsupported width would corrupt the size math below (9/8 rounds to
	// a 1-byte word but the switch falls into the 64-bit branch), so reject
	// it before trusting any derived quantity.
	if err := wordbuf.ValidateWordWidth(header.WordWidth); err != nil {
		return nil, err
	}

	wordSize := int(header.WordWidth) / 8
	if len(payload) != int(header.WordCount)*wordSize {
		return nil, fmt.Errorf("%w: word payload is %d bytes, want %d",
			errs.ErrCorruptedPayload, len(payload), int(header.WordCount)*wordSize)
	}

	engine := header.Flag.GetEndianEngine()
	words := make([]uint64, header.WordCount)

	switch header.WordWidth {
	case 8:
		for i := range words {
			words[i] = uint64(payload[i])
		}
	case 16:
		for i := range words {
			words[i] = uint64(engine.Uint16(payload[i*2 : i*2+2]))
		}
	case 32:
		for i := range words {
			words[i] = uint64(engine.Uint32(payload[i*4 : i*4+4]))
		}
	default:
		for i := range words {
			words[i] = engine.Uint64(payload[i*8 : i*8+8])
		}
	}

	return words, nil
}

// parseOverflow rebuilds the overflow store from the stored overflow section.
func parseOverflow(stored []byte, header *section.Header, codec compress.Codec) ([]int64, error) {
	if header.OverflowCount == 0 {
		if len(stored) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes after word payload", errs.ErrCorruptedPayload, len(stored))
		}

		return nil, nil
	}

	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("%w: overflow payload: %s", errs.ErrCorruptedPayload, err)
	}
	if len(payload) != int(header.OverflowCount)*section.OverflowValueSize {
		return nil, fmt.Errorf("%w: overflow payload is %d bytes, want %d",
			errs.ErrCorruptedPayload, len(payload), int(header.OverflowCount)*section.OverflowValueSize)
	}

	engine := header.Flag.GetEndianEngine()
	values := make([]int64, header.OverflowCount)
	for i := range values {
		values[i] = int64(engine.Uint64(payload[i*8 : i*8+8]))
	}

	return values, nil
}
