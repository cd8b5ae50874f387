package blob

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/Elieslns/bit-packing-compression/compress"
	"github.com/Elieslns/bit-packing-compression/endian"
	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
	"github.com/Elieslns/bit-packing-compression/internal/options"
	"github.com/Elieslns/bit-packing-compression/internal/pool"
	"github.com/Elieslns/bit-packing-compression/packing"
	"github.com/Elieslns/bit-packing-compression/section"
)

type encodeConfig struct {
	compression  format.CompressionType
	littleEndian bool
}

// Option configures blob encoding.
type Option = options.Option[*encodeConfig]

// WithCompression sets the compression codec applied to the payloads.
// The default is format.CompressionNone.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// WithLittleEndian serializes payload words in little-endian byte order.
// This is the default.
func WithLittleEndian() Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.littleEndian = true
	})
}

// WithBigEndian serializes payload words in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.littleEndian = false
	})
}

// WithNativeEndian serializes payload words in the host's byte order, so a
// reader on the same architecture decodes without byte swapping. The blob
// stays portable either way; the header records the order actually used.
func WithNativeEndian() Option {
	return options.NoError(func(cfg *encodeConfig) {
		cfg.littleEndian = endian.IsNativeLittleEndian()
	})
}

// Encode serializes a packed array into a self-describing blob.
//
// Parameters:
//   - arr: Packed array to serialize
//   - opts: Optional encoding options (compression, endianness)
//
// Returns:
//   - []byte: Serialized blob, owned by the caller
//   - error: Option validation errors, or errs.ErrValueOutOfRange when the
//     array exceeds the serializable element count
func Encode(arr *packing.PackedArray, opts ...Option) ([]byte, error) {
	cfg := encodeConfig{
		compression:  format.CompressionNone,
		littleEndian: true,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if arr.Count() > section.MaxSerializableCount {
		return nil, fmt.Errorf("%w: %d elements exceed serializable count", errs.ErrValueOutOfRange, arr.Count())
	}

	header := section.NewHeader()
	if !cfg.littleEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetSigned(arr.Signed())
	header.Flag.SetIndexedOverflow(arr.IndexWidth() > 0)
	if err := header.Flag.SetVariant(arr.Variant()); err != nil {
		return nil, err
	}
	if err := header.Flag.SetCompression(cfg.compression); err != nil {
		return nil, err
	}

	header.Count = uint32(arr.Count())
	header.BitWidth = arr.BitWidth()
	header.WordWidth = arr.WordWidth()
	header.SmallWidth = arr.SmallWidth()
	header.IndexWidth = arr.IndexWidth()
	header.WordCount = uint32(arr.Buffer().WordCount())
	header.OverflowCount = uint32(len(arr.OverflowValues()))
	header.BitLen = uint32(arr.Buffer().Len())

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()

	wordPayload, err := codec.Compress(serializeWords(arr, engine))
	if err != nil {
		return nil, fmt.Errorf("word payload compression: %w", err)
	}

	var overflowPayload []byte
	if len(arr.OverflowValues()) > 0 {
		overflowPayload, err = codec.Compress(serializeOverflow(arr, engine))
		if err != nil {
			return nil, fmt.Errorf("overflow payload compression: %w", err)
		}
	}

	header.WordPayloadOffset = section.HeaderSize
	header.OverflowPayloadOffset = uint32(section.HeaderSize + len(wordPayload))

	digest := xxhash.New()
	_, _ = digest.Write(wordPayload)
	_, _ = digest.Write(overflowPayload)
	header.Checksum = digest.Sum64()

	blob := make([]byte, 0, section.HeaderSize+len(wordPayload)+len(overflowPayload))
	blob = append(blob, header.Bytes()...)
	blob = append(blob, wordPayload...)
	blob = append(blob, overflowPayload...)

	return blob, nil
}

// serializeWords renders the packed buffer words as WordWidth/8 bytes each.
func serializeWords(arr *packing.PackedArray, engine endian.EndianEngine) []byte {
	buf := pool.GetBlobBuffer()
	defer pool.PutBlobBuffer(buf)

	words := arr.Buffer().Words()
	buf.Grow(len(words) * int(arr.WordWidth()) / 8)

	switch arr.WordWidth() {
	case 8:
		for _, w := range words {
			buf.B = append(buf.B, byte(w))
		}
	case 16:
		for _, w := range words {
			buf.B = engine.AppendUint16(buf.B, uint16(w))
		}
	case 32:
		for _, w := range words {
			buf.B = engine.AppendUint32(buf.B, uint32(w))
		}
	default:
		for _, w := range words {
			buf.B = engine.AppendUint64(buf.B, w)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// serializeOverflow renders overflow values as 8-byte two's-complement
// integers in store order.
func serializeOverflow(arr *packing.PackedArray, engine endian.EndianEngine) []byte {
	values := arr.OverflowValues()
	out := make([]byte, 0, len(values)*section.OverflowValueSize)
	for _, v := range values {
		out = engine.AppendUint64(out, uint64(v))
	}

	return out
}
