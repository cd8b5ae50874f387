package section

import (
	"fmt"

	"github.com/Elieslns/bit-packing-compression/endian"
	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
)

// Flag represents the packed option fields at the start of the header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 is the signed codec flag.
	// Bit 2 is the indexed overflow flag (overflow payloads carry store indices).
	// Bit 3 is reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the blob format:
	//   - 0xBC10: packed-array blob format v1
	Options uint16

	// Variant is the primary packing layout tag (format.VariantType).
	Variant uint8

	// Compression is the payload compression tag (format.CompressionType).
	Compression uint8
}

var validVariants = map[uint8]struct{}{
	uint8(format.VariantConsecutive):    {},
	uint8(format.VariantNonConsecutive): {},
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewFlag creates a Flag with default settings: little-endian, unsigned,
// indexed overflow payloads, consecutive layout, no payload compression.
func NewFlag() Flag {
	flag := Flag{
		Options:     MagicPackedV1Opt,
		Variant:     uint8(format.VariantConsecutive),
		Compression: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()
	flag.SetIndexedOverflow(true)

	return flag
}

// IsLittleEndian returns whether the payload fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the payload fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// IsSigned returns whether the signed value codec applies to the payload.
func (f Flag) IsSigned() bool {
	return (f.Options & SignedMask) != 0
}

// SetSigned records whether the signed value codec applies.
func (f *Flag) SetSigned(signed bool) {
	if signed {
		f.Options |= SignedMask
	} else {
		f.Options &^= SignedMask
	}
}

// HasIndexedOverflow returns whether overflow payloads carry explicit store
// indices (as opposed to the compact flag-only encoding).
func (f Flag) HasIndexedOverflow() bool {
	return (f.Options & IndexedOverflowMask) != 0
}

// SetIndexedOverflow records the overflow payload encoding.
func (f *Flag) SetIndexedOverflow(indexed bool) {
	if indexed {
		f.Options |= IndexedOverflowMask
	} else {
		f.Options &^= IndexedOverflowMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber reports whether the Options field carries the
// packed-array blob magic.
func (f Flag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicPackedV1Opt
}

// GetEndianEngine returns the endian engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// VariantType returns the primary layout tag.
func (f Flag) VariantType() format.VariantType {
	return format.VariantType(f.Variant)
}

// SetVariant records the primary layout tag.
func (f *Flag) SetVariant(v format.VariantType) error {
	if _, ok := validVariants[uint8(v)]; !ok {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, v)
	}
	f.Variant = uint8(v)

	return nil
}

// CompressionType returns the payload compression tag.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompression records the payload compression tag.
func (f *Flag) SetCompression(c format.CompressionType) error {
	if _, ok := validCompressions[uint8(c)]; !ok {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, c)
	}
	f.Compression = uint8(c)

	return nil
}

// Validate checks the flag for structural validity: magic number, reserved
// bits, and known variant and compression tags.
func (f Flag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved flag bits set", errs.ErrCorruptedPayload)
	}
	if _, ok := validVariants[f.Variant]; !ok {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, f.Variant)
	}
	if _, ok := validCompressions[f.Compression]; !ok {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, f.Compression)
	}

	return nil
}
