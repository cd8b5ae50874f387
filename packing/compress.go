// Package packing implements the bit-packing core: the two field layouts
// (consecutive and non-consecutive), the overflow mechanism for value
// distributions with a few outlier magnitudes, and the offset codec that
// maps signed integers into the unsigned packed representation.
//
// Compress packs an []int64 into an immutable PackedArray with O(1) random
// access; PackedArray.Decompress and PackedArray.Get run the same chain in
// reverse. The blob package serializes packed arrays into a portable byte
// layout.
package packing

import (
	"fmt"

	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
	"github.com/Elieslns/bit-packing-compression/internal/options"
	"github.com/Elieslns/bit-packing-compression/wordbuf"
)

// Compress packs values into a PackedArray according to the given options.
//
// Configuration and range validation happen before any buffer is built, so
// on error the caller never observes a half-packed structure. With no
// options the values are packed consecutively into 64-bit words at the
// automatic bit width, with the signed codec enabled iff the input contains
// a negative value.
func Compress(values []int64, opts ...Option) (*PackedArray, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	signed, err := resolveSigned(cfg, values)
	if err != nil {
		return nil, err
	}

	if cfg.overflow {
		return compressOverflow(values, cfg, signed)
	}

	return compressPlain(values, cfg, signed)
}

// resolveSigned decides whether the signed codec applies, rejecting negative
// input when the caller forced it off.
func resolveSigned(cfg *Config, values []int64) (bool, error) {
	switch cfg.signed {
	case signedOn:
		return true, nil
	case signedOff:
		for _, v := range values {
			if v < 0 {
				return false, fmt.Errorf("%w: negative value %d with signed codec disabled", errs.ErrValueOutOfRange, v)
			}
		}

		return false, nil
	default:
		return hasNegative(values), nil
	}
}

// encodeValue maps a value to its k-bit unsigned field representation,
// applying the signed codec when enabled.
func encodeValue(v int64, k uint8, signed bool) (uint64, error) {
	if signed {
		return EncodeSigned(v, k)
	}

	if v < 0 || (k < 64 && uint64(v) > lowMask(k)) {
		return 0, fmt.Errorf("%w: %d does not fit %d unsigned bits", errs.ErrValueOutOfRange, v, k)
	}

	return uint64(v), nil
}

// compressPlain packs every value at a uniform field width.
func compressPlain(values []int64, cfg *Config, signed bool) (*PackedArray, error) {
	k := cfg.bitWidth
	if k == 0 {
		auto := autoBitWidth(values, signed)
		if auto > int(cfg.wordWidth) {
			return nil, fmt.Errorf("%w: data requires %d bits, word width is %d",
				errs.ErrInvalidBitWidth, auto, cfg.wordWidth)
		}
		k = uint8(auto)
	}

	// Encode (and range-check) every value before touching the buffer.
	fields := make([]uint64, len(values))
	for i, v := range values {
		u, err := encodeValue(v, k, signed)
		if err != nil {
			return nil, err
		}
		fields[i] = u
	}

	buf, err := wordbuf.New(cfg.wordWidth)
	if err != nil {
		return nil, err
	}

	switch cfg.variant {
	case format.VariantNonConsecutive:
		writeNonConsecutive(buf, fields, k)
	default:
		writeConsecutive(buf, fields, k)
	}

	return &PackedArray{
		buf:      buf,
		count:    len(values),
		variant:  cfg.variant,
		signed:   signed,
		bitWidth: k,
	}, nil
}

// compressOverflow packs values with a flag bit per element, siphoning
// outliers into a full-width overflow store so the primary field width
// reflects the typical magnitude rather than the maximum.
func compressOverflow(values []int64, cfg *Config, signed bool) (*PackedArray, error) {
	cls, err := classify(values, cfg, signed)
	if err != nil {
		return nil, err
	}

	var indexWidth uint8
	if cfg.indexed && len(cls.overflow) > 0 {
		indexWidth = overflowIndexWidth(len(cls.overflow))
	}

	payloadWidth := cls.smallWidth
	if indexWidth > payloadWidth {
		payloadWidth = indexWidth
	}
	total := payloadWidth + 1
	if total > cfg.wordWidth {
		return nil, fmt.Errorf("%w: flag plus %d payload bits exceed word width %d",
			errs.ErrInvalidSmallWidth, payloadWidth, cfg.wordWidth)
	}

	// Assemble (and range-check) every primary field before building the
	// buffer: flag in the most significant bit, payload below it.
	fields := make([]uint64, len(values))
	overflowSeen := 0
	for i, v := range values {
		if cls.isOverflow[i] {
			payload := uint64(0)
			if indexWidth > 0 {
				payload = uint64(overflowSeen)
			}
			fields[i] = 1<<payloadWidth | payload
			overflowSeen++

			continue
		}

		u, err := encodeValue(v, cls.smallWidth, signed)
		if err != nil {
			return nil, err
		}
		fields[i] = u
	}

	buf, err := wordbuf.New(cfg.wordWidth)
	if err != nil {
		return nil, err
	}

	switch cfg.variant {
	case format.VariantNonConsecutive:
		writeNonConsecutive(buf, fields, total)
	default:
		writeConsecutive(buf, fields, total)
	}

	return &PackedArray{
		buf:        buf,
		overflow:   cls.overflow,
		count:      len(values),
		variant:    cfg.variant,
		signed:     signed,
		bitWidth:   total,
		smallWidth: cls.smallWidth,
		indexWidth: indexWidth,
	}, nil
}

// classify splits values into regular and overflow sets according to the
// configured policy: explicit small width, magnitude threshold, or the
// median heuristic.
func classify(values []int64, cfg *Config, signed bool) (classification, error) {
	switch {
	case cfg.smallWidth > 0:
		return classifyByWidth(values, cfg.smallWidth, signed), nil
	case cfg.threshold > 0:
		smallWidth := neededBitsForMagnitude(cfg.threshold, signed)
		if smallWidth >= 64 || smallWidth >= int(cfg.wordWidth) {
			return classification{}, fmt.Errorf("%w: threshold %d needs %d bits with word width %d",
				errs.ErrInvalidSmallWidth, cfg.threshold, smallWidth, cfg.wordWidth)
		}

		return classifyByWidth(values, uint8(smallWidth), signed), nil
	default:
		cls := classifyAuto(values, signed)
		if int(cls.smallWidth) >= int(cfg.wordWidth) {
			return classification{}, fmt.Errorf("%w: derived small width %d with word width %d",
				errs.ErrInvalidSmallWidth, cls.smallWidth, cfg.wordWidth)
		}

		return cls, nil
	}
}
