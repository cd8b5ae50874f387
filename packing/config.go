package packing

import (
	"fmt"

	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
	"github.com/Elieslns/bit-packing-compression/internal/options"
	"github.com/Elieslns/bit-packing-compression/wordbuf"
)

// signedMode selects how negative values are handled at compress time.
type signedMode uint8

const (
	signedAuto signedMode = iota // enable the signed codec iff the input contains negatives
	signedOn                     // always apply the signed codec
	signedOff                    // reject negatives with a range error
)

// Config carries the compression configuration assembled from functional
// options. The zero value is not usable; newConfig supplies the defaults.
type Config struct {
	variant    format.VariantType
	wordWidth  uint8
	bitWidth   uint8 // 0 = automatic
	signed     signedMode
	overflow   bool
	smallWidth uint8  // 0 = derive (from threshold or median heuristic)
	threshold  uint64 // 0 = unset; maximum magnitude stored inline
	indexed    bool   // overflow payloads carry explicit store indices
}

func newConfig() *Config {
	return &Config{
		variant:   format.VariantConsecutive,
		wordWidth: wordbuf.DefaultWordWidth,
		indexed:   true,
	}
}

// validate rejects configuration errors before any packing work starts.
func (c *Config) validate() error {
	if err := wordbuf.ValidateWordWidth(c.wordWidth); err != nil {
		return err
	}

	switch c.variant {
	case format.VariantConsecutive, format.VariantNonConsecutive:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, c.variant)
	}

	if c.bitWidth > c.wordWidth {
		return fmt.Errorf("%w: %d exceeds word width %d", errs.ErrInvalidBitWidth, c.bitWidth, c.wordWidth)
	}

	if c.overflow {
		// smallWidth+1 (flag bit) must still fit a word, and an overflow
		// store is meaningless when the small width reaches native width.
		if c.smallWidth >= 64 || c.smallWidth >= c.wordWidth {
			return fmt.Errorf("%w: %d with word width %d", errs.ErrInvalidSmallWidth, c.smallWidth, c.wordWidth)
		}
	}

	return nil
}

// Option is a functional option for configuring Compress.
type Option = options.Option[*Config]

// WithVariant selects the primary packing layout: consecutive (fields may
// straddle words) or non-consecutive (fields never cross a word boundary).
func WithVariant(v format.VariantType) Option {
	return options.New(func(c *Config) error {
		switch v {
		case format.VariantConsecutive, format.VariantNonConsecutive:
			c.variant = v
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidVariant, v)
		}
	})
}

// WithVariantName selects the packing layout by name, for callers driven by
// configuration strings. See format.ParseVariant for the recognized names.
func WithVariantName(name string) Option {
	return options.New(func(c *Config) error {
		v, err := format.ParseVariant(name)
		if err != nil {
			return err
		}
		c.variant = v

		return nil
	})
}

// WithWordWidth sets the word width of the underlying buffer (8, 16, 32 or
// 64 bits). The default is 64.
func WithWordWidth(w uint8) Option {
	return options.New(func(c *Config) error {
		if err := wordbuf.ValidateWordWidth(w); err != nil {
			return err
		}
		c.wordWidth = w

		return nil
	})
}

// WithBitWidth fixes the element field width instead of deriving it from the
// data. Width 0 restores automatic sizing.
func WithBitWidth(k uint8) Option {
	return options.NoError(func(c *Config) {
		c.bitWidth = k
	})
}

// WithSigned forces the signed codec on or off. When enabled, every value is
// offset-encoded even if the input holds no negatives; when disabled,
// negative input is rejected with a range error. Without this option the
// codec is enabled automatically when the input contains a negative value.
func WithSigned(enabled bool) Option {
	return options.NoError(func(c *Config) {
		if enabled {
			c.signed = signedOn
		} else {
			c.signed = signedOff
		}
	})
}

// WithOverflow enables the overflow packer. Values needing more than
// smallWidth bits are routed to a full-width overflow store and replaced by
// a flagged reference in the primary store. smallWidth 0 derives the width
// automatically (from WithOverflowThreshold when set, otherwise by the
// median magnitude heuristic).
func WithOverflow(smallWidth uint8) Option {
	return options.NoError(func(c *Config) {
		c.overflow = true
		c.smallWidth = smallWidth
	})
}

// WithOverflowThreshold enables the overflow packer and routes every value
// whose magnitude exceeds maxMagnitude to the overflow store. The small
// width is derived from maxMagnitude unless WithOverflow set it explicitly.
func WithOverflowThreshold(maxMagnitude uint64) Option {
	return options.NoError(func(c *Config) {
		c.overflow = true
		c.threshold = maxMagnitude
	})
}

// WithIndexedOverflow chooses between the two overflow payload encodings.
//
// Indexed (the default) stores the overflow-store index in the primary
// payload, keeping random access O(1) at the cost of
// max(smallWidth, indexWidth) payload bits. Compact stores only the flag and
// leaves the payload as a placeholder; Get must then count flagged elements
// up to the requested index, an O(n) scan per access. Decompress remains
// O(n) total in both encodings.
func WithIndexedOverflow(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.indexed = enabled
	})
}
