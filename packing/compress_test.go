package packing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Elieslns/bit-packing-compression/errs"
	"github.com/Elieslns/bit-packing-compression/format"
)

// requireRoundTrip packs values with the given options and checks that both
// Decompress and per-index Get reproduce the input.
func requireRoundTrip(t *testing.T, values []int64, opts ...Option) *PackedArray {
	t.Helper()

	arr, err := Compress(values, opts...)
	require.NoError(t, err)
	require.Equal(t, len(values), arr.Count())

	got, err := arr.Decompress()
	require.NoError(t, err)
	if len(values) == 0 {
		require.Empty(t, got)
	} else {
		require.Equal(t, values, got)
	}

	for i, want := range values {
		v, err := arr.Get(i)
		require.NoError(t, err)
		require.Equal(t, want, v, "index %d", i)
	}

	return arr
}

func TestCompress_Consecutive(t *testing.T) {
	t.Run("Unsigned", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{5, 2, 63, 0, 17, 33})

		require.Equal(t, format.VariantConsecutive, arr.Variant())
		require.False(t, arr.Signed())
		require.Equal(t, uint8(6), arr.BitWidth())
		require.False(t, arr.HasOverflow())
	})

	t.Run("Signed auto-detected", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{5, -2, 63, 0, -17, 33})

		require.True(t, arr.Signed())
		require.Equal(t, uint8(7), arr.BitWidth())
	})

	t.Run("Fields straddle word boundaries", func(t *testing.T) {
		// 13-bit fields in 64-bit words: the fifth field crosses into the
		// second word.
		values := []int64{4095, 1, 4094, 2, 4093, 3}
		arr := requireRoundTrip(t, values, WithBitWidth(13))

		require.Equal(t, len(values)*13, arr.SizeBits())
		require.Equal(t, 2, arr.Buffer().WordCount())
	})

	t.Run("Explicit width leaves headroom", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1, 2, 3}, WithBitWidth(32))
		require.Equal(t, uint8(32), arr.BitWidth())
	})
}

func TestCompress_NonConsecutive(t *testing.T) {
	t.Run("Fields never cross word boundaries", func(t *testing.T) {
		// 13-bit fields in 64-bit words: 4 fields per word, 12 padding bits.
		values := []int64{4095, 1, 4094, 2, 4093, 3}
		arr := requireRoundTrip(t, values,
			WithVariant(format.VariantNonConsecutive), WithBitWidth(13))

		require.Equal(t, format.VariantNonConsecutive, arr.Variant())
		require.Equal(t, 64+2*13, arr.SizeBits())
		require.Equal(t, 2, arr.Buffer().WordCount())
	})

	t.Run("Width equal to word width", func(t *testing.T) {
		values := []int64{1, 200, 3}
		arr := requireRoundTrip(t, values,
			WithVariant(format.VariantNonConsecutive), WithWordWidth(8), WithBitWidth(8))

		require.Equal(t, 3, arr.Buffer().WordCount())
	})

	t.Run("Signed", func(t *testing.T) {
		requireRoundTrip(t, []int64{-100, 100, -1, 0, 99},
			WithVariant(format.VariantNonConsecutive))
	})
}

func TestCompress_WordWidths(t *testing.T) {
	values := []int64{7, 0, 5, 3, 6, 1, 2, 4, 7, 7, 0, 1}

	for _, w := range []uint8{8, 16, 32, 64} {
		for _, variant := range []format.VariantType{format.VariantConsecutive, format.VariantNonConsecutive} {
			arr := requireRoundTrip(t, values, WithWordWidth(w), WithVariant(variant))
			require.Equal(t, w, arr.WordWidth())
		}
	}
}

func TestCompress_EdgeCases(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		arr := requireRoundTrip(t, nil)
		require.Equal(t, 0, arr.SizeBits())

		_, err := arr.Get(0)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})

	t.Run("All zeros pack at one bit", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{0, 0, 0, 0})
		require.Equal(t, uint8(1), arr.BitWidth())
		require.Equal(t, 4, arr.SizeBits())
		require.Equal(t, 1, arr.Buffer().WordCount())
	})

	t.Run("Single element at full width", func(t *testing.T) {
		requireRoundTrip(t, []int64{1 << 62}, WithBitWidth(64))
	})

	t.Run("Get is idempotent", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{9, 8, 7})
		for range 3 {
			v, err := arr.Get(1)
			require.NoError(t, err)
			require.Equal(t, int64(8), v)
		}
	})

	t.Run("Negative index", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1})
		_, err := arr.Get(-1)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

func TestCompress_Validation(t *testing.T) {
	t.Run("Value exceeds explicit width", func(t *testing.T) {
		_, err := Compress([]int64{16}, WithBitWidth(4))
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	})

	t.Run("Signed value exceeds explicit width", func(t *testing.T) {
		_, err := Compress([]int64{-8}, WithBitWidth(4))
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	})

	t.Run("Negative value with signed codec disabled", func(t *testing.T) {
		_, err := Compress([]int64{1, -2, 3}, WithSigned(false))
		require.ErrorIs(t, err, errs.ErrValueOutOfRange)
	})

	t.Run("Forced signed codec without negatives", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1, 2, 3}, WithSigned(true))
		require.True(t, arr.Signed())
		require.Equal(t, uint8(3), arr.BitWidth())
	})

	t.Run("Auto width exceeds word width", func(t *testing.T) {
		_, err := Compress([]int64{1 << 20}, WithWordWidth(16))
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
	})

	t.Run("Explicit width exceeds word width", func(t *testing.T) {
		_, err := Compress([]int64{1}, WithWordWidth(8), WithBitWidth(9))
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
	})

	t.Run("Invalid word width", func(t *testing.T) {
		_, err := Compress([]int64{1}, WithWordWidth(12))
		require.ErrorIs(t, err, errs.ErrInvalidWordWidth)
	})

	t.Run("Invalid variant", func(t *testing.T) {
		_, err := Compress([]int64{1}, WithVariant(format.VariantType(0x7F)))
		require.ErrorIs(t, err, errs.ErrInvalidVariant)
	})

	t.Run("Variant by name", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1, 2, 3}, WithVariantName("non_consecutive"))
		require.Equal(t, format.VariantNonConsecutive, arr.Variant())

		_, err := Compress([]int64{1}, WithVariantName("zigzag"))
		require.Error(t, err)
	})
}

func TestCompress_Overflow(t *testing.T) {
	values := []int64{1, 2, 3, 1024, 4, 5, 2048}

	t.Run("Indexed", func(t *testing.T) {
		arr := requireRoundTrip(t, values, WithOverflow(3))

		require.True(t, arr.HasOverflow())
		require.Equal(t, uint8(3), arr.SmallWidth())
		require.Equal(t, uint8(1), arr.IndexWidth())
		// Flag bit plus max(smallWidth, indexWidth) payload bits.
		require.Equal(t, uint8(4), arr.BitWidth())
		require.Equal(t, []int64{1024, 2048}, arr.OverflowValues())

		v, err := arr.Get(3)
		require.NoError(t, err)
		require.Equal(t, int64(1024), v)

		v, err = arr.Get(6)
		require.NoError(t, err)
		require.Equal(t, int64(2048), v)
	})

	t.Run("Compact", func(t *testing.T) {
		arr := requireRoundTrip(t, values, WithOverflow(3), WithIndexedOverflow(false))

		require.Equal(t, uint8(0), arr.IndexWidth())
		require.Equal(t, uint8(4), arr.BitWidth())

		v, err := arr.Get(6)
		require.NoError(t, err)
		require.Equal(t, int64(2048), v)
	})

	t.Run("Negative outliers", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{-1, 2, -3, -1024, 2, 3, 2048}, WithOverflow(3))
		require.True(t, arr.Signed())
		require.Equal(t, []int64{-1024, 2048}, arr.OverflowValues())
	})

	t.Run("Threshold classification", func(t *testing.T) {
		arr := requireRoundTrip(t, values, WithOverflowThreshold(7))
		require.Equal(t, uint8(3), arr.SmallWidth())
		require.Equal(t, []int64{1024, 2048}, arr.OverflowValues())
	})

	t.Run("Auto classification", func(t *testing.T) {
		arr := requireRoundTrip(t, values, WithOverflow(0))
		require.Equal(t, uint8(3), arr.SmallWidth())
		require.Equal(t, []int64{1024, 2048}, arr.OverflowValues())
	})

	t.Run("No outliers still uses flagged fields", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1, 2, 3}, WithOverflow(4))
		require.True(t, arr.HasOverflow())
		require.Empty(t, arr.OverflowValues())
		require.Equal(t, uint8(5), arr.BitWidth())
	})

	t.Run("Non-consecutive layout", func(t *testing.T) {
		requireRoundTrip(t, values, WithOverflow(3),
			WithVariant(format.VariantNonConsecutive))
	})

	t.Run("Wide index dominates payload", func(t *testing.T) {
		// Five outliers need a 3-bit index, wider than the 2-bit small width.
		vals := []int64{1, 100, 2, 200, 3, 300, 1, 400, 2, 500}
		arr := requireRoundTrip(t, vals, WithOverflow(2))

		require.Equal(t, uint8(3), arr.IndexWidth())
		require.Equal(t, uint8(4), arr.BitWidth())
	})

	t.Run("Small width too large for word", func(t *testing.T) {
		_, err := Compress(values, WithOverflow(8), WithWordWidth(8))
		require.ErrorIs(t, err, errs.ErrInvalidSmallWidth)
	})

	t.Run("Everything overflows", func(t *testing.T) {
		arr := requireRoundTrip(t, []int64{1000, 2000, 3000}, WithOverflow(2))
		require.Len(t, arr.OverflowValues(), 3)
	})
}

func TestCompress_BitWidthIgnoredWithOverflow(t *testing.T) {
	// The overflow format derives its field width from the classification;
	// an explicit bit width only applies to plain packing.
	arr, err := Compress([]int64{1, 2, 3, 1024}, WithBitWidth(16), WithOverflow(3))
	require.NoError(t, err)
	require.Equal(t, uint8(4), arr.BitWidth())
}
