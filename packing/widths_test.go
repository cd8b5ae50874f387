package packing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAutoBitWidth(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		signed bool
		want   int
	}{
		{"Empty", nil, false, 1},
		{"All zero", []int64{0, 0, 0}, false, 1},
		{"Single bit", []int64{1, 0, 1}, false, 1},
		{"Unsigned 255", []int64{3, 255, 17}, false, 8},
		{"Unsigned 256", []int64{256}, false, 9},
		{"Signed adds a bit", []int64{3, -255, 17}, true, 9},
		{"Signed zero set", []int64{0}, true, 1},
		{"Max magnitude", []int64{math.MaxInt64}, false, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, autoBitWidth(tt.values, tt.signed))
		})
	}
}

func TestNeededBits(t *testing.T) {
	require.Equal(t, 1, neededBits(0, false))
	require.Equal(t, 1, neededBits(0, true))
	require.Equal(t, 3, neededBits(7, false))
	require.Equal(t, 4, neededBits(7, true))
	require.Equal(t, 4, neededBits(-7, true))
	require.Equal(t, 64, neededBits(math.MinInt64, false))
}

func TestClassifyByWidth(t *testing.T) {
	values := []int64{1, 2, 3, 1024, 4, 5, 2048}
	c := classifyByWidth(values, 3, false)

	require.Equal(t, uint8(3), c.smallWidth)
	require.Equal(t, []bool{false, false, false, true, false, false, true}, c.isOverflow)
	require.Equal(t, []int64{1024, 2048}, c.overflow)
}

func TestClassifyByWidth_Signed(t *testing.T) {
	// Width 3 holds [-3, 3] with the signed codec; 4 and -4 need 4 bits.
	values := []int64{-3, 3, 4, -4}
	c := classifyByWidth(values, 3, true)

	require.Equal(t, []bool{false, false, true, true}, c.isOverflow)
	require.Equal(t, []int64{4, -4}, c.overflow)
}

func TestClassifyAuto(t *testing.T) {
	t.Run("Outliers beyond median plus gap", func(t *testing.T) {
		// Median width 3, gap 3, cutoff 6: 1024 and 2048 overflow.
		values := []int64{1, 2, 3, 1024, 4, 5, 2048}
		c := classifyAuto(values, false)

		require.Equal(t, []int64{1024, 2048}, c.overflow)
		require.Equal(t, uint8(3), c.smallWidth)
	})

	t.Run("Uniform data stays regular", func(t *testing.T) {
		values := []int64{100, 120, 90, 110, 105}
		c := classifyAuto(values, false)

		require.Empty(t, c.overflow)
	})

	t.Run("Outliers drag the median up", func(t *testing.T) {
		// Half the values are huge, so the median width covers them and
		// nothing overflows.
		values := []int64{1, 1, 2, 1, 1 << 40, 1 << 41, 1 << 42, 1 << 43}
		c := classifyAuto(values, false)

		require.Empty(t, c.overflow)
		require.Equal(t, uint8(44), c.smallWidth)
	})

	t.Run("Too many outliers keeps everything regular", func(t *testing.T) {
		// 40% of the values sit past the cutoff but are only 6 bits wide;
		// the flag bit plus a 64-bit store per outlier costs more than
		// packing everything at 6 bits, so the split is abandoned.
		values := []int64{1, 1, 1, 1, 1, 1, 40, 41, 42, 43}
		c := classifyAuto(values, false)

		require.Empty(t, c.overflow)
		require.Equal(t, uint8(6), c.smallWidth)
	})

	t.Run("Empty input", func(t *testing.T) {
		c := classifyAuto(nil, false)
		require.Empty(t, c.overflow)
		require.Equal(t, uint8(1), c.smallWidth)
	})
}

func TestOverflowIndexWidth(t *testing.T) {
	require.Equal(t, uint8(1), overflowIndexWidth(0))
	require.Equal(t, uint8(1), overflowIndexWidth(1))
	require.Equal(t, uint8(1), overflowIndexWidth(2))
	require.Equal(t, uint8(2), overflowIndexWidth(3))
	require.Equal(t, uint8(2), overflowIndexWidth(4))
	require.Equal(t, uint8(3), overflowIndexWidth(5))
	require.Equal(t, uint8(10), overflowIndexWidth(1024))
}
