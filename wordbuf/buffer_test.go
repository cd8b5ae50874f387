package wordbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elieslns/bit-packing-compression/errs"
)

func TestNew(t *testing.T) {
	t.Run("Supported widths", func(t *testing.T) {
		for _, w := range []uint8{8, 16, 32, 64} {
			buf, err := New(w)
			require.NoError(t, err)
			require.Equal(t, w, buf.WordWidth())
			require.Equal(t, 0, buf.Len())
			require.Equal(t, 0, buf.WordCount())
		}
	})

	t.Run("Unsupported widths", func(t *testing.T) {
		for _, w := range []uint8{0, 1, 7, 24, 63, 65, 128} {
			_, err := New(w)
			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrInvalidWordWidth)
		}
	})
}

func TestBuffer_WriteBits_SingleWord(t *testing.T) {
	buf, err := New(32)
	require.NoError(t, err)

	// Three 8-bit fields fill the top 24 bits, MSB first.
	buf.WriteBits(0xAB, 8)
	buf.WriteBits(0xCD, 8)
	buf.WriteBits(0xEF, 8)

	require.Equal(t, 24, buf.Len())
	require.Equal(t, 1, buf.WordCount())
	assert.Equal(t, uint64(0xABCDEF00), buf.Words()[0])
}

func TestBuffer_WriteBits_CrossesBoundary(t *testing.T) {
	buf, err := New(8)
	require.NoError(t, err)

	// 5 + 6 bits: the 6-bit field straddles the first byte boundary.
	buf.WriteBits(0b10101, 5)
	buf.WriteBits(0b110011, 6)

	require.Equal(t, 11, buf.Len())
	require.Equal(t, 2, buf.WordCount())
	// Word 0: 10101_110 (5-bit field + high 3 bits of the 6-bit field).
	assert.Equal(t, uint64(0b10101110), buf.Words()[0])
	// Word 1: 011_00000 (low 3 bits of the 6-bit field, left aligned).
	assert.Equal(t, uint64(0b01100000), buf.Words()[1])
}

func TestBuffer_WriteBits_MasksHighBits(t *testing.T) {
	buf, err := New(64)
	require.NoError(t, err)

	buf.WriteBits(0xFFFF, 4) // only the low 4 bits count
	got, err := buf.ReadAt(0, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xF), got)
}

func TestBuffer_WriteBits_PanicsOnBadWidth(t *testing.T) {
	buf, err := New(32)
	require.NoError(t, err)

	require.Panics(t, func() { buf.WriteBits(1, 0) })
	require.Panics(t, func() { buf.WriteBits(1, 33) })
}

func TestBuffer_ReadAt(t *testing.T) {
	buf, err := New(32)
	require.NoError(t, err)

	values := []uint64{0x1F3, 0x000, 0x2AB, 0x3FF, 0x155}
	for _, v := range values {
		buf.WriteBits(v, 10)
	}

	t.Run("Every field reads back", func(t *testing.T) {
		for i, want := range values {
			got, err := buf.ReadAt(i*10, 10)
			require.NoError(t, err)
			require.Equal(t, want, got, "field %d", i)
		}
	})

	t.Run("Reads are idempotent", func(t *testing.T) {
		first, err := buf.ReadAt(30, 10)
		require.NoError(t, err)
		for range 10 {
			again, err := buf.ReadAt(30, 10)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := buf.ReadAt(len(values)*10-5, 10)
		require.ErrorIs(t, err, errs.ErrOutOfBounds)

		_, err = buf.ReadAt(-1, 10)
		require.ErrorIs(t, err, errs.ErrOutOfBounds)
	})

	t.Run("Invalid width", func(t *testing.T) {
		_, err := buf.ReadAt(0, 0)
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)

		_, err = buf.ReadAt(0, 33)
		require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
	})
}

func TestBuffer_ReadAt_SpanningWords(t *testing.T) {
	for _, wordWidth := range []uint8{8, 16, 32, 64} {
		buf, err := New(wordWidth)
		require.NoError(t, err)

		// Offset the cursor so a full-width field must straddle two words.
		buf.WriteBits(0b101, 3)
		full := lowMask(wordWidth) ^ 0b1010 // arbitrary pattern wide as a word
		buf.WriteBits(full, wordWidth)

		got, err := buf.ReadAt(3, wordWidth)
		require.NoError(t, err)
		require.Equal(t, full, got, "word width %d", wordWidth)
	}
}

func TestBuffer_PadToWordBoundary(t *testing.T) {
	buf, err := New(16)
	require.NoError(t, err)

	buf.WriteBits(0b111, 3)
	buf.PadToWordBoundary()
	require.Equal(t, 16, buf.Len())

	// Padding when aligned is a no-op.
	buf.PadToWordBoundary()
	require.Equal(t, 16, buf.Len())

	buf.WriteBits(0xFFFF, 16)
	require.Equal(t, 32, buf.Len())
	require.Equal(t, 2, buf.WordCount())

	// The padded tail of word 0 stays zero.
	assert.Equal(t, uint64(0b1110000000000000), buf.Words()[0])
	assert.Equal(t, uint64(0xFFFF), buf.Words()[1])
}

func TestFromWords(t *testing.T) {
	t.Run("Round-trip", func(t *testing.T) {
		src, err := New(32)
		require.NoError(t, err)
		src.WriteBits(0x12345, 20)
		src.WriteBits(0x6789A, 20)

		restored, err := FromWords(src.Words(), 32, src.Len())
		require.NoError(t, err)

		for i := range 2 {
			want, err := src.ReadAt(i*20, 20)
			require.NoError(t, err)
			got, err := restored.ReadAt(i*20, 20)
			require.NoError(t, err)
			require.Equal(t, want, got)
		}
	})

	t.Run("Bit length past capacity", func(t *testing.T) {
		_, err := FromWords([]uint64{0}, 32, 33)
		require.ErrorIs(t, err, errs.ErrCorruptedPayload)
	})

	t.Run("Negative bit length", func(t *testing.T) {
		_, err := FromWords(nil, 32, -1)
		require.ErrorIs(t, err, errs.ErrCorruptedPayload)
	})
}
