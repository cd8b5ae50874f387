package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Elieslns/bit-packing-compression/blob"
	"github.com/Elieslns/bit-packing-compression/format"
	"github.com/Elieslns/bit-packing-compression/packing"
)

func TestEndToEnd(t *testing.T) {
	values := []int64{1, 2, 3, 1024, 4, 5, 2048}

	arr, err := Compress(values, packing.WithOverflow(3))
	require.NoError(t, err)

	v, err := arr.Get(3)
	require.NoError(t, err)
	require.Equal(t, int64(1024), v)

	data, err := Encode(arr, blob.WithCompression(format.CompressionS2))
	require.NoError(t, err)

	restored, err := Decode(data)
	require.NoError(t, err)

	v, err = restored.Get(6)
	require.NoError(t, err)
	require.Equal(t, int64(2048), v)

	got, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestEndToEnd_Defaults(t *testing.T) {
	values := []int64{-5, 0, 5, 100, -100}

	arr, err := Compress(values)
	require.NoError(t, err)
	require.True(t, arr.Signed())

	data, err := Encode(arr)
	require.NoError(t, err)

	got, err := Decompress(data)
	require.NoError(t, err)
	require.Equal(t, values, got)
}
