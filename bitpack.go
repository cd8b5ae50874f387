// Package bitpack provides a space-efficient binary format for integer
// arrays, packing each value into a fixed-width bit field while keeping O(1)
// random access to individual elements.
//
// # Core Features
//
//   - Fixed-width bit packing into 8/16/32/64-bit words
//   - Two layouts: consecutive (densest) and non-consecutive (word-aligned
//     fields for cheaper access arithmetic)
//   - Signed values via an offset codec, enabled automatically
//   - Overflow packing for distributions with a few large outliers
//   - A self-describing blob format with optional compression (Zstd, S2,
//     LZ4) and an xxHash64 payload checksum
//
// # Basic Usage
//
// Packing and random access:
//
//	import "github.com/Elieslns/bit-packing-compression"
//
//	arr, _ := bitpack.Compress([]int64{1, 2, 3, 1024, 4, 5, 2048},
//	    packing.WithOverflow(0))
//
//	v, _ := arr.Get(3)        // 1024, without unpacking the rest
//	values, _ := arr.Decompress()
//
// Serializing to a portable blob:
//
//	data, _ := bitpack.Encode(arr, blob.WithCompression(format.CompressionZstd))
//	restored, _ := bitpack.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the packing and
// blob packages, simplifying the most common use cases. For fine-grained
// control, use those packages directly.
package bitpack

import (
	"github.com/Elieslns/bit-packing-compression/blob"
	"github.com/Elieslns/bit-packing-compression/packing"
)

// Compress packs values into an immutable PackedArray.
//
// With no options the values are packed consecutively into 64-bit words at
// the automatic bit width, with the signed codec enabled iff the input
// contains a negative value. See the packing package for the available
// options.
func Compress(values []int64, opts ...packing.Option) (*packing.PackedArray, error) {
	return packing.Compress(values, opts...)
}

// Encode serializes a packed array into a self-describing blob. See the blob
// package for compression and endianness options.
func Encode(arr *packing.PackedArray, opts ...blob.Option) ([]byte, error) {
	return blob.Encode(arr, opts...)
}

// Decode restores a packed array from a blob produced by Encode.
func Decode(data []byte) (*packing.PackedArray, error) {
	return blob.Decode(data)
}

// Decompress restores the original values from a blob in one call.
//
// Equivalent to Decode followed by PackedArray.Decompress; use Decode when
// random access is enough, as it avoids materializing the full array.
func Decompress(data []byte) ([]int64, error) {
	arr, err := blob.Decode(data)
	if err != nil {
		return nil, err
	}

	return arr.Decompress()
}
