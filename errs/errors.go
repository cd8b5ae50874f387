// Package errs defines the sentinel errors shared across the
// bit-packing-compression packages.
//
// All errors are defined as package-level variables so callers can test for
// them with errors.Is, even when they arrive wrapped with additional context:
//
//	arr, err := packing.Compress(values, packing.WithBitWidth(40))
//	if errors.Is(err, errs.ErrInvalidBitWidth) {
//	    // handle configuration error
//	}
//
// The errors fall into four groups:
//
//   - Configuration errors: rejected before any packing work starts
//     (ErrInvalidBitWidth, ErrInvalidWordWidth, ErrInvalidSmallWidth,
//     ErrInvalidVariant, ErrInvalidCompression).
//   - Range errors: an input value does not fit the representable range and
//     overflow routing is disabled (ErrValueOutOfRange).
//   - Index errors: a read was requested outside [0, n) or past the populated
//     buffer length (ErrIndexOutOfRange, ErrOutOfBounds). These are per-call
//     errors and do not poison the packed array.
//   - Consistency errors: the packed data itself is damaged or
//     mis-constructed (ErrInvalidHeaderSize, ErrInvalidMagicNumber,
//     ErrChecksumMismatch, ErrCorruptedPayload). These always propagate;
//     there is no silent recovery.
package errs

import "errors"

// Configuration errors. Raised at the compression or decode boundary before
// any partial result is produced.
var (
	// ErrInvalidBitWidth indicates an element bit width outside (0, wordWidth].
	ErrInvalidBitWidth = errors.New("invalid element bit width")

	// ErrInvalidWordWidth indicates an unsupported word width.
	// Supported widths are 8, 16, 32 and 64 bits.
	ErrInvalidWordWidth = errors.New("invalid word width")

	// ErrInvalidSmallWidth indicates an overflow small width that makes the
	// overflow mechanism meaningless (smallWidth >= 64 or >= word width).
	ErrInvalidSmallWidth = errors.New("invalid overflow small width")

	// ErrInvalidVariant indicates an unknown packing variant.
	ErrInvalidVariant = errors.New("invalid packing variant")

	// ErrInvalidCompression indicates an unknown payload compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Range errors.
var (
	// ErrValueOutOfRange indicates a value that does not fit the configured
	// representable range and cannot be routed to an overflow store.
	ErrValueOutOfRange = errors.New("value out of representable range")
)

// Index errors.
var (
	// ErrIndexOutOfRange indicates an element index outside [0, n).
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrOutOfBounds indicates a bit-level read past the populated length of
	// a word buffer.
	ErrOutOfBounds = errors.New("read past populated buffer length")
)

// Consistency errors. These indicate a corrupted or mis-constructed packed
// array and are never expected from correct compression.
var (
	// ErrInvalidHeaderSize indicates a serialized header of the wrong size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidMagicNumber indicates data that is not a packed-array blob.
	ErrInvalidMagicNumber = errors.New("invalid magic number")

	// ErrChecksumMismatch indicates payload bytes that do not match the
	// checksum recorded in the header.
	ErrChecksumMismatch = errors.New("payload checksum mismatch")

	// ErrCorruptedPayload indicates an internal inconsistency in the packed
	// data, such as an overflow index past the overflow store length or a
	// buffer shorter than n*k bits.
	ErrCorruptedPayload = errors.New("corrupted packed payload")
)
