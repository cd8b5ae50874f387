// Package compress provides compression codecs for serialized packed-array
// payloads.
//
// Compression is applied after bit packing, at the blob level: the word
// payload and the overflow payload are each compressed before the checksum
// is computed. Bit-packed words are already dense, so general
// purpose compression mostly pays off when the packed values carry repeating
// patterns (runs, periodic deltas) that survive the packing.
//
// Supported algorithms:
//   - None: no compression, zero overhead
//   - Zstd: best compression ratio, moderate speed
//   - S2: balanced compression and speed
//   - LZ4: fastest decompression, moderate compression
//
// The Zstd codec has two implementations selected by build tags: the cgo
// build uses valyala/gozstd, the pure-Go build uses klauspost/compress/zstd.
// Both produce interchangeable Zstandard frames.
//
// All codecs are safe for concurrent use. Internal encoder and decoder state
// is pooled where the underlying library benefits from reuse.
package compress
