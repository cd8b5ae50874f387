package compress

// ZstdCompressor provides Zstandard compression for packed-array payloads.
//
// Zstd gives the best compression ratio of the supported codecs at a
// moderate speed cost, which suits archival of large packed arrays and
// network transmission where bandwidth matters more than latency.
//
// The implementation is selected at build time: cgo builds use
// valyala/gozstd (bindings to the reference libzstd), pure-Go builds use
// klauspost/compress/zstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
