package compress

// ZstdCompressor provides Zstandard compression for table payloads.
//
// It gives the best ratio of the built-in codecs and suits tables that are written once
// and kept, such as precomputed ECF ranges. Delta-encoded prefix payloads are highly
// repetitive and typically shrink several times further.
//
// The default build uses github.com/klauspost/compress/zstd with pooled encoders and
// decoders. Building with cgo and the gozstd tag switches to github.com/valyala/gozstd;
// both produce standard zstd frames and read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
