// Package compress provides the payload codecs of the ECF table format.
//
// A table stores two payloads, numbers and prefixes, each encoded by package encoding and
// then compressed independently with the codec recorded in the table header:
//
//   - None (NoOpCompressor): payloads are stored as encoded
//   - Zstd (ZstdCompressor): best ratio, for tables that are written once and archived
//   - S2 (S2Compressor): balanced speed and ratio
//   - LZ4 (LZ4Compressor): fastest decompression
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "prefixes")
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(compressed)
//
// GetCodec returns shared built-in instances instead of creating new ones.
//
// # Zstd backends
//
// Zstd uses the pure Go github.com/klauspost/compress/zstd by default. Building with
// cgo enabled and the gozstd tag selects github.com/valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// # Thread Safety
//
// All codecs are stateless or pool their internal state and are safe for concurrent use.
package compress
