package regression

import (
	"fmt"

	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/internal/options"
)

// AnalyzeConfig holds the re-encoding parameters used while measuring.
type AnalyzeConfig struct {
	PrefixEncoding format.EncodingType
	Compression    format.CompressionType
	// ChunkSizes overrides the records-per-table sizes to measure. Sizes larger than the
	// number of records are skipped.
	ChunkSizes []int
}

// defaultAnalyzeConfig returns default config (delta prefixes, no compression).
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		PrefixEncoding: format.TypeDelta,
		Compression:    format.CompressionNone,
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithPrefixEncoding sets the prefix encoding of the measured tables.
func WithPrefixEncoding(enc format.EncodingType) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.PrefixEncoding = enc
	})
}

// WithCompression sets the payload compression of the measured tables.
func WithCompression(comp format.CompressionType) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.Compression = comp
	})
}

// WithChunkSizes sets the records-per-table sizes to measure.
func WithChunkSizes(sizes ...int) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		for _, s := range sizes {
			if s <= 0 {
				return fmt.Errorf("invalid chunk size: %d", s)
			}
		}
		cfg.ChunkSizes = sizes

		return nil
	})
}
