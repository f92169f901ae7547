package table

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/internal/options"
	"github.com/arloliu/ecf/section"
)

// initialIndexCapacity is the initial capacity of the index entries slice.
const initialIndexCapacity = 16

// EncoderConfig holds the table layout and assembly settings of an Encoder.
type EncoderConfig struct {
	header   *section.TableHeader
	engine   endian.EndianEngine
	logger   *slog.Logger
	maxSteps int
}

// NewEncoderConfig creates a configuration with the default table flag: little-endian,
// delta prefixes, no compression, PIPTree engine and prefix consumption.
func NewEncoderConfig() *EncoderConfig {
	header := section.NewTableHeader()

	return &EncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// EncoderOption represents a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// Header returns the header template the encoder finishes tables with.
func (c *EncoderConfig) Header() *section.TableHeader {
	return c.header
}

// Logger returns the configured logger.
func (c *EncoderConfig) Logger() *slog.Logger {
	return c.logger
}

func (c *EncoderConfig) setBigEndian(big bool) {
	if big {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

func (c *EncoderConfig) setPrefixEncoding(enc format.EncodingType) error {
	switch enc {
	case format.TypeRaw, format.TypeDelta:
		c.header.Flag.SetPrefixEncoding(enc)
		return nil
	default:
		return fmt.Errorf("invalid prefix encoding: %v", enc)
	}
}

func (c *EncoderConfig) setCompression(comp format.CompressionType) error {
	switch comp {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		c.header.Flag.SetCompression(comp)
		return nil
	default:
		return fmt.Errorf("invalid compression: %v", comp)
	}
}

func (c *EncoderConfig) setEngine(engine format.EngineType) error {
	switch engine {
	case format.EngineRIP, format.EnginePIP:
		c.header.Flag.SetEngine(engine)
		return nil
	default:
		return fmt.Errorf("invalid tree engine: %v", engine)
	}
}

func (c *EncoderConfig) setStrategy(strategy format.StrategyType) error {
	switch strategy {
	case format.StrategyPrefix, format.StrategyPath:
		c.header.Flag.SetStrategy(strategy)
		return nil
	default:
		return fmt.Errorf("invalid assembly strategy: %v", strategy)
	}
}

// WithLittleEndian sets the encoder to use little-endian byte order. This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setBigEndian(false)
	})
}

// WithBigEndian sets the encoder to use big-endian byte order.
// It rarely needs to be used unless interoperability with big-endian systems is required.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setBigEndian(true)
	})
}

// WithNativeEndian sets the encoder to use the host byte order.
func WithNativeEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.setBigEndian(endian.CheckEndianness() == binary.BigEndian)
	})
}

// WithPrefixEncoding sets the prefix payload encoding.
func WithPrefixEncoding(enc format.EncodingType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setPrefixEncoding(enc)
	})
}

// WithCompression sets the compression applied to both payloads.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setCompression(comp)
	})
}

// WithEngine sets the tree engine Add uses to compute ECFs.
func WithEngine(engine format.EngineType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setEngine(engine)
	})
}

// WithStrategy sets the assembly strategy Add uses to compute ECFs.
func WithStrategy(strategy format.StrategyType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setStrategy(strategy)
	})
}

// WithLogger sets the logger for encoder events and assembly traces.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMaxSteps bounds the engine calls of each ECF computed by Add. Zero means unlimited.
func WithMaxSteps(steps int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if steps < 0 {
			return fmt.Errorf("invalid max steps: %d", steps)
		}
		c.maxSteps = steps

		return nil
	})
}
