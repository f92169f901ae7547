package section

import (
	"fmt"

	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
)

// TableFlag represents the packed flag bytes at the start of a table header.
type TableFlag struct {
	// Options is a packed field for various options.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the table format:
	//   - 0xEC10 (0b1110_1100_0001_0000): ECF table format v1
	//
	// Options is always stored little-endian so the byte order can be read before it is known.
	Options uint16

	// EncodingType is the prefix payload encoding.
	EncodingType uint8
	// CompressionType is the compression applied to both payloads.
	CompressionType uint8
	// EngineType is the tree engine the ECFs were assembled with.
	EngineType uint8
	// StrategyType is the assembly strategy the ECFs were assembled with.
	StrategyType uint8
}

// NewTableFlag creates a new TableFlag with default settings: little-endian, delta
// prefixes, no compression, PIPTree engine and prefix consumption.
func NewTableFlag() TableFlag {
	flag := TableFlag{
		Options:         MagicTableV1Opt,
		EncodingType:    uint8(format.TypeDelta),
		CompressionType: uint8(format.CompressionNone),
		EngineType:      uint8(format.EnginePIP),
		StrategyType:    uint8(format.StrategyPrefix),
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the table is little-endian.
func (f TableFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the table is big-endian.
func (f TableFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f TableFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber reports whether the magic number identifies a v1 table.
func (f TableFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicTableV1Opt
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f TableFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// PrefixEncoding returns the prefix payload encoding.
func (f TableFlag) PrefixEncoding() format.EncodingType {
	return format.EncodingType(f.EncodingType)
}

// SetPrefixEncoding sets the prefix payload encoding.
func (f *TableFlag) SetPrefixEncoding(enc format.EncodingType) {
	f.EncodingType = uint8(enc)
}

// Compression returns the payload compression.
func (f TableFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetCompression sets the payload compression.
func (f *TableFlag) SetCompression(comp format.CompressionType) {
	f.CompressionType = uint8(comp)
}

// Engine returns the tree engine type.
func (f TableFlag) Engine() format.EngineType {
	return format.EngineType(f.EngineType)
}

// SetEngine sets the tree engine type.
func (f *TableFlag) SetEngine(engine format.EngineType) {
	f.EngineType = uint8(engine)
}

// Strategy returns the assembly strategy type.
func (f TableFlag) Strategy() format.StrategyType {
	return format.StrategyType(f.StrategyType)
}

// SetStrategy sets the assembly strategy type.
func (f *TableFlag) SetStrategy(strategy format.StrategyType) {
	f.StrategyType = uint8(strategy)
}

// Validate checks the magic number, the reserved bits and every enum field.
func (f TableFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: 0x%04X", errs.ErrInvalidMagicNumber, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits 0x%04X", errs.ErrInvalidMagicNumber, f.Options&ReservedBitsMask)
	}

	switch f.PrefixEncoding() {
	case format.TypeRaw, format.TypeDelta:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidEncoding, f.EncodingType)
	}

	switch f.Compression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, f.CompressionType)
	}

	switch f.Engine() {
	case format.EngineRIP, format.EnginePIP:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidEngine, f.EngineType)
	}

	switch f.Strategy() {
	case format.StrategyPrefix, format.StrategyPath:
	default:
		return fmt.Errorf("%w: %d", errs.ErrInvalidStrategy, f.StrategyType)
	}

	return nil
}
