package format

type (
	EncodingType    uint8
	CompressionType uint8
	EngineType      uint8
	StrategyType    uint8
)

const (
	TypeRaw   EncodingType = 0x1 // TypeRaw stores prefix elements as fixed 32-bit integers.
	TypeDelta EncodingType = 0x2 // TypeDelta stores prefix elements as varint deltas.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	EngineRIP EngineType = 0x1 // EngineRIP derives prefixes from same-path siblings.
	EnginePIP EngineType = 0x2 // EnginePIP derives prefixes from a root-to-node walk.

	StrategyPrefix StrategyType = 0x1 // StrategyPrefix consumes local prefixes until 1 is reached.
	StrategyPath   StrategyType = 0x2 // StrategyPath extends the path until the prefix reaches 1.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (e EngineType) String() string {
	switch e {
	case EngineRIP:
		return "RIPTree"
	case EnginePIP:
		return "PIPTree"
	default:
		return "Unknown"
	}
}

func (s StrategyType) String() string {
	switch s {
	case StrategyPrefix:
		return "Prefix"
	case StrategyPath:
		return "PathExtension"
	default:
		return "Unknown"
	}
}
