package section

const (
	// Bit masks of the options field
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2 and 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicTableV1Opt is the version 1 magic number of the ECF table format (bits 4-15).
	MagicTableV1Opt = 0xEC10
)

// offset and section sizes in the table
const (
	HeaderSize        = 32         // fixed header size in bytes
	IndexEntrySize    = 16         // fixed index entry size in bytes
	IndexOffsetOffset = HeaderSize // byte offset where index section starts

	// MaxRecordCount is the maximum number of records a single table may hold.
	// It keeps the index section and every payload offset within uint32 range.
	MaxRecordCount = 1 << 24
)
