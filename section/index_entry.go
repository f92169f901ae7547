package section

import (
	"fmt"

	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/errs"
)

// IndexEntry records where one (number, ECF) record lives in the table payloads.
// It is a fixed size of 16 bytes. Entries are sorted by ID so lookups can binary search.
type IndexEntry struct {
	// ID is the xxHash64 of the number's big-endian magnitude bytes.
	//
	// Offset: 0, Size: 8 bytes
	ID uint64

	// NumberOffset is the absolute byte offset of the number in the decompressed number payload.
	//
	// Offset: 8, Size: 4 bytes
	NumberOffset uint32

	// PrefixOffset is the absolute byte offset of the ECF in the decompressed prefix payload.
	//
	// Offset: 12, Size: 4 bytes
	PrefixOffset uint32
}

// NewIndexEntry creates an IndexEntry.
func NewIndexEntry(id uint64, numberOffset, prefixOffset uint32) IndexEntry {
	return IndexEntry{
		ID:           id,
		NumberOffset: numberOffset,
		PrefixOffset: prefixOffset,
	}
}

// Bytes returns the index entry as a byte slice using the specified endian engine.
func (e *IndexEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [IndexEntrySize]byte
	e.WriteToSlice(b[:], 0, engine)

	return b[:]
}

// WriteToSlice writes to a pre-allocated slice and returns the next position.
//
// This is the most efficient method when writing multiple entries sequentially.
//
// Parameters:
//   - data: Pre-allocated byte slice (must have space for 16 bytes at offset)
//   - offset: Starting position in data slice
//   - engine: Endian engine for byte order
//
// Returns:
//   - int: Next write position (offset + 16)
func (e *IndexEntry) WriteToSlice(data []byte, offset int, engine endian.EndianEngine) int {
	engine.PutUint64(data[offset:offset+8], e.ID)
	engine.PutUint32(data[offset+8:offset+12], e.NumberOffset)
	engine.PutUint32(data[offset+12:offset+16], e.PrefixOffset)

	return offset + IndexEntrySize
}

// ParseIndexEntry parses an IndexEntry from a byte slice.
//
// Parameters:
//   - data: Byte slice containing index entry (must be at least 16 bytes)
//   - engine: Endian engine for byte order
//
// Returns:
//   - IndexEntry: Parsed index entry
//   - error: ErrInvalidIndex if data is too short
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) < IndexEntrySize {
		return IndexEntry{}, fmt.Errorf("%w: entry of %d bytes", errs.ErrInvalidIndex, len(data))
	}

	return IndexEntry{
		ID:           engine.Uint64(data[0:8]),
		NumberOffset: engine.Uint32(data[8:12]),
		PrefixOffset: engine.Uint32(data[12:16]),
	}, nil
}
