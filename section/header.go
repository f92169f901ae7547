package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/ecf/errs"
)

// TableHeader represents the fixed-size header section at the start of an ECF table.
type TableHeader struct {
	// Flag is a packed field for the magic number and table options.
	Flag TableFlag // byte offset 0-5, 6-7 reserved
	// Count is the number of records stored in the table.
	Count uint32 // byte offset 8-11
	// IndexOffset is the byte offset to the start of the index section.
	IndexOffset uint32 // byte offset 12-15
	// NumberPayloadOffset is the byte offset to the start of the number payload section.
	// It records the offset after the index section.
	NumberPayloadOffset uint32 // byte offset 16-19
	// PrefixPayloadOffset is the byte offset to the start of the prefix payload section.
	// It records the offset after the encoded and compressed (if any) number payload.
	PrefixPayloadOffset uint32 // byte offset 20-23
	// TableSize is the total size of the table in bytes, header included.
	TableSize uint32 // byte offset 24-27
}

// NewTableHeader creates a TableHeader with default flags.
// The count, payload offsets and size are set when the encoder finishes.
func NewTableHeader() *TableHeader {
	return &TableHeader{
		Flag:        NewTableFlag(),
		IndexOffset: IndexOffsetOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h.Flag.Options = binary.LittleEndian.Uint16(data[0:2])
	h.Flag.EncodingType = data[2]
	h.Flag.CompressionType = data[3]
	h.Flag.EngineType = data[4]
	h.Flag.StrategyType = data[5]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.Count = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.NumberPayloadOffset = engine.Uint32(data[16:20])
	h.PrefixPayloadOffset = engine.Uint32(data[20:24])
	h.TableSize = engine.Uint32(data[24:28])

	return nil
}

// Bytes serializes the TableHeader into a byte slice.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	binary.LittleEndian.PutUint16(b[0:2], h.Flag.Options)
	b[2] = h.Flag.EncodingType
	b[3] = h.Flag.CompressionType
	b[4] = h.Flag.EngineType
	b[5] = h.Flag.StrategyType

	engine := h.Flag.GetEndianEngine()
	engine.PutUint32(b[8:12], h.Count)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.NumberPayloadOffset)
	engine.PutUint32(b[20:24], h.PrefixPayloadOffset)
	engine.PutUint32(b[24:28], h.TableSize)

	return b
}

// ValidateLayout checks that the sections described by the header are ordered and fit in
// a table of tableLen bytes.
func (h *TableHeader) ValidateLayout(tableLen int) error {
	if h.Count > MaxRecordCount {
		return fmt.Errorf("%w: %d records", errs.ErrTooManyRecords, h.Count)
	}
	if int(h.TableSize) != tableLen {
		return fmt.Errorf("%w: header size %d, got %d bytes", errs.ErrInvalidHeaderSize, h.TableSize, tableLen)
	}

	indexEnd := uint64(h.IndexOffset) + uint64(h.Count)*IndexEntrySize
	if h.IndexOffset != IndexOffsetOffset || indexEnd != uint64(h.NumberPayloadOffset) {
		return fmt.Errorf("%w: index [%d, %d) does not end at number payload %d",
			errs.ErrInvalidIndex, h.IndexOffset, indexEnd, h.NumberPayloadOffset)
	}
	if h.NumberPayloadOffset > h.PrefixPayloadOffset || h.PrefixPayloadOffset > h.TableSize {
		return fmt.Errorf("%w: payload offsets %d, %d out of order in %d bytes",
			errs.ErrInvalidPayload, h.NumberPayloadOffset, h.PrefixPayloadOffset, h.TableSize)
	}

	return nil
}

// ParseTableHeader parses a TableHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least 32 bytes)
//
// Returns:
//   - TableHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseTableHeader(data []byte) (TableHeader, error) {
	if len(data) < HeaderSize {
		return TableHeader{}, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	h := TableHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return TableHeader{}, err
	}

	return h, nil
}
