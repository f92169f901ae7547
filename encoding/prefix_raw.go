package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/internal/pool"
	"github.com/arloliu/ecf/prefix"
)

// PrefixRawEncoder stores prefixes as fixed-width 32-bit integers.
//
// Each prefix is encoded as a uint32 element count followed by one uint32 per element,
// in the byte order of the endian engine. It trades size for a layout whose length is
// known from the count alone.
type PrefixRawEncoder struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
	count  int
}

var _ ColumnarEncoder[prefix.Prefix] = (*PrefixRawEncoder)(nil)

// NewPrefixRawEncoder creates a raw prefix encoder using the given byte order.
//
// Example:
//
//	encoder := NewPrefixRawEncoder(endian.GetLittleEndianEngine())
//	encoder.Write(prefix.Prefix{0, 1, 5})
//	data := encoder.Bytes() // 4 + 3*4 = 16 bytes
func NewPrefixRawEncoder(engine endian.EndianEngine) *PrefixRawEncoder {
	return &PrefixRawEncoder{
		engine: engine,
		buf:    pool.GetPayloadBuffer(),
	}
}

// Write encodes a single prefix.
func (e *PrefixRawEncoder) Write(pf prefix.Prefix) {
	e.count++
	e.buf.Grow((len(pf) + 1) * 4)

	e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(len(pf))) //nolint: gosec
	for _, v := range pf {
		e.buf.B = e.engine.AppendUint32(e.buf.B, v)
	}
}

// WriteSlice encodes every prefix of pfs.
func (e *PrefixRawEncoder) WriteSlice(pfs []prefix.Prefix) {
	total := 0
	for _, pf := range pfs {
		total += (len(pf) + 1) * 4
	}
	e.buf.Grow(total)

	for _, pf := range pfs {
		e.Write(pf)
	}
}

// Bytes returns the encoded payload.
func (e *PrefixRawEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of prefixes written.
func (e *PrefixRawEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *PrefixRawEncoder) Size() int {
	return e.buf.Len()
}

// Reset discards the encoded prefixes.
func (e *PrefixRawEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *PrefixRawEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// PrefixRawDecoder decodes payloads produced by PrefixRawEncoder.
type PrefixRawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[prefix.Prefix] = PrefixRawDecoder{}

// NewPrefixRawDecoder creates a raw prefix decoder; engine must match the encoder's.
func NewPrefixRawDecoder(engine endian.EndianEngine) PrefixRawDecoder {
	return PrefixRawDecoder{engine: engine}
}

// DecodeAt implements ColumnarDecoder.
func (d PrefixRawDecoder) DecodeAt(data []byte, offset int) (prefix.Prefix, int, error) {
	if offset < 0 || offset+4 > len(data) {
		return nil, 0, fmt.Errorf("%w: prefix offset %d out of %d bytes", errs.ErrInvalidPayload, offset, len(data))
	}

	length := int(d.engine.Uint32(data[offset:]))
	size := 4 + length*4
	if length > (len(data)-offset-4)/4 {
		return nil, 0, fmt.Errorf("%w: prefix of %d elements in %d bytes", errs.ErrInvalidPayload, length, len(data)-offset-4)
	}

	pf := make(prefix.Prefix, length)
	pos := offset + 4
	for i := range pf {
		pf[i] = d.engine.Uint32(data[pos:])
		pos += 4
	}

	return pf, size, nil
}

// All implements ColumnarDecoder.
func (d PrefixRawDecoder) All(data []byte, count int) iter.Seq[prefix.Prefix] {
	return allAt(d, data, count)
}

// At implements ColumnarDecoder.
func (d PrefixRawDecoder) At(data []byte, index int, count int) (prefix.Prefix, bool) {
	return valueAt(d, data, index, count)
}
