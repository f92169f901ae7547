package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math/big"

	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/internal/pool"
)

// MaxNumberBytes bounds the magnitude size accepted by NumberDecoder, 1MiB.
const MaxNumberBytes = 1 << 20

// NumberEncoder stores arbitrary precision naturals as length-prefixed byte strings.
//
// Each number is encoded as:
//   - uvarint: magnitude length in bytes
//   - N bytes: big-endian magnitude (big.Int.Bytes)
//
// Only the magnitude is stored; callers encode non-negative numbers.
type NumberEncoder struct {
	temp  [binary.MaxVarintLen64]byte
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[*big.Int] = (*NumberEncoder)(nil)

// NewNumberEncoder creates a number encoder backed by a pooled buffer.
func NewNumberEncoder() *NumberEncoder {
	return &NumberEncoder{
		buf: pool.GetPayloadBuffer(),
	}
}

// Write encodes a single number.
func (e *NumberEncoder) Write(n *big.Int) {
	mag := n.Bytes()
	e.count++
	e.buf.Grow(binary.MaxVarintLen64 + len(mag))

	l := binary.PutUvarint(e.temp[:], uint64(len(mag)))
	e.buf.MustWrite(e.temp[:l])
	e.buf.MustWrite(mag)
}

// WriteSlice encodes every number of ns.
func (e *NumberEncoder) WriteSlice(ns []*big.Int) {
	for _, n := range ns {
		e.Write(n)
	}
}

// Bytes returns the encoded payload.
func (e *NumberEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *NumberEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *NumberEncoder) Size() int {
	return e.buf.Len()
}

// Reset discards the encoded numbers.
func (e *NumberEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *NumberEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// NumberDecoder decodes payloads produced by NumberEncoder.
type NumberDecoder struct{}

var _ ColumnarDecoder[*big.Int] = NumberDecoder{}

// NewNumberDecoder creates a number decoder.
func NewNumberDecoder() NumberDecoder {
	return NumberDecoder{}
}

// DecodeAt implements ColumnarDecoder.
func (d NumberDecoder) DecodeAt(data []byte, offset int) (*big.Int, int, error) {
	mag, n, err := d.MagnitudeAt(data, offset)
	if err != nil {
		return nil, 0, err
	}

	return new(big.Int).SetBytes(mag), n, nil
}

// MagnitudeAt returns the raw magnitude bytes of the number at offset without
// allocating a big.Int. The slice aliases data.
func (d NumberDecoder) MagnitudeAt(data []byte, offset int) ([]byte, int, error) {
	if offset < 0 || offset >= len(data) {
		return nil, 0, fmt.Errorf("%w: number offset %d out of %d bytes", errs.ErrInvalidPayload, offset, len(data))
	}

	length, l := binary.Uvarint(data[offset:])
	if l <= 0 {
		return nil, 0, fmt.Errorf("%w: bad number length at offset %d", errs.ErrInvalidPayload, offset)
	}
	if length > MaxNumberBytes || length > uint64(len(data)-offset-l) {
		return nil, 0, fmt.Errorf("%w: number of %d bytes at offset %d", errs.ErrInvalidPayload, length, offset)
	}

	start := offset + l
	end := start + int(length)

	return data[start:end:end], end - offset, nil
}

// All implements ColumnarDecoder.
func (d NumberDecoder) All(data []byte, count int) iter.Seq[*big.Int] {
	return allAt(d, data, count)
}

// At implements ColumnarDecoder.
func (d NumberDecoder) At(data []byte, index int, count int) (*big.Int, bool) {
	return valueAt(d, data, index, count)
}
