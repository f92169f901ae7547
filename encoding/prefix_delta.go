package encoding

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/internal/pool"
	"github.com/arloliu/ecf/prefix"
)

// PrefixDeltaEncoder stores prefixes as varint element counts followed by varint deltas.
//
// Each prefix is encoded as:
//   - uvarint: number of elements
//   - uvarint: first element
//   - uvarint: difference to the previous element, for every further element
//
// ECF elements are strictly ascending and consecutive elements are usually close
// together, so most deltas fit in a single byte. Differences are taken modulo 2^32, so
// prefixes that are not ascending still round-trip, only less compactly.
type PrefixDeltaEncoder struct {
	temp  [binary.MaxVarintLen32]byte
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[prefix.Prefix] = (*PrefixDeltaEncoder)(nil)

// NewPrefixDeltaEncoder creates a new delta prefix encoder backed by a pooled buffer.
func NewPrefixDeltaEncoder() *PrefixDeltaEncoder {
	return &PrefixDeltaEncoder{
		buf: pool.GetPayloadBuffer(),
	}
}

// Write encodes a single prefix.
func (e *PrefixDeltaEncoder) Write(pf prefix.Prefix) {
	e.count++
	e.buf.Grow((len(pf) + 1) * binary.MaxVarintLen32)

	e.putUvarint(uint32(len(pf))) //nolint: gosec
	var prev uint32
	for _, v := range pf {
		e.putUvarint(v - prev)
		prev = v
	}
}

// WriteSlice encodes every prefix of pfs.
func (e *PrefixDeltaEncoder) WriteSlice(pfs []prefix.Prefix) {
	for _, pf := range pfs {
		e.Write(pf)
	}
}

func (e *PrefixDeltaEncoder) putUvarint(v uint32) {
	n := binary.PutUvarint(e.temp[:], uint64(v))
	e.buf.MustWrite(e.temp[:n])
}

// Bytes returns the encoded payload.
func (e *PrefixDeltaEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of prefixes written.
func (e *PrefixDeltaEncoder) Len() int {
	return e.count
}

// Size returns the payload size in bytes.
func (e *PrefixDeltaEncoder) Size() int {
	return e.buf.Len()
}

// Reset discards the encoded prefixes.
func (e *PrefixDeltaEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *PrefixDeltaEncoder) Finish() {
	if e.buf != nil {
		pool.PutPayloadBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}

// PrefixDeltaDecoder decodes payloads produced by PrefixDeltaEncoder.
type PrefixDeltaDecoder struct{}

var _ ColumnarDecoder[prefix.Prefix] = PrefixDeltaDecoder{}

// NewPrefixDeltaDecoder creates a delta prefix decoder.
func NewPrefixDeltaDecoder() PrefixDeltaDecoder {
	return PrefixDeltaDecoder{}
}

// DecodeAt implements ColumnarDecoder.
func (d PrefixDeltaDecoder) DecodeAt(data []byte, offset int) (prefix.Prefix, int, error) {
	if offset < 0 || offset >= len(data) {
		return nil, 0, fmt.Errorf("%w: prefix offset %d out of %d bytes", errs.ErrInvalidPayload, offset, len(data))
	}

	pos := offset
	length, err := readUvarint32(data, &pos)
	if err != nil {
		return nil, 0, err
	}
	// every element takes at least one byte
	if int(length) > len(data)-pos {
		return nil, 0, fmt.Errorf("%w: prefix of %d elements in %d bytes", errs.ErrInvalidPayload, length, len(data)-pos)
	}

	pf := make(prefix.Prefix, length)
	var cur uint32
	for i := range pf {
		delta, err := readUvarint32(data, &pos)
		if err != nil {
			return nil, 0, err
		}
		if cur > math.MaxUint32-delta {
			return nil, 0, fmt.Errorf("%w: prefix element %d overflows uint32", errs.ErrInvalidPayload, i)
		}
		cur += delta
		pf[i] = cur
	}

	return pf, pos - offset, nil
}

// All implements ColumnarDecoder.
func (d PrefixDeltaDecoder) All(data []byte, count int) iter.Seq[prefix.Prefix] {
	return allAt(d, data, count)
}

// At implements ColumnarDecoder.
func (d PrefixDeltaDecoder) At(data []byte, index int, count int) (prefix.Prefix, bool) {
	return valueAt(d, data, index, count)
}

// readUvarint32 reads a uvarint that must fit in 32 bits and advances pos past it.
func readUvarint32(data []byte, pos *int) (uint32, error) {
	v, n := binary.Uvarint(data[*pos:])
	if n <= 0 {
		return 0, fmt.Errorf("%w: bad varint at offset %d", errs.ErrInvalidPayload, *pos)
	}
	if v > uint64(^uint32(0)) {
		return 0, fmt.Errorf("%w: varint %d at offset %d overflows uint32", errs.ErrInvalidPayload, v, *pos)
	}
	*pos += n

	return uint32(v), nil
}

// allAt iterates count values decoded back to back from the start of data.
func allAt[T any](d ColumnarDecoder[T], data []byte, count int) iter.Seq[T] {
	return func(yield func(T) bool) {
		offset := 0
		for range count {
			v, n, err := d.DecodeAt(data, offset)
			if err != nil {
				return // stop iteration on malformed data
			}
			offset += n
			if !yield(v) {
				return
			}
		}
	}
}

// valueAt scans data up to index and decodes the value found there.
func valueAt[T any](d ColumnarDecoder[T], data []byte, index int, count int) (T, bool) {
	var zero T
	if index < 0 || index >= count {
		return zero, false
	}

	offset := 0
	for range index {
		_, n, err := d.DecodeAt(data, offset)
		if err != nil {
			return zero, false
		}
		offset += n
	}

	v, _, err := d.DecodeAt(data, offset)
	if err != nil {
		return zero, false
	}

	return v, true
}
