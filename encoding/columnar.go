package encoding

import "iter"

// ColumnarEncoder appends values of type T to a single payload.
type ColumnarEncoder[T any] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the size in bytes of the encoded payload.
	Size() int

	// Reset discards every encoded value and keeps the buffer for reuse.
	Reset()

	// Finish returns the buffer to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Copy the result of Bytes()
	// first if it must outlive the encoder:
	//
	//	encoder := NewPrefixDeltaEncoder()
	//	defer encoder.Finish()
	//
	//	encoder.Write(pf)
	//	data := bytes.Clone(encoder.Bytes())
	Finish()

	// Write appends a single value.
	Write(value T)

	// WriteSlice appends every value of values in order.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of type T from a payload produced by the matching encoder.
type ColumnarDecoder[T any] interface {
	// All returns an iterator over the first count values of data.
	//
	// If the data is malformed or holds fewer values, the iterator stops early.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at the zero-based index, scanning from the start of data.
	// The second return value is false when index is out of [0, count) or data is malformed.
	At(data []byte, index int, count int) (T, bool)

	// DecodeAt decodes the value starting at byte offset and returns it together with
	// the number of bytes it occupies.
	DecodeAt(data []byte, offset int) (T, int, error)
}
