// Package encoding provides the payload codecs of the ECF table format.
//
// Tables keep two payloads: one with the numbers and one with their prefixes. Both are
// written through the generic ColumnarEncoder interface and read back through
// ColumnarDecoder, which can iterate a payload, pick a value by index or decode the value
// at a known byte offset (as recorded in the table index).
//
// # Prefix encodings
//
//   - TypeDelta (PrefixDeltaEncoder): uvarint count, first element, then uvarint deltas.
//     ECF elements grow slowly, so most elements cost one byte.
//   - TypeRaw (PrefixRawEncoder): uint32 count and uint32 elements in the table's byte
//     order.
//
// # Numbers
//
// NumberEncoder stores each *big.Int as a uvarint length followed by its big-endian
// magnitude, so numbers of any size share one payload.
//
// # Example
//
//	encoder, err := encoding.NewPrefixEncoder(format.TypeDelta, endian.GetLittleEndianEngine())
//	if err != nil {
//	    return err
//	}
//	defer encoder.Finish()
//
//	encoder.Write(prefix.Prefix{0, 1, 5})
//	data := bytes.Clone(encoder.Bytes())
//
//	decoder, _ := encoding.NewPrefixDecoder(format.TypeDelta, endian.GetLittleEndianEngine())
//	for pf := range decoder.All(data, 1) {
//	    fmt.Println(pf) // [0 1 5]
//	}
//
// Encoders are not safe for concurrent use; decoders are stateless.
package encoding
