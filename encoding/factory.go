package encoding

import (
	"fmt"

	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/prefix"
)

// NewPrefixEncoder creates the prefix encoder for the given encoding type.
//
// Parameters:
//   - enc: Prefix encoding (TypeRaw or TypeDelta)
//   - engine: Byte order, used by TypeRaw only
//
// Returns:
//   - ColumnarEncoder[prefix.Prefix]: Encoder with a pooled buffer; call Finish when done
//   - error: errs.ErrInvalidEncoding for an unknown type
func NewPrefixEncoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarEncoder[prefix.Prefix], error) {
	switch enc {
	case format.TypeRaw:
		return NewPrefixRawEncoder(engine), nil
	case format.TypeDelta:
		return NewPrefixDeltaEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEncoding, enc)
	}
}

// NewPrefixDecoder creates the prefix decoder for the given encoding type.
func NewPrefixDecoder(enc format.EncodingType, engine endian.EndianEngine) (ColumnarDecoder[prefix.Prefix], error) {
	switch enc {
	case format.TypeRaw:
		return NewPrefixRawDecoder(engine), nil
	case format.TypeDelta:
		return NewPrefixDeltaDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidEncoding, enc)
	}
}
