package table

import (
	"bytes"
	"fmt"
	"iter"
	"math/big"
	"sort"

	"github.com/arloliu/ecf/compress"
	"github.com/arloliu/ecf/encoding"
	"github.com/arloliu/ecf/endian"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/internal/hash"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/section"
)

// Table is a decoded, read-only ECF table.
//
// Table is safe for concurrent reads.
type Table struct {
	data      []byte
	header    section.TableHeader
	engine    endian.EndianEngine
	entries   []section.IndexEntry // sorted by ID
	numbers   []byte               // decompressed number payload
	prefixes  []byte               // decompressed prefix payload
	numDec    encoding.NumberDecoder
	pfDecoder encoding.ColumnarDecoder[prefix.Prefix]
}

// Decode parses and validates an encoded table.
//
// The header, the section layout and every record are checked, so lookups on the
// returned table never meet malformed payloads. data is retained, not copied.
//
// Parameters:
//   - data: Encoded table bytes, as returned by Table.Bytes
//
// Returns:
//   - *Table: Decoded table
//   - error: Header, index, payload or decompression errors
func Decode(data []byte) (*Table, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}
	if err := header.ValidateLayout(len(data)); err != nil {
		return nil, err
	}

	t := &Table{
		data:   data,
		header: header,
		engine: header.Flag.GetEndianEngine(),
		numDec: encoding.NewNumberDecoder(),
	}

	t.pfDecoder, err = encoding.NewPrefixDecoder(header.Flag.PrefixEncoding(), t.engine)
	if err != nil {
		return nil, err
	}

	if err := t.decompressPayloads(); err != nil {
		return nil, err
	}

	if err := t.parseIndexEntries(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) decompressPayloads() error {
	codec, err := compress.GetCodec(t.header.Flag.Compression())
	if err != nil {
		return err
	}

	numSection := t.data[t.header.NumberPayloadOffset:t.header.PrefixPayloadOffset]
	pfSection := t.data[t.header.PrefixPayloadOffset:t.header.TableSize]

	t.numbers, err = codec.Decompress(numSection)
	if err != nil {
		return fmt.Errorf("%w: number payload: %w", errs.ErrInvalidPayload, err)
	}
	t.prefixes, err = codec.Decompress(pfSection)
	if err != nil {
		return fmt.Errorf("%w: prefix payload: %w", errs.ErrInvalidPayload, err)
	}

	return nil
}

func (t *Table) parseIndexEntries() error {
	count := int(t.header.Count)
	t.entries = make([]section.IndexEntry, count)

	offset := int(t.header.IndexOffset)
	for i := range count {
		entry, err := section.ParseIndexEntry(t.data[offset:], t.engine)
		if err != nil {
			return err
		}
		offset += section.IndexEntrySize

		if i > 0 && entry.ID < t.entries[i-1].ID {
			return fmt.Errorf("%w: entry %d is not sorted by id", errs.ErrInvalidIndex, i)
		}

		mag, _, err := t.numDec.MagnitudeAt(t.numbers, int(entry.NumberOffset))
		if err != nil {
			return fmt.Errorf("%w: entry %d: %w", errs.ErrInvalidIndex, i, err)
		}
		if hash.ID(mag) != entry.ID {
			return fmt.Errorf("%w: entry %d id does not match its number", errs.ErrInvalidIndex, i)
		}
		if _, _, err := t.pfDecoder.DecodeAt(t.prefixes, int(entry.PrefixOffset)); err != nil {
			return fmt.Errorf("%w: entry %d: %w", errs.ErrInvalidIndex, i, err)
		}

		t.entries[i] = entry
	}

	return nil
}

// Bytes returns the encoded table. The slice must not be modified.
func (t *Table) Bytes() []byte {
	return t.data
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.entries)
}

// Header returns the parsed table header.
func (t *Table) Header() section.TableHeader {
	return t.header
}

// Encoding returns the prefix payload encoding.
func (t *Table) Encoding() format.EncodingType {
	return t.header.Flag.PrefixEncoding()
}

// Compression returns the payload compression.
func (t *Table) Compression() format.CompressionType {
	return t.header.Flag.Compression()
}

// Engine returns the tree engine the records were computed with.
func (t *Table) Engine() format.EngineType {
	return t.header.Flag.Engine()
}

// Strategy returns the assembly strategy the records were computed with.
func (t *Table) Strategy() format.StrategyType {
	return t.header.Flag.Strategy()
}

// Lookup returns the stored ECF of n.
//
// The index is binary searched by ID; numbers sharing an ID are told apart by
// comparing their stored magnitudes.
func (t *Table) Lookup(n *big.Int) (prefix.Prefix, bool) {
	if n.Sign() < 1 {
		return nil, false
	}

	mag := n.Bytes()
	id := hash.ID(mag)
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].ID >= id
	})

	for ; i < len(t.entries) && t.entries[i].ID == id; i++ {
		stored, _, err := t.numDec.MagnitudeAt(t.numbers, int(t.entries[i].NumberOffset))
		if err != nil || !bytes.Equal(stored, mag) {
			continue
		}

		pf, _, err := t.pfDecoder.DecodeAt(t.prefixes, int(t.entries[i].PrefixOffset))
		if err != nil {
			return nil, false
		}

		return pf, true
	}

	return nil, false
}

// All returns an iterator over every (number, ECF) record in insertion order.
func (t *Table) All() iter.Seq2[*big.Int, prefix.Prefix] {
	return func(yield func(*big.Int, prefix.Prefix) bool) {
		numOffset, pfOffset := 0, 0
		for range t.entries {
			n, nl, err := t.numDec.DecodeAt(t.numbers, numOffset)
			if err != nil {
				return
			}
			pf, pl, err := t.pfDecoder.DecodeAt(t.prefixes, pfOffset)
			if err != nil {
				return
			}
			numOffset += nl
			pfOffset += pl

			if !yield(n, pf) {
				return
			}
		}
	}
}

// Numbers returns the stored numbers in insertion order.
func (t *Table) Numbers() []*big.Int {
	numbers := make([]*big.Int, 0, len(t.entries))
	for n := range t.numDec.All(t.numbers, len(t.entries)) {
		numbers = append(numbers, n)
	}

	return numbers
}
