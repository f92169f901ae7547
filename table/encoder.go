package table

import (
	"fmt"
	"math/big"
	"slices"

	"github.com/arloliu/ecf/assemble"
	"github.com/arloliu/ecf/collatz"
	"github.com/arloliu/ecf/compress"
	"github.com/arloliu/ecf/encoding"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/internal/collision"
	"github.com/arloliu/ecf/internal/hash"
	"github.com/arloliu/ecf/internal/options"
	"github.com/arloliu/ecf/internal/pool"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/section"
	"github.com/arloliu/ecf/tree"
)

// Encoder collects (number, ECF) records and finishes them into a Table.
//
// Numbers passed to Add have their ECF computed with the configured engine and
// strategy; AddPrefix stores a form computed elsewhere after checking it.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Finish, a new encoder must be created for further encoding.
type Encoder struct {
	*EncoderConfig

	assembler  assemble.Assembler
	numEncoder *encoding.NumberEncoder
	pfEncoder  encoding.ColumnarEncoder[prefix.Prefix]
	codec      compress.Codec
	tracker    *collision.Tracker
	entries    []section.IndexEntry
	finished   bool
}

// NewEncoder creates a table encoder.
//
// Parameters:
//   - opts: Optional configuration (endianness, prefix encoding, compression, engine, strategy, logger)
//
// Returns:
//   - *Encoder: New encoder ready for Add and AddPrefix
//   - error: Configuration error if invalid options provided
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	flag := config.header.Flag
	engine, err := tree.GetEngine(flag.Engine())
	if err != nil {
		return nil, err
	}

	assembler, err := assemble.New(flag.Strategy(), engine,
		assemble.WithLogger(config.logger),
		assemble.WithMaxSteps(config.maxSteps),
	)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(flag.Compression(), "table payload")
	if err != nil {
		return nil, err
	}

	pfEncoder, err := encoding.NewPrefixEncoder(flag.PrefixEncoding(), config.engine)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		assembler:     assembler,
		numEncoder:    encoding.NewNumberEncoder(),
		pfEncoder:     pfEncoder,
		codec:         codec,
		tracker:       collision.NewTracker(),
		entries:       make([]section.IndexEntry, 0, initialIndexCapacity),
	}, nil
}

// Len returns the number of records added so far.
func (e *Encoder) Len() int {
	return len(e.entries)
}

// Add computes ECF(n) and records it.
//
// Returns:
//   - error: errs.ErrTableFinished, errs.ErrDuplicateNumber, errs.ErrTooManyRecords,
//     or the assembler error for n < 1 or an exceeded step limit
func (e *Encoder) Add(n *big.Int) error {
	if err := e.checkWritable(); err != nil {
		return err
	}

	pf, err := e.assembler.Assemble(n)
	if err != nil {
		return fmt.Errorf("failed to compute ecf of %s: %w", n, err)
	}

	return e.add(n, pf)
}

// AddPrefix records a precomputed ECF for n.
//
// The form must be exactly the ECF of n: strictly ascending, reducing n to 1 and
// passing through no earlier 1.
//
// Returns:
//   - error: errs.ErrNotCanonical if pf is not the ECF of n, or the errors of Add
func (e *Encoder) AddPrefix(n *big.Int, pf prefix.Prefix) error {
	if err := e.checkWritable(); err != nil {
		return err
	}
	if n.Sign() < 1 {
		return fmt.Errorf("%w: got %s", errs.ErrNotPositive, n)
	}

	m, err := collatz.ECFToN(pf)
	if err != nil {
		return err
	}
	if m.Cmp(n) != 0 {
		return fmt.Errorf("%w: %s belongs to %s, not %s", errs.ErrNotCanonical, pf, m, n)
	}

	return e.add(n, pf)
}

func (e *Encoder) checkWritable() error {
	if e.finished {
		return errs.ErrTableFinished
	}
	if len(e.entries) >= section.MaxRecordCount {
		return fmt.Errorf("%w: limit is %d", errs.ErrTooManyRecords, section.MaxRecordCount)
	}

	return nil
}

func (e *Encoder) add(n *big.Int, pf prefix.Prefix) error {
	id := hash.NumberID(n)
	if err := e.tracker.Track(id, n); err != nil {
		return err
	}

	entry := section.NewIndexEntry(id,
		uint32(e.numEncoder.Size()), //nolint: gosec
		uint32(e.pfEncoder.Size()),  //nolint: gosec
	)
	e.entries = append(e.entries, entry)
	e.numEncoder.Write(n)
	e.pfEncoder.Write(pf)

	e.logger.Debug("record added", "number", n, "ecf", pf, "id", id)

	return nil
}

// Finish assembles the records into a table and releases the encoder's buffers.
//
// Index entries are sorted by ID. Records whose numbers share an ID keep their
// insertion order, and both payloads stay in insertion order.
//
// Returns:
//   - *Table: The finished table, backed by a freshly allocated byte slice
//   - error: errs.ErrTableFinished if called twice, or compression errors
func (e *Encoder) Finish() (*Table, error) {
	if e.finished {
		return nil, errs.ErrTableFinished
	}
	e.finished = true

	// Finish encoders regardless of error to release resources
	defer e.numEncoder.Finish()
	defer e.pfEncoder.Finish()

	finalHeader := *e.header
	finalHeader.Count = uint32(len(e.entries)) //nolint: gosec

	numPayload, err := e.codec.Compress(e.numEncoder.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress number payload: %w", err)
	}
	pfPayload, err := e.codec.Compress(e.pfEncoder.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to compress prefix payload: %w", err)
	}

	indexSize := section.IndexEntrySize * len(e.entries)
	finalHeader.NumberPayloadOffset = finalHeader.IndexOffset + uint32(indexSize)               //nolint: gosec
	finalHeader.PrefixPayloadOffset = finalHeader.NumberPayloadOffset + uint32(len(numPayload)) //nolint: gosec
	finalHeader.TableSize = finalHeader.PrefixPayloadOffset + uint32(len(pfPayload))            //nolint: gosec

	slices.SortStableFunc(e.entries, func(a, b section.IndexEntry) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	buf := pool.GetTableBuffer()
	defer pool.PutTableBuffer(buf)

	buf.Grow(int(finalHeader.TableSize))
	buf.MustWrite(finalHeader.Bytes())

	index := make([]byte, indexSize)
	offset := 0
	for i := range e.entries {
		offset = e.entries[i].WriteToSlice(index, offset, e.engine)
	}
	buf.MustWrite(index)
	buf.MustWrite(numPayload)
	buf.MustWrite(pfPayload)

	data := slices.Clone(buf.Bytes())

	e.logger.Debug("table finished",
		"records", finalHeader.Count,
		"bytes", len(data),
		"collisions", e.tracker.HasCollision(),
		"compression", finalHeader.Flag.Compression(),
	)

	return Decode(data)
}
