// Package table stores computed ECFs in a compact, self-describing binary table.
//
// An Encoder collects (number, ECF) records, either computing each form with a tree
// engine and assembly strategy or accepting a precomputed one, and finishes them into a
// Table. A Table can be written anywhere as raw bytes and decoded later with Decode.
//
// # Basic Usage
//
//	enc, err := table.NewEncoder(
//	    table.WithCompression(format.CompressionZstd),
//	    table.WithEngine(format.EngineRIP),
//	)
//	if err != nil {
//	    return err
//	}
//	for i := int64(1); i <= 1000; i++ {
//	    if err := enc.Add(big.NewInt(i)); err != nil {
//	        return err
//	    }
//	}
//	tbl, err := enc.Finish()
//
//	// later
//	tbl, err = table.Decode(data)
//	ecf, ok := tbl.Lookup(big.NewInt(27))
//
// # Layout
//
// The byte layout is defined by package section. Numbers are stored as length-prefixed
// magnitudes and ECFs with the configured prefix encoding; both payloads are compressed
// with the same codec. Index entries are sorted by the xxHash64 of each number, so
// Lookup is a binary search followed by a magnitude comparison that resolves hash
// collisions.
package table
