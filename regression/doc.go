// Package regression estimates ECF table sizes through regression analysis of
// encoded tables.
//
// A table carries a fixed 32-byte header, a 16-byte index entry per record and the
// record payloads, so the bytes spent per record (BPR) fall as the number of records
// per table (RPT) grows. Analyze re-encodes the records of existing tables in chunks of
// several sizes, measures BPR for each size and fits candidate models to the
// (RPT, BPR) points:
//
//   - Hyperbolic:  BPR = a + b / RPT
//   - Logarithmic: BPR = a + b * ln(RPT)
//   - Power:       BPR = a * RPT^b
//   - Linear:      BPR = a + b * RPT
//
// Models are ranked by R². For uncompressed tables the hyperbolic model is exact: b is
// the header size and a is the average index and payload cost of a record.
//
// # Usage
//
//	result, err := regression.Analyze(tables, regression.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	bpr := result.BestFit.Estimate(500) // bytes per record in a 500-record table
//	fmt.Println(result.BestFit.Formula)
//
// A fitted model can be stored as its type name and coefficients and rebuilt later with
// NewModel.
package regression
