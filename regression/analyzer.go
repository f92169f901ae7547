package regression

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/arloliu/ecf/internal/options"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/table"
)

// standardChunkSizes are the records-per-table sizes measured by default.
var standardChunkSizes = []int{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000}

type record struct {
	n  *big.Int
	pf prefix.Prefix
}

// Analyze aggregates the records of all tables and returns a single best-fit model.
//
// Records are re-encoded with the configured encoding and compression in tables of
// each chunk size; a number stored in several tables is measured once.
//
// Parameters:
//   - tables: Decoded tables providing the records
//   - opts: Optional re-encoding configuration
//
// Returns:
//   - *Result: Analysis result with best-fit model and all candidate models
//   - error: Analysis error if any
func Analyze(tables []*table.Table, opts ...AnalyzeOption) (*Result, error) {
	if len(tables) == 0 {
		return nil, errors.New("no tables provided")
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	return analyzeRecords(collectRecords(tables...), cfg)
}

// AnalyzeEach analyzes each table separately and returns per-table results.
//
// This is useful to compare tables holding numbers of very different magnitudes,
// whose payloads grow at different rates.
func AnalyzeEach(tables []*table.Table, opts ...AnalyzeOption) ([]*Result, error) {
	if len(tables) == 0 {
		return nil, errors.New("no tables provided")
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(tables))
	for i, tbl := range tables {
		results[i], err = analyzeRecords(collectRecords(tbl), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze table %d: %w", i, err)
		}
	}

	return results, nil
}

func buildConfig(opts []AnalyzeOption) (AnalyzeConfig, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func collectRecords(tables ...*table.Table) []record {
	seen := make(map[string]struct{})

	var records []record
	for _, tbl := range tables {
		for n, pf := range tbl.All() {
			key := string(n.Bytes())
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			records = append(records, record{n: n, pf: pf})
		}
	}

	return records
}

func analyzeRecords(records []record, cfg AnalyzeConfig) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.New("no records available for analysis")
	}

	sizes := chunkSizes(cfg.ChunkSizes, len(records))
	if len(sizes) < 2 {
		return nil, fmt.Errorf("insufficient chunk sizes for %d records", len(records))
	}

	rpt := make([]float64, len(sizes))
	bpr := make([]float64, len(sizes))
	for i, size := range sizes {
		total, err := encodeChunks(records, size, cfg)
		if err != nil {
			return nil, err
		}
		rpt[i] = float64(size)
		bpr[i] = float64(total) / float64(len(records))
	}

	models, err := performRegression(rpt, bpr)
	if err != nil {
		return nil, err
	}

	return &Result{
		BestFit:        models[0],
		AllModels:      models,
		ChunkSizes:     sizes,
		BytesPerRecord: bpr,
	}, nil
}

// chunkSizes returns the sizes to measure for total records. Without overrides it takes
// the standard sizes up to total and adds total itself when it is well past the last one.
func chunkSizes(override []int, total int) []int {
	candidates := standardChunkSizes
	if len(override) > 0 {
		candidates = override
	}

	var out []int
	for _, s := range candidates {
		if s <= total {
			out = append(out, s)
		}
	}

	if len(override) == 0 && len(out) > 0 {
		last := out[len(out)-1]
		if float64(total)/float64(last) > 1.2 {
			out = append(out, total)
		}
	}

	return out
}

// encodeChunks encodes records in consecutive tables of size records and returns the
// total encoded size.
func encodeChunks(records []record, size int, cfg AnalyzeConfig) (int, error) {
	total := 0
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))

		enc, err := table.NewEncoder(
			table.WithPrefixEncoding(cfg.PrefixEncoding),
			table.WithCompression(cfg.Compression),
		)
		if err != nil {
			return 0, err
		}
		for _, r := range records[start:end] {
			if err := enc.AddPrefix(r.n, r.pf); err != nil {
				return 0, err
			}
		}

		tbl, err := enc.Finish()
		if err != nil {
			return 0, err
		}
		total += len(tbl.Bytes())
	}

	return total, nil
}
