package table

import (
	"bytes"
	"log/slog"
	"math/big"
	"testing"

	"github.com/arloliu/ecf/collatz"
	"github.com/arloliu/ecf/errs"
	"github.com/arloliu/ecf/format"
	"github.com/arloliu/ecf/internal/options"
	"github.com/arloliu/ecf/prefix"
	"github.com/arloliu/ecf/section"
	"github.com/stretchr/testify/require"
)

func buildTable(t *testing.T, count int64, opts ...EncoderOption) *Table {
	t.Helper()

	enc, err := NewEncoder(opts...)
	require.NoError(t, err)
	for i := int64(1); i <= count; i++ {
		require.NoError(t, enc.Add(big.NewInt(i)))
	}
	require.Equal(t, int(count), enc.Len())

	tbl, err := enc.Finish()
	require.NoError(t, err)

	return tbl
}

func requireMatchesOracle(t *testing.T, tbl *Table, count int64) {
	t.Helper()

	require.Equal(t, int(count), tbl.Len())
	for i := int64(1); i <= count; i++ {
		n := big.NewInt(i)
		want, err := collatz.ECF(n)
		require.NoError(t, err)

		got, ok := tbl.Lookup(n)
		require.True(t, ok, "lookup %d", i)
		require.Equal(t, want, got, "ecf of %d", i)
	}
}

func TestTable_RoundTrip(t *testing.T) {
	encodings := []format.EncodingType{format.TypeRaw, format.TypeDelta}
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	endians := map[string]EncoderOption{
		"little": WithLittleEndian(),
		"big":    WithBigEndian(),
	}

	const count = 150
	for _, enc := range encodings {
		for _, comp := range compressions {
			for name, order := range endians {
				t.Run(enc.String()+"/"+comp.String()+"/"+name, func(t *testing.T) {
					tbl := buildTable(t, count, WithPrefixEncoding(enc), WithCompression(comp), order)
					require.Equal(t, enc, tbl.Encoding())
					require.Equal(t, comp, tbl.Compression())
					require.Equal(t, name == "big", tbl.Header().Flag.IsBigEndian())
					requireMatchesOracle(t, tbl, count)

					decoded, err := Decode(bytes.Clone(tbl.Bytes()))
					require.NoError(t, err)
					require.Equal(t, tbl.Header(), decoded.Header())
					requireMatchesOracle(t, decoded, count)
				})
			}
		}
	}
}

func TestTable_EnginesAndStrategies(t *testing.T) {
	for _, engine := range []format.EngineType{format.EngineRIP, format.EnginePIP} {
		for _, strategy := range []format.StrategyType{format.StrategyPrefix, format.StrategyPath} {
			t.Run(engine.String()+"/"+strategy.String(), func(t *testing.T) {
				tbl := buildTable(t, 60, WithEngine(engine), WithStrategy(strategy))
				require.Equal(t, engine, tbl.Engine())
				require.Equal(t, strategy, tbl.Strategy())
				requireMatchesOracle(t, tbl, 60)
			})
		}
	}
}

func TestTable_AllInInsertionOrder(t *testing.T) {
	inputs := []int64{27, 3, 1000, 1, 7, 64}

	enc, err := NewEncoder(WithCompression(format.CompressionS2))
	require.NoError(t, err)
	for _, v := range inputs {
		require.NoError(t, enc.Add(big.NewInt(v)))
	}
	tbl, err := enc.Finish()
	require.NoError(t, err)

	i := 0
	for n, pf := range tbl.All() {
		require.Equal(t, inputs[i], n.Int64())
		want, err := collatz.ECF(n)
		require.NoError(t, err)
		require.Equal(t, want, pf)
		i++
	}
	require.Equal(t, len(inputs), i)

	numbers := tbl.Numbers()
	require.Len(t, numbers, len(inputs))
	for i, n := range numbers {
		require.Equal(t, inputs[i], n.Int64())
	}

	// early break
	seen := 0
	for range tbl.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)
}

func TestTable_LargeNumber(t *testing.T) {
	n, ok := new(big.Int).SetString("340282366920938463463374607431768211463", 10) // 2^128 + 7
	require.True(t, ok)

	enc, err := NewEncoder(WithCompression(format.CompressionZstd), WithPrefixEncoding(format.TypeRaw))
	require.NoError(t, err)
	require.NoError(t, enc.Add(n))
	tbl, err := enc.Finish()
	require.NoError(t, err)

	want, err := collatz.ECF(n)
	require.NoError(t, err)
	got, ok := tbl.Lookup(n)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestTable_LookupMissing(t *testing.T) {
	tbl := buildTable(t, 20)

	for _, v := range []int64{21, 1000, 0, -5} {
		pf, ok := tbl.Lookup(big.NewInt(v))
		require.False(t, ok, "lookup %d", v)
		require.Nil(t, pf)
	}
}

func TestTable_Empty(t *testing.T) {
	for _, comp := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionLZ4} {
		t.Run(comp.String(), func(t *testing.T) {
			enc, err := NewEncoder(WithCompression(comp))
			require.NoError(t, err)
			tbl, err := enc.Finish()
			require.NoError(t, err)

			require.Equal(t, 0, tbl.Len())
			require.Len(t, tbl.Bytes(), section.HeaderSize)
			_, ok := tbl.Lookup(big.NewInt(1))
			require.False(t, ok)
			for range tbl.All() {
				t.Fatal("empty table yielded a record")
			}
			require.Empty(t, tbl.Numbers())
		})
	}
}

func TestEncoder_AddPrefix(t *testing.T) {
	enc, err := NewEncoder()
	require.NoError(t, err)

	require.NoError(t, enc.AddPrefix(big.NewInt(3), prefix.Prefix{0, 1, 5}))
	require.NoError(t, enc.AddPrefix(big.NewInt(16), prefix.Prefix{4}))

	tests := []struct {
		name string
		n    int64
		pf   prefix.Prefix
		err  error
	}{
		{"zero", 0, prefix.Prefix{0}, errs.ErrNotPositive},
		{"other number", 5, prefix.Prefix{0, 1, 5}, errs.ErrNotCanonical},
		{"passes through one", 1, prefix.Prefix{0, 2}, errs.ErrNotCanonical},
		{"unsorted", 7, prefix.Prefix{1, 0}, errs.ErrNotCanonical},
		{"empty", 7, prefix.Prefix{}, errs.ErrNotCanonical},
		{"duplicate", 3, prefix.Prefix{0, 1, 5}, errs.ErrDuplicateNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, enc.AddPrefix(big.NewInt(tt.n), tt.pf), tt.err)
		})
	}

	tbl, err := enc.Finish()
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	got, ok := tbl.Lookup(big.NewInt(3))
	require.True(t, ok)
	require.Equal(t, prefix.Prefix{0, 1, 5}, got)
}

func TestEncoder_Errors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		require.NoError(t, enc.Add(big.NewInt(5)))
		require.ErrorIs(t, enc.Add(big.NewInt(5)), errs.ErrDuplicateNumber)
		require.ErrorIs(t, enc.AddPrefix(big.NewInt(5), prefix.Prefix{0, 4}), errs.ErrDuplicateNumber)
		require.Equal(t, 1, enc.Len())
	})

	t.Run("not positive", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		require.ErrorIs(t, enc.Add(big.NewInt(0)), errs.ErrPathUndefined)
	})

	t.Run("finished", func(t *testing.T) {
		enc, err := NewEncoder()
		require.NoError(t, err)
		require.NoError(t, enc.Add(big.NewInt(2)))
		_, err = enc.Finish()
		require.NoError(t, err)

		_, err = enc.Finish()
		require.ErrorIs(t, err, errs.ErrTableFinished)
		require.ErrorIs(t, enc.Add(big.NewInt(3)), errs.ErrTableFinished)
		require.ErrorIs(t, enc.AddPrefix(big.NewInt(3), prefix.Prefix{0, 1, 5}), errs.ErrTableFinished)
	})

	t.Run("step limit", func(t *testing.T) {
		enc, err := NewEncoder(WithEngine(format.EngineRIP), WithMaxSteps(2))
		require.NoError(t, err)
		require.ErrorIs(t, enc.Add(big.NewInt(27)), errs.ErrStepLimitExceeded)
		require.Equal(t, 0, enc.Len())
	})
}

func TestEncoderOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  EncoderOption
	}{
		{"encoding", WithPrefixEncoding(format.EncodingType(99))},
		{"compression", WithCompression(format.CompressionType(99))},
		{"engine", WithEngine(format.EngineType(99))},
		{"strategy", WithStrategy(format.StrategyType(99))},
		{"max steps", WithMaxSteps(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncoder(tt.opt)
			require.Error(t, err)
		})
	}

	cfg := NewEncoderConfig()
	require.NoError(t, options.Apply(cfg, WithBigEndian(), WithNativeEndian(), WithLogger(nil)))
	require.NotNil(t, cfg.Logger())
	require.Equal(t, cfg.Header().Flag.GetEndianEngine(), cfg.engine)
}

func TestEncoder_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	enc, err := NewEncoder(WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, enc.Add(big.NewInt(3)))
	_, err = enc.Finish()
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "record added")
	require.Contains(t, out, `ecf="[0 1 5]"`)
	require.Contains(t, out, "prefix consumed")
	require.Contains(t, out, "table finished")
	require.Contains(t, out, "records=1")
}

func TestDecode_Corrupt(t *testing.T) {
	tbl := buildTable(t, 30, WithCompression(format.CompressionZstd))
	good := tbl.Bytes()
	header := tbl.Header()

	tests := []struct {
		name   string
		mutate func(data []byte) []byte
		err    error
	}{
		{"short", func(data []byte) []byte { return data[:section.HeaderSize-1] }, errs.ErrInvalidHeaderSize},
		{"truncated", func(data []byte) []byte { return data[:len(data)-1] }, errs.ErrInvalidHeaderSize},
		{"magic", func(data []byte) []byte { data[1] = 0x00; return data }, errs.ErrInvalidMagicNumber},
		{"compression", func(data []byte) []byte { data[3] = 42; return data }, errs.ErrInvalidCompression},
		{"index id", func(data []byte) []byte {
			data[section.HeaderSize] ^= 0xFF
			return data
		}, errs.ErrInvalidIndex},
		{"number payload", func(data []byte) []byte {
			for i := header.NumberPayloadOffset; i < header.PrefixPayloadOffset; i++ {
				data[i] = 0xFF
			}
			return data
		}, errs.ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mutate(bytes.Clone(good)))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecode_IndexOffsetsOutOfRange(t *testing.T) {
	tbl := buildTable(t, 5)
	data := bytes.Clone(tbl.Bytes())
	engine := tbl.Header().Flag.GetEndianEngine()

	// point the first entry's prefix offset past the prefix payload
	entry, err := section.ParseIndexEntry(data[section.HeaderSize:], engine)
	require.NoError(t, err)
	entry.PrefixOffset = 1 << 20
	entry.WriteToSlice(data, section.HeaderSize, engine)

	_, err = Decode(data)
	require.ErrorIs(t, err, errs.ErrInvalidIndex)
}
