package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeHyperbolic represents the hyperbolic model: BPR = a + b / RPT
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic represents the logarithmic model: BPR = a + b * ln(RPT)
	ModelTypeLogarithmic
	// ModelTypePower represents the power model: BPR = a * RPT^b
	ModelTypePower
	// ModelTypeLinear represents the linear model: BPR = a + b * RPT
	ModelTypeLinear
)

var modelTypeNames = map[ModelType]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeLinear:      "linear",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, ok := modelTypeNames[mt]; ok {
		return name
	}

	return "unknown"
}

// ModelTypeFromString returns the ModelType for a case-insensitive name.
func ModelTypeFromString(name string) (ModelType, bool) {
	for mt, n := range modelTypeNames {
		if strings.EqualFold(n, name) {
			return mt, true
		}
	}

	return 0, false
}

// Model is a fitted regression model.
type Model struct {
	// Type is the model type.
	Type ModelType
	// Coefficients holds a and b of the model formula.
	Coefficients []float64
	// RSquared is the coefficient of determination (goodness of fit, at most 1).
	RSquared float64
	// RMSE is the root mean square error, in bytes per record.
	RMSE float64
	// Formula is a human-readable representation of the model.
	Formula string
}

// NewModel rebuilds a model from its type name and coefficients, for example ones
// persisted from an earlier analysis. RSquared and RMSE are left zero.
func NewModel(name string, coeffs []float64) (*Model, error) {
	mt, ok := ModelTypeFromString(name)
	if !ok {
		names := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			names = append(names, n)
		}
		slices.Sort(names)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(names, ", "))
	}
	if len(coeffs) != 2 {
		return nil, fmt.Errorf("%s model expects exactly 2 coefficients, got %d", mt, len(coeffs))
	}

	m := &Model{Type: mt, Coefficients: slices.Clone(coeffs)}
	m.Formula = m.formula()

	return m, nil
}

// Estimate returns the predicted bytes per record for tables of rpt records.
// It returns +Inf for rpt <= 0.
func (m *Model) Estimate(rpt float64) float64 {
	if rpt <= 0 {
		return math.Inf(1)
	}

	a, b := m.Coefficients[0], m.Coefficients[1]
	switch m.Type {
	case ModelTypeHyperbolic:
		return a + b/rpt
	case ModelTypeLogarithmic:
		return a + b*math.Log(rpt)
	case ModelTypePower:
		return a * math.Pow(rpt, b)
	case ModelTypeLinear:
		return a + b*rpt
	default:
		return math.NaN()
	}
}

// EstimateTableSize returns the predicted size in bytes of a table of records records.
func (m *Model) EstimateTableSize(records int) float64 {
	if records <= 0 {
		return 0
	}

	return m.Estimate(float64(records)) * float64(records)
}

func (m *Model) formula() string {
	a, b := m.Coefficients[0], m.Coefficients[1]
	switch m.Type {
	case ModelTypeHyperbolic:
		return fmt.Sprintf("BPR = %.2f + %.2f / RPT", a, b)
	case ModelTypeLogarithmic:
		return fmt.Sprintf("BPR = %.2f + %.2f * ln(RPT)", a, b)
	case ModelTypePower:
		return fmt.Sprintf("BPR = %.2f * RPT^%.3f", a, b)
	case ModelTypeLinear:
		return fmt.Sprintf("BPR = %.2f + %.4f * RPT", a, b)
	default:
		return "unknown"
	}
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result represents the result of a regression analysis.
type Result struct {
	// BestFit is the best-fit model (highest R²).
	BestFit *Model
	// AllModels contains all candidate models ranked by R² (best first).
	AllModels []*Model
	// ChunkSizes holds the records-per-table sizes measured to build the (RPT, BPR) points.
	ChunkSizes []int
	// BytesPerRecord holds the measured BPR for each entry of ChunkSizes.
	BytesPerRecord []float64
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d}", r.BestFit, len(r.AllModels))
}
