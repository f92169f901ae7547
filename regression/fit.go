package regression

import (
	"fmt"
	"math"
	"slices"
)

var candidateModels = []ModelType{
	ModelTypeHyperbolic,
	ModelTypeLogarithmic,
	ModelTypePower,
	ModelTypeLinear,
}

// performRegression fits every candidate model to the (x, y) points and ranks them by R².
func performRegression(x, y []float64) ([]*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched data lengths: %d RPT vs %d BPR", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("insufficient data points for regression: %d", len(x))
	}

	models := make([]*Model, 0, len(candidateModels))
	for _, mt := range candidateModels {
		models = append(models, fit(mt, x, y))
	}

	slices.SortStableFunc(models, func(a, b *Model) int {
		switch {
		case a.RSquared > b.RSquared:
			return -1
		case a.RSquared < b.RSquared:
			return 1
		default:
			return 0
		}
	})

	return models, nil
}

// fit linearizes the model, solves ordinary least squares on the transformed points and
// scores the result on the original scale.
//
//	hyperbolic:  y = a + b*(1/x)
//	logarithmic: y = a + b*ln(x)
//	power:       ln(y) = ln(a) + b*ln(x)
//	linear:      y = a + b*x
func fit(mt ModelType, x, y []float64) *Model {
	tx := make([]float64, len(x))
	ty := make([]float64, len(y))
	for i := range x {
		tx[i], ty[i] = x[i], y[i]
		switch mt { //nolint: exhaustive
		case ModelTypeHyperbolic:
			tx[i] = 1 / x[i]
		case ModelTypeLogarithmic:
			tx[i] = math.Log(x[i])
		case ModelTypePower:
			tx[i] = math.Log(x[i])
			ty[i] = math.Log(y[i])
		}
	}

	a, b := leastSquares(tx, ty)
	if mt == ModelTypePower {
		a = math.Exp(a)
	}

	m := &Model{Type: mt, Coefficients: []float64{a, b}}
	m.Formula = m.formula()

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = m.Estimate(x[i])
	}
	m.RSquared = rSquared(y, predicted)
	m.RMSE = rmse(y, predicted)

	return m
}

// leastSquares returns the intercept and slope of the least squares line through the
// points. A degenerate x (all equal) gives slope 0 and the mean of y.
func leastSquares(x, y []float64) (a, b float64) {
	n := float64(len(x))
	meanX, meanY := mean(x), mean(y)

	var sxy, sxx float64
	for i := range x {
		dx := x[i] - meanX
		sxy += dx * (y[i] - meanY)
		sxx += dx * dx
	}
	if n == 0 || sxx == 0 {
		return meanY, 0
	}

	b = sxy / sxx

	return meanY - b*meanX, b
}

// rSquared returns 1 - SS_res/SS_tot, or 0 when the observations have no variance.
func rSquared(observed, predicted []float64) float64 {
	m := mean(observed)

	var ssTot, ssRes float64
	for i := range observed {
		ssTot += (observed[i] - m) * (observed[i] - m)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}
	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}

func rmse(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	var sum float64
	for i := range observed {
		d := observed[i] - predicted[i]
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(observed)))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
