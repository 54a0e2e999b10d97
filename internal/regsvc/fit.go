package regsvc

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Model is a fitted line y = Coefficient*x + Intercept with its training
// metrics.
type Model struct {
	Coefficient float64 `json:"coefficient"`
	Intercept   float64 `json:"intercept"`
	R2          float64 `json:"r2_score"`
	MSE         float64 `json:"mse"`
}

// Predict evaluates the model at each x.
func (m *Model) Predict(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = m.Coefficient*x + m.Intercept
	}
	return ys
}

// Fit finds the least-squares line through (xs[i], ys[i]).
//
// The slices must have the same nonzero length. If every x is the same,
// the line is horizontal through the mean of ys.
func Fit(xs, ys []float64) *Model {
	m := &Model{}

	if stat.Variance(xs, nil) > 0 {
		m.Intercept, m.Coefficient = stat.LinearRegression(xs, ys, nil, false)
	} else {
		m.Intercept = stat.Mean(ys, nil)
	}

	var ssRes, ssTot float64
	meanY := stat.Mean(ys, nil)
	for i, x := range xs {
		residual := ys[i] - (m.Coefficient*x + m.Intercept)
		ssRes += residual * residual
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	m.MSE = ssRes / float64(len(xs))
	switch {
	case ssTot > 0:
		m.R2 = 1 - ssRes/ssTot
	case ssRes == 0:
		m.R2 = 1
	default:
		m.R2 = 0
	}
	return m
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
