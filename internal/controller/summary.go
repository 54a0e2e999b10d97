package controller

import (
	"fmt"
	"strconv"
	"strings"
)

// fixed formats v with n decimals, without a negative zero.
func fixed(v float64, n int) string {
	return strconv.FormatFloat(v+0, 'f', n, 64)
}

// Summary describes the trained model, one field per line.
func (r *TrainResult) Summary() string {
	m := r.Metrics
	lines := []string{
		"Coefficient: " + fixed(m.Coefficient, 4),
		"Intercept: " + fixed(m.Intercept, 4),
		"R² Score: " + fixed(m.R2, 4),
		"MSE: " + fixed(m.MSE, 4),
		fmt.Sprintf("Equation: y = %sx + %s",
			fixed(m.Coefficient, 4), fixed(m.Intercept, 4)),
	}
	return strings.Join(lines, "\n")
}

// Summary lists each prediction on its own line.
func (r *PredictResult) Summary() string {
	lines := make([]string, len(r.Predictions))
	for i, p := range r.Predictions {
		lines[i] = fmt.Sprintf("₹%sk ad spend → ₹%sL revenue",
			strconv.FormatFloat(p.X, 'f', -1, 64), fixed(p.Y, 2))
	}
	return strings.Join(lines, "\n")
}
