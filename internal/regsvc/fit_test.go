package regsvc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/regviz/internal/regsvc"
)

func TestFit_PerfectLine(t *testing.T) {
	m := regsvc.Fit([]float64{1, 2, 3}, []float64{2, 4, 6})

	assert.InDelta(t, 2, m.Coefficient, 1e-9)
	assert.InDelta(t, 0, m.Intercept, 1e-9)
	assert.InDelta(t, 1, m.R2, 1e-9)
	assert.InDelta(t, 0, m.MSE, 1e-9)
}

func TestFit_Noisy(t *testing.T) {
	m := regsvc.Fit([]float64{0, 1, 2, 3}, []float64{1.5, 1.5, 3.5, 3.5})

	assert.InDelta(t, 0.8, m.Coefficient, 1e-9)
	assert.InDelta(t, 1.3, m.Intercept, 1e-9)
	assert.InDelta(t, 0.2, m.MSE, 1e-9)
	assert.InDelta(t, 0.8, m.R2, 1e-9)
}

func TestFit_ConstantX(t *testing.T) {
	m := regsvc.Fit([]float64{2, 2, 2}, []float64{1, 2, 3})

	assert.Zero(t, m.Coefficient)
	assert.InDelta(t, 2, m.Intercept, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.MSE, 1e-9)
	assert.Zero(t, m.R2)
}

func TestFit_ConstantY(t *testing.T) {
	m := regsvc.Fit([]float64{1, 2, 3}, []float64{5, 5, 5})

	assert.InDelta(t, 0, m.Coefficient, 1e-9)
	assert.InDelta(t, 5, m.Intercept, 1e-9)
	assert.Equal(t, 1.0, m.R2)
}

func TestModel_Predict(t *testing.T) {
	m := &regsvc.Model{Coefficient: 2, Intercept: 1}
	assert.Equal(t, []float64{1, 11, -3}, m.Predict([]float64{0, 5, -2}))
}
