package controller_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wandb/regviz/internal/controller"
)

func TestParseValues(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		values []float64
	}{
		{"plain list", "1,2,3", []float64{1, 2, 3}},
		{"drops non-numeric", "1,abc,3", []float64{1, 3}},
		{"trims whitespace", " 1 ,\t2.5 , 3 ", []float64{1, 2.5, 3}},
		{"empty", "", []float64{}},
		{"only separators", ",,", []float64{}},
		{"leading number", "3kg,4.5.6,7e", []float64{3, 4.5, 7}},
		{"signs and fractions", "-1,+2,.5,-.25,5.", []float64{-1, 2, 0.5, -0.25, 5}},
		{"exponent", "1e3,2E-1", []float64{1000, 0.2}},
		{"hex reads leading zero", "0x10", []float64{0}},
		{"drops non-finite", "1e999,Infinity,NaN,4", []float64{4}},
		{"inner space stops", "1 2", []float64{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.values, controller.ParseValues(tc.input))
		})
	}
}
