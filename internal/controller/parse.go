package controller

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingNumber matches the longest decimal literal at the start of a token.
var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseValues parses a comma-separated list of numbers.
//
// Each token is trimmed and read up to the first character that cannot
// continue a number, so "3kg" is 3. Tokens that do not start with a number,
// and numbers that are not finite, are dropped without error.
func ParseValues(input string) []float64 {
	values := make([]float64, 0)

	for _, token := range strings.Split(input, ",") {
		literal := leadingNumber.FindString(strings.TrimSpace(token))
		if literal == "" {
			continue
		}

		value, err := strconv.ParseFloat(literal, 64)
		if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
			continue
		}
		values = append(values, value)
	}

	return values
}
