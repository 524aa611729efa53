// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"strconv"
	"strings"

	"unitcalc/enumerable"
)

// DOT separates the factors of a generated symbol.
const DOT = "·"

// formatFactors joins positive powers with DOT and puts the negative ones
// after a single "/", e.g. "kg·m/s^2". Without any positive power the
// signed form is used instead: "s^-1".
func formatFactors(factors []*Factor) string {
	numerator := enumerable.Filter(factors, func(f *Factor) bool { return f.power > 0 })
	denominator := enumerable.Filter(factors, func(f *Factor) bool { return f.power < 0 })

	if len(numerator) == 0 {
		return strings.Join(enumerable.Map(denominator, (*Factor).String), DOT)
	}

	result := strings.Join(enumerable.Map(numerator, (*Factor).absSymbol), DOT)
	if len(denominator) > 0 {
		result += "/" + strings.Join(enumerable.Map(denominator, (*Factor).absSymbol), DOT)
	}
	return result
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'g', -1, 64)
}
