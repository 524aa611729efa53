// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	decimalRe   = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)
	integerRe   = regexp.MustCompile(`^[-+]?0([xX][0-9a-fA-F_]+|[oO][0-7_]+|[bB][01_]+)$`)
	magnitudeRe = regexp.MustCompile(`^([-+]?(\d+\.?\d*|\.\d+))([KMGTPEZY])$`)
)

// binary magnitudes, as in 4K or 1.5G
var MAGNITUDES = map[string]int{
	"K": 10,
	"M": 20,
	"G": 30,
	"T": 40,
	"P": 50,
	"E": 60,
	"Z": 70,
	"Y": 80,
}

// parseNumber accepts decimal floating point numbers, 0x/0o/0b integers,
// decimal numbers with a binary magnitude suffix and base-60 times.
func parseNumber(input string) (float64, bool) {
	switch {
	case decimalRe.MatchString(input):
		f, err := strconv.ParseFloat(input, 64)
		return f, err == nil
	case integerRe.MatchString(input):
		i, err := strconv.ParseInt(input, 0, 64)
		return float64(i), err == nil
	}

	if match := magnitudeRe.FindStringSubmatch(input); match != nil {
		f, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return 0, false
		}
		return math.Ldexp(f, MAGNITUDES[match[3]]), true
	}

	if strings.Contains(input, ":") {
		return parseBase60(input)
	}

	return 0, false
}

// parseBase60 parses m:s as fractional minutes and h:m:s as fractional
// hours. All but the last part must be non-negative integers.
func parseBase60(input string) (float64, bool) {
	parts := strings.Split(input, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	result := 0.0
	scale := 1.0
	for i, part := range parts {
		last := i == len(parts)-1
		if !last && !isNonNegativeInteger(part) {
			return 0, false
		}
		if last && (part == "" || part[0] == '-' || part[0] == '+' || !decimalRe.MatchString(part)) {
			return 0, false
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, false
		}
		result += value / scale
		scale *= 60
	}

	return result, true
}

func isNonNegativeInteger(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// formatNumber rounds to precision decimal places, dropping trailing
// zeros, and optionally groups the integer digits with ','.
func formatNumber(x float64, precision int, group bool) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if abs := math.Abs(x); abs >= 1e21 || (abs != 0 && abs < math.Pow10(-precision)/2) {
		return strconv.FormatFloat(x, 'g', precision+1, 64)
	}

	str := decimal.NewFromFloat(x).Round(int32(precision)).String()
	if str == "-0" {
		str = "0"
	}
	if group {
		str = groupDigits(str)
	}
	return str
}

// groupDigits inserts ',' between groups of three integer digits.
func groupDigits(str string) string {
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	intPart, fracPart := splitNumber(str)

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + fracPart
}

// splitNumber splits a number string into integer and fractional parts;
// the fractional part keeps its decimal point.
func splitNumber(str string) (string, string) {
	if intPart, fracPart, found := strings.Cut(str, "."); found {
		return intPart, "." + fracPart
	}
	return str, ""
}
