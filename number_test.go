// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		valid    bool // Whether the input should be valid
	}{
		// minutes:seconds (fractional minutes)
		{"1:30", 1.5, true},
		{"0:45", 0.75, true},
		{"2:15", 2.25, true},
		{"30:45", 30.75, true},
		{"5:30", 5.5, true},

		// hours:minutes:seconds (fractional hours)
		{"1:30:45", 1.5125, true},
		{"0:0:30", 30.0 / 3600, true},
		{"2:15:30", 2 + 15.0/60 + 30.0/3600, true},

		// Invalid formats - fractional hours
		{"1.5:30:45", 0, false},
		{"0.5:0:0", 0, false},

		// Invalid formats - fractional minutes
		{"1:30.5:45", 0, false},
		{"0:15.25:30", 0, false},

		// Invalid formats - too many parts
		{"1:2:3:4", 0, false},

		// Invalid formats - non-numeric parts
		{"abc:30:45", 0, false},
		{"1:abc:45", 0, false},
		{"1:30:abc", 0, false},
		{"", 0, false},

		// Invalid formats - negative values
		{"-1:30:45", 0, false},
		{"1:-30:45", 0, false},
		{"1:30:-45", 0, false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, valid := parseBase60(test.input)

			if valid != test.valid {
				t.Errorf("parseBase60(%q) validity = %v, want %v", test.input, valid, test.valid)
				return
			}
			if test.valid {
				assert.InDelta(t, test.expected, result, 1e-12, "parseBase60(%q)", test.input)
			}
		})
	}
}

// Test edge cases for integral validation
func TestParseTimeIntegralValidation(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		// These should be valid (integral hours/minutes)
		{"1:30:45", true},
		{"0:0:45.5", true},
		{"10:59:0", true},

		// These should be invalid (fractional hours/minutes)
		{"1.0:30:45", false}, // Even 1.0 is considered fractional
		{"1:30.0:45", false}, // Even 30.0 is considered fractional
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, valid := parseBase60(test.input)
			if valid != test.valid {
				t.Errorf("parseBase60(%q) validity = %v, want %v", test.input, valid, test.valid)
			}
		})
	}
}

func TestIsNonNegativeInteger(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"00", true},
		{"1.0", false},
		{"1.5", false},
		{"-1", false},
		{"abc", false},
		{"", false},
		{"12a", false},
		{"a12", false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result := isNonNegativeInteger(test.input)
			if result != test.expected {
				t.Errorf("isNonNegativeInteger(%q) = %v, want %v", test.input, result, test.expected)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		valid    bool
	}{
		{"42", 42, true},
		{"-5", -5, true},
		{"+7", 7, true},
		{"3.25", 3.25, true},
		{".5", 0.5, true},
		{"1.", 1, true},
		{"1e3", 1000, true},
		{"2.5E-2", 0.025, true},
		{"0x1f", 31, true},
		{"0X10", 16, true},
		{"0o17", 15, true},
		{"0b101", 5, true},
		{"-0x10", -16, true},
		{"1:30", 1.5, true},

		{"", 0, false},
		{"-", 0, false},
		{"+", 0, false},
		{"m", 0, false},
		{"1m", 0, false},
		{"0x", 0, false},
		{"0b12", 0, false},
		{"1e", 0, false},
		{"1k", 0, false}, // lowercase is not a magnitude
		{"K100", 0, false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, valid := parseNumber(test.input)
			if valid != test.valid {
				t.Errorf("parseNumber(%q) validity = %v, want %v", test.input, valid, test.valid)
				return
			}
			if test.valid && result != test.expected {
				t.Errorf("parseNumber(%q) = %v, want %v", test.input, result, test.expected)
			}
		})
	}
}

// Test binary magnitude parsing functionality
func TestBinaryMagnitudeParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1K", 1024},
		{"1M", 1048576},
		{"1G", 1073741824},
		{"1T", 1099511627776},
		{"1P", 1125899906842624},
		{"1E", 1152921504606846976},
		{"1Z", math.Ldexp(1, 70)},
		{"1Y", math.Ldexp(1, 80)},

		{"2K", 2048},
		{"3M", 3145728},
		{"10G", 10737418240},

		{"1.5K", 1536},
		{"2.5M", 2621440},
		{"0.5G", 536870912},

		{"-1K", -1024},
		{"-2M", -2097152},

		{"0K", 0},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result, valid := parseNumber(test.input)
			if !valid {
				t.Errorf("parseNumber(%q) is not valid", test.input)
				return
			}
			if result != test.expected {
				t.Errorf("parseNumber(%q) = %v, want %v", test.input, result, test.expected)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name      string
		input     float64
		precision int
		group     bool
		expected  string
	}{
		{"integer", 42, 4, false, "42"},
		{"rounded", 1.0 / 3.0, 4, false, "0.3333"},
		{"round half up", 2.5, 0, false, "3"},
		{"trailing zeros dropped", 0.5, 4, false, "0.5"},
		{"negative", -0.3048, 4, false, "-0.3048"},
		{"negative zero", math.Copysign(0, -1), 2, false, "0"},
		{"tiny negative", -0.00001, 2, false, "-1e-05"},
		{"grouped", 1234567.891, 2, true, "1,234,567.89"},
		{"grouped negative", -1234, 0, true, "-1,234"},
		{"grouped short", 999, 2, true, "999"},
		{"large", 1e22, 4, false, "1e+22"},
		{"tiny", 1e-9, 4, false, "1e-09"},
		{"NaN", math.NaN(), 4, false, "NaN"},
		{"Inf", math.Inf(-1), 4, false, "-Inf"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, formatNumber(test.input, test.precision, test.group))
		})
	}
}

func TestSplitNumber(t *testing.T) {
	tests := []struct {
		input, intPart, fracPart string
	}{
		{"100.5", "100", ".5"},
		{"-0.25", "-0", ".25"},
		{"42", "42", ""},
		{"1,234.5", "1,234", ".5"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			intPart, fracPart := splitNumber(test.input)
			assert.Equal(t, test.intPart, intPart)
			assert.Equal(t, test.fracPart, fracPart)
		})
	}
}
