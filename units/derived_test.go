// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testUnits struct {
	r        *Registry
	m, s, kg *BaseUnit
}

func newTestUnits(t *testing.T) testUnits {
	t.Helper()
	r := NewRegistry(WithName(t.Name()))
	return testUnits{
		r:  r,
		m:  r.BaseUnit("length", "m", SIPrefixes),
		s:  r.BaseUnit("time", "s", SIPrefixes),
		kg: r.BaseUnit("mass", "kg", SIPrefixes),
	}
}

func TestDerivedUnitCollapse(t *testing.T) {
	u := newTestUnits(t)

	assert.Same(t, u.m, u.r.DerivedUnit(u.r.Factor(u.m, 1)))
	assert.Same(t, u.r.Dimensionless(), u.r.DerivedUnit())
	assert.Same(t, u.r.Dimensionless(), u.r.DerivedUnit(u.r.Factor(u.m, 0)))
	assert.Same(t, u.m, u.r.DerivedUnit(u.r.Factor(u.m, 1), u.r.Factor(u.s, 1), u.r.Factor(u.s, -1)))
	assert.Same(t, u.r.Dimensionless(), GetDerivedUnit(u.r.Factor(u.s, 2), u.r.Factor(u.s, -2)))
}

func TestDerivedUnitMerge(t *testing.T) {
	u := newTestUnits(t)

	merged := u.r.DerivedUnit(u.r.Factor(u.m, 1), u.r.Factor(u.m, 1))
	square := mustUnit(t)(u.m.Pow(2))
	assert.Same(t, square, merged)
	assert.Equal(t, []*Factor{u.r.Factor(u.m, 2)}, merged.Factors())
	assert.Equal(t, 1, CompareDimensionality(merged, square.(SimpleUnit)))
}

func TestDerivedUnitDoesNotModifyInput(t *testing.T) {
	u := newTestUnits(t)

	factors := []*Factor{u.r.Factor(u.m, 1), u.r.Factor(u.s, 1), u.r.Factor(u.m, 1)}
	want := append([]*Factor(nil), factors...)
	u.r.DerivedUnit(factors...)
	assert.Equal(t, want, factors)
}

func TestDerivedUnitCanonical(t *testing.T) {
	u := newTestUnits(t)

	a := u.r.DerivedUnit(u.r.Factor(u.m, 1), u.r.Factor(u.s, -1))
	b := u.r.DerivedUnit(u.r.Factor(u.s, -1), u.r.Factor(u.m, 1))
	assert.Same(t, a, b)
	assert.Equal(t, "m/s", a.Symbol())
	assert.Equal(t, "", a.QuantityName())

	named := u.r.NamedDerivedUnit("speed", "v", nil, u.r.Factor(u.m, 1), u.r.Factor(u.s, -1))
	assert.NotSame(t, a, named)
	assert.Same(t, named, u.r.NamedDerivedUnit("speed", "v", nil, u.r.Factor(u.s, -1), u.r.Factor(u.m, 1)))
	assert.True(t, named.EqualsIgnoreSymbol(a))
	assert.False(t, named.Equals(a))
	assert.Equal(t, "speed", named.QuantityName())
}

func TestNamedDerivedUnitCollapse(t *testing.T) {
	u := newTestUnits(t)

	metre := u.r.NamedDerivedUnit("", "metre", nil, u.r.Factor(u.m, 1))
	assert.Equal(t, KindBase, metre.Kind())
	assert.Equal(t, "metre", metre.Symbol())
	assert.True(t, metre.EqualsIgnoreSymbol(u.m))

	assert.Same(t, u.r.Dimensionless(), u.r.NamedDerivedUnit("angle", "rad", nil))
}

func TestNamedDerivedUnitGeneratedSymbol(t *testing.T) {
	u := newTestUnits(t)

	force := u.r.NamedDerivedUnit("force", "", SIPrefixes,
		u.r.Factor(u.kg, 1), u.r.Factor(u.m, 1), u.r.Factor(u.s, -2))
	assert.Equal(t, "kg·m/s^2", force.Symbol())
	assert.Same(t, SIPrefixes, force.PrefixSet())
}

func TestDerivedUnitSymbols(t *testing.T) {
	u := newTestUnits(t)
	f := u.r.Factor

	tests := []struct {
		name    string
		factors []*Factor
		want    string
	}{
		{"product", []*Factor{f(u.m, 1), f(u.s, 1)}, "m·s"},
		{"quotient", []*Factor{f(u.kg, 1), f(u.m, 1), f(u.s, -2)}, "kg·m/s^2"},
		{"denominators", []*Factor{f(u.m, 1), f(u.kg, -1), f(u.s, -2)}, "m/kg·s^2"},
		{"no numerator", []*Factor{f(u.s, -1)}, "s^-1"},
		{"no numerator power", []*Factor{f(u.s, -2), f(u.m, -1)}, "s^-2·m^-1"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := u.r.DerivedUnit(test.factors...).Symbol(); got != test.want {
				t.Errorf("DerivedUnit(%v).Symbol() = %q, want %q", test.factors, got, test.want)
			}
		})
	}
}

func TestCompareDimensionality(t *testing.T) {
	u := newTestUnits(t)
	f := u.r.Factor

	speed := u.r.DerivedUnit(f(u.m, 1), f(u.s, -1))
	speed2 := u.r.NamedDerivedUnit("speed", "v", nil, f(u.m, 1), f(u.s, -1))
	pace := u.r.DerivedUnit(f(u.s, 1), f(u.m, -1))
	acceleration := u.r.DerivedUnit(f(u.m, 1), f(u.s, -2))
	perMetre := u.r.DerivedUnit(f(u.m, -1))
	feet := u.r.BaseUnit("length", "ft", nil)

	tests := []struct {
		name  string
		left  SimpleUnit
		right SimpleUnit
		want  int
	}{
		{"reciprocal", speed, pace, -1},
		{"same dimensionality", speed, speed2, 1},
		{"different power", speed, acceleration, 0},
		{"dimensionless", u.r.Dimensionless(), u.r.Dimensionless(), 1},
		{"dimensionless and base", u.r.Dimensionless(), u.m, 0},
		{"base", u.m, feet, 1},
		{"different base", u.m, u.s, 0},
		{"base and reciprocal", u.m, perMetre, -1},
		{"different length", speed, perMetre, 0},
		{"nil", speed, nil, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CompareDimensionality(test.left, test.right); got != test.want {
				t.Errorf("CompareDimensionality(%v, %v) = %d, want %d", test.left, test.right, got, test.want)
			}
			if got := CompareDimensionality(test.right, test.left); got != test.want {
				t.Errorf("CompareDimensionality(%v, %v) = %d, want %d", test.right, test.left, got, test.want)
			}
		})
	}

	assert.Equal(t, -1, speed.(*DerivedUnit).CompareDimensionality(pace))
}

func TestDerivedUnitAlgebra(t *testing.T) {
	byPow := mustUnit(t)(Metre.Multiply(mustUnit(t)(Second.Pow(-1))))
	byDivide := mustUnit(t)(Metre.Divide(Second))
	assert.True(t, byPow.EqualsIgnoreSymbol(byDivide))
	assert.Same(t, MetrePerSecond, byDivide)

	force := mustUnit(t)(Kilogram.Multiply(mustUnit(t)(MetrePerSecond.Divide(Second))))
	assert.True(t, force.EqualsIgnoreSymbol(Newton))
	assert.False(t, force.Equals(Newton))

	energy := mustUnit(t)(Newton.Multiply(Metre))
	assert.True(t, energy.EqualsIgnoreSymbol(Joule))

	power := mustUnit(t)(Joule.Divide(Second))
	assert.True(t, power.EqualsIgnoreSymbol(Watt))
	assert.True(t, mustUnit(t)(Watt.Divide(Ampere)).EqualsIgnoreSymbol(Volt))
}

func TestDerivedUnitPow(t *testing.T) {
	u := newTestUnits(t)
	speed := u.r.DerivedUnit(u.r.Factor(u.m, 1), u.r.Factor(u.s, -1))

	squared := mustUnit(t)(speed.Pow(2))
	assert.Equal(t, "m^2/s^2", squared.Symbol())
	assert.Same(t, speed, mustUnit(t)(speed.Pow(1)))
	assert.Same(t, u.r.Dimensionless(), mustUnit(t)(speed.Pow(0)))

	inverse := mustUnit(t)(speed.Pow(-1)).(SimpleUnit)
	assert.Equal(t, -1, CompareDimensionality(speed, inverse))
}

func TestDerivedUnitPowFloat(t *testing.T) {
	u := newTestUnits(t)
	area := mustUnit(t)(u.m.Pow(2))
	volume := mustUnit(t)(u.m.Pow(3))

	assert.Same(t, u.m, mustUnit(t)(area.PowFloat(0.5)))
	assert.Same(t, u.m, mustUnit(t)(volume.PowFloat(1.0/3.0)))
	assert.Same(t, area, mustUnit(t)(u.m.PowFloat(2)))
	assert.Same(t, u.r.Dimensionless(), mustUnit(t)(u.r.Dimensionless().PowFloat(0.5)))

	_, err := u.m.PowFloat(0.5)
	require.ErrorIs(t, err, ErrUnitPower)

	var powerErr *UnitPowerError
	require.ErrorAs(t, err, &powerErr)
	assert.Equal(t, 0.5, powerErr.Power)
	assert.Same(t, u.m, powerErr.Unit)

	_, err = volume.PowFloat(0.5)
	assert.ErrorIs(t, err, ErrUnitPower)
}

func TestPowFloatOutOfRange(t *testing.T) {
	u := newTestUnits(t)
	area := mustUnit(t)(u.m.Pow(2))

	tests := []struct {
		name  string
		unit  Unit
		power float64
	}{
		{"huge", u.m, 1e300},
		{"huge negative", u.m, -1e300},
		{"beyond int32", u.m, 1e10},
		{"just beyond int32", u.m, 1 << 31},
		{"fractional beyond int32", u.m, 3e9 + 0.5},
		{"huge on area", area, 1e300},
		{"half of huge on area", area, 2e9 + 0.5},
		{"infinite", u.m, math.Inf(1)},
		{"not a number", u.m, math.NaN()},
		{"scaled", mustUnit(t)(u.r.ScaledUnit(1000, u.m)), 1e300},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := test.unit.PowFloat(test.power)
			assert.ErrorIs(t, err, ErrUnitPower)
			assert.Nil(t, result)
		})
	}
}

func TestDimensionlessOperand(t *testing.T) {
	u := newTestUnits(t)
	newton := u.r.NamedDerivedUnit("force", "N", nil,
		u.r.Factor(u.kg, 1), u.r.Factor(u.m, 1), u.r.Factor(u.s, -2))
	one := u.r.Dimensionless()

	assert.Same(t, newton, mustUnit(t)(one.Multiply(newton)))
	assert.Same(t, newton, mustUnit(t)(newton.Multiply(one)))
	assert.Same(t, newton, mustUnit(t)(newton.Divide(one)))
	assert.Equal(t, "N", mustUnit(t)(one.Multiply(newton)).Symbol())

	// dividing into one still inverts
	inverse := mustUnit(t)(one.Divide(newton)).(SimpleUnit)
	assert.Equal(t, -1, CompareDimensionality(newton, inverse))

	_, err := Dimensionless.Multiply(Celsius)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
	_, err = Celsius.Multiply(Dimensionless)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
}
