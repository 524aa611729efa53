// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaledUnit(t *testing.T) {
	u := newTestUnits(t)

	km := mustUnit(t)(u.r.ScaledUnit(1000, u.m))
	assert.Same(t, km, mustUnit(t)(u.r.ScaledUnit(1000, u.m)))
	assert.Equal(t, KindScaled, km.Kind())
	assert.Equal(t, "1000·m", km.Symbol())
	assert.Equal(t, "length", km.QuantityName())

	assert.Same(t, u.m, mustUnit(t)(u.r.ScaledUnit(1, u.m)))

	x, err := km.Convert(1500, u.m)
	require.NoError(t, err)
	assert.Equal(t, 1.5, x)
}

func TestScaledUnitFlattens(t *testing.T) {
	u := newTestUnits(t)

	km := mustUnit(t)(u.r.NamedScaledUnit("km", nil, 1000, u.m))
	mm := mustUnit(t)(u.r.NamedScaledUnit("mm", nil, 1e-3, u.m))

	scaled := mustUnit(t)(u.r.ScaledUnit(2, km)).(*ScaledUnit)
	assert.Equal(t, 2000.0, scaled.Amount())
	assert.Same(t, u.m, scaled.Unit())

	assert.Same(t, u.m, mustUnit(t)(u.r.ScaledUnit(1000, mm)))
	metre := mustUnit(t)(u.r.NamedScaledUnit("metre", nil, 1000, mm))
	assert.Equal(t, KindBase, metre.Kind())
	assert.Equal(t, "metre", metre.Symbol())
}

func TestScaledUnitAlgebra(t *testing.T) {
	u := newTestUnits(t)
	km := mustUnit(t)(u.r.NamedScaledUnit("km", nil, 1000, u.m))
	h := mustUnit(t)(u.r.NamedScaledUnit("h", nil, 3600, u.s))

	speed := mustUnit(t)(km.Divide(h)).(*ScaledUnit)
	assert.Equal(t, 1000.0/3600.0, speed.Amount())
	assert.Equal(t, "m/s", speed.Unit().Symbol())

	area := mustUnit(t)(km.Pow(2)).(*ScaledUnit)
	assert.Equal(t, 1e6, area.Amount())
	assert.Same(t, mustUnit(t)(u.m.Pow(2)), area.Unit())

	assert.Same(t, km, mustUnit(t)(km.Pow(1)))
	assert.Same(t, u.r.Dimensionless(), mustUnit(t)(km.Pow(0)))
	assert.Same(t, u.m, mustUnit(t)(km.Divide(mustUnit(t)(u.r.ScaledUnit(1000, u.r.Dimensionless())))))

	side := mustUnit(t)(area.PowFloat(0.5)).(*ScaledUnit)
	assert.Equal(t, 1000.0, side.Amount())

	_, err := km.PowFloat(0.5)
	assert.ErrorIs(t, err, ErrUnitPower)
}

func TestScaledUnitRename(t *testing.T) {
	ft := Foot.Rename("foot", nil)
	assert.Equal(t, "foot", ft.Symbol())
	assert.True(t, ft.EqualsIgnoreSymbol(Foot))
	assert.False(t, ft.Equals(Foot))
	assert.Same(t, Foot, Foot.Rename("", nil))
}

func TestScaledUnitConstruction(t *testing.T) {
	r := NewRegistry(WithName("scaled"))
	m := r.BaseUnit("length", "m", nil)

	assert.Panics(t, func() { _, _ = r.ScaledUnit(0, m) })
	assert.Panics(t, func() { _, _ = r.ScaledUnit(1, nil) })

	_, err := r.ScaledUnit(2, r.OffsetUnit(10, m))
	assert.ErrorIs(t, err, ErrIncompatibleUnits)
}

func TestOffsetUnit(t *testing.T) {
	u := newTestUnits(t)
	k := u.r.BaseUnit("thermodynamic temperature", "K", nil)

	c := u.r.NamedOffsetUnit("°C", 273.15, k)
	assert.Same(t, c, u.r.NamedOffsetUnit("°C", 273.15, k))
	assert.Equal(t, KindOffset, c.Kind())
	assert.Nil(t, c.PrefixSet())
	assert.Equal(t, "thermodynamic temperature", c.QuantityName())

	assert.Same(t, k, u.r.OffsetUnit(0, k))
	assert.Equal(t, "K@10", u.r.OffsetUnit(10, k).Symbol())

	nested := u.r.OffsetUnit(10, c).(*OffsetUnit)
	assert.InDelta(t, 283.15, nested.Offset(), 1e-12)
	assert.Same(t, k, nested.Unit())

	x, err := c.Convert(300, k)
	require.NoError(t, err)
	assert.InDelta(t, 26.85, x, 1e-9)
}

func TestOffsetUnitAlgebra(t *testing.T) {
	_, err := Celsius.Multiply(Metre)
	require.ErrorIs(t, err, ErrIncompatibleUnits)
	assert.EqualError(t, err, `incompatible units: cannot multiply "°C" and "m"`)

	_, err = Metre.Divide(Celsius)
	assert.ErrorIs(t, err, ErrIncompatibleUnits)

	_, err = Celsius.Pow(2)
	assert.ErrorIs(t, err, ErrUnitPower)
	_, err = Celsius.PowFloat(0.5)
	assert.ErrorIs(t, err, ErrUnitPower)

	assert.Same(t, Celsius, mustUnit(t)(Celsius.Pow(1)))
	assert.Same(t, Dimensionless, mustUnit(t)(Celsius.Pow(0)))
}

func TestDecompose(t *testing.T) {
	tests := []struct {
		name   string
		unit   Unit
		simple SimpleUnit
		scale  float64
		offset float64
	}{
		{"base", Metre, Metre, 1, 0},
		{"derived", Newton, Newton, 1, 0},
		{"scaled", Foot, Metre, 0.3048, 0},
		{"offset", Celsius, Kelvin, 1, 273.15},
		{"offset of scaled", Fahrenheit, Kelvin, 5.0 / 9.0, 5.0 / 9.0 * 459.67},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			simple, scale, offset := Decompose(test.unit)
			assert.Same(t, test.simple, simple)
			assert.Equal(t, test.scale, scale)
			assert.InDelta(t, test.offset, offset, 1e-12)
		})
	}
}
