// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"math"
)

// ScaledUnit is a simple unit multiplied by a constant, such as the foot
// (0.3048 m) or the hour (3600 s).
type ScaledUnit struct {
	reg      *Registry
	amount   float64
	unit     SimpleUnit
	symbol   string
	prefixes *PrefixSet
}

type scaledKey struct {
	amount   uint64
	unit     SimpleUnit
	symbol   string
	prefixes *PrefixSet
}

// ScaledUnit returns amount × u with a generated symbol. Scaling a scaled
// unit multiplies the amounts; an offset unit cannot be scaled.
func (r *Registry) ScaledUnit(amount float64, u Unit) (Unit, error) {
	return r.scaledUnit(amount, u, "", nil)
}

// NamedScaledUnit is ScaledUnit with an explicit symbol and prefix set.
func (r *Registry) NamedScaledUnit(symbol string, prefixes *PrefixSet, amount float64, u Unit) (Unit, error) {
	return r.scaledUnit(amount, u, symbol, prefixes)
}

// GetScaledUnit scales u within its own registry.
func GetScaledUnit(amount float64, u Unit) (Unit, error) {
	checkOperand("scale", u)
	return u.Registry().ScaledUnit(amount, u)
}

func (r *Registry) scaledUnit(amount float64, u Unit, symbol string, prefixes *PrefixSet) (Unit, error) {
	checkOperand("scale", u)
	if amount == 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		panic(newConstructionError("scale %v of %q", amount, u.Symbol()))
	}

	var inner SimpleUnit
	switch u := u.(type) {
	case *OffsetUnit:
		return nil, newIncompatibleUnitsError("scale", u, nil)
	case *ScaledUnit:
		amount *= u.amount
		inner = u.unit
	case SimpleUnit:
		inner = u
	}

	if amount == 1 {
		if symbol == "" || (symbol == inner.Symbol() && prefixes == inner.PrefixSet()) {
			return inner, nil
		}
		return inner.Rename(symbol, prefixes), nil
	}

	if symbol == "" {
		symbol = formatAmount(amount)
		if inner.Symbol() != "" {
			symbol += DOT + inner.Symbol()
		}
	}

	key := scaledKey{amount: math.Float64bits(amount), unit: inner, symbol: symbol, prefixes: prefixes}
	return r.scaled.intern(func() *ScaledUnit {
		return &ScaledUnit{reg: r, amount: amount, unit: inner, symbol: symbol, prefixes: prefixes}
	}, key), nil
}

func (s *ScaledUnit) Kind() Kind { return KindScaled }
func (s *ScaledUnit) Symbol() string { return s.symbol }
func (s *ScaledUnit) QuantityName() string { return s.unit.QuantityName() }
func (s *ScaledUnit) PrefixSet() *PrefixSet { return s.prefixes }
func (s *ScaledUnit) Registry() *Registry { return s.reg }
func (s *ScaledUnit) String() string { return s.symbol }
func (s *ScaledUnit) sealed() {}

// Amount returns the value of one of this unit in Unit().
func (s *ScaledUnit) Amount() float64 {
	return s.amount
}

// Unit returns the simple unit being scaled.
func (s *ScaledUnit) Unit() SimpleUnit {
	return s.unit
}

func (s *ScaledUnit) Rename(symbol string, prefixes *PrefixSet) Unit {
	if symbol == "" {
		return s
	}
	u, _ := s.reg.scaledUnit(s.amount, s.unit, symbol, prefixes)
	return u
}

func (s *ScaledUnit) Pow(n int) (Unit, error) {
	switch n {
	case 0:
		return s.reg.dimensionless, nil
	case 1:
		return s, nil
	}
	return s.reg.scaledUnit(math.Pow(s.amount, float64(n)), powSimple(s.unit, n), "", nil)
}

func (s *ScaledUnit) PowFloat(p float64) (Unit, error) {
	if n, ok := integralPower(p); ok {
		return s.Pow(n)
	}
	inner, err := powSimpleFloat(s.unit, p)
	if err != nil {
		return nil, &UnitPowerError{Power: p, Unit: s}
	}
	return s.reg.scaledUnit(math.Pow(s.amount, p), inner, "", nil)
}

func (s *ScaledUnit) Multiply(other Unit) (Unit, error) {
	return combine("multiply", s, other)
}

func (s *ScaledUnit) Divide(other Unit) (Unit, error) {
	return combine("divide", s, other)
}

func (s *ScaledUnit) CanConvert(from Unit) bool {
	return canConvert(s, from)
}

func (s *ScaledUnit) Convert(x float64, from Unit) (float64, error) {
	return convertValue(s, from, x)
}

func (s *ScaledUnit) ConvertSlice(values []float64, from Unit) error {
	return convertSlice(s, from, values)
}

func (s *ScaledUnit) ConvertFloat32s(values []float32, from Unit) error {
	return convertFloat32s(s, from, values)
}

func (s *ScaledUnit) Transform(from Unit) (*Transform, error) {
	return transformFrom(s, from)
}

func (s *ScaledUnit) Equals(other Unit) bool {
	o, ok := other.(*ScaledUnit)
	if !ok || o == nil {
		return false
	}
	return s == o || (s.amount == o.amount && s.symbol == o.symbol && s.prefixes == o.prefixes && s.unit.Equals(o.unit))
}

func (s *ScaledUnit) EqualsIgnoreSymbol(other Unit) bool {
	return equalsIgnoreSymbol(s, other)
}
