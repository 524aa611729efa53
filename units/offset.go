// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"math"
)

// OffsetUnit shifts the zero point of another unit: a value x in the
// offset unit is x + offset in the underlying unit. Degree Celsius is
// kelvin offset by 273.15.
//
// Offset units take no prefixes and cannot be multiplied, divided or
// raised to powers other than 0 and 1.
type OffsetUnit struct {
	reg    *Registry
	offset float64
	unit   Unit
	symbol string
}

type offsetKey struct {
	offset uint64
	unit   Unit
	symbol string
}

// OffsetUnit returns u shifted by offset with a generated symbol. Offsets
// of offset units add up.
func (r *Registry) OffsetUnit(offset float64, u Unit) Unit {
	return r.offsetUnit(offset, u, "")
}

// NamedOffsetUnit is OffsetUnit with an explicit symbol.
func (r *Registry) NamedOffsetUnit(symbol string, offset float64, u Unit) Unit {
	return r.offsetUnit(offset, u, symbol)
}

// GetOffsetUnit shifts u within its own registry.
func GetOffsetUnit(offset float64, u Unit) Unit {
	checkOperand("offset", u)
	return u.Registry().OffsetUnit(offset, u)
}

func (r *Registry) offsetUnit(offset float64, u Unit, symbol string) Unit {
	checkOperand("offset", u)
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		panic(newConstructionError("offset %v of %q", offset, u.Symbol()))
	}

	if o, ok := u.(*OffsetUnit); ok {
		offset += o.offset
		u = o.unit
	}

	if offset == 0 {
		if symbol == "" || symbol == u.Symbol() {
			return u
		}
		return u.Rename(symbol, nil)
	}

	if symbol == "" {
		symbol = u.Symbol() + "@" + formatAmount(offset)
	}

	key := offsetKey{offset: math.Float64bits(offset), unit: u, symbol: symbol}
	return r.offsets.intern(func() *OffsetUnit {
		return &OffsetUnit{reg: r, offset: offset, unit: u, symbol: symbol}
	}, key)
}

func (o *OffsetUnit) Kind() Kind { return KindOffset }
func (o *OffsetUnit) Symbol() string { return o.symbol }
func (o *OffsetUnit) QuantityName() string { return o.unit.QuantityName() }
func (o *OffsetUnit) PrefixSet() *PrefixSet { return nil }
func (o *OffsetUnit) Registry() *Registry { return o.reg }
func (o *OffsetUnit) String() string { return o.symbol }
func (o *OffsetUnit) sealed() {}

// Offset returns the zero point of this unit expressed in Unit().
func (o *OffsetUnit) Offset() float64 {
	return o.offset
}

// Unit returns the unit being shifted.
func (o *OffsetUnit) Unit() Unit {
	return o.unit
}

// Rename ignores prefixes, which offset units never take.
func (o *OffsetUnit) Rename(symbol string, _ *PrefixSet) Unit {
	if symbol == "" {
		return o
	}
	return o.reg.offsetUnit(o.offset, o.unit, symbol)
}

func (o *OffsetUnit) Pow(n int) (Unit, error) {
	switch n {
	case 0:
		return o.reg.dimensionless, nil
	case 1:
		return o, nil
	}
	return nil, &UnitPowerError{Power: float64(n), Unit: o}
}

func (o *OffsetUnit) PowFloat(p float64) (Unit, error) {
	if n, ok := integralPower(p); ok {
		return o.Pow(n)
	}
	return nil, &UnitPowerError{Power: p, Unit: o}
}

func (o *OffsetUnit) Multiply(other Unit) (Unit, error) {
	return combine("multiply", o, other)
}

func (o *OffsetUnit) Divide(other Unit) (Unit, error) {
	return combine("divide", o, other)
}

func (o *OffsetUnit) CanConvert(from Unit) bool {
	return canConvert(o, from)
}

func (o *OffsetUnit) Convert(x float64, from Unit) (float64, error) {
	return convertValue(o, from, x)
}

func (o *OffsetUnit) ConvertSlice(values []float64, from Unit) error {
	return convertSlice(o, from, values)
}

func (o *OffsetUnit) ConvertFloat32s(values []float32, from Unit) error {
	return convertFloat32s(o, from, values)
}

func (o *OffsetUnit) Transform(from Unit) (*Transform, error) {
	return transformFrom(o, from)
}

func (o *OffsetUnit) Equals(other Unit) bool {
	p, ok := other.(*OffsetUnit)
	if !ok || p == nil {
		return false
	}
	return o == p || (o.offset == p.offset && o.symbol == p.symbol && o.unit.Equals(p.unit))
}

func (o *OffsetUnit) EqualsIgnoreSymbol(other Unit) bool {
	return equalsIgnoreSymbol(o, other)
}
