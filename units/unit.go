// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"
	"math"
	"slices"

	"unitcalc/enumerable"
)

// Kind tells the concrete type behind a Unit.
type Kind int

const (
	KindBase Kind = iota
	KindDerived
	KindScaled
	KindOffset
)

func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindDerived:
		return "derived"
	case KindScaled:
		return "scaled"
	case KindOffset:
		return "offset"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Unit is implemented by *BaseUnit, *DerivedUnit, *ScaledUnit and
// *OffsetUnit only. All units are immutable and safe for concurrent use.
//
// Convert, ConvertSlice and ConvertFloat32s convert values expressed in
// from into the receiver's unit. The slice forms work in place and leave
// the slice unchanged when they fail.
type Unit interface {
	Kind() Kind
	Symbol() string
	QuantityName() string
	PrefixSet() *PrefixSet
	Registry() *Registry

	Rename(symbol string, prefixes *PrefixSet) Unit
	Pow(n int) (Unit, error)
	PowFloat(p float64) (Unit, error)
	Multiply(other Unit) (Unit, error)
	Divide(other Unit) (Unit, error)

	CanConvert(from Unit) bool
	Convert(x float64, from Unit) (float64, error)
	ConvertSlice(values []float64, from Unit) error
	ConvertFloat32s(values []float32, from Unit) error
	Transform(from Unit) (*Transform, error)

	Equals(other Unit) bool
	EqualsIgnoreSymbol(other Unit) bool
	String() string

	sealed()
}

// SimpleUnit is a unit without scale or offset, that is a *BaseUnit or a
// *DerivedUnit, described entirely by its factors.
type SimpleUnit interface {
	Unit
	Factors() []*Factor
}

// MustUnit panics if err is non-nil and returns u otherwise. It is meant
// for package-level unit definitions.
func MustUnit(u Unit, err error) Unit {
	if err != nil {
		panic(err)
	}
	return u
}

// Decompose expresses u as an affine function of a simple unit: a value x
// in u equals x*scale + offset in simple.
func Decompose(u Unit) (simple SimpleUnit, scale, offset float64) {
	switch u := u.(type) {
	case *BaseUnit:
		return u, 1, 0
	case *DerivedUnit:
		return u, 1, 0
	case *ScaledUnit:
		return u.unit, u.amount, 0
	case *OffsetUnit:
		s, a, b := Decompose(u.unit)
		return s, a, a*u.offset + b
	}
	panic(newConstructionError("unknown unit type %T", u))
}

// Prefixed applies a prefix from the unit's prefix set, e.g. kilo to the
// metre. The kilogram is prefixed as the gram it is named after, so milli
// on "kg" gives "mg".
func Prefixed(u Unit, p Prefix) (Unit, error) {
	if u == nil {
		panic(newConstructionError("prefix on nil unit"))
	}
	if !u.PrefixSet().Contains(p) {
		return nil, &PrefixError{Prefix: p, Unit: u}
	}

	reg := u.Registry()
	switch u := u.(type) {
	case *BaseUnit:
		unprefixed := u.UnprefixedSymbol()
		amount := p.Amount()
		if unprefixed != u.symbol {
			amount = math.Pow10(p.Exponent - 3)
		}
		if amount == 1 {
			return u, nil
		}
		return reg.scaledUnit(amount, u, p.Symbol+unprefixed, nil)
	case *DerivedUnit:
		return reg.scaledUnit(p.Amount(), u, p.Symbol+u.symbol, nil)
	case *ScaledUnit:
		return reg.scaledUnit(p.Amount()*u.amount, u.unit, p.Symbol+u.symbol, nil)
	}
	return nil, &PrefixError{Prefix: p, Unit: u}
}

func checkOperand(op string, u Unit) {
	if u == nil {
		panic(newConstructionError("%s with nil unit", op))
	}
}

// scaleOf splits a unit usable in products into its simple part and its
// amount. Offset units cannot take part in products.
func scaleOf(u Unit) (SimpleUnit, float64, bool) {
	switch u := u.(type) {
	case *BaseUnit:
		return u, 1, true
	case *DerivedUnit:
		return u, 1, true
	case *ScaledUnit:
		return u.unit, u.amount, true
	}
	return nil, 0, false
}

// combine multiplies or divides two units by concatenating their factors,
// negating the divisor's, and renormalizing.
func combine(op string, a, b Unit) (Unit, error) {
	checkOperand(op, b)

	sa, amountA, okA := scaleOf(a)
	sb, amountB, okB := scaleOf(b)
	if !okA || !okB {
		return nil, newIncompatibleUnitsError(op, a, b)
	}

	// a plain dimensionless operand leaves the other unit as it is
	if amountB == 1 && sb == sb.Registry().dimensionless {
		return a, nil
	}
	if op == "multiply" && amountA == 1 && sa == sa.Registry().dimensionless {
		return b, nil
	}

	factorsB := sb.Factors()
	amount := amountA * amountB
	if op == "divide" {
		factorsB = enumerable.Map(factorsB, (*Factor).Inverse)
		amount = amountA / amountB
	}

	reg := a.Registry()
	simple := reg.DerivedUnit(append(slices.Clone(sa.Factors()), factorsB...)...)
	if amount == 1 {
		return simple, nil
	}
	return reg.scaledUnit(amount, simple, "", nil)
}

// powSimple raises a simple unit to an integer power.
func powSimple(u SimpleUnit, n int) SimpleUnit {
	reg := u.Registry()
	switch n {
	case 0:
		return reg.dimensionless
	case 1:
		return u
	}
	factors := enumerable.Map(u.Factors(), func(f *Factor) *Factor {
		return reg.Factor(f.base, f.power*n)
	})
	return reg.DerivedUnit(factors...)
}

// integralPower reports whether p can be handled as an integer power.
func integralPower(p float64) (int, bool) {
	if p != math.Trunc(p) || math.Abs(p) > math.MaxInt32 {
		return 0, false
	}
	return int(p), true
}

// powSimpleFloat raises a simple unit to a fractional power. Every
// resulting exponent must be integral when computed in float32, so the
// square root of m^2 is m while the square root of m fails.
func powSimpleFloat(u SimpleUnit, p float64) (SimpleUnit, error) {
	if n, ok := integralPower(p); ok {
		return powSimple(u, n), nil
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return nil, &UnitPowerError{Power: p, Unit: u}
	}

	reg := u.Registry()
	factors := u.Factors()
	result := make([]*Factor, len(factors))
	for i, f := range factors {
		q := float32(float32(f.power) * float32(p))
		r := float32(math.Floor(float64(q) + 0.5))
		if r != q || math.Abs(float64(r)) > math.MaxInt32 {
			return nil, &UnitPowerError{Power: p, Unit: u}
		}
		result[i] = reg.Factor(f.base, int(r))
	}
	return reg.DerivedUnit(result...), nil
}

type kindPair struct {
	to, from Kind
}

// convertValue converts x from one unit to another. Pairs of simple units
// are answered from their dimensional relation alone; everything else goes
// through a transform.
func convertValue(to, from Unit, x float64) (float64, error) {
	if from == nil {
		return 0, newIncompatibleUnitsError("convert", from, to)
	}

	switch (kindPair{to.Kind(), from.Kind()}) {
	case kindPair{KindBase, KindBase}:
		if to.QuantityName() == from.QuantityName() {
			return x, nil
		}
		return 0, newIncompatibleUnitsError("convert", from, to)
	case kindPair{KindBase, KindDerived}, kindPair{KindDerived, KindBase}, kindPair{KindDerived, KindDerived}:
		switch CompareDimensionality(to.(SimpleUnit), from.(SimpleUnit)) {
		case 1:
			return x, nil
		case -1:
			return 1 / x, nil
		}
		return 0, newIncompatibleUnitsError("convert", from, to)
	}

	t, err := to.Registry().transform(to, from)
	if err != nil {
		return 0, err
	}
	return t.Convert(x), nil
}

func convertSlice(to, from Unit, values []float64) error {
	if from == nil {
		return newIncompatibleUnitsError("convert", from, to)
	}
	t, err := to.Registry().transform(to, from)
	if err != nil {
		return err
	}
	t.ConvertSlice(values)
	return nil
}

func convertFloat32s(to, from Unit, values []float32) error {
	if from == nil {
		return newIncompatibleUnitsError("convert", from, to)
	}
	t, err := to.Registry().transform(to, from)
	if err != nil {
		return err
	}
	t.ConvertFloat32s(values)
	return nil
}

func transformFrom(to, from Unit) (*Transform, error) {
	if from == nil {
		return nil, newIncompatibleUnitsError("convert", from, to)
	}
	return to.Registry().transform(to, from)
}

// relation returns the dimensional relation of the simple parts of two
// units: +1 same, -1 reciprocal, 0 unrelated.
func relation(a, b Unit) int {
	if a == nil || b == nil {
		return 0
	}
	sa, _, _ := Decompose(a)
	sb, _, _ := Decompose(b)
	return CompareDimensionality(sa, sb)
}

func canConvert(to, from Unit) bool {
	return relation(to, from) != 0
}

// equalsIgnoreSymbol holds when both units describe the same quantity
// with the same scale and offset, whatever they are called.
func equalsIgnoreSymbol(a, b Unit) bool {
	if a == nil || b == nil {
		return false
	}
	sa, scaleA, offsetA := Decompose(a)
	sb, scaleB, offsetB := Decompose(b)
	return scaleA == scaleB && offsetA == offsetB && CompareDimensionality(sa, sb) == 1
}
