// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"fmt"
	"sort"
	"strings"

	"unitcalc/enumerable"
)

// DerivedUnit is a product of factors, such as m·s^-1. Its factors never
// share a quantity and never have power 0.
type DerivedUnit struct {
	reg          *Registry
	factors      []*Factor
	symbol       string
	quantityName string
	prefixes     *PrefixSet
}

// DerivedUnit returns the canonical unit for the product of factors,
// interned by dimensionality with a generated symbol. The result is the
// dimensionless unit when nothing is left after normalization, and the
// base unit itself for a single factor of power 1.
func (r *Registry) DerivedUnit(factors ...*Factor) SimpleUnit {
	return r.NamedDerivedUnit("", "", nil, factors...)
}

// NamedDerivedUnit is DerivedUnit with a quantity name, a symbol and a
// prefix set, interned by all of them. An empty symbol is generated from
// the factors. If the factors collapse to a single base unit, that base
// unit is returned under the given symbol.
func (r *Registry) NamedDerivedUnit(quantityName, symbol string, prefixes *PrefixSet, factors ...*Factor) SimpleUnit {
	normalized := normalizeFactors(factors)

	switch {
	case len(normalized) == 0:
		return r.dimensionless
	case len(normalized) == 1 && normalized[0].power == 1:
		base := normalized[0].base
		if symbol != "" && symbol != base.symbol {
			return base.rename(symbol, prefixes)
		}
		return base
	}

	unnamed := quantityName == "" && symbol == "" && prefixes == nil
	if symbol == "" {
		symbol = formatFactors(normalized)
	}
	build := func() *DerivedUnit {
		return &DerivedUnit{
			reg:          r,
			factors:      normalized,
			symbol:       symbol,
			quantityName: quantityName,
			prefixes:     prefixes,
		}
	}

	full := fullKey(quantityName, symbol, prefixes, normalized)
	if unnamed {
		return r.derived.intern(build, dimensionKey(normalized), full)
	}
	return r.derived.intern(build, full)
}

// GetDerivedUnit builds the unit in the registry of the first factor, or
// in Default when there is none.
func GetDerivedUnit(factors ...*Factor) SimpleUnit {
	return registryOf(factors).DerivedUnit(factors...)
}

// GetNamedDerivedUnit is the NamedDerivedUnit counterpart of
// GetDerivedUnit.
func GetNamedDerivedUnit(quantityName, symbol string, prefixes *PrefixSet, factors ...*Factor) SimpleUnit {
	return registryOf(factors).NamedDerivedUnit(quantityName, symbol, prefixes, factors...)
}

func registryOf(factors []*Factor) *Registry {
	for _, f := range factors {
		if f != nil {
			return f.base.reg
		}
	}
	return Default
}

// normalizeFactors merges factors of the same quantity by summing their
// powers, then drops empty slots and zero powers. The input is not
// modified.
func normalizeFactors(factors []*Factor) []*Factor {
	merged := make([]*Factor, len(factors))
	copy(merged, factors)

	for i := range merged {
		if merged[i] == nil {
			continue
		}
		for j := i + 1; j < len(merged); j++ {
			if merged[j] == nil || !merged[i].base.EqualsIgnoreSymbol(merged[j].base) {
				continue
			}
			base := merged[i].base
			merged[i] = base.reg.Factor(base, merged[i].power+merged[j].power)
			merged[j] = nil
		}
	}

	return enumerable.Filter(merged, func(f *Factor) bool {
		return f != nil && f.power != 0
	})
}

func dimensionKey(factors []*Factor) string {
	parts := enumerable.Map(factors, func(f *Factor) string {
		return fmt.Sprintf("%s^%d", f.base.quantityName, f.power)
	})
	sort.Strings(parts)
	return "d\x00" + strings.Join(parts, "\x00")
}

func fullKey(quantityName, symbol string, prefixes *PrefixSet, factors []*Factor) string {
	parts := enumerable.Map(factors, func(f *Factor) string {
		return fmt.Sprintf("%s\x01%s\x01%s^%d", f.base.quantityName, f.base.symbol, f.base.prefixes.Name(), f.power)
	})
	sort.Strings(parts)
	return "n\x00" + quantityName + "\x00" + symbol + "\x00" + prefixes.Name() + "\x00" + strings.Join(parts, "\x00")
}

// CompareDimensionality returns +1 when a and b have the same
// dimensionality, -1 when they are reciprocal (m/s and s/m) and 0
// otherwise. Two dimensionless units compare +1. The relation is
// symmetric.
func CompareDimensionality(a, b SimpleUnit) int {
	if a == nil || b == nil {
		return 0
	}
	if ba, ok := a.(*BaseUnit); ok {
		if bb, ok := b.(*BaseUnit); ok {
			if ba.quantityName == bb.quantityName {
				return 1
			}
			return 0
		}
	}

	fa, fb := a.Factors(), b.Factors()
	if len(fa) != len(fb) {
		return 0
	}
	if len(fa) == 0 {
		return 1
	}

	sign := 0
	matched := make([]bool, len(fb))
	for _, f := range fa {
		found := false
		for j, g := range fb {
			if matched[j] {
				continue
			}
			c := f.CompareDimensionality(g)
			if c != 0 && (sign == 0 || c == sign) {
				matched[j], sign, found = true, c, true
				break
			}
		}
		if !found {
			return 0
		}
	}
	return sign
}

func (d *DerivedUnit) Kind() Kind { return KindDerived }
func (d *DerivedUnit) Symbol() string { return d.symbol }
func (d *DerivedUnit) QuantityName() string { return d.quantityName }
func (d *DerivedUnit) PrefixSet() *PrefixSet { return d.prefixes }
func (d *DerivedUnit) Registry() *Registry { return d.reg }
func (d *DerivedUnit) String() string { return d.symbol }
func (d *DerivedUnit) sealed() {}

// Factors returns a copy of the normalized factors.
func (d *DerivedUnit) Factors() []*Factor {
	out := make([]*Factor, len(d.factors))
	copy(out, d.factors)
	return out
}

func (d *DerivedUnit) IsDimensionless() bool {
	return len(d.factors) == 0
}

func (d *DerivedUnit) CompareDimensionality(other SimpleUnit) int {
	return CompareDimensionality(d, other)
}

func (d *DerivedUnit) Rename(symbol string, prefixes *PrefixSet) Unit {
	return d.reg.NamedDerivedUnit(d.quantityName, symbol, prefixes, d.factors...)
}

func (d *DerivedUnit) Pow(n int) (Unit, error) {
	return powSimple(d, n), nil
}

func (d *DerivedUnit) PowFloat(p float64) (Unit, error) {
	return powSimpleFloat(d, p)
}

func (d *DerivedUnit) Multiply(other Unit) (Unit, error) {
	return combine("multiply", d, other)
}

func (d *DerivedUnit) Divide(other Unit) (Unit, error) {
	return combine("divide", d, other)
}

func (d *DerivedUnit) CanConvert(from Unit) bool {
	return canConvert(d, from)
}

func (d *DerivedUnit) Convert(x float64, from Unit) (float64, error) {
	return convertValue(d, from, x)
}

func (d *DerivedUnit) ConvertSlice(values []float64, from Unit) error {
	return convertSlice(d, from, values)
}

func (d *DerivedUnit) ConvertFloat32s(values []float32, from Unit) error {
	return convertFloat32s(d, from, values)
}

func (d *DerivedUnit) Transform(from Unit) (*Transform, error) {
	return transformFrom(d, from)
}

func (d *DerivedUnit) Equals(other Unit) bool {
	o, ok := other.(*DerivedUnit)
	if !ok || o == nil {
		return false
	}
	if d == o {
		return true
	}
	if d.symbol != o.symbol || d.quantityName != o.quantityName || d.prefixes != o.prefixes {
		return false
	}
	return sameFactors(d.factors, o.factors)
}

// EqualsIgnoreSymbol reports whether other has the same dimensionality.
func (d *DerivedUnit) EqualsIgnoreSymbol(other Unit) bool {
	o, ok := other.(SimpleUnit)
	if !ok {
		return equalsIgnoreSymbol(d, other)
	}
	return CompareDimensionality(d, o) == 1
}

func sameFactors(a, b []*Factor) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
	for _, f := range a {
		found := false
		for j, g := range b {
			if !matched[j] && f.Equals(g) {
				matched[j], found = true, true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
