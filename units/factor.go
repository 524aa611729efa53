// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import "fmt"

// Factor is one base unit raised to an integer power inside a derived
// unit. Factors are interned: equal factors of one registry are the same
// pointer.
type Factor struct {
	base  *BaseUnit
	power int
}

type factorKey struct {
	base  *BaseUnit
	power int
}

// Factor returns the canonical factor base^power. A nil base panics.
func (r *Registry) Factor(base *BaseUnit, power int) *Factor {
	if base == nil {
		panic(newConstructionError("factor with nil base unit"))
	}
	return r.factors.intern(func() *Factor {
		return &Factor{base: base, power: power}
	}, factorKey{base: base, power: power})
}

// GetFactor returns the canonical factor in the registry of base.
func GetFactor(base *BaseUnit, power int) *Factor {
	if base == nil {
		panic(newConstructionError("factor with nil base unit"))
	}
	return base.reg.Factor(base, power)
}

func (f *Factor) Base() *BaseUnit {
	return f.base
}

func (f *Factor) Power() int {
	return f.power
}

// Inverse returns the canonical factor with the negated power.
func (f *Factor) Inverse() *Factor {
	return f.base.reg.Factor(f.base, -f.power)
}

// CompareDimensionality returns +1 when other has the same base (ignoring
// symbol) and power, -1 when it has the same base and the negated power,
// and 0 otherwise, including for nil.
func (f *Factor) CompareDimensionality(other *Factor) int {
	if other == nil || !f.base.EqualsIgnoreSymbol(other.base) {
		return 0
	}
	switch other.power {
	case f.power:
		return 1
	case -f.power:
		return -1
	}
	return 0
}

func (f *Factor) Equals(other *Factor) bool {
	if other == nil {
		return false
	}
	return f == other || (f.power == other.power && f.base.Equals(other.base))
}

// String shows the signed power, e.g. "s^-1".
func (f *Factor) String() string {
	if f.power == 1 {
		return f.base.symbol
	}
	return fmt.Sprintf("%s^%d", f.base.symbol, f.power)
}

// absSymbol shows the absolute power, for use on either side of a "/".
func (f *Factor) absSymbol() string {
	power := f.power
	if power < 0 {
		power = -power
	}
	if power == 1 {
		return f.base.symbol
	}
	return fmt.Sprintf("%s^%d", f.base.symbol, power)
}
