// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

// BaseUnit is an atomic unit of one physical quantity, such as the metre
// for "length". Algebra and conversion identify base units by quantity
// name alone; the symbol and prefix set only affect display.
type BaseUnit struct {
	reg          *Registry
	quantityName string
	symbol       string
	prefixes     *PrefixSet
}

// BaseUnit returns the canonical base unit for the given quantity name,
// symbol and prefix set. Empty names panic.
func (r *Registry) BaseUnit(quantityName, symbol string, prefixes *PrefixSet) *BaseUnit {
	if quantityName == "" {
		panic(newConstructionError("base unit without quantity name"))
	}
	if symbol == "" {
		panic(newConstructionError("base unit %q without symbol", quantityName))
	}

	key := quantityName + "\x00" + symbol + "\x00" + prefixes.Name()
	return r.bases.intern(func() *BaseUnit {
		return &BaseUnit{reg: r, quantityName: quantityName, symbol: symbol, prefixes: prefixes}
	}, key)
}

// GetBaseUnit returns the canonical base unit from the Default registry.
func GetBaseUnit(quantityName, symbol string, prefixes *PrefixSet) *BaseUnit {
	return Default.BaseUnit(quantityName, symbol, prefixes)
}

func (b *BaseUnit) Kind() Kind { return KindBase }
func (b *BaseUnit) Symbol() string { return b.symbol }
func (b *BaseUnit) QuantityName() string { return b.quantityName }
func (b *BaseUnit) PrefixSet() *PrefixSet { return b.prefixes }
func (b *BaseUnit) Registry() *Registry { return b.reg }
func (b *BaseUnit) String() string { return b.symbol }
func (b *BaseUnit) sealed() {}

// UnprefixedSymbol returns the symbol prefixes attach to: "g" for the
// kilogram, the symbol itself otherwise.
func (b *BaseUnit) UnprefixedSymbol() string {
	if b.symbol == "kg" {
		return "g"
	}
	return b.symbol
}

func (b *BaseUnit) Factors() []*Factor {
	return []*Factor{b.reg.Factor(b, 1)}
}

// Rename returns the base unit of the same quantity under another symbol.
func (b *BaseUnit) Rename(symbol string, prefixes *PrefixSet) Unit {
	return b.rename(symbol, prefixes)
}

func (b *BaseUnit) rename(symbol string, prefixes *PrefixSet) *BaseUnit {
	if symbol == "" {
		return b
	}
	return b.reg.BaseUnit(b.quantityName, symbol, prefixes)
}

func (b *BaseUnit) Pow(n int) (Unit, error) {
	return powSimple(b, n), nil
}

func (b *BaseUnit) PowFloat(p float64) (Unit, error) {
	return powSimpleFloat(b, p)
}

func (b *BaseUnit) Multiply(other Unit) (Unit, error) {
	return combine("multiply", b, other)
}

func (b *BaseUnit) Divide(other Unit) (Unit, error) {
	return combine("divide", b, other)
}

func (b *BaseUnit) CanConvert(from Unit) bool {
	return canConvert(b, from)
}

func (b *BaseUnit) Convert(x float64, from Unit) (float64, error) {
	return convertValue(b, from, x)
}

func (b *BaseUnit) ConvertSlice(values []float64, from Unit) error {
	return convertSlice(b, from, values)
}

func (b *BaseUnit) ConvertFloat32s(values []float32, from Unit) error {
	return convertFloat32s(b, from, values)
}

func (b *BaseUnit) Transform(from Unit) (*Transform, error) {
	return transformFrom(b, from)
}

func (b *BaseUnit) Equals(other Unit) bool {
	o, ok := other.(*BaseUnit)
	if !ok || o == nil {
		return false
	}
	return b == o || (b.quantityName == o.quantityName && b.symbol == o.symbol && b.prefixes == o.prefixes)
}

// EqualsIgnoreSymbol reports whether other is a base unit of the same
// quantity.
func (b *BaseUnit) EqualsIgnoreSymbol(other Unit) bool {
	o, ok := other.(*BaseUnit)
	return ok && o != nil && b.quantityName == o.quantityName
}
