// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

// SI base units, in the Default registry.
var (
	Metre    = Default.BaseUnit("length", "m", SIPrefixes)
	Kilogram = Default.BaseUnit("mass", "kg", SIPrefixes)
	Second   = Default.BaseUnit("time", "s", SIPrefixes)
	Ampere   = Default.BaseUnit("electric current", "A", SIPrefixes)
	Kelvin   = Default.BaseUnit("thermodynamic temperature", "K", SIPrefixes)
	Mole     = Default.BaseUnit("amount of substance", "mol", SIPrefixes)
	Candela  = Default.BaseUnit("luminous intensity", "cd", SIPrefixes)
)

// Derived units.
var (
	Dimensionless = Default.Dimensionless()

	SquareMetre    = Default.DerivedUnit(Default.Factor(Metre, 2))
	CubicMetre     = Default.DerivedUnit(Default.Factor(Metre, 3))
	MetrePerSecond = Default.DerivedUnit(Default.Factor(Metre, 1), Default.Factor(Second, -1))

	Hertz = Default.NamedDerivedUnit("frequency", "Hz", SIPrefixes,
		Default.Factor(Second, -1))
	Newton = Default.NamedDerivedUnit("force", "N", SIPrefixes,
		Default.Factor(Kilogram, 1), Default.Factor(Metre, 1), Default.Factor(Second, -2))
	Pascal = Default.NamedDerivedUnit("pressure", "Pa", SIPrefixes,
		Default.Factor(Kilogram, 1), Default.Factor(Metre, -1), Default.Factor(Second, -2))
	Joule = Default.NamedDerivedUnit("energy", "J", SIPrefixes,
		Default.Factor(Kilogram, 1), Default.Factor(Metre, 2), Default.Factor(Second, -2))
	Watt = Default.NamedDerivedUnit("power", "W", SIPrefixes,
		Default.Factor(Kilogram, 1), Default.Factor(Metre, 2), Default.Factor(Second, -3))
	Coulomb = Default.NamedDerivedUnit("electric charge", "C", SIPrefixes,
		Default.Factor(Ampere, 1), Default.Factor(Second, 1))
	Volt = Default.NamedDerivedUnit("voltage", "V", SIPrefixes,
		Default.Factor(Kilogram, 1), Default.Factor(Metre, 2), Default.Factor(Second, -3), Default.Factor(Ampere, -1))
)

// Scaled units.
var (
	Kilometre    = MustUnit(Prefixed(Metre, Kilo))
	Foot         = MustUnit(Default.NamedScaledUnit("ft", nil, 0.3048, Metre))
	Inch         = MustUnit(Default.NamedScaledUnit("in", nil, 0.0254, Metre))
	Yard         = MustUnit(Default.NamedScaledUnit("yd", nil, 0.9144, Metre))
	Mile         = MustUnit(Default.NamedScaledUnit("mi", nil, 1609.344, Metre))
	NauticalMile = MustUnit(Default.NamedScaledUnit("nmi", nil, 1852, Metre))

	Gram  = MustUnit(Default.NamedScaledUnit("g", nil, 1e-3, Kilogram))
	Pound = MustUnit(Default.NamedScaledUnit("lb", nil, 0.45359237, Kilogram))
	Ounce = MustUnit(Default.NamedScaledUnit("oz", nil, 0.028349523125, Kilogram))

	Minute = MustUnit(Default.NamedScaledUnit("min", nil, 60, Second))
	Hour   = MustUnit(Default.NamedScaledUnit("h", nil, 3600, Second))
	Day    = MustUnit(Default.NamedScaledUnit("d", nil, 86400, Second))

	Litre = MustUnit(Default.NamedScaledUnit("L", SIPrefixes, 1e-3, CubicMetre))
)

// Temperature scales.
var (
	Rankine    = MustUnit(Default.NamedScaledUnit("°R", nil, 5.0/9.0, Kelvin))
	Celsius    = Default.NamedOffsetUnit("°C", 273.15, Kelvin)
	Fahrenheit = Default.NamedOffsetUnit("°F", 459.67, Rankine)
)
