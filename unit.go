// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"unitcalc/units"
)

type UnitDef struct {
	unit        units.Unit
	description string
	category    string
}

var (
	gallon      = units.MustUnit(units.Default.NamedScaledUnit("gal", nil, 3.785411784e-3, units.CubicMetre)) // 231 cubic inches by definition
	deltaC      = units.Kelvin.Rename("°CΔ", nil)
	deltaF      = units.MustUnit(units.Default.NamedScaledUnit("°FΔ", nil, 5.0/9.0, units.Kelvin))
	fluidOunce  = units.MustUnit(units.Default.NamedScaledUnit("foz", nil, 1.0/128.0, gallon))
	cup         = units.MustUnit(units.Default.NamedScaledUnit("cup", nil, 1.0/16.0, gallon))
	pint        = units.MustUnit(units.Default.NamedScaledUnit("pt", nil, 1.0/8.0, gallon))
	quart       = units.MustUnit(units.Default.NamedScaledUnit("qt", nil, 1.0/4.0, gallon))
	kmPerHour   = units.MustUnit(units.Default.NamedScaledUnit("km/h", nil, 1000.0/3600.0, units.MetrePerSecond))
	milePerHour = units.MustUnit(units.Default.NamedScaledUnit("mph", nil, 1609.344/3600.0, units.MetrePerSecond))
)

var UNITS = map[string]UnitDef{
	"m":   {unit: units.Metre, description: "meters", category: "length"},
	"km":  {unit: units.Kilometre, description: "kilometers", category: "length"},
	"in":  {unit: units.Inch, description: "inches", category: "length"},
	"ft":  {unit: units.Foot, description: "feet", category: "length"},
	"yd":  {unit: units.Yard, description: "yards", category: "length"},
	"mi":  {unit: units.Mile, description: "miles", category: "length"},
	"nmi": {unit: units.NauticalMile, description: "nautical miles", category: "length"},

	"g":  {unit: units.Gram, description: "grams", category: "mass"},
	"kg": {unit: units.Kilogram, description: "kilograms", category: "mass"},
	"oz": {unit: units.Ounce, description: "ounces", category: "mass"},
	"lb": {unit: units.Pound, description: "pounds", category: "mass"},

	"l":   {unit: units.Litre, description: "liters", category: "volume"},
	"L":   {unit: units.Litre, description: "liters", category: "volume"},
	"foz": {unit: fluidOunce, description: "fl. ounces", category: "volume"},
	"cup": {unit: cup, description: "cups", category: "volume"},
	"pt":  {unit: pint, description: "pints", category: "volume"},
	"qt":  {unit: quart, description: "quarts", category: "volume"},
	"gal": {unit: gallon, description: "us gallons", category: "volume"},

	"s":   {unit: units.Second, description: "seconds", category: "time"},
	"min": {unit: units.Minute, description: "minutes", category: "time"},
	"h":   {unit: units.Hour, description: "hours", category: "time"},
	"hr":  {unit: units.Hour, description: "hours", category: "time"},
	"day": {unit: units.Day, description: "days", category: "time"},

	"kph": {unit: kmPerHour, description: "kilometers per hour", category: "speed"},
	"mph": {unit: milePerHour, description: "miles per hour", category: "speed"},

	"K":  {unit: units.Kelvin, description: "kelvin", category: "temperature"},
	"C":  {unit: units.Celsius, description: "celsius", category: "temperature"},
	"°C": {unit: units.Celsius, description: "celsius", category: "temperature"},
	"F":  {unit: units.Fahrenheit, description: "fahrenheit", category: "temperature"},
	"°F": {unit: units.Fahrenheit, description: "fahrenheit", category: "temperature"},
	"R":  {unit: units.Rankine, description: "rankine", category: "temperature"},
	"°R": {unit: units.Rankine, description: "rankine", category: "temperature"},
	"dC": {unit: deltaC, description: "delta celsius", category: "temperature"},
	"dF": {unit: deltaF, description: "delta fahrenheit", category: "temperature"},

	"A":   {unit: units.Ampere, description: "amperes", category: "electric"},
	"V":   {unit: units.Volt, description: "volts", category: "electric"},
	"W":   {unit: units.Watt, description: "watts", category: "power"},
	"J":   {unit: units.Joule, description: "joules", category: "energy"},
	"N":   {unit: units.Newton, description: "newtons", category: "force"},
	"Pa":  {unit: units.Pascal, description: "pascals", category: "pressure"},
	"Hz":  {unit: units.Hertz, description: "hertz", category: "frequency"},
	"mol": {unit: units.Mole, description: "moles", category: "amount of substance"},
	"cd":  {unit: units.Candela, description: "candelas", category: "luminous intensity"},
}

// defineUnit adds or replaces a unit in the table.
func defineUnit(symbol string, u units.Unit, description, category string) {
	UNITS[symbol] = UnitDef{unit: u, description: description, category: category}
}

var errNotAUnit = errors.New("not a unit")

// lookupUnit resolves a single symbol: the table first, then an SI prefix
// on a prefixable unit, as in mm, kN or mg. A leading 'u' stands for µ.
func lookupUnit(symbol string) (units.Unit, bool) {
	if def, ok := UNITS[symbol]; ok {
		return def.unit, true
	}

	prefix, rest, ok := units.SIPrefixes.Split(symbol)
	if !ok && strings.HasPrefix(symbol, "u") && len(symbol) > 1 {
		prefix, rest, ok = units.Micro, symbol[1:], true
	}
	if !ok {
		return nil, false
	}

	var unit units.Unit
	switch def, found := UNITS[rest]; {
	case rest == "g":
		unit = units.Kilogram
	case found:
		unit = def.unit
	default:
		return nil, false
	}

	prefixed, err := units.Prefixed(unit, prefix)
	if err != nil {
		return nil, false
	}
	return prefixed, true
}

var (
	sepRe  = regexp.MustCompile(`^([.*·/])`)
	unitRe = regexp.MustCompile(`^([°µa-zA-Z]+)(\^(-?\d+))?`)
)

// parseUnits parses a unit expression such as m, km/h, kg·m/s^2 or /s.
// "num" yields nil, which removes units. Errors other than errNotAUnit
// come from the unit algebra.
func parseUnits(input string) (units.Unit, error) {
	if input == "num" {
		return nil, nil
	}
	if input == "" {
		return nil, errNotAUnit
	}

	var result units.Unit
	nextPosition := 0
	sign := 1
	if input[0] == '/' && len(input) > 1 { // no numerator
		nextPosition = 1
		sign = -1
	}

	for {
		match := unitRe.FindStringSubmatch(input[nextPosition:])
		if match == nil {
			return nil, errNotAUnit
		}

		unit, ok := lookupUnit(match[1])
		if !ok {
			return nil, errNotAUnit
		}

		power := 1
		if match[3] != "" {
			var err error
			if power, err = strconv.Atoi(match[3]); err != nil {
				return nil, errNotAUnit
			}
		}

		term, err := unit.Pow(sign * power)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = term
		} else if result, err = result.Multiply(term); err != nil {
			return nil, err
		}

		nextPosition += len(match[0])
		if nextPosition >= len(input) {
			break
		}

		sepMatch := sepRe.FindStringSubmatch(input[nextPosition:])
		if sepMatch == nil {
			return nil, errNotAUnit
		}
		if sepMatch[1] == "/" {
			if sign == -1 {
				return nil, errNotAUnit // second instance of /
			}
			sign = -1
		}
		nextPosition += len(sepMatch[1])
	}

	// name compound units after the expression that built them
	if _, base := result.(*units.BaseUnit); !base && result != units.Dimensionless && strings.ContainsAny(input, ".*·/") {
		result = result.Rename(input, nil)
	}
	return result, nil
}

// definition expresses u in base units, as in "ft = 0.3048 m (length)".
func definition(u units.Unit) string {
	simple, scale, offset := units.Decompose(u)
	quantity := u.QuantityName()
	if quantity == "" {
		quantity = simple.QuantityName()
	}
	base := u.Registry().DerivedUnit(simple.Factors()...).Symbol()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = ", u.Symbol())
	if scale != 1 {
		fmt.Fprintf(&sb, "%s ", formatAmount(scale))
	}
	sb.WriteString(base)
	if offset != 0 {
		fmt.Fprintf(&sb, " + %s %s", formatAmount(offset), base)
	}
	if quantity != "" {
		fmt.Fprintf(&sb, " (%s)", quantity)
	}
	return sb.String()
}

// formatAmount writes x in plain decimal notation, never with an exponent.
func formatAmount(x float64) string {
	return decimal.NewFromFloat(x).String()
}

// listUnits returns the unit table grouped by category, one line per
// category name followed by its entries.
func listUnits() []string {
	byCategory := map[string][]string{}
	for symbol, def := range UNITS {
		byCategory[def.category] = append(byCategory[def.category], fmt.Sprintf("%s (%s)", def.description, symbol))
	}

	categories := make([]string, 0, len(byCategory))
	for category := range byCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var lines []string
	for _, category := range categories {
		entries := byCategory[category]
		sort.Strings(entries)
		lines = append(lines, category, "  "+strings.Join(entries, ", "))
	}
	return lines
}
