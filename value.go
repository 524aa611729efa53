// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"math"

	"unitcalc/units"
)

// Value is a number with optional units; a nil unit means a plain number.
type Value struct {
	number float64
	unit   units.Unit
}

func (v Value) unitless() bool {
	if v.unit == nil {
		return true
	}
	d, ok := v.unit.(*units.DerivedUnit)
	return ok && d.IsDimensionless()
}

func (v Value) symbol() string {
	if v.unitless() {
		return ""
	}
	return v.unit.Symbol()
}

func (v Value) String() string {
	if v.unitless() {
		return fmt.Sprint(v.number)
	}
	return fmt.Sprintf("%v %s", v.number, v.unit)
}

// unitOrDimensionless lets plain numbers take part in unit algebra.
func (v Value) unitOrDimensionless() units.Unit {
	if v.unit == nil {
		return units.Dimensionless
	}
	return v.unit
}

func (v Value) binaryOp(op string, right Value) (Value, error) {
	switch op {
	case "+", "-":
		r, err := v.addend(op, right)
		if err != nil {
			return Value{}, err
		}
		if op == "-" {
			r = -r
		}
		return Value{number: v.number + r, unit: v.unit}, nil

	case "*", ".", units.DOT, "•":
		unit, err := v.unitOrDimensionless().Multiply(right.unitOrDimensionless())
		if err != nil {
			return Value{}, err
		}
		return Value{number: v.number * right.number, unit: unit}, nil

	case "/":
		unit, err := v.unitOrDimensionless().Divide(right.unitOrDimensionless())
		if err != nil {
			return Value{}, err
		}
		return Value{number: v.number / right.number, unit: unit}, nil

	case "%":
		if !v.unitless() || !right.unitless() {
			return Value{}, fmt.Errorf("'%s' requires dimensionless values, got %q and %q", op, v.symbol(), right.symbol())
		}
		return Value{number: math.Mod(v.number, right.number)}, nil

	case "**", "pow":
		if !right.unitless() {
			return Value{}, fmt.Errorf("exponent of '%s' must be dimensionless, got %q", op, right.symbol())
		}
		if v.unitless() {
			return Value{number: math.Pow(v.number, right.number)}, nil
		}
		unit, err := v.unit.PowFloat(right.number)
		if err != nil {
			return Value{}, err
		}
		return Value{number: math.Pow(v.number, right.number), unit: unit}, nil
	}

	return Value{}, fmt.Errorf("unknown binary operation '%s'", op)
}

// addend converts right into the units of v for addition. Absolute
// temperatures only add to the same scale or to temperature differences,
// which convert by scale alone: 20 °C + 18 °FΔ is 30 °C.
func (v Value) addend(op string, right Value) (float64, error) {
	if v.unitless() && right.unitless() {
		return right.number, nil
	}

	left, isOffset := v.unit.(*units.OffsetUnit)
	if _, rightOffset := right.unit.(*units.OffsetUnit); rightOffset {
		if !isOffset || !left.Equals(right.unit) {
			return 0, &units.IncompatibleUnitsError{Op: opName(op), From: v.unitOrDimensionless(), To: right.unit}
		}
		return right.number, nil
	}
	if isOffset {
		return left.Unit().Convert(right.number, right.unitOrDimensionless())
	}

	return v.unitOrDimensionless().Convert(right.number, right.unitOrDimensionless())
}

func opName(op string) string {
	if op == "-" {
		return "subtract"
	}
	return "add"
}

func (v Value) unaryOp(op string) (Value, error) {
	switch op {
	case "chs":
		return Value{number: -v.number, unit: v.unit}, nil
	case "n":
		return Value{number: v.number}, nil
	case "r":
		unit, err := v.unitOrDimensionless().Pow(-1)
		if err != nil {
			return Value{}, err
		}
		return Value{number: 1 / v.number, unit: unit}, nil
	case "sqrt":
		unit, err := v.unitOrDimensionless().PowFloat(0.5)
		if err != nil {
			return Value{}, err
		}
		return Value{number: math.Sqrt(v.number), unit: unit}, nil
	}

	return Value{}, fmt.Errorf("unknown unary operation '%s'", op)
}

// apply attaches unit to a plain number, or converts a value that already
// has units into unit. A nil unit drops the units.
func (v Value) apply(unit units.Unit) (Value, error) {
	if unit == nil {
		return Value{number: v.number}, nil
	}
	if v.unitless() {
		return Value{number: v.number, unit: unit}, nil
	}

	x, err := unit.Convert(v.number, v.unit)
	if err != nil {
		return Value{}, err
	}
	return Value{number: x, unit: unit}, nil
}
