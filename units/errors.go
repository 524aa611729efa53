// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrIncompatibleUnits is matched by every *IncompatibleUnitsError.
	ErrIncompatibleUnits = errors.New("incompatible units")
	// ErrUnitPower is matched by every *UnitPowerError.
	ErrUnitPower = errors.New("invalid unit power")
	// ErrPrefixNotAllowed is matched by every *PrefixError.
	ErrPrefixNotAllowed = errors.New("prefix not allowed")
)

// IncompatibleUnitsError reports an operation between units whose
// dimensionalities (or kinds) cannot be combined.
type IncompatibleUnitsError struct {
	Op   string
	From Unit
	To   Unit
}

func newIncompatibleUnitsError(op string, from, to Unit) *IncompatibleUnitsError {
	return &IncompatibleUnitsError{Op: op, From: from, To: to}
}

func (e *IncompatibleUnitsError) Error() string {
	if e.Op == "convert" {
		return fmt.Sprintf("incompatible units: cannot convert from %q to %q", symbolOf(e.From), symbolOf(e.To))
	}
	if e.To == nil {
		return fmt.Sprintf("incompatible units: cannot %s %q", e.Op, symbolOf(e.From))
	}
	return fmt.Sprintf("incompatible units: cannot %s %q and %q", e.Op, symbolOf(e.From), symbolOf(e.To))
}

func (e *IncompatibleUnitsError) Is(target error) bool {
	return target == ErrIncompatibleUnits
}

// UnitPowerError reports a fractional power that leaves some factor with a
// non-integral exponent.
type UnitPowerError struct {
	Power float64
	Unit  Unit
}

func (e *UnitPowerError) Error() string {
	return fmt.Sprintf("invalid unit power: %q cannot be raised to %s",
		symbolOf(e.Unit), strconv.FormatFloat(e.Power, 'g', -1, 64))
}

func (e *UnitPowerError) Is(target error) bool {
	return target == ErrUnitPower
}

// PrefixError reports a prefix outside the prefix set of a unit.
type PrefixError struct {
	Prefix Prefix
	Unit   Unit
}

func (e *PrefixError) Error() string {
	return fmt.Sprintf("prefix %s not allowed on %q", e.Prefix.Name, symbolOf(e.Unit))
}

func (e *PrefixError) Is(target error) bool {
	return target == ErrPrefixNotAllowed
}

// ConstructionError is the panic value for misuse of the constructors,
// such as a nil base unit or an empty quantity name. It is not meant to be
// recovered.
type ConstructionError struct {
	Reason string
}

func newConstructionError(format string, args ...any) *ConstructionError {
	return &ConstructionError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConstructionError) Error() string {
	return "invalid unit construction: " + e.Reason
}

func symbolOf(u Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.String()
}
