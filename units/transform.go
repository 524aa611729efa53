// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import "fmt"

// TransformKind identifies how a Transform maps values.
type TransformKind int

const (
	// KindIdentity returns values unchanged.
	KindIdentity TransformKind = iota
	// KindInverse returns 1/x, between reciprocal units such as m/s and s/m.
	KindInverse
	// KindAffine scales and shifts, as between feet and metres or degrees
	// Celsius and kelvin.
	KindAffine
	// KindAffineInverse is the reciprocal relation between units that also
	// carry a scale or offset, such as min/km and km/h.
	KindAffineInverse
)

func (k TransformKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindInverse:
		return "inverse"
	case KindAffine:
		return "affine"
	case KindAffineInverse:
		return "affine inverse"
	}
	return fmt.Sprintf("TransformKind(%d)", int(k))
}

// Transform converts values from one unit to another. Transforms are
// interned per kind and endpoints; obtain one when the same conversion is
// applied repeatedly.
//
// Values are mapped in stages: into the simple unit behind From (scale,
// then offset), through 1/x for the inverse kinds, and out of the simple
// unit behind To. Stages with a scale of 1 or an offset of 0 are skipped,
// which keeps conversions such as feet to metres exact.
//
// Two transforms are equal only if they have the same kind and the same
// endpoints.
type Transform struct {
	reg        *Registry
	kind       TransformKind
	from       Unit
	to         Unit
	fromScale  float64
	fromOffset float64
	toScale    float64
	toOffset   float64
}

type transformKey struct {
	kind TransformKind
	from Unit
	to   Unit
}

func (r *Registry) transform(to, from Unit) (*Transform, error) {
	simpleTo, toScale, toOffset := Decompose(to)
	simpleFrom, fromScale, fromOffset := Decompose(from)

	var kind TransformKind
	switch CompareDimensionality(simpleTo, simpleFrom) {
	case 1:
		kind = KindAffine
		if fromScale == toScale && fromOffset == toOffset {
			kind = KindIdentity
		}
	case -1:
		kind = KindAffineInverse
		if fromScale == 1 && toScale == 1 && fromOffset == 0 && toOffset == 0 {
			kind = KindInverse
		}
	default:
		return nil, newIncompatibleUnitsError("convert", from, to)
	}

	return r.transforms.intern(func() *Transform {
		t := &Transform{reg: r, kind: kind, from: from, to: to, fromScale: 1, toScale: 1}
		if kind != KindIdentity {
			t.fromScale, t.fromOffset = fromScale, fromOffset
			t.toScale, t.toOffset = toScale, toOffset
		}
		return t
	}, transformKey{kind: kind, from: from, to: to}), nil
}

// GetTransform returns the transform converting values in from to values
// in to.
func GetTransform(to, from Unit) (*Transform, error) {
	checkOperand("transform", to)
	return transformFrom(to, from)
}

func (t *Transform) Kind() TransformKind {
	return t.kind
}

func (t *Transform) From() Unit {
	return t.from
}

func (t *Transform) To() Unit {
	return t.to
}

func (t *Transform) IsIdentity() bool {
	return t.kind == KindIdentity
}

// Scale returns the factor of the affine kinds, to be applied before the
// reciprocal for KindAffineInverse.
func (t *Transform) Scale() float64 {
	return t.fromScale / t.toScale
}

// Offset returns the shift of KindAffine, so that Convert(x) is
// x*Scale() + Offset() up to rounding.
func (t *Transform) Offset() float64 {
	return (t.fromOffset - t.toOffset) / t.toScale
}

func (t *Transform) Convert(x float64) float64 {
	switch t.kind {
	case KindIdentity:
		return x
	case KindInverse:
		return 1 / x
	}

	if t.fromScale != 1 {
		x *= t.fromScale
	}
	if t.fromOffset != 0 {
		x += t.fromOffset
	}
	if t.kind == KindAffineInverse {
		x = 1 / x
	}
	if t.toOffset != 0 {
		x -= t.toOffset
	}
	if t.toScale != 1 {
		x /= t.toScale
	}
	return x
}

// InverseConvert maps a value in To back to From.
func (t *Transform) InverseConvert(x float64) float64 {
	switch t.kind {
	case KindIdentity:
		return x
	case KindInverse:
		return 1 / x
	}

	if t.toScale != 1 {
		x *= t.toScale
	}
	if t.toOffset != 0 {
		x += t.toOffset
	}
	if t.kind == KindAffineInverse {
		x = 1 / x
	}
	if t.fromOffset != 0 {
		x -= t.fromOffset
	}
	if t.fromScale != 1 {
		x /= t.fromScale
	}
	return x
}

// ConvertSlice converts values in place.
func (t *Transform) ConvertSlice(values []float64) {
	if t.kind == KindIdentity {
		return
	}
	for i, v := range values {
		values[i] = t.Convert(v)
	}
}

// ConvertFloat32s converts values in place. Reciprocals are taken in
// float32; the other kinds are computed in float64 and rounded once.
func (t *Transform) ConvertFloat32s(values []float32) {
	switch t.kind {
	case KindIdentity:
		return
	case KindInverse:
		for i, v := range values {
			values[i] = 1 / v
		}
		return
	}
	for i, v := range values {
		values[i] = float32(t.Convert(float64(v)))
	}
}

// InverseConvertSlice maps values in To back to From, in place.
func (t *Transform) InverseConvertSlice(values []float64) {
	if t.kind == KindIdentity {
		return
	}
	for i, v := range values {
		values[i] = t.InverseConvert(v)
	}
}

// Inverse returns the canonical transform of the opposite direction.
func (t *Transform) Inverse() *Transform {
	inverse, err := t.reg.transform(t.from, t.to)
	if err != nil {
		// the dimensional relation is symmetric
		panic(err)
	}
	return inverse
}

func (t *Transform) Equals(other *Transform) bool {
	if other == nil {
		return false
	}
	return t == other || (t.kind == other.kind && t.from.Equals(other.from) && t.to.Equals(other.to))
}

func (t *Transform) String() string {
	return fmt.Sprintf("%s transform from %q to %q", t.kind, t.from, t.to)
}
