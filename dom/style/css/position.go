package css

import (
	"fmt"
	"strings"

	"github.com/npillmayer/reflow/dom/style"
)

// position is an enum type for the CSS position property.
type position uint8

const (
	positionUnset    position = iota
	positionStatic            // CSS static (default)
	positionRelative          // CSS relative
	positionAbsolute          // CSS absolute
	positionFixed             // CSS fixed
)

var positionNames = [...]string{"unset", "static", "relative", "absolute", "fixed"}

// PosDir is either Top, Right, Bottom or Left.
type PosDir uint8

// Directions of position offsets, in CSS shorthand order.
const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

var offsetKeys = [4]string{"top", "right", "bottom", "left"}

func (dir PosDir) String() string {
	if dir <= Left {
		return offsetKeys[dir]
	}
	return "?"
}

// Offsets are the inset properties of a positioned element, indexed by
// PosDir. Offsets which are not set are auto.
type Offsets [4]DimenT

// AutoOffsets returns offsets which are all auto.
func AutoOffsets() Offsets {
	return Offsets{Auto(), Auto(), Auto(), Auto()}
}

/*
type PositionT
	= Unset
	| Static
	| Relative Offsets
	| Absolute Offsets
	| Fixed Offsets
*/

// PositionT is an option type for CSS positions. Position values are
// comparable.
type PositionT struct {
	kind    position
	offsets Offsets
}

// Static creates a CSS position of value `static`.
func Static() PositionT {
	return PositionT{kind: positionStatic, offsets: AutoOffsets()}
}

// Relative creates a CSS position of value `relative`.
func Relative(offsets Offsets) PositionT {
	return PositionT{kind: positionRelative, offsets: offsets}
}

// Absolute creates a CSS position of value `absolute`.
func Absolute(offsets Offsets) PositionT {
	return PositionT{kind: positionAbsolute, offsets: offsets}
}

// Fixed creates a CSS position of value `fixed`.
func Fixed(offsets Offsets) PositionT {
	return PositionT{kind: positionFixed, offsets: offsets}
}

// Position returns a position without offsets from a property string.
// Illegal input results in an unset position.
func Position(p style.Property) PositionT {
	switch strings.ToLower(strings.TrimSpace(p.String())) {
	case "static":
		return Static()
	case "relative":
		return Relative(AutoOffsets())
	case "absolute":
		return Absolute(AutoOffsets())
	case "fixed":
		return Fixed(AutoOffsets())
	}
	return PositionT{}
}

// ParsePosition creates a position from the `position` property and, for
// positioned elements, the inset properties `top`, `right`, `bottom` and
// `left`, as returned by get. Malformed insets are auto and reported.
func ParsePosition(get func(key string) style.Property) (PositionT, error) {
	pos := Position(get("position"))
	if pos.kind < positionRelative {
		return pos, nil
	}
	var errs []string
	for dir, key := range offsetKeys {
		d, err := ParseDimen(get(key))
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
			d = Auto()
		}
		pos.offsets[dir] = d
	}
	if len(errs) > 0 {
		return pos, fmt.Errorf("illegal offsets: %s", strings.Join(errs, "; "))
	}
	return pos, nil
}

// Offset returns the inset for a direction. Unpositioned elements have
// auto insets.
func (p PositionT) Offset(dir PosDir) DimenT {
	if p.kind < positionRelative || dir > Left {
		return Auto()
	}
	return p.offsets[dir]
}

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsRelative returns true if p represents a relative position.
func (p PositionT) IsRelative() bool {
	return p.kind == positionRelative
}

// IsAbsolute returns true if p represents an absolute position.
func (p PositionT) IsAbsolute() bool {
	return p.kind == positionAbsolute
}

// IsFixed returns true if p represents a fixed position.
func (p PositionT) IsFixed() bool {
	return p.kind == positionFixed
}

// IsOutOfFlow returns true for absolute and fixed positions, i.e. for
// boxes which are taken out of the normal flow.
func (p PositionT) IsOutOfFlow() bool {
	return p.kind == positionAbsolute || p.kind == positionFixed
}

func (p PositionT) String() string {
	return positionNames[p.kind]
}

// --- Expression matching ---------------------------------------------------

// PositionPatterns holds a result for each kind of position.
type PositionPatterns[T any] struct {
	Unset    T
	Static   T
	Absolute T
	Relative T
	Fixed    T
	Default  T
}

// PositionPattern starts matching a position against patterns:
//
//	shift := css.PositionPattern[bool](pos).OneOf(css.PositionPatterns[bool]{
//		Relative: true,
//	})
func PositionPattern[T any](p PositionT) *PMatchExpr[T] {
	return &PMatchExpr[T]{pos: p}
}

// PMatchExpr is part of pattern matching for PositionT types and intended
// to be instantiated using PositionPattern only.
type PMatchExpr[T any] struct {
	pos PositionT
}

// OneOf returns the pattern for the kind of the position, or the
// default pattern.
func (m *PMatchExpr[T]) OneOf(patterns PositionPatterns[T]) T {
	switch m.pos.kind {
	case positionUnset:
		return patterns.Unset
	case positionStatic:
		return patterns.Static
	case positionAbsolute:
		return patterns.Absolute
	case positionRelative:
		return patterns.Relative
	case positionFixed:
		return patterns.Fixed
	}
	return patterns.Default
}

// With extracts the offsets of the position while matching.
func (m *PMatchExpr[T]) With(o *Offsets) *PMatchExpr[T] {
	if o != nil {
		*o = m.pos.offsets
	}
	return m
}

// Const returns x.
func (m *PMatchExpr[T]) Const(x T) T {
	return x
}
