package css

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/tyse/core/dimen"
	. "github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent Percent
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| ViewRel unit
	| FontRel unit
	| ContentRel Min N
	| ContentRel Max N
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// percentage creates a %-relative dimension and remembers the integral
// percentage for resolving it against a reference length.
func percentage(n int) DimenT {
	return DimenT{percent: FromInt(n), d: dimen.DU(n), flags: dimenPercent}
}

// ContentDependent creates a dimension of min-content, max-content or fit-content.
func ContentDependent(flag uint32) DimenT {
	return DimenT{flags: flag & contentMask}
}

// IsAuto is true for dimension `auto`.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsPercent is true for %-relative dimensions.
func (d DimenT) IsPercent() bool {
	return d.flags&relativeMask == dimenPercent
}

// IsContentDependent is true for min-content, max-content and fit-content.
func (d DimenT) IsContentDependent() bool {
	return d.flags&contentMask != 0
}

// Unwrap returns the fixed value of a dimension, or 0 for non-fixed dimensions.
func (d DimenT) Unwrap() dimen.DU {
	if d.IsAbsolute() {
		return d.d
	}
	return 0
}

// Resolve returns the fixed value of a dimension or, for percentages,
// the value relative to a reference length. ok is false for all other
// kinds of dimensions.
func (d DimenT) Resolve(ref dimen.DU) (x dimen.DU, ok bool) {
	switch {
	case d.IsAbsolute():
		return d.d, true
	case d.IsPercent():
		return ref * d.d / 100, true
	}
	return 0, false
}

// Equals compares two dimensions for identity.
func (d DimenT) Equals(other DimenT) bool {
	return d.flags == other.flags && d.d == other.d
}

func (d DimenT) String() string {
	switch {
	case d.IsAuto():
		return "auto"
	case d.IsAbsolute():
		return fmt.Sprintf("%dsp", int64(d.d))
	case d.IsPercent():
		return fmt.Sprintf("%d%%", int64(d.d))
	case d.flags&contentMask == DimenContentMin:
		return "min-content"
	case d.flags&contentMask == DimenContentMax:
		return "max-content"
	case d.flags&contentMask == DimenContentFit:
		return "fit-content"
	}
	return "none"
}

// pxPerPt is the size of a CSS pixel in points.
const pxPerPt = 0.75

// ParseDimen parses a dimension property, as used for width and height.
// Recognized are `auto`, `none`, `inherit`, `initial`, the content keywords
// and lengths in units pt and px, as well as percentages. A bare 0 is a
// valid length.
func ParseDimen(p style.Property) (DimenT, error) {
	s := strings.TrimSpace(strings.ToLower(p.String()))
	switch s {
	case "", "auto":
		return Auto(), nil
	case "none":
		return DimenT{}, nil
	case "inherit":
		return Inherit(), nil
	case "initial":
		return Initial(), nil
	case "min-content":
		return ContentDependent(DimenContentMin), nil
	case "max-content":
		return ContentDependent(DimenContentMax), nil
	case "fit-content":
		return ContentDependent(DimenContentFit), nil
	case "0":
		return JustDimen(0), nil
	}
	if strings.HasSuffix(s, "%") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
		if err != nil {
			return Auto(), fmt.Errorf("illegal percentage %q: %w", s, err)
		}
		return percentage(n), nil
	}
	var scale float64 // points per unit
	switch {
	case strings.HasSuffix(s, "pt"):
		scale = 1
	case strings.HasSuffix(s, "px"):
		scale = pxPerPt
	default:
		return Auto(), fmt.Errorf("unknown unit for dimension %q", s)
	}
	x, err := strconv.ParseFloat(s[:len(s)-2], 64)
	if err != nil {
		return Auto(), fmt.Errorf("illegal dimension %q: %w", s, err)
	}
	return JustDimen(dimen.DU(x * scale * float64(dimen.PT))), nil
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags & kindMask) == (d.flags & kindMask):
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&dimenPercent > 0) != (d.flags&dimenPercent > 0) {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.flags&dimenAbsolute > 0 {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *Percent) *Matcher {
	if m.dimen.flags&dimenPercent > 0 {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns is a set of results for pattern matching on dimensions.
type DimenPatterns[T any] struct {
	Auto    T
	Inherit T
	Initial T
	Just    T
	Default T
}

// DimenPattern starts a pattern matching expression for a dimension.
func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

// MatchExpr is part of pattern matching for DimenT types and intended to be
// instantiated using `DimenPattern()` only.
type MatchExpr[T any] struct {
	dimen DimenT
}

// OneOf selects the result for the kind of dimension.
func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.flags&kindMask == dimenAuto:
		return patterns.Auto
	case m.dimen.flags&kindMask == dimenAbsolute:
		return patterns.Just
	case m.dimen.flags&kindMask == dimenInitial:
		return patterns.Initial
	case m.dimen.flags&kindMask == dimenInherit:
		return patterns.Inherit
	}
	return patterns.Default
}

// With extracts the fixed value of a dimension.
func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

// Const returns x.
func (m *MatchExpr[T]) Const(x T) T {
	return x
}
