/*
Package damage defines the restyle damage of elements.

Damage describes what has to be recomputed for an element after a change
of its style or content. Damage is a set of bits, forming a hierarchy:
rebuilding an element's box implies re-collecting its box tree children,
recomputing intrinsic inline sizes and relayout. Reconstruct is the
damage of an element which has never been laid out and contains every
other bit.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package damage

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.damage'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.damage")
}

// Damage is a set of damage bits.
type Damage uint8

// Damage bits.
const (
	Repaint                     Damage = 1 << iota // style changed, geometry did not
	Relayout                                       // geometry has to be recomputed
	RecomputeInlineContentSizes                    // intrinsic inline sizes are stale
	RecollectBoxTreeChildren                       // box tree children have to be re-collected
	rebuildBox                                     // the element's own box has to be rebuilt
)

// None is the empty damage.
const None Damage = 0

// RebuildBoxTree is the damage of an element whose box has to be rebuilt.
const RebuildBoxTree = rebuildBox | RecollectBoxTreeChildren | RecomputeInlineContentSizes | Relayout

// Reconstruct is the damage of an element which has never been laid out.
const Reconstruct = RebuildBoxTree | Repaint

// styleOnly are the bits which are meaningful for style-only propagation.
const styleOnly = Repaint | Relayout

// IsEmpty is true if no damage bit is set.
func (d Damage) IsEmpty() bool {
	return d == None
}

// Contains is true if all bits of other are set in d.
func (d Damage) Contains(other Damage) bool {
	return d&other == other
}

// Intersects is true if some bit of other is set in d.
func (d Damage) Intersects(other Damage) bool {
	return d&other != 0
}

// HasBoxDamage is true if an element's box or its box tree children
// have to be rebuilt.
func (d Damage) HasBoxDamage() bool {
	return d.Intersects(rebuildBox | RecollectBoxTreeChildren)
}

// Truncate keeps only those bits which are propagated to children
// for a style-only change.
func (d Damage) Truncate() Damage {
	return d & styleOnly
}

// With returns d with all bits of other set.
func (d Damage) With(other Damage) Damage {
	return d | other
}

// Without returns d with all bits of other cleared.
func (d Damage) Without(other Damage) Damage {
	return d &^ other
}

var damageNames = []struct {
	bit  Damage
	name string
}{
	{Repaint, "repaint"},
	{Relayout, "relayout"},
	{RecomputeInlineContentSizes, "inline-sizes"},
	{RecollectBoxTreeChildren, "recollect"},
	{rebuildBox, "rebuild"},
}

func (d Damage) String() string {
	switch d {
	case None:
		return "none"
	case Reconstruct:
		return "reconstruct"
	case RebuildBoxTree:
		return "rebuild-box-tree"
	}
	var b strings.Builder
	for _, n := range damageNames {
		if d.Contains(n.bit) {
			if b.Len() > 0 {
				b.WriteByte('|')
			}
			b.WriteString(n.name)
		}
	}
	return b.String()
}
