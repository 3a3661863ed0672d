package incremental

import (
	"fmt"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/damage"
)

// Stats counts the work of a damage traversal.
type Stats struct {
	Visited       int // elements visited
	CachesCleared int // elements with cleared fragment caches
	SizesCleared  int // elements with cleared intrinsic sizes
	StyleRepairs  int // elements with repaired style
}

// Traversal computes damage for elements, whose layout data lives in a
// table. A Traversal is not safe for concurrent use.
type Traversal struct {
	table *boxtree.Table
	stats Stats
}

// New creates a damage traversal for the layout data in table.
func New(table *boxtree.Table) *Traversal {
	return &Traversal{table: table}
}

// Stats returns the counters of all runs of the traversal.
func (t *Traversal) Stats() Stats {
	return t.stats
}

// frame is an element on the work stack, whose children are being visited.
type frame struct {
	node         *styledtree.StyNode
	data         *boxtree.ElementData
	style        *css.ComputedStyle
	original     damage.Damage // damage stored before the traversal
	combined     damage.Damage // stored damage combined with damage from the parent
	forChildren  damage.Damage
	fromChildren damage.Damage
	children     []*styledtree.StyNode
	next         int
}

// ComputeDamageAndRepairStyle combines the damage of node and its
// descendants with damage from the parent of node. It clears stale
// layout caches, repairs the styles of boxes which will be preserved and
// stores the damage which box tree construction has to act on. It
// returns the damage to report to the parent of node.
//
// Every element visited must have been styled. Calling it for an element
// without style data is a programming error and results in a panic.
func (t *Traversal) ComputeDamageAndRepairStyle(node *styledtree.StyNode, fromParent damage.Damage) damage.Damage {
	var stack []frame
	var result damage.Damage
	report := func(forParent damage.Damage) {
		if len(stack) == 0 {
			result = forParent
		} else {
			stack[len(stack)-1].fromChildren |= forParent
		}
	}
	if f, done, forParent := t.enter(node, fromParent); done {
		return forParent
	} else {
		stack = append(stack, f)
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.children) {
			child := top.children[top.next]
			top.next++
			f, done, forParent := t.enter(child, top.forChildren)
			if done {
				report(forParent)
			} else {
				stack = append(stack, f)
			}
			continue
		}
		f := *top
		stack = stack[:len(stack)-1]
		report(t.leave(&f))
	}
	tracer().Infof("damage for %s: %s, stats %+v", node, result, t.stats)
	return result
}

// enter combines the damage of an element with damage from its parent and
// decides how to propagate it to the element's children. It is done for
// elements with `display: none`, which do not propagate anything.
func (t *Traversal) enter(node *styledtree.StyNode, fromParent damage.Damage) (frame, bool, damage.Damage) {
	data, ok := t.table.Get(node.ID())
	if !ok || data.Styles().Primary == nil {
		tracer().Errorf("element %s has no style data", node)
		panic(fmt.Sprintf("computing damage for element %s before styling it", node))
	}
	t.stats.Visited++
	st := data.Styles().Primary
	original := data.Damage()
	combined := original | fromParent
	if st.IsDisplayNone() {
		if combined != original {
			data.SetDamage(combined)
		}
		return frame{}, true, combined
	}
	forChildren := combined
	if !combined.Contains(damage.RebuildBoxTree) {
		forChildren = combined.Truncate()
	}
	return frame{
		node:        node,
		data:        data,
		style:       st,
		original:    original,
		combined:    combined,
		forChildren: forChildren,
		children:    node.ElementChildren(),
	}, false, damage.None
}

// leave aggregates the damage reported by the children of an element.
func (t *Traversal) leave(f *frame) damage.Damage {
	dmg := f.combined
	if f.fromChildren.Contains(damage.RecollectBoxTreeChildren) {
		dmg |= damage.RecollectBoxTreeChildren
	}
	if dmg.HasBoxDamage() {
		dmg |= damage.Relayout
	}
	forParent := dmg | (f.fromChildren & damage.Relayout)
	if forParent.Contains(damage.Relayout) && dmg != damage.Reconstruct {
		f.data.ClearFragmentLayoutCache()
		t.stats.CachesCleared++
		// damage of the element itself invalidates its intrinsic sizes; damage
		// from children only if they asked for it
		if dmg.Contains(damage.Relayout) || f.fromChildren.Contains(damage.RecomputeInlineContentSizes) {
			f.data.InvalidateInlineContentSizes()
			t.stats.SizesCleared++
			if !f.data.IsAnonymous() && f.data.OuterInlineContentSizeDependsOnContent() {
				forParent |= damage.RecomputeInlineContentSizes
			}
		}
	}
	if !dmg.HasBoxDamage() {
		if !dmg.IsEmpty() {
			f.data.RepairStyle(f.style)
			t.stats.StyleRepairs++
		}
		if !f.original.IsEmpty() {
			f.data.SetDamage(damage.None)
		}
	} else if dmg != f.original {
		f.data.SetDamage(dmg)
	}
	tracer().Debugf("damage %s: own %s, for parent %s", f.node, dmg, forParent)
	return forParent
}
