package restyle

import (
	"errors"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/damage"
	"github.com/npillmayer/reflow/tree"
)

// Styler computes the style of an element. It is implemented by
// cssom.Engine. The parent of an element is styled before the element.
type Styler interface {
	Style(*styledtree.StyNode) (*css.ComputedStyle, error)
}

// Stats counts the work of restyle traversals.
type Stats struct {
	Restyled int // elements with recomputed style
	Created  int // nodes with new layout data
}

// Traversal restyles elements and stores the damage of style changes with
// their layout data. Traversals run sequentially.
type Traversal struct {
	styler Styler
	table  *boxtree.Table
	errs   []error
	stats  Stats
}

// New creates a traversal which styles elements with styler and keeps
// layout data in table.
func New(styler Styler, table *boxtree.Table) *Traversal {
	return &Traversal{styler: styler, table: table}
}

// Stats returns the counters of all runs of the traversal.
func (t *Traversal) Stats() Stats {
	return t.stats
}

// ProcessPreorder restyles a node, if necessary. Nodes visited for the
// first time get layout data flagged for reconstruction. For text nodes,
// only layout data is created.
func (t *Traversal) ProcessPreorder(sn *styledtree.StyNode) {
	data, created := t.table.Ensure(sn.ID())
	if created {
		t.stats.Created++
	}
	if !sn.IsElement() {
		sn.ClearDirty()
		return
	}
	if created {
		data.AddDamage(damage.Reconstruct)
	}
	if sn.ClearDirty() || created || data.Styles().Primary == nil {
		t.restyle(sn, data)
	}
	if sn.TakeContentChanged() {
		data.AddDamage(damage.RecollectBoxTreeChildren | damage.RecomputeInlineContentSizes)
	}
	sn.ClearDirtyDescendants()
}

func (t *Traversal) restyle(sn *styledtree.StyNode, data *boxtree.ElementData) {
	cs, err := t.styler.Style(sn)
	if err != nil {
		tracer().Infof("restyle of %s: %v", sn, err)
		t.errs = append(t.errs, err)
	}
	if cs == nil {
		return
	}
	t.stats.Restyled++
	old := data.Styles().Primary
	data.SetPrimaryStyle(cs)
	dmg := Diff(old, cs)
	data.AddDamage(dmg)
	if InheritedChange(old, cs) {
		sn.MarkChildrenDirty()
	}
	tracer().Debugf("restyled %s, damage %s", sn, dmg)
}

// ProcessPostorder is part of the traversal contract, but restyling never
// needs a post-order step. Calling it is an error.
func (t *Traversal) ProcessPostorder(sn *styledtree.StyNode) {
	panic("restyle: ProcessPostorder should never be called")
}

// NeedsPostorderTraversal is false.
func (t *Traversal) NeedsPostorderTraversal() bool {
	return false
}

// TextNodeNeedsTraversal is true for text nodes without layout data and
// for text nodes whose parent has damage.
func (t *Traversal) TextNodeNeedsTraversal(sn *styledtree.StyNode) bool {
	if _, ok := t.table.Get(sn.ID()); !ok {
		return true
	}
	if p := sn.ParentNode(); p != nil {
		if pd, ok := t.table.Get(p.ID()); ok && !pd.Damage().IsEmpty() {
			return true
		}
	}
	return false
}

// needsTraversal is true for elements which are dirty themselves, which
// have dirty descendants or which have not been styled yet.
func (t *Traversal) needsTraversal(sn *styledtree.StyNode) bool {
	if sn.IsDirty() || sn.HasDirtyDescendants() {
		return true
	}
	data, ok := t.table.Get(sn.ID())
	return !ok || data.Styles().Primary == nil
}

// Traverse restyles a tree top-down, starting at root. Subtrees without
// dirty nodes are skipped. Style errors do not stop the traversal; they
// are collected and returned together.
func (t *Traversal) Traverse(root *styledtree.StyNode) error {
	t.errs = t.errs[:0]
	err := tree.TopDown(&root.Node, func(n, parent *tree.Node[*styledtree.StyNode], position int) error {
		sn := n.Payload
		if sn.IsText() {
			if t.TextNodeNeedsTraversal(sn) {
				t.ProcessPreorder(sn)
			}
			return tree.ErrSkipChildren
		}
		if !t.needsTraversal(sn) {
			return tree.ErrSkipChildren
		}
		t.ProcessPreorder(sn)
		return nil
	})
	if err != nil {
		t.errs = append(t.errs, err)
	}
	tracer().Infof("restyle traversal: %+v", t.stats)
	return errors.Join(t.errs...)
}
