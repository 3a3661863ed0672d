package fragment

import (
	"github.com/npillmayer/reflow/dom/styledtree"
)

// ContainingBlockQueryInfo is the position of a containing block within
// the coordinate system of the root, together with its scroll offset.
type ContainingBlockQueryInfo struct {
	Rect   Rect  // absolute rectangle of the containing block
	Scroll Point // scroll offset applied to the containing block's content
}

// ContainingBlockManager chains containing block information during a
// descent into a fragment tree. Managers are values; descending produces
// a new manager and never changes the receiver.
type ContainingBlockManager struct {
	parent *ContainingBlockManager
	info   ContainingBlockQueryInfo
}

// NewContainingBlockManager creates a manager for the root of a fragment
// tree, which is positioned at the origin.
func NewContainingBlockManager(root *Fragment) ContainingBlockManager {
	return ContainingBlockManager{
		info: ContainingBlockQueryInfo{
			Rect:   root.Rect,
			Scroll: root.Scroll,
		},
	}
}

// Info returns the information for the current containing block.
func (m ContainingBlockManager) Info() ContainingBlockQueryInfo {
	return m.info
}

// Depth returns the number of containing blocks above the current one.
func (m ContainingBlockManager) Depth() int {
	d := 0
	for p := m.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// AbsoluteRect returns the rectangle of a child fragment of the current
// containing block, in the coordinate system of the root.
func (m ContainingBlockManager) AbsoluteRect(child *Fragment) Rect {
	return child.Rect.Translate(m.info.Rect.TopL.Sub(m.info.Scroll))
}

// Descend returns a manager for a child fragment as the new containing block.
func (m ContainingBlockManager) Descend(child *Fragment) ContainingBlockManager {
	parent := m
	return ContainingBlockManager{
		parent: &parent,
		info: ContainingBlockQueryInfo{
			Rect:   m.AbsoluteRect(child),
			Scroll: child.Scroll,
		},
	}
}

// ClientRects returns the absolute rectangles of all fragments generated
// for a node, in tree order. Split inline content may generate more than
// one rectangle.
func ClientRects(root *Fragment, node styledtree.NodeID) []Rect {
	if root == nil {
		return nil
	}
	type visit struct {
		f   *Fragment
		abs Rect
		cbm ContainingBlockManager
	}
	var rects []Rect
	rootManager := NewContainingBlockManager(root)
	stack := []visit{{f: root, abs: root.Rect, cbm: rootManager}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v.f.Node == node && v.f.Kind != AnonymousFragment && v.f.Kind != LineFragment {
			rects = append(rects, v.abs)
		}
		for i := len(v.f.Children) - 1; i >= 0; i-- {
			ch := v.f.Children[i]
			stack = append(stack, visit{
				f:   ch,
				abs: v.cbm.AbsoluteRect(ch),
				cbm: v.cbm.Descend(ch),
			})
		}
	}
	tracer().Debugf("client rects for #%d: %v", node, rects)
	return rects
}

// BoundingClientRect returns the union of all client rects of a node.
// It returns false if the node has no fragments.
func BoundingClientRect(root *Fragment, node styledtree.NodeID) (Rect, bool) {
	rects := ClientRects(root, node)
	if len(rects) == 0 {
		return Rect{}, false
	}
	r := rects[0]
	for _, s := range rects[1:] {
		r = r.Union(s)
	}
	return r, true
}
