package reflow

import (
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/tyse/core/dimen"
)

// Metrics are the font metrics of the toy text shaper.
type Metrics struct {
	CharAdvance dimen.DU // advance of every character, including spaces
	LineHeight  dimen.DU
}

// DefaultMetrics returns metrics for a 10pt monospace font.
func DefaultMetrics() Metrics {
	return Metrics{CharAdvance: 6 * dimen.PT, LineHeight: 12 * dimen.PT}
}

// Stats counts the work of a layouter.
type Stats struct {
	BoxesLaidOut  int
	CacheHits     int
	SizesComputed int
}

// Layouter lays out box trees. It is not safe for concurrent use.
type Layouter struct {
	metrics Metrics
	scroll  map[styledtree.NodeID]fragment.Point
	stats   Stats
}

// New creates a layouter with the given metrics. Zero metrics are replaced
// by defaults.
func New(m Metrics) *Layouter {
	d := DefaultMetrics()
	if m.CharAdvance <= 0 {
		m.CharAdvance = d.CharAdvance
	}
	if m.LineHeight <= 0 {
		m.LineHeight = d.LineHeight
	}
	return &Layouter{metrics: m}
}

// SetScrollOffsets sets the scroll offsets of elements. Offsets apply to
// boxes which clip their content, i.e. with overflow other than visible.
func (l *Layouter) SetScrollOffsets(offsets map[styledtree.NodeID]fragment.Point) {
	l.scroll = offsets
}

// Stats returns the counters of all layouts.
func (l *Layouter) Stats() Stats {
	return l.stats
}

// Layout lays out the box tree below root for a viewport of the given width
// and returns the root fragment.
func (l *Layouter) Layout(root *boxtree.Box, viewport dimen.DU) *fragment.Fragment {
	if root == nil {
		return nil
	}
	f := l.layoutBox(root, viewport)
	tracer().Infof("layout of %s: %+v", root, l.stats)
	return f
}

// layoutBox lays out a box in a containing block of width cb. The resulting
// fragment sits at the origin; the parent places a copy of it.
func (l *Layouter) layoutBox(b *boxtree.Box, cb dimen.DU) *fragment.Fragment {
	if f, ok := b.CachedFragment(cb); ok {
		l.stats.CacheHits++
		return f
	}
	l.stats.BoxesLaidOut++
	w := l.usedWidth(b, cb)
	var children []*fragment.Fragment
	var h dimen.DU
	if fc := b.Context; fc != nil {
		switch fc.Kind {
		case boxtree.FlowContext, boxtree.GridContext:
			children, h = l.stack(fc, w)
		case boxtree.InlineContext:
			children, h = l.inline(fc.Inline, w)
		case boxtree.FlexContext:
			children, h = l.row(fc, w)
		}
	}
	if fixed, ok := b.Style().Height.Resolve(0); ok && b.Style().Height.IsAbsolute() {
		h = fixed
	}
	kind := fragment.BoxFragment
	if b.IsAnonymous() {
		kind = fragment.AnonymousFragment
	}
	f := fragment.NewBox(kind, b.Node, b.Style(), fragment.Rect{W: w, H: h}, children)
	if off, ok := l.scroll[b.Node]; ok && !b.IsAnonymous() && clipsContent(b.Style()) {
		f = f.WithScroll(off)
	}
	b.CacheFragment(cb, f)
	tracer().Debugf("laid out %s: %s", b, f.Rect)
	return f
}

func clipsContent(st *css.ComputedStyle) bool {
	switch st.Get("overflow") {
	case "hidden", "scroll", "auto":
		return true
	}
	return false
}

// usedWidth is the width of a box in a containing block of width cb.
// Auto widths fill the containing block, except for items of flex
// containers, atomic inlines and absolutely positioned boxes, which
// shrink to fit their content.
func (l *Layouter) usedWidth(b *boxtree.Box, cb dimen.DU) dimen.DU {
	if x, ok := b.Style().Width.Resolve(cb); ok {
		return x
	}
	switch b.Kind {
	case boxtree.FlexItem, boxtree.InlineLevel, boxtree.AbsolutelyPositioned:
		sizes := l.contentSizes(b)
		return max(sizes.Min, min(sizes.Max, cb))
	}
	return cb
}

// stack places block-level children, or grid items, below each other.
func (l *Layouter) stack(fc *boxtree.FormattingContext, w dimen.DU) ([]*fragment.Fragment, dimen.DU) {
	boxes := fc.Children
	if fc.Kind == boxtree.GridContext {
		boxes = itemBoxes(fc.Items)
	}
	var children []*fragment.Fragment
	var y dimen.DU
	for _, ch := range boxes {
		f := ch.PlaceFragment(l.layoutBox(ch, w), fragment.Point{Y: y}.Add(relativeOffset(ch, w)))
		children = append(children, f)
		if !ch.Style().IsAbsolutelyPositioned() {
			y += f.Rect.H
		}
	}
	return children, y
}

// row places flex items next to each other, in order.
func (l *Layouter) row(fc *boxtree.FormattingContext, w dimen.DU) ([]*fragment.Fragment, dimen.DU) {
	var children []*fragment.Fragment
	var x, h dimen.DU
	for _, item := range fc.Items {
		f := l.layoutBox(item.Box, max(w-x, 0))
		f = item.Box.PlaceFragment(f, fragment.Point{X: x}.Add(relativeOffset(item.Box, w)))
		children = append(children, f)
		if item.IsOutOfFlow() {
			continue
		}
		x += f.Rect.W
		h = max(h, f.Rect.H)
	}
	return children, h
}

// relativeOffset is the shift of a relatively positioned box from its
// place in the flow. Left wins over right. Percentages of top and bottom
// are ignored, as the height of the containing block is not known yet.
func relativeOffset(b *boxtree.Box, cb dimen.DU) fragment.Point {
	pos := b.Style().Position
	if !pos.IsRelative() {
		return fragment.Point{}
	}
	var p fragment.Point
	if x, ok := pos.Offset(css.Left).Resolve(cb); ok {
		p.X = x
	} else if x, ok := pos.Offset(css.Right).Resolve(cb); ok {
		p.X = -x
	}
	if top := pos.Offset(css.Top); top.IsAbsolute() {
		p.Y = top.Unwrap()
	} else if bottom := pos.Offset(css.Bottom); bottom.IsAbsolute() {
		p.Y = -bottom.Unwrap()
	}
	return p
}

func itemBoxes(items []boxtree.ModernItem) []*boxtree.Box {
	boxes := make([]*boxtree.Box, len(items))
	for i, item := range items {
		boxes[i] = item.Box
	}
	return boxes
}

// contentSizes returns the intrinsic inline sizes of a box, computing them
// if they are not cached.
func (l *Layouter) contentSizes(b *boxtree.Box) boxtree.ContentSizes {
	if sizes, ok := b.CachedContentSizes(); ok {
		return sizes
	}
	l.stats.SizesComputed++
	var sizes boxtree.ContentSizes
	if x, ok := b.Style().Width.Resolve(0); ok && b.Style().Width.IsAbsolute() {
		sizes = boxtree.ContentSizes{Min: x, Max: x}
	} else if fc := b.Context; fc != nil {
		switch fc.Kind {
		case boxtree.FlowContext:
			sizes = l.maxOf(fc.Children)
		case boxtree.GridContext:
			sizes = l.maxOf(itemBoxes(fc.Items))
		case boxtree.FlexContext:
			for _, item := range fc.Items {
				if item.IsOutOfFlow() {
					continue
				}
				s := l.contentSizes(item.Box)
				sizes.Min = max(sizes.Min, s.Min)
				sizes.Max += s.Max
			}
		case boxtree.InlineContext:
			sizes = l.inlineContentSizes(fc.Inline)
		}
	}
	b.CacheContentSizes(sizes)
	return sizes
}

func (l *Layouter) maxOf(boxes []*boxtree.Box) boxtree.ContentSizes {
	var sizes boxtree.ContentSizes
	for _, ch := range boxes {
		if ch.Style().IsAbsolutelyPositioned() {
			continue
		}
		s := l.contentSizes(ch)
		sizes.Min = max(sizes.Min, s.Min)
		sizes.Max = max(sizes.Max, s.Max)
	}
	return sizes
}
