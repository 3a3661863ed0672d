package fragment

import (
	"fmt"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/tyse/core/dimen"
)

// Point is a position or an offset.
type Point struct {
	X dimen.DU `msgpack:"x"`
	Y dimen.DU `msgpack:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is a rectangle, given by its top left corner and its size.
type Rect struct {
	TopL Point    `msgpack:"topl"`
	W    dimen.DU `msgpack:"w"`
	H    dimen.DU `msgpack:"h"`
}

// Translate returns r moved by p.
func (r Rect) Translate(p Point) Rect {
	return Rect{TopL: r.TopL.Add(p), W: r.W, H: r.H}
}

// IsEmpty is true for rectangles without area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Union returns the smallest rectangle containing r and s.
// Empty rectangles are ignored.
func (r Rect) Union(s Rect) Rect {
	if r.IsEmpty() {
		return s
	}
	if s.IsEmpty() {
		return r
	}
	x0, y0 := min(r.TopL.X, s.TopL.X), min(r.TopL.Y, s.TopL.Y)
	x1, y1 := max(r.TopL.X+r.W, s.TopL.X+s.W), max(r.TopL.Y+r.H, s.TopL.Y+s.H)
	return Rect{TopL: Point{X: x0, Y: y0}, W: x1 - x0, H: y1 - y0}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.TopL.X, r.TopL.Y, r.W, r.H)
}

// Kind is the kind of a fragment.
type Kind uint8

// Kinds of fragments.
const (
	BoxFragment       Kind = iota // fragment of an element's box
	AnonymousFragment             // fragment of an anonymous box
	TextFragment                  // a line of text
	LineFragment                  // a line box of an inline formatting context
)

func (k Kind) String() string {
	switch k {
	case BoxFragment:
		return "box"
	case AnonymousFragment:
		return "anon"
	case TextFragment:
		return "text"
	case LineFragment:
		return "line"
	}
	return "?"
}

// Fragment is a positioned and sized box. The geometry of a fragment is
// not modified after it has been constructed: cached fragments are shared
// between frames and are placed by copying (see Translated). Only the
// paint properties are updated in place by style repair.
type Fragment struct {
	Kind     Kind              `msgpack:"kind"`
	Node     styledtree.NodeID `msgpack:"node"`
	Rect     Rect              `msgpack:"rect"`   // relative to the parent's content origin
	Scroll   Point             `msgpack:"scroll"` // scroll offset of the content
	Text     string            `msgpack:"text,omitempty"`
	Color    string            `msgpack:"color,omitempty"`
	Children []*Fragment       `msgpack:"children,omitempty"`
	style    *css.ComputedStyle
}

// NewBox creates a fragment for a box.
func NewBox(kind Kind, node styledtree.NodeID, style *css.ComputedStyle, r Rect, children []*Fragment) *Fragment {
	f := &Fragment{
		Kind:     kind,
		Node:     node,
		Rect:     r,
		Children: children,
		style:    style,
	}
	f.Color = colorName(style)
	return f
}

// NewText creates a fragment for a line of text of a text node.
func NewText(node styledtree.NodeID, style *css.ComputedStyle, r Rect, text string) *Fragment {
	f := NewBox(TextFragment, node, style, r, nil)
	f.Text = text
	return f
}

// Style returns the style the fragment has been laid out with.
func (f *Fragment) Style() *css.ComputedStyle {
	return f.style
}

// WithScroll returns a copy of f with a scroll offset.
func (f *Fragment) WithScroll(offset Point) *Fragment {
	c := *f
	c.Scroll = offset
	return &c
}

// Translated returns a copy of f, moved to a new position. The copy shares
// its children with f.
func (f *Fragment) Translated(topl Point) *Fragment {
	if f.Rect.TopL == topl {
		return f
	}
	c := *f
	c.Rect.TopL = topl
	return &c
}

// RepairStyle replaces the style old by style in f and in all of its
// descendants which have been laid out with old, without entering
// fragments of other boxes.
func (f *Fragment) RepairStyle(old, style *css.ComputedStyle) {
	stack := []*Fragment{f}
	for len(stack) > 0 {
		g := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if g.style == old {
			g.style = style
			g.Color = colorName(style)
		}
		for _, ch := range g.Children {
			if ch.Kind != BoxFragment {
				stack = append(stack, ch)
			}
		}
	}
}

func colorName(style *css.ComputedStyle) string {
	if style != nil && style.Color != nil {
		return fmt.Sprint(style.Get("color"))
	}
	return ""
}

func (f *Fragment) String() string {
	if f == nil {
		return "<nil fragment>"
	}
	if f.Kind == TextFragment {
		return fmt.Sprintf("%s #%d %s %q", f.Kind, f.Node, f.Rect, f.Text)
	}
	return fmt.Sprintf("%s #%d %s", f.Kind, f.Node, f.Rect)
}
