package boxtree

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/reflow/layout/inlinebox"
	"github.com/npillmayer/tyse/core/dimen"
)

// Kind is the kind of a box, as seen from its parent formatting context.
type Kind uint8

// Kinds of boxes.
const (
	BlockLevel           Kind = iota // block-level box in block flow
	InlineLevel                      // atomic inline-level box, e.g. inline-block
	FlexItem                         // in-flow item of a flex container
	GridItem                         // in-flow item of a grid container
	AbsolutelyPositioned             // out-of-flow box
	Anonymous                        // anonymous block, wrapping inline content
)

var kindNames = [...]string{"block", "inline", "flex-item", "grid-item", "abspos", "anonymous"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// IsModernItem is true for kinds of boxes which are children of flex or grid
// containers.
func (k Kind) IsModernItem() bool {
	return k == FlexItem || k == GridItem || k == AbsolutelyPositioned
}

// ContextKind is the kind of formatting context a box establishes for its
// contents.
type ContextKind uint8

// Kinds of formatting contexts.
const (
	FlowContext   ContextKind = iota // block container with block-level children
	InlineContext                    // block container with inline content
	FlexContext
	GridContext
)

var contextNames = [...]string{"flow", "inline", "flex", "grid"}

func (k ContextKind) String() string {
	if int(k) < len(contextNames) {
		return contextNames[k]
	}
	return "?"
}

// PropagatedData is box tree construction data handed down from a
// container to its children.
type PropagatedData struct {
	AllowPercentageColumns bool // may tables resolve percentage columns against the container?
}

// DefaultPropagatedData is the data for boxes which do not inherit anything
// from their container, like the root and absolutely positioned boxes.
func DefaultPropagatedData() PropagatedData {
	return PropagatedData{AllowPercentageColumns: true}
}

// disallowingPercentageColumns returns data for items of flex and grid
// containers, which do not constrain tables of their items.
func (pd PropagatedData) disallowingPercentageColumns() PropagatedData {
	pd.AllowPercentageColumns = false
	return pd
}

// FormattingContext is the context a box establishes for its contents.
type FormattingContext struct {
	Kind       ContextKind
	Children   []*Box // block-level children or items, in layout order
	Items      []ModernItem
	Inline     *InlineFormattingContext
	Propagated PropagatedData
}

// ContentSizes are the intrinsic inline sizes of a box.
type ContentSizes struct {
	Min dimen.DU // min-content size
	Max dimen.DU // max-content size
}

// layoutCache holds results of previous layouts of a box.
type layoutCache struct {
	fragment *fragment.Fragment // at the origin
	placed   *fragment.Fragment // copy of fragment, as positioned in its parent
	cbWidth  dimen.DU           // containing block width the fragment has been laid out for
	sizes    ContentSizes
	sizesOK  bool
}

// Box is a node of the box tree.
type Box struct {
	mu      sync.RWMutex
	Kind    Kind
	Node    styledtree.NodeID // NoNode for anonymous boxes
	Context *FormattingContext
	style   *css.ComputedStyle
	cache   layoutCache
}

func newBox(kind Kind, node styledtree.NodeID, style *css.ComputedStyle, fc *FormattingContext) *Box {
	return &Box{Kind: kind, Node: node, style: style, Context: fc}
}

// IsAnonymous is true for boxes which have not been generated by an element.
func (b *Box) IsAnonymous() bool {
	return b.Kind == Anonymous
}

// Style returns the current style of the box.
func (b *Box) Style() *css.ComputedStyle {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.style
}

// RepairStyle applies a new style to the box and to its cached fragments,
// without rebuilding it.
func (b *Box) RepairStyle(style *css.ComputedStyle) {
	b.mu.Lock()
	old := b.style
	b.style = style
	if b.cache.fragment != nil {
		b.cache.fragment.RepairStyle(old, style)
	}
	if b.cache.placed != nil && b.cache.placed != b.cache.fragment {
		b.cache.placed.RepairStyle(old, style)
	}
	b.mu.Unlock()
	tracer().Debugf("repaired style of %s", b)
}

// ClearFragmentLayoutCache discards the cached fragment of the box and
// of the anonymous boxes it contains, which share the box's fate.
func (b *Box) ClearFragmentLayoutCache() {
	b.forSelfAndAnonymous(func(x *Box) {
		x.cache.fragment, x.cache.placed = nil, nil
	})
}

// InvalidateInlineContentSizes discards the cached intrinsic inline sizes of
// the box and of the anonymous boxes it contains.
func (b *Box) InvalidateInlineContentSizes() {
	b.forSelfAndAnonymous(func(x *Box) {
		x.cache.sizesOK = false
	})
}

func (b *Box) forSelfAndAnonymous(f func(*Box)) {
	b.mu.Lock()
	f(b)
	b.mu.Unlock()
	if b.Context == nil {
		return
	}
	for _, ch := range b.Context.Children {
		if ch.IsAnonymous() {
			ch.forSelfAndAnonymous(f)
		}
	}
}

// OuterInlineContentSizeDependsOnContent is true if the contribution of the
// box to the intrinsic inline size of its container depends on its content.
// Anonymous boxes never contribute independently.
func (b *Box) OuterInlineContentSizeDependsOnContent() bool {
	if b.IsAnonymous() {
		return false
	}
	st := b.Style()
	return st == nil || st.InlineSizeDependsOnContent()
}

// CachedFragment returns the fragment of the last layout of the box, if it
// has been laid out for a containing block of the given width.
func (b *Box) CachedFragment(cbWidth dimen.DU) (*fragment.Fragment, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.cache.fragment == nil || b.cache.cbWidth != cbWidth {
		return nil, false
	}
	return b.cache.fragment, true
}

// CacheFragment remembers the result of a layout of the box.
func (b *Box) CacheFragment(cbWidth dimen.DU, f *fragment.Fragment) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.fragment = f
	b.cache.placed = nil
	b.cache.cbWidth = cbWidth
}

// PlaceFragment positions a fragment of the box within its parent fragment.
// The fragment itself is not changed; the box remembers the positioned copy
// for repairs of its style.
func (b *Box) PlaceFragment(f *fragment.Fragment, topl fragment.Point) *fragment.Fragment {
	placed := f.Translated(topl)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.placed = placed
	return placed
}

// CachedContentSizes returns the cached intrinsic inline sizes of the box.
func (b *Box) CachedContentSizes() (ContentSizes, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cache.sizes, b.cache.sizesOK
}

// CacheContentSizes remembers the intrinsic inline sizes of the box.
func (b *Box) CacheContentSizes(sizes ContentSizes) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cache.sizes = sizes
	b.cache.sizesOK = true
}

func (b *Box) String() string {
	if b == nil {
		return "<nil box>"
	}
	ctx := "-"
	if b.Context != nil {
		ctx = b.Context.Kind.String()
	}
	if b.IsAnonymous() {
		return fmt.Sprintf("[anon %s]", ctx)
	}
	return fmt.Sprintf("[%s #%d %s]", b.Kind, b.Node, ctx)
}

// --- Inline formatting contexts --------------------------------------------

// InlineItemKind is the kind of an item of inline content.
type InlineItemKind uint8

// Kinds of inline items.
const (
	TextRun        InlineItemKind = iota // text of a text node
	StartInlineBox                       // opening of an inline box
	EndInlineBox                         // closing of an inline box
	Atomic                               // atomic inline-level box
)

// InlineItem is an item of inline content, in document order.
type InlineItem struct {
	Kind   InlineItemKind
	Node   styledtree.NodeID    // text node or element
	Text   string               // for text runs
	Style  *css.ComputedStyle   // style to shape a text run with
	BoxID  inlinebox.Identifier // for start and end of inline boxes
	Atomic *Box                 // for atomic inline-level boxes
}

// InlineFormattingContext holds inline content: text runs, inline boxes and
// atomic inline-level boxes. It is handed to text shaping as a whole.
type InlineFormattingContext struct {
	Boxes *inlinebox.InlineBoxes
	Items []InlineItem
}

func newInlineFormattingContext() *InlineFormattingContext {
	return &InlineFormattingContext{Boxes: inlinebox.NewInlineBoxes()}
}

// HasContent is false for inline content consisting of document
// whitespace only, which does not generate boxes.
func (ifc *InlineFormattingContext) HasContent() bool {
	for _, item := range ifc.Items {
		switch item.Kind {
		case Atomic:
			return true
		case TextRun:
			if !dom.IsDocumentWhitespace(item.Text) {
				return true
			}
		}
	}
	return false
}

// Text returns the concatenated text of all text runs.
func (ifc *InlineFormattingContext) Text() string {
	var b strings.Builder
	for _, item := range ifc.Items {
		if item.Kind == TextRun {
			b.WriteString(item.Text)
		}
	}
	return b.String()
}
