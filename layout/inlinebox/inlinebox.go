package inlinebox

import (
	"fmt"
	"sync"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
)

// InlineBox is the contribution of an inline-level element to an inline
// formatting context.
type InlineBox struct {
	sync.RWMutex
	Node          styledtree.NodeID // the element this box has been created for
	style         *css.ComputedStyle
	identifier    Identifier
	firstFragment bool
	lastFragment  bool
	fontOnce      sync.Once
	fontIndex     int
}

// NewInlineBox creates an inline box for an element. The box is both the
// first and the last fragment of the element, until it is split.
func NewInlineBox(node styledtree.NodeID, style *css.ComputedStyle) *InlineBox {
	return &InlineBox{
		Node:          node,
		style:         style,
		firstFragment: true,
		lastFragment:  true,
	}
}

// Style returns the computed style of the box.
func (b *InlineBox) Style() *css.ComputedStyle {
	b.RLock()
	defer b.RUnlock()
	return b.style
}

// RepairStyle replaces the style of the box without rebuilding it.
func (b *InlineBox) RepairStyle(style *css.ComputedStyle) {
	b.Lock()
	defer b.Unlock()
	b.style = style
}

// Identifier returns the identifier of the box, which is valid after the
// box has been started in an InlineBoxes store.
func (b *InlineBox) Identifier() Identifier {
	b.RLock()
	defer b.RUnlock()
	return b.identifier
}

// IsFirstFragment is false for the continuation of a split box.
func (b *InlineBox) IsFirstFragment() bool {
	b.RLock()
	defer b.RUnlock()
	return b.firstFragment
}

// IsLastFragment is false for a box which has been split.
func (b *InlineBox) IsLastFragment() bool {
	b.RLock()
	defer b.RUnlock()
	return b.lastFragment
}

// SplitOff splits an inline box around a block-level box. It returns the
// continuation box, a fresh box for the same element and style, which is
// not the first fragment. The receiver will no longer be the last fragment.
func (b *InlineBox) SplitOff() *InlineBox {
	b.Lock()
	defer b.Unlock()
	cont := &InlineBox{
		Node:          b.Node,
		style:         b.style,
		firstFragment: false,
		lastFragment:  b.lastFragment,
	}
	b.lastFragment = false
	return cont
}

// FontIndexer resolves the font for a style to an index into a font
// collection. It is supplied by the text shaping collaborator.
type FontIndexer func(*css.ComputedStyle) int

// DefaultFontIndex returns the index of the default font of the box.
// The font is resolved once, on first call; later calls return the
// cached index and ignore their argument.
func (b *InlineBox) DefaultFontIndex(resolve FontIndexer) int {
	b.fontOnce.Do(func() {
		idx := 0
		if resolve != nil {
			idx = resolve(b.Style())
		}
		b.Lock()
		b.fontIndex = idx
		b.Unlock()
	})
	b.RLock()
	defer b.RUnlock()
	return b.fontIndex
}

func (b *InlineBox) String() string {
	b.RLock()
	defer b.RUnlock()
	return fmt.Sprintf("inline#%d@%s", b.Node, b.identifier)
}
