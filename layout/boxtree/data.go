package boxtree

import (
	"sync"
	"sync/atomic"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/damage"
	"github.com/npillmayer/reflow/layout/inlinebox"
)

// Styles holds the computed styles of an element.
type Styles struct {
	Primary *css.ComputedStyle
}

// ElementData is the layout state of a node: its restyle damage, its
// computed style and the box (or, for inline elements, the inline boxes)
// most recently built for it. Text nodes have layout data without style.
type ElementData struct {
	mu      sync.Mutex
	node    styledtree.NodeID
	damage  damage.Damage
	styles  Styles
	box     *Box
	inlines []*inlinebox.InlineBox
}

// Node returns the identifier of the node the data belongs to.
func (d *ElementData) Node() styledtree.NodeID {
	return d.node
}

// Damage returns the stored restyle damage.
func (d *ElementData) Damage() damage.Damage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.damage
}

// SetDamage replaces the stored restyle damage.
func (d *ElementData) SetDamage(dmg damage.Damage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.damage = dmg
}

// AddDamage adds damage bits to the stored restyle damage.
func (d *ElementData) AddDamage(dmg damage.Damage) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.damage |= dmg
}

// Styles returns the computed styles of the element.
func (d *ElementData) Styles() Styles {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.styles
}

// SetPrimaryStyle sets the primary computed style of the element.
func (d *ElementData) SetPrimaryStyle(style *css.ComputedStyle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.styles.Primary = style
}

// Box returns the box most recently built for the element, or nil.
func (d *ElementData) Box() *Box {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.box
}

// InlineBoxes returns the inline boxes most recently built for an
// inline element. There is more than one if the element has been split.
func (d *ElementData) InlineBoxes() []*inlinebox.InlineBox {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inlines
}

// Slot returns a fresh box slot for depositing a new box for the element.
func (d *ElementData) Slot() *BoxSlot {
	return &BoxSlot{data: d}
}

// RepairStyle applies a new style to the existing box of an element
// without rebuilding it.
func (d *ElementData) RepairStyle(style *css.ComputedStyle) {
	d.mu.Lock()
	box, inlines := d.box, d.inlines
	d.mu.Unlock()
	if box != nil {
		box.RepairStyle(style)
	}
	for _, ib := range inlines {
		ib.RepairStyle(style)
	}
}

// ClearFragmentLayoutCache discards the cached fragment of the element's box.
func (d *ElementData) ClearFragmentLayoutCache() {
	if box := d.Box(); box != nil {
		box.ClearFragmentLayoutCache()
	}
}

// InvalidateInlineContentSizes discards the cached intrinsic inline sizes
// of the element's box.
func (d *ElementData) InvalidateInlineContentSizes() {
	if box := d.Box(); box != nil {
		box.InvalidateInlineContentSizes()
	}
}

// IsAnonymous is true if the element's box is anonymous.
func (d *ElementData) IsAnonymous() bool {
	box := d.Box()
	return box != nil && box.IsAnonymous()
}

// OuterInlineContentSizeDependsOnContent is true if the contribution of the
// element to the intrinsic inline size of its parent depends on its content.
func (d *ElementData) OuterInlineContentSizeDependsOnContent() bool {
	if box := d.Box(); box != nil {
		return box.OuterInlineContentSizeDependsOnContent()
	}
	if st := d.Styles().Primary; st != nil {
		return st.InlineSizeDependsOnContent()
	}
	return true
}

// consumeDamage clears the damage of an element which does not generate a
// box of its own, i.e., elements with display `none` or `contents`.
func (d *ElementData) consumeDamage() {
	d.SetDamage(damage.None)
}

// BoxSlot is a single-assignment cell bound to the layout data of a node.
// Depositing a box makes it the node's current box and consumes the
// node's damage.
type BoxSlot struct {
	data *ElementData
	used atomic.Bool
}

// Set deposits a box. Depositing into a slot twice is an error.
func (s *BoxSlot) Set(box *Box) {
	assertThat(!s.used.Swap(true), "box slot of node #%d written twice", s.data.node)
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.box = box
	s.data.inlines = nil
	s.data.damage = damage.None
}

// SetInlineBoxes deposits the inline boxes of an inline element.
func (s *BoxSlot) SetInlineBoxes(boxes []*inlinebox.InlineBox) {
	assertThat(!s.used.Swap(true), "box slot of node #%d written twice", s.data.node)
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	s.data.box = nil
	s.data.inlines = boxes
	s.data.damage = damage.None
}

// IsSet is true if a box has been deposited.
func (s *BoxSlot) IsSet() bool {
	return s.used.Load()
}

// Table holds the layout data of all nodes, keyed by node identifier.
// Entries are created lazily, on first styling of a node.
type Table struct {
	mu   sync.RWMutex
	data map[styledtree.NodeID]*ElementData
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{data: make(map[styledtree.NodeID]*ElementData)}
}

// Get returns the layout data for a node, if present.
func (t *Table) Get(id styledtree.NodeID) (*ElementData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.data[id]
	return d, ok
}

// Ensure returns the layout data for a node, creating it if necessary.
// The flag is true if the data has been created by this call.
func (t *Table) Ensure(id styledtree.NodeID) (*ElementData, bool) {
	if d, ok := t.Get(id); ok {
		return d, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if d, ok := t.data[id]; ok {
		return d, false
	}
	d := &ElementData{node: id}
	t.data[id] = d
	return d, true
}

// Remove drops the layout data of a node, e.g., when the node has been
// removed from the document.
func (t *Table) Remove(id styledtree.NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.data, id)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.data)
}
