package styledtree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"
	"sync/atomic"

	"fortio.org/safecast"
	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/tree"
	"golang.org/x/net/html"
)

// NodeID is a stable identifier of a styled node, an index into the
// node arena of a Tree.
type NodeID int32

// NoNode is the identifier of no node at all.
const NoNode NodeID = -1

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	id                  NodeID
	htmlNode            *html.Node
	computedStyles      *style.PropertyMap
	dirty               atomic.Bool // own style has to be recomputed
	dirtyDescendants    atomic.Bool // some descendant is dirty
	contentChanged      atomic.Bool // children or text have been changed
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// ID returns the stable identifier of a node.
func (sn *StyNode) ID() NodeID {
	return sn.id
}

// HTMLNode gets the HTML DOM node corresponding to this styled node.
func (sn *StyNode) HTMLNode() *html.Node {
	return sn.htmlNode
}

// IsElement is true for nodes representing HTML elements.
func (sn *StyNode) IsElement() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.ElementNode
}

// IsText is true for nodes representing text.
func (sn *StyNode) IsText() bool {
	return sn.htmlNode != nil && sn.htmlNode.Type == html.TextNode
}

// Tag returns the element name, or "#text" for text nodes.
func (sn *StyNode) Tag() string {
	if sn.IsText() {
		return "#text"
	}
	return sn.htmlNode.Data
}

// Text returns the text of a text node, or the empty string for elements.
func (sn *StyNode) Text() string {
	if sn.IsText() {
		return sn.htmlNode.Data
	}
	return ""
}

// Attribute returns the value of an HTML attribute of an element.
func (sn *StyNode) Attribute(key string) (string, bool) {
	if sn.htmlNode == nil {
		return "", false
	}
	for _, a := range sn.htmlNode.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ParentNode returns the styled parent node or nil for the root.
func (sn *StyNode) ParentNode() *StyNode {
	return Node(sn.Parent())
}

// ChildNodes returns all children of a node, elements and text.
func (sn *StyNode) ChildNodes() []*StyNode {
	children := sn.Children()
	r := make([]*StyNode, len(children))
	for i, ch := range children {
		r[i] = ch.Payload
	}
	return r
}

// ElementChildren returns the children of a node which are elements.
func (sn *StyNode) ElementChildren() []*StyNode {
	var r []*StyNode
	for _, ch := range sn.Children() {
		if ch.Payload.IsElement() {
			r = append(r, ch.Payload)
		}
	}
	return r
}

// Styles returns the cascaded style properties of an element.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// IsDirty is true if the style of the node has to be recomputed.
func (sn *StyNode) IsDirty() bool {
	return sn.dirty.Load()
}

// HasDirtyDescendants is true if the style of some descendant has to be recomputed.
func (sn *StyNode) HasDirtyDescendants() bool {
	return sn.dirtyDescendants.Load()
}

// MarkDirty flags a node for restyling and flags all ancestors as having
// dirty descendants.
func (sn *StyNode) MarkDirty() {
	sn.dirty.Store(true)
	for p := sn.ParentNode(); p != nil; p = p.ParentNode() {
		if p.dirtyDescendants.Swap(true) {
			break // ancestors above are already flagged
		}
	}
}

// MarkSubtreeDirty flags a node and all of its descendants for restyling.
func (sn *StyNode) MarkSubtreeDirty() {
	sn.MarkDirty()
	tree.TopDown(&sn.Node, func(n, parent *tree.Node[*StyNode], position int) error {
		n.Payload.dirty.Store(true)
		if n.ChildCount() > 0 {
			n.Payload.dirtyDescendants.Store(true)
		}
		return nil
	})
}

// MarkChildrenDirty flags the element children of a node for restyling,
// without touching the flags of ancestors. It is used when inherited
// properties of the node have changed during restyling.
func (sn *StyNode) MarkChildrenDirty() {
	for _, ch := range sn.ElementChildren() {
		ch.dirty.Store(true)
	}
}

// ClearDirty resets the dirty flag of a node, returning its previous value.
func (sn *StyNode) ClearDirty() bool {
	return sn.dirty.Swap(false)
}

// ClearDirtyDescendants resets the dirty descendants flag of a node.
func (sn *StyNode) ClearDirtyDescendants() {
	sn.dirtyDescendants.Store(false)
}

// NoteContentChanged flags an element whose children or text content
// have been changed. The element is marked dirty as well.
func (sn *StyNode) NoteContentChanged() {
	sn.contentChanged.Store(true)
	sn.MarkDirty()
}

// TakeContentChanged returns and resets the content changed flag.
func (sn *StyNode) TakeContentChanged() bool {
	return sn.contentChanged.Swap(false)
}

func (sn *StyNode) String() string {
	if sn == nil {
		return "<nil>"
	}
	if sn.IsText() {
		return fmt.Sprintf("#%d[#text %q]", sn.id, shorten(sn.Text(), 12))
	}
	return fmt.Sprintf("#%d[%s]", sn.id, sn.Tag())
}

func shorten(s string, n int) string {
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}

// --- Node arena ------------------------------------------------------------

// Tree is the arena of all styled nodes of a document.
type Tree struct {
	sync.RWMutex
	nodes []*StyNode
	root  *StyNode
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{}
}

// NewNodeForHTMLNode creates a new styled node linked to an HTML node and
// registers it with the arena. The first node created becomes the root.
func (t *Tree) NewNodeForHTMLNode(h *html.Node) *StyNode {
	t.Lock()
	defer t.Unlock()
	sn := &StyNode{htmlNode: h}
	sn.Payload = sn // Payload will always reference the node itself
	id, err := safecast.Conv[int32](len(t.nodes))
	if err != nil {
		panic(fmt.Errorf("styled node arena overflow: %w", err))
	}
	sn.id = NodeID(id)
	t.nodes = append(t.nodes, sn)
	if t.root == nil {
		t.root = sn
	}
	tracer().Debugf("new styled node %s", sn)
	return sn
}

// Root returns the root node of the tree, or nil.
func (t *Tree) Root() *StyNode {
	t.RLock()
	defer t.RUnlock()
	return t.root
}

// Node returns the node for an identifier, or nil.
func (t *Tree) Node(id NodeID) *StyNode {
	t.RLock()
	defer t.RUnlock()
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return t.nodes[id]
}

// Len returns the number of nodes ever created in this arena.
func (t *Tree) Len() int {
	t.RLock()
	defer t.RUnlock()
	return len(t.nodes)
}
