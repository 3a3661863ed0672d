package dom

import (
	"errors"
	"fmt"

	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/tree"
	"golang.org/x/net/html"
)

// ErrNotAnElement is returned for mutations which need an element node.
var ErrNotAnElement = errors.New("node is not an element")

// ErrNotText is returned for mutations which need a text node.
var ErrNotText = errors.New("node is not a text node")

// SetAttribute sets an attribute of an element. As attributes may change
// the styles of the element and, by inheritance, of its descendants, the
// whole subtree is flagged for restyling.
func SetAttribute(n *styledtree.StyNode, key, value string) error {
	if !n.IsElement() {
		return fmt.Errorf("cannot set attribute %q: %w", key, ErrNotAnElement)
	}
	h := n.HTMLNode()
	found := false
	for i := range h.Attr {
		if h.Attr[i].Key == key {
			h.Attr[i].Val = value
			found = true
			break
		}
	}
	if !found {
		h.Attr = append(h.Attr, html.Attribute{Key: key, Val: value})
	}
	tracer().Debugf("set %s.%s = %q", n, key, value)
	n.MarkSubtreeDirty()
	return nil
}

// SetText replaces the text of a text node. The parent element has to
// re-collect its children.
func SetText(n *styledtree.StyNode, text string) error {
	if !n.IsText() {
		return fmt.Errorf("cannot set text: %w", ErrNotText)
	}
	n.HTMLNode().Data = text
	n.MarkDirty()
	if p := n.ParentNode(); p != nil {
		p.NoteContentChanged()
	}
	return nil
}

// AppendChild appends an HTML subtree as the last child of an element,
// mirroring it into the styled tree of doc. It returns the styled node
// for h.
func AppendChild(doc *Document, parent *styledtree.StyNode, h *html.Node) (*styledtree.StyNode, error) {
	if !parent.IsElement() {
		return nil, fmt.Errorf("cannot append child: %w", ErrNotAnElement)
	}
	if h.Type != html.ElementNode && h.Type != html.TextNode {
		return nil, fmt.Errorf("cannot append node of type %d", h.Type)
	}
	if h.Parent != nil {
		h.Parent.RemoveChild(h)
	}
	parent.HTMLNode().AppendChild(h)
	sn := mirror(doc.Tree, h)
	parent.AddChild(&sn.Node)
	sn.MarkDirty() // flag the ancestors, now that sn is attached
	parent.NoteContentChanged()
	return sn, nil
}

// Remove detaches a node from the document. Its styled node keeps its
// identifier, which will not be reused.
func Remove(n *styledtree.StyNode) {
	p := n.ParentNode()
	if h := n.HTMLNode(); h.Parent != nil {
		h.Parent.RemoveChild(h)
	}
	n.Isolate()
	if p != nil {
		p.NoteContentChanged()
	}
}

// FindByID returns the first element with the given id attribute, in
// document order.
func FindByID(doc *Document, id string) *styledtree.StyNode {
	for i := 0; i < doc.Tree.Len(); i++ {
		sn := doc.Tree.Node(styledtree.NodeID(i))
		if v, ok := sn.Attribute("id"); ok && v == id && isAttached(doc, sn) {
			return sn
		}
	}
	return nil
}

func isAttached(doc *Document, sn *styledtree.StyNode) bool {
	root := doc.Root()
	if sn == root {
		return true
	}
	chain := tree.Ancestors(&sn.Node)
	return len(chain) > 0 && chain[len(chain)-1].Payload == root
}
