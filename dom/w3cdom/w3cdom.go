package w3cdom

import (
	"strings"

	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/fragment"
	"golang.org/x/net/html"
)

// Node represents W3C-type Node
type Node interface {
	NodeType() html.NodeType        // type of the underlying HTML node (ElementNode, TextNode, etc.)
	NodeName() string               // node name output depends on the node's type
	NodeValue() string              // node value output depends on the node's type
	HasAttributes() bool            // check for existence of attributes
	ParentNode() Node               // get the parent node, if any
	HasChildNodes() bool            // check for existence of sub-nodes
	ChildNodes() NodeList           // get a list of all children-nodes
	Children() NodeList             // get a list of element child-nodes
	FirstChild() Node               // get the first children-node
	NextSibling() Node              // get the Node's next sibling or nil if last
	Attributes() NamedNodeMap       // get all attributes of a node
	ComputedStyles() ComputedStyles // get computed CSS styles
	TextContent() string            // get text from node and all descendents
	GetClientRects() []fragment.Rect
	GetBoundingClientRect() (fragment.Rect, bool)
}

// NodeList represents W3C-type NodeList
type NodeList interface {
	Length() int
	Item(int) Node
	String() string
}

// Attr represents W3C-type Attr
type Attr interface {
	Namespace() string
	Key() string
	Value() string
}

// NamedNodeMap represents w3C-type NamedNodeMap
type NamedNodeMap interface {
	Length() int
	Item(int) Attr
	GetNamedItem(string) Attr
}

// ComputedStyles represents a CSS style
type ComputedStyles interface {
	GetPropertyValue(string) style.Property
	Styles() *style.PropertyMap
}

// Geometry answers queries for the fragments of nodes. It is implemented
// by the layout engine.
type Geometry interface {
	ClientRects(*styledtree.StyNode) []fragment.Rect
	BoundingClientRect(*styledtree.StyNode) (fragment.Rect, bool)
}

// Wrap returns a W3C view of a styled node. geo may be nil, in which case
// nodes report no geometry.
func Wrap(sn *styledtree.StyNode, geo Geometry) Node {
	if sn == nil {
		return nil
	}
	return &domNode{sn: sn, geo: geo}
}

type domNode struct {
	sn  *styledtree.StyNode
	geo Geometry
}

func (n *domNode) wrap(sn *styledtree.StyNode) Node {
	return Wrap(sn, n.geo)
}

func (n *domNode) NodeType() html.NodeType {
	return n.sn.HTMLNode().Type
}

func (n *domNode) NodeName() string {
	if n.sn.IsText() {
		return "#text"
	}
	return n.sn.HTMLNode().Data
}

func (n *domNode) NodeValue() string {
	return n.sn.Text()
}

func (n *domNode) HasAttributes() bool {
	return len(n.sn.HTMLNode().Attr) > 0
}

func (n *domNode) ParentNode() Node {
	return n.wrap(n.sn.ParentNode())
}

func (n *domNode) HasChildNodes() bool {
	return len(n.sn.Children()) > 0
}

func (n *domNode) ChildNodes() NodeList {
	return &nodeList{nodes: n.sn.ChildNodes(), geo: n.geo}
}

func (n *domNode) Children() NodeList {
	return &nodeList{nodes: n.sn.ElementChildren(), geo: n.geo}
}

func (n *domNode) FirstChild() Node {
	if children := n.sn.ChildNodes(); len(children) > 0 {
		return n.wrap(children[0])
	}
	return nil
}

func (n *domNode) NextSibling() Node {
	parent := n.sn.ParentNode()
	if parent == nil {
		return nil
	}
	siblings := parent.ChildNodes()
	for i, sib := range siblings {
		if sib == n.sn && i+1 < len(siblings) {
			return n.wrap(siblings[i+1])
		}
	}
	return nil
}

func (n *domNode) Attributes() NamedNodeMap {
	return attributes(n.sn.HTMLNode().Attr)
}

func (n *domNode) ComputedStyles() ComputedStyles {
	return computedStyles{n.sn.Styles()}
}

// TextContent concatenates the text of all text nodes below n, in
// document order.
func (n *domNode) TextContent() string {
	var b strings.Builder
	stack := []*styledtree.StyNode{n.sn}
	for len(stack) > 0 {
		sn := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if sn.IsText() {
			b.WriteString(sn.Text())
			continue
		}
		children := sn.ChildNodes()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return b.String()
}

func (n *domNode) GetClientRects() []fragment.Rect {
	if n.geo == nil {
		return nil
	}
	return n.geo.ClientRects(n.sn)
}

func (n *domNode) GetBoundingClientRect() (fragment.Rect, bool) {
	if n.geo == nil {
		return fragment.Rect{}, false
	}
	return n.geo.BoundingClientRect(n.sn)
}

func (n *domNode) String() string {
	return n.sn.String()
}

// --- Lists -----------------------------------------------------------------

type nodeList struct {
	nodes []*styledtree.StyNode
	geo   Geometry
}

func (l *nodeList) Length() int {
	return len(l.nodes)
}

func (l *nodeList) Item(i int) Node {
	if i < 0 || i >= len(l.nodes) {
		return nil
	}
	return Wrap(l.nodes[i], l.geo)
}

func (l *nodeList) String() string {
	names := make([]string, len(l.nodes))
	for i, sn := range l.nodes {
		names[i] = sn.Tag()
	}
	return "[" + strings.Join(names, " ") + "]"
}

type attr struct {
	a html.Attribute
}

func (at attr) Namespace() string { return at.a.Namespace }
func (at attr) Key() string       { return at.a.Key }
func (at attr) Value() string     { return at.a.Val }

type attributes []html.Attribute

func (as attributes) Length() int {
	return len(as)
}

func (as attributes) Item(i int) Attr {
	if i < 0 || i >= len(as) {
		return nil
	}
	return attr{as[i]}
}

func (as attributes) GetNamedItem(key string) Attr {
	for _, a := range as {
		if a.Key == key {
			return attr{a}
		}
	}
	return nil
}

type computedStyles struct {
	pmap *style.PropertyMap
}

// GetPropertyValue returns the cascaded value of a property, or
// style.NullStyle if the property is not set.
func (cs computedStyles) GetPropertyValue(key string) style.Property {
	if cs.pmap == nil {
		return style.NullStyle
	}
	p, _ := cs.pmap.Property(key)
	return p
}

func (cs computedStyles) Styles() *style.PropertyMap {
	return cs.pmap
}
