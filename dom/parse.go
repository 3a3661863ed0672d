package dom

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/reflow/dom/styledtree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoHTMLElement is returned if a parse tree lacks an <html> element.
var ErrNoHTMLElement = errors.New("document has no <html> element")

// Document is a parsed HTML document together with its styled tree.
type Document struct {
	HTML *html.Node       // HTML parse tree, document node
	Tree *styledtree.Tree // arena of styled nodes
}

// Root returns the styled node for the <html> element.
func (doc *Document) Root() *styledtree.StyNode {
	return doc.Tree.Root()
}

// Parse reads an HTML document and builds its styled tree.
func Parse(r io.Reader) (*Document, error) {
	h, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse HTML: %w", err)
	}
	return FromHTML(h)
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// FromHTML builds a document from an existing HTML parse tree.
func FromHTML(h *html.Node) (*Document, error) {
	root := findHTMLElement(h)
	if root == nil {
		return nil, ErrNoHTMLElement
	}
	doc := &Document{HTML: h, Tree: styledtree.NewTree()}
	mirror(doc.Tree, root)
	tracer().Infof("parsed document with %d styled nodes", doc.Tree.Len())
	return doc, nil
}

func findHTMLElement(h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.Type == html.ElementNode && h.DataAtom == atom.Html {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findHTMLElement(ch); r != nil {
			return r
		}
	}
	return nil
}

// mirror creates styled nodes for an HTML subtree, in document order.
// New nodes are flagged dirty, as they have never been styled.
func mirror(t *styledtree.Tree, h *html.Node) *styledtree.StyNode {
	type pending struct {
		h      *html.Node
		parent *styledtree.StyNode
	}
	var top *styledtree.StyNode
	stack := []pending{{h: h}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sn := t.NewNodeForHTMLNode(p.h)
		if p.parent == nil {
			top = sn
		} else {
			p.parent.AddChild(&sn.Node)
		}
		sn.MarkDirty()
		// push children in reverse, so they pop in document order
		var children []*html.Node
		for ch := p.h.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.ElementNode || ch.Type == html.TextNode {
				children = append(children, ch)
			}
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{h: children[i], parent: sn})
		}
	}
	return top
}

// IsDocumentWhitespace is true if s consists of space, tab, line feed,
// carriage return and form feed only. The empty string is document
// whitespace, too.
func IsDocumentWhitespace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r', '\f':
		default:
			return false
		}
	}
	return true
}
