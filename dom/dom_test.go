package dom

import (
	"testing"

	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const testDoc = `<html><head><title>T</title></head><body>
<p id="p1">Hello <b>World</b></p><!-- comment -->
<div id="d1"></div>
</body></html>`

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Root().Tag() != "html" {
		t.Errorf("expected root to be <html>, is %s", doc.Root())
	}
	for i := 0; i < doc.Tree.Len(); i++ {
		sn := doc.Tree.Node(styledtree.NodeID(i))
		if !sn.IsElement() && !sn.IsText() {
			t.Errorf("expected elements and text only, have %v", sn)
		}
		if int(sn.ID()) != i {
			t.Errorf("expected node id %d, is %d", i, sn.ID())
		}
	}
	p := FindByID(doc, "p1")
	if p == nil {
		t.Fatalf("expected to find <p id=p1>")
	}
	if len(p.ChildNodes()) != 2 || len(p.ElementChildren()) != 1 {
		t.Errorf("expected <p> to have 2 children, 1 of them an element, is %v", p.ChildNodes())
	}
	if !doc.Root().HasDirtyDescendants() || !p.IsDirty() {
		t.Errorf("expected freshly parsed nodes to be dirty")
	}
}

func TestWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	if !IsDocumentWhitespace("   \n\t ") {
		t.Errorf("expected spaces, tabs and newlines to be document whitespace")
	}
	if !IsDocumentWhitespace("") {
		t.Errorf("expected empty string to be document whitespace")
	}
	if IsDocumentWhitespace("\u00a0\u00a0") {
		t.Errorf("expected no-break space not to be document whitespace")
	}
}

func TestMutations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := ParseString(testDoc)
	if err != nil {
		t.Fatal(err)
	}
	clean(doc)
	d := FindByID(doc, "d1")
	if err := SetAttribute(d, "class", "x"); err != nil {
		t.Fatal(err)
	}
	if !d.IsDirty() || !doc.Root().HasDirtyDescendants() {
		t.Errorf("expected attribute change to flag node and ancestors")
	}
	clean(doc)
	span := &html.Node{Type: html.ElementNode, Data: "span", DataAtom: atom.Span}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: "new"})
	sn, err := AppendChild(doc, d, span)
	if err != nil {
		t.Fatal(err)
	}
	if sn.ParentNode() != d || len(sn.ChildNodes()) != 1 {
		t.Errorf("expected appended <span> with one text child under d1, is %v", sn.ChildNodes())
	}
	if !d.TakeContentChanged() {
		t.Errorf("expected parent of appended child to note a content change")
	}
	Remove(sn)
	if len(d.ChildNodes()) != 0 || d.HTMLNode().FirstChild != nil {
		t.Errorf("expected d1 to be empty after removal")
	}
	if err := SetText(d, "x"); err == nil {
		t.Errorf("expected SetText on an element to fail")
	}
}

func TestFindByIDSkipsDetached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := ParseString(`<html><body><div id="x"><p id="y">y</p></div></body></html>`)
	if err != nil {
		t.Fatal(err)
	}
	if FindByID(doc, "y") == nil {
		t.Fatalf("expected to find element y")
	}
	x := FindByID(doc, "x")
	Remove(x)
	if sn := FindByID(doc, "y"); sn != nil {
		t.Errorf("expected child of a removed element to be detached, is %v", sn)
	}
	if FindByID(doc, "x") != nil {
		t.Errorf("expected removed element not to be found")
	}
	if !isAttached(doc, doc.Root()) {
		t.Errorf("expected document root to be attached")
	}
}

func clean(doc *Document) {
	for i := 0; i < doc.Tree.Len(); i++ {
		sn := doc.Tree.Node(styledtree.NodeID(i))
		sn.ClearDirty()
		sn.ClearDirtyDescendants()
		sn.TakeContentChanged()
	}
}
