package cssom_test

import (
	"testing"

	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/style/cssom"
	"github.com/npillmayer/reflow/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const styledDoc = `<html><head><style>
div { color: green; }
#c { display: flex; }
.item { order: 2; width: 10pt; }
#c .first { order: 1 !important; }
p { margin: 3pt 4pt; }
</style></head><body>
<div id="c"><p class="item first" style="order: 5">A</p><p class="item" style="width: 20%">B</p></div>
<span style="display: none">hidden</span>
</body></html>`

func styleAll(t *testing.T, doc *dom.Document, engine *cssom.Engine) map[string]*css.ComputedStyle {
	styles := make(map[string]*css.ComputedStyle)
	for i := 0; i < doc.Tree.Len(); i++ { // arena order is document order, parents first
		sn := doc.Tree.Node(styledtree.NodeID(i))
		if !sn.IsElement() {
			continue
		}
		cs, err := engine.Style(sn)
		if err != nil {
			t.Errorf("unexpected styling error: %v", err)
		}
		key := sn.Tag()
		if id, ok := sn.Attribute("id"); ok {
			key = "#" + id
		} else if sn.Tag() == "p" {
			key = "p:" + sn.ChildNodes()[0].Text()
		}
		styles[key] = cs
	}
	return styles
}

func TestCascade(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.cssom")
	defer teardown()
	//
	doc, err := dom.ParseString(styledDoc)
	require.NoError(t, err)
	engine := cssom.NewEngine(douceuradapter.ParseDeclarations)
	for _, sheet := range douceuradapter.ExtractStyleElements(doc.HTML) {
		require.NoError(t, engine.AddStyleSheet(sheet))
	}
	styles := styleAll(t, doc, engine)
	//
	assert.True(t, styles["#c"].Display.EstablishesModernContext(), "expected #c to be a flex container")
	assert.Equal(t, int32(1), styles["p:A"].Order, "important rule beats inline style")
	assert.Equal(t, int32(2), styles["p:B"].Order, "class rule sets order")
	assert.True(t, styles["p:B"].Width.IsPercent(), "inline style beats class rule")
	assert.True(t, styles["p:A"].Width.IsAbsolute(), "class rule sets width")
	assert.Equal(t, "green", styles["p:A"].Get("color").String(), "color is inherited")
	assert.Equal(t, "4pt", styles["p:A"].Get("margin-left").String(), "margin shortcut is split")
	assert.True(t, styles["span"].IsDisplayNone(), "inline style display: none")
	assert.True(t, styles["head"].IsDisplayNone(), "user-agent default for <head>")
	assert.True(t, styles["body"].Display.IsBlockLevel(), "user-agent default for <body>")
}

func TestNonElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.cssom")
	defer teardown()
	//
	doc, err := dom.ParseString(`<html><body>text</body></html>`)
	require.NoError(t, err)
	engine := cssom.NewEngine(nil)
	for i := 0; i < doc.Tree.Len(); i++ {
		sn := doc.Tree.Node(styledtree.NodeID(i))
		if sn.IsText() {
			if _, err := engine.Style(sn); err == nil {
				t.Errorf("expected styling a text node to fail")
			}
		}
	}
}

func TestBadSelector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.cssom")
	defer teardown()
	//
	sheet, err := douceuradapter.ParseStyleSheet(`p { color: red } p:nosuchpseudo { color: blue }`)
	require.NoError(t, err)
	engine := cssom.NewEngine(nil)
	if err := engine.AddStyleSheet(sheet); err == nil {
		t.Errorf("expected error for malformed selector")
	}
}
