package w3cdom_test

import (
	"context"
	"testing"

	"github.com/npillmayer/reflow/config"
	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/w3cdom"
	"github.com/npillmayer/reflow/layout"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<html><head><style>#b p { color: green }</style></head><body>` +
	`<div id="a" class="x"><p id="p1">one <em>and</em> more</p></div>` +
	`<div id="b"><p id="p2">two</p></div>` +
	`</body></html>`

func TestTreeNavigation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	a := w3cdom.Wrap(dom.FindByID(doc, "a"), nil)
	require.NotNil(t, a)
	assert.Equal(t, html.ElementNode, a.NodeType())
	assert.Equal(t, "div", a.NodeName())
	assert.Equal(t, "body", a.ParentNode().NodeName())
	if a.NextSibling() == nil || a.NextSibling().NodeName() != "div" {
		t.Errorf("expected next sibling of div#a to be div#b, is %v", a.NextSibling())
	}
	assert.Nil(t, a.NextSibling().NextSibling())
	p1 := a.FirstChild()
	assert.Equal(t, "one and more", p1.TextContent())
	assert.Equal(t, 3, p1.ChildNodes().Length())
	assert.Equal(t, 1, p1.Children().Length())
	assert.Equal(t, "#text", p1.FirstChild().NodeName())
	assert.Equal(t, "one ", p1.FirstChild().NodeValue())
	assert.Nil(t, p1.Children().Item(1))
}

func TestAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	a := w3cdom.Wrap(dom.FindByID(doc, "a"), nil)
	require.True(t, a.HasAttributes())
	attrs := a.Attributes()
	assert.Equal(t, 2, attrs.Length())
	if cls := attrs.GetNamedItem("class"); cls == nil || cls.Value() != "x" {
		t.Errorf("expected class attribute 'x', is %v", cls)
	}
	assert.Nil(t, attrs.GetNamedItem("style"))
	keys := make(map[string]string)
	for i := 0; i < attrs.Length(); i++ {
		at := attrs.Item(i)
		assert.Equal(t, "", at.Namespace())
		keys[at.Key()] = at.Value()
	}
	assert.Equal(t, map[string]string{"id": "a", "class": "x"}, keys)
	assert.Nil(t, attrs.Item(2))
}

func TestStylesAndGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	conf := config.Default().Layout
	conf.CharAdvance, conf.LineHeight = 10, 20
	e := layout.NewEngine(doc, conf)
	p2 := e.Element("p2")
	require.NotNil(t, p2)
	if _, ok := p2.GetBoundingClientRect(); ok {
		t.Errorf("expected no geometry before the first reflow")
	}
	_, _, err = e.Reflow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "green", p2.ComputedStyles().GetPropertyValue("color").String())
	r, ok := p2.GetBoundingClientRect()
	require.True(t, ok)
	expected := fragment.Rect{TopL: fragment.Point{Y: config.Points(20)}, W: config.Points(600), H: config.Points(20)}
	if r != expected {
		t.Errorf("expected p2 at %s, is %s", expected, r)
	}
	assert.Len(t, p2.GetClientRects(), 1)
	assert.Nil(t, e.Element("nope"))
}
