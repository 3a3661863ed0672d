package reflow

import (
	"context"
	"testing"

	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/cssom"
	"github.com/npillmayer/reflow/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/reflow/layout/restyle"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMetrics = Metrics{CharAdvance: 10, LineHeight: 20}

func boxes(t *testing.T, src string) (*dom.Document, *boxtree.Box) {
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	table := boxtree.NewTable()
	engine := cssom.NewEngine(douceuradapter.ParseDeclarations)
	require.NoError(t, restyle.New(engine, table).Traverse(doc.Root()))
	root, err := boxtree.NewBuilder(table, boxtree.Options{}).BuildRoot(context.Background(), doc.Root())
	require.NoError(t, err)
	require.NotNil(t, root)
	return doc, root
}

// content returns the fragment of the element below html and body.
func content(t *testing.T, root *fragment.Fragment) *fragment.Fragment {
	require.Len(t, root.Children, 1, "html")
	body := root.Children[0]
	require.Len(t, body.Children, 1, "body")
	return body.Children[0]
}

func TestBlockStacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>Hello</p><p>World!</p></body></html>`)
	f := New(testMetrics).Layout(root, 200)
	body := f.Children[0]
	require.Len(t, body.Children, 2)
	p1, p2 := body.Children[0], body.Children[1]
	assert.Equal(t, fragment.Rect{W: 200, H: 20}, p1.Rect)
	assert.Equal(t, fragment.Rect{TopL: fragment.Point{Y: 20}, W: 200, H: 20}, p2.Rect)
	require.Len(t, p2.Children, 1)
	line := p2.Children[0]
	assert.Equal(t, fragment.LineFragment, line.Kind)
	require.Len(t, line.Children, 1)
	if line.Children[0].Text != "World!" || line.Children[0].Rect.W != 60 {
		t.Errorf("expected text 'World!' of width 60, is %s", line.Children[0])
	}
	assert.Equal(t, dimen.DU(40), f.Rect.H)
}

func TestLineBreaking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>aaa bbb
	ccc   ddd</p></body></html>`)
	p := content(t, New(testMetrics).Layout(root, 100))
	require.Len(t, p.Children, 2)
	var texts []string
	for _, line := range p.Children {
		require.Len(t, line.Children, 1)
		texts = append(texts, line.Children[0].Text)
	}
	assert.Equal(t, []string{"aaa bbb", "ccc ddd"}, texts)
	assert.Equal(t, dimen.DU(20), p.Children[1].Rect.TopL.Y)
	assert.Equal(t, dimen.DU(40), p.Rect.H)
}

func TestInlineBoxesShareLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>Hello <em>brave</em> world</p></body></html>`)
	p := content(t, New(testMetrics).Layout(root, 500))
	require.Len(t, p.Children, 1)
	line := p.Children[0]
	require.Len(t, line.Children, 3)
	xs := []dimen.DU{0, 60, 120}
	for i, f := range line.Children {
		assert.Equal(t, xs[i], f.Rect.TopL.X, "text %q", f.Text)
	}
}

func TestFlexRowInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><div style="display:flex"><p style="order:2">bb</p><p style="order:1">a</p></div></body></html>`)
	flex := content(t, New(testMetrics).Layout(root, 100))
	require.Len(t, flex.Children, 2)
	a, bb := flex.Children[0], flex.Children[1]
	assert.Equal(t, fragment.Rect{W: 10, H: 20}, a.Rect)
	assert.Equal(t, fragment.Rect{TopL: fragment.Point{X: 10}, W: 20, H: 20}, bb.Rect)
	assert.Equal(t, dimen.DU(20), flex.Rect.H)
}

func TestAbsposAtStaticPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><div><p>a</p><p style="position:absolute">zz</p><p>b</p></div></body></html>`)
	div := content(t, New(testMetrics).Layout(root, 100))
	require.Len(t, div.Children, 3)
	abs, b := div.Children[1], div.Children[2]
	assert.Equal(t, fragment.Rect{TopL: fragment.Point{Y: 20}, W: 20, H: 20}, abs.Rect)
	assert.Equal(t, dimen.DU(20), b.Rect.TopL.Y)
	assert.Equal(t, dimen.DU(40), div.Rect.H)
}

func TestLayoutCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>Hello</p></body></html>`)
	l := New(testMetrics)
	f1 := l.Layout(root, 100)
	laidOut := l.Stats().BoxesLaidOut
	f2 := l.Layout(root, 100)
	if f1 != f2 || l.Stats().BoxesLaidOut != laidOut || l.Stats().CacheHits != 1 {
		t.Errorf("expected second layout to hit the cache, is %+v", l.Stats())
	}
	l.Layout(root, 50)
	assert.Greater(t, l.Stats().BoxesLaidOut, laidOut, "other width needs new layout")
}

func TestContentSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>Hello <em>brave</em> new world</p></body></html>`)
	l := New(testMetrics)
	sizes := l.contentSizes(root)
	assert.Equal(t, boxtree.ContentSizes{Min: 50, Max: 210}, sizes)
	computed := l.Stats().SizesComputed
	l.contentSizes(root)
	assert.Equal(t, computed, l.Stats().SizesComputed, "sizes are cached")
}

func TestSplitWords(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	words, pending := splitWords(" a b  c ", false)
	assert.Equal(t, []word{{"a b", true}, {"c", true}}, words)
	assert.True(t, pending)
	words, pending = splitWords("x", true)
	assert.Equal(t, []word{{"x", true}}, words)
	assert.False(t, pending)
}

func TestRelativeOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.geometry")
	defer teardown()
	//
	_, root := boxes(t, `<html><body><p>x</p>`+
		`<p style="position: relative; top: 1pt; left: 10%">y</p><p>z</p></body></html>`)
	body := New(testMetrics).Layout(root, 200).Children[0]
	require.Len(t, body.Children, 3)
	expected := fragment.Point{X: 20, Y: 20 + dimen.PT}
	if p2 := body.Children[1]; p2.Rect.TopL != expected {
		t.Errorf("expected shifted p at %v, is %v", expected, p2.Rect.TopL)
	}
	assert.Equal(t, dimen.DU(40), body.Children[2].Rect.TopL.Y, "flow is not affected")
}
