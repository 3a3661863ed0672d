package layout

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/reflow/config"
	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/damage"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><style>#b p { color: green }</style></head><body>` +
	`<div id="a"><p id="p1">one</p></div>` +
	`<div id="b"><p id="p2">two</p></div>` +
	`</body></html>`

func testEngine(t *testing.T) *Engine {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)
	conf := config.Default().Layout
	conf.CharAdvance, conf.LineHeight = 10, 20
	return NewEngine(doc, conf)
}

func runReflow(t *testing.T, e *Engine) (*fragment.Fragment, Stats) {
	f, stats, err := e.Reflow(context.Background())
	require.NoError(t, err)
	require.Empty(t, stats.StyleErrors)
	return f, stats
}

func find(f *fragment.Fragment, node styledtree.NodeID) *fragment.Fragment {
	if f.Node == node && f.Kind == fragment.BoxFragment {
		return f
	}
	for _, ch := range f.Children {
		if r := find(ch, node); r != nil {
			return r
		}
	}
	return nil
}

func TestFirstReflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	f, stats := runReflow(t, e)
	require.NotNil(t, f)
	if stats.RootDamage != damage.Reconstruct {
		t.Errorf("expected first reflow to reconstruct, is %s", stats.RootDamage)
	}
	assert.Equal(t, int64(0), stats.Boxes.BoxesReused)
	assert.Equal(t, int64(6), stats.Boxes.BoxesBuilt) // html, body, div, p, div, p
	p2 := dom.FindByID(e.Document(), "p2")
	r, ok := e.BoundingClientRect(p2)
	require.True(t, ok)
	expected := fragment.Rect{TopL: fragment.Point{Y: config.Points(20)}, W: config.Points(600), H: config.Points(20)}
	if r != expected {
		t.Errorf("expected p2 at %s, is %s", expected, r)
	}
	assert.Equal(t, "green", find(f, p2.ID()).Color)
}

func TestUnchangedReflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	f1, _ := runReflow(t, e)
	f2, stats := runReflow(t, e)
	if f1 != f2 {
		t.Errorf("expected unchanged document to keep its fragments")
	}
	assert.Equal(t, 0, stats.Restyle.Restyled)
	assert.True(t, stats.RootDamage.IsEmpty())
	assert.Equal(t, int64(1), stats.Boxes.BoxesReused)
	assert.Equal(t, int64(0), stats.Boxes.BoxesBuilt)
	assert.Equal(t, 0, stats.Geometry.BoxesLaidOut)
	assert.Equal(t, 1, stats.Geometry.CacheHits)
}

func TestTextChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	runReflow(t, e)
	p1 := dom.FindByID(e.Document(), "p1")
	text := p1.ChildNodes()[0]
	require.NoError(t, dom.SetText(text, "three"))
	_, stats := runReflow(t, e)
	assert.Equal(t, 1, stats.Restyle.Restyled)
	assert.True(t, stats.RootDamage.Contains(damage.RecollectBoxTreeChildren))
	assert.Equal(t, int64(4), stats.Boxes.BoxesBuilt)  // html, body, div a, p1
	assert.Equal(t, int64(1), stats.Boxes.BoxesReused) // div b
	assert.Equal(t, 4, stats.Geometry.BoxesLaidOut)
	assert.Equal(t, 1, stats.Geometry.CacheHits)
	rects := e.ClientRects(text)
	require.Len(t, rects, 1)
	if rects[0].W != config.Points(50) {
		t.Errorf("expected new text to be 50pt wide, is %s", rects[0])
	}
}

func TestRepaintOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	f1, _ := runReflow(t, e)
	p2 := dom.FindByID(e.Document(), "p2")
	require.NoError(t, dom.SetAttribute(p2, "style", "color:red"))
	f2, stats := runReflow(t, e)
	assert.True(t, stats.RootDamage.IsEmpty(), "repaint does not propagate")
	assert.Equal(t, 1, stats.Damage.StyleRepairs)
	assert.Equal(t, 0, stats.Damage.CachesCleared)
	assert.Equal(t, 0, stats.Geometry.BoxesLaidOut)
	require.True(t, f1 == f2, "expected fragments to be kept")
	pf := find(f2, p2.ID())
	assert.Equal(t, "red", pf.Color)
	line := pf.Children[0]
	assert.Equal(t, "red", line.Children[0].Color, "text of p2")
}

func TestParallelConstructionIsEquivalent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	var b strings.Builder
	b.WriteString(`<html><body><div style="display:flex">`)
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, `<p style="order:%d">item %d</p>text %d`, (i*7)%5, i, i)
	}
	b.WriteString(`</div></body></html>`)
	var encoded [2][]byte
	for i, parallel := range []bool{false, true} {
		doc, err := dom.ParseString(b.String())
		require.NoError(t, err)
		conf := config.Default().Layout
		conf.Parallel = parallel
		e := NewEngine(doc, conf)
		f, _ := runReflow(t, e)
		var buf bytes.Buffer
		require.NoError(t, fragment.Encode(&buf, f))
		encoded[i] = buf.Bytes()
	}
	if !bytes.Equal(encoded[0], encoded[1]) {
		t.Errorf("expected parallel construction to produce the same fragments")
	}
}

func TestAddStyleSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	runReflow(t, e)
	require.NoError(t, e.AddStyleSheet(`#a { display: none }`))
	f, stats := runReflow(t, e)
	assert.Greater(t, stats.Restyle.Restyled, 1)
	p1 := dom.FindByID(e.Document(), "p1")
	if find(f, p1.ID()) != nil {
		t.Errorf("expected hidden element to have no fragment")
	}
	p2 := dom.FindByID(e.Document(), "p2")
	r, _ := e.BoundingClientRect(p2)
	assert.Equal(t, config.Points(0), r.TopL.Y, "p2 moved up")
}

func TestInvalidateBeforeReflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	runReflow(t, e)
	p1 := dom.FindByID(e.Document(), "p1")
	require.NoError(t, dom.SetText(p1.ChildNodes()[0], "three"))
	inv := e.Invalidate()
	data, _ := e.Table().Get(p1.ID())
	if !data.Damage().Contains(damage.RecollectBoxTreeChildren) {
		t.Errorf("expected damage to be kept for box construction, is %s", data.Damage())
	}
	_, stats := runReflow(t, e)
	assert.Equal(t, inv.RootDamage, stats.RootDamage)
	assert.Equal(t, int64(1), stats.Boxes.BoxesReused)
	assert.Equal(t, 1, stats.Geometry.CacheHits, "undamaged sibling keeps its fragment")
}

func engineFor(t *testing.T, src string) *Engine {
	doc, err := dom.ParseString(src)
	require.NoError(t, err)
	conf := config.Default().Layout
	conf.CharAdvance, conf.LineHeight = 10, 20
	return NewEngine(doc, conf)
}

func encoded(t *testing.T, f *fragment.Fragment) []byte {
	var buf bytes.Buffer
	require.NoError(t, fragment.Encode(&buf, f))
	return buf.Bytes()
}

func rectOf(t *testing.T, e *Engine, id string) fragment.Rect {
	sn := dom.FindByID(e.Document(), id)
	require.NotNil(t, sn, "element %s", id)
	r, ok := e.BoundingClientRect(sn)
	require.True(t, ok, "element %s has no fragments", id)
	return r
}

func TestReusedAbsposItemStaysOutOfFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	const src = `<html><body><div id="c" style="display:flex">` +
		`<p id="abs" style="position:absolute">x</p><p id="a">aa</p><p id="b">%s</p>` +
		`</div></body></html>`
	e := engineFor(t, fmt.Sprintf(src, "bb"))
	runReflow(t, e)
	assert.Equal(t, config.Points(0), rectOf(t, e, "a").TopL.X)
	b := dom.FindByID(e.Document(), "b")
	require.NoError(t, dom.SetText(b.ChildNodes()[0], "bbbb"))
	f, stats := runReflow(t, e)
	assert.GreaterOrEqual(t, stats.Boxes.BoxesReused, int64(2), "abs and a are re-used")
	if x := rectOf(t, e, "a").TopL.X; x != 0 {
		t.Errorf("expected a to stay at x=0 next to the re-used abspos item, is %d", x)
	}
	fresh := engineFor(t, fmt.Sprintf(src, "bbbb"))
	g, _ := runReflow(t, fresh)
	if !bytes.Equal(encoded(t, f), encoded(t, g)) {
		t.Errorf("expected incremental reflow to equal a fresh layout")
	}
}

func TestOrderChangeReordersItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	const src = `<html><body><div id="c" style="display:flex">` +
		`<p id="a">aa</p><p id="b"%s>bb</p></div></body></html>`
	e := engineFor(t, fmt.Sprintf(src, ""))
	runReflow(t, e)
	assert.Equal(t, config.Points(0), rectOf(t, e, "a").TopL.X)
	b := dom.FindByID(e.Document(), "b")
	require.NoError(t, dom.SetAttribute(b, "style", "order:-1"))
	f, stats := runReflow(t, e)
	assert.True(t, stats.RootDamage.Contains(damage.RecollectBoxTreeChildren))
	rb, ra := rectOf(t, e, "b"), rectOf(t, e, "a")
	if rb.TopL.X != 0 || ra.TopL.X != rb.W {
		t.Errorf("expected b before a, is b at %s, a at %s", rb, ra)
	}
	fresh := engineFor(t, fmt.Sprintf(src, ` style="order:-1"`))
	g, _ := runReflow(t, fresh)
	if !bytes.Equal(encoded(t, f), encoded(t, g)) {
		t.Errorf("expected incremental reflow to equal a fresh layout")
	}
}

func TestPreviousFrameIsStable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	f1, _ := runReflow(t, e)
	b := dom.FindByID(e.Document(), "b")
	fb := find(f1, b.ID())
	require.NotNil(t, fb)
	before := fb.Rect
	snapshot := encoded(t, f1)
	p1 := dom.FindByID(e.Document(), "p1")
	require.NoError(t, dom.SetAttribute(p1, "style", "height:100pt"))
	f2, stats := runReflow(t, e)
	assert.Equal(t, 1, stats.Geometry.CacheHits, "div b keeps its fragment")
	if fb.Rect != before || find(f1, b.ID()).Rect != before {
		t.Errorf("expected div b of the previous frame to stay at %s, is %s", before, fb.Rect)
	}
	if !bytes.Equal(snapshot, encoded(t, f1)) {
		t.Errorf("expected previous fragment tree to be unchanged")
	}
	if y := find(f2, b.ID()).Rect.TopL.Y; y != config.Points(100) {
		t.Errorf("expected div b to move to y=100pt, is %d", y)
	}
}

func TestScrollTo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := engineFor(t, `<html><body><div id="s" style="overflow:scroll; height:20pt">`+
		`<p id="q">one</p><p>two</p></div><p id="r">three</p></body></html>`)
	f1, _ := runReflow(t, e)
	s := dom.FindByID(e.Document(), "s")
	require.NoError(t, e.ScrollTo(s, fragment.Point{Y: config.Points(10)}))
	f2, stats := runReflow(t, e)
	assert.Equal(t, int64(0), stats.Boxes.BoxesBuilt, "scrolling does not rebuild boxes")
	if y := rectOf(t, e, "q").TopL.Y; y != -config.Points(10) {
		t.Errorf("expected q to be scrolled to y=-10pt, is %d", y)
	}
	assert.Equal(t, config.Points(0), rectOf(t, e, "s").TopL.Y)
	assert.Equal(t, config.Points(20), rectOf(t, e, "r").TopL.Y)
	assert.Equal(t, fragment.Point{}, find(f1, s.ID()).Scroll, "previous frame is not scrolled")
	assert.Equal(t, fragment.Point{Y: config.Points(10)}, find(f2, s.ID()).Scroll)
	// elements with visible overflow do not scroll
	r := dom.FindByID(e.Document(), "r")
	require.NoError(t, e.ScrollTo(r, fragment.Point{Y: config.Points(5)}))
	runReflow(t, e)
	assert.Equal(t, fragment.Point{}, find(e.Fragments(), r.ID()).Scroll)
}

func TestRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	e := testEngine(t)
	runReflow(t, e)
	a := dom.FindByID(e.Document(), "a")
	p1 := dom.FindByID(e.Document(), "p1")
	require.NoError(t, e.Remove(a))
	_, stats := runReflow(t, e)
	for _, sn := range []*styledtree.StyNode{a, p1, p1.ChildNodes()[0]} {
		if _, ok := e.Table().Get(sn.ID()); ok {
			t.Errorf("expected layout data of %s to be dropped", sn)
		}
	}
	assert.Equal(t, int64(1), stats.Boxes.BoxesReused, "div b is re-used")
	assert.Equal(t, config.Points(0), rectOf(t, e, "p2").TopL.Y, "p2 moved up")
	assert.ErrorIs(t, e.Remove(e.Document().Root()), ErrRemoveRoot)
}
