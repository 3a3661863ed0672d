package layout

import (
	"context"
	"errors"
	"fmt"

	"github.com/npillmayer/reflow/config"
	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/cssom"
	"github.com/npillmayer/reflow/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/dom/w3cdom"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/damage"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/reflow/layout/incremental"
	"github.com/npillmayer/reflow/layout/reflow"
	"github.com/npillmayer/reflow/layout/restyle"
	"github.com/npillmayer/reflow/tree"
	"github.com/npillmayer/tyse/core/dimen"
)

// Stats counts the work of a single reflow.
type Stats struct {
	Restyle     restyle.Stats
	Damage      incremental.Stats
	Boxes       boxtree.Stats
	Geometry    reflow.Stats
	RootDamage  damage.Damage // damage reported by the root element
	StyleErrors []error       // malformed styles, which have been replaced by defaults
}

// Engine holds the layout state of a document.
type Engine struct {
	doc      *dom.Document
	styler   *cssom.Engine
	table    *boxtree.Table
	builder  *boxtree.Builder
	metrics  reflow.Metrics
	viewport dimen.DU
	root     *boxtree.Box
	frags    *fragment.Fragment
	scroll   map[styledtree.NodeID]fragment.Point
	passes   int
	pending  *Stats // invalidation not yet acted on by a reflow
}

// ErrRemoveRoot is returned when trying to remove the root element.
var ErrRemoveRoot = errors.New("cannot remove the root element")

// NewEngine creates a layout engine for a document. The style sheets of
// the document's style elements are added to the engine; rules with
// unsupported selectors are skipped.
func NewEngine(doc *dom.Document, conf config.Layout) *Engine {
	e := &Engine{
		doc:    doc,
		styler: cssom.NewEngine(douceuradapter.ParseDeclarations),
		table:  boxtree.NewTable(),
		metrics: reflow.Metrics{
			CharAdvance: config.Points(conf.CharAdvance),
			LineHeight:  config.Points(conf.LineHeight),
		},
		viewport: config.Points(conf.ViewportWidth),
		scroll:   make(map[styledtree.NodeID]fragment.Point),
	}
	e.builder = boxtree.NewBuilder(e.table, boxtree.Options{
		Parallel:          conf.Parallel,
		ParallelThreshold: conf.ParallelThreshold,
		MaxWorkers:        conf.MaxWorkers,
	})
	for _, sheet := range douceuradapter.ExtractStyleElements(doc.HTML) {
		if err := e.styler.AddStyleSheet(sheet); err != nil {
			tracer().Infof("document style sheet: %v", err)
		}
	}
	return e
}

// AddStyleSheet parses CSS text and adds its rules. All elements will be
// restyled in the next reflow.
func (e *Engine) AddStyleSheet(text string) error {
	sheet, err := douceuradapter.ParseStyleSheet(text)
	if err != nil {
		return err
	}
	err = e.styler.AddStyleSheet(sheet)
	e.doc.Root().MarkSubtreeDirty()
	return err
}

// SetViewport changes the width of the viewport.
func (e *Engine) SetViewport(width dimen.DU) {
	e.viewport = width
}

// ScrollTo sets the scroll offset of the content of an element. It takes
// effect with the next reflow, for elements with overflow other than
// visible. The element is laid out again; its children keep their
// fragments.
func (e *Engine) ScrollTo(sn *styledtree.StyNode, offset fragment.Point) error {
	if !sn.IsElement() {
		return fmt.Errorf("cannot scroll %s: %w", sn, dom.ErrNotAnElement)
	}
	if old, ok := e.scroll[sn.ID()]; ok && old == offset {
		return nil
	}
	e.scroll[sn.ID()] = offset
	if data, ok := e.table.Get(sn.ID()); ok {
		data.AddDamage(damage.Relayout)
		e.pending = nil
	}
	return nil
}

// Remove detaches a node from the document and drops the layout data of
// its subtree. Its parent re-collects its children in the next reflow.
func (e *Engine) Remove(sn *styledtree.StyNode) error {
	if sn == e.doc.Root() {
		return ErrRemoveRoot
	}
	dom.Remove(sn)
	return tree.BottomUp(&sn.Node, func(n, _ *tree.Node[*styledtree.StyNode], _ int) error {
		id := n.Payload.ID()
		e.table.Remove(id)
		delete(e.scroll, id)
		return nil
	})
}

// Document returns the document the engine lays out.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Table returns the layout data of the nodes of the document.
func (e *Engine) Table() *boxtree.Table {
	return e.table
}

// Root returns the root box of the most recent reflow, or nil.
func (e *Engine) Root() *boxtree.Box {
	return e.root
}

// Fragments returns the fragment tree of the most recent reflow, or nil.
func (e *Engine) Fragments() *fragment.Fragment {
	return e.frags
}

// Invalidate restyles dirty elements and propagates damage, without
// rebuilding boxes. Afterwards, the layout data of the document holds the
// damage the next reflow will act on.
func (e *Engine) Invalidate() Stats {
	var stats Stats
	docroot := e.doc.Root()
	rs := restyle.New(e.styler, e.table)
	if err := rs.Traverse(docroot); err != nil {
		stats.StyleErrors = unwrapAll(err)
	}
	stats.Restyle = rs.Stats()
	dt := incremental.New(e.table)
	stats.RootDamage = dt.ComputeDamageAndRepairStyle(docroot, damage.None)
	stats.Damage = dt.Stats()
	e.pending = &stats
	return stats
}

// Reflow brings the layout up to date with the document. Style errors do
// not stop a reflow; they are reported in the statistics.
func (e *Engine) Reflow(ctx context.Context) (*fragment.Fragment, Stats, error) {
	e.passes++
	var stats Stats
	// damage must not be propagated twice, as it is kept for damaged boxes
	if root := e.doc.Root(); e.pending != nil && !root.IsDirty() && !root.HasDirtyDescendants() {
		stats = *e.pending
	} else {
		stats = e.Invalidate()
	}
	e.pending = nil
	e.builder.ResetStats()
	root, err := e.builder.BuildRoot(ctx, e.doc.Root())
	if err != nil {
		return nil, stats, fmt.Errorf("reflow %d: %w", e.passes, err)
	}
	stats.Boxes = e.builder.Stats()
	e.root = root
	l := reflow.New(e.metrics)
	l.SetScrollOffsets(e.scroll)
	e.frags = l.Layout(root, e.viewport)
	stats.Geometry = l.Stats()
	tracer().Infof("reflow %d: root damage %s, %d boxes built, %d reused, %d laid out",
		e.passes, stats.RootDamage, stats.Boxes.BoxesBuilt, stats.Boxes.BoxesReused,
		stats.Geometry.BoxesLaidOut)
	return e.frags, stats, nil
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// ClientRects returns the rectangles of the fragments of a node, in
// document coordinates.
func (e *Engine) ClientRects(sn *styledtree.StyNode) []fragment.Rect {
	if e.frags == nil {
		return nil
	}
	return fragment.ClientRects(e.frags, sn.ID())
}

// BoundingClientRect returns the union of the client rects of a node.
func (e *Engine) BoundingClientRect(sn *styledtree.StyNode) (fragment.Rect, bool) {
	if e.frags == nil {
		return fragment.Rect{}, false
	}
	return fragment.BoundingClientRect(e.frags, sn.ID())
}

// Element returns a W3C view of the element with the given id, or nil.
// Geometry queries of the view are answered from the most recent reflow.
func (e *Engine) Element(id string) w3cdom.Node {
	sn := dom.FindByID(e.doc, id)
	if sn == nil {
		return nil
	}
	return w3cdom.Wrap(sn, e)
}
