package boxtree

import (
	"context"
	"fmt"
	"sort"

	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"golang.org/x/sync/errgroup"
)

// ModernItemKind tells how an item of a flex or grid container participates
// in layout.
type ModernItemKind uint8

// Kinds of modern items.
const (
	InFlow    ModernItemKind = iota // flex or grid item
	OutOfFlow                       // absolutely positioned child
	ReusedBox                       // box of a previous build, re-used without change
)

func (k ModernItemKind) String() string {
	switch k {
	case InFlow:
		return "in-flow"
	case OutOfFlow:
		return "out-of-flow"
	case ReusedBox:
		return "re-used"
	}
	return "?"
}

// ModernItem is a child of a flex or grid container, ready for layout.
type ModernItem struct {
	Kind  ModernItemKind
	Order int32 // CSS `order`; 0 for absolutely positioned children
	Box   *Box
}

// IsOutOfFlow is true for absolutely positioned children, including
// re-used ones, which do not take part in flex or grid placement.
func (item ModernItem) IsOutOfFlow() bool {
	return item.Kind == OutOfFlow || (item.Box != nil && item.Box.Kind == AbsolutelyPositioned)
}

func (item ModernItem) String() string {
	return fmt.Sprintf("%s(%d)%s", item.Kind, item.Order, item.Box)
}

// ModernTextRun is a run of text of a text node, as collected for a flex or
// grid container.
type ModernTextRun struct {
	Node  styledtree.NodeID
	Text  string
	Style *css.ComputedStyle
}

type modernJobKind uint8

const (
	textRunsJob modernJobKind = iota
	elementJob
)

type modernJob struct {
	kind    modernJobKind
	runs    []ModernTextRun
	node    *styledtree.StyNode
	display css.DisplayMode
	slot    *BoxSlot
}

// ModernBuilder collects the children of a flex or grid container and
// constructs an item for each of them. Contiguous text is wrapped into a
// single anonymous block; text consisting of document whitespace only is
// dropped.
//
// Children are handed to the builder in document order with HandleText and
// HandleElement. Finish constructs the items, possibly in parallel.
type ModernBuilder struct {
	b       *Builder
	kind    ContextKind
	pd      PropagatedData
	pending []ModernTextRun
	jobs    []modernJob
}

// NewModernBuilder creates a builder for the children of a flex
// (FlexContext) or grid (GridContext) container.
func (b *Builder) NewModernBuilder(kind ContextKind, pd PropagatedData) *ModernBuilder {
	assertThat(kind == FlexContext || kind == GridContext, "%s is not a flex or grid context", kind)
	return &ModernBuilder{b: b, kind: kind, pd: pd}
}

// HandleText buffers the text of a text node.
func (mb *ModernBuilder) HandleText(node styledtree.NodeID, text string, style *css.ComputedStyle) {
	mb.pending = append(mb.pending, ModernTextRun{Node: node, Text: text, Style: style})
}

// HandleElement flushes pending text and enqueues an element.
func (mb *ModernBuilder) HandleElement(node *styledtree.StyNode, display css.DisplayMode, slot *BoxSlot) {
	mb.flushText()
	mb.jobs = append(mb.jobs, modernJob{
		kind:    elementJob,
		node:    node,
		display: display,
		slot:    slot,
	})
}

func (mb *ModernBuilder) flushText() {
	if len(mb.pending) == 0 {
		return
	}
	runs := mb.pending
	mb.pending = nil
	for _, r := range runs {
		if !dom.IsDocumentWhitespace(r.Text) {
			mb.jobs = append(mb.jobs, modernJob{kind: textRunsJob, runs: runs})
			return
		}
	}
	tracer().Debugf("dropping whitespace-only text in %s container", mb.kind)
}

// Finish constructs all items and returns them, ordered by their CSS
// `order` property. Items with equal order stay in document order.
func (mb *ModernBuilder) Finish(ctx context.Context) ([]ModernItem, error) {
	items, err := mb.buildItems(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order < items[j].Order
	})
	return items, nil
}

// buildItems constructs an item for every job, in job order.
func (mb *ModernBuilder) buildItems(ctx context.Context) ([]ModernItem, error) {
	mb.flushText()
	items := make([]ModernItem, len(mb.jobs))
	if !mb.b.opts.Parallel || len(mb.jobs) < mb.b.opts.ParallelThreshold {
		for i := range mb.jobs {
			item, err := mb.buildItem(ctx, &mb.jobs[i])
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mb.b.workers)
	for i := range mb.jobs {
		g.Go(func() error {
			item, err := mb.buildItem(gctx, &mb.jobs[i])
			items[i] = item
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (mb *ModernBuilder) buildItem(ctx context.Context, job *modernJob) (ModernItem, error) {
	if err := ctx.Err(); err != nil {
		return ModernItem{}, err
	}
	if job.kind == textRunsJob {
		ifc := newInlineFormattingContext()
		for _, r := range job.runs {
			ifc.Items = append(ifc.Items, InlineItem{Kind: TextRun, Node: r.Node, Text: r.Text, Style: r.Style})
		}
		ifc.Boxes.Freeze()
		mb.b.built.Add(1)
		anon := newBox(Anonymous, styledtree.NoNode, css.DefaultStyle,
			&FormattingContext{Kind: InlineContext, Inline: ifc, Propagated: mb.pd})
		return ModernItem{Kind: InFlow, Order: 0, Box: anon}, nil
	}
	data := mb.b.styledData(job.node)
	st := data.Styles().Primary
	abspos := st.IsAbsolutelyPositioned()
	order := st.Order
	if abspos {
		order = 0
	}
	if box := data.Box(); box != nil && data.Damage().IsEmpty() {
		assertThat(box.Kind.IsModernItem(), "re-used box %s of element %s is not a flex or grid level box",
			box, job.node)
		mb.b.reused.Add(1)
		return ModernItem{Kind: ReusedBox, Order: order, Box: box}, nil
	}
	kind, itemKind, pd := FlexItem, InFlow, mb.pd.disallowingPercentageColumns()
	if mb.kind == GridContext {
		kind = GridItem
	}
	if abspos {
		kind, itemKind, pd = AbsolutelyPositioned, OutOfFlow, DefaultPropagatedData()
	}
	box, err := mb.b.buildElementBox(ctx, job.node, st, job.display, kind, pd)
	if err != nil {
		return ModernItem{}, err
	}
	job.slot.Set(box)
	return ModernItem{Kind: itemKind, Order: order, Box: box}, nil
}

// buildModern collects the children of a flex or grid container.
func (b *Builder) buildModern(ctx context.Context, container *styledtree.StyNode, kind ContextKind,
	pd PropagatedData) (*FormattingContext, error) {
	//
	mb := b.NewModernBuilder(kind, pd)
	b.collectModern(mb, container, b.styledData(container).Styles().Primary)
	items, err := mb.Finish(ctx)
	if err != nil {
		return nil, err
	}
	fc := &FormattingContext{Kind: kind, Items: items, Propagated: pd}
	for _, item := range items {
		fc.Children = append(fc.Children, item.Box)
	}
	return fc, nil
}

func (b *Builder) collectModern(mb *ModernBuilder, parent *styledtree.StyNode, parentStyle *css.ComputedStyle) {
	for _, ch := range parent.ChildNodes() {
		if ch.IsText() {
			mb.HandleText(ch.ID(), ch.Text(), parentStyle)
			continue
		}
		data := b.styledData(ch)
		st := data.Styles().Primary
		switch {
		case st.IsDisplayNone():
			data.consumeDamage()
		case st.Display.IsContents():
			data.consumeDamage()
			b.collectModern(mb, ch, st)
		default:
			mb.HandleElement(ch, st.Display, data.Slot())
		}
	}
}
