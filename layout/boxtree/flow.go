package boxtree

import (
	"context"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/inlinebox"
)

// openInline is an inline element whose box is open during construction.
type openInline struct {
	node      *styledtree.StyNode
	data      *ElementData
	current   *inlinebox.InlineBox // fragment in the current inline formatting context
	fragments []*inlinebox.InlineBox
}

// flowBuilder collects the children of a block container into block-level
// boxes and inline formatting contexts.
type flowBuilder struct {
	b      *Builder
	ctx    context.Context
	pd     PropagatedData
	blocks []*Box
	ifc    *InlineFormattingContext
	open   []*openInline
}

func (b *Builder) buildFlow(ctx context.Context, container *styledtree.StyNode, pd PropagatedData) (*FormattingContext, error) {
	fb := &flowBuilder{b: b, ctx: ctx, pd: pd}
	if err := fb.traverse(container, b.styledData(container).Styles().Primary); err != nil {
		return nil, err
	}
	if len(fb.blocks) == 0 {
		if fb.ifc == nil {
			return &FormattingContext{Kind: FlowContext, Propagated: pd}, nil
		}
		fb.ifc.Boxes.Freeze()
		return &FormattingContext{Kind: InlineContext, Inline: fb.ifc, Propagated: pd}, nil
	}
	fb.flushInline()
	return &FormattingContext{Kind: FlowContext, Children: fb.blocks, Propagated: pd}, nil
}

func (fb *flowBuilder) traverse(parent *styledtree.StyNode, parentStyle *css.ComputedStyle) error {
	for _, ch := range parent.ChildNodes() {
		if ch.IsText() {
			ifc := fb.inline()
			ifc.Items = append(ifc.Items, InlineItem{
				Kind:  TextRun,
				Node:  ch.ID(),
				Text:  ch.Text(),
				Style: parentStyle,
			})
			continue
		}
		data := fb.b.styledData(ch)
		st := data.Styles().Primary
		switch {
		case st.IsDisplayNone():
			data.consumeDamage()
			continue
		case st.Display.IsContents():
			data.consumeDamage()
			if err := fb.traverse(ch, st); err != nil {
				return err
			}
		case st.IsAbsolutelyPositioned():
			box, err := fb.b.elementBox(fb.ctx, ch, data, st, AbsolutelyPositioned, DefaultPropagatedData())
			if err != nil {
				return err
			}
			if fb.ifc != nil { // keep static position within inline content
				fb.ifc.Items = append(fb.ifc.Items, InlineItem{Kind: Atomic, Node: ch.ID(), Style: st, Atomic: box})
			} else {
				fb.blocks = append(fb.blocks, box)
			}
		case st.Display.IsAtomicInline():
			box, err := fb.b.elementBox(fb.ctx, ch, data, st, InlineLevel, fb.pd)
			if err != nil {
				return err
			}
			ifc := fb.inline()
			ifc.Items = append(ifc.Items, InlineItem{Kind: Atomic, Node: ch.ID(), Style: st, Atomic: box})
		case st.Display.IsInlineLevel():
			fb.startInline(ch, data, st)
			if err := fb.traverse(ch, st); err != nil {
				return err
			}
			fb.endInline()
		default:
			box, err := fb.b.elementBox(fb.ctx, ch, data, st, BlockLevel, fb.pd)
			if err != nil {
				return err
			}
			fb.flushInline()
			fb.blocks = append(fb.blocks, box)
		}
	}
	return nil
}

// inline returns the current inline formatting context, creating it if
// necessary. A new context re-opens the continuations of all open inline
// boxes.
func (fb *flowBuilder) inline() *InlineFormattingContext {
	if fb.ifc == nil {
		fb.ifc = newInlineFormattingContext()
		for _, oi := range fb.open {
			fb.startFragment(oi)
		}
	}
	return fb.ifc
}

func (fb *flowBuilder) startFragment(oi *openInline) {
	id := fb.ifc.Boxes.StartInlineBox(oi.current)
	fb.ifc.Items = append(fb.ifc.Items, InlineItem{
		Kind:  StartInlineBox,
		Node:  oi.node.ID(),
		Style: oi.current.Style(),
		BoxID: id,
	})
}

func (fb *flowBuilder) endFragment(oi *openInline) {
	id := oi.current.Identifier()
	fb.ifc.Boxes.EndInlineBox(id)
	fb.ifc.Items = append(fb.ifc.Items, InlineItem{Kind: EndInlineBox, Node: oi.node.ID(), BoxID: id})
}

func (fb *flowBuilder) startInline(sn *styledtree.StyNode, data *ElementData, st *css.ComputedStyle) {
	fb.inline()
	ib := inlinebox.NewInlineBox(sn.ID(), st)
	oi := &openInline{node: sn, data: data, current: ib, fragments: []*inlinebox.InlineBox{ib}}
	fb.open = append(fb.open, oi)
	fb.startFragment(oi)
}

func (fb *flowBuilder) endInline() {
	fb.inline()
	oi := fb.open[len(fb.open)-1]
	fb.endFragment(oi)
	fb.open = fb.open[:len(fb.open)-1]
	oi.data.Slot().SetInlineBoxes(oi.fragments)
}

// flushInline closes the current inline formatting context, as a block-level
// box follows. Inline content consisting of whitespace only is dropped.
// Open inline boxes are split: they end in the closed context and continue
// in the next one.
func (fb *flowBuilder) flushInline() {
	if fb.ifc == nil {
		return
	}
	for i := len(fb.open) - 1; i >= 0; i-- {
		fb.endFragment(fb.open[i])
	}
	ifc := fb.ifc
	ifc.Boxes.Freeze()
	fb.ifc = nil
	if ifc.HasContent() {
		fb.b.built.Add(1)
		anon := newBox(Anonymous, styledtree.NoNode, css.DefaultStyle,
			&FormattingContext{Kind: InlineContext, Inline: ifc, Propagated: fb.pd})
		fb.blocks = append(fb.blocks, anon)
	}
	for _, oi := range fb.open {
		oi.current = oi.current.SplitOff()
		oi.fragments = append(oi.fragments, oi.current)
	}
}
