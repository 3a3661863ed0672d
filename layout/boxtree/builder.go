package boxtree

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
)

// Worker bounds for parallel construction of flex and grid items.
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// Options configure a builder.
type Options struct {
	Parallel          bool // construct items of flex and grid containers in parallel
	ParallelThreshold int  // minimum number of items for parallel construction
	MaxWorkers        int  // 0 for GOMAXPROCS; clamped to [3…10]
}

// Stats counts the work done by a builder.
type Stats struct {
	BoxesBuilt  int64
	BoxesReused int64
}

// Builder constructs the box tree for a styled tree. It consults and
// updates the layout data of a table, which must contain computed styles
// for every element to be built.
type Builder struct {
	table   *Table
	opts    Options
	workers int
	built   atomic.Int64
	reused  atomic.Int64
}

// NewBuilder creates a builder for the layout data in table.
func NewBuilder(table *Table, opts Options) *Builder {
	if opts.ParallelThreshold <= 0 {
		opts.ParallelThreshold = 2
	}
	return &Builder{
		table:   table,
		opts:    opts,
		workers: workerCount(opts.MaxWorkers),
	}
}

func workerCount(n int) int {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	return n
}

// Stats returns the counters of the builder.
func (b *Builder) Stats() Stats {
	return Stats{BoxesBuilt: b.built.Load(), BoxesReused: b.reused.Load()}
}

// ResetStats sets all counters to zero.
func (b *Builder) ResetStats() {
	b.built.Store(0)
	b.reused.Store(0)
}

// BuildRoot builds the box tree for the root element. Boxes of elements
// without damage are re-used from a previous build. It returns nil if the
// root does not generate a box.
func (b *Builder) BuildRoot(ctx context.Context, root *styledtree.StyNode) (*Box, error) {
	data := b.styledData(root)
	st := data.Styles().Primary
	if st.IsDisplayNone() {
		return nil, nil
	}
	box, err := b.elementBox(ctx, root, data, st, BlockLevel, DefaultPropagatedData())
	if err != nil {
		return nil, err
	}
	tracer().Infof("box tree built: %d boxes built, %d re-used", b.built.Load(), b.reused.Load())
	return box, nil
}

// styledData returns the layout data of an element, which must have been styled.
func (b *Builder) styledData(sn *styledtree.StyNode) *ElementData {
	data, ok := b.table.Get(sn.ID())
	assertThat(ok && data.Styles().Primary != nil, "no style for element %s", sn)
	return data
}

// elementBox re-uses the box of an undamaged element or builds a new one
// and deposits it.
func (b *Builder) elementBox(ctx context.Context, sn *styledtree.StyNode, data *ElementData,
	st *css.ComputedStyle, kind Kind, pd PropagatedData) (*Box, error) {
	//
	if box := data.Box(); box != nil && data.Damage().IsEmpty() {
		assertThat(box.Kind == kind, "re-used box %s of element %s is not of kind %s", box, sn, kind)
		b.reused.Add(1)
		return box, nil
	}
	box, err := b.buildElementBox(ctx, sn, st, st.Display, kind, pd)
	if err != nil {
		return nil, err
	}
	data.Slot().Set(box)
	return box, nil
}

// buildElementBox creates a new box for an element and builds its contents
// according to the inner display type.
func (b *Builder) buildElementBox(ctx context.Context, sn *styledtree.StyNode, st *css.ComputedStyle,
	display css.DisplayMode, kind Kind, pd PropagatedData) (*Box, error) {
	//
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var fc *FormattingContext
	var err error
	switch {
	case display.Contains(css.FlexMode):
		fc, err = b.buildModern(ctx, sn, FlexContext, pd)
	case display.Contains(css.GridMode):
		fc, err = b.buildModern(ctx, sn, GridContext, pd)
	default:
		fc, err = b.buildFlow(ctx, sn, pd)
	}
	if err != nil {
		return nil, err
	}
	b.built.Add(1)
	box := newBox(kind, sn.ID(), st, fc)
	tracer().Debugf("built box %s", box)
	return box, nil
}
