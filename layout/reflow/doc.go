/*
Package reflow computes geometry for a box tree and produces fragments.

The geometry is deliberately simple: block-level boxes are stacked
vertically, inline content is broken into lines greedily with a fixed
advance per character, flex items are placed in a single row, grid items
in a single column, and absolutely positioned boxes are placed at their
static position. Text shaping and the finer points of CSS sizing are the
business of other packages.

The layouter fills the layout caches of boxes: fragments, keyed by the
width of the containing block, and intrinsic inline sizes. Boxes which
still hold a cached fragment for the current containing block are not
laid out again.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reflow

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.geometry'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.geometry")
}
