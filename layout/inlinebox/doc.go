/*
Package inlinebox stores the inline boxes of an inline formatting context.

Inline boxes (<span>, <em>, …) nest, but text shaping and line breaking
work on a flat sequence of text runs. InlineBoxes therefore keeps the
nesting as a flat, append-only sequence of path tokens: every inline box
contributes a start token when it is opened and an end token when it is
closed, forming a well-nested parenthesization.

With this encoding, moving the current position from one inline box to
another is a matter of slicing the token sequence between the two
boxes and cancelling pairs of tokens which enter and immediately leave a
box. No tree walk and no lowest-common-ancestor search is necessary.

Inline boxes are shared by pointer. When an inline box is split around a
block-level box, both fragments reference the same styled node, but only
the first is flagged as first fragment and only the last as last fragment.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inlinebox

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.inline'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.inline")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		tracer().Errorf("inline boxes: "+msg, msgargs...)
		panic("inline boxes: " + msg)
	}
}
