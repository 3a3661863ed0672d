/*
Package boxtree implements the box tree and its construction.

Overview

The box tree is the intermediate representation between the styled
document and the fragment tree. Every element which generates a box
(that is, every element not styled `display: none`) gets a box;
additional anonymous boxes wrap text runs where block-level and
inline-level content is mixed, or where text is a direct child of a flex
or grid container. Boxes are organized by formatting contexts: block
flow, inline, flex and grid.

Per-element layout state

Layout state for elements is kept in a side table, keyed by the stable
identifiers of styled nodes. An entry holds the restyle damage of the
element, its primary computed style and the box most recently built for
it. Boxes are deposited through single-assignment box slots, which lets
the builder find undamaged boxes of a previous reflow and re-use them,
together with their layout caches.

Construction

Box tree construction starts at the root element. Block containers
collect their children into block-level boxes and inline formatting
contexts, splitting inline boxes around block-level descendants. Flex and
grid containers collect their children into items, with runs of text
wrapped into anonymous blocks; items are constructed independently and
may be constructed in parallel. Both builders re-use the existing box of
an element if it carries no damage.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.boxtree'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.boxtree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("box tree: "+msg, msgargs...)
		tracer().Errorf("%s", msg)
		panic(msg)
	}
}
