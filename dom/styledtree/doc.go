/*
Package styledtree is a straightforward default implementation of a styled document tree.

Overview

A styled tree mirrors the HTML parse tree, restricted to element and text
nodes. Every styled node links to its HTML node, carries the cascaded style
properties for the element and a stable identifier. Identifiers are arena
indices: the Tree type owns all nodes in creation order and never reuses an
identifier, which lets layout keep per-element data in side tables keyed by
NodeID instead of attaching it to DOM nodes.

Styled nodes carry two flags for incremental restyling: an element may be
dirty (its own style must be recomputed) and may have dirty descendants.
Marking a node dirty marks all of its ancestors as having dirty descendants.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.dom'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.dom")
}
