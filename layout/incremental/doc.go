/*
Package incremental propagates restyle damage through the styled tree.

After restyling, every element carries the damage its own style change
caused. Before the box tree is rebuilt, damage has to be combined along
the tree: a parent which has to rebuild its box forces its children to
be rebuilt as well, while children which have to be laid out again force
their ancestors to be laid out again. On the way, the layout caches of
elements are cleared where they have become stale, and the styles of
boxes which survive are repaired in place.

The traversal visits elements in pre-order and aggregates results in
post-order. Subtrees of elements styled `display: none` are not visited;
their damage is remembered until they are displayed again.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package incremental

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.incremental'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.incremental")
}
