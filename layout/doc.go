/*
Package layout runs incremental layout for a document.

An Engine owns the layout state of a document and runs reflows. A reflow
consists of the following passes:

  - restyle: elements flagged dirty get new styles, style changes are
    recorded as damage (package restyle)
  - damage propagation: damage is combined along the tree, stale layout
    caches are cleared and the styles of preserved boxes are repaired
    (package incremental)
  - box tree construction: damaged parts of the box tree are rebuilt,
    undamaged boxes are reused (package boxtree)
  - geometry: boxes without a valid cached fragment are laid out
    (package reflow)

After a reflow, the fragment tree answers geometry queries.

Clients mutate the document through package dom and call Reflow again.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.layout'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.layout")
}
