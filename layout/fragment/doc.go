/*
Package fragment implements the fragment tree, the output of layout.

Fragments are positioned and sized boxes, ready to be painted. A
fragment tree is immutable once constructed: a reflow produces new
fragments for damaged parts of the box tree and re-uses cached fragments
for the rest. Fragments therefore may be shared between subsequent
fragment trees and read concurrently.

Fragment positions are relative to the content origin of the parent
fragment. Geometry queries (client rects of an element, as needed for
APIs like getBoundingClientRect) resolve positions to the coordinate
system of the root by descending the tree with a chain of containing
block information.

A fragment tree may be exported to a paint consumer with Encode, which
writes a MessagePack snapshot.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fragment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.fragment'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.fragment")
}
