/*
Package restyle recomputes the styles of dirty elements and records the
damage each style change causes.

A Traversal bridges a style engine and the layout data of elements. It is
a pre-order visitor: for every element, it asks the style engine for a new
computed style, compares it to the previous one and stores the resulting
damage. Elements styled for the first time are flagged for
reconstruction. Clean subtrees are not entered.

Damage stored by the traversal is the input of package incremental.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package restyle

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.restyle'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.restyle")
}
