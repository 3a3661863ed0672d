/*
Package dom provides the document handle the layout engine works on.

Overview

An HTML document is parsed with golang.org/x/net/html and mirrored into
a styled tree (package dom/styledtree), restricted to element and text
nodes. Comments, doctype declarations and processing instructions are
dropped. The root of the styled tree is the <html> element.

Tree Implementation

Styling and layout of HTML/CSS involves a lot of operations on different trees.
We implement the various trees on top of a general purpose tree type
(package tree). In a fully object oriented programming language we would
subclass this tree type for every type of tree in use (styled tree, box
tree, fragment tree), but in Go we resort to composition, thus including a
generic tree node in every node (sub-)type.

Mutations

Incremental layout needs documents which change between reflows. The
mutation functions of this package change the HTML parse tree and the
styled tree in lockstep and flag the affected styled nodes for
restyling. They are not safe for concurrent use with a running reflow.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.dom'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.dom")
}
