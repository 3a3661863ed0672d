/*
Package tree implements an all-purpose tree type.

Styling and layout of HTML/CSS involve a lot of operations on different
trees: the styled DOM, the box tree, the fragment tree. Package tree offers
a generic node type carrying a payload, with concurrency-safe manipulation
of children, and sequential traversals which do not rely on the Go call
stack. DOM trees may get very deep, and layout passes over them need a
strict order (parents before children, or children before parents), so
traversals keep an explicit work stack.

Traversal functions:

	TopDown(root, action)        // pre-order, parents before children
	BottomUp(root, action)       // post-order, children before parents
	Ancestors(node)              // the chain of parents up to the root

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'reflow.tree'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.tree")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("tree: "+msg, msgargs...)
		panic(msg)
	}
}
