/*
Package cssom provides functionality for CSS styling.

Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

Overview

CSSOM is the "CSS Object Model", similar to the DOM for HTML.
There is not very much open source Go code around for supporting us
in implementing a styling engine, except the great work of
https://godoc.org/github.com/andybalholm/cascadia.
Therefore we compromise on many features: this package implements a
small cascade, good enough to drive incremental layout.

CSS handling is de-coupled by introducing appropriate interfaces
StyleSheet and Rule. Concrete implementations may be found in sub-packages
(see package douceuradapter).

The Engine type is the per-element recalculation entry point. For an
element it matches all rules of its stylesheets with cascadia, orders
matching declarations by importance, origin (inline style attributes
beat rules), specificity and source order, applies inheritance from the
parent element and user-agent defaults, and stores the cascaded property
map with the styled node. The result is an immutable computed style
snapshot.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'reflow.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.cssom")
}
