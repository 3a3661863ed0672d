package style

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// initialValues holds the user-agent initial values of non-inherited
// properties. Inherited properties have no entry: they are taken from the
// parent or left to the layout code. The value "default" means the
// renderer decides.
var initialValues = map[string]Property{
	"position":   "static",
	"float":      "none",
	"visibility": "visible",
	"overflow":   "visible",
	"content":    "normal",
	"top":        "0",
	"right":      "0",
	"bottom":     "0",
	"left":       "0",

	"order":       "0",
	"flex-grow":   "0",
	"flex-shrink": "1",
	"flex-basis":  "auto",

	"width":      "auto",
	"height":     "auto",
	"min-width":  "none",
	"min-height": "none",
	"max-width":  "none",
	"max-height": "none",

	"background-color": "default",
	"flow-from":        "none",
	"flow-into":        "none",
}

func init() {
	for _, side := range sides {
		initialValues["margin-"+side] = "0"
		initialValues["padding-"+side] = "0"
		initialValues["border-"+side+"-width"] = "medium"
		initialValues["border-"+side+"-style"] = "none"
		initialValues["border-"+side+"-color"] = "default"
	}
	for _, corner := range corners {
		initialValues["border-"+corner+"-radius"] = "0"
	}
}

// GetUserAgentDefaultProperty returns the user-agent default value of a
// property for an HTML node, or NullStyle if the user agent does not
// define one.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	if key == "display" {
		return DisplayPropertyForHTMLNode(node)
	}
	return initialValues[key]
}

// DisplayPropertyForHTMLNode returns the default `display` property for an
// HTML node. Unknown elements are block-level.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	switch node.Type {
	case html.DocumentNode:
		return "block"
	case html.ElementNode:
	default:
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	a := node.DataAtom
	if a == 0 {
		a = atom.Lookup([]byte(node.Data))
	}
	if d, ok := displayOfElement[a]; ok {
		return d
	}
	tracer().Infof("unknown HTML element %s will be set to display: block", node.Data)
	return "block"
}

var displayOfElement = map[atom.Atom]Property{
	atom.Head: "none", atom.Style: "none", atom.Script: "none", atom.Title: "none",
	atom.Meta: "none", atom.Link: "none", atom.Template: "none",

	atom.Html: "block", atom.Body: "block", atom.Div: "block", atom.P: "block",
	atom.H1: "block", atom.H2: "block", atom.H3: "block", atom.H4: "block",
	atom.H5: "block", atom.H6: "block", atom.Aside: "block", atom.Section: "block",
	atom.Main: "block", atom.Ol: "block", atom.Ul: "block", atom.Header: "block",
	atom.Footer: "block", atom.Nav: "block", atom.Article: "block",
	atom.Blockquote: "block", atom.Pre: "block",

	atom.Li: "list-item",

	atom.I: "inline", atom.B: "inline", atom.Span: "inline", atom.Strong: "inline",
	atom.Em: "inline", atom.A: "inline", atom.Code: "inline", atom.Small: "inline",
	atom.Label: "inline",

	atom.Img: "inline-block", atom.Button: "inline-block", atom.Input: "inline-block",
}
