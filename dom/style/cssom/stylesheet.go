package cssom

import "github.com/npillmayer/reflow/dom/style"

// StyleSheet is a parsed CSS stylesheet. The style engine depends on
// this interface only, not on a concrete CSS parser; package
// douceuradapter provides an implementation.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is a qualified rule of a stylesheet. At-rules are not represented.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// DeclarationParser parses the content of an HTML style attribute, e.g.
// "color: red; width: 10pt", into a rule without selectors.
type DeclarationParser func(string) (Rule, error)
