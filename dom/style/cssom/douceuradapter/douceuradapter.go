/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'reflow.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("reflow.cssom")
}

// CSSStyles adapts a douceur stylesheet to interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur.css.Stylesheet into CssStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{*css}
	return sheet
}

// ParseStyleSheet parses CSS text into a stylesheet.
func ParseStyleSheet(text string) (*CSSStyles, error) {
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse stylesheet: %w", err)
	}
	return Wrap(c), nil
}

// ParseDeclarations parses the content of an HTML style attribute into
// a rule without selectors. It is a cssom.DeclarationParser.
//
// douceur drops the value of a final declaration without a terminating
// semicolon, so one is appended if missing.
func ParseDeclarations(text string) (cssom.Rule, error) {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("cannot parse style attribute: %w", err)
	}
	return Rule(css.Rule{Kind: css.QualifiedRule, Declarations: decls}), nil
}

var _ cssom.DeclarationParser = ParseDeclarations

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	othercss := other.(*CSSStyles)
	sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
}

// Rules returns all the rules of a stylesheet. At-rules (@media, @font-face, …)
// are not supported and will be skipped.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, 0, len(sheet.css.Rules))
	for _, r := range sheet.css.Rules {
		if r.Kind != css.QualifiedRule {
			tracer().Debugf("skipping at-rule %s", r.Name)
			continue
		}
		rules = append(rules, Rule(*r))
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the distinct property keys of a rule, e.g. "margin-top",
// in order of their last declaration.
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for i, d := range r.Declarations {
		if r.last(d.Property) == i {
			props = append(props, d.Property)
		}
	}
	return props
}

// last returns the index of the last declaration for key, or -1.
// Later declarations within a rule win over earlier ones.
func (r Rule) last(key string) int {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == key {
			return i
		}
	}
	return -1
}

// Value returns the property value for a key, e.g. "15px".
func (r Rule) Value(key string) style.Property {
	if i := r.last(key); i >= 0 {
		return style.Property(r.Declarations[i].Value)
	}
	return style.NullStyle
}

// IsImportant returns true if a property is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	if i := r.last(key); i >= 0 {
		return r.Declarations[i].Important
	}
	return false
}

var _ cssom.Rule = &Rule{}

// ExtractStyleElements finds all <style> elements of an HTML parse tree,
// in document order, and returns their content as style sheets. Malformed
// style elements are skipped.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	stack := []*html.Node{htmldoc}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == nil {
			continue
		}
		if h.Type == html.ElementNode && h.DataAtom == atom.Style {
			if h.FirstChild == nil {
				continue
			}
			c, err := parser.Parse(h.FirstChild.Data)
			if err != nil {
				tracer().Errorf("ignoring malformed <style>: %v", err)
				continue
			}
			sheets = append(sheets, Wrap(c))
			continue
		}
		for ch := h.LastChild; ch != nil; ch = ch.PrevSibling {
			stack = append(stack, ch)
		}
	}
	return sheets
}
