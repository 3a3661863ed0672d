package cssom

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
)

// ErrNoElement is returned when styling a node which is not an element.
var ErrNoElement = errors.New("cannot style a non-element node")

// Engine computes styles for the elements of a styled tree.
// It holds the compiled rules of all stylesheets added to it.
//
// Styling of different elements may be done concurrently, as long as
// the parent of an element has been styled before the element itself.
type Engine struct {
	sync.RWMutex
	rules  []compiledRule
	inline DeclarationParser
}

// compiledRule is a single selector of a rule, together with the
// position of the rule in the order of stylesheets.
type compiledRule struct {
	sel  cascadia.Sel
	rule Rule
	seq  int
}

// NewEngine creates a style engine without any stylesheets. If inline is
// non-nil, it will be used to parse HTML style attributes.
func NewEngine(inline DeclarationParser) *Engine {
	return &Engine{inline: inline}
}

// AddStyleSheet compiles the selectors of all rules of a stylesheet.
// Rules with selectors cascadia cannot parse are skipped and reported
// in the returned error; all other rules are added.
func (e *Engine) AddStyleSheet(sheet StyleSheet) error {
	if sheet == nil || sheet.Empty() {
		return nil
	}
	e.Lock()
	defer e.Unlock()
	var errs []string
	for _, r := range sheet.Rules() {
		group, err := cascadia.ParseGroup(r.Selector())
		if err != nil {
			errs = append(errs, fmt.Sprintf("selector %q: %v", r.Selector(), err))
			continue
		}
		seq := len(e.rules)
		for _, sel := range group {
			e.rules = append(e.rules, compiledRule{sel: sel, rule: r, seq: seq})
		}
	}
	tracer().Debugf("style engine has %d compiled selectors", len(e.rules))
	if len(errs) > 0 {
		return fmt.Errorf("skipped rules: %s", strings.Join(errs, "; "))
	}
	return nil
}

// weight orders declarations in the cascade.
type weight struct {
	important   bool
	inline      bool
	specificity cascadia.Specificity
	seq         int
}

func (w weight) less(o weight) bool {
	if w.important != o.important {
		return o.important
	}
	if w.inline != o.inline {
		return o.inline
	}
	if w.specificity != o.specificity {
		return w.specificity.Less(o.specificity)
	}
	return w.seq < o.seq
}

type declaration struct {
	value  style.Property
	weight weight
}

// Style computes the style of an element. It stores the cascaded
// properties with the styled node and returns a new computed style
// snapshot. Malformed property values result in an error, together
// with a usable style with defaults for the malformed values.
func (e *Engine) Style(sn *styledtree.StyNode) (*css.ComputedStyle, error) {
	if !sn.IsElement() {
		return nil, fmt.Errorf("styling %s: %w", sn, ErrNoElement)
	}
	e.RLock()
	winners := make(map[string]declaration)
	for _, cr := range e.rules {
		if !cr.sel.Match(sn.HTMLNode()) {
			continue
		}
		for _, key := range cr.rule.Properties() {
			w := weight{
				important:   cr.rule.IsImportant(key),
				specificity: cr.sel.Specificity(),
				seq:         cr.seq,
			}
			declare(winners, key, cr.rule.Value(key), w)
		}
	}
	e.RUnlock()
	var errs []string
	if attr, ok := sn.Attribute("style"); ok && e.inline != nil {
		if r, err := e.inline(attr); err != nil {
			errs = append(errs, err.Error())
		} else {
			for _, key := range r.Properties() {
				w := weight{important: r.IsImportant(key), inline: true}
				declare(winners, key, r.Value(key), w)
			}
		}
	}
	pmap := cascade(sn, winners)
	sn.SetStyles(pmap)
	cs, err := css.Compute(pmap)
	if err != nil {
		errs = append(errs, err.Error())
	}
	tracer().Debugf("styled %s: %s", sn, cs)
	if len(errs) > 0 {
		return cs, fmt.Errorf("styling %s: %s", sn, strings.Join(errs, "; "))
	}
	return cs, nil
}

// declare enters a declaration into the cascade, if it wins over a
// previous declaration for the same key. Shortcut properties are split.
func declare(winners map[string]declaration, key string, value style.Property, w weight) {
	key = strings.ToLower(strings.TrimSpace(key))
	if style.IsCompoundProperty(key) {
		kvs, err := style.SplitCompoundProperty(key, value)
		if err != nil {
			tracer().Infof("ignoring %s: %v", key, err)
			return
		}
		for _, kv := range kvs {
			declare(winners, kv.Key, kv.Value, w)
		}
		return
	}
	if d, ok := winners[key]; ok && w.less(d.weight) {
		return
	}
	winners[key] = declaration{value: value, weight: w}
}

// cascade creates the property map for an element from the winning
// declarations, the properties of its parent and the user-agent defaults.
func cascade(sn *styledtree.StyNode, winners map[string]declaration) *style.PropertyMap {
	var parentStyles *style.PropertyMap
	if p := sn.ParentNode(); p != nil {
		parentStyles = p.Styles()
	}
	pmap := style.NewPropertyMap()
	for key, d := range winners {
		v := d.value
		switch {
		case v.IsInherit():
			if parentStyles == nil {
				v = style.GetUserAgentDefaultProperty(sn.HTMLNode(), key)
			} else {
				v, _ = parentStyles.Property(key)
			}
		case v.IsInitial():
			v = style.GetUserAgentDefaultProperty(sn.HTMLNode(), key)
		}
		if !v.IsEmpty() {
			pmap.Add(key, v)
		}
	}
	if _, ok := pmap.Property("display"); !ok {
		pmap.Add("display", style.DisplayPropertyForHTMLNode(sn.HTMLNode()))
	}
	for _, kv := range parentStyles.Properties() {
		if !style.IsCascading(kv.Key) {
			continue
		}
		if _, ok := pmap.Property(kv.Key); !ok {
			pmap.Add(kv.Key, kv.Value)
		}
	}
	return pmap
}
