package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'reflow.dom'
func tracer() tracing.Trace {
	return tracing.Select("reflow.dom")
}

// Property is the raw value of a CSS property, as written in a stylesheet
// or a style attribute. For
//
//	margin-top: 2pt
//
// the property value is "2pt". Conversions into typed values are done by
// package css.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial is true for the CSS-wide keyword "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit is true for the CSS-wide keyword "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsEmpty is true for the null style.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a property together with its key.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Property groups -------------------------------------------------------

// Symbolic names of property groups.
const (
	PGMargins   = "Margins"
	PGPadding   = "Padding"
	PGBorder    = "Border"
	PGDimension = "Dimension"
	PGDisplay   = "Display"
	PGRegion    = "Region"
	PGColor     = "Color"
	PGText      = "Text"
	PGFlex      = "Flex"
	PGContent   = "Content"
	PGX         = "X" // properties of no known group
)

// groupMembers lists the properties of each group. Restyle damage is
// classified by group, so a property's group says something about its
// effect on layout.
var groupMembers = map[string][]string{
	PGMargins: {"margin-top", "margin-right", "margin-bottom", "margin-left"},
	PGPadding: {"padding-top", "padding-right", "padding-bottom", "padding-left"},
	PGBorder: {
		"border-top-color", "border-right-color", "border-bottom-color", "border-left-color",
		"border-top-width", "border-right-width", "border-bottom-width", "border-left-width",
		"border-top-style", "border-right-style", "border-bottom-style", "border-left-style",
		"border-top-left-radius", "border-top-right-radius",
		"border-bottom-right-radius", "border-bottom-left-radius",
	},
	PGDimension: {"width", "height", "min-width", "min-height", "max-width", "max-height"},
	PGDisplay: {
		"display", "float", "visibility", "position", "overflow",
		"top", "right", "bottom", "left",
	},
	PGFlex: {
		"order", "flex-grow", "flex-shrink", "flex-basis", "flex-direction", "flex-wrap",
	},
	PGContent: {"content"},
	PGRegion:  {"flow-into", "flow-from"},
	PGColor:   {"color", "background-color"},
	PGText: {
		"direction", "white-space", "word-spacing", "letter-spacing",
		"word-break", "word-wrap", "line-height",
	},
}

var groupOfProperty = func() map[string]string {
	m := make(map[string]string)
	for group, keys := range groupMembers {
		for _, key := range keys {
			m[key] = group
		}
	}
	return m
}()

// GroupNameFromPropertyKey returns the name of the group a property
// belongs to, e.g. "Margins" for "margin-top". Unknown properties belong
// to group "X".
func GroupNameFromPropertyKey(key string) string {
	if g, ok := groupOfProperty[key]; ok {
		return g
	}
	return PGX
}

// PropertyGroup is a set of properties of a common group.
type PropertyGroup struct {
	name  string
	props map[string]Property
}

// NewPropertyGroup creates an empty property group.
func NewPropertyGroup(groupname string) *PropertyGroup {
	return &PropertyGroup{name: groupname}
}

// Name returns the name of the group.
func (pg *PropertyGroup) Name() string {
	return pg.name
}

func (pg *PropertyGroup) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] =\n", pg.name)
	for _, kv := range pg.Properties() {
		fmt.Fprintf(&b, "  %s = %s\n", kv.Key, kv.Value)
	}
	return b.String()
}

// Properties returns the properties of the group, ordered by key.
func (pg *PropertyGroup) Properties() []KeyValue {
	r := make([]KeyValue, 0, len(pg.props))
	for k, v := range pg.props {
		r = append(r, KeyValue{k, v})
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Key < r[j].Key })
	return r
}

// IsSet is true if the group holds a non-empty value for key.
func (pg *PropertyGroup) IsSet(key string) bool {
	v, ok := pg.props[key]
	return ok && !v.IsEmpty()
}

// Get returns the value for key.
func (pg *PropertyGroup) Get(key string) (Property, bool) {
	p, ok := pg.props[key]
	return p, ok
}

// Set sets the value for key, replacing a previous value.
// Values are stored in lower case.
func (pg *PropertyGroup) Set(key string, p Property) {
	if pg.props == nil {
		pg.props = make(map[string]Property)
	}
	pg.props[key] = Property(strings.ToLower(string(p)))
}

// Add sets the value for key, if not already present.
func (pg *PropertyGroup) Add(key string, p Property) {
	if _, ok := pg.props[key]; !ok {
		pg.Set(key, p)
	}
}

// --- Shorthands ------------------------------------------------------------

var (
	sides   = [4]string{"top", "right", "bottom", "left"}
	corners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}
)

// shorthands maps shorthand properties to the longhand names they are
// distributed to.
var shorthands = map[string][4]string{
	"margin":        longhands("margin", "", sides),
	"padding":       longhands("padding", "", sides),
	"border-color":  longhands("border", "color", sides),
	"border-width":  longhands("border", "width", sides),
	"border-style":  longhands("border", "style", sides),
	"border-radius": longhands("border", "radius", corners),
}

func longhands(prefix, suffix string, parts [4]string) (keys [4]string) {
	for i, part := range parts {
		keys[i] = prefix + "-" + part
		if suffix != "" {
			keys[i] += "-" + suffix
		}
	}
	return
}

// IsCompoundProperty is true for the shorthand properties
// SplitCompoundProperty is able to split.
func IsCompoundProperty(key string) bool {
	_, ok := shorthands[key]
	return ok
}

// SplitCompoundProperty distributes the value of a shorthand property to
// its longhands, following the usual 1–4 value rule:
//
//	padding: 1pt 2pt  =>  padding-top 1pt, padding-right 2pt,
//	                      padding-bottom 1pt, padding-left 2pt
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	keys, ok := shorthands[key]
	if !ok {
		return nil, fmt.Errorf("not recognized as compound property: %s", key)
	}
	fields := strings.Fields(value.String())
	if len(fields) == 0 || len(fields) > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s, have %d", key, len(fields))
	}
	// index of the field providing the value for each side or corner
	fieldIndex := [...][4]int{
		{0, 0, 0, 0},
		{0, 1, 0, 1},
		{0, 1, 2, 1},
		{0, 1, 2, 3},
	}[len(fields)-1]
	r := make([]KeyValue, 4)
	for i, k := range keys {
		r[i] = KeyValue{Key: k, Value: Property(fields[fieldIndex[i]])}
	}
	return r, nil
}

// IsCascading is true for properties which are inherited by default.
func IsCascading(key string) bool {
	if strings.HasPrefix(key, "list-style") {
		return true
	}
	switch key {
	case "color", "cursor", "direction", "flow-into", "flow-from",
		"letter-spacing", "line-height", "quotes", "visibility", "white-space",
		"word-spacing", "word-break", "word-wrap":
		return true
	}
	return false
}

// --- Property maps ---------------------------------------------------------

// PropertyMap holds the cascaded properties of an element, split into
// groups. nil is a legal, empty property map. A property map is not
// changed after it has been handed to a computed style.
type PropertyMap struct {
	m map[string]*PropertyGroup
}

// NewPropertyMap returns a new empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

func (pmap *PropertyMap) String() string {
	var b strings.Builder
	b.WriteString("Property Map = {\n")
	for _, name := range pmap.groupNames() {
		b.WriteString(pmap.m[name].String())
	}
	b.WriteString("}")
	return b.String()
}

func (pmap *PropertyMap) groupNames() []string {
	if pmap == nil {
		return nil
	}
	names := make([]string, 0, len(pmap.m))
	for name := range pmap.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the number of property groups.
func (pmap *PropertyMap) Size() int {
	if pmap == nil {
		return 0
	}
	return len(pmap.m)
}

// Group returns the property group for a group name or nil.
func (pmap *PropertyMap) Group(groupname string) *PropertyGroup {
	if pmap == nil {
		return nil
	}
	return pmap.m[groupname]
}

// Property returns the value of a property, if present. Values are not
// inherited from anywhere.
func (pmap *PropertyMap) Property(key string) (Property, bool) {
	group := pmap.Group(GroupNameFromPropertyKey(key))
	if group == nil {
		return NullStyle, false
	}
	return group.Get(key)
}

// Add sets a property, replacing a previous value.
func (pmap *PropertyMap) Add(key string, value Property) {
	if pmap == nil {
		return
	}
	if pmap.m == nil {
		pmap.m = make(map[string]*PropertyGroup)
	}
	groupname := GroupNameFromPropertyKey(key)
	group, ok := pmap.m[groupname]
	if !ok {
		group = NewPropertyGroup(groupname)
		pmap.m[groupname] = group
	}
	group.Set(key, value)
}

// Properties returns all properties of a property map, ordered by group
// and key.
func (pmap *PropertyMap) Properties() []KeyValue {
	var r []KeyValue
	for _, name := range pmap.groupNames() {
		r = append(r, pmap.m[name].Properties()...)
	}
	return r
}

// ChangedKeys returns the keys of all properties with different values
// in pmap and other, including properties present in only one of them.
func (pmap *PropertyMap) ChangedKeys(other *PropertyMap) []string {
	var keys []string
	for _, kv := range pmap.Properties() {
		if v, _ := other.Property(kv.Key); v != kv.Value {
			keys = append(keys, kv.Key)
		}
	}
	for _, kv := range other.Properties() {
		if _, ok := pmap.Property(kv.Key); !ok {
			keys = append(keys, kv.Key)
		}
	}
	return keys
}
