package restyle

import (
	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/layout/damage"
)

// Diff returns the damage caused by a change of an element's style from
// old to new. A missing old style requires reconstruction.
func Diff(old, new *css.ComputedStyle) damage.Damage {
	if old == nil {
		return damage.Reconstruct
	}
	if old == new || (old.IsDisplayNone() && new.IsDisplayNone()) {
		return damage.None // nothing is rendered for hidden elements
	}
	var dmg damage.Damage
	for _, key := range changedProperties(old, new) {
		dmg |= damageForProperty(key)
	}
	if dmg.IsEmpty() && (old.Display != new.Display || old.IsAbsolutelyPositioned() != new.IsAbsolutelyPositioned()) {
		dmg = damage.RebuildBoxTree // defaults changed without a property
	}
	return dmg
}

// InheritedChange is true if a change from old to new affects properties
// which children inherit.
func InheritedChange(old, new *css.ComputedStyle) bool {
	if old == nil || old == new {
		return false
	}
	for _, key := range changedProperties(old, new) {
		if style.IsCascading(key) {
			return true
		}
	}
	return false
}

func changedProperties(old, new *css.ComputedStyle) []string {
	return old.Properties().ChangedKeys(new.Properties())
}

// damageForProperty classifies a changed property.
func damageForProperty(key string) damage.Damage {
	switch key {
	case "display", "position", "float", "content", "order":
		return damage.RebuildBoxTree
	case "top", "right", "bottom", "left", "overflow":
		return damage.Relayout
	case "visibility":
		return damage.Repaint
	}
	switch style.GroupNameFromPropertyKey(key) {
	case style.PGMargins, style.PGPadding, style.PGDimension, style.PGFlex, style.PGText:
		return damage.Relayout | damage.RecomputeInlineContentSizes
	case style.PGBorder:
		if isBorderGeometry(key) {
			return damage.Relayout | damage.RecomputeInlineContentSizes
		}
	}
	return damage.Repaint
}

func isBorderGeometry(key string) bool {
	n := len(key)
	return n > 6 && (key[n-6:] == "-width" || key[n-6:] == "-style")
}
