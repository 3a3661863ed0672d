package damage

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMonotonicity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.damage")
	defer teardown()
	//
	for _, bit := range []Damage{Repaint, Relayout, RecomputeInlineContentSizes,
		RecollectBoxTreeChildren, rebuildBox, RebuildBoxTree} {
		if !Reconstruct.Contains(bit) {
			t.Errorf("expected reconstruct to contain %s", bit)
		}
	}
	for _, bit := range []Damage{Relayout, RecollectBoxTreeChildren, RecomputeInlineContentSizes} {
		if !RebuildBoxTree.Contains(bit) {
			t.Errorf("expected rebuild-box-tree to contain %s", bit)
		}
	}
	if RebuildBoxTree.Contains(Repaint) {
		t.Errorf("expected rebuild-box-tree not to contain repaint")
	}
}

func TestBoxDamage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.damage")
	defer teardown()
	//
	if Relayout.HasBoxDamage() || Repaint.HasBoxDamage() || RecomputeInlineContentSizes.HasBoxDamage() {
		t.Errorf("expected relayout, repaint and inline size damage not to be box damage")
	}
	if !RecollectBoxTreeChildren.HasBoxDamage() || !RebuildBoxTree.HasBoxDamage() {
		t.Errorf("expected recollect and rebuild to be box damage")
	}
}

func TestTruncate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.damage")
	defer teardown()
	//
	if d := Reconstruct.Truncate(); d != Repaint|Relayout {
		t.Errorf("expected truncated reconstruct to be repaint|relayout, is %s", d)
	}
	if d := RecomputeInlineContentSizes.Truncate(); !d.IsEmpty() {
		t.Errorf("expected truncated inline size damage to be empty, is %s", d)
	}
}

func TestString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.damage")
	defer teardown()
	//
	if s := (Repaint | RecollectBoxTreeChildren).String(); s != "repaint|recollect" {
		t.Errorf("expected 'repaint|recollect', is %q", s)
	}
	if s := Reconstruct.String(); s != "reconstruct" {
		t.Errorf("expected 'reconstruct', is %q", s)
	}
}
