package css_test

import (
	"testing"

	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
)

func TestComputeFlexItem(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.css")
	defer teardown()
	//
	pmap := style.NewPropertyMap()
	pmap.Add("display", "inline-flex")
	pmap.Add("position", "absolute")
	pmap.Add("order", "-2")
	pmap.Add("width", "20pt")
	cs, err := css.Compute(pmap)
	assert.NoError(t, err)
	assert.True(t, cs.Display.EstablishesModernContext())
	assert.True(t, cs.Display.IsInlineLevel())
	assert.True(t, cs.IsAbsolutelyPositioned())
	assert.Equal(t, int32(-2), cs.Order)
	assert.Equal(t, 20*dimen.PT, cs.Width.Unwrap())
	assert.False(t, cs.InlineSizeDependsOnContent())
}

func TestComputeMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.css")
	defer teardown()
	//
	pmap := style.NewPropertyMap()
	pmap.Add("display", "wobbly")
	pmap.Add("order", "first")
	cs, err := css.Compute(pmap)
	if err == nil {
		t.Errorf("expected error for malformed display and order, have none")
	}
	if cs == nil || cs.Order != 0 || !cs.Display.IsBlockLevel() {
		t.Errorf("expected fallback style to be block-level with order 0, is %v", cs)
	}
	if !cs.InlineSizeDependsOnContent() {
		t.Errorf("expected auto width to depend on content")
	}
}

func TestParseDisplayModern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.css")
	defer teardown()
	//
	for _, d := range []string{"flex", "grid", "inline-flex", "inline-grid"} {
		mode, err := css.ParseDisplay(d)
		if err != nil || !mode.EstablishesModernContext() {
			t.Errorf("expected %q to establish a modern formatting context, is %s", d, mode.FullString())
		}
	}
	mode, _ := css.ParseDisplay("contents")
	if !mode.IsContents() {
		t.Errorf("expected display:contents to be recognized, is %s", mode)
	}
	mode, _ = css.ParseDisplay("none")
	if !mode.IsNone() {
		t.Errorf("expected display:none to be recognized, is %s", mode)
	}
}
