package style

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	for key, group := range map[string]string{
		"margin-top":             PGMargins,
		"border-left-width":      PGBorder,
		"border-top-left-radius": PGBorder,
		"order":                  PGFlex,
		"visibility":             PGDisplay,
		"funny-margin":           PGX,
	} {
		if g := GroupNameFromPropertyKey(key); g != group {
			t.Errorf("expected %s to be in group %s, is in %s", key, group, g)
		}
	}
}

func TestSplitCompound(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	kvs, err := SplitCompoundProperty("padding", "1pt 2pt")
	require.NoError(t, err)
	assert.Equal(t, []KeyValue{
		{"padding-top", "1pt"}, {"padding-right", "2pt"},
		{"padding-bottom", "1pt"}, {"padding-left", "2pt"},
	}, kvs)
	kvs, err = SplitCompoundProperty("border-width", "1pt 2pt 3pt")
	require.NoError(t, err)
	if kvs[3].Key != "border-left-width" || kvs[3].Value != "2pt" {
		t.Errorf("expected border-left-width = 2pt, is %s = %s", kvs[3].Key, kvs[3].Value)
	}
	kvs, err = SplitCompoundProperty("border-radius", "1pt")
	require.NoError(t, err)
	assert.Equal(t, "border-top-left-radius", kvs[0].Key)
	_, err = SplitCompoundProperty("margin", "1 2 3 4 5")
	assert.Error(t, err)
	_, err = SplitCompoundProperty("font", "serif")
	assert.Error(t, err)
	assert.True(t, IsCompoundProperty("margin"))
	assert.False(t, IsCompoundProperty("margin-top"))
}

func TestPropertyMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	var empty *PropertyMap
	if _, ok := empty.Property("color"); ok {
		t.Errorf("expected nil property map to be empty")
	}
	pm := NewPropertyMap()
	pm.Add("margin-top", "2PT")
	pm.Add("color", "red")
	p, ok := pm.Property("margin-top")
	require.True(t, ok)
	assert.Equal(t, Property("2pt"), p)
	assert.Equal(t, 2, pm.Size())
	assert.Equal(t, []KeyValue{{"color", "red"}, {"margin-top", "2pt"}}, pm.Properties())
	//
	other := NewPropertyMap()
	other.Add("margin-top", "2pt")
	other.Add("width", "10pt")
	assert.ElementsMatch(t, []string{"color", "width"}, pm.ChangedKeys(other))
	assert.Empty(t, pm.ChangedKeys(pm))
}

func TestUserAgentDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	em := &html.Node{Type: html.ElementNode, Data: "em", DataAtom: atom.Em}
	custom := &html.Node{Type: html.ElementNode, Data: "my-widget"}
	head := &html.Node{Type: html.ElementNode, Data: "head"}
	assert.Equal(t, Property("inline"), GetUserAgentDefaultProperty(em, "display"))
	assert.Equal(t, Property("block"), DisplayPropertyForHTMLNode(custom))
	assert.Equal(t, Property("none"), DisplayPropertyForHTMLNode(head))
	assert.Equal(t, Property("0"), GetUserAgentDefaultProperty(em, "padding-left"))
	assert.Equal(t, Property("medium"), GetUserAgentDefaultProperty(em, "border-top-width"))
	assert.True(t, GetUserAgentDefaultProperty(em, "color").IsEmpty())
}

func TestColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	assert.Nil(t, Property("default").Color())
	assert.Nil(t, NullStyle.Color())
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, Property("red").Color())
	assert.Equal(t, color.Black, Property("chartreuse").Color())
}
