package domdbg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/style/cssom"
	"github.com/npillmayer/reflow/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.dom")
	defer teardown()
	//
	doc, err := dom.ParseString(`<html><body><p style="display:flex">Hello  world</p></body></html>`)
	require.NoError(t, err)
	engine := cssom.NewEngine(douceuradapter.ParseDeclarations)
	for i := 0; i < doc.Tree.Len(); i++ {
		if sn := doc.Tree.Node(styledtree.NodeID(i)); sn.IsElement() {
			_, err := engine.Style(sn)
			require.NoError(t, err)
		}
	}
	var buf bytes.Buffer
	err = ToGraphViz(doc.Root(), &buf, Options{
		Annotate: func(sn *styledtree.StyNode) string {
			if sn.Tag() == "p" {
				return "damaged"
			}
			return ""
		},
	})
	require.NoError(t, err)
	out := buf.String()
	for _, s := range []string{"digraph g {", `"p\ndamaged"`, "Hello␣␣wor...", "node00000 -> node00001", "flex"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected output to contain %q", s)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("expected closed digraph")
	}
}
