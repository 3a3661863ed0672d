package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<div id="main"><p id="p1">Hello World</p><p id="p2">Second</p></div>
</body></html>`

func writePage(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseMutation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	m, err := parseMutation("main:style=display:flex")
	require.NoError(t, err)
	assert.Equal(t, mutation{id: "main", key: "style", value: "display:flex"}, m)
	m, err = parseMutation("p2:remove")
	require.NoError(t, err)
	assert.Equal(t, mutation{id: "p2", key: "remove"}, m)
	for _, bad := range []string{"main", ":style=x", "main:=x", "main:style"} {
		if _, err := parseMutation(bad); err == nil {
			t.Errorf("expected mutation %q to be rejected, is accepted", bad)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	path := writePage(t)
	msg := filepath.Join(t.TempDir(), "frags.msgpack")
	out, err := execute(t, "--color", "off", "layout", path, "--dump", "boxes", "--out", msg, "--rect", "p2")
	require.NoError(t, err)
	assert.Contains(t, out, "Reflow")
	assert.Contains(t, out, "built")
	assert.Contains(t, out, "p#p2 ")
	info, err := os.Stat(msg)
	require.NoError(t, err)
	if info.Size() == 0 {
		t.Errorf("expected fragment file to have content, is empty")
	}
}

func TestDamageCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	path := writePage(t)
	out, err := execute(t, "--color", "off", "damage", path,
		"--set", "p2:style=display:none", "--set", "p1:remove")
	require.NoError(t, err)
	if !strings.Contains(out, "Damage") || !strings.Contains(out, "div#main") {
		t.Errorf("expected damage of div#main to be listed, is\n%s", out)
	}
}
