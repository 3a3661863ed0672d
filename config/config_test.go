package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	c := Default()
	require.NoError(t, c.Validate())
	assert.True(t, c.Layout.Parallel)
	assert.Equal(t, 2, c.Layout.ParallelThreshold)
	assert.Equal(t, 12*dimen.PT, Points(c.Layout.LineHeight))
}

func TestLoadOverlaysDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "reflow.toml")
	text := "[layout]\nparallel = false\nmax_workers = 4\n\n[tracing]\nlevel = \"debug\"\nkeys = [\"reflow.boxtree\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	if c.Layout.Parallel {
		t.Errorf("expected parallel construction to be switched off")
	}
	assert.Equal(t, 4, c.Layout.MaxWorkers)
	assert.Equal(t, 600.0, c.Layout.ViewportWidth, "default")
	assert.Equal(t, []string{"reflow.boxtree"}, c.Tracing.Keys)
	require.NoError(t, c.Tracing.Apply())
}

func TestInvalidConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "reflow.layout")
	defer teardown()
	//
	for _, text := range []string{
		"[layout]\nparallel_threshold = 0\n",
		"[layout]\nline_height = -1.0\n",
		"[tracing]\nlevel = \"verbose\"\n",
	} {
		if _, err := Decode(text); !errors.Is(err, ErrInvalid) {
			t.Errorf("expected %q to be invalid, is %v", text, err)
		}
	}
	if _, err := Decode("[layout]\nparalel = true\n"); err == nil {
		t.Errorf("expected unknown key to be reported")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("expected missing file to be reported")
	}
}
