/*
Package config holds the configuration of the layout engine and of
tracing. Configuration is read from TOML files, for example

	[layout]
	parallel = true
	parallel_threshold = 4
	max_workers = 8
	viewport_width = 600.0   # points
	char_advance = 6.0
	line_height = 12.0

	[tracing]
	level = "info"
	keys = ["reflow.boxtree", "reflow.incremental"]

Settings missing from a file keep their default values.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyse/core/dimen"
)

// ErrInvalid is returned for configurations with values out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of the layout engine.
type Config struct {
	Layout  Layout  `toml:"layout"`
	Tracing Tracing `toml:"tracing"`
}

// Layout configures box tree construction and the geometry of layout.
// Lengths are given in points.
type Layout struct {
	Parallel          bool    `toml:"parallel"`           // build items of flex and grid containers in parallel
	ParallelThreshold int     `toml:"parallel_threshold"` // minimum number of items for parallel construction
	MaxWorkers        int     `toml:"max_workers"`        // 0 for GOMAXPROCS
	ViewportWidth     float64 `toml:"viewport_width"`
	CharAdvance       float64 `toml:"char_advance"`
	LineHeight        float64 `toml:"line_height"`
}

// Tracing configures trace output.
type Tracing struct {
	Level string   `toml:"level"` // error, info or debug
	Keys  []string `toml:"keys"`  // trace keys to set the level for
}

// AllTraceKeys are the trace keys of all packages of this module.
var AllTraceKeys = []string{
	"reflow.tree", "reflow.dom", "reflow.cssom", "reflow.damage", "reflow.inline",
	"reflow.boxtree", "reflow.incremental", "reflow.restyle", "reflow.fragment",
	"reflow.geometry", "reflow.layout",
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Parallel:          true,
			ParallelThreshold: 2,
			ViewportWidth:     600,
			CharAdvance:       6,
			LineHeight:        12,
		},
		Tracing: Tracing{
			Level: "error",
			Keys:  AllTraceKeys,
		},
	}
}

// Load reads a configuration file. Settings not present in the file are
// taken from the default configuration.
func Load(path string) (Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("%s: cannot parse configuration: %w", path, err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, c.Validate()
}

// Decode reads a configuration from a TOML text.
func Decode(text string) (Config, error) {
	c := Default()
	meta, err := toml.Decode(text, &c)
	if err != nil {
		return Config{}, fmt.Errorf("cannot parse configuration: %w", err)
	}
	if err := checkUndecoded(meta); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func checkUndecoded(meta toml.MetaData) error {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks the ranges of configuration values.
func (c Config) Validate() error {
	l := c.Layout
	switch {
	case l.ParallelThreshold < 1:
		return fmt.Errorf("%w: parallel_threshold must be positive, is %d", ErrInvalid, l.ParallelThreshold)
	case l.MaxWorkers < 0:
		return fmt.Errorf("%w: max_workers must not be negative, is %d", ErrInvalid, l.MaxWorkers)
	case l.ViewportWidth <= 0 || l.CharAdvance <= 0 || l.LineHeight <= 0:
		return fmt.Errorf("%w: lengths must be positive", ErrInvalid)
	}
	if _, err := TraceLevel(c.Tracing.Level); err != nil {
		return err
	}
	return nil
}

// Points converts a length in points to design units.
func Points(pt float64) dimen.DU {
	return dimen.DU(pt * float64(dimen.PT))
}

// TraceLevel parses the name of a trace level.
func TraceLevel(name string) (tracing.TraceLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error":
		return tracing.LevelError, nil
	case "info":
		return tracing.LevelInfo, nil
	case "debug":
		return tracing.LevelDebug, nil
	}
	return tracing.LevelError, fmt.Errorf("%w: unknown trace level %q", ErrInvalid, name)
}

// Apply sets the trace level of all configured trace keys.
func (t Tracing) Apply() error {
	level, err := TraceLevel(t.Level)
	if err != nil {
		return err
	}
	for _, key := range t.Keys {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}
