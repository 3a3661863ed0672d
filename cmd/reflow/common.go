package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/reflow/config"
	"github.com/npillmayer/reflow/dom"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

// setup reads the configuration and the document named in args and
// creates a layout engine for it.
func setup(cmd *cobra.Command, args []string) (*layout.Engine, error) {
	conf := config.Default()
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		if conf, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := conf.Tracing.Apply(); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("parallel") {
		if conf.Layout.Parallel, err = cmd.Flags().GetBool("parallel"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("width") {
		if conf.Layout.ViewportWidth, err = cmd.Flags().GetFloat64("width"); err != nil {
			return nil, err
		}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return layout.NewEngine(doc, conf.Layout), nil
}

// mutation is a change of a document given on the command line as
// `id:attr=value`. The pseudo attribute `text` replaces the text of the
// element, `id:remove` removes the element.
type mutation struct {
	id, key, value string
}

func parseMutation(s string) (mutation, error) {
	id, rest, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return mutation{}, fmt.Errorf("mutation %q: expected id:attr=value", s)
	}
	key, value, ok := strings.Cut(rest, "=")
	if rest == "remove" {
		return mutation{id: id, key: rest}, nil
	}
	if !ok || key == "" {
		return mutation{}, fmt.Errorf("mutation %q: expected id:attr=value", s)
	}
	return mutation{id: id, key: key, value: value}, nil
}

func (m mutation) apply(e *layout.Engine) error {
	doc := e.Document()
	sn := dom.FindByID(doc, m.id)
	if sn == nil {
		return fmt.Errorf("no element with id %q", m.id)
	}
	switch m.key {
	case "remove":
		return e.Remove(sn)
	case "text":
	default:
		return dom.SetAttribute(sn, m.key, m.value)
	}
	for _, ch := range sn.ChildNodes() {
		if ch.IsText() {
			return dom.SetText(ch, m.value)
		}
	}
	_, err := dom.AppendChild(doc, sn, &html.Node{Type: html.TextNode, Data: m.value})
	return err
}

func elementLabel(sn *styledtree.StyNode) string {
	if id, ok := sn.Attribute("id"); ok {
		return fmt.Sprintf("%s#%s", sn.Tag(), id)
	}
	return sn.Tag()
}
