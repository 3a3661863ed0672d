package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/reflow/dom/domdbg"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/reflow/layout/layoutdbg"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout <file.html>",
	Short: "Lay out an HTML document",
	Long: `Lay out an HTML document and print statistics of the reflow.
The box tree or the fragment tree may be dumped, and the fragment tree
may be written in msgpack format.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().Bool("parallel", true, "build box trees in parallel")
	layoutCmd.Flags().Float64("width", 0, "viewport width in points")
	layoutCmd.Flags().String("dump", "", "dump a tree (boxes|fragments)")
	layoutCmd.Flags().String("out", "", "write the fragment tree to a msgpack file")
	layoutCmd.Flags().String("dot", "", "write the styled tree to a GraphViz file")
	layoutCmd.Flags().StringArray("rect", nil, "print the bounding client rect of the element with this id")
}

func runLayout(cmd *cobra.Command, args []string) error {
	dump, err := cmd.Flags().GetString("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	if dump != "" && dump != "boxes" && dump != "fragments" {
		return fmt.Errorf("unknown tree %q, expected boxes or fragments", dump)
	}
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	frags, stats, err := e.Reflow(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd, stats)
	switch dump {
	case "boxes":
		fmt.Fprint(cmd.OutOrStdout(), layoutdbg.Boxes(e.Root()))
	case "fragments":
		fmt.Fprint(cmd.OutOrStdout(), layoutdbg.Fragments(frags))
	}
	ids, _ := cmd.Flags().GetStringArray("rect")
	for _, id := range ids {
		el := e.Element(id)
		if el == nil {
			return fmt.Errorf("no element with id %q", id)
		}
		if r, ok := el.GetBoundingClientRect(); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s#%s %s\n", el.NodeName(), id, r)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s#%s has no fragments\n", el.NodeName(), id)
		}
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := writeFragments(out, frags); err != nil {
			return err
		}
	}
	if dot, _ := cmd.Flags().GetString("dot"); dot != "" {
		if err := writeDot(dot, e); err != nil {
			return err
		}
	}
	return nil
}

func printStats(cmd *cobra.Command, stats layout.Stats) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headingColor.Sprint("Reflow"))
	fmt.Fprintf(w, "  restyled     %d (%d new)\n", stats.Restyle.Restyled, stats.Restyle.Created)
	fmt.Fprintf(w, "  root damage  %s\n", stats.RootDamage)
	fmt.Fprintf(w, "  boxes        %s built, %s reused\n",
		damageColor.Sprint(stats.Boxes.BoxesBuilt), reuseColor.Sprint(stats.Boxes.BoxesReused))
	fmt.Fprintf(w, "  laid out     %d boxes, %d cache hits\n",
		stats.Geometry.BoxesLaidOut, stats.Geometry.CacheHits)
	for _, err := range stats.StyleErrors {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
}

func writeFragments(path string, frags *fragment.Fragment) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fragment.Encode(f, frags); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDot(path string, e *layout.Engine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := domdbg.Options{
		Annotate: func(sn *styledtree.StyNode) string {
			data, ok := e.Table().Get(sn.ID())
			if !ok {
				return ""
			}
			label := ""
			if box := data.Box(); box != nil {
				label = box.String()
			}
			if dmg := data.Damage(); !dmg.IsEmpty() {
				label += " " + dmg.String()
			}
			return label
		},
	}
	if err := domdbg.ToGraphViz(e.Document().Root(), f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
