package main

import (
	"fmt"

	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/spf13/cobra"
)

var damageCmd = &cobra.Command{
	Use:   "damage <file.html>",
	Short: "Show the damage caused by changes to a document",
	Long: `Lay out an HTML document, apply changes to it and print the damage
recorded for its elements. Changes are given as id:attr=value; the
attribute 'text' replaces the text of an element.`,
	Args: cobra.ExactArgs(1),
	RunE: runDamage,
}

func init() {
	damageCmd.Flags().Bool("parallel", true, "build box trees in parallel")
	damageCmd.Flags().Float64("width", 0, "viewport width in points")
	damageCmd.Flags().StringArray("set", nil, "change to apply (id:attr=value or id:remove), may be repeated")
}

func runDamage(cmd *cobra.Command, args []string) error {
	sets, err := cmd.Flags().GetStringArray("set")
	if err != nil {
		return fmt.Errorf("failed to get set flag: %w", err)
	}
	var muts []mutation
	for _, s := range sets {
		m, err := parseMutation(s)
		if err != nil {
			return err
		}
		muts = append(muts, m)
	}
	e, err := setup(cmd, args)
	if err != nil {
		return err
	}
	if _, _, err := e.Reflow(cmd.Context()); err != nil {
		return err
	}
	for _, m := range muts {
		if err := m.apply(e); err != nil {
			return err
		}
	}
	inv := e.Invalidate()
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, headingColor.Sprint("Damage"))
	printDamage(cmd, e.Document().Root(), e.Table())
	fmt.Fprintf(w, "  (%d restyled, %d visited, %d caches cleared)\n",
		inv.Restyle.Restyled, inv.Damage.Visited, inv.Damage.CachesCleared)
	_, stats, err := e.Reflow(cmd.Context())
	if err != nil {
		return err
	}
	printStats(cmd, stats)
	return nil
}

// printDamage lists the elements with damage, in document order.
func printDamage(cmd *cobra.Command, root *styledtree.StyNode, table *boxtree.Table) {
	w := cmd.OutOrStdout()
	type entry struct {
		sn    *styledtree.StyNode
		depth int
	}
	stack := []entry{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if data, ok := table.Get(top.sn.ID()); ok && !data.Damage().IsEmpty() {
			fmt.Fprintf(w, "  %*s%s %s\n", 2*top.depth, "", elementLabel(top.sn),
				damageColor.Sprint(data.Damage()))
		}
		children := top.sn.ElementChildren()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{children[i], top.depth + 1})
		}
	}
}
