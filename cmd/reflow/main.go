/*
Command reflow lays out HTML documents and shows how layout reacts to
changes of a document.

	reflow layout page.html --dump boxes
	reflow damage page.html --set main:style=display:flex

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "reflow",
	Short:         "Incremental layout of HTML documents",
	Long:          `Reflow builds box trees and fragment trees for HTML documents and re-uses them across changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	headingColor = color.New(color.FgYellow, color.Bold)
	damageColor  = color.New(color.FgRed)
	reuseColor   = color.New(color.FgGreen)
)

func init() {
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(damageCmd)

	rootCmd.PersistentFlags().String("config", "", "configuration file (TOML)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		os.Exit(1)
	}
}
