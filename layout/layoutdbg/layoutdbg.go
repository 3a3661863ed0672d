/*
Package layoutdbg implements helpers to debug box trees and fragment trees.

Trees are printed with treeprint, one line per box or fragment.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package layoutdbg

import (
	"fmt"

	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/fragment"
	tp "github.com/xlab/treeprint"
)

// Boxes returns a printable form of the box tree below root.
func Boxes(root *boxtree.Box) string {
	p := tp.New()
	if root != nil {
		addBox(p.AddBranch(root.String()), root)
	}
	return p.String()
}

func addBox(p tp.Tree, b *boxtree.Box) {
	fc := b.Context
	if fc == nil {
		return
	}
	for _, ch := range fc.Children {
		addBox(p.AddBranch(ch.String()), ch)
	}
	for _, item := range fc.Items {
		addBox(p.AddBranch(fmt.Sprintf("%s order=%d %s", item.Kind, item.Order, item.Box)), item.Box)
	}
	if fc.Inline == nil {
		return
	}
	for _, item := range fc.Inline.Items {
		switch item.Kind {
		case boxtree.TextRun:
			p.AddNode(fmt.Sprintf("text #%d %q", item.Node, shorten(item.Text, 24)))
		case boxtree.StartInlineBox:
			p.AddNode(fmt.Sprintf("start #%d %s", item.Node, item.BoxID))
		case boxtree.EndInlineBox:
			p.AddNode(fmt.Sprintf("end   #%d %s", item.Node, item.BoxID))
		case boxtree.Atomic:
			addBox(p.AddBranch("atomic "+item.Atomic.String()), item.Atomic)
		}
	}
}

// Fragments returns a printable form of the fragment tree below root.
func Fragments(root *fragment.Fragment) string {
	p := tp.New()
	if root != nil {
		addFragment(p.AddBranch(root.String()), root)
	}
	return p.String()
}

func addFragment(p tp.Tree, f *fragment.Fragment) {
	for _, ch := range f.Children {
		if len(ch.Children) == 0 {
			p.AddNode(ch.String())
			continue
		}
		addFragment(p.AddBranch(ch.String()), ch)
	}
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
