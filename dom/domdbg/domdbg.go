/*
Package domdbg implements helpers to debug a styled DOM tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/reflow/dom/style"
	"github.com/npillmayer/reflow/dom/styledtree"
)

// Options control the output of ToGraphViz.
type Options struct {
	// StyleGroups lists the property groups to include for each element.
	// If nil, the display group is included.
	StyleGroups []string
	// Annotate returns an additional line for the label of a node,
	// e.g., the damage recorded for it. May be nil.
	Annotate func(*styledtree.StyNode) string
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	StyleGroups    []string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
	PgpgTmpl       *template.Template
}

var defaultGroups = []string{
	style.PGDisplay,
}

// ToGraphViz outputs a diagram for a styled tree in GraphViz (DOT) format.
// The diagram will include all styles belonging to one of the property
// groups of opts.
func ToGraphViz(root *styledtree.StyNode, w io.Writer, opts Options) error {
	gparams := graphParamsType{Fontname: "Helvetica", StyleGroups: opts.StyleGroups}
	if gparams.StyleGroups == nil {
		gparams.StyleGroups = defaultGroups
	}
	gparams.NodeTmpl = template.Must(template.New("domnode").Funcs(
		template.FuncMap{
			"shortstring": shortText,
		}).Parse(domNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	gparams.PgpgTmpl = template.Must(template.New("pgpgedge").Parse(pgpgEdgeTmpl))
	head := template.Must(template.New("dom").Parse(graphHeadTmpl))
	if err := head.Execute(w, gparams); err != nil {
		return err
	}
	stack := []*styledtree.StyNode{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := domNode(n, w, &gparams, opts.Annotate); err != nil {
			return err
		}
		children := n.ChildNodes()
		for i := len(children) - 1; i >= 0; i-- {
			e := edge{N1: nodeName(n), N2: nodeName(children[i])}
			if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
				return err
			}
			stack = append(stack, children[i])
		}
	}
	_, err := w.Write([]byte("}\n"))
	return err
}

type node struct {
	N     *styledtree.StyNode
	Name  string
	Label string
}

func nodeName(n *styledtree.StyNode) string {
	return fmt.Sprintf("node%05d", n.ID())
}

func domNode(n *styledtree.StyNode, w io.Writer, gparams *graphParamsType,
	annotate func(*styledtree.StyNode) string) error {
	//
	label := n.Tag()
	if annotate != nil {
		if a := annotate(n); a != "" {
			label += "\n" + a
		}
	}
	if err := gparams.NodeTmpl.Execute(w, &node{N: n, Name: nodeName(n), Label: label}); err != nil {
		return err
	}
	return domStyles(n, w, gparams)
}

func domStyles(n *styledtree.StyNode, w io.Writer, gparams *graphParamsType) error {
	pmap := n.Styles()
	if pmap == nil {
		return nil
	}
	var prev *style.PropertyGroup
	for _, s := range gparams.StyleGroups {
		pg := pmap.Group(s)
		if pg == nil {
			continue
		}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		var err error
		if prev == nil {
			err = gparams.PgedgeTmpl.Execute(w, pgedge{nodeName(n), pg})
		} else {
			err = gparams.PgpgTmpl.Execute(w, []*style.PropertyGroup{prev, pg})
		}
		if err != nil {
			return err
		}
		prev = pg
	}
	return nil
}

type edge struct {
	N1, N2 string
}

type pgedge struct {
	Name      string
	PropGroup *style.PropertyGroup
}

func shortText(n *styledtree.StyNode) string {
	s := n.Text()
	if len(s) > 10 {
		s = s[:10] + "..."
	}
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, " ", "␣")
	return fmt.Sprintf("%q", s)
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if .N.IsText }}
{{ .Name }}	[ label={{ shortstring .N }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const styleGroupTmpl = `{{ printf "pg%p" . }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Name }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Key }}:</td><td>{{ .Value }}</td></tr>
      {{ else }}
      <tr><td colspan="2">no styles</td></tr>
      {{ end }}
    </table>> ] ;
`

const domEdgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

const pgEdgeTmpl = `{{ .Name }} -> {{ printf "pg%p" .PropGroup }} [dir=none weight=1 style="dashed"] ;
`

const pgpgEdgeTmpl = `{{ index . 0 | printf "pg%p"  }} -> {{ index . 1 | printf "pg%p" }} [dir=none weight=1 style="dashed"] ;
`
