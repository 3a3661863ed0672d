package reflow

import (
	"unicode/utf8"

	"github.com/npillmayer/reflow/dom/style/css"
	"github.com/npillmayer/reflow/dom/styledtree"
	"github.com/npillmayer/reflow/layout/boxtree"
	"github.com/npillmayer/reflow/layout/fragment"
	"github.com/npillmayer/tyse/core/dimen"
)

type word struct {
	text   string
	spaced bool // whitespace precedes the word
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// splitWords splits text at document whitespace. pending tells if
// whitespace precedes the text, the result tells if whitespace follows the
// last word.
func splitWords(text string, pending bool) ([]word, bool) {
	var words []word
	start, spaced := -1, false
	for i, r := range text {
		if isSpace(r) {
			if start >= 0 {
				words = append(words, word{text: text[start:i], spaced: spaced})
				start = -1
			}
			pending = true
		} else if start < 0 {
			start, spaced, pending = i, pending, false
		}
	}
	if start >= 0 {
		words = append(words, word{text: text[start:], spaced: spaced})
	}
	return words, pending
}

func (l *Layouter) advance(s string) dimen.DU {
	return dimen.DU(utf8.RuneCountInString(s)) * l.metrics.CharAdvance
}

// segment is the text of a text run on a single line.
type segment struct {
	node  styledtree.NodeID
	style *css.ComputedStyle
	x     dimen.DU
	text  string
}

// lineBreaker breaks inline content into lines greedily.
type lineBreaker struct {
	l       *Layouter
	width   dimen.DU
	lines   []*fragment.Fragment
	line    []*fragment.Fragment
	seg     segment
	x, y    dimen.DU
	height  dimen.DU // of the current line
	pending bool     // whitespace before the next word
}

// inline lays out an inline formatting context in a block of width w,
// returning line fragments.
func (l *Layouter) inline(ifc *boxtree.InlineFormattingContext, w dimen.DU) ([]*fragment.Fragment, dimen.DU) {
	if ifc == nil {
		return nil, 0
	}
	lb := &lineBreaker{l: l, width: w}
	for _, item := range ifc.Items {
		switch item.Kind {
		case boxtree.TextRun:
			var words []word
			words, lb.pending = splitWords(item.Text, lb.pending)
			for _, wd := range words {
				lb.word(item.Node, item.Style, wd)
			}
		case boxtree.Atomic:
			lb.atomic(item.Atomic)
		}
	}
	lb.endLine()
	return lb.lines, lb.y
}

// gap returns the space before the next item and breaks the line if an
// item of width w would not fit.
func (lb *lineBreaker) gap(spaced bool, w dimen.DU) dimen.DU {
	var gap dimen.DU
	if spaced && lb.x > 0 {
		gap = lb.l.metrics.CharAdvance
	}
	if lb.x > 0 && lb.x+gap+w > lb.width {
		lb.endLine()
		gap = 0
	}
	return gap
}

func (lb *lineBreaker) word(node styledtree.NodeID, style *css.ComputedStyle, wd word) {
	adv := lb.l.advance(wd.text)
	gap := lb.gap(wd.spaced, adv)
	if lb.seg.text == "" || lb.seg.node != node {
		lb.flush()
		lb.x += gap
		lb.seg = segment{node: node, style: style, x: lb.x}
	} else if gap > 0 {
		lb.seg.text += " "
		lb.x += gap
	}
	lb.seg.text += wd.text
	lb.x += adv
	lb.height = max(lb.height, lb.l.metrics.LineHeight)
}

func (lb *lineBreaker) atomic(box *boxtree.Box) {
	f := lb.l.layoutBox(box, lb.width)
	if box.Kind == boxtree.AbsolutelyPositioned {
		// static position, without taking space on the line
		lb.flush()
		lb.line = append(lb.line, box.PlaceFragment(f, fragment.Point{X: lb.x}))
		return
	}
	gap := lb.gap(lb.pending, f.Rect.W)
	lb.pending = false
	lb.flush()
	lb.x += gap
	lb.line = append(lb.line, box.PlaceFragment(f, fragment.Point{X: lb.x}))
	lb.x += f.Rect.W
	lb.height = max(lb.height, f.Rect.H)
}

// flush ends the current text segment.
func (lb *lineBreaker) flush() {
	if lb.seg.text == "" {
		return
	}
	r := fragment.Rect{
		TopL: fragment.Point{X: lb.seg.x},
		W:    lb.x - lb.seg.x,
		H:    lb.l.metrics.LineHeight,
	}
	lb.line = append(lb.line, fragment.NewText(lb.seg.node, lb.seg.style, r, lb.seg.text))
	lb.seg = segment{}
}

func (lb *lineBreaker) endLine() {
	lb.flush()
	if len(lb.line) > 0 {
		r := fragment.Rect{TopL: fragment.Point{Y: lb.y}, W: lb.width, H: lb.height}
		lb.lines = append(lb.lines, fragment.NewBox(fragment.LineFragment, styledtree.NoNode, nil, r, lb.line))
		lb.y += lb.height
	}
	lb.line, lb.x, lb.height = nil, 0, 0
}

// inlineContentSizes measures inline content: the min-content size is the
// widest word or atomic box, the max-content size is the width of the
// content on a single line.
func (l *Layouter) inlineContentSizes(ifc *boxtree.InlineFormattingContext) boxtree.ContentSizes {
	var sizes boxtree.ContentSizes
	if ifc == nil {
		return sizes
	}
	var x dimen.DU
	pending := false
	place := func(w dimen.DU, spaced bool) {
		if spaced && x > 0 {
			x += l.metrics.CharAdvance
		}
		x += w
	}
	for _, item := range ifc.Items {
		switch item.Kind {
		case boxtree.TextRun:
			var words []word
			words, pending = splitWords(item.Text, pending)
			for _, wd := range words {
				adv := l.advance(wd.text)
				place(adv, wd.spaced)
				sizes.Min = max(sizes.Min, adv)
			}
		case boxtree.Atomic:
			if item.Atomic.Kind == boxtree.AbsolutelyPositioned {
				continue
			}
			s := l.contentSizes(item.Atomic)
			place(s.Max, pending)
			sizes.Min = max(sizes.Min, s.Min)
			pending = false
		}
	}
	sizes.Max = x
	return sizes
}
