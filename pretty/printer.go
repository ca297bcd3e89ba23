package pretty

import (
	"errors"
	"strings"

	"github.com/synless-go/synless/internal/assert"
	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/style"
)

// ErrWontFit is returned by Print when a node has no layout, at any width,
// that satisfies the requested width (spec §4.5 "fit failure").
var ErrWontFit = errors.New("pretty: notation has no layout that fits the requested width")

// Print lays n out as concrete lines within width columns, full-print
// style: every Choice resolves to whichever branch fits, left winning ties
// (spec §4.5). Choice resolution is based on columns already used on the
// current line (the node's own prefix) and a conservative upper bound on
// what must still fit on that same line afterward (its suffix, carried as a
// plain column count rather than a full Requirements); this is a
// deliberate, documented simplification of the fully lazy, exactly-measured
// suffix a continuation-passing printer would use.
func Print(n Node, width int) ([]Line, error) {
	b := &builder{}
	p := &printer{b: b, width: width}
	p.printNode(n, 0, 0, false)
	if p.err != nil {
		return nil, p.err
	}
	return b.finish(), nil
}

// builder accumulates styled runs into lines as the printer walks a
// notation tree left to right.
type builder struct {
	lines []Line
	cur   Line
	col   int
}

func (b *builder) emit(text string, sty style.Style) {
	if text == "" {
		return
	}
	b.cur = append(b.cur, StyledRun{Text: text, Style: sty})
	b.col += len([]rune(text))
}

func (b *builder) newline(indent int) {
	b.lines = append(b.lines, b.cur)
	b.cur = nil
	b.col = 0
	if indent > 0 {
		b.emit(strings.Repeat(" ", indent), style.Plain())
	}
}

func (b *builder) finish() []Line {
	b.lines = append(b.lines, b.cur)
	return b.lines
}

type printer struct {
	b     *builder
	width int
	err   error

	// target/locRow/locCol/locFound support Locate: when target is non-nil,
	// printNode records the (row, col) of the first node it visits that
	// equals target.
	target   Node
	locRow   int
	locCol   int
	locFound bool
}

// printNode prints n's own notation. indent is the column further breaks
// within n return to absent their own Nest; suffix conservatively bounds
// (as a column count) what must still fit on the current line after n;
// flat forbids any break anywhere within n.
func (p *printer) printNode(n Node, indent, suffix int, flat bool) {
	if p.err != nil {
		return
	}
	if p.target != nil && !p.locFound && n == p.target {
		p.locFound = true
		p.locRow = len(p.b.lines)
		p.locCol = p.b.col
	}
	p.layout(n.Notation(), n, indent, suffix, flat)
}

func (p *printer) layout(nt notation.Notation, n Node, indent, suffix int, flat bool) {
	if p.err != nil {
		return
	}
	v := &visit{p: p, n: n, indent: indent, suffix: suffix, flat: flat}
	notation.Accept(nt, v)
}

// visit implements notation.Visitor, dispatching each notation shape to the
// corresponding printing behavior.
type visit struct {
	p      *printer
	n      Node
	indent int
	suffix int
	flat   bool
}

func (v *visit) VisitEmpty() {}

func (v *visit) VisitLiteral(text string, sty style.Style) {
	v.p.b.emit(text, sty)
}

func (v *visit) VisitText() {
	text, ok := v.n.Text()
	assert.That(ok, "pretty: Text notation used on a non-text node")
	v.p.b.emit(text, style.Plain())
}

func (v *visit) VisitChild(i int) {
	child := v.n.ChildAt(i)
	v.p.printNode(child, v.indent, v.suffix, v.flat)
}

func (v *visit) VisitConcat(left, right notation.Notation) {
	ctx := ctxOf(v.n)
	rightReq := notation.Measure(right, ctx)
	suffixForLeft := maxFirstLine(rightReq) + v.suffix
	v.p.layout(left, v.n, v.indent, suffixForLeft, v.flat)
	v.p.layout(right, v.n, v.indent, v.suffix, v.flat)
}

func (v *visit) VisitNest(left notation.Notation, k int, right notation.Notation) {
	assert.That(!v.flat, "pretty: Nest reached under a Flat context")
	v.p.layout(left, v.n, v.indent, 0, v.flat)
	v.p.b.newline(v.indent + k)
	v.p.layout(right, v.n, v.indent+k, v.suffix, v.flat)
}

func (v *visit) VisitFlat(inner notation.Notation) {
	v.p.layout(inner, v.n, v.indent, v.suffix, true)
}

func (v *visit) VisitAlign(inner notation.Notation) {
	v.p.layout(inner, v.n, v.p.b.col, v.suffix, v.flat)
}

func (v *visit) VisitChoice(left, right notation.Notation) {
	ctx := ctxOf(v.n)
	leftReq := notation.Measure(left, ctx)
	rightReq := notation.Measure(right, ctx)

	if v.flat {
		if leftReq.SingleLine != nil {
			v.p.layout(left, v.n, v.indent, v.suffix, true)
		} else if rightReq.SingleLine != nil {
			v.p.layout(right, v.n, v.indent, v.suffix, true)
		} else {
			v.p.err = ErrWontFit
		}
		return
	}

	if leftReq.Fits(v.p.width, v.p.b.col, v.suffix) {
		v.p.layout(left, v.n, v.indent, v.suffix, false)
		return
	}
	if rightReq.Fits(v.p.width, v.p.b.col, v.suffix) {
		v.p.layout(right, v.n, v.indent, v.suffix, false)
		return
	}
	v.p.err = ErrWontFit
}

func (v *visit) VisitIfEmptyText(ifEmpty, ifNonEmpty notation.Notation) {
	_, ok := v.n.Text()
	assert.That(ok, "pretty: IfEmptyText notation used on a non-text node")
	text, _ := v.n.Text()
	if text == "" {
		v.p.layout(ifEmpty, v.n, v.indent, v.suffix, v.flat)
	} else {
		v.p.layout(ifNonEmpty, v.n, v.indent, v.suffix, v.flat)
	}
}

func (v *visit) VisitRepeat(spec notation.RepeatSpec) {
	panic("pretty: unexpanded Repeat reached the printer")
}

func ctxOf(n Node) notation.Context {
	nc := n.NumChildren()
	children := make([]notation.Requirements, nc)
	for i := 0; i < nc; i++ {
		children[i] = n.ChildBounds(i)
	}
	text, isText := n.Text()
	return notation.Context{Children: children, TextLen: len([]rune(text)), TextEmpty: isText && text == ""}
}

// maxFirstLine returns the widest first-line width among r's options, used
// as a conservative (safe upper bound) suffix requirement.
func maxFirstLine(r notation.Requirements) int {
	w := 0
	if r.SingleLine != nil && *r.SingleLine > w {
		w = *r.SingleLine
	}
	for _, m := range r.MultiLine.Entries() {
		if m.First > w {
			w = m.First
		}
	}
	for _, a := range r.Aligned.Entries() {
		if a.Middle > w {
			w = a.Middle
		}
	}
	return w
}
