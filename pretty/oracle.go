package pretty

import (
	"github.com/synless-go/synless/internal/assert"
	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/style"
)

// Oracle is a brute-force reference printer: at every Choice it tries the
// left branch first, and only backtracks to the right branch if committing
// to the left eventually produces a line wider than width. It exists so
// tests can check [Print]'s output against an implementation with no
// Requirements bookkeeping to get wrong (spec §8, "fast printer matches the
// oracle"). It is exponential in the number of Choice nodes and is intended
// for tests over small notations only.
func Oracle(n Node, width int) ([]Line, error) {
	b := &builder{}
	ok := bruteNode(n, b, 0, false, width)
	if !ok {
		return nil, ErrWontFit
	}
	lines := b.finish()
	for _, l := range lines {
		if l.Width() > width {
			return nil, ErrWontFit
		}
	}
	return lines, nil
}

type snapshot struct {
	lines []Line
	cur   Line
	col   int
}

func (b *builder) snapshot() snapshot {
	return snapshot{lines: append([]Line(nil), b.lines...), cur: append(Line(nil), b.cur...), col: b.col}
}

func (b *builder) restore(s snapshot) {
	b.lines = s.lines
	b.cur = s.cur
	b.col = s.col
}

func bruteNode(n Node, b *builder, indent int, flat bool, width int) bool {
	return bruteLayout(n.Notation(), n, b, indent, flat, width)
}

func bruteLayout(nt notation.Notation, n Node, b *builder, indent int, flat bool, width int) bool {
	v := &bruteVisit{n: n, b: b, indent: indent, flat: flat, width: width}
	notation.Accept(nt, v)
	return v.ok
}

type bruteVisit struct {
	n      Node
	b      *builder
	indent int
	flat   bool
	width  int
	ok     bool
}

func (v *bruteVisit) VisitEmpty() { v.ok = true }

func (v *bruteVisit) VisitLiteral(text string, sty style.Style) {
	v.b.emit(text, sty)
	v.ok = v.b.col <= v.width
}

func (v *bruteVisit) VisitText() {
	text, ok := v.n.Text()
	assert.That(ok, "pretty: Text notation used on a non-text node")
	v.b.emit(text, style.Plain())
	v.ok = v.b.col <= v.width
}

func (v *bruteVisit) VisitChild(i int) {
	v.ok = bruteNode(v.n.ChildAt(i), v.b, v.indent, v.flat, v.width)
}

func (v *bruteVisit) VisitConcat(left, right notation.Notation) {
	if !bruteLayout(left, v.n, v.b, v.indent, v.flat, v.width) {
		return
	}
	v.ok = bruteLayout(right, v.n, v.b, v.indent, v.flat, v.width)
}

func (v *bruteVisit) VisitNest(left notation.Notation, k int, right notation.Notation) {
	if v.flat {
		return
	}
	if !bruteLayout(left, v.n, v.b, v.indent, v.flat, v.width) {
		return
	}
	v.b.newline(v.indent + k)
	if v.b.lines[len(v.b.lines)-1].Width() > v.width {
		return
	}
	v.ok = bruteLayout(right, v.n, v.b, v.indent+k, v.flat, v.width)
}

func (v *bruteVisit) VisitFlat(inner notation.Notation) {
	v.ok = bruteLayout(inner, v.n, v.b, v.indent, true, v.width)
}

func (v *bruteVisit) VisitAlign(inner notation.Notation) {
	v.ok = bruteLayout(inner, v.n, v.b, v.b.col, v.flat, v.width)
}

func (v *bruteVisit) VisitChoice(left, right notation.Notation) {
	before := v.b.snapshot()
	if bruteLayout(left, v.n, v.b, v.indent, v.flat, v.width) {
		v.ok = true
		return
	}
	v.b.restore(before)
	v.ok = bruteLayout(right, v.n, v.b, v.indent, v.flat, v.width)
}

func (v *bruteVisit) VisitIfEmptyText(ifEmpty, ifNonEmpty notation.Notation) {
	text, ok := v.n.Text()
	assert.That(ok, "pretty: IfEmptyText notation used on a non-text node")
	if text == "" {
		v.ok = bruteLayout(ifEmpty, v.n, v.b, v.indent, v.flat, v.width)
	} else {
		v.ok = bruteLayout(ifNonEmpty, v.n, v.b, v.indent, v.flat, v.width)
	}
}

func (v *bruteVisit) VisitRepeat(spec notation.RepeatSpec) {
	panic("pretty: unexpanded Repeat reached the oracle")
}
