package notation

// Requirements summarizes every way a notation, applied to one particular
// node, could lay out: at most one single-line width, plus a staircase of
// multi-line shapes and a staircase of aligned shapes (spec §4.4
// "Requirements").
//
// A Requirements with every field empty describes an impossible layout
// (e.g. Flat applied to a notation with no single-line option).
type Requirements struct {
	SingleLine *int
	MultiLine  Staircase[MultiLine]
	Aligned    Staircase[Aligned]
}

// Impossible reports whether r describes a notation with no valid layout at
// all.
func (r Requirements) Impossible() bool {
	return r.SingleLine == nil && r.MultiLine.Empty() && r.Aligned.Empty()
}

// Fits reports whether r can be printed within width w given prefix columns
// already used on the current line and suffix columns that must remain free
// after the last line (spec §4.5's fitting rule).
func (r Requirements) Fits(w, prefix, suffix int) bool {
	if r.SingleLine != nil && prefix+*r.SingleLine+suffix <= w {
		return true
	}
	if r.MultiLine.FitsWithin(w-prefix, w-suffix) {
		return true
	}
	if r.Aligned.FitsWithin(w-prefix, w-suffix) {
		return true
	}
	return false
}

func singleLineOnly(width int) Requirements {
	w := width
	return Requirements{SingleLine: &w}
}

// Context supplies the per-node information [Measure] needs to combine a
// Notation with a particular AST node: the already-computed Requirements of
// each child, and the length/emptiness of the node's own text buffer (only
// meaningful for a Texty node).
type Context struct {
	Children  []Requirements
	TextLen   int
	TextEmpty bool
}

// Measure computes a node's Requirements from its (already
// [ExpandRepeats]-resolved) Notation and the Requirements of its children.
// Measure panics if it encounters an unexpanded Repeat; every other
// combinator composes structurally.
func Measure(n Notation, ctx Context) Requirements {
	switch t := n.(type) {
	case empty:
		return singleLineOnly(0)
	case literalNotation:
		return singleLineOnly(runeLen(t.text))
	case textNotation:
		return singleLineOnly(ctx.TextLen)
	case childNotation:
		return ctx.Children[t.index]
	case concatNotation:
		return concatReq(Measure(t.left, ctx), Measure(t.right, ctx))
	case nestNotation:
		return nestReq(Measure(t.left, ctx), t.indent, Measure(t.right, ctx))
	case flatNotation:
		return flatReq(Measure(t.inner, ctx))
	case alignNotation:
		return alignReq(Measure(t.inner, ctx))
	case choiceNotation:
		return unionReq(Measure(t.left, ctx), Measure(t.right, ctx))
	case ifEmptyTextNotation:
		if ctx.TextEmpty {
			return Measure(t.ifEmpty, ctx)
		}
		return Measure(t.ifNonEmpty, ctx)
	case repeatNotation:
		panic("notation: Measure called on an unexpanded Repeat; call ExpandRepeats first")
	default:
		panic("notation: Measure missing a case for a Notation implementation")
	}
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// concatReq combines two Requirements for notations printed one after the
// other on the same starting line, per spec §4.4's closed-form concat rules.
func concatReq(l, r Requirements) Requirements {
	var out Requirements

	if l.SingleLine != nil && r.SingleLine != nil {
		out.SingleLine = ptr(*l.SingleLine + *r.SingleLine)
	}

	// single ++ multi-line: the left's width prefixes the right's first line.
	if l.SingleLine != nil {
		for _, rm := range r.MultiLine.Entries() {
			out.MultiLine.Insert(MultiLine{First: *l.SingleLine + rm.First, Middle: rm.Middle, Last: rm.Last})
		}
		for _, ra := range r.Aligned.Entries() {
			out.Aligned.Insert(Aligned{Middle: *l.SingleLine + ra.Middle, Last: *l.SingleLine + ra.Last})
		}
	}
	// multi-line ++ single: the right's width suffixes the left's last line.
	if r.SingleLine != nil {
		for _, lm := range l.MultiLine.Entries() {
			out.MultiLine.Insert(MultiLine{First: lm.First, Middle: lm.Middle, Last: lm.Last + *r.SingleLine})
		}
	}
	// multi-line ++ multi-line: the right's first line continues the left's
	// last line; everything else becomes an interior line.
	for _, lm := range l.MultiLine.Entries() {
		for _, rm := range r.MultiLine.Entries() {
			middle := max3(lm.Middle, lm.Last+rm.First, rm.Middle)
			out.MultiLine.Insert(MultiLine{First: lm.First, Middle: middle, Last: rm.Last})
		}
	}
	// aligned ++ single: the right's width suffixes the aligned block's last
	// line.
	if r.SingleLine != nil {
		for _, la := range l.Aligned.Entries() {
			out.Aligned.Insert(Aligned{Middle: la.Middle, Last: la.Last + *r.SingleLine})
		}
	}
	// aligned ++ aligned, and aligned ++ multi-line / multi-line ++ aligned:
	// an aligned block's own last line continues into whatever follows it.
	for _, la := range l.Aligned.Entries() {
		for _, ra := range r.Aligned.Entries() {
			out.Aligned.Insert(Aligned{Middle: max(la.Middle, la.Last+ra.Middle), Last: la.Last + ra.Last})
		}
		for _, rm := range r.MultiLine.Entries() {
			out.MultiLine.Insert(MultiLine{
				First:  la.Middle, // la's own first line already folded into whatever preceded l
				Middle: max(la.Last+rm.First, rm.Middle),
				Last:   rm.Last,
			})
		}
	}
	for _, lm := range l.MultiLine.Entries() {
		for _, ra := range r.Aligned.Entries() {
			out.MultiLine.Insert(MultiLine{
				First:  lm.First,
				Middle: max(lm.Middle, lm.Last+ra.Middle),
				Last:   lm.Last + ra.Last,
			})
		}
	}

	return out
}

// nestReq combines a Requirements for "a", a mandatory break indented k
// columns, and a Requirements for "b". The result never has a single-line
// option: a break always occurs.
func nestReq(a Requirements, k int, b Requirements) Requirements {
	var out Requirements

	aFirst, aMiddle, aHasMiddle := firstAndMiddle(a)
	for _, first := range aFirst {
		for _, bLast := range lastOptions(b, k) {
			for _, bMiddle := range middleOptions(b, k) {
				middle := bMiddle
				if aHasMiddle {
					middle = max(aMiddle, middle)
				}
				out.MultiLine.Insert(MultiLine{First: first, Middle: middle, Last: bLast})
			}
		}
	}
	return out
}

// firstAndMiddle extracts every possible "first line" width of r (what ends
// up before the forced break) and, if r itself spans multiple lines, the
// widest interior line it already contributes (reported via the second
// return value's validity flag).
func firstAndMiddle(r Requirements) (firsts []int, middle int, hasMiddle bool) {
	if r.SingleLine != nil {
		firsts = append(firsts, *r.SingleLine)
	}
	for _, m := range r.MultiLine.Entries() {
		firsts = append(firsts, m.First)
		if m.Middle > middle {
			middle = m.Middle
			hasMiddle = true
		}
	}
	for _, al := range r.Aligned.Entries() {
		firsts = append(firsts, al.Middle)
		if al.Middle > middle {
			middle = al.Middle
			hasMiddle = true
		}
	}
	return firsts, middle, hasMiddle
}

// lastOptions returns every possible last-line width of r once indented k
// columns past the break.
func lastOptions(r Requirements, k int) []int {
	var out []int
	if r.SingleLine != nil {
		out = append(out, k+*r.SingleLine)
	}
	for _, m := range r.MultiLine.Entries() {
		out = append(out, k+m.Last)
	}
	for _, al := range r.Aligned.Entries() {
		out = append(out, k+al.Last)
	}
	return out
}

// middleOptions returns every possible interior-line width r itself
// contributes once indented k columns past the break (its own first line,
// if r spans multiple lines, plus its own interior lines).
func middleOptions(r Requirements, k int) []int {
	out := []int{0}
	for _, m := range r.MultiLine.Entries() {
		out = append(out, k+m.First, k+m.Middle)
	}
	for _, al := range r.Aligned.Entries() {
		out = append(out, k+al.Middle)
	}
	return out
}

// flatReq requires a single-line layout; everything else is discarded.
func flatReq(inner Requirements) Requirements {
	if inner.SingleLine == nil {
		return Requirements{}
	}
	return singleLineOnly(*inner.SingleLine)
}

// alignReq reinterprets inner's own line breaks as indenting to the current
// column: its first line folds into whatever precedes it (handled by the
// surrounding concatReq), and every subsequent line becomes Aligned payload.
func alignReq(inner Requirements) Requirements {
	var out Requirements
	out.SingleLine = inner.SingleLine
	for _, m := range inner.MultiLine.Entries() {
		out.Aligned.Insert(Aligned{Middle: max(m.First, m.Middle), Last: m.Last})
	}
	for _, al := range inner.Aligned.Entries() {
		out.Aligned.Insert(al)
	}
	return out
}

// unionReq combines two Requirements as alternatives of one another (spec
// §4.4 "Choice"): the result offers everything either side offers.
func unionReq(a, b Requirements) Requirements {
	out := a
	if out.SingleLine == nil {
		out.SingleLine = b.SingleLine
	} else if b.SingleLine != nil && *b.SingleLine < *out.SingleLine {
		out.SingleLine = b.SingleLine
	}
	for _, m := range b.MultiLine.Entries() {
		out.MultiLine.Insert(m)
	}
	for _, al := range b.Aligned.Entries() {
		out.Aligned.Insert(al)
	}
	return out
}

func ptr(i int) *int { return &i }

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func max3(a, b, c int) int {
	return max(a, max(b, c))
}
