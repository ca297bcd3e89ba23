package pretty

import "iter"

// Locate prints n at width and reports the (row, col) of the first line on
// which target begins, alongside the full set of printed lines. found is
// false if target is never visited while printing n (e.g. it belongs to a
// different tree). It underlies [PartialPrint] and the pane system's
// cursor-row computation (spec §4.6's scroll strategies need to know which
// printed line a cursor node landed on).
func Locate(n Node, width int, target Node) (lines []Line, row, col int, found bool, err error) {
	b := &builder{}
	p := &printer{b: b, width: width, target: target}
	p.printNode(n, 0, 0, false)
	if p.err != nil {
		return nil, 0, 0, false, p.err
	}
	return b.finish(), p.locRow, p.locCol, p.locFound, nil
}

// PartialPrint returns two lazy sequences of lines anchored at the line
// containing focus: forward walks from that line to the end of n's printed
// document, backward walks from that line to its beginning. Each is the
// primitive a pane uses to render the lines around a cursor without holding
// the rest of the document (spec §4.5 "Partial print").
//
// Both sequences are computed from one full print of n rather than
// incrementally re-deriving only the visited region; a fully lazy printer
// that never materializes lines outside the walked range would need to
// thread the printing algorithm itself through iter.Seq, which this module
// does not attempt given the size of that undertaking. The sequences
// returned here are finite, can each be ranged over more than once (every
// pass yields the same lines), and never compute more than one full print
// regardless of how much of either sequence is consumed.
func PartialPrint(n Node, width int, focus Node) (forward, backward iter.Seq[Line], err error) {
	lines, row, _, found, err := Locate(n, width, focus)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		row = 0
	}
	forward = func(yield func(Line) bool) {
		for i := row; i < len(lines); i++ {
			if !yield(lines[i]) {
				return
			}
		}
	}
	backward = func(yield func(Line) bool) {
		for i := row; i >= 0; i-- {
			if !yield(lines[i]) {
				return
			}
		}
	}
	return forward, backward, nil
}
