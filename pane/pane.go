// Package pane composes a screen region from a tree of horizontal, vertical,
// document, and fill sub-regions, and renders that tree onto a [style.Screen]
// (spec §4.6). It is grounded on pretty/src/pane.rs (original_source) for the
// PaneNotation shape and the divvy algorithm, with the original's Content
// variant (a fixed vocabulary of editor-chrome slots) generalized to Doc,
// which names a document directly by label.
package pane

import (
	"fmt"

	"github.com/synless-go/synless/internal/version"
	"github.com/synless-go/synless/style"
)

// SizeKind distinguishes a Fixed demand (an exact column/row count) from a
// Proportional one (a share of whatever remains after fixed demands are
// met).
type SizeKind int

const (
	Fixed SizeKind = iota
	Proportional
)

// Size is one child's demand along the axis its parent Horz or Vert splits.
type Size struct {
	Kind SizeKind
	N    int
}

// FixedSize demands exactly n columns or rows.
func FixedSize(n int) Size { return Size{Kind: Fixed, N: n} }

// ProportionalSize demands a share of the axis proportional to weight among
// its proportional siblings.
func ProportionalSize(weight int) Size { return Size{Kind: Proportional, N: weight} }

// Notation is a recursive description of how to divide a rectangular screen
// region (spec §4.6).
type Notation interface {
	paneNotation()
}

// SizedPane pairs a child PaneNotation with its demand along the axis its
// parent splits.
type SizedPane struct {
	Size Size
	Pane Notation
}

// Horz splits its region into vertical strips running left to right, sized
// along the horizontal axis.
type Horz struct {
	Panes []SizedPane
	Style *style.Style
}

func (Horz) paneNotation() {}

// Vert splits its region into horizontal strips running top to bottom, sized
// along the vertical axis.
type Vert struct {
	Panes []SizedPane
	Style *style.Style
}

func (Vert) paneNotation() {}

// CursorVis controls whether a Doc pane shades its document's cursor region
// after printing.
type CursorVis int

const (
	Show CursorVis = iota
	Hide
)

// Doc renders the document identified by Label using Scroll to decide which
// lines are visible and CursorVis to decide whether its cursor is shaded.
type Doc struct {
	Label     string
	CursorVis CursorVis
	Scroll    Scroll
}

func (Doc) paneNotation() {}

// Fill paints every cell of its region with Ch.
type Fill struct {
	Ch    rune
	Style *style.Style
}

func (Fill) paneNotation() {}

// Literal paints Text, left-aligned and truncated or space-padded to the
// region's width, on every row of its region. A driver uses this for chrome
// that isn't a document: a status line, a mode indicator.
type Literal struct {
	Text  string
	Style *style.Style
}

func (Literal) paneNotation() {}

// VersionLine builds a status-line Literal showing the running build's
// module version (spec §1a ambient stack: the teacher's internal/version,
// read via debug.ReadBuildInfo).
func VersionLine() Notation {
	return Literal{Text: version.Version()}
}

// ErrImpossibleDemands is returned when a Horz or Vert's fixed-size children
// demand more than the axis provides (spec §7).
type ErrImpossibleDemands struct {
	Axis   string // "horizontal" or "vertical"
	Demand int
	Have   int
}

func (e *ErrImpossibleDemands) Error() string {
	return fmt.Sprintf("pane: %s fixed demands want %d but only %d available", e.Axis, e.Demand, e.Have)
}

// divvy allocates length units among demands: fixed demands are satisfied
// first (failing with ErrImpossibleDemands if their sum exceeds length);
// the remainder is divided among proportional demands by integer floor,
// with leftover units handed to the largest fractional remainders (ties
// broken leftmost). When some proportional demand has a positive weight the
// result sums to exactly length; otherwise the units left after the fixed
// demands are allocated to no demand. Grounded on pretty/src/pane.rs's
// divvy/proportionally_divide.
func divvy(length int, demands []Size, axis string) ([]int, error) {
	totalFixed := 0
	for _, d := range demands {
		if d.Kind == Fixed {
			totalFixed += d.N
		}
	}
	if totalFixed > length {
		return nil, &ErrImpossibleDemands{Axis: axis, Demand: totalFixed, Have: length}
	}

	var weights []int
	for _, d := range demands {
		if d.Kind == Proportional {
			weights = append(weights, d.N)
		}
	}
	shares := proportionallyDivide(length-totalFixed, weights)

	out := make([]int, len(demands))
	si := 0
	for i, d := range demands {
		if d.Kind == Fixed {
			out[i] = d.N
		} else {
			out[i] = shares[si]
			si++
		}
	}
	return out, nil
}

// proportionallyDivide splits cookies among len(hungers) children in
// proportion to their hunger, handing out leftover single units to the
// children with the largest fractional remainder, ties going to the
// leftmost child. If every hunger is zero (including the no-children case)
// every child gets zero and any cookies stay unallocated, since hungers
// summing to zero give no proportional basis to divide on.
func proportionallyDivide(cookies int, hungers []int) []int {
	total := 0
	for _, h := range hungers {
		total += h
	}
	alloc := make([]int, len(hungers))
	if total == 0 {
		return alloc
	}
	for i, h := range hungers {
		alloc[i] = cookies * h / total
	}
	allocated := 0
	for _, a := range alloc {
		allocated += a
	}
	leftover := cookies - allocated

	type rem struct {
		i int
		r int
	}
	remainders := make([]rem, len(hungers))
	for i, h := range hungers {
		remainders[i] = rem{i: i, r: cookies*h - alloc[i]*total}
	}
	// Stable, descending by remainder; ties keep index order (leftmost wins)
	// via a simple insertion sort so equal remainders never swap.
	for i := 1; i < len(remainders); i++ {
		for j := i; j > 0 && remainders[j].r > remainders[j-1].r; j-- {
			remainders[j], remainders[j-1] = remainders[j-1], remainders[j]
		}
	}
	for k := 0; k < leftover; k++ {
		alloc[remainders[k].i]++
	}
	return alloc
}
