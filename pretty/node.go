// Package pretty implements the constraint-based pretty printer: given a
// measured notation tree, it produces concrete styled lines, choosing
// between Choice alternatives by which one fits a given width (spec §4.5).
//
// The printer never touches a [style.Screen] directly; it returns [Line]
// values, which package pane then draws.
package pretty

import (
	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/style"
)

// Node is the read-only view the printer needs of an AST node: its own
// (already [notation.ExpandRepeats]-resolved) notation, its children, its
// cached Requirements, and its text buffer state if it is a text leaf.
// Implemented by ast.Node.
type Node interface {
	// Notation returns this node's construct notation, with any Repeat
	// already expanded against this node's actual child count.
	Notation() notation.Notation

	// NumChildren returns the number of tree children this node has. Zero
	// for a text leaf.
	NumChildren() int

	// ChildAt returns the i'th child.
	ChildAt(i int) Node

	// Bounds returns this node's cached Requirements.
	Bounds() notation.Requirements

	// ChildBounds returns the i'th child's cached Requirements, without the
	// cost of materializing the child itself. Equivalent to
	// ChildAt(i).Bounds().
	ChildBounds(i int) notation.Requirements

	// Text returns the node's text buffer contents and whether it is a text
	// leaf at all.
	Text() (string, bool)
}

// StyledRun is a contiguous run of same-styled text within one [Line].
type StyledRun struct {
	Text  string
	Style style.Style
}

// Line is one printed line, left to right.
type Line []StyledRun

// Width returns the total column width of the line.
func (l Line) Width() int {
	n := 0
	for _, r := range l {
		n += len([]rune(r.Text))
	}
	return n
}
