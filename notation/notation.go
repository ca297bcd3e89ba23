// Package notation implements the combinator language a construct uses to
// describe how it prints: literals, child references, concatenation,
// line breaks, indentation, alignment, flat regions, choices between
// alternative layouts, and a fold over a variable-arity node's children.
//
// A Notation is built once per (language, construct) pair and shared across
// every AST node of that construct. It says nothing about any specific
// node's children; [Measure] combines a Notation with a particular node's
// already-measured children to produce that node's [Requirements], and
// [ExpandRepeats] resolves a [Repeat] notation's four templates against a
// particular node's actual child count before it is measured or printed.
package notation

import (
	"fmt"

	"github.com/synless-go/synless/style"
)

// Notation is the combinator tree describing how a construct prints. It is
// immutable and safe to share across every instance of its construct.
type Notation interface {
	notation()
}

type literalNotation struct {
	text  string
	style style.Style
}

// Concrete node types are unexported; construct them via the functions below.
// This mirrors the teacher's internal/layout tag design (text/space/newlines/
// group/indentation), generalized to the full algebra of spec §4.4.

func (literalNotation) notation() {}

type textNotation struct{}

func (textNotation) notation() {}

type childNotation struct {
	index int
}

func (childNotation) notation() {}

type concatNotation struct {
	left, right Notation
}

func (concatNotation) notation() {}

type nestNotation struct {
	left   Notation
	indent int
	right  Notation
}

func (nestNotation) notation() {}

type flatNotation struct {
	inner Notation
}

func (flatNotation) notation() {}

type alignNotation struct {
	inner Notation
}

func (alignNotation) notation() {}

type choiceNotation struct {
	left, right Notation
}

func (choiceNotation) notation() {}

type ifEmptyTextNotation struct {
	ifEmpty, ifNonEmpty Notation
}

func (ifEmptyTextNotation) notation() {}

// RepeatSpec is the four-way fold definition consumed by [Repeat]. Empty is
// used when a flexible/mixed node has no children; Lone when it has exactly
// one ([Child] 0 refers to that child); Join folds pairs of adjacent
// children right-associatively ([Child] 0 is "this child", [Child] 1 is "the
// rest of the fold"); Surround wraps the completed fold ([Child] 0 is the
// fold's result) when there are two or more children.
type RepeatSpec struct {
	Empty, Lone, Join, Surround Notation
}

type repeatNotation struct {
	spec RepeatSpec
}

func (repeatNotation) notation() {}

func (r RepeatSpec) String() string {
	return fmt.Sprintf("Repeat{Empty: %v, Lone: %v, Join: %v, Surround: %v}", r.Empty, r.Lone, r.Join, r.Surround)
}
