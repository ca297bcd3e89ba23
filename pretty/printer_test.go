package pretty_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/pretty"
	"github.com/synless-go/synless/style"
)

// fakeNode is a minimal, hand-built pretty.Node used to test the printer
// without involving package ast.
type fakeNode struct {
	nt       notation.Notation
	children []*fakeNode
	text     string
	isText   bool
}

func (n *fakeNode) Notation() notation.Notation { return n.nt }
func (n *fakeNode) NumChildren() int            { return len(n.children) }
func (n *fakeNode) ChildAt(i int) pretty.Node   { return n.children[i] }
func (n *fakeNode) Text() (string, bool)        { return n.text, n.isText }

func (n *fakeNode) ChildBounds(i int) notation.Requirements {
	return n.children[i].Bounds()
}

func (n *fakeNode) Bounds() notation.Requirements {
	children := make([]notation.Requirements, len(n.children))
	for i, c := range n.children {
		children[i] = c.Bounds()
	}
	text, isText := n.Text()
	return notation.Measure(n.nt, notation.Context{Children: children, TextLen: len([]rune(text)), TextEmpty: isText && text == ""})
}

func textLeaf(s string) *fakeNode {
	return &fakeNode{nt: notation.Text(), text: s, isText: true}
}

func TestPrintConcatLiterals(t *testing.T) {
	n := &fakeNode{nt: notation.Concat(notation.Literal("foo", style.Plain()), notation.Literal("bar", style.Plain()))}
	lines, err := pretty.Print(n, 80)
	require.NoErrorf(t, err, "Print")
	assert.EqualValuesf(t, len(lines), 1, "single concat should print one line")
	assert.EqualValuesf(t, lines[0].Width(), 6, "line width")
}

func TestPrintChoicePicksFittingBranch(t *testing.T) {
	short := notation.Literal("short", style.Plain())
	long := notation.Nest(notation.Literal("long-left", style.Plain()), 2, notation.Literal("long-right", style.Plain()))
	n := &fakeNode{nt: notation.Choice(short, long)}

	lines, err := pretty.Print(n, 80)
	require.NoErrorf(t, err, "Print wide")
	assert.EqualValuesf(t, len(lines), 1, "wide width should pick the single-line branch")

	lines, err = pretty.Print(n, 3)
	require.NoErrorf(t, err, "Print narrow")
	assert.EqualValuesf(t, len(lines), 2, "narrow width should pick the multi-line branch")
}

func TestPrintChildAndText(t *testing.T) {
	child := textLeaf("hello")
	root := &fakeNode{
		nt:       notation.Concat(notation.Literal("(", style.Plain()), notation.Concat(notation.Child(0), notation.Literal(")", style.Plain()))),
		children: []*fakeNode{child},
	}
	lines, err := pretty.Print(root, 80)
	require.NoErrorf(t, err, "Print")
	require.EqualValuesf(t, len(lines), 1, "should print one line")
	assert.EqualValuesf(t, lines[0].Width(), 7, "(hello)")
}

func TestOracleAgreesWithPrintOnChoice(t *testing.T) {
	short := notation.Literal("abc", style.Plain())
	long := notation.Nest(notation.Literal("abcdef", style.Plain()), 0, notation.Literal("ghijkl", style.Plain()))
	n := &fakeNode{nt: notation.Choice(short, long)}

	for _, width := range []int{2, 3, 4, 12, 80} {
		fast, fastErr := pretty.Print(n, width)
		oracle, oracleErr := pretty.Oracle(n, width)
		if fastErr != nil || oracleErr != nil {
			assert.EqualValuesf(t, fastErr != nil, oracleErr != nil, "width %d: Print/Oracle should agree on failure", width)
			continue
		}
		assert.EqualValuesf(t, len(fast), len(oracle), "width %d: same number of lines", width)
	}
}

// lineText concatenates a Line's runs, ignoring style, so two lines can be
// compared for exact textual agreement rather than just width.
func lineText(l pretty.Line) string {
	var s string
	for _, r := range l {
		s += r.Text
	}
	return s
}

// oracleShapes returns a handful of fakeNode roots exercising notation kinds
// the narrower Choice/Nest-only coverage above misses: Align reinterpreting
// breaks inside a multi-line branch, a Repeat expanded over real children the
// way jsonlang's lists do, and IfEmptyText switching on a leaf's own text.
func oracleShapes() map[string]*fakeNode {
	shapes := map[string]*fakeNode{}

	shapes["choice-nest"] = &fakeNode{nt: notation.Choice(
		notation.Literal("abc", style.Plain()),
		notation.Nest(notation.Literal("abcdef", style.Plain()), 0, notation.Literal("ghijkl", style.Plain())),
	)}

	shapes["choice-align"] = &fakeNode{nt: notation.Choice(
		notation.Literal("abc", style.Plain()),
		notation.Align(notation.Nest(notation.Literal("abcdef", style.Plain()), 0, notation.Literal("ghijkl", style.Plain()))),
	)}

	// Mirrors examples/jsonlang's listAndDictNotation: Join chooses between a
	// compact comma-space join and a Flush'd one-per-line join, and Surround
	// chooses between a flat bracket wrap and an Align'd multi-line one, so
	// the repeated shape actually has a forced break for Align to reinterpret
	// once the compact/flat branches don't fit.
	compactJoin := notation.Concat(notation.Child(0), notation.Concat(notation.Literal(", ", style.Plain()), notation.Child(1)))
	flushJoin := notation.Concat(notation.Child(0), notation.Concat(notation.Literal(",", style.Plain()), notation.Flush(notation.Child(1))))
	flatSurround := notation.Flat(notation.Concat(notation.Literal("[", style.Plain()), notation.Concat(notation.Child(0), notation.Literal("]", style.Plain()))))
	alignSurround := notation.Concat(notation.Literal("[", style.Plain()), notation.Concat(notation.Align(notation.Child(0)), notation.Literal("]", style.Plain())))
	repeatSpec := notation.RepeatSpec{
		Empty:    notation.Literal("[]", style.Plain()),
		Lone:     notation.Concat(notation.Literal("[", style.Plain()), notation.Concat(notation.Child(0), notation.Literal("]", style.Plain()))),
		Join:     notation.Choice(compactJoin, flushJoin),
		Surround: notation.Choice(flatSurround, alignSurround),
	}
	repeatChildren := []*fakeNode{textLeaf("1"), textLeaf("22"), textLeaf("333")}
	shapes["repeat-choice"] = &fakeNode{
		nt:       notation.ExpandRepeats(notation.Repeat(repeatSpec), len(repeatChildren)),
		children: repeatChildren,
	}

	shapes["if-empty-text-empty"] = &fakeNode{
		nt:     notation.IfEmptyText(notation.Literal("<empty>", style.Plain()), notation.Text()),
		isText: true,
	}
	shapes["if-empty-text-nonempty"] = &fakeNode{
		nt:     notation.IfEmptyText(notation.Literal("<empty>", style.Plain()), notation.Text()),
		text:   "hello",
		isText: true,
	}

	return shapes
}

// TestOracleAgreesWithPrintAcrossShapesAndWidths sweeps every width in [1,
// 50] (spec §8 testable property 5) over several notation shapes, including
// Align and Repeat, rather than the single Choice/Nest case above, and
// compares full line text rather than just line counts.
func TestOracleAgreesWithPrintAcrossShapesAndWidths(t *testing.T) {
	for name, n := range oracleShapes() {
		for width := 1; width <= 50; width++ {
			fast, fastErr := pretty.Print(n, width)
			oracle, oracleErr := pretty.Oracle(n, width)

			if fastErr != nil || oracleErr != nil {
				assert.EqualValuesf(t, fastErr != nil, oracleErr != nil,
					"%s width %d: Print/Oracle should agree on failure", name, width)
				continue
			}

			require.EqualValuesf(t, len(fast), len(oracle), "%s width %d: same number of lines", name, width)
			for i := range fast {
				assert.EqualValuesf(t, lineText(fast[i]), lineText(oracle[i]), "%s width %d: line %d text", name, width, i)
			}
		}
	}
}

func TestLocateAndPartialPrint(t *testing.T) {
	first := textLeaf("one")
	second := textLeaf("two")
	root := &fakeNode{
		nt:       notation.Nest(notation.Child(0), 0, notation.Child(1)),
		children: []*fakeNode{first, second},
	}

	lines, row, _, found, err := pretty.Locate(root, 80, second)
	require.NoErrorf(t, err, "Locate")
	require.Truef(t, found, "Locate should find second")
	assert.EqualValuesf(t, row, 1, "second starts on the second printed line")
	assert.EqualValuesf(t, len(lines), 2, "two lines printed")

	forward, backward, err := pretty.PartialPrint(root, 80, second)
	require.NoErrorf(t, err, "PartialPrint")

	var fwd []pretty.Line
	for l := range forward {
		fwd = append(fwd, l)
	}
	assert.EqualValuesf(t, len(fwd), 1, "forward from the second line yields one line")

	var back []pretty.Line
	for l := range backward {
		back = append(back, l)
	}
	assert.EqualValuesf(t, len(back), 2, "backward from the second line yields both lines")
}
