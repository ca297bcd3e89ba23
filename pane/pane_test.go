package pane_test

import (
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"

	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/pane"
	"github.com/synless-go/synless/pretty"
	"github.com/synless-go/synless/style"
)

// printCall records one Screen.Print invocation, used to reconstruct how an
// axis was divvied (a proportional child allocated 0 width issues no
// printCall at all, which sizesToAllocation reads as a width of 0).
type printCall struct {
	pos  style.Pos
	text string
}

// fakeScreen is a style.Screen that just records what was drawn, for tests.
type fakeScreen struct {
	bound  style.Bound
	cells  map[style.Pos]string
	calls  []printCall
	shades []style.Region
}

func newFakeScreen(rows, cols int) *fakeScreen {
	return &fakeScreen{bound: style.Bound{Rows: rows, Cols: cols}, cells: make(map[style.Pos]string)}
}

func (s *fakeScreen) Bound() style.Bound { return s.bound }

func (s *fakeScreen) Print(pos style.Pos, text string, sty style.Style) error {
	s.calls = append(s.calls, printCall{pos: pos, text: text})
	col := pos.Col
	for _, r := range text {
		s.cells[style.Pos{Row: pos.Row, Col: col}] = string(r)
		col++
	}
	return nil
}

func (s *fakeScreen) Shade(region style.Region, shade uint8) error {
	s.shades = append(s.shades, region)
	return nil
}

func (s *fakeScreen) Highlight(pos style.Pos, sty style.Style) error { return nil }

func (s *fakeScreen) Show() error { return nil }

func (s *fakeScreen) rowString(row, cols int) string {
	out := make([]rune, cols)
	for i := range out {
		out[i] = ' '
	}
	for pos, ch := range s.cells {
		if pos.Row == row && pos.Col < cols {
			out[pos.Col] = []rune(ch)[0]
		}
	}
	return string(out)
}

func TestProportionallyDivideMatchesReferenceVectors(t *testing.T) {
	// Same cases as pretty/src/pane.rs's test_proportional_division, reached
	// indirectly through divvy since proportionallyDivide isn't exported.
	cases := []struct {
		cookies int
		hungers []int
		want    []int
	}{
		{0, []int{1, 1}, []int{0, 0}},
		{1, []int{1, 1}, []int{1, 0}},
		{2, []int{1, 1}, []int{1, 1}},
		{3, []int{1, 1}, []int{2, 1}},
		{4, []int{10, 11, 12}, []int{1, 1, 2}},
		{5, []int{17}, []int{5}},
		{5, []int{12, 10, 11}, []int{2, 1, 2}},
		{5, []int{10, 10, 11}, []int{2, 1, 2}},
		{61, []int{1, 2, 3}, []int{10, 20, 31}},
	}
	for _, c := range cases {
		sizes := make([]pane.Size, len(c.hungers))
		for i, h := range c.hungers {
			sizes[i] = pane.ProportionalSize(h)
		}
		got, err := sizesToAllocation(c.cookies, sizes)
		require.NoErrorf(t, err, "divvy(%d, %v)", c.cookies, c.hungers)
		assert.EqualValuesf(t, got, c.want, "divvy(%d, %v)", c.cookies, c.hungers)
	}
}

// sizesToAllocation renders a Horz of the given sizes and reads back each
// child's allocated width from the single Print call its Fill issues,
// matched to the child by its fill character, the only way divvy's behavior
// is externally observable. A child with no Print call was allocated 0.
func sizesToAllocation(total int, sizes []pane.Size) ([]int, error) {
	screen := newFakeScreen(1, total)
	panes := make([]pane.SizedPane, len(sizes))
	for i, s := range sizes {
		panes[i] = pane.SizedPane{Size: s, Pane: pane.Fill{Ch: rune('a' + i)}}
	}
	note := pane.Horz{Panes: panes}
	if err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 1, Cols: total}}, note, nil, nil); err != nil {
		return nil, err
	}

	widths := make([]int, len(sizes))
	for _, c := range screen.calls {
		text := []rune(c.text)
		widths[text[0]-'a'] = len(text)
	}
	return widths, nil
}

func TestHorzImpossibleDemands(t *testing.T) {
	screen := newFakeScreen(1, 3)
	note := pane.Horz{Panes: []pane.SizedPane{
		{Size: pane.FixedSize(2), Pane: pane.Fill{Ch: 'a'}},
		{Size: pane.FixedSize(5), Pane: pane.Fill{Ch: 'b'}},
	}}
	err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 1, Cols: 3}}, note, nil, nil)
	require.NotNilf(t, err, "impossible fixed demands should error")
}

func TestZeroAreaPaneRendersNothing(t *testing.T) {
	screen := newFakeScreen(1, 1)
	note := pane.Fill{Ch: 'x'}
	err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 0, Cols: 0}}, note, nil, nil)
	require.NoErrorf(t, err, "zero-area pane should render without error")
	assert.EqualValuesf(t, len(screen.cells), 0, "zero-area pane should draw nothing")
}

// fakeContent implements pane.Content for a notation.Text leaf node, using
// pretty's fakeNode-free minimal Node implementation inline.
type fakeDocNode struct {
	nt       notation.Notation
	children []*fakeDocNode
	text     string
	isText   bool
}

func (n *fakeDocNode) Notation() notation.Notation { return n.nt }
func (n *fakeDocNode) NumChildren() int            { return len(n.children) }
func (n *fakeDocNode) ChildAt(i int) pretty.Node   { return n.children[i] }
func (n *fakeDocNode) Text() (string, bool)        { return n.text, n.isText }

func (n *fakeDocNode) ChildBounds(i int) notation.Requirements {
	return n.children[i].Bounds()
}

func (n *fakeDocNode) Bounds() notation.Requirements {
	children := make([]notation.Requirements, len(n.children))
	for i, c := range n.children {
		children[i] = c.Bounds()
	}
	text, isText := n.Text()
	return notation.Measure(n.nt, notation.Context{Children: children, TextLen: len([]rune(text)), TextEmpty: isText && text == ""})
}

type fakeContent struct {
	root   *fakeDocNode
	cursor *fakeDocNode
}

func (c fakeContent) Root() pretty.Node { return c.root }
func (c fakeContent) CursorNode() (pretty.Node, bool) {
	if c.cursor == nil {
		return nil, false
	}
	return c.cursor, true
}

func TestRenderDocScrollBeginning(t *testing.T) {
	line1 := &fakeDocNode{nt: notation.Text(), text: "[true,", isText: true}
	root := &fakeDocNode{
		nt:       notation.Nest(notation.Child(0), 0, notation.Literal(" false]", style.Plain())),
		children: []*fakeDocNode{line1},
	}
	content := fakeContent{root: root}
	lookup := func(label string) (pane.Content, bool) {
		if label == "main" {
			return content, true
		}
		return nil, false
	}

	screen := newFakeScreen(2, 7)
	note := pane.Doc{Label: "main", Scroll: pane.ScrollBeginning{}, CursorVis: pane.Hide}
	err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 2, Cols: 7}}, note, nil, lookup)
	require.NoErrorf(t, err, "Render")
	assert.EqualValuesf(t, screen.rowString(0, 7), "[true, ", "first line")
	assert.EqualValuesf(t, screen.rowString(1, 7), " false]", "second line")
}

func TestRenderDocUnknownLabel(t *testing.T) {
	screen := newFakeScreen(1, 1)
	note := pane.Doc{Label: "missing"}
	lookup := func(label string) (pane.Content, bool) { return nil, false }
	err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 1, Cols: 1}}, note, nil, lookup)
	require.NotNilf(t, err, "unknown label should error")
}

func TestLiteralPadsAndTruncates(t *testing.T) {
	screen := newFakeScreen(1, 6)
	note := pane.Literal{Text: "hi"}
	err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 1, Cols: 6}}, note, nil, nil)
	require.NoErrorf(t, err, "Render")
	assert.EqualValuesf(t, screen.rowString(0, 6), "hi    ", "short text is space-padded to the region width")

	screen2 := newFakeScreen(1, 3)
	note2 := pane.Literal{Text: "hello"}
	err = pane.Render(screen2, style.Region{Bound: style.Bound{Rows: 1, Cols: 3}}, note2, nil, nil)
	require.NoErrorf(t, err, "Render")
	assert.EqualValuesf(t, screen2.rowString(0, 3), "hel", "long text is truncated to the region width")
}

// fiveLineContent builds a document of 5 one-character lines ("0".."4"),
// each its own row via a Nest chain, with the cursor fixed on line 2 — the
// fixture TestScrollCursorHeightClampsFraction uses to observe scrollOffset's
// clamping (pane/render.go's scrollOffset) purely through Render's output.
func fiveLineContent() fakeContent {
	leaves := make([]*fakeDocNode, 5)
	for i := range leaves {
		leaves[i] = &fakeDocNode{nt: notation.Text(), text: string(rune('0' + i)), isText: true}
	}
	nt := notation.Nest(notation.Child(0), 0,
		notation.Nest(notation.Child(1), 0,
			notation.Nest(notation.Child(2), 0,
				notation.Nest(notation.Child(3), 0, notation.Child(4)))))
	root := &fakeDocNode{nt: nt, children: leaves}
	return fakeContent{root: root, cursor: leaves[2]}
}

// TestScrollCursorHeightClampsFraction exercises ScrollCursorHeight at
// fractions inside, on the boundary of, and outside [0, 1] (spec §8 testable
// property 8: the cursor's row stays within [0, pane_height-1] "for every
// fraction in ℝ"), not just the Fraction:1 case e2e covers.
func TestScrollCursorHeightClampsFraction(t *testing.T) {
	content := fiveLineContent()
	lookup := func(label string) (pane.Content, bool) {
		if label == "main" {
			return content, true
		}
		return nil, false
	}

	cases := []struct {
		fraction float64
		wantTop  string // rows visible, top to bottom, after scrolling
	}{
		{0, "012"},
		{0.5, "123"},
		{-1, "012"},
		{2, "234"},
	}
	for _, c := range cases {
		screen := newFakeScreen(3, 1)
		note := pane.Doc{Label: "main", Scroll: pane.ScrollCursorHeight{Fraction: c.fraction}, CursorVis: pane.Hide}
		err := pane.Render(screen, style.Region{Bound: style.Bound{Rows: 3, Cols: 1}}, note, nil, lookup)
		require.NoErrorf(t, err, "Render fraction %v", c.fraction)

		var got string
		for r := 0; r < 3; r++ {
			got += screen.rowString(r, 1)
		}
		assert.EqualValuesf(t, got, c.wantTop, "fraction %v visible rows", c.fraction)
	}
}

func TestVersionLineIsALiteral(t *testing.T) {
	_, ok := pane.VersionLine().(pane.Literal)
	assert.Truef(t, ok, "VersionLine should build a Literal pane")
}
