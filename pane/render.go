package pane

import (
	"errors"
	"math"

	"github.com/synless-go/synless/pretty"
	"github.com/synless-go/synless/style"
)

// Content is the document a Doc pane renders: its root (everything pretty
// needs to print it) and, if one exists, the node the cursor sits on (used
// to resolve ScrollCursorHeight and to shade the cursor region).
type Content interface {
	Root() pretty.Node
	CursorNode() (pretty.Node, bool)
}

// Lookup resolves the label named by a Doc pane to its Content.
type Lookup func(label string) (Content, bool)

// ErrContent is returned when a Doc pane names a label Lookup doesn't
// resolve (spec §7).
var ErrContent = errors.New("pane: no content for label")

// Render walks note, drawing onto screen within region. parentStyle applies
// to any sub-tree that doesn't specify its own style. lookup resolves Doc
// panes' labels to content.
func Render(screen style.Screen, region style.Region, note Notation, parentStyle *style.Style, lookup Lookup) error {
	if region.Bound.Rows == 0 || region.Bound.Cols == 0 {
		return nil
	}

	switch note := note.(type) {
	case Horz:
		sizes := make([]Size, len(note.Panes))
		for i, p := range note.Panes {
			sizes[i] = p.Size
		}
		widths, err := divvy(region.Bound.Cols, sizes, "horizontal")
		if err != nil {
			return err
		}
		sty := note.Style
		if sty == nil {
			sty = parentStyle
		}
		col := region.Pos.Col
		for i, w := range widths {
			sub := style.Region{Pos: style.Pos{Row: region.Pos.Row, Col: col}, Bound: style.Bound{Rows: region.Bound.Rows, Cols: w}}
			if err := Render(screen, sub, note.Panes[i].Pane, sty, lookup); err != nil {
				return err
			}
			col += w
		}
		return nil

	case Vert:
		sizes := make([]Size, len(note.Panes))
		for i, p := range note.Panes {
			sizes[i] = p.Size
		}
		heights, err := divvy(region.Bound.Rows, sizes, "vertical")
		if err != nil {
			return err
		}
		sty := note.Style
		if sty == nil {
			sty = parentStyle
		}
		row := region.Pos.Row
		for i, h := range heights {
			sub := style.Region{Pos: style.Pos{Row: row, Col: region.Pos.Col}, Bound: style.Bound{Rows: h, Cols: region.Bound.Cols}}
			if err := Render(screen, sub, note.Panes[i].Pane, sty, lookup); err != nil {
				return err
			}
			row += h
		}
		return nil

	case Fill:
		sty := note.Style
		if sty == nil {
			sty = parentStyle
		}
		var plain style.Style
		if sty != nil {
			plain = *sty
		} else {
			plain = style.Plain()
		}
		line := make([]rune, region.Bound.Cols)
		for i := range line {
			line[i] = note.Ch
		}
		text := string(line)
		for r := 0; r < region.Bound.Rows; r++ {
			if err := screen.Print(style.Pos{Row: region.Pos.Row + r, Col: region.Pos.Col}, text, plain); err != nil {
				return &style.ErrScreen{Op: "Print", Err: err}
			}
		}
		return nil

	case Literal:
		sty := note.Style
		if sty == nil {
			sty = parentStyle
		}
		var plain style.Style
		if sty != nil {
			plain = *sty
		} else {
			plain = style.Plain()
		}
		runes := []rune(note.Text)
		if len(runes) > region.Bound.Cols {
			runes = runes[:region.Bound.Cols]
		}
		text := string(runes)
		for len(runes) < region.Bound.Cols {
			text += " "
			runes = append(runes, ' ')
		}
		for r := 0; r < region.Bound.Rows; r++ {
			if err := screen.Print(style.Pos{Row: region.Pos.Row + r, Col: region.Pos.Col}, text, plain); err != nil {
				return &style.ErrScreen{Op: "Print", Err: err}
			}
		}
		return nil

	case Doc:
		content, ok := lookup(note.Label)
		if !ok {
			return ErrContent
		}
		return renderDoc(screen, region, note, content)

	default:
		return nil
	}
}

func renderDoc(screen style.Screen, region style.Region, note Doc, content Content) error {
	width, height := region.Bound.Cols, region.Bound.Rows
	root := content.Root()

	cursor, hasCursor := content.CursorNode()
	var cursorRow, cursorCol int
	var lines []pretty.Line
	var err error
	if hasCursor {
		lines, cursorRow, cursorCol, hasCursor, err = pretty.Locate(root, width, cursor)
	} else {
		lines, err = pretty.Print(root, width)
	}
	if err != nil {
		return err
	}

	top, col := scrollOffset(note.Scroll, height, cursorRow, hasCursor)

	for r := 0; r < height; r++ {
		srcRow := top + r
		if srcRow < 0 || srcRow >= len(lines) {
			continue
		}
		line := sliceLine(lines[srcRow], col)
		c := region.Pos.Col
		for _, run := range line {
			if c-region.Pos.Col >= width {
				break
			}
			if err := screen.Print(style.Pos{Row: region.Pos.Row + r, Col: c}, run.Text, run.Style); err != nil {
				return &style.ErrScreen{Op: "Print", Err: err}
			}
			c += len([]rune(run.Text))
		}
	}

	if note.CursorVis == Show && hasCursor {
		visRow := cursorRow - top
		visCol := cursorCol - col
		if visRow >= 0 && visRow < height && visCol >= 0 && visCol < width {
			reg := style.Region{
				Pos:   style.Pos{Row: region.Pos.Row + visRow, Col: region.Pos.Col + visCol},
				Bound: style.Bound{Rows: 1, Cols: 1},
			}
			if err := screen.Shade(reg, 0); err != nil {
				return &style.ErrScreen{Op: "Shade", Err: err}
			}
		}
	}
	return nil
}

// scrollOffset resolves a Scroll strategy into the (row, col) of the
// document that should appear at the pane's top-left.
func scrollOffset(s Scroll, height, cursorRow int, hasCursor bool) (row, col int) {
	switch s := s.(type) {
	case ScrollBeginning, nil:
		return 0, 0
	case ScrollFixed:
		return s.Pos.Row, s.Pos.Col
	case ScrollCursorHeight:
		if !hasCursor || height <= 0 {
			return 0, 0
		}
		offset := int(math.Round((1 - s.Fraction) * float64(height-1)))
		if offset < 0 {
			offset = 0
		}
		if offset > height-1 {
			offset = height - 1
		}
		top := cursorRow - offset
		if top < 0 {
			top = 0
		}
		return top, 0
	default:
		return 0, 0
	}
}

// sliceLine drops the first col runes of line, splitting or dropping runs as
// needed, for Scroll strategies that scroll horizontally.
func sliceLine(line pretty.Line, col int) pretty.Line {
	if col <= 0 {
		return line
	}
	var out pretty.Line
	skip := col
	for _, run := range line {
		runes := []rune(run.Text)
		if skip >= len(runes) {
			skip -= len(runes)
			continue
		}
		out = append(out, pretty.StyledRun{Text: string(runes[skip:]), Style: run.Style})
		skip = 0
	}
	return out
}
