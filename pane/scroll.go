package pane

import "github.com/synless-go/synless/style"

// Scroll picks which line of a Doc pane's printed document appears at the
// pane's top (spec §4.6).
type Scroll interface {
	scroll()
}

// ScrollFixed places pos at the pane's top-left corner.
type ScrollFixed struct {
	Pos style.Pos
}

func (ScrollFixed) scroll() {}

// ScrollBeginning is shorthand for ScrollFixed{Pos: style.Pos{}}.
type ScrollBeginning struct{}

func (ScrollBeginning) scroll() {}

// ScrollCursorHeight places the cursor's row at height (1-Fraction) *
// (pane_height - 1) from the pane's top, clamped to [0, pane_height-1] and
// saturating at the document's top (it never scrolls past line 0).
type ScrollCursorHeight struct {
	Fraction float64
}

func (ScrollCursorHeight) scroll() {}
