// Package doc implements the editable document: an AST plus a cursor, three
// undo groups, and a clipboard stack, executing [command.Command] values
// against them per spec §4.7's execution protocol (each primitive command
// computes its own inverse; Group/Undo/Redo/EndGroup compose those inverses
// into atomic units). Grounded on editor/src/doc.rs (original_source) for
// the undo/redo mechanics (UndoGroup.contains_edit, take_recent, and
// inverse commands replayed in reverse order via Rust's
// Rev<vec::IntoIter<Command>>), generalized to the edit commands
// (Replace/Insert*/Remove/Clear/Cut/Copy/PasteSwap/PopClipboard) that
// editor/src/doc.rs itself left as `unimplemented!()`.
package doc

import (
	"errors"
	"fmt"

	"github.com/synless-go/synless/ast"
	"github.com/synless-go/synless/command"
	"github.com/synless-go/synless/internal/assert"
	"github.com/synless-go/synless/pretty"
)

// cursorMode distinguishes the cursor's two positions (spec §4.7 "Cursor
// invariants").
type cursorMode int

const (
	treeMode cursorMode = iota
	textMode
)

// cursor is the document's current position: a tree-mode node, or (in text
// mode) a text leaf plus a character index.
type cursor struct {
	mode  cursorMode
	node  ast.Node
	index int // text mode only
}

// UndoGroup is a sequence of inverse commands recorded while executing some
// unit of work, plus whether that unit mutated the tree.
type UndoGroup struct {
	containsEdit bool
	commands     []command.Command
}

// Document is a single editable tree: an AST, a cursor, undo/redo stacks,
// and a clipboard.
type Document struct {
	label     string
	tree      *ast.Tree
	root      ast.Node
	cur       cursor
	recent    UndoGroup
	undoStack []UndoGroup
	redoStack []UndoGroup
	clipboard []ast.Node
}

// New creates a Document named label over root, with the cursor on root in
// tree mode.
func New(label string, tree *ast.Tree, root ast.Node) *Document {
	return &Document{
		label: label,
		tree:  tree,
		root:  root,
		cur:   cursor{mode: treeMode, node: root},
	}
}

// Label returns the document's name, as used by package pane and package
// bookmark to disambiguate it from other open documents.
func (d *Document) Label() string { return d.label }

// Root implements [pane.Content]: the node the pretty printer lays out.
func (d *Document) Root() pretty.Node { return d.root }

// CursorNode implements [pane.Content]: the node a pane's cursor-aware
// scroll strategies locate.
func (d *Document) CursorNode() (pretty.Node, bool) { return d.cur.node, true }

// InTextMode reports whether the cursor is currently in text mode.
func (d *Document) InTextMode() bool { return d.cur.mode == textMode }

// TreeCursor returns the node the tree-mode cursor is on, and whether the
// cursor is in tree mode at all.
func (d *Document) TreeCursor() (ast.Node, bool) {
	if d.cur.mode != treeMode {
		return ast.Node{}, false
	}
	return d.cur.node, true
}

// TextCursor returns the leaf the text-mode cursor is in and its character
// index, and whether the cursor is in text mode at all.
func (d *Document) TextCursor() (ast.Node, int, bool) {
	if d.cur.mode != textMode {
		return ast.Node{}, 0, false
	}
	return d.cur.node, d.cur.index, true
}

// Clipboard returns the clipboard stack, top last.
func (d *Document) Clipboard() []ast.Node {
	return append([]ast.Node(nil), d.clipboard...)
}

var (
	ErrWrongMode       = errors.New("doc: command does not apply to the cursor's current mode")
	ErrAtEdge          = errors.New("doc: cursor is already at that edge")
	ErrAtRoot          = errors.New("doc: cursor is at the document root")
	ErrNotBranch       = errors.New("doc: cursor is not on a branch")
	ErrNotLeaf         = errors.New("doc: cursor is not on a text leaf")
	ErrChildOutOfRange = errors.New("doc: child index out of range")
	ErrNotFlexible     = errors.New("doc: construct does not accept insertion or removal")
	ErrNoParent        = errors.New("doc: cursor node has no parent to edit relative to")
	ErrClipboardEmpty  = errors.New("doc: clipboard is empty")
	ErrNothingToUndo   = errors.New("doc: undo stack is empty")
	ErrNothingToRedo   = errors.New("doc: redo stack is empty")
	ErrUnknownCommand  = errors.New("doc: unrecognized command")
)

// Execute runs cmd against the document. On success any mutation's inverse
// is appended to the in-flight recent group. On failure the document is
// left exactly as it was: a panic from deep within ast/forest (a
// programmer-error Fault, spec §7) is recovered and converted into an error
// at the same boundary as an ordinary command failure, and any commands
// already applied earlier in the same Group are rolled back by executing
// their accumulated inverses in reverse.
func (d *Document) Execute(cmd command.Command) error {
	return d.dispatch(cmd)
}

func (d *Document) dispatch(cmd command.Command) error {
	if m, ok := cmd.(command.Meta); ok {
		switch m.Kind {
		case command.MetaGroup:
			return d.runSequence(m.Commands)
		case command.MetaUndo:
			return d.undo()
		case command.MetaRedo:
			return d.redo()
		case command.MetaEndGroup:
			d.endGroup()
			return nil
		default:
			return ErrUnknownCommand
		}
	}

	inv, edit, err := d.executePrimitiveSafe(cmd)
	if err != nil {
		return err
	}
	d.recent.commands = append(d.recent.commands, inv...)
	d.recent.containsEdit = d.recent.containsEdit || edit
	return nil
}

// runSequence executes cmds in order (spec §4.7 rule 3's Group semantics),
// rolling back everything it appended to recent if any command fails.
func (d *Document) runSequence(cmds []command.Command) error {
	start := len(d.recent.commands)
	startEdit := d.recent.containsEdit
	for _, c := range cmds {
		if err := d.Execute(c); err != nil {
			d.rollback(start)
			d.recent.containsEdit = startEdit
			return err
		}
	}
	return nil
}

// replayReversed executes cmds in reverse order, the shape a stored
// UndoGroup's commands (inverses recorded in forward order of generation)
// must be replayed in to actually invert the original group.
func (d *Document) replayReversed(cmds []command.Command) error {
	rev := make([]command.Command, len(cmds))
	for i, c := range cmds {
		rev[len(cmds)-1-i] = c
	}
	return d.runSequence(rev)
}

// rollback undoes everything appended to recent.commands since start, by
// executing those (already-inverse) commands in reverse, then truncates
// recent.commands back to start.
func (d *Document) rollback(start int) {
	if start >= len(d.recent.commands) {
		return
	}
	added := append([]command.Command(nil), d.recent.commands[start:]...)
	for i := len(added) - 1; i >= 0; i-- {
		d.dispatch(added[i])
	}
	d.recent.commands = d.recent.commands[:start]
}

// endGroup moves recent onto the undo stack iff it contains an edit,
// discarding it otherwise, and clears the redo stack iff it did (spec §4.7
// rule 4).
func (d *Document) endGroup() {
	if d.recent.containsEdit {
		d.undoStack = append(d.undoStack, d.recent)
		d.redoStack = nil
	}
	d.recent = UndoGroup{}
}

// undo pops the top undo group and replays it (in reverse), moving the
// resulting recent group onto the redo stack (spec §4.7 rule 5). Grounded
// on editor/src/doc.rs's Doc::undo: the group is popped unconditionally, so
// a replay failure loses it rather than restoring it to the stack,
// mirroring the original exactly.
func (d *Document) undo() error {
	d.recent = UndoGroup{}
	if len(d.undoStack) == 0 {
		return ErrNothingToUndo
	}
	group := d.undoStack[len(d.undoStack)-1]
	d.undoStack = d.undoStack[:len(d.undoStack)-1]
	if err := d.replayReversed(group.commands); err != nil {
		return err
	}
	redone := d.recent
	d.recent = UndoGroup{}
	d.redoStack = append(d.redoStack, redone)
	return nil
}

// redo is undo's mirror image (spec §4.7 rule 6).
func (d *Document) redo() error {
	d.recent = UndoGroup{}
	if len(d.redoStack) == 0 {
		return ErrNothingToRedo
	}
	group := d.redoStack[len(d.redoStack)-1]
	d.redoStack = d.redoStack[:len(d.redoStack)-1]
	if err := d.replayReversed(group.commands); err != nil {
		return err
	}
	undone := d.recent
	d.recent = UndoGroup{}
	d.undoStack = append(d.undoStack, undone)
	return nil
}

// executePrimitiveSafe wraps executePrimitive with a recover so that a
// Fault panic raised deep within ast/forest (an invariant violation, not a
// recoverable editing mistake) surfaces as an ordinary error at the one
// boundary where the document touches the tree, rather than unwinding past
// whatever Group or rollback bookkeeping is in progress.
func (d *Document) executePrimitiveSafe(cmd command.Command) (inv []command.Command, edit bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			inv, edit, err = nil, false, fmt.Errorf("doc: command panicked: %v", r)
		}
	}()
	return d.executePrimitive(cmd)
}

func (d *Document) executePrimitive(cmd command.Command) (inv []command.Command, edit bool, err error) {
	switch c := cmd.(type) {
	case command.TreeNav:
		return d.execTreeNav(c)
	case command.TreeCmd:
		return d.execTreeCmd(c)
	case command.TextNav:
		return d.execTextNav(c)
	case command.TextCmd:
		return d.execTextCmd(c)
	case command.EditorCmd:
		return d.execEditorCmd(c)
	default:
		return nil, false, ErrUnknownCommand
	}
}

func (d *Document) newHole() ast.Node {
	h, err := d.tree.NewBranch("hole", nil)
	assert.That(err == nil, "doc: failed to build a hole node: %v", err)
	return h
}
