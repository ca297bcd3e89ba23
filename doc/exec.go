package doc

import (
	"github.com/synless-go/synless/ast"
	"github.com/synless-go/synless/command"
	"github.com/synless-go/synless/language"
)

func (d *Document) execTreeNav(c command.TreeNav) (inv []command.Command, edit bool, err error) {
	if d.cur.mode != treeMode {
		return nil, false, ErrWrongMode
	}
	switch c.Kind {
	case command.TreeNavLeft:
		i := d.cur.node.Index()
		if i == 0 {
			return nil, false, ErrAtEdge
		}
		parent, _ := d.cur.node.Parent()
		d.cur.node = parent.Child(i - 1)
		return []command.Command{command.Right()}, false, nil

	case command.TreeNavRight:
		i := d.cur.node.Index()
		if i >= d.cur.node.NumSiblings()-1 {
			return nil, false, ErrAtEdge
		}
		parent, _ := d.cur.node.Parent()
		d.cur.node = parent.Child(i + 1)
		return []command.Command{command.Left()}, false, nil

	case command.TreeNavParent:
		if d.cur.node.IsRoot() {
			return nil, false, ErrAtRoot
		}
		i := d.cur.node.Index()
		parent, _ := d.cur.node.Parent()
		d.cur.node = parent
		return []command.Command{command.Child(i)}, false, nil

	case command.TreeNavChild:
		if d.cur.node.IsLeaf() {
			return nil, false, ErrNotBranch
		}
		if c.ChildIndex < 0 || c.ChildIndex >= d.cur.node.NumChildren() {
			return nil, false, ErrChildOutOfRange
		}
		d.cur.node = d.cur.node.Child(c.ChildIndex)
		return []command.Command{command.Parent()}, false, nil

	default:
		return nil, false, ErrUnknownCommand
	}
}

func isFlexibleOrMixed(n ast.Node) bool {
	k := n.Construct().Arity.Kind
	return k == language.Flexible || k == language.Mixed
}

func (d *Document) execTreeCmd(c command.TreeCmd) (inv []command.Command, edit bool, err error) {
	if d.cur.mode != treeMode {
		return nil, false, ErrWrongMode
	}
	switch c.Kind {
	case command.TreeReplace:
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		idx := d.cur.node.Index()
		old, err := parent.ReplaceChild(idx, c.Node)
		if err != nil {
			return nil, false, err
		}
		d.cur.node = c.Node
		return []command.Command{command.Replace(old)}, true, nil

	case command.TreeInsertBefore:
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		if !isFlexibleOrMixed(parent) {
			return nil, false, ErrNotFlexible
		}
		idx := d.cur.node.Index()
		if err := parent.InsertChild(idx, c.Node); err != nil {
			return nil, false, err
		}
		return groupInv(command.Left(), command.Remove(), command.Child(idx)), true, nil

	case command.TreeInsertAfter:
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		if !isFlexibleOrMixed(parent) {
			return nil, false, ErrNotFlexible
		}
		idx := d.cur.node.Index()
		if err := parent.InsertChild(idx+1, c.Node); err != nil {
			return nil, false, err
		}
		return groupInv(command.Right(), command.Remove(), command.Child(idx)), true, nil

	case command.TreeInsertPrepend:
		if !isFlexibleOrMixed(d.cur.node) {
			return nil, false, ErrNotFlexible
		}
		if err := d.cur.node.InsertChild(0, c.Node); err != nil {
			return nil, false, err
		}
		return groupInv(command.Child(0), command.Remove()), true, nil

	case command.TreeInsertPostpend:
		if !isFlexibleOrMixed(d.cur.node) {
			return nil, false, ErrNotFlexible
		}
		n := d.cur.node.NumChildren()
		if err := d.cur.node.InsertChild(n, c.Node); err != nil {
			return nil, false, err
		}
		return groupInv(command.Child(n), command.Remove()), true, nil

	case command.TreeInsertHoleBefore:
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		if !isFlexibleOrMixed(parent) {
			return nil, false, ErrNotFlexible
		}
		idx := d.cur.node.Index()
		hole := d.newHole()
		if err := parent.InsertChild(idx, hole); err != nil {
			return nil, false, err
		}
		d.cur.node = hole
		return groupInv(command.Remove(), command.Child(idx)), true, nil

	case command.TreeInsertHoleAfter:
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		if !isFlexibleOrMixed(parent) {
			return nil, false, ErrNotFlexible
		}
		idx := d.cur.node.Index()
		hole := d.newHole()
		if err := parent.InsertChild(idx+1, hole); err != nil {
			return nil, false, err
		}
		d.cur.node = hole
		return groupInv(command.Remove(), command.Child(idx)), true, nil

	case command.TreeInsertHolePrepend:
		if !isFlexibleOrMixed(d.cur.node) {
			return nil, false, ErrNotFlexible
		}
		hole := d.newHole()
		if err := d.cur.node.InsertChild(0, hole); err != nil {
			return nil, false, err
		}
		d.cur.node = hole
		return []command.Command{command.Remove()}, true, nil

	case command.TreeInsertHolePostpend:
		if !isFlexibleOrMixed(d.cur.node) {
			return nil, false, ErrNotFlexible
		}
		n := d.cur.node.NumChildren()
		hole := d.newHole()
		if err := d.cur.node.InsertChild(n, hole); err != nil {
			return nil, false, err
		}
		d.cur.node = hole
		return []command.Command{command.Remove()}, true, nil

	case command.TreeRemove:
		inv, _, edit, err := d.removeCursorNode()
		return inv, edit, err

	case command.TreeClear:
		if !isFlexibleOrMixed(d.cur.node) {
			return nil, false, ErrNotFlexible
		}
		n := d.cur.node.NumChildren()
		removed := make([]ast.Node, n)
		for i := 0; i < n; i++ {
			removed[i] = d.cur.node.Child(i)
		}
		for i := 0; i < n; i++ {
			if _, err := d.cur.node.RemoveChild(0); err != nil {
				return nil, false, err
			}
		}
		reinserts := make([]command.Command, n)
		for i, r := range removed {
			reinserts[i] = command.InsertPostpend(r)
		}
		if n == 0 {
			return nil, false, nil
		}
		return groupInv(reinserts...), true, nil

	default:
		return nil, false, ErrUnknownCommand
	}
}

// removeCursorNode removes the cursor node from its flexible/mixed parent,
// moving the cursor to the parent, and returns the detached node alongside
// the inverse commands that would reinsert it.
func (d *Document) removeCursorNode() (inv []command.Command, removed ast.Node, edit bool, err error) {
	parent, ok := d.cur.node.Parent()
	if !ok {
		return nil, ast.Node{}, false, ErrNoParent
	}
	if !isFlexibleOrMixed(parent) {
		return nil, ast.Node{}, false, ErrNotFlexible
	}
	idx := d.cur.node.Index()
	removed, err = parent.RemoveChild(idx)
	if err != nil {
		return nil, ast.Node{}, false, err
	}
	d.cur.node = parent

	if idx == 0 {
		inv = groupInv(command.InsertPrepend(removed), command.Child(0))
	} else {
		inv = groupInv(command.Child(idx-1), command.InsertAfter(removed), command.Right())
	}
	return inv, removed, true, nil
}

// groupInv wraps a primitive's multi-step inverse in a single Meta.Group
// command so that, when the whole recent group it belongs to is later
// replayed in reverse (undo) or re-replayed in reverse again (redo), these
// steps stay in their original relative order: only the top-level sequence
// of recorded inverses reverses, never the internal steps of a single
// inverse.
func groupInv(cmds ...command.Command) []command.Command {
	if len(cmds) == 1 {
		return cmds
	}
	return []command.Command{command.GroupCmds(cmds...)}
}

func (d *Document) execTextNav(c command.TextNav) (inv []command.Command, edit bool, err error) {
	switch c.Kind {
	case command.TextNavLeft:
		if d.cur.mode != textMode {
			return nil, false, ErrWrongMode
		}
		if d.cur.index == 0 {
			return nil, false, ErrAtEdge
		}
		d.cur.index--
		return []command.Command{command.TextRight()}, false, nil

	case command.TextNavRight:
		if d.cur.mode != textMode {
			return nil, false, ErrWrongMode
		}
		text, _ := d.cur.node.Text()
		if d.cur.index >= len([]rune(text)) {
			return nil, false, ErrAtEdge
		}
		d.cur.index++
		return []command.Command{command.TextLeft()}, false, nil

	case command.TextNavTreeMode:
		if d.cur.mode != textMode {
			return nil, false, ErrWrongMode
		}
		d.cur.mode = treeMode
		d.cur.index = 0
		return []command.Command{command.EnterText()}, false, nil

	case command.TextNavEnter:
		if d.cur.mode != treeMode {
			return nil, false, ErrWrongMode
		}
		if !d.cur.node.IsLeaf() {
			return nil, false, ErrNotLeaf
		}
		d.cur.mode = textMode
		d.cur.index = 0
		return []command.Command{command.TreeMode()}, false, nil

	default:
		return nil, false, ErrUnknownCommand
	}
}

func (d *Document) execTextCmd(c command.TextCmd) (inv []command.Command, edit bool, err error) {
	if d.cur.mode != textMode {
		return nil, false, ErrWrongMode
	}
	text, _ := d.cur.node.Text()
	runes := []rune(text)

	switch c.Kind {
	case command.TextInsertChar:
		out := make([]rune, 0, len(runes)+1)
		out = append(out, runes[:d.cur.index]...)
		out = append(out, c.Char)
		out = append(out, runes[d.cur.index:]...)
		if err := d.cur.node.SetText(string(out)); err != nil {
			return nil, false, err
		}
		d.cur.index++
		return []command.Command{command.DeleteCharBackward()}, true, nil

	case command.TextDeleteCharBackward:
		if d.cur.index == 0 {
			return nil, false, ErrAtEdge
		}
		removed := runes[d.cur.index-1]
		out := make([]rune, 0, len(runes)-1)
		out = append(out, runes[:d.cur.index-1]...)
		out = append(out, runes[d.cur.index:]...)
		if err := d.cur.node.SetText(string(out)); err != nil {
			return nil, false, err
		}
		d.cur.index--
		return []command.Command{command.InsertChar(removed)}, true, nil

	case command.TextDeleteCharForward:
		if d.cur.index >= len(runes) {
			return nil, false, ErrAtEdge
		}
		removed := runes[d.cur.index]
		out := make([]rune, 0, len(runes)-1)
		out = append(out, runes[:d.cur.index]...)
		out = append(out, runes[d.cur.index+1:]...)
		if err := d.cur.node.SetText(string(out)); err != nil {
			return nil, false, err
		}
		return groupInv(command.InsertChar(removed), command.TextLeft()), true, nil

	default:
		return nil, false, ErrUnknownCommand
	}
}

// pushClipboard is the internal inverse of EditorPopClipboard: pushing a
// specific node back is not part of the public EditorCmd taxonomy (only Cut
// and Copy push, and always from the cursor), so it is modeled as an
// EditorCmd value carrying a payload that only executePrimitive's
// EditorCmd case below ever constructs.
func pushClipboard(n ast.Node) command.EditorCmd {
	return command.EditorCmd{Kind: editorRestorePush, Node: n}
}

const editorRestorePush command.EditorCmdKind = -1

func (d *Document) execEditorCmd(c command.EditorCmd) (inv []command.Command, edit bool, err error) {
	switch c.Kind {
	case command.EditorCut:
		if d.cur.mode != treeMode {
			return nil, false, ErrWrongMode
		}
		reinsert, removed, _, err := d.removeCursorNode()
		if err != nil {
			return nil, false, err
		}
		d.clipboard = append(d.clipboard, removed)
		inv := append(reinsert, command.PopClipboard())
		return inv, true, nil

	case command.EditorCopy:
		if d.cur.mode != treeMode {
			return nil, false, ErrWrongMode
		}
		dup, err := d.cur.node.Duplicate()
		if err != nil {
			return nil, false, err
		}
		d.clipboard = append(d.clipboard, dup)
		return []command.Command{command.PopClipboard()}, false, nil

	case command.EditorPasteSwap:
		if d.cur.mode != treeMode {
			return nil, false, ErrWrongMode
		}
		if len(d.clipboard) == 0 {
			return nil, false, ErrClipboardEmpty
		}
		parent, ok := d.cur.node.Parent()
		if !ok {
			return nil, false, ErrNoParent
		}
		top := d.clipboard[len(d.clipboard)-1]
		idx := d.cur.node.Index()
		old, err := parent.ReplaceChild(idx, top)
		if err != nil {
			return nil, false, err
		}
		d.clipboard[len(d.clipboard)-1] = old
		d.cur.node = top
		return []command.Command{command.PasteSwap()}, true, nil

	case command.EditorPopClipboard:
		if len(d.clipboard) == 0 {
			return nil, false, ErrClipboardEmpty
		}
		popped := d.clipboard[len(d.clipboard)-1]
		d.clipboard = d.clipboard[:len(d.clipboard)-1]
		return []command.Command{pushClipboard(popped)}, false, nil

	case editorRestorePush:
		d.clipboard = append(d.clipboard, c.Node)
		return []command.Command{command.PopClipboard()}, false, nil

	default:
		return nil, false, ErrUnknownCommand
	}
}
