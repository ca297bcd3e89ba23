// Package command defines the tagged command taxonomy a [doc.Document]
// executes (spec §4.7): six groups, each its own Go type implementing the
// Command marker interface (the same sum-type-via-interface idiom package
// notation uses for its own algebra), each carrying its own Kind enum in the
// teacher's token.Kind style.
package command

import "github.com/synless-go/synless/ast"

// Command is any single command a Document can execute.
type Command interface {
	command()
}

// TreeNavKind enumerates TreeNav's variants.
type TreeNavKind int

const (
	TreeNavLeft TreeNavKind = iota
	TreeNavRight
	TreeNavParent
	TreeNavChild
)

func (k TreeNavKind) String() string {
	switch k {
	case TreeNavLeft:
		return "Left"
	case TreeNavRight:
		return "Right"
	case TreeNavParent:
		return "Parent"
	case TreeNavChild:
		return "Child"
	default:
		return "Unknown"
	}
}

// TreeNav moves the tree-mode cursor. ChildIndex is only meaningful for
// TreeNavChild.
type TreeNav struct {
	Kind       TreeNavKind
	ChildIndex int
}

func (TreeNav) command() {}

// Left, Right, and Parent build the corresponding TreeNav command.
func Left() TreeNav   { return TreeNav{Kind: TreeNavLeft} }
func Right() TreeNav  { return TreeNav{Kind: TreeNavRight} }
func Parent() TreeNav { return TreeNav{Kind: TreeNavParent} }

// Child builds the TreeNav command that descends to child i.
func Child(i int) TreeNav { return TreeNav{Kind: TreeNavChild, ChildIndex: i} }

// TreeCmdKind enumerates TreeCmd's variants.
type TreeCmdKind int

const (
	TreeReplace TreeCmdKind = iota
	TreeInsertBefore
	TreeInsertAfter
	TreeInsertPrepend
	TreeInsertPostpend
	TreeInsertHoleBefore
	TreeInsertHoleAfter
	TreeInsertHolePrepend
	TreeInsertHolePostpend
	TreeRemove
	TreeClear
)

// TreeCmd edits the tree around the tree-mode cursor. Node is only
// meaningful for Replace and the non-hole Insert* variants.
type TreeCmd struct {
	Kind TreeCmdKind
	Node ast.Node
}

func (TreeCmd) command() {}

// Replace builds the TreeCmd that replaces the cursor node with node.
func Replace(node ast.Node) TreeCmd { return TreeCmd{Kind: TreeReplace, Node: node} }

// InsertBefore, InsertAfter, InsertPrepend, and InsertPostpend build the
// TreeCmd that inserts node at the named position relative to the cursor
// (Before/After) or the cursor's flexible/mixed parent (Prepend/Postpend).
func InsertBefore(node ast.Node) TreeCmd   { return TreeCmd{Kind: TreeInsertBefore, Node: node} }
func InsertAfter(node ast.Node) TreeCmd    { return TreeCmd{Kind: TreeInsertAfter, Node: node} }
func InsertPrepend(node ast.Node) TreeCmd  { return TreeCmd{Kind: TreeInsertPrepend, Node: node} }
func InsertPostpend(node ast.Node) TreeCmd { return TreeCmd{Kind: TreeInsertPostpend, Node: node} }

// InsertHoleBefore, InsertHoleAfter, InsertHolePrepend, and
// InsertHolePostpend build the TreeCmd that inserts a fresh hole at the
// named position and moves the cursor onto it.
func InsertHoleBefore() TreeCmd   { return TreeCmd{Kind: TreeInsertHoleBefore} }
func InsertHoleAfter() TreeCmd    { return TreeCmd{Kind: TreeInsertHoleAfter} }
func InsertHolePrepend() TreeCmd  { return TreeCmd{Kind: TreeInsertHolePrepend} }
func InsertHolePostpend() TreeCmd { return TreeCmd{Kind: TreeInsertHolePostpend} }

// Remove builds the TreeCmd that removes the cursor node from its flexible
// or mixed parent.
func Remove() TreeCmd { return TreeCmd{Kind: TreeRemove} }

// Clear builds the TreeCmd that empties the cursor node's flexible or mixed
// children.
func Clear() TreeCmd { return TreeCmd{Kind: TreeClear} }

// TextNavKind enumerates TextNav's variants.
type TextNavKind int

const (
	TextNavLeft TextNavKind = iota
	TextNavRight
	TextNavTreeMode
	TextNavEnter
)

// TextNav moves the text-mode cursor, switches back to tree mode, or enters
// text mode on the tree-mode cursor's text leaf.
type TextNav struct {
	Kind TextNavKind
}

func (TextNav) command() {}

func TextLeft() TextNav  { return TextNav{Kind: TextNavLeft} }
func TextRight() TextNav { return TextNav{Kind: TextNavRight} }
func TreeMode() TextNav  { return TextNav{Kind: TextNavTreeMode} }

// EnterText builds the TextNav command that switches the tree-mode cursor
// (which must be on a text leaf) into text mode, at index 0.
func EnterText() TextNav { return TextNav{Kind: TextNavEnter} }

// TextCmdKind enumerates TextCmd's variants.
type TextCmdKind int

const (
	TextInsertChar TextCmdKind = iota
	TextDeleteCharBackward
	TextDeleteCharForward
)

// TextCmd edits the text leaf the text-mode cursor is in. Char is only
// meaningful for InsertChar.
type TextCmd struct {
	Kind TextCmdKind
	Char rune
}

func (TextCmd) command() {}

// InsertChar builds the TextCmd that inserts ch before the cursor.
func InsertChar(ch rune) TextCmd { return TextCmd{Kind: TextInsertChar, Char: ch} }

// DeleteCharBackward and DeleteCharForward build the corresponding TextCmd.
func DeleteCharBackward() TextCmd { return TextCmd{Kind: TextDeleteCharBackward} }
func DeleteCharForward() TextCmd  { return TextCmd{Kind: TextDeleteCharForward} }

// EditorCmdKind enumerates EditorCmd's variants.
type EditorCmdKind int

const (
	EditorCut EditorCmdKind = iota
	EditorCopy
	EditorPasteSwap
	EditorPopClipboard
)

// EditorCmd operates on the clipboard stack. Node is unset by every
// constructor below; it carries the node for package doc's internal
// clipboard-restoring inverse.
type EditorCmd struct {
	Kind EditorCmdKind
	Node ast.Node
}

func (EditorCmd) command() {}

func Cut() EditorCmd          { return EditorCmd{Kind: EditorCut} }
func Copy() EditorCmd         { return EditorCmd{Kind: EditorCopy} }
func PasteSwap() EditorCmd    { return EditorCmd{Kind: EditorPasteSwap} }
func PopClipboard() EditorCmd { return EditorCmd{Kind: EditorPopClipboard} }

// MetaKind enumerates Meta's variants.
type MetaKind int

const (
	MetaGroup MetaKind = iota
	MetaUndo
	MetaRedo
	MetaEndGroup
)

// Meta is a command that controls execution itself rather than editing a
// document directly. Commands is only meaningful for Group.
type Meta struct {
	Kind     MetaKind
	Commands []Command
}

func (Meta) command() {}

// GroupCmds builds the Meta command that executes cmds as one atomic group
// (spec §4.7 rule 3).
func GroupCmds(cmds ...Command) Meta { return Meta{Kind: MetaGroup, Commands: cmds} }

func Undo() Meta     { return Meta{Kind: MetaUndo} }
func Redo() Meta     { return Meta{Kind: MetaRedo} }
func EndGroup() Meta { return Meta{Kind: MetaEndGroup} }
