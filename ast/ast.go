// Package ast is the typed view over a forest tree: it pairs each
// [forest.Forest] node with its language construct, maintains a
// bottom-to-top cache of each branch's expanded notation and measured
// [notation.Requirements], and dispatches mutation operations according to
// a construct's arity kind (spec §3 "Sorts, Arities, Constructs").
package ast

import (
	"fmt"

	"github.com/synless-go/synless/forest"
	"github.com/synless-go/synless/internal/assert"
	"github.com/synless-go/synless/language"
	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/pretty"
)

// branchData is the per-branch payload stored in the underlying forest: the
// construct name, plus a lazily computed, invalidation-cleared cache of
// this node's Repeat-expanded notation and measured Requirements.
type branchData struct {
	construct string
	expanded  notation.Notation
	bounds    *notation.Requirements
}

// leafData is the per-leaf payload: the construct name and the text
// buffer. Leaf Requirements are cheap enough (no children to combine) that
// they are recomputed on every access rather than cached.
type leafData struct {
	construct string
	text      string
}

// Tree is a single syntax tree together with the language it is written in
// and the notation set used to print it.
type Tree struct {
	forest    *forest.Forest[branchData, leafData]
	lang      *language.Language
	notations *language.NotationSet
}

// NewTree creates an empty Tree for lang, printed according to notations.
func NewTree(lang *language.Language, notations *language.NotationSet) *Tree {
	return &Tree{
		forest:    forest.New[branchData, leafData](),
		lang:      lang,
		notations: notations,
	}
}

// Language returns the tree's language.
func (t *Tree) Language() *language.Language {
	return t.lang
}

// LiveCount returns the number of nodes currently reachable in the
// underlying forest (spec §8 property 3 "Forest no-leak").
func (t *Tree) LiveCount() int {
	return t.forest.LiveCount()
}

// ErrArity is returned when a mutation would violate a construct's arity.
type ErrArity struct {
	Construct string
	Msg       string
}

func (e *ErrArity) Error() string {
	return fmt.Sprintf("construct %q: %s", e.Construct, e.Msg)
}

// ErrSort is returned when a child's sort is not accepted by its intended
// position.
type ErrSort struct {
	Construct string
	Want, Got language.Sort
}

func (e *ErrSort) Error() string {
	return fmt.Sprintf("construct %q: expected sort %v, got %v", e.Construct, e.Want, e.Got)
}

// NewLeaf creates a detached text leaf of the given construct, which must
// have Texty arity.
func (t *Tree) NewLeaf(construct, text string) (Node, error) {
	c, err := t.lang.LookupConstruct(construct)
	if err != nil {
		return Node{}, err
	}
	if c.Arity.Kind != language.Texty {
		return Node{}, &ErrArity{Construct: construct, Msg: "is not a text construct"}
	}
	id := t.forest.NewLeaf(leafData{construct: construct, text: text})
	return Node{tree: t, id: id}, nil
}

// NewBranch creates a detached branch of the given construct over children,
// which must satisfy the construct's arity and sorts.
func (t *Tree) NewBranch(construct string, children []Node) (Node, error) {
	c, err := t.lang.LookupConstruct(construct)
	if err != nil {
		return Node{}, err
	}
	if err := checkArity(c, len(children), func(i int) language.Sort { return children[i].Sort() }); err != nil {
		return Node{}, err
	}
	ids := make([]forest.NodeID, len(children))
	for i, ch := range children {
		ids[i] = ch.id
	}
	id := t.forest.NewBranch(branchData{construct: construct}, ids)
	return Node{tree: t, id: id}, nil
}

func checkArity(c language.Construct, n int, sortAt func(i int) language.Sort) error {
	switch c.Arity.Kind {
	case language.Fixed:
		if n != len(c.Arity.Sorts) {
			return &ErrArity{Construct: c.Name, Msg: fmt.Sprintf("wants %d children, got %d", len(c.Arity.Sorts), n)}
		}
		for i, want := range c.Arity.Sorts {
			if got := sortAt(i); !want.Accepts(got) {
				return &ErrSort{Construct: c.Name, Want: want, Got: got}
			}
		}
	case language.Flexible, language.Mixed:
		for i := 0; i < n; i++ {
			if got := sortAt(i); !c.Arity.Sort.Accepts(got) {
				return &ErrSort{Construct: c.Name, Want: c.Arity.Sort, Got: got}
			}
		}
	case language.Texty:
		if n != 0 {
			return &ErrArity{Construct: c.Name, Msg: "is a text construct and cannot have tree children"}
		}
	}
	return nil
}

// Node is a handle to one node of a [Tree]. The zero Node is invalid.
type Node struct {
	tree *Tree
	id   forest.NodeID
}

// Tree returns the node's owning tree.
func (n Node) Tree() *Tree {
	return n.tree
}

// ID returns the node's underlying forest identity, for use with
// bookmarks.
func (n Node) ID() forest.NodeID {
	return n.id
}

// IsLeaf reports whether n is a text leaf.
func (n Node) IsLeaf() bool {
	return n.tree.forest.IsLeaf(n.id)
}

// constructName returns the raw construct name without resolving it, for
// internal use where the full Construct isn't needed yet.
func (n Node) constructName() string {
	if n.IsLeaf() {
		return n.tree.forest.Leaf(n.id).construct
	}
	return n.tree.forest.Data(n.id).construct
}

// Construct returns n's language construct.
func (n Node) Construct() language.Construct {
	c, err := n.tree.lang.LookupConstruct(n.constructName())
	assert.That(err == nil, "ast: node's construct %q missing from its own language", n.constructName())
	return c
}

// Sort returns n's construct's sort.
func (n Node) Sort() language.Sort {
	return n.Construct().Sort
}

// NumChildren returns the number of tree children n has; zero for a leaf.
func (n Node) NumChildren() int {
	if n.IsLeaf() {
		return 0
	}
	return n.tree.forest.NumChildren(n.id)
}

// Child returns n's i'th child.
func (n Node) Child(i int) Node {
	return Node{tree: n.tree, id: n.tree.forest.Child(n.id, i)}
}

// ChildAt implements [pretty.Node].
func (n Node) ChildAt(i int) pretty.Node {
	return n.Child(i)
}

// Parent returns n's parent, if n is not the root of its tree.
func (n Node) Parent() (Node, bool) {
	id, ok := n.tree.forest.Parent(n.id)
	return Node{tree: n.tree, id: id}, ok
}

// IsRoot reports whether n is the root of its tree.
func (n Node) IsRoot() bool {
	return n.tree.forest.IsRoot(n.id)
}

// Index returns n's index among its siblings (0 if n is the root).
func (n Node) Index() int {
	return n.tree.forest.Index(n.id)
}

// NumSiblings returns the number of n's siblings, including n itself.
func (n Node) NumSiblings() int {
	return n.tree.forest.NumSiblings(n.id)
}

// Text returns n's text buffer contents and whether n is a text leaf at
// all.
func (n Node) Text() (string, bool) {
	if !n.IsLeaf() {
		return "", false
	}
	return n.tree.forest.Leaf(n.id).text, true
}

// ErrNotText is returned by operations that require a text leaf.
var ErrNotText = fmt.Errorf("ast: node is not a text leaf")

// SetText replaces n's text buffer contents. n must be a text leaf.
func (n Node) SetText(s string) error {
	if !n.IsLeaf() {
		return ErrNotText
	}
	ld := n.tree.forest.Leaf(n.id)
	ld.text = s
	n.tree.forest.SetLeaf(n.id, ld)
	if parent, ok := n.Parent(); ok {
		n.tree.invalidateContent(parent.id)
	}
	return nil
}

// ReplaceChild replaces n's i'th child with child, returning the detached
// former child. child's sort must be accepted by the position it fills.
func (n Node) ReplaceChild(i int, child Node) (Node, error) {
	c := n.Construct()
	want := childSortAt(c, i)
	if !want.Accepts(child.Sort()) {
		return Node{}, &ErrSort{Construct: c.Name, Want: want, Got: child.Sort()}
	}
	old := n.tree.forest.ReplaceChild(n.id, i, child.id)
	n.tree.invalidateContent(n.id)
	return Node{tree: n.tree, id: old}, nil
}

// InsertChild inserts child at position i among n's children. n's
// construct must have Flexible or Mixed arity.
func (n Node) InsertChild(i int, child Node) error {
	c := n.Construct()
	if c.Arity.Kind != language.Flexible && c.Arity.Kind != language.Mixed {
		return &ErrArity{Construct: c.Name, Msg: "does not accept a variable number of children"}
	}
	if !c.Arity.Sort.Accepts(child.Sort()) {
		return &ErrSort{Construct: c.Name, Want: c.Arity.Sort, Got: child.Sort()}
	}
	n.tree.forest.InsertChild(n.id, i, child.id)
	n.tree.invalidateStructure(n.id)
	return nil
}

// RemoveChild removes and returns n's i'th child. n's construct must have
// Flexible or Mixed arity.
func (n Node) RemoveChild(i int) (Node, error) {
	c := n.Construct()
	if c.Arity.Kind != language.Flexible && c.Arity.Kind != language.Mixed {
		return Node{}, &ErrArity{Construct: c.Name, Msg: "does not accept removing a child"}
	}
	old := n.tree.forest.RemoveChild(n.id, i)
	n.tree.invalidateStructure(n.id)
	return Node{tree: n.tree, id: old}, nil
}

func childSortAt(c language.Construct, i int) language.Sort {
	switch c.Arity.Kind {
	case language.Fixed:
		return c.Arity.Sorts[i]
	default:
		return c.Arity.Sort
	}
}

// Bookmark returns a bookmark to n, usable with [Tree.GotoBookmark].
func (n Node) Bookmark() forest.Bookmark {
	return n.tree.forest.Bookmark(n.id)
}

// GotoBookmark resolves mark within the tree rooted at root, if it is
// still valid.
func (t *Tree) GotoBookmark(mark forest.Bookmark, root Node) (Node, bool) {
	id, ok := t.forest.GotoBookmark(mark, root.id)
	return Node{tree: t, id: id}, ok
}

// DeleteTree detaches n (which must be a root) and frees its entire
// subtree, invalidating any bookmarks into it.
func (t *Tree) DeleteTree(n Node) {
	t.forest.DeleteTree(n.id)
}

// Duplicate builds a detached deep copy of n: every leaf and branch in its
// subtree is freshly allocated in n's tree, so the result shares no forest
// node, parent pointer, or bookmark with n and can be attached anywhere a
// node of its sort is accepted. Used by the clipboard (spec §3 "Clipboard:
// a stack of detached AST subtrees", §4.7 "Copy duplicates it") so a pasted
// copy never aliases the node it was copied from.
func (n Node) Duplicate() (Node, error) {
	if n.IsLeaf() {
		text, _ := n.Text()
		return n.tree.NewLeaf(n.constructName(), text)
	}
	children := make([]Node, n.NumChildren())
	for i := range children {
		child, err := n.Child(i).Duplicate()
		if err != nil {
			return Node{}, err
		}
		children[i] = child
	}
	return n.tree.NewBranch(n.constructName(), children)
}

// ensure returns n's Repeat-expanded notation and measured Requirements,
// computing and caching them (for branches) if they are not already
// cached.
func (n Node) ensure() (notation.Notation, notation.Requirements) {
	if n.IsLeaf() {
		ld := n.tree.forest.Leaf(n.id)
		raw, ok := n.tree.notations.Lookup(ld.construct)
		assert.That(ok, "ast: no notation for construct %q", ld.construct)
		expanded := notation.ExpandRepeats(raw, 0)
		req := notation.Measure(expanded, notation.Context{TextLen: len([]rune(ld.text)), TextEmpty: ld.text == ""})
		return expanded, req
	}

	bd := n.tree.forest.Data(n.id)
	if bd.bounds != nil {
		return bd.expanded, *bd.bounds
	}

	nc := n.tree.forest.NumChildren(n.id)
	children := make([]notation.Requirements, nc)
	for i := 0; i < nc; i++ {
		children[i] = n.Child(i).Bounds()
	}
	raw, ok := n.tree.notations.Lookup(bd.construct)
	assert.That(ok, "ast: no notation for construct %q", bd.construct)
	expanded := notation.ExpandRepeats(raw, nc)
	req := notation.Measure(expanded, notation.Context{Children: children})

	bd.bounds = &req
	bd.expanded = expanded
	n.tree.forest.SetData(n.id, bd)
	return expanded, req
}

// Notation implements [pretty.Node]: n's own notation, with any Repeat
// already expanded against n's actual child count.
func (n Node) Notation() notation.Notation {
	expanded, _ := n.ensure()
	return expanded
}

// Bounds returns n's cached Requirements, computing it (and every
// uncached descendant's) if necessary.
func (n Node) Bounds() notation.Requirements {
	_, req := n.ensure()
	return req
}

// ChildBounds implements [pretty.Node].
func (n Node) ChildBounds(i int) notation.Requirements {
	return n.Child(i).Bounds()
}

// invalidateContent clears the cached Requirements of id and every
// ancestor, without touching id's cached expanded notation (used when a
// descendant's content changed but id's own child count did not).
func (t *Tree) invalidateContent(id forest.NodeID) {
	cur := id
	for {
		if t.forest.IsLeaf(cur) {
			parent, ok := t.forest.Parent(cur)
			if !ok {
				return
			}
			cur = parent
			continue
		}
		bd := t.forest.Data(cur)
		bd.bounds = nil
		t.forest.SetData(cur, bd)
		parent, ok := t.forest.Parent(cur)
		if !ok {
			return
		}
		cur = parent
	}
}

// invalidateStructure clears both the cached expanded notation and
// Requirements of id (whose own child count just changed), then clears
// just the Requirements of every ancestor.
func (t *Tree) invalidateStructure(id forest.NodeID) {
	bd := t.forest.Data(id)
	bd.bounds = nil
	bd.expanded = nil
	t.forest.SetData(id, bd)
	if parent, ok := t.forest.Parent(id); ok {
		t.invalidateContent(parent)
	}
}
