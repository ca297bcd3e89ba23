// Package bookmark resolves spec.md §9's open question of how a single
// keyed bookmark ("mark 'a' at this node") stays unambiguous once more than
// one document exists: a [forest.Bookmark] alone only names a position
// within whichever tree its NodeID happens to belong to, so looking one up
// in the wrong document would silently resolve to an unrelated node (or,
// after enough edits, to nothing at all) instead of failing loudly. Table
// pairs every stored bookmark with the label of the document it was taken
// in and returns that label from [Table.Get], so a caller can tell which
// document to resolve it in; Table itself does not check the label against
// any document (decision recorded in DESIGN.md).
package bookmark

import "github.com/synless-go/synless/forest"

// Table maps single-character marks to a bookmark plus the label of the
// document it was taken in.
type Table struct {
	entries map[rune]entry
}

type entry struct {
	mark  forest.Bookmark
	label string
}

// NewTable creates an empty bookmark Table.
func NewTable() *Table {
	return &Table{entries: make(map[rune]entry)}
}

// Set records mark under ch, taken in the document named label. A later Set
// with the same ch replaces the prior entry.
func (t *Table) Set(ch rune, mark forest.Bookmark, label string) {
	t.entries[ch] = entry{mark: mark, label: label}
}

// Get returns the bookmark and document label last stored under ch.
func (t *Table) Get(ch rune) (mark forest.Bookmark, label string, ok bool) {
	e, ok := t.entries[ch]
	if !ok {
		return forest.Bookmark{}, "", false
	}
	return e.mark, e.label, true
}

// Delete removes any bookmark stored under ch.
func (t *Table) Delete(ch rune) {
	delete(t.entries, ch)
}

// Marks returns every mark currently set, in no particular order.
func (t *Table) Marks() []rune {
	out := make([]rune, 0, len(t.entries))
	for ch := range t.entries {
		out = append(out, ch)
	}
	return out
}
