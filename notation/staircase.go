package notation

// stairKey is the two-dimensional dominance key a staircase entry is ordered
// by: a entry with x<=other.x and y<=other.y makes other redundant.
//
// Grounded on pretty/src/layout/staircase.rs's "minimal antichain under
// dominance" staircase, with the key extraction folded into the value type
// itself rather than kept as separate (width, height) fields, since every
// staircase this module needs (MultiLine, Aligned) already carries its key
// dimensions as named fields.
type stairKey interface {
	x() int
	y() int
}

// MultiLine is one candidate multi-line layout shape: the width of its first
// line, the widest of its interior lines, and the width of its last line.
// The staircase dominance key is (First, Last), the two dimensions a
// surrounding prefix/suffix budget actually constrains (spec §4.5); Middle
// is carried as payload only and never enters the dominance order, so among
// entries tied on (First, Last) whichever was inserted first is kept
// regardless of Middle (see [Staircase.Insert]'s tie-break).
type MultiLine struct {
	First, Middle, Last int
}

func (m MultiLine) x() int { return m.First }
func (m MultiLine) y() int { return m.Last }

// Aligned is one candidate layout shape for content whose first line
// continues an already-open line, and whose later lines are reindented to
// the column that first line started at: the widest interior line, and the
// width of the last line.
type Aligned struct {
	Middle, Last int
}

func (a Aligned) x() int { return a.Middle }
func (a Aligned) y() int { return a.Last }

// Staircase holds a minimal antichain of T entries under the dominance
// order (x<=x' and y<=y'). Constructed via its zero value.
type Staircase[T stairKey] struct {
	entries []T
}

// Insert adds v, dropping it if an existing entry already dominates it, and
// dropping any existing entries that v dominates. A tie (equal x and y) is
// broken in favor of whichever entry was inserted first.
func (s *Staircase[T]) Insert(v T) {
	for _, e := range s.entries {
		if dominatesOrEqual(e, v) {
			return
		}
	}
	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if !dominatesOrEqual(v, e) {
			kept = append(kept, e)
		}
	}
	s.entries = append(kept, v)
}

func dominatesOrEqual[T stairKey](a, b T) bool {
	return a.x() <= b.x() && a.y() <= b.y()
}

// Entries returns every entry currently on the staircase, in no particular
// order.
func (s Staircase[T]) Entries() []T {
	return s.entries
}

// Empty reports whether the staircase has no entries.
func (s Staircase[T]) Empty() bool {
	return len(s.entries) == 0
}

// FitsWithin reports whether some entry satisfies x<=maxX and y<=maxY.
func (s Staircase[T]) FitsWithin(maxX, maxY int) bool {
	for _, e := range s.entries {
		if e.x() <= maxX && e.y() <= maxY {
			return true
		}
	}
	return false
}
