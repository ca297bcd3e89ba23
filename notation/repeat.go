package notation

// ExpandRepeats resolves every Repeat node in n against a node with
// numChildren actual children, producing a Repeat-free Notation suitable
// for [Measure] or printing. Grounded on the fold spec.md describes for
// Repeat: zero children uses Empty; one child substitutes it for Lone's
// Child(0); two or more children builds a right-associated fold of Join
// (Child(0) is "this child", Child(1) is "the rest"), then wraps the
// completed fold in Surround (Child(0) is the fold's result).
func ExpandRepeats(n Notation, numChildren int) Notation {
	switch t := n.(type) {
	case repeatNotation:
		return expandRepeat(t.spec, numChildren)
	case concatNotation:
		return Concat(ExpandRepeats(t.left, numChildren), ExpandRepeats(t.right, numChildren))
	case nestNotation:
		return Nest(ExpandRepeats(t.left, numChildren), t.indent, ExpandRepeats(t.right, numChildren))
	case flatNotation:
		return Flat(ExpandRepeats(t.inner, numChildren))
	case alignNotation:
		return Align(ExpandRepeats(t.inner, numChildren))
	case choiceNotation:
		return Choice(ExpandRepeats(t.left, numChildren), ExpandRepeats(t.right, numChildren))
	case ifEmptyTextNotation:
		return IfEmptyText(ExpandRepeats(t.ifEmpty, numChildren), ExpandRepeats(t.ifNonEmpty, numChildren))
	default:
		return n
	}
}

func expandRepeat(spec RepeatSpec, numChildren int) Notation {
	switch numChildren {
	case 0:
		return spec.Empty
	case 1:
		return substituteChild(spec.Lone, map[int]Notation{0: Child(0)})
	default:
		return substituteChild(spec.Surround, map[int]Notation{0: foldJoin(spec.Join, 0, numChildren)})
	}
}

// foldJoin builds the right-associated fold of Join over children k..n-1:
// Join with Child(0) substituted for Child(k) and Child(1) substituted for
// the fold of the remaining children, bottoming out at a bare Child(n-1).
func foldJoin(join Notation, k, n int) Notation {
	if k == n-1 {
		return Child(k)
	}
	return substituteChild(join, map[int]Notation{0: Child(k), 1: foldJoin(join, k+1, n)})
}

// substituteChild replaces every Child(i) in n for which repl has an entry
// with that entry, leaving everything else unchanged.
func substituteChild(n Notation, repl map[int]Notation) Notation {
	switch t := n.(type) {
	case childNotation:
		if r, ok := repl[t.index]; ok {
			return r
		}
		return t
	case concatNotation:
		return Concat(substituteChild(t.left, repl), substituteChild(t.right, repl))
	case nestNotation:
		return Nest(substituteChild(t.left, repl), t.indent, substituteChild(t.right, repl))
	case flatNotation:
		return Flat(substituteChild(t.inner, repl))
	case alignNotation:
		return Align(substituteChild(t.inner, repl))
	case choiceNotation:
		return Choice(substituteChild(t.left, repl), substituteChild(t.right, repl))
	case ifEmptyTextNotation:
		return IfEmptyText(substituteChild(t.ifEmpty, repl), substituteChild(t.ifNonEmpty, repl))
	default:
		return n
	}
}
