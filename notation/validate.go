package notation

import "errors"

// ErrImpossible is returned by [Validate] when a Flat wraps a notation that
// can never lay out on a single line, so the Flat could never succeed no
// matter what its children turn out to be.
var ErrImpossible = errors.New("notation: Flat wraps a notation that can never be single-line")

// ErrTooChoosy is returned by [Validate] when two choosy elements (Choice or
// Align) could end up sharing a line with nothing between them, making it
// ambiguous which one's resolution the printer should consult first.
//
// Child and Text references are treated conservatively as non-choosy leaves
// during validation: a notation set is built once per construct, before any
// AST node exists, so the notation eventually plugged into a Child slot is
// unknowable at validation time (spec §9, resolved the same way as the
// "Align is always choosy" open question).
var ErrTooChoosy = errors.New("notation: two choosy elements (Choice/Align) may share a line")

// Validate checks n for the two static failure modes spec §4.4 describes:
// an unreachable Flat, and two choosy elements sharing a line. It does not
// require a concrete node, so Child and Text are always treated as
// non-choosy, always-single-line leaves.
func Validate(n Notation) error {
	_, _, err := validateRec(n)
	return err
}

// validateRec returns whether n's first and last printed line could contain
// a choosy element, plus the first violation found within n.
func validateRec(n Notation) (startChoosy, endChoosy bool, err error) {
	switch t := n.(type) {
	case empty, literalNotation, textNotation, childNotation:
		return false, false, nil

	case concatNotation:
		ls, le, lerr := validateRec(t.left)
		if lerr != nil {
			return false, false, lerr
		}
		rs, re, rerr := validateRec(t.right)
		if rerr != nil {
			return false, false, rerr
		}
		if le && rs {
			return false, false, ErrTooChoosy
		}
		return ls, re, nil

	case nestNotation:
		ls, _, lerr := validateRec(t.left)
		if lerr != nil {
			return false, false, lerr
		}
		_, re, rerr := validateRec(t.right)
		if rerr != nil {
			return false, false, rerr
		}
		// A mandatory break separates left's last line from right's first, so
		// no TooChoosy check applies across it.
		return ls, re, nil

	case flatNotation:
		s, e, ferr := validateRec(t.inner)
		if ferr != nil {
			return false, false, ferr
		}
		if !canBeSingleLine(t.inner) {
			return false, false, ErrImpossible
		}
		return s, e, nil

	case alignNotation:
		_, _, ferr := validateRec(t.inner)
		if ferr != nil {
			return false, false, ferr
		}
		return true, true, nil

	case choiceNotation:
		_, _, lerr := validateRec(t.left)
		if lerr != nil {
			return false, false, lerr
		}
		_, _, rerr := validateRec(t.right)
		if rerr != nil {
			return false, false, rerr
		}
		return true, true, nil

	case ifEmptyTextNotation:
		ls, le, lerr := validateRec(t.ifEmpty)
		if lerr != nil {
			return false, false, lerr
		}
		rs, re, rerr := validateRec(t.ifNonEmpty)
		if rerr != nil {
			return false, false, rerr
		}
		return ls || rs, le || re, nil

	case repeatNotation:
		for _, sub := range []Notation{t.spec.Empty, t.spec.Lone, t.spec.Join, t.spec.Surround} {
			if sub == nil {
				continue
			}
			if _, _, err := validateRec(sub); err != nil {
				return false, false, err
			}
		}
		// The templates' real shape depends on a runtime child count, so a
		// bare Repeat is conservatively treated as a non-choosy leaf here; any
		// choosiness inside its templates was already checked above.
		return false, false, nil

	default:
		panic("notation: Validate missing a case for a Notation implementation")
	}
}

// canBeSingleLine reports whether n could possibly lay out on one line, used
// to detect an unreachable Flat. Nest always introduces a break, so
// anything containing a Nest on every path is never single-line-able.
func canBeSingleLine(n Notation) bool {
	switch t := n.(type) {
	case empty, literalNotation, textNotation, childNotation:
		return true
	case concatNotation:
		return canBeSingleLine(t.left) && canBeSingleLine(t.right)
	case nestNotation:
		return false
	case flatNotation:
		return canBeSingleLine(t.inner)
	case alignNotation:
		return canBeSingleLine(t.inner)
	case choiceNotation:
		return canBeSingleLine(t.left) || canBeSingleLine(t.right)
	case ifEmptyTextNotation:
		return canBeSingleLine(t.ifEmpty) || canBeSingleLine(t.ifNonEmpty)
	case repeatNotation:
		return canBeSingleLine(t.spec.Empty) && canBeSingleLine(t.spec.Lone) &&
			canBeSingleLine(t.spec.Join) && canBeSingleLine(t.spec.Surround)
	default:
		panic("notation: canBeSingleLine missing a case for a Notation implementation")
	}
}
