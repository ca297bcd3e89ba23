package notation

import "github.com/synless-go/synless/style"

// Visitor dispatches over a Notation's concrete shape. Notation's
// constructors return unexported types, so external packages (notably
// package pretty's printer) recurse via [Accept] rather than a type switch,
// mirroring the visitor pattern go/ast uses for its own unexported node
// shapes.
type Visitor interface {
	VisitEmpty()
	VisitLiteral(text string, sty style.Style)
	VisitText()
	VisitChild(i int)
	VisitConcat(left, right Notation)
	VisitNest(left Notation, indent int, right Notation)
	VisitFlat(inner Notation)
	VisitAlign(inner Notation)
	VisitChoice(left, right Notation)
	VisitIfEmptyText(ifEmpty, ifNonEmpty Notation)
	VisitRepeat(spec RepeatSpec)
}

// Accept dispatches n to the matching method of v.
func Accept(n Notation, v Visitor) {
	switch t := n.(type) {
	case empty:
		v.VisitEmpty()
	case literalNotation:
		v.VisitLiteral(t.text, t.style)
	case textNotation:
		v.VisitText()
	case childNotation:
		v.VisitChild(t.index)
	case concatNotation:
		v.VisitConcat(t.left, t.right)
	case nestNotation:
		v.VisitNest(t.left, t.indent, t.right)
	case flatNotation:
		v.VisitFlat(t.inner)
	case alignNotation:
		v.VisitAlign(t.inner)
	case choiceNotation:
		v.VisitChoice(t.left, t.right)
	case ifEmptyTextNotation:
		v.VisitIfEmptyText(t.ifEmpty, t.ifNonEmpty)
	case repeatNotation:
		v.VisitRepeat(t.spec)
	default:
		panic("notation: Accept missing a case for a Notation implementation")
	}
}
