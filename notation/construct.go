package notation

import "github.com/synless-go/synless/style"

// Literal places fixed text, styled with sty, on the current line. text must
// not contain a newline.
func Literal(text string, sty style.Style) Notation {
	return literalNotation{text: text, style: sty}
}

// Text places the node's own text-buffer contents on the current line. Only
// valid on a construct with [language.Texty] arity.
func Text() Notation {
	return textNotation{}
}

// Child refers to the notation of the node's i'th child.
func Child(i int) Notation {
	return childNotation{index: i}
}

// Concat places a immediately followed by b, on the same line, with no
// implied break between them.
func Concat(a, b Notation) Notation {
	return concatNotation{left: a, right: b}
}

// Nest places a, then a mandatory newline, then b indented k columns past
// the notation's current base indent. Every subsequent break inside b
// compounds on top of that new indent.
func Nest(a Notation, k int, b Notation) Notation {
	return nestNotation{left: a, indent: k, right: b}
}

// Flush is Nest with nothing following the break: a, then a mandatory
// newline back to the current base indent.
func Flush(a Notation) Notation {
	return nestNotation{left: a, indent: 0, right: empty{}}
}

type empty struct{}

func (empty) notation() {}

// Flat requires n to lay out on a single line; if it cannot, any attempt to
// measure or print Flat(n) fails (spec §4.4 "Flat").
func Flat(n Notation) Notation {
	return flatNotation{inner: n}
}

// Align reinterprets every newline inside n as indenting to the current
// column, rather than to the notation's base indent.
func Align(n Notation) Notation {
	return alignNotation{inner: n}
}

// Choice offers two alternative layouts for the same content; the printer
// picks whichever fits, preferring a in a tie (spec §4.5 "left wins ties").
func Choice(a, b Notation) Notation {
	return choiceNotation{left: a, right: b}
}

// IfEmptyText picks ifEmpty when the node's text buffer is empty, ifNonEmpty
// otherwise. Only valid on a construct with [language.Texty] arity.
func IfEmptyText(ifEmpty, ifNonEmpty Notation) Notation {
	return ifEmptyTextNotation{ifEmpty: ifEmpty, ifNonEmpty: ifNonEmpty}
}

// Repeat folds spec over a flexible or mixed node's actual children. It must
// be resolved by [ExpandRepeats] against a concrete child count before it is
// measured or printed; [Measure] panics if it encounters one directly.
func Repeat(spec RepeatSpec) Notation {
	return repeatNotation{spec: spec}
}
