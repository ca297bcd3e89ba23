// Package language defines the grammar level of synless: sorts, arities,
// constructs and languages, plus the process-wide, grow-only language and
// notation-set registries.
//
// Registries never rebind a name once registered and hand out references
// that stay valid for the registry's lifetime, grounded on the teacher's
// lazy_static-backed BUILTIN_NOTATIONS pattern (editor/src/notationset.rs in
// the original Rust source) realized in Go as package-level, mutex-guarded
// maps plus an init() for the built-in table.
package language

import (
	"fmt"
	"sync"

	"github.com/synless-go/synless/notation"
	"github.com/synless-go/synless/style"
)

// Sort is a lightweight type tag deciding which constructs may sit in a
// given hole. AnySort accepts, and is accepted by, every sort.
type Sort struct {
	name string
	any  bool
}

// AnySort is the universal sort: it accepts, and is accepted by, every sort.
var AnySort = Sort{any: true}

// NamedSort returns the named sort tagged name.
func NamedSort(name string) Sort {
	return Sort{name: name}
}

// Accepts reports whether a hole of sort s accepts a value of sort other:
// true iff either is AnySort or their names match.
func (s Sort) Accepts(other Sort) bool {
	return s.any || other.any || s.name == other.name
}

func (s Sort) String() string {
	if s.any {
		return "Any"
	}
	return s.name
}

// ArityKind distinguishes the shapes an Arity can take.
type ArityKind int

const (
	// Texty marks a construct whose node is a text leaf.
	Texty ArityKind = iota
	// Fixed marks a construct with exactly len(Sorts) children, one per
	// prescribed sort.
	Fixed
	// Flexible (a.k.a. Listy) marks a construct with any number of children,
	// all of the same sort.
	Flexible
	// Mixed marks an interleaving of text and tree children. Per spec §3 and
	// §9, Mixed is treated exactly as Flexible over a union sort unless a
	// grammar actually requires interleaving; no grammar in this module does,
	// so arity-rule code paths special-case Mixed as Flexible.
	Mixed
)

// Arity describes the shape of a construct's children.
type Arity struct {
	Kind  ArityKind
	Sorts []Sort // used by Fixed (one per child)
	Sort  Sort   // used by Flexible and Mixed
}

// TextyArity is the arity of a text-leaf construct.
func TextyArity() Arity {
	return Arity{Kind: Texty}
}

// FixedArity is the arity of a construct with exactly the given child sorts
// in order.
func FixedArity(sorts ...Sort) Arity {
	return Arity{Kind: Fixed, Sorts: append([]Sort(nil), sorts...)}
}

// FlexibleArity is the arity of a construct accepting any number of children
// of the given sort.
func FlexibleArity(sort Sort) Arity {
	return Arity{Kind: Flexible, Sort: sort}
}

// MixedArity is the arity of a construct interleaving text and tree children
// of the given sort; treated as FlexibleArity for arity-rule purposes.
func MixedArity(sort Sort) Arity {
	return Arity{Kind: Mixed, Sort: sort}
}

// Construct is a named syntactic category in a language.
type Construct struct {
	Name  string
	Sort  Sort
	Arity Arity
	Key   rune // 0 means "no keybinding hint"
}

// HasKey reports whether the construct has a keybinding hint.
func (c Construct) HasKey() bool {
	return c.Key != 0
}

// Hole is the built-in placeholder construct: sort Any, arity Fixed([]).
var Hole = Construct{Name: "hole", Sort: AnySort, Arity: FixedArity()}

// RootConstruct is the built-in wrapper construct every document begins
// with: sort "root", arity Fixed([Any]).
var RootConstruct = Construct{Name: "root", Sort: NamedSort("root"), Arity: FixedArity(AnySort)}

// Language is a set of constructs, always including the built-ins Hole and
// RootConstruct. Construct names are unique within a language; non-zero keys
// are unique within a language.
type Language struct {
	name       string
	constructs map[string]Construct
}

// NewLanguage builds a Language named name from constructs. Hole and
// RootConstruct are added automatically; it is an error for constructs to
// redeclare either name, to repeat a name, or to repeat a non-zero key.
func NewLanguage(name string, constructs []Construct) (*Language, error) {
	l := &Language{
		name:       name,
		constructs: make(map[string]Construct, len(constructs)+2),
	}
	l.constructs[Hole.Name] = Hole
	l.constructs[RootConstruct.Name] = RootConstruct

	keys := make(map[rune]string)
	for _, c := range constructs {
		if c.Name == Hole.Name || c.Name == RootConstruct.Name {
			return nil, fmt.Errorf("language %q: construct name %q is reserved", name, c.Name)
		}
		if _, dup := l.constructs[c.Name]; dup {
			return nil, fmt.Errorf("language %q: duplicate construct name %q", name, c.Name)
		}
		if c.HasKey() {
			if prev, dup := keys[c.Key]; dup {
				return nil, fmt.Errorf("language %q: key %q used by both %q and %q", name, c.Key, prev, c.Name)
			}
			keys[c.Key] = c.Name
		}
		l.constructs[c.Name] = c
	}
	return l, nil
}

// Name returns the language's name.
func (l *Language) Name() string {
	return l.name
}

// ErrUnknownConstruct is returned by LookupConstruct when no construct with
// the given name exists in the language.
type ErrUnknownConstruct struct {
	Lang, Construct string
}

func (e *ErrUnknownConstruct) Error() string {
	return fmt.Sprintf("language %q: unknown construct %q", e.Lang, e.Construct)
}

// LookupConstruct returns the construct of the given name.
func (l *Language) LookupConstruct(name string) (Construct, error) {
	c, ok := l.constructs[name]
	if !ok {
		return Construct{}, &ErrUnknownConstruct{Lang: l.name, Construct: name}
	}
	return c, nil
}

// Constructs returns every construct of the language, including the
// built-ins, in no particular order.
func (l *Language) Constructs() []Construct {
	out := make([]Construct, 0, len(l.constructs))
	for _, c := range l.constructs {
		out = append(out, c)
	}
	return out
}

// builtinNotations holds the notations for Hole and RootConstruct, which are
// available in every notation set automatically, mirroring the teacher's
// lazy_static BUILTIN_NOTATIONS table.
var builtinNotations map[string]notation.Notation

func init() {
	builtinNotations = map[string]notation.Notation{
		Hole.Name:          notation.Literal("?", style.Plain()),
		RootConstruct.Name: notation.Child(0),
	}
}

// NotationSet assigns one notation per construct of a language. Built with
// [NewNotationSet], which validates that every non-built-in construct has an
// entry.
type NotationSet struct {
	lang      string
	notations map[string]notation.Notation
}

// NewNotationSet builds a NotationSet for lang from the given
// (construct name, notation) pairs. It is a build failure if any
// non-built-in construct of lang lacks an entry, or if any entry's notation
// fails [notation.Validate].
func NewNotationSet(lang *Language, notations []NotationEntry) (*NotationSet, error) {
	ns := &NotationSet{
		lang:      lang.name,
		notations: make(map[string]notation.Notation, len(notations)),
	}
	for _, e := range notations {
		if _, ok := lang.constructs[e.Construct]; !ok {
			return nil, fmt.Errorf("notation set for %q: construct %q is not in the language", lang.name, e.Construct)
		}
		if err := notation.Validate(e.Notation); err != nil {
			return nil, fmt.Errorf("notation set for %q: construct %q: %w", lang.name, e.Construct, err)
		}
		ns.notations[e.Construct] = e.Notation
	}
	for name := range lang.constructs {
		if name == Hole.Name || name == RootConstruct.Name {
			continue
		}
		if _, ok := ns.notations[name]; !ok {
			return nil, fmt.Errorf("notation set for %q: construct %q has no notation", lang.name, name)
		}
	}
	return ns, nil
}

// NotationEntry pairs a construct name with its notation, the input shape
// external code uses to build a NotationSet (spec §6, "Notation-set
// construction API").
type NotationEntry struct {
	Construct string
	Notation  notation.Notation
}

// Lookup returns the notation for construct, falling back to the built-in
// table for Hole/RootConstruct.
func (ns *NotationSet) Lookup(construct string) (notation.Notation, bool) {
	if n, ok := ns.notations[construct]; ok {
		return n, true
	}
	n, ok := builtinNotations[construct]
	return n, ok
}

// Registry is a process-wide, grow-only map from language name to Language.
// Names never rebind once registered; references handed out remain valid for
// the registry's lifetime.
type Registry struct {
	mu     sync.Mutex
	byName map[string]*Language
}

// NewRegistry creates an empty language Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Language)}
}

// ErrUnknownLang is returned when a registry lookup finds no language of the
// given name.
type ErrUnknownLang struct {
	Name string
}

func (e *ErrUnknownLang) Error() string {
	return fmt.Sprintf("unknown language %q", e.Name)
}

// Register adds lang to the registry. It is an error to register a name
// twice.
func (r *Registry) Register(lang *Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[lang.name]; dup {
		return fmt.Errorf("language %q already registered", lang.name)
	}
	r.byName[lang.name] = lang
	return nil
}

// Lookup returns the registered language of the given name.
func (r *Registry) Lookup(name string) (*Language, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.byName[name]
	if !ok {
		return nil, &ErrUnknownLang{Name: name}
	}
	return l, nil
}

// NotationRegistry is a process-wide, grow-only map from language name to
// NotationSet.
type NotationRegistry struct {
	mu     sync.Mutex
	byLang map[string]*NotationSet
}

// NewNotationRegistry creates an empty NotationRegistry.
func NewNotationRegistry() *NotationRegistry {
	return &NotationRegistry{byLang: make(map[string]*NotationSet)}
}

// Register adds ns under lang's name. It is an error to register a name
// twice.
func (r *NotationRegistry) Register(lang string, ns *NotationSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byLang[lang]; dup {
		return fmt.Errorf("notation set for %q already registered", lang)
	}
	r.byLang[lang] = ns
	return nil
}

// Lookup returns the registered notation set for lang.
func (r *NotationRegistry) Lookup(lang string) (*NotationSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ns, ok := r.byLang[lang]
	if !ok {
		return nil, &ErrUnknownLang{Name: lang}
	}
	return ns, nil
}
