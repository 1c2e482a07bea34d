// Package adl implements the core term algebra, resolver, state, evaluator,
// satisfaction engine, effect engine and grounder for a classical
// action-description language. It is a pure library: every exported
// operation is a synchronous function of its inputs, with the sole
// exception of the in-place mutators documented on State and ApplyDiff.
//
// The package does not define a text syntax. Callers (a parser/writer, a
// domain-compilation backend, or hand-written Go) build Terms directly with
// Var, Const and Comp.
package adl

import (
	"fmt"
	"sort"
	"strings"
)

// Term is the tagged variant described by the term algebra: a logical
// variable, an atomic constant, or a compound application. All three kinds
// implement Term; type-switch on the concrete type to dispatch, in the
// style the teacher's Var/Atom/Pair hierarchy uses.
type Term interface {
	// String renders the term in a Lisp-like prefix notation, used only
	// for debugging and hashing; it is not a parseable surface syntax.
	String() string

	// IsGround reports whether the term contains no variable.
	IsGround() bool

	isTerm()
}

// Var is a logical variable. Two Vars are the same variable iff their
// Name fields are equal; the resolver renames clause variables apart with
// a numeric suffix when it needs variables guaranteed not to collide (see
// Clause.rename).
type Var struct {
	Name string
}

// NewVar constructs a variable with the given name.
func NewVar(name string) *Var { return &Var{Name: name} }

func (v *Var) String() string { return "?" + v.Name }
func (v *Var) IsGround() bool { return false }
func (*Var) isTerm()          {}

// Const is an atom: an object identifier, a numeric literal, a string
// literal, or a boolean. Value holds the underlying Go value (int, float64,
// string, bool) when the constant denotes a literal; for symbolic atoms
// (object names, predicate-less propositions like `handempty`) Value is
// nil and Name is the symbol.
type Const struct {
	Name  string
	Value interface{}
}

// NewConst constructs a symbolic atom named name.
func NewConst(name string) *Const { return &Const{Name: name} }

// NewLiteral constructs a constant carrying a literal Go value (bool, int,
// float64 or string). Name is derived from the value's default formatting
// so that two literals with equal values produce equal Consts.
func NewLiteral(value interface{}) *Const {
	return &Const{Name: fmt.Sprintf("%v", value), Value: value}
}

func (c *Const) String() string { return c.Name }
func (c *Const) IsGround() bool { return true }
func (*Const) isTerm()          {}

// IsLiteral reports whether this constant carries a literal value rather
// than naming a symbolic atom/object.
func (c *Const) IsLiteral() bool { return c.Value != nil }

// Reserved connective and quantifier names. These are never user predicate
// symbols: the domain's signature disambiguates a Compound with one of
// these names from a same-named user predicate, per the term-algebra
// invariant in spec.md §3.
const (
	And     = "and"
	Or      = "or"
	Not     = "not"
	Imply   = "imply"
	Forall  = "forall"
	Exists  = "exists"
	When    = "when"
	Assign  = "assign"
	Incr    = "increase"
	Decr    = "decrease"
	ScaleUp = "scale-up"
	ScaleDn = "scale-down"
)

// Compound is predicate application, function application, or a
// connective/quantifier. Args is an ordered sequence; arity is len(Args).
//
// Quantifier compounds (forall/exists) use the two-argument shape
// Comp(Forall, boundVarTerm, body) where boundVarTerm is itself a Compound
// pairing the bound Var with its type Const, built by QVar.
type Compound struct {
	Name string
	Args []Term
}

// Comp constructs a compound term.
func Comp(name string, args ...Term) *Compound {
	return &Compound{Name: name, Args: args}
}

// QVar builds the `var:type` pairing used as the first argument of a
// forall/exists Compound.
func QVar(v *Var, typeName string) *Compound {
	return Comp(":", v, NewConst(typeName))
}

func (c *Compound) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	if len(parts) == 0 {
		return "(" + c.Name + ")"
	}
	return "(" + c.Name + " " + strings.Join(parts, " ") + ")"
}

func (c *Compound) IsGround() bool {
	for _, a := range c.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

func (*Compound) isTerm() {}

// Arity returns the number of arguments.
func (c *Compound) Arity() int { return len(c.Args) }

// TermEqual reports structural equality: same kind, same name/value, same
// arguments recursively. Variables compare equal only by name (alpha-
// equivalence is not performed; callers that need it should rename
// consistently via Substitute first).
func TermEqual(a, b Term) bool {
	switch av := a.(type) {
	case *Var:
		bv, ok := b.(*Var)
		return ok && av.Name == bv.Name
	case *Const:
		bv, ok := b.(*Const)
		return ok && av.Name == bv.Name && av.Value == bv.Value
	case *Compound:
		bv, ok := b.(*Compound)
		if !ok || av.Name != bv.Name || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !TermEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// TermLess provides a total order over terms, used to produce stable,
// deterministic orderings of fact sets and CNF clause lists (spec.md §8
// property 2: ordering of insertion must not affect observable output).
func TermLess(a, b Term) bool {
	return termRank(a) < termRank(b) || (termRank(a) == termRank(b) && a.String() < b.String())
}

func termRank(t Term) int {
	switch t.(type) {
	case *Var:
		return 0
	case *Const:
		return 1
	case *Compound:
		return 2
	default:
		return 3
	}
}

// SortTerms sorts a slice of terms in place using TermLess, for
// deterministic output (e.g. CNF clause rendering, fact enumeration).
func SortTerms(ts []Term) {
	sort.Slice(ts, func(i, j int) bool { return TermLess(ts[i], ts[j]) })
}

// vars collects the set of distinct variable names reachable from term,
// in first-occurrence order.
func vars(term Term, seen map[string]bool, out *[]*Var) {
	switch t := term.(type) {
	case *Var:
		if !seen[t.Name] {
			seen[t.Name] = true
			*out = append(*out, t)
		}
	case *Compound:
		for _, a := range t.Args {
			vars(a, seen, out)
		}
	}
}

// Vars returns the distinct variables occurring in term, in first-
// occurrence order.
func Vars(term Term) []*Var {
	var out []*Var
	vars(term, map[string]bool{}, &out)
	return out
}
