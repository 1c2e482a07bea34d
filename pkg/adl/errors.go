package adl

import "fmt"

// The error kinds of spec.md §7, each a small typed struct so callers can
// distinguish them with errors.As instead of string-matching, the way the
// teacher distinguishes failure modes with fmt.Errorf("Func: ...") prefixes
// but promoted here to real types since §7 requires callers to branch on
// error *kind* (UnknownSymbol vs TypeMismatch vs ...), not just read a
// message.

// UnknownSymbolError reports a predicate/function symbol that is neither
// declared in the domain's signature nor a built-in.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("adl: unknown symbol %q", e.Symbol)
}

// TypeMismatchError reports a value of the wrong type for an operator or
// assignment.
type TypeMismatchError struct {
	Op   string
	Term Term
	Want string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("adl: type mismatch in %s: %s is not %s", e.Op, e.Term, e.Want)
}

// ArityError reports a term with the wrong number of arguments for its
// declared signature.
type ArityError struct {
	Symbol string
	Want   int
	Got    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("adl: %s expects %d argument(s), got %d", e.Symbol, e.Want, e.Got)
}

// MalformedEffectError reports an effect term using an unsupported
// connective, or double negation.
type MalformedEffectError struct {
	Term   Term
	Reason string
}

func (e *MalformedEffectError) Error() string {
	return fmt.Sprintf("adl: malformed effect %s: %s", e.Term, e.Reason)
}

// ResolverLimitError reports that resolution exceeded its configured depth
// bound (Config.ResolverMaxDepth). The resolver has no separate budget on
// the number of solutions.
type ResolverLimitError struct {
	MaxDepth int
}

func (e *ResolverLimitError) Error() string {
	return fmt.Sprintf("adl: resolver exceeded max depth %d", e.MaxDepth)
}

// GroundingLimitError reports that a schema produced more instantiations
// than the configured budget.
type GroundingLimitError struct {
	Schema string
	Max    int
}

func (e *GroundingLimitError) Error() string {
	return fmt.Sprintf("adl: schema %q exceeded max groundings %d", e.Schema, e.Max)
}

// PreconditionError reports that Execute/Transition was asked to apply a
// ground action whose precondition does not currently hold.
type PreconditionError struct {
	Action Term
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("adl: precondition does not hold for %s", e.Action)
}

// IllFormedStateError reports a fatal problem constructing a State: a
// symbol used as both a fact and a fluent, an object redeclared with a
// different type, or a term SetFluent cannot store. The arguments of
// nested value entries are not checked against the declared objects.
type IllFormedStateError struct {
	Reason string
}

func (e *IllFormedStateError) Error() string {
	return fmt.Sprintf("adl: ill-formed state: %s", e.Reason)
}
