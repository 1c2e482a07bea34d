package adl

// Subst is a mapping from variable name to Term, in the shape of the
// teacher's Substitution (pkg/minikanren/core.go): an immutable-by-
// convention map that Bind copies-on-write, and Walk follows to a fixed
// point. Unlike the teacher, variables are keyed by name rather than a
// process-wide counter, since the core has no global mutable state
// (spec.md §9 "Global function registry" applies the same no-global-state
// discipline to variable identity).
type Subst struct {
	bindings map[string]Term
}

// NewSubst returns an empty substitution.
func NewSubst() *Subst {
	return &Subst{bindings: make(map[string]Term)}
}

// Clone returns a shallow copy safe to extend independently of the
// receiver; Terms themselves are treated as immutable so a shallow copy of
// the bindings map is sufficient.
func (s *Subst) Clone() *Subst {
	cp := make(map[string]Term, len(s.bindings))
	for k, v := range s.bindings {
		cp[k] = v
	}
	return &Subst{bindings: cp}
}

// Lookup returns the term bound to v, or nil if v is unbound.
func (s *Subst) Lookup(v *Var) Term {
	return s.bindings[v.Name]
}

// Bind returns a new substitution extending s with v -> term. Binding a
// variable to itself is a no-op (returns s unchanged).
func (s *Subst) Bind(v *Var, term Term) *Subst {
	if tv, ok := term.(*Var); ok && tv.Name == v.Name {
		return s
	}
	cp := s.Clone()
	cp.bindings[v.Name] = term
	return cp
}

// Walk follows variable bindings to a fixed point: if term is a bound
// variable, walk its binding; otherwise return term unchanged. Walk does
// not recurse into compound arguments (use DeepWalk for that).
func (s *Subst) Walk(term Term) Term {
	for {
		v, ok := term.(*Var)
		if !ok {
			return term
		}
		bound := s.Lookup(v)
		if bound == nil {
			return term
		}
		term = bound
	}
}

// DeepWalk walks term and recursively substitutes within compound
// arguments, producing a term with every reachable bound variable
// resolved to its current value.
func (s *Subst) DeepWalk(term Term) Term {
	walked := s.Walk(term)
	c, ok := walked.(*Compound)
	if !ok {
		return walked
	}
	args := make([]Term, len(c.Args))
	for i, a := range c.Args {
		args[i] = s.DeepWalk(a)
	}
	return &Compound{Name: c.Name, Args: args}
}

// Size returns the number of bindings.
func (s *Subst) Size() int { return len(s.bindings) }

// Substitute applies subst to term, replacing every bound variable
// occurrence with its binding, recursively. Unlike DeepWalk it takes an
// explicit var->Term map rather than a Subst, matching the spec's
// `substitute(term, subst)` signature (spec.md §4.1) used by the grounder
// to instantiate schema parameters.
func Substitute(term Term, subst map[string]Term) Term {
	switch t := term.(type) {
	case *Var:
		if repl, ok := subst[t.Name]; ok {
			return repl
		}
		return t
	case *Const:
		return t
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = Substitute(a, subst)
		}
		return &Compound{Name: t.Name, Args: args}
	default:
		return t
	}
}

// SubstFromPairs builds a var->Term map from parallel slices of variables
// and terms, as produced when grounding a schema's parameter list against
// one Cartesian-product argument tuple.
func SubstFromPairs(vars []*Var, terms []Term) map[string]Term {
	m := make(map[string]Term, len(vars))
	for i, v := range vars {
		m[v.Name] = terms[i]
	}
	return m
}

// ToMap converts a Subst to the map form consumed by Substitute.
func (s *Subst) ToMap() map[string]Term {
	m := make(map[string]Term, len(s.bindings))
	for k, v := range s.bindings {
		m[k] = v
	}
	return m
}
