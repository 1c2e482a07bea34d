package adl

// Tri is the three-valued logic result of the satisfaction engine's fast
// path (spec.md §9 "Three-valued boolean for fast-path satisfaction"):
// True, False, or Unknown (deferred to the resolver). And/Or use Kleene
// semantics.
type Tri int

const (
	TriFalse Tri = iota
	TriTrue
	TriUnknown
)

func (t Tri) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

// triAnd implements Kleene conjunction: false dominates, then unknown,
// else true.
func triAnd(a, b Tri) Tri {
	if a == TriFalse || b == TriFalse {
		return TriFalse
	}
	if a == TriUnknown || b == TriUnknown {
		return TriUnknown
	}
	return TriTrue
}

// triOr implements Kleene disjunction: true dominates, then unknown, else
// false.
func triOr(a, b Tri) Tri {
	if a == TriTrue || b == TriTrue {
		return TriTrue
	}
	if a == TriUnknown || b == TriUnknown {
		return TriUnknown
	}
	return TriFalse
}

func triNot(a Tri) Tri {
	switch a {
	case TriTrue:
		return TriFalse
	case TriFalse:
		return TriTrue
	default:
		return TriUnknown
	}
}

// CheckTerm is the satisfaction engine's fast path (spec.md §4.6): it
// decides a ground propositional query directly against state without
// invoking the resolver, returning Unknown whenever the term needs
// quantifier expansion, contains a free variable, or names a derived
// predicate.
func CheckTerm(d *Domain, s *State, term Term) Tri {
	switch t := term.(type) {
	case *Var:
		return TriUnknown

	case *Const:
		if s.HasFact(t) || (t.IsLiteral() && t.Value == true) {
			return TriTrue
		}
		if _, ok := s.ObjectType(t.Name); ok {
			return TriTrue
		}
		if d.IsFunc(t.Name) || d.IsDerived(t.Name) {
			return TriUnknown
		}
		return TriFalse

	case *Compound:
		return checkCompound(d, s, t)

	default:
		return TriUnknown
	}
}

func checkCompound(d *Domain, s *State, c *Compound) Tri {
	switch c.Name {
	case And:
		res := TriTrue
		for _, a := range c.Args {
			res = triAnd(res, CheckTerm(d, s, a))
			if res == TriFalse {
				return TriFalse
			}
		}
		return res
	case Or:
		res := TriFalse
		for _, a := range c.Args {
			res = triOr(res, CheckTerm(d, s, a))
			if res == TriTrue {
				return TriTrue
			}
		}
		return res
	case Imply:
		if len(c.Args) != 2 {
			return TriUnknown
		}
		return triOr(triNot(CheckTerm(d, s, c.Args[0])), CheckTerm(d, s, c.Args[1]))
	case Not:
		if len(c.Args) != 1 {
			return TriUnknown
		}
		return triNot(CheckTerm(d, s, c.Args[0]))
	case Forall, Exists:
		return TriUnknown
	}

	if !c.IsGround() {
		return TriUnknown
	}

	if d.IsDerived(c.Name) {
		return TriUnknown
	}

	// Type predicate: `type(object)` unary application of a declared type
	// name (spec.md §4.6). Gated on IsDeclaredType so an ordinary unary
	// predicate that merely shares its arity (e.g. `clear(?x)`) falls
	// through to the fact-membership check below instead.
	if len(c.Args) == 1 && d.IsDeclaredType(c.Name) {
		if obj, ok := c.Args[0].(*Const); ok {
			if d.HasSubtypes(c.Name) {
				return TriUnknown
			}
			if objType, declared := s.ObjectType(obj.Name); declared {
				if objType == c.Name {
					return TriTrue
				}
				return TriFalse
			}
			if ctype, ok := d.constype(obj.Name); ok {
				if ctype == c.Name {
					return TriTrue
				}
				return TriFalse
			}
		}
	}

	if comparisonOps[c.Name] {
		if len(c.Args) != 2 {
			return TriUnknown
		}
		av, aerr := Evaluate(d, s, c.Args[0])
		bv, berr := Evaluate(d, s, c.Args[1])
		if aerr != nil || berr != nil {
			return TriUnknown
		}
		res, err := CompareValues(c.Name, av, bv)
		if err != nil {
			return TriUnknown
		}
		if res {
			return TriTrue
		}
		return TriFalse
	}

	if IsBuiltinFunc(c.Name) || d.IsFunc(c.Name) {
		// Numeric/boolean function as a goal: evaluate the whole
		// Compound and coerce the result to boolean.
		val, err := Evaluate(d, s, c)
		if err != nil {
			return TriUnknown
		}
		if b, ok := val.(bool); ok {
			if b {
				return TriTrue
			}
			return TriFalse
		}
		return TriUnknown
	}

	// Otherwise: partial-evaluate nested functions, then test membership
	// in state.facts (spec.md §9 Open Question: evaluate ground subterms,
	// leave the rest, then membership-test).
	partial := partialEval(d, s, c)
	if !partial.IsGround() {
		return TriUnknown
	}
	if s.HasFact(partial) {
		return TriTrue
	}
	return TriFalse
}

// partialEval evaluates any subterm of term that is a built-in or
// domain-function application with all-ground arguments, replacing it
// with its evaluated value as a Const; non-ground or non-function
// subterms are left unchanged. See spec.md §9 Open Question on
// partial_eval.
func partialEval(d *Domain, s *State, term Term) Term {
	c, ok := term.(*Compound)
	if !ok {
		return term
	}
	args := make([]Term, len(c.Args))
	for i, a := range c.Args {
		args[i] = partialEval(d, s, a)
	}
	rebuilt := &Compound{Name: c.Name, Args: args}
	if rebuilt.IsGround() && (IsBuiltinFunc(c.Name) || d.IsFunc(c.Name)) {
		if v, err := Evaluate(d, s, rebuilt); err == nil {
			return NewLiteral(v)
		}
	}
	return rebuilt
}

// Satisfy implements spec.md §4.6: run CheckTerm over every term; if every
// result decides (true, or any false), return the conjunction directly;
// otherwise fall back to the resolver over the full knowledge base.
func Satisfy(d *Domain, s *State, terms []Term, cfg Config) (bool, error) {
	allTrue := true
	for _, t := range terms {
		switch CheckTerm(d, s, t) {
		case TriFalse:
			return false, nil
		case TriUnknown:
			allTrue = false
		}
	}
	if allTrue {
		return true, nil
	}
	ok, _, err := satisfiersResolve(d, s, terms, cfg, ModeAny)
	return ok, err
}

// Satisfiers implements spec.md §4.6 `satisfiers`: a full resolver call
// over clauses(domain) ∪ types ∪ facts, with a function table merging the
// built-ins with domain function definitions, returning every variable
// substitution that satisfies the conjunction of terms.
func Satisfiers(d *Domain, s *State, terms []Term, cfg Config) ([]map[string]Term, error) {
	_, subs, err := satisfiersResolve(d, s, terms, cfg, ModeAll)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]Term, len(subs))
	for i, sub := range subs {
		out[i] = sub.ToMap()
	}
	return out, nil
}

func satisfiersResolve(d *Domain, s *State, terms []Term, cfg Config, mode ResolveMode) (bool, []*Subst, error) {
	kb := knowledgeBase(d, s)
	eval := func(term Term, sub *Subst) (interface{}, error) {
		return Evaluate(d, s, sub.DeepWalk(term))
	}
	r := NewResolver(kb, eval, cfg.ResolverMaxDepth)
	return r.Resolve(terms, NewSubst(), mode)
}

// knowledgeBase builds the clause list Satisfiers resolves against:
// derived-predicate axioms, then every declared object as a unit type
// fact, then every state fact as a unit clause.
func knowledgeBase(d *Domain, s *State) []Clause {
	kb := make([]Clause, 0, len(d.axioms)+len(s.types)+len(s.facts))
	kb = append(kb, d.axioms...)
	for _, name := range s.Objects() {
		t, _ := s.ObjectType(name)
		kb = append(kb, NewFact(Comp(t, NewConst(name))))
	}
	for _, f := range s.Facts() {
		kb = append(kb, NewFact(f))
	}
	return kb
}
