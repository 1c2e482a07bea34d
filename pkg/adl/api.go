package adl

// ObjectDecl declares one object and its type, in the order it should be
// added to a State (spec.md §4.8: tie-breaking among facts, and grounding
// order, follow insertion order of declared objects — a Go map cannot
// carry that order, so Problem.Objects is a slice rather than a
// map[string]string).
type ObjectDecl struct {
	Name string
	Type string
}

// Problem bundles everything needed to construct an initial State and a
// goal query against a Domain: the declared objects and their types, the
// initial ground literals/fluent assignments, and the goal term (spec.md
// §6). A Problem is a plain data holder that callers build by hand;
// nothing in this package or in cmd/adlplan decodes one from a file.
type Problem struct {
	Domain  *Domain
	Objects []ObjectDecl // in declaration order
	Init    []Term       // ground facts, and assign(fluent, value) entries
	Goal    Term
}

// InitState implements spec.md §6 `initstate`: declares every object in
// declaration order, then applies the problem's init literals — a bare
// ground atom becomes a fact, an assign(fluent, value) entry sets a
// fluent's initial value.
func InitState(problem *Problem) (*State, error) {
	s := NewState()
	for _, obj := range problem.Objects {
		if err := s.AddObject(obj.Name, obj.Type); err != nil {
			return nil, err
		}
	}
	for _, t := range problem.Init {
		if c, ok := t.(*Compound); ok && c.Name == Assign && len(c.Args) == 2 {
			val, err := Evaluate(problem.Domain, s, c.Args[1])
			if err != nil {
				return nil, err
			}
			if err := s.SetFluent(c.Args[0], val); err != nil {
				return nil, err
			}
			continue
		}
		if err := s.AddFact(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// GoalState implements spec.md §6 `goalstate`: the problem's goal query,
// ready to pass to Satisfy/Satisfiers against a State.
func GoalState(problem *Problem) Term {
	return problem.Goal
}

// Available implements spec.md §6 `available`: every ground action, over
// every schema in the domain, whose precondition currently holds in
// state.
func Available(d *Domain, s *State, cfg Config) ([]*GroundAction, error) {
	all, err := GroundAllActions(d, s, cfg)
	if err != nil {
		return nil, err
	}
	var avail []*GroundAction
	for _, ga := range all {
		ok, err := Satisfy(d, s, []Term{ga.Preconds.ToTerm()}, cfg)
		if err != nil {
			return nil, err
		}
		if ok {
			avail = append(avail, ga)
		}
	}
	return avail, nil
}

// Execute implements spec.md §6 `execute`: applies a ground action's diff
// to a copy of state, after checking its precondition holds. It never
// mutates s.
func Execute(d *Domain, s *State, ga *GroundAction, cfg Config) (*State, error) {
	ok, err := Satisfy(d, s, []Term{ga.Preconds.ToTerm()}, cfg)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &PreconditionError{Action: ga.Term}
	}
	next := s.Copy()
	if err := ApplyDiff(d, next, ga.Effect); err != nil {
		return nil, err
	}
	return next, nil
}

// Transition implements spec.md §6 `transition`: given a ground action
// term (e.g. the head of some GroundAction), regrounds the matching
// schema against state, locates the instance whose head equals term, and
// Executes it. Returns an UnknownSymbolError if no schema or no
// instantiation matches.
func Transition(d *Domain, s *State, term Term, cfg Config) (*State, error) {
	name := headName(term)
	for _, action := range d.GetActions() {
		if action.Name != name {
			continue
		}
		instances, err := GroundActions(d, s, action, cfg)
		if err != nil {
			return nil, err
		}
		for _, ga := range instances {
			if TermEqual(ga.Term, term) {
				return Execute(d, s, ga, cfg)
			}
		}
	}
	return nil, &UnknownSymbolError{Symbol: term.String()}
}

// conjuncts flattens a (possibly nested) and() term into its leaf
// conjuncts; a non-and term is its own singleton conjunct list.
func conjuncts(t Term) []Term {
	if c, ok := t.(*Compound); ok && c.Name == And {
		var out []Term
		for _, a := range c.Args {
			out = append(out, conjuncts(a)...)
		}
		return out
	}
	return []Term{t}
}

func diffAddDel(diff Diff) (add, del []Term) {
	switch dd := diff.(type) {
	case *GenericDiff:
		return dd.Add, dd.Del
	case *ConditionalDiff:
		for _, gd := range dd.Diffs {
			add = append(add, gd.Add...)
			del = append(del, gd.Del...)
		}
	}
	return
}

// Relevant implements spec.md §6 `relevant`: every ground action, over
// every schema, that could contribute to goal — i.e. whose effect adds a
// positive goal conjunct or deletes the atom underlying a negative one.
// Conditional effects are considered relevant if any branch qualifies.
func Relevant(d *Domain, s *State, goal Term, cfg Config) ([]*GroundAction, error) {
	all, err := GroundAllActions(d, s, cfg)
	if err != nil {
		return nil, err
	}
	goals := conjuncts(goal)
	var rel []*GroundAction
	for _, ga := range all {
		add, del := diffAddDel(ga.Effect)
		if achieves(add, del, goals) {
			rel = append(rel, ga)
		}
	}
	return rel, nil
}

func achieves(add, del []Term, goals []Term) bool {
	for _, g := range goals {
		if neg, ok := g.(*Compound); ok && neg.Name == Not && len(neg.Args) == 1 {
			for _, d := range del {
				if TermEqual(d, neg.Args[0]) {
					return true
				}
			}
			continue
		}
		for _, a := range add {
			if TermEqual(a, g) {
				return true
			}
		}
	}
	return false
}

// Regress implements spec.md §6 `regress`: classical STRIPS regression of
// goal through a ground action's effect — (goal \ add(action)) ∪
// precond(action) — returning a MalformedEffectError if the action
// deletes a positive goal literal (regression through a deleting action
// is undefined for that literal). For a conditional effect, add/del are
// conservatively unioned across every branch (DESIGN.md regression
// decision): a precise per-branch regression would require reasoning
// about which branch's condition holds in the predecessor state, which
// is exactly what regression is computing, so the conservative union is
// the decidable approximation.
func Regress(d *Domain, s *State, ga *GroundAction, goal Term, cfg Config) (Term, error) {
	goals := conjuncts(goal)
	add, del := diffAddDel(ga.Effect)

	for _, dl := range del {
		for _, g := range goals {
			if TermEqual(g, dl) {
				return nil, &MalformedEffectError{Term: dl, Reason: "action deletes a positive goal literal; regression undefined"}
			}
		}
	}

	var remaining []Term
	for _, g := range goals {
		achieved := false
		for _, a := range add {
			if TermEqual(a, g) {
				achieved = true
				break
			}
		}
		if !achieved {
			remaining = append(remaining, g)
		}
	}
	remaining = append(remaining, conjuncts(ga.Preconds.ToTerm())...)

	switch len(remaining) {
	case 0:
		return True, nil
	case 1:
		return remaining[0], nil
	default:
		return &Compound{Name: And, Args: remaining}, nil
	}
}
