package adl

import (
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// True and False are the canonical boolean literal terms produced by
// constant folding during static simplification (spec.md §4.8).
var True Term = NewLiteral(true)
var False Term = NewLiteral(false)

func isTrueLit(t Term) bool {
	c, ok := t.(*Const)
	return ok && c.Value == true
}

func isFalseLit(t Term) bool {
	c, ok := t.(*Const)
	return ok && c.Value == false
}

// CNFClauses is a precondition normalized to a conjunction of clauses
// (spec.md §3 "CNF clause list"): each element is either a literal or an
// Or(...) disjunction; the clauses themselves are conjoined. An empty
// CNFClauses denotes the trivially true precondition.
type CNFClauses []Term

// ToTerm reconstructs a single Term equivalent to the conjunction of
// clauses, for feeding back into Satisfy/CheckTerm.
func (c CNFClauses) ToTerm() Term {
	switch len(c) {
	case 0:
		return True
	case 1:
		return c[0]
	default:
		return Comp(And, []Term(c)...)
	}
}

func toCNF(term Term) CNFClauses {
	if isTrueLit(term) {
		return nil
	}
	var clauses CNFClauses
	var walk func(t Term)
	walk = func(t Term) {
		if c, ok := t.(*Compound); ok && c.Name == And {
			for _, a := range c.Args {
				walk(a)
			}
			return
		}
		clauses = append(clauses, flattenOr(t))
	}
	walk(term)
	return clauses
}

func flattenOr(t Term) Term {
	c, ok := t.(*Compound)
	if !ok || c.Name != Or {
		return t
	}
	var args []Term
	for _, a := range c.Args {
		fa := flattenOr(a)
		if fc, ok := fa.(*Compound); ok && fc.Name == Or {
			args = append(args, fc.Args...)
		} else {
			args = append(args, fa)
		}
	}
	return Comp(Or, args...)
}

// Dequantify replaces forall/exists over a typed variable by the finite
// conjunction/disjunction of its body, substituted with every object of
// that type declared in state (spec.md §4.8 step 2-3, "Dequantify" in the
// glossary). It recurses into and/or/not/imply so nested quantifiers at
// any depth are expanded.
func Dequantify(d *Domain, s *State, term Term) Term {
	c, ok := term.(*Compound)
	if !ok {
		return term
	}

	switch c.Name {
	case And, Or:
		args := make([]Term, len(c.Args))
		for i, a := range c.Args {
			args[i] = Dequantify(d, s, a)
		}
		return &Compound{Name: c.Name, Args: args}
	case Not:
		if len(c.Args) != 1 {
			return c
		}
		return Comp(Not, Dequantify(d, s, c.Args[0]))
	case Imply:
		if len(c.Args) != 2 {
			return c
		}
		return Comp(Imply, Dequantify(d, s, c.Args[0]), Dequantify(d, s, c.Args[1]))
	case When:
		if len(c.Args) != 2 {
			return c
		}
		return Comp(When, Dequantify(d, s, c.Args[0]), Dequantify(d, s, c.Args[1]))
	case Forall, Exists:
		if len(c.Args) != 2 {
			return c
		}
		qv, ok := c.Args[0].(*Compound)
		if !ok || len(qv.Args) != 2 {
			return c
		}
		bv, ok := qv.Args[0].(*Var)
		if !ok {
			return c
		}
		typeConst, ok := qv.Args[1].(*Const)
		if !ok {
			return c
		}
		objs := d.GetObjects(s, typeConst.Name)
		body := Dequantify(d, s, c.Args[1])
		parts := make([]Term, len(objs))
		for i, obj := range objs {
			parts[i] = Substitute(body, map[string]Term{bv.Name: NewConst(obj)})
		}
		connective := And
		if c.Name == Exists {
			connective = Or
		}
		switch len(parts) {
		case 0:
			if connective == And {
				return True
			}
			return False
		case 1:
			return parts[0]
		default:
			return &Compound{Name: connective, Args: parts}
		}
	default:
		return c
	}
}

// flattenConditions implements spec.md §4.8 step 3: top-level conjuncts
// of a dequantified effect term become separate branches; when(cond, eff)
// contributes (cond, eff); a plain conjunct contributes (nil, eff) where
// nil stands for the unconditional ⊤ guard.
func flattenConditions(effect Term) (conds []Term, effects []Term) {
	var walk func(t Term)
	walk = func(t Term) {
		if c, ok := t.(*Compound); ok {
			if c.Name == And {
				for _, a := range c.Args {
					walk(a)
				}
				return
			}
			if c.Name == When && len(c.Args) == 2 {
				conds = append(conds, c.Args[0])
				effects = append(effects, c.Args[1])
				return
			}
		}
		conds = append(conds, nil)
		effects = append(effects, t)
	}
	walk(effect)
	return conds, effects
}

// Statics returns the set of predicate/function symbols whose extension
// never appears on the left of any effect across any action schema in the
// domain (spec.md §4.8 step 1) — fixed across all reachable states.
func (d *Domain) Statics() map[string]bool {
	dynamic := map[string]bool{}
	var scan func(t Term)
	scan = func(t Term) {
		c, ok := t.(*Compound)
		if !ok {
			// A bare atomic proposition (Const) effect, e.g. `handempty`.
			markDynamic(t, dynamic)
			return
		}
		switch c.Name {
		case And, Or:
			for _, a := range c.Args {
				scan(a)
			}
		case Not:
			if len(c.Args) == 1 {
				markDynamic(c.Args[0], dynamic)
			}
		case When:
			if len(c.Args) == 2 {
				scan(c.Args[1])
			}
		case Forall:
			if len(c.Args) == 2 {
				scan(c.Args[1])
			}
		case Assign, Incr, Decr, ScaleUp, ScaleDn:
			if len(c.Args) == 2 {
				markDynamic(c.Args[0], dynamic)
			}
		default:
			markDynamic(t, dynamic)
		}
	}
	for _, a := range d.actions {
		scan(a.Effect)
	}
	statics := map[string]bool{}
	for name := range d.predicates {
		if !dynamic[name] {
			statics[name] = true
		}
	}
	for name := range d.functions {
		if !dynamic[name] {
			statics[name] = true
		}
	}
	return statics
}

func markDynamic(t Term, dynamic map[string]bool) {
	switch v := t.(type) {
	case *Const:
		dynamic[v.Name] = true
	case *Compound:
		dynamic[v.Name] = true
	}
}

// SimplifyStatics evaluates every ground static atom reachable in term
// against state and constant-folds and/or/not/imply, yielding True, False,
// or a partially simplified term (spec.md §4.8 step 4b, §8 property 8).
func SimplifyStatics(d *Domain, s *State, term Term, statics map[string]bool) Term {
	c, ok := term.(*Compound)
	if !ok {
		return term
	}

	switch c.Name {
	case And:
		var args []Term
		for _, a := range c.Args {
			sa := SimplifyStatics(d, s, a, statics)
			if isFalseLit(sa) {
				return False
			}
			if isTrueLit(sa) {
				continue
			}
			args = append(args, sa)
		}
		switch len(args) {
		case 0:
			return True
		case 1:
			return args[0]
		default:
			return &Compound{Name: And, Args: args}
		}

	case Or:
		var args []Term
		for _, a := range c.Args {
			sa := SimplifyStatics(d, s, a, statics)
			if isTrueLit(sa) {
				return True
			}
			if isFalseLit(sa) {
				continue
			}
			args = append(args, sa)
		}
		switch len(args) {
		case 0:
			return False
		case 1:
			return args[0]
		default:
			return &Compound{Name: Or, Args: args}
		}

	case Not:
		if len(c.Args) != 1 {
			return c
		}
		sa := SimplifyStatics(d, s, c.Args[0], statics)
		if isTrueLit(sa) {
			return False
		}
		if isFalseLit(sa) {
			return True
		}
		return Comp(Not, sa)

	case Imply:
		if len(c.Args) != 2 {
			return c
		}
		return SimplifyStatics(d, s, Comp(Or, Comp(Not, c.Args[0]), c.Args[1]), statics)

	default:
		if !c.IsGround() {
			return c
		}
		if statics[c.Name] || comparisonOps[c.Name] || IsBuiltinFunc(c.Name) {
			val, err := Evaluate(d, s, c)
			if err == nil {
				if b, ok := val.(bool); ok {
					if b {
						return True
					}
					return False
				}
			}
		}
		return c
	}
}

// GroundAction is a fully instantiated action (spec.md §3): its name, the
// ground head term, its preconditions as a CNF clause list, and its
// effect as either a GenericDiff or a ConditionalDiff. ID is a synthetic
// identifier (not part of the logical model) letting external search
// strategies key a frontier by action identity rather than by term
// equality, per SPEC_FULL.md §3.
type GroundAction struct {
	Name     string
	Term     Term
	Preconds CNFClauses
	Effect   Diff
	ID       string
}

// GroundActionGroup is one schema's ground instances keyed by ground head
// term (spec.md §3).
type GroundActionGroup struct {
	Name    string
	Actions []*GroundAction
	byTerm  map[string]*GroundAction
}

// Lookup finds the GroundAction whose ground head term renders identically
// to term.
func (g *GroundActionGroup) Lookup(term Term) (*GroundAction, bool) {
	a, ok := g.byTerm[term.String()]
	return a, ok
}

func newGroundActionGroup(name string) *GroundActionGroup {
	return &GroundActionGroup{Name: name, byTerm: make(map[string]*GroundAction)}
}

func (g *GroundActionGroup) add(a *GroundAction) {
	g.Actions = append(g.Actions, a)
	g.byTerm[a.Term.String()] = a
}

// cartesianObjects enumerates the Cartesian product of domainsPerParam,
// param 0 varying slowest (the outermost loop), matching spec.md §4.8's
// "leftmost parameter slowest" ordering contract. A nil/empty
// domainsPerParam yields one empty-argument tuple (DESIGN.md Open
// Question 1).
func cartesianObjects(domainsPerParam [][]string) [][]string {
	if len(domainsPerParam) == 0 {
		return [][]string{{}}
	}
	var out [][]string
	var rec func(i int, cur []string)
	rec = func(i int, cur []string) {
		if i == len(domainsPerParam) {
			tup := make([]string, len(cur))
			copy(tup, cur)
			out = append(out, tup)
			return
		}
		for _, obj := range domainsPerParam[i] {
			rec(i+1, append(cur, obj))
		}
	}
	rec(0, nil)
	return out
}

// GroundActions implements spec.md §4.8 for a single action schema,
// producing its ground instances in Cartesian-product order. It discards
// instantiations whose simplified precondition is identically False, and
// returns a GroundingLimitError if more than cfg.MaxGroundingsPerSchema
// survive.
func GroundActions(d *Domain, s *State, action *ActionSchema, cfg Config) ([]*GroundAction, error) {
	statics := d.Statics()

	precond := Dequantify(d, s, action.Precond)
	effect := Dequantify(d, s, action.Effect)
	conds0, effects0 := flattenConditions(effect)

	domainsPerParam := make([][]string, len(action.Params))
	for i, t := range action.ParamTypes {
		domainsPerParam[i] = d.GetObjects(s, t)
	}

	var results []*GroundAction
	for _, tuple := range cartesianObjects(domainsPerParam) {
		terms := make([]Term, len(tuple))
		for i, obj := range tuple {
			terms[i] = NewConst(obj)
		}
		subst := SubstFromPairs(action.Params, terms)

		substPrecond := Substitute(precond, subst)
		simplified := SimplifyStatics(d, s, substPrecond, statics)
		if isFalseLit(simplified) {
			continue
		}
		preconds := toCNF(simplified)

		var branchConds []Term
		var branchDiffs []*GenericDiff
		for i, rawCond := range conds0 {
			var condSimplified Term
			if rawCond == nil {
				condSimplified = True
			} else {
				condSimplified = SimplifyStatics(d, s, Substitute(rawCond, subst), statics)
				if isFalseLit(condSimplified) {
					continue
				}
			}
			substEffect := Substitute(effects0[i], subst)
			diff, err := EffectDiff(d, s, substEffect)
			if err != nil {
				return nil, err
			}
			if isTrueLit(condSimplified) {
				branchConds = append(branchConds, nil)
			} else {
				branchConds = append(branchConds, toCNF(condSimplified).ToTerm())
			}
			branchDiffs = append(branchDiffs, diff)
		}

		if len(branchDiffs) == 0 {
			continue
		}

		var effectResult Diff
		if len(branchDiffs) == 1 {
			if branchConds[0] != nil {
				preconds = append(preconds, toCNF(branchConds[0])...)
			}
			effectResult = branchDiffs[0]
		} else {
			effectResult = &ConditionalDiff{Conds: branchConds, Diffs: branchDiffs}
		}

		head := &Compound{Name: action.Name, Args: terms}
		results = append(results, &GroundAction{
			Name:     action.Name,
			Term:     head,
			Preconds: preconds,
			Effect:   effectResult,
			ID:       uuid.NewString(),
		})

		if len(results) > cfg.MaxGroundingsPerSchema {
			return nil, &GroundingLimitError{Schema: action.Name, Max: cfg.MaxGroundingsPerSchema}
		}
	}

	return results, nil
}

// Ground implements spec.md §6 `ground`: GroundActions for one schema,
// collected into a GroundActionGroup keyed by ground head term.
func Ground(d *Domain, s *State, action *ActionSchema, cfg Config) (*GroundActionGroup, error) {
	instances, err := GroundActions(d, s, action, cfg)
	if err != nil {
		return nil, err
	}
	group := newGroundActionGroup(action.Name)
	for _, ga := range instances {
		group.add(ga)
	}
	return group, nil
}

// GroundAllActions implements spec.md §6 `groundactions(domain, state)`:
// flattens GroundActions over every schema in declaration order. Errors
// from individual schemas (e.g. a GroundingLimitError) are aggregated via
// go-multierror so a caller sees every schema's diagnostic rather than
// stopping at the first (SPEC_FULL.md §2 error-aggregation).
func GroundAllActions(d *Domain, s *State, cfg Config) ([]*GroundAction, error) {
	var all []*GroundAction
	var errs *multierror.Error
	for _, action := range d.GetActions() {
		instances, err := GroundActions(d, s, action, cfg)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		all = append(all, instances...)
	}
	return all, errs.ErrorOrNil()
}

// sortActionNames returns the domain's schema names in alphabetical order.
// It has no callers in this repository; grounding order itself never
// depends on it.
func sortActionNames(d *Domain) []string {
	names := make([]string, 0, len(d.actions))
	for _, a := range d.actions {
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}
