package adl

import "fmt"

// ResolveMode selects whether Resolve stops at the first solution or
// collects every solution (spec.md §4.2).
type ResolveMode int

const (
	// ModeAny returns on the first successful substitution.
	ModeAny ResolveMode = iota
	// ModeAll collects every successful substitution.
	ModeAll
)

// EvalFunc evaluates a (possibly already-walked) term to a value, used by
// the resolver to drive comparison/arithmetic goals. satisfy.go supplies
// an EvalFunc backed by Evaluate(domain, state, term).
type EvalFunc func(term Term, sub *Subst) (interface{}, error)

// Resolver implements SLD resolution over a fixed knowledge base of Horn
// clauses, with a pluggable function table for comparison/arithmetic
// goals (spec.md §4.2). Clause selection is in knowledge-base order;
// search is depth-first with an explicit work stack bounded by MaxDepth
// (spec.md §9 "Recursive resolver" design note), so a malformed or
// infinitely-recursive axiom set fails with a ResolverLimitError instead
// of exhausting the Go call stack.
type Resolver struct {
	Clauses  []Clause
	Eval     EvalFunc
	MaxDepth int
}

// NewResolver returns a Resolver over clauses with evaluator eval and
// depth bound maxDepth.
func NewResolver(clauses []Clause, eval EvalFunc, maxDepth int) *Resolver {
	return &Resolver{Clauses: clauses, Eval: eval, MaxDepth: maxDepth}
}

// choicePoint is one frame of the resolver's explicit work stack: the
// goals still to be proved, the substitution accumulated so far, and how
// many clause-resolution steps produced this frame (for MaxDepth).
type choicePoint struct {
	goals []Term
	sub   *Subst
	depth int
}

// Resolve proves the conjunction of goals against the resolver's clause
// base, starting from sub. In ModeAny it returns as soon as one
// substitution succeeds; in ModeAll it collects every success. Goals are
// tried left-to-right and clauses in knowledge-base order, matching
// spec.md §4.2's ordering contract.
func (r *Resolver) Resolve(goals []Term, sub *Subst, mode ResolveMode) (bool, []*Subst, error) {
	stack := []choicePoint{{goals: goals, sub: sub, depth: 0}}
	var solutions []*Subst
	renameCounter := 0

	for len(stack) > 0 {
		cp := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(cp.goals) == 0 {
			solutions = append(solutions, cp.sub)
			if mode == ModeAny {
				return true, solutions, nil
			}
			continue
		}

		if cp.depth > r.MaxDepth {
			return false, nil, &ResolverLimitError{MaxDepth: r.MaxDepth}
		}

		goal := cp.sub.Walk(cp.goals[0])
		rest := cp.goals[1:]

		c, isCompound := goal.(*Compound)
		if isCompound {
			switch c.Name {
			case And:
				newGoals := append(append([]Term{}, c.Args...), rest...)
				stack = append(stack, choicePoint{goals: newGoals, sub: cp.sub, depth: cp.depth})
				continue
			case Or:
				for i := len(c.Args) - 1; i >= 0; i-- {
					newGoals := append([]Term{c.Args[i]}, rest...)
					stack = append(stack, choicePoint{goals: newGoals, sub: cp.sub, depth: cp.depth + 1})
				}
				continue
			case Not:
				if len(c.Args) != 1 {
					return false, nil, &ArityError{Symbol: Not, Want: 1, Got: len(c.Args)}
				}
				ok, _, err := r.Resolve([]Term{c.Args[0]}, cp.sub, ModeAny)
				if err != nil {
					return false, nil, err
				}
				if !ok {
					stack = append(stack, choicePoint{goals: rest, sub: cp.sub, depth: cp.depth + 1})
				}
				continue
			}

			if r.Eval != nil && (comparisonOps[c.Name] || IsBuiltinFunc(c.Name)) {
				val, err := r.Eval(c, cp.sub)
				if err != nil {
					return false, nil, err
				}
				if b, ok := val.(bool); ok {
					if b {
						stack = append(stack, choicePoint{goals: rest, sub: cp.sub, depth: cp.depth + 1})
					}
					continue
				}
				// Non-boolean builtin result used as a goal is always
				// considered satisfied when the evaluator did not error.
				stack = append(stack, choicePoint{goals: rest, sub: cp.sub, depth: cp.depth + 1})
				continue
			}
		}

		// Ordinary predicate goal: try clauses in KB order. Unknown
		// predicates are simply false (no matching clause), per spec.md
		// §4.2 "unknown predicate — treated as false".
		var matches []choicePoint
		for _, clause := range r.Clauses {
			renameCounter++
			renamed := clause.rename(fmt.Sprintf("#%d", renameCounter))
			newSub, ok := Unify(goal, renamed.Head, cp.sub)
			if !ok {
				continue
			}
			newGoals := append(append([]Term{}, renamed.Body...), rest...)
			matches = append(matches, choicePoint{goals: newGoals, sub: newSub, depth: cp.depth + 1})
		}
		for i := len(matches) - 1; i >= 0; i-- {
			stack = append(stack, matches[i])
		}
	}

	return len(solutions) > 0, solutions, nil
}
