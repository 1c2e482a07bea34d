package adl

import "fmt"

// NumericUpdate is one `(fluent term, update expression)` pair in a
// GenericDiff's numeric-assignment sequence (spec.md §3).
type NumericUpdate struct {
	Fluent Term
	Update Term // assign(f, v) | increase(f, v) | decrease(f, v) | scale-up | scale-down, evaluated against the state at Apply time
}

// GenericDiff is the unconditional effect representation of spec.md §3:
// atoms to add, atoms to delete, and an ordered sequence of numeric
// assignments.
type GenericDiff struct {
	Add     []Term
	Del     []Term
	Numeric []NumericUpdate
}

// ConditionalDiff is the conditional-effect representation of spec.md §3:
// parallel Conds/Diffs sequences. At Apply time every branch whose Cond
// currently holds contributes its Diff; contributions are merged in
// branch-declaration order (deletes across all true branches, then adds,
// then assignments in branch order — spec.md §3, and DESIGN.md's Open
// Question 3 decision).
type ConditionalDiff struct {
	Conds []Term // CNF-normalized precondition per branch, or nil for unconditional
	Diffs []*GenericDiff
}

// Diff is either a *GenericDiff or a *ConditionalDiff.
type Diff interface {
	isDiff()
}

func (*GenericDiff) isDiff()     {}
func (*ConditionalDiff) isDiff() {}

// EffectDiff converts an effect term into a GenericDiff (spec.md §4.7).
// The effect term must already have had its forall/exists and when()
// forms removed by dequantify/flatten_conditions (spec.md §4.8) — this
// function accepts only and/not/assign/increase/decrease/scale-up/
// scale-down/atomic-proposition forms, and returns a MalformedEffectError
// for anything else (including double negation).
func EffectDiff(d *Domain, s *State, effect Term) (*GenericDiff, error) {
	diff := &GenericDiff{}
	if err := accumulateEffect(d, s, effect, diff); err != nil {
		return nil, err
	}
	return diff, nil
}

func accumulateEffect(d *Domain, s *State, effect Term, diff *GenericDiff) error {
	c, ok := effect.(*Compound)
	if !ok {
		// A bare atomic proposition (Const), e.g. `handempty`.
		if !effect.IsGround() {
			return &MalformedEffectError{Term: effect, Reason: "effect atom is not ground after substitution"}
		}
		diff.Add = append(diff.Add, effect)
		return nil
	}

	switch c.Name {
	case And:
		for _, a := range c.Args {
			if err := accumulateEffect(d, s, a, diff); err != nil {
				return err
			}
		}
		return nil

	case Not:
		if len(c.Args) != 1 {
			return &MalformedEffectError{Term: effect, Reason: "not/1 expected"}
		}
		if inner, ok := c.Args[0].(*Compound); ok && inner.Name == Not {
			return &MalformedEffectError{Term: effect, Reason: "double negation in effect"}
		}
		diff.Del = append(diff.Del, c.Args[0])
		return nil

	case Assign, Incr, Decr, ScaleUp, ScaleDn:
		if len(c.Args) != 2 {
			return &MalformedEffectError{Term: effect, Reason: c.Name + "/2 expected"}
		}
		diff.Numeric = append(diff.Numeric, NumericUpdate{Fluent: c.Args[0], Update: effect})
		return nil

	case When, Forall:
		return &MalformedEffectError{Term: effect, Reason: "conditional/quantified effect reached effect_diff unflattened"}

	case Or, Imply, Exists:
		return &MalformedEffectError{Term: effect, Reason: c.Name + " is not a supported effect connective"}

	default:
		if !effect.IsGround() {
			return &MalformedEffectError{Term: effect, Reason: "effect atom is not ground after substitution"}
		}
		diff.Add = append(diff.Add, effect)
		return nil
	}
}

// resolveNumeric evaluates a single numeric update's new value against the
// current state, per the assign/increase/decrease/scale-up/scale-down
// semantics of spec.md §4.7.
func resolveNumeric(d *Domain, s *State, u NumericUpdate) (interface{}, error) {
	c := u.Update.(*Compound)
	rhs, err := Evaluate(d, s, c.Args[1])
	if err != nil {
		return nil, err
	}
	rf, rok := rhs.(float64)
	if !rok {
		if i, ok := rhs.(int); ok {
			rf, rok = float64(i), true
		}
	}

	switch c.Name {
	case Assign:
		return rhs, nil
	}

	if !rok {
		return nil, &TypeMismatchError{Op: c.Name, Term: u.Update, Want: "number"}
	}

	current := s.GetFluent(u.Fluent)
	cf, cok := current.(float64)
	if !cok {
		if i, ok := current.(int); ok {
			cf, cok = float64(i), true
		}
	}
	if !cok {
		cf = 0
	}

	switch c.Name {
	case Incr:
		return cf + rf, nil
	case Decr:
		return cf - rf, nil
	case ScaleUp:
		return cf * rf, nil
	case ScaleDn:
		if rf == 0 {
			return nil, fmt.Errorf("adl: scale-down by zero")
		}
		return cf / rf, nil
	default:
		return nil, &TypeMismatchError{Op: c.Name, Term: u.Update, Want: "numeric update"}
	}
}

// ApplyDiff mutates state in place according to diff: deletes before adds,
// numeric assignments last (spec.md §4.7); a conflicting add+delete of
// the same atom in one GenericDiff resolves add-after-delete, so the atom
// ends up present.
func ApplyDiff(d *Domain, s *State, diff Diff) error {
	switch dd := diff.(type) {
	case *GenericDiff:
		return applyGeneric(d, s, dd)
	case *ConditionalDiff:
		return applyConditional(d, s, dd)
	default:
		return fmt.Errorf("adl: unknown diff kind %T", diff)
	}
}

func applyGeneric(d *Domain, s *State, diff *GenericDiff) error {
	for _, t := range diff.Del {
		s.RemoveFact(t)
	}
	for _, t := range diff.Add {
		if err := s.AddFact(t); err != nil {
			return err
		}
	}
	for _, u := range diff.Numeric {
		val, err := resolveNumeric(d, s, u)
		if err != nil {
			return err
		}
		if err := s.SetFluent(u.Fluent, val); err != nil {
			return err
		}
	}
	return nil
}

// applyConditional applies every branch whose Cond currently holds, with
// deletes from all active branches first, then adds, then numeric
// assignments in branch-declaration order (DESIGN.md Open Question 3).
func applyConditional(d *Domain, s *State, cd *ConditionalDiff) error {
	var active []*GenericDiff
	for i, cond := range cd.Conds {
		if cond == nil {
			active = append(active, cd.Diffs[i])
			continue
		}
		ok, err := Satisfy(d, s, []Term{cond}, DefaultConfig())
		if err != nil {
			return err
		}
		if ok {
			active = append(active, cd.Diffs[i])
		}
	}
	for _, diff := range active {
		for _, t := range diff.Del {
			s.RemoveFact(t)
		}
	}
	for _, diff := range active {
		for _, t := range diff.Add {
			if err := s.AddFact(t); err != nil {
				return err
			}
		}
	}
	for _, diff := range active {
		for _, u := range diff.Numeric {
			val, err := resolveNumeric(d, s, u)
			if err != nil {
				return err
			}
			if err := s.SetFluent(u.Fluent, val); err != nil {
				return err
			}
		}
	}
	return nil
}
