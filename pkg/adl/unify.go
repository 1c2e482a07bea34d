package adl

// Unify attempts to make a and b structurally identical by extending sub
// with new variable bindings. It returns the extended substitution and
// true on success, or (nil, false) on failure. Occurs-check is disabled,
// per spec.md §4.1 ("the domain is not self-referential") — this mirrors
// the teacher's unify() in pkg/minikanren/primitives.go, generalized from
// binary Pair recursion to n-ary Compound argument-by-argument recursion.
func Unify(a, b Term, sub *Subst) (*Subst, bool) {
	wa := sub.Walk(a)
	wb := sub.Walk(b)

	if TermEqual(wa, wb) {
		return sub, true
	}

	if v, ok := wa.(*Var); ok {
		return sub.Bind(v, wb), true
	}
	if v, ok := wb.(*Var); ok {
		return sub.Bind(v, wa), true
	}

	ca, aok := wa.(*Compound)
	cb, bok := wb.(*Compound)
	if aok && bok {
		if ca.Name != cb.Name || len(ca.Args) != len(cb.Args) {
			return nil, false
		}
		cur := sub
		for i := range ca.Args {
			var ok bool
			cur, ok = Unify(ca.Args[i], cb.Args[i], cur)
			if !ok {
				return nil, false
			}
		}
		return cur, true
	}

	// Two Consts reach here only when TermEqual above was false, i.e.
	// distinct atoms/literals: unification fails. A Const against a
	// Compound also fails.
	return nil, false
}

// UnifyTerms is a convenience entry point starting from an empty
// substitution.
func UnifyTerms(a, b Term) (*Subst, bool) {
	return Unify(a, b, NewSubst())
}
