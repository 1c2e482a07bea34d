package adl

// Clause is a Horn clause: Head holds whenever every term in Body holds.
// A fact is a Clause with an empty Body. Clauses are used both for
// derived-predicate axioms declared on a Domain and, internally, to encode
// typed objects and facts as unit clauses when a Resolver needs to reason
// over the whole knowledge base (spec.md §4.2).
type Clause struct {
	Head Term
	Body []Term
}

// NewFact returns a fact clause (empty body).
func NewFact(head Term) Clause {
	return Clause{Head: head}
}

// NewRule returns a rule clause.
func NewRule(head Term, body ...Term) Clause {
	return Clause{Head: head, Body: body}
}

// IsFact reports whether the clause has no body.
func (c Clause) IsFact() bool { return len(c.Body) == 0 }

// rename returns a copy of c with every variable replaced by a fresh one
// distinguished by suffix, so that successive clause trials during
// resolution never let one clause's variables leak into another's.
func (c Clause) rename(suffix string) Clause {
	subst := map[string]Term{}
	for _, v := range Vars(c.Head) {
		subst[v.Name] = NewVar(v.Name + suffix)
	}
	for _, t := range c.Body {
		for _, v := range Vars(t) {
			if _, ok := subst[v.Name]; !ok {
				subst[v.Name] = NewVar(v.Name + suffix)
			}
		}
	}
	body := make([]Term, len(c.Body))
	for i, t := range c.Body {
		body[i] = Substitute(t, subst)
	}
	return Clause{Head: Substitute(c.Head, subst), Body: body}
}
