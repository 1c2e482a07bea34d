package adl

import (
	"hash/fnv"
	"sort"
)

// State is the generic world-state representation of spec.md §3: a set of
// typed objects, a set of ground boolean facts, and a nested mapping of
// numeric/structured fluent values. It is built in the style of the
// teacher's pldb.Database (pkg/minikanren/pldb.go) — ground facts
// deduplicated by their canonical String() key — but flattened from an
// indexed multi-relation store down to plain maps (types, facts, values),
// since grounding never needs column indexes, only membership tests.
// Copy is an eager deep copy, not copy-on-write.
type State struct {
	types  map[string]string        // object name -> declared type
	order  []string                 // object names in AddObject call order
	facts  map[string]Term          // canonical string -> ground Term, boolean-true propositions
	values map[string]*fluentValues // function/predicate symbol -> argument-tuple values
}

// fluentValues holds a possibly-nested mapping from argument tuple (joined
// key) to value for one function/predicate symbol, plus a zero-arity
// scalar slot for arity-0 fluents (spec.md §3 "State.values").
type fluentValues struct {
	scalar   interface{}
	hasScalar bool
	table    map[string]interface{} // argKey -> value
}

func newFluentValues() *fluentValues {
	return &fluentValues{table: make(map[string]interface{})}
}

func (fv *fluentValues) clone() *fluentValues {
	cp := &fluentValues{scalar: fv.scalar, hasScalar: fv.hasScalar, table: make(map[string]interface{}, len(fv.table))}
	for k, v := range fv.table {
		cp.table[k] = v
	}
	return cp
}

// NewState returns an empty state.
func NewState() *State {
	return &State{
		types:  make(map[string]string),
		facts:  make(map[string]Term),
		values: make(map[string]*fluentValues),
	}
}

// AddObject declares an object of the given type. Re-declaring the same
// object with a different type is an IllFormedStateError; re-declaring it
// with the same type is a no-op that does not disturb its position in
// declaration order.
func (s *State) AddObject(name, typeName string) error {
	if existing, ok := s.types[name]; ok {
		if existing != typeName {
			return &IllFormedStateError{Reason: "object " + name + " redeclared with a different type"}
		}
		return nil
	}
	s.types[name] = typeName
	s.order = append(s.order, name)
	return nil
}

// Objects returns the declared object names in declaration order (spec.md
// §4.8: tie-breaking among facts, and grounding order, follow insertion
// order of declared objects — not a sort).
func (s *State) Objects() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// ObjectType returns the declared type of name and whether it is declared.
func (s *State) ObjectType(name string) (string, bool) {
	t, ok := s.types[name]
	return t, ok
}

// AddFact adds a ground proposition to facts. It is a fatal IllFormedState
// condition for the same symbol to appear in both facts and values
// (spec.md §3 invariant (a)); AddFact returns an error if term's symbol
// already has an entry in values.
func (s *State) AddFact(term Term) error {
	name := fluentSymbol(term)
	if _, ok := s.values[name]; ok {
		return &IllFormedStateError{Reason: "symbol " + name + " used as both a fact and a fluent"}
	}
	s.facts[term.String()] = term
	return nil
}

// RemoveFact removes a ground proposition from facts, if present.
func (s *State) RemoveFact(term Term) {
	delete(s.facts, term.String())
}

// HasFact reports whether term is present in facts.
func (s *State) HasFact(term Term) bool {
	_, ok := s.facts[term.String()]
	return ok
}

// Facts returns the set of ground facts, sorted for deterministic
// iteration order (spec.md §8 property 2).
func (s *State) Facts() []Term {
	out := make([]Term, 0, len(s.facts))
	for _, t := range s.facts {
		out = append(out, t)
	}
	SortTerms(out)
	return out
}

func fluentSymbol(term Term) string {
	switch t := term.(type) {
	case *Const:
		return t.Name
	case *Compound:
		return t.Name
	default:
		return term.String()
	}
}

func argKey(args []Term) string {
	var b []byte
	for i, a := range args {
		if i > 0 {
			b = append(b, '|')
		}
		b = append(b, a.String()...)
	}
	return string(b)
}

// GetFluent implements spec.md §4.3: a Const looks up facts membership
// then a scalar value; a Compound looks up facts membership then the
// nested values table; absence at any layer returns false.
func (s *State) GetFluent(term Term) interface{} {
	switch t := term.(type) {
	case *Const:
		if s.HasFact(t) {
			return true
		}
		if v, ok := s.scalarValue(t.Name); ok {
			return v
		}
		return false
	case *Compound:
		if s.HasFact(t) {
			return true
		}
		fv, ok := s.values[t.Name]
		if !ok {
			return false
		}
		if v, ok := fv.table[argKey(t.Args)]; ok {
			return v
		}
		return false
	default:
		return false
	}
}

func (s *State) scalarValue(name string) (interface{}, bool) {
	fv, ok := s.values[name]
	if !ok || !fv.hasScalar {
		return nil, false
	}
	return fv.scalar, true
}

// SetFluent routes a value into facts (boolean true/false) or values
// (otherwise), per spec.md §4.3. Setting a boolean true adds the atom to
// facts; false removes it. A non-boolean value is stored in the nested
// values mapping, creating the inner table on demand.
func (s *State) SetFluent(term Term, value interface{}) error {
	if b, ok := value.(bool); ok {
		if b {
			return s.AddFact(term)
		}
		s.RemoveFact(term)
		return nil
	}

	name := fluentSymbol(term)
	if _, ok := s.facts[term.String()]; ok {
		return &IllFormedStateError{Reason: "symbol " + name + " used as both a fact and a fluent"}
	}
	fv, ok := s.values[name]
	if !ok {
		fv = newFluentValues()
		s.values[name] = fv
	}
	switch t := term.(type) {
	case *Const:
		fv.scalar = value
		fv.hasScalar = true
	case *Compound:
		fv.table[argKey(t.Args)] = value
	default:
		return &IllFormedStateError{Reason: "cannot set fluent on term " + term.String()}
	}
	return nil
}

// FluentEntry is one (term, value) pair produced by GetFluents.
type FluentEntry struct {
	Term  Term
	Value interface{}
}

// GetFluents enumerates every (term, value) pair the state holds: facts
// first (with implicit value true), then every entry of values expanded
// back to Const/Compound terms, in deterministic order (spec.md §4.3,
// promoted to a public iterator per SPEC_FULL.md §6).
func (s *State) GetFluents() []FluentEntry {
	var out []FluentEntry
	for _, t := range s.Facts() {
		out = append(out, FluentEntry{Term: t, Value: true})
	}
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fv := s.values[name]
		if fv.hasScalar {
			out = append(out, FluentEntry{Term: NewConst(name), Value: fv.scalar})
		}
		keys := make([]string, 0, len(fv.table))
		for k := range fv.table {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, FluentEntry{Term: argTermFromKey(name, k), Value: fv.table[k]})
		}
	}
	return out
}

// argTermFromKey reconstructs a Compound(name, args...) from the joined
// argument key produced by argKey, for enumeration purposes. Since object
// and literal names never contain '|', splitting on it round-trips.
func argTermFromKey(name, key string) Term {
	var args []Term
	start := 0
	for i := 0; i <= len(key); i++ {
		if i == len(key) || key[i] == '|' {
			args = append(args, NewConst(key[start:i]))
			start = i + 1
		}
	}
	return Comp(name, args...)
}

// Copy returns a deep, semantically independent copy: types and facts are
// copied shallowly (Terms are immutable), values is copied deeply because
// inner tables are mutated in place by SetFluent (spec.md §9 "Deep vs
// shallow copy").
func (s *State) Copy() *State {
	cp := NewState()
	for k, v := range s.types {
		cp.types[k] = v
	}
	cp.order = append(cp.order, s.order...)
	for k, v := range s.facts {
		cp.facts[k] = v
	}
	for k, v := range s.values {
		cp.values[k] = v.clone()
	}
	return cp
}

// Equal implements spec.md §3 invariant (c): set-equality on types and
// facts, deep equality on values.
func (s *State) Equal(other *State) bool {
	if len(s.types) != len(other.types) || len(s.facts) != len(other.facts) || len(s.values) != len(other.values) {
		return false
	}
	for k, v := range s.types {
		if ov, ok := other.types[k]; !ok || ov != v {
			return false
		}
	}
	for k := range s.facts {
		if _, ok := other.facts[k]; !ok {
			return false
		}
	}
	for name, fv := range s.values {
		ofv, ok := other.values[name]
		if !ok || fv.hasScalar != ofv.hasScalar || fv.scalar != ofv.scalar || len(fv.table) != len(ofv.table) {
			return false
		}
		for k, v := range fv.table {
			if ov, ok := ofv.table[k]; !ok || ov != v {
				return false
			}
		}
	}
	return true
}

// Hash returns an order-independent hash agreeing with Equal (spec.md §3
// invariant (c), §8 property 1), computed in the teacher's fnv-over-
// string-representation style (pkg/minikanren/pldb.go newFact) but summed
// rather than chained so that element order never affects the result.
func (s *State) Hash() uint64 {
	var total uint64
	for k, v := range s.types {
		total += hashString(k + "\x00" + v)
	}
	for k := range s.facts {
		total += hashString("F\x00" + k)
	}
	for name, fv := range s.values {
		if fv.hasScalar {
			total += hashString("S\x00" + name + "\x00" + sprintValue(fv.scalar))
		}
		for k, v := range fv.table {
			total += hashString("V\x00" + name + "\x00" + k + "\x00" + sprintValue(v))
		}
	}
	return total
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

func sprintValue(v interface{}) string {
	return NewLiteral(v).String()
}
