package adl

// ActionSchema is a lifted action (spec.md §3): a name, ordered typed
// parameters, a precondition term and an effect term, both still
// containing the schema's parameter variables.
type ActionSchema struct {
	Name       string
	Params     []*Var
	ParamTypes []string // parallel to Params
	Precond    Term
	Effect     Term
}

// Domain is the static description of a planning problem's vocabulary
// (spec.md §3): type hierarchy, predicate/function signatures, function
// bodies, action schemas, derived-predicate axioms, and declared
// constants.
type Domain struct {
	Name string

	// supertypes maps a declared subtype to its immediate supertypes;
	// multiple supertypes are permitted (spec.md §3).
	supertypes map[string][]string
	// closure[t] is the set of t and all of t's transitive supertypes,
	// precomputed once at Finalize so IsType/HasSubtypes are O(1) per
	// SPEC_FULL.md §6 (grounding is the hot path).
	closure    map[string]map[string]bool
	subtypes   map[string][]string // immediate subtypes, for HasSubtypes
	knownTypes map[string]bool     // every declared type name, leaf or not

	predicates map[string]int // name -> arity
	functions  map[string]int // name -> arity
	funcdefs   map[string]*FuncDef

	actions []*ActionSchema
	axioms  []Clause

	constants map[string]string // name -> type
}

// NewDomain returns an empty domain ready for declarations, named name.
func NewDomain(name string) *Domain {
	return &Domain{
		Name:       name,
		supertypes: make(map[string][]string),
		closure:    make(map[string]map[string]bool),
		subtypes:   make(map[string][]string),
		knownTypes: make(map[string]bool),
		predicates: make(map[string]int),
		functions:  make(map[string]int),
		funcdefs:   make(map[string]*FuncDef),
		constants:  make(map[string]string),
	}
}

// DeclareType records that sub is an immediate subtype of super. Call
// Finalize after all DeclareType calls to (re)compute the transitive
// closure used by IsType/HasSubtypes.
func (d *Domain) DeclareType(sub, super string) {
	d.knownTypes[sub] = true
	d.knownTypes[super] = true
	for _, s := range d.supertypes[sub] {
		if s == super {
			return
		}
	}
	d.supertypes[sub] = append(d.supertypes[sub], super)
	d.subtypes[super] = append(d.subtypes[super], sub)
}

// RegisterType declares name as a known type with no explicit supertype
// (a base/leaf type), so IsDeclaredType and Finalize's closure computation
// recognize it even when it never appears in a DeclareType call.
func (d *Domain) RegisterType(name string) {
	d.knownTypes[name] = true
}

// IsDeclaredType reports whether name has been declared as a type via
// DeclareType or RegisterType, distinguishing a type-predicate query
// (`block(?x)`) from an ordinary unary predicate (`clear(?x)`) in the
// satisfaction engine's fast path (spec.md §4.6).
func (d *Domain) IsDeclaredType(name string) bool {
	return d.knownTypes[name]
}

// DeclarePredicate records a predicate signature (name and arity).
func (d *Domain) DeclarePredicate(name string, arity int) {
	d.predicates[name] = arity
}

// DeclareFunction records a function (fluent) signature.
func (d *Domain) DeclareFunction(name string, arity int) {
	d.functions[name] = arity
}

// DeclareFuncDef records a domain-defined numeric function body, merged
// into the global function table at evaluation time.
func (d *Domain) DeclareFuncDef(fd *FuncDef) {
	d.funcdefs[fd.Name] = fd
}

// DeclareAction appends an action schema in declaration order.
func (d *Domain) DeclareAction(a *ActionSchema) {
	d.actions = append(d.actions, a)
}

// DeclareAxiom appends a derived-predicate clause in declaration order.
func (d *Domain) DeclareAxiom(c Clause) {
	d.axioms = append(d.axioms, c)
}

// DeclareConstant records a domain-level constant and its type.
func (d *Domain) DeclareConstant(name, typeName string) {
	d.constants[name] = typeName
}

// Finalize computes the transitive type closure. It must be called after
// all DeclareType calls and before any IsType/HasSubtypes/GetObjects(type)
// query; constructing a Domain through a builder that calls Finalize once
// at the end (as the example domains in this repo do) is the intended
// usage.
func (d *Domain) Finalize() {
	d.closure = make(map[string]map[string]bool, len(d.supertypes))
	allTypes := make(map[string]bool)
	for t := range d.knownTypes {
		allTypes[t] = true
	}
	for t, supers := range d.supertypes {
		allTypes[t] = true
		for _, s := range supers {
			allTypes[s] = true
		}
	}
	for t := range allTypes {
		d.closure[t] = d.closeType(t, map[string]bool{})
	}
}

func (d *Domain) closeType(t string, visiting map[string]bool) map[string]bool {
	if visiting[t] {
		return map[string]bool{t: true}
	}
	visiting[t] = true
	out := map[string]bool{t: true}
	for _, s := range d.supertypes[t] {
		for anc := range d.closeType(s, visiting) {
			out[anc] = true
		}
	}
	return out
}

// IsType reports whether objType is typeName or a declared subtype of it
// (transitively), per spec.md §4.4.
func (d *Domain) IsType(objType, typeName string) bool {
	if objType == typeName {
		return true
	}
	closure, ok := d.closure[objType]
	if !ok {
		return false
	}
	return closure[typeName]
}

// HasSubtypes reports whether typeName has any declared immediate
// subtype, used by the satisfaction engine's fast path (spec.md §4.6: a
// type predicate whose type has subtypes defers to the resolver).
func (d *Domain) HasSubtypes(typeName string) bool {
	return len(d.subtypes[typeName]) > 0
}

// ObjTypeEntry is one (object name, declared type) pair produced by
// GetObjTypes.
type ObjTypeEntry struct {
	Name string
	Type string
}

// GetObjTypes returns every object declared in state together with its
// declared type, in declaration order (spec.md §4.8: tie-breaking among
// facts is by insertion order of declared objects) — a map cannot carry
// that order, so this returns an ordered slice of pairs rather than
// map[string]string.
func (d *Domain) GetObjTypes(s *State) []ObjTypeEntry {
	out := make([]ObjTypeEntry, 0, len(s.order))
	for _, name := range s.Objects() {
		ot, _ := s.ObjectType(name)
		out = append(out, ObjTypeEntry{Name: name, Type: ot})
	}
	return out
}

// GetObjects returns the objects declared in state, optionally filtered to
// those whose declared type IsType-matches typeName, in declaration order
// (spec.md §4.8, §8 property 2: grounding order follows insertion order of
// declared objects, not a sort).
func (d *Domain) GetObjects(s *State, typeName string) []string {
	var out []string
	for _, name := range s.Objects() {
		ot, _ := s.ObjectType(name)
		if typeName == "" || d.IsType(ot, typeName) {
			out = append(out, name)
		}
	}
	return out
}

// GetClauses returns the domain's derived-predicate axioms in declaration
// order.
func (d *Domain) GetClauses() []Clause {
	return d.axioms
}

// GetActions returns the domain's action schemas in declaration order.
func (d *Domain) GetActions() []*ActionSchema {
	return d.actions
}

// GetArgTypes returns an action's parameter types, parallel to
// GetArgVars.
func (d *Domain) GetArgTypes(a *ActionSchema) []string { return a.ParamTypes }

// GetArgVars returns an action's parameter variables.
func (d *Domain) GetArgVars(a *ActionSchema) []*Var { return a.Params }

// IsFunc reports whether name is a declared function (fluent) symbol.
func (d *Domain) IsFunc(name string) bool {
	_, ok := d.functions[name]
	return ok
}

// IsDerived reports whether name is defined by at least one axiom.
func (d *Domain) IsDerived(name string) bool {
	for _, c := range d.axioms {
		if headName(c.Head) == name {
			return true
		}
	}
	return false
}

// GetConstants returns the domain's declared constants and their types.
func (d *Domain) GetConstants() map[string]string {
	out := make(map[string]string, len(d.constants))
	for k, v := range d.constants {
		out[k] = v
	}
	return out
}

// HasSignature reports whether name is declared as a predicate or
// function in this domain (used by Evaluate/CheckTerm to distinguish a
// genuine fluent from an UnknownSymbolError).
func (d *Domain) HasSignature(name string) bool {
	if _, ok := d.predicates[name]; ok {
		return true
	}
	if _, ok := d.functions[name]; ok {
		return true
	}
	return d.IsDerived(name)
}

func (d *Domain) funcdef(name string) (*FuncDef, bool) {
	fd, ok := d.funcdefs[name]
	return fd, ok
}

func headName(t Term) string {
	switch h := t.(type) {
	case *Compound:
		return h.Name
	case *Const:
		return h.Name
	default:
		return ""
	}
}

// constype reports the declared type of a domain constant, for the
// satisfaction engine's fast-path type-predicate check (spec.md §4.6).
func (d *Domain) constype(name string) (string, bool) {
	t, ok := d.constants[name]
	return t, ok
}
