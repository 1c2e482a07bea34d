package adl

import "fmt"

// FuncDef is a domain-defined numeric function body (spec.md §4.4
// `funcdefs`): an expression over the function's own parameters, merged
// into the global function table at evaluation time (spec.md §9 "Global
// function registry" — built once, passed explicitly, no process-wide
// state).
type FuncDef struct {
	Name   string
	Params []*Var
	Body   Term
}

// builtinArith and comparisonOps are the global function table's fixed
// entries (spec.md §4.5): arithmetic, comparison, and the min/max/mod
// additions recorded in SPEC_FULL.md §6. Each builtinArith entry takes
// already-evaluated numeric operands; comparisonOps names the operators
// that CompareValues applies.
var builtinArith = map[string]func(a, b float64) (float64, error){
	"+": func(a, b float64) (float64, error) { return a + b, nil },
	"-": func(a, b float64) (float64, error) { return a - b, nil },
	"*": func(a, b float64) (float64, error) { return a * b, nil },
	"/": func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("adl: division by zero")
		}
		return a / b, nil
	},
	"min": func(a, b float64) (float64, error) {
		if a < b {
			return a, nil
		}
		return b, nil
	},
	"max": func(a, b float64) (float64, error) {
		if a > b {
			return a, nil
		}
		return b, nil
	},
	"mod": func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, fmt.Errorf("adl: modulo by zero")
		}
		ai, bi := int64(a), int64(b)
		return float64(ai % bi), nil
	},
}

var comparisonOps = map[string]bool{
	"=": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true,
	"≤": true, "≥": true,
}

// IsBuiltinFunc reports whether name is a built-in arithmetic or
// comparison symbol, i.e. always present in the global function table
// regardless of domain.
func IsBuiltinFunc(name string) bool {
	_, arith := builtinArith[name]
	return arith || comparisonOps[name]
}

// toFloat coerces a value produced by Evaluate into a float64 for
// arithmetic, surfacing a TypeMismatchError when it cannot.
func toFloat(v interface{}, term Term) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, &TypeMismatchError{Op: "arithmetic", Term: term, Want: "number"}
	}
}

// CompareValues implements the comparison operators over two already-
// evaluated values. Equality/inequality work over any comparable Go value
// (numbers, strings, booleans, atoms compared by their underlying value);
// ordering operators require both operands to coerce to float64.
func CompareValues(op string, a, b interface{}) (bool, error) {
	switch op {
	case "=":
		return valuesEqual(a, b), nil
	case "!=":
		return !valuesEqual(a, b), nil
	}
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if !aok {
		if i, ok := a.(int); ok {
			af, aok = float64(i), true
		}
	}
	if !bok {
		if i, ok := b.(int); ok {
			bf, bok = float64(i), true
		}
	}
	if !aok || !bok {
		return false, fmt.Errorf("adl: comparison %s requires numeric operands, got %v, %v", op, a, b)
	}
	switch op {
	case "<":
		return af < bf, nil
	case "<=", "≤":
		return af <= bf, nil
	case ">":
		return af > bf, nil
	case ">=", "≥":
		return af >= bf, nil
	default:
		return false, fmt.Errorf("adl: unknown comparison operator %q", op)
	}
}

func valuesEqual(a, b interface{}) bool {
	if af, ok := numeric(a); ok {
		if bf, ok := numeric(b); ok {
			return af == bf
		}
	}
	return a == b
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Evaluate reduces a ground (or state-resolvable) term to a value,
// following spec.md §4.5:
//
//   - Const: if it is a literal, its Value; otherwise a scalar fluent
//     lookup against state, falling back to the symbol's own name when
//     the state has no such field.
//   - Compound: if Name is in the global function table (built-ins or a
//     domain funcdef), evaluate the arguments and apply the function;
//     otherwise treat it as a fluent lookup via GetFluent.
//
// Evaluate never partially evaluates: every subterm reachable from term
// must be ground, or a fluent already resolvable against state, or
// Evaluate returns an UnknownSymbolError/TypeMismatchError.
func Evaluate(d *Domain, s *State, term Term) (interface{}, error) {
	switch t := term.(type) {
	case *Var:
		return nil, &UnknownSymbolError{Symbol: t.Name}

	case *Const:
		if t.IsLiteral() {
			return t.Value, nil
		}
		if v, ok := s.scalarValue(t.Name); ok {
			return v, nil
		}
		if s.HasFact(t) {
			return true, nil
		}
		return t.Name, nil

	case *Compound:
		if fd, ok := d.funcdef(t.Name); ok {
			if len(fd.Params) != len(t.Args) {
				return nil, &ArityError{Symbol: t.Name, Want: len(fd.Params), Got: len(t.Args)}
			}
			subst := SubstFromPairs(fd.Params, t.Args)
			body := Substitute(fd.Body, subst)
			return Evaluate(d, s, body)
		}

		if comparisonOps[t.Name] {
			if len(t.Args) != 2 {
				return nil, &ArityError{Symbol: t.Name, Want: 2, Got: len(t.Args)}
			}
			av, err := Evaluate(d, s, t.Args[0])
			if err != nil {
				return nil, err
			}
			bv, err := Evaluate(d, s, t.Args[1])
			if err != nil {
				return nil, err
			}
			return CompareValues(t.Name, av, bv)
		}

		if fn, ok := builtinArith[t.Name]; ok {
			if len(t.Args) != 2 {
				return nil, &ArityError{Symbol: t.Name, Want: 2, Got: len(t.Args)}
			}
			av, err := Evaluate(d, s, t.Args[0])
			if err != nil {
				return nil, err
			}
			bv, err := Evaluate(d, s, t.Args[1])
			if err != nil {
				return nil, err
			}
			af, err := toFloat(av, t.Args[0])
			if err != nil {
				return nil, err
			}
			bf, err := toFloat(bv, t.Args[1])
			if err != nil {
				return nil, err
			}
			return fn(af, bf)
		}

		if !d.HasSignature(t.Name) {
			return nil, &UnknownSymbolError{Symbol: t.Name}
		}

		return s.GetFluent(t), nil

	default:
		return nil, &UnknownSymbolError{Symbol: fmt.Sprintf("%v", term)}
	}
}
