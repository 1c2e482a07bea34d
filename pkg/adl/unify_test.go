package adl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyTerms(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Term
		wantOK  bool
		checkX  string // if non-empty, expect ?X to walk to this rendered term
	}{
		{"const_const_match", NewConst("a"), NewConst("a"), true, ""},
		{"const_const_mismatch", NewConst("a"), NewConst("b"), false, ""},
		{"var_binds_const", NewVar("X"), NewConst("a"), true, "a"},
		{"const_binds_var", NewConst("a"), NewVar("X"), true, "a"},
		{"compound_match", Comp("on", NewVar("X"), NewConst("b")), Comp("on", NewConst("a"), NewConst("b")), true, "a"},
		{"compound_arity_mismatch", Comp("on", NewConst("a")), Comp("on", NewConst("a"), NewConst("b")), false, ""},
		{"compound_name_mismatch", Comp("on", NewConst("a")), Comp("under", NewConst("a")), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, ok := UnifyTerms(tt.a, tt.b)
			require.Equal(t, tt.wantOK, ok)
			if tt.checkX != "" {
				require.NotNil(t, sub)
				assert.Equal(t, tt.checkX, sub.Walk(NewVar("X")).String())
			}
		})
	}
}

func TestUnifyVarToVar(t *testing.T) {
	sub, ok := UnifyTerms(NewVar("X"), NewVar("Y"))
	require.True(t, ok)
	walked := sub.Walk(NewVar("X"))
	_, isVar := walked.(*Var)
	assert.True(t, isVar)
}

func TestUnifyPreservesExistingBindings(t *testing.T) {
	sub := NewSubst().Bind(NewVar("X"), NewConst("a"))
	out, ok := Unify(NewVar("X"), NewConst("a"), sub)
	require.True(t, ok)
	assert.Equal(t, "a", out.Walk(NewVar("X")).String())

	_, ok = Unify(NewVar("X"), NewConst("b"), sub)
	assert.False(t, ok)
}
