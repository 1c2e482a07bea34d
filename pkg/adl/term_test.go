package adl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermString(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"var", NewVar("X"), "?X"},
		{"const", NewConst("a"), "a"},
		{"literal", NewLiteral(3.0), "3"},
		{"nullary_compound", Comp("handempty"), "(handempty)"},
		{"compound", Comp("on", NewConst("a"), NewConst("b")), "(on a b)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestTermIsGround(t *testing.T) {
	assert.False(t, NewVar("X").IsGround())
	assert.True(t, NewConst("a").IsGround())
	assert.True(t, Comp("on", NewConst("a"), NewConst("b")).IsGround())
	assert.False(t, Comp("on", NewVar("X"), NewConst("b")).IsGround())
}

func TestTermEqual(t *testing.T) {
	a := Comp("on", NewConst("a"), NewVar("X"))
	b := Comp("on", NewConst("a"), NewVar("X"))
	c := Comp("on", NewConst("a"), NewVar("Y"))
	require.True(t, TermEqual(a, b))
	require.False(t, TermEqual(a, c))
	require.False(t, TermEqual(NewConst("a"), NewConst("b")))
}

func TestSortTermsDeterministic(t *testing.T) {
	ts1 := []Term{Comp("on", NewConst("b"), NewConst("a")), NewConst("z"), NewVar("X")}
	ts2 := []Term{NewVar("X"), NewConst("z"), Comp("on", NewConst("b"), NewConst("a"))}
	SortTerms(ts1)
	SortTerms(ts2)
	require.Equal(t, len(ts1), len(ts2))
	for i := range ts1 {
		assert.True(t, TermEqual(ts1[i], ts2[i]))
	}
}

func TestVarsFirstOccurrenceOrder(t *testing.T) {
	term := Comp("on", NewVar("X"), Comp("f", NewVar("Y"), NewVar("X")))
	vs := Vars(term)
	require.Len(t, vs, 2)
	assert.Equal(t, "X", vs[0].Name)
	assert.Equal(t, "Y", vs[1].Name)
}
