package adl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectDiffSimpleAddDelete(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	effect := Comp(And,
		Comp("on", NewConst("a"), NewConst("b")),
		Comp(Not, Comp("clear", NewConst("b"))),
		Comp(Not, NewConst("handempty")),
	)
	diff, err := EffectDiff(d, s, effect)
	require.NoError(t, err)
	require.Len(t, diff.Add, 1)
	require.Len(t, diff.Del, 2)
	assert.Equal(t, "(on a b)", diff.Add[0].String())
}

func TestEffectDiffRejectsDoubleNegation(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	_, err := EffectDiff(d, s, Comp(Not, Comp(Not, Comp("clear", NewConst("a")))))
	require.Error(t, err)
	var mee *MalformedEffectError
	assert.ErrorAs(t, err, &mee)
}

func TestEffectDiffRejectsNonGroundAtom(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	_, err := EffectDiff(d, s, Comp("on", NewVar("X"), NewConst("b")))
	require.Error(t, err)
}

func TestEffectDiffNumericAssign(t *testing.T) {
	d := NewDomain("d")
	d.DeclareFunction("total-cost", 0)
	d.Finalize()
	s := NewState()
	require.NoError(t, s.SetFluent(NewConst("total-cost"), 10.0))

	diff, err := EffectDiff(d, s, Comp(Incr, NewConst("total-cost"), NewLiteral(5.0)))
	require.NoError(t, err)
	require.Len(t, diff.Numeric, 1)

	require.NoError(t, ApplyDiff(d, s, diff))
	assert.Equal(t, 15.0, s.GetFluent(NewConst("total-cost")))
}

func TestApplyDiffDeleteBeforeAddConflictResolvesPresent(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))
	atom := Comp("clear", NewConst("a"))

	diff := &GenericDiff{Add: []Term{atom}, Del: []Term{atom}}
	require.NoError(t, ApplyDiff(d, s, diff))
	assert.True(t, s.HasFact(atom))
}

func TestApplyConditionalDiffMultipleActiveBranches(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))
	require.NoError(t, s.AddObject("b", "block"))
	require.NoError(t, s.AddFact(Comp("on", NewConst("a"), NewConst("b"))))

	cd := &ConditionalDiff{
		Conds: []Term{Comp("on", NewConst("a"), NewConst("b")), nil},
		Diffs: []*GenericDiff{
			{Add: []Term{Comp("clear", NewConst("b"))}},
			{Add: []Term{NewConst("handempty")}},
		},
	}
	require.NoError(t, ApplyDiff(d, s, cd))
	assert.True(t, s.HasFact(Comp("clear", NewConst("b"))))
	assert.True(t, s.HasFact(NewConst("handempty")))
}

func TestApplyConditionalDiffInactiveBranchSkipped(t *testing.T) {
	d := blocksworldDomain()
	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))

	cd := &ConditionalDiff{
		Conds: []Term{Comp("on", NewConst("a"), NewConst("b"))},
		Diffs: []*GenericDiff{{Add: []Term{Comp("clear", NewConst("b"))}}},
	}
	require.NoError(t, ApplyDiff(d, s, cd))
	assert.False(t, s.HasFact(Comp("clear", NewConst("b"))))
}
