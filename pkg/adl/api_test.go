package adl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickupProblem() (*Domain, *Problem) {
	d := NewDomain("blocksworld")
	d.RegisterType("block")
	d.DeclarePredicate("clear", 1)
	d.DeclarePredicate("ontable", 1)
	d.DeclarePredicate("holding", 1)
	d.DeclarePredicate("handempty", 0)
	d.DeclareAction(pickupAction())
	d.Finalize()

	problem := &Problem{
		Domain: d,
		Objects: []ObjectDecl{
			{Name: "a", Type: "block"},
			{Name: "b", Type: "block"},
		},
		Init: []Term{
			Comp("clear", NewConst("a")),
			Comp("ontable", NewConst("a")),
			Comp("ontable", NewConst("b")),
			NewConst("handempty"),
		},
		Goal: Comp("holding", NewConst("a")),
	}
	return d, problem
}

func TestInitStateAppliesFactsAndAssignments(t *testing.T) {
	d := NewDomain("d")
	d.DeclareFunction("total-cost", 0)
	d.Finalize()
	problem := &Problem{
		Domain:  d,
		Objects: []ObjectDecl{{Name: "a", Type: "block"}},
		Init: []Term{
			Comp("clear", NewConst("a")),
			Comp(Assign, NewConst("total-cost"), NewLiteral(0.0)),
		},
	}
	s, err := InitState(problem)
	require.NoError(t, err)
	assert.True(t, s.HasFact(Comp("clear", NewConst("a"))))
	assert.Equal(t, 0.0, s.GetFluent(NewConst("total-cost")))
}

func TestGoalStateReturnsGoalTerm(t *testing.T) {
	_, problem := pickupProblem()
	assert.True(t, TermEqual(GoalState(problem), problem.Goal))
}

func TestAvailableFiltersByPrecondition(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	avail, err := Available(d, s, DefaultConfig())
	require.NoError(t, err)
	names := map[string]bool{}
	for _, ga := range avail {
		names[ga.Term.String()] = true
	}
	assert.True(t, names["(pickup a)"])
}

func TestExecuteAppliesDiffOnCopy(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	avail, err := Available(d, s, DefaultConfig())
	require.NoError(t, err)
	var pickA *GroundAction
	for _, ga := range avail {
		if ga.Term.String() == "(pickup a)" {
			pickA = ga
		}
	}
	require.NotNil(t, pickA)

	next, err := Execute(d, s, pickA, DefaultConfig())
	require.NoError(t, err)
	assert.True(t, next.HasFact(Comp("holding", NewConst("a"))))
	assert.False(t, next.HasFact(NewConst("handempty")))
	// s itself must remain untouched.
	assert.True(t, s.HasFact(NewConst("handempty")))
}

func TestExecuteFailsWhenPreconditionDoesNotHold(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	ga := &GroundAction{
		Name:     "pickup",
		Term:     Comp("pickup", NewConst("b")),
		Preconds: toCNF(Comp("clear", NewConst("b"))),
		Effect:   &GenericDiff{Add: []Term{Comp("holding", NewConst("b"))}},
	}
	_, err = Execute(d, s, ga, DefaultConfig())
	require.Error(t, err)
	var pe *PreconditionError
	assert.ErrorAs(t, err, &pe)
}

func TestTransitionLooksUpMatchingGroundAction(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	next, err := Transition(d, s, Comp("pickup", NewConst("a")), DefaultConfig())
	require.NoError(t, err)
	assert.True(t, next.HasFact(Comp("holding", NewConst("a"))))
}

func TestRelevantFindsActionsAchievingGoal(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	rel, err := Relevant(d, s, Comp("holding", NewConst("a")), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rel, 1)
	assert.Equal(t, "(pickup a)", rel[0].Term.String())
}

func TestRegressComputesPredecessorGoal(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	avail, err := Available(d, s, DefaultConfig())
	require.NoError(t, err)
	var pickA *GroundAction
	for _, ga := range avail {
		if ga.Term.String() == "(pickup a)" {
			pickA = ga
		}
	}
	require.NotNil(t, pickA)

	pre, err := Regress(d, s, pickA, Comp("holding", NewConst("a")), DefaultConfig())
	require.NoError(t, err)
	// holding(a) is achieved by pickup(a)'s add list, so it drops out,
	// leaving exactly the action's own precondition.
	assert.True(t, TermEqual(pre, pickA.Preconds.ToTerm()))
}

func TestRegressRejectsDeletedGoalLiteral(t *testing.T) {
	d, problem := pickupProblem()
	s, err := InitState(problem)
	require.NoError(t, err)

	avail, err := Available(d, s, DefaultConfig())
	require.NoError(t, err)
	var pickA *GroundAction
	for _, ga := range avail {
		if ga.Term.String() == "(pickup a)" {
			pickA = ga
		}
	}
	require.NotNil(t, pickA)

	_, err = Regress(d, s, pickA, NewConst("handempty"), DefaultConfig())
	require.Error(t, err)
}
