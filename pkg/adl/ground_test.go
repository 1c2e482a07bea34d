package adl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickupAction() *ActionSchema {
	x := NewVar("X")
	return &ActionSchema{
		Name:       "pickup",
		Params:     []*Var{x},
		ParamTypes: []string{"block"},
		Precond: Comp(And,
			Comp("clear", x),
			Comp("ontable", x),
			NewConst("handempty"),
		),
		Effect: Comp(And,
			Comp("holding", x),
			Comp(Not, Comp("ontable", x)),
			Comp(Not, Comp("clear", x)),
			Comp(Not, NewConst("handempty")),
		),
	}
}

func pickupDomainAndState(t *testing.T) (*Domain, *State) {
	t.Helper()
	d := NewDomain("blocksworld")
	d.RegisterType("block")
	d.DeclarePredicate("clear", 1)
	d.DeclarePredicate("ontable", 1)
	d.DeclarePredicate("holding", 1)
	d.DeclarePredicate("handempty", 0)
	d.DeclareAction(pickupAction())
	d.Finalize()

	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))
	require.NoError(t, s.AddObject("b", "block"))
	require.NoError(t, s.AddFact(Comp("clear", NewConst("a"))))
	require.NoError(t, s.AddFact(Comp("ontable", NewConst("a"))))
	require.NoError(t, s.AddFact(Comp("ontable", NewConst("b"))))
	require.NoError(t, s.AddFact(NewConst("handempty")))
	return d, s
}

func TestGroundActionsOneInstancePerObject(t *testing.T) {
	d, s := pickupDomainAndState(t)
	instances, err := GroundActions(d, s, d.GetActions()[0], DefaultConfig())
	require.NoError(t, err)
	require.Len(t, instances, 2)

	names := map[string]bool{}
	for _, ga := range instances {
		names[ga.Term.String()] = true
		assert.NotEmpty(t, ga.ID)
		// Each top-level effect conjunct is its own unconditional branch.
		cd, ok := ga.Effect.(*ConditionalDiff)
		require.True(t, ok)
		require.Len(t, cd.Diffs, 4)
		add, del := diffAddDel(cd)
		assert.Len(t, add, 1)
		assert.Len(t, del, 3)
	}
	assert.True(t, names["(pickup a)"])
	assert.True(t, names["(pickup b)"])
}

func TestGroundActionsNullaryActionYieldsOneGrounding(t *testing.T) {
	d := NewDomain("d")
	d.DeclarePredicate("handempty", 0)
	action := &ActionSchema{
		Name:    "noop",
		Precond: NewConst("handempty"),
		Effect:  NewConst("handempty"),
	}
	d.DeclareAction(action)
	d.Finalize()

	s := NewState()
	require.NoError(t, s.AddFact(NewConst("handempty")))

	instances, err := GroundActions(d, s, action, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "(noop)", instances[0].Term.String())
}

func TestGroundActionsDiscardsFalsePrecond(t *testing.T) {
	// "vip" never appears on the left of any effect in this domain, so
	// Statics() classifies it static and SimplifyStatics constant-folds
	// it directly against state: an object lacking the vip fact makes the
	// whole precondition False, and the grounding is discarded.
	d := NewDomain("test")
	d.RegisterType("person")
	d.DeclarePredicate("vip", 1)
	d.DeclarePredicate("greeted", 1)
	x := NewVar("X")
	action := &ActionSchema{
		Name:       "greet",
		Params:     []*Var{x},
		ParamTypes: []string{"person"},
		Precond:    Comp("vip", x),
		Effect:     Comp("greeted", x),
	}
	d.DeclareAction(action)
	d.Finalize()

	s := NewState()
	require.NoError(t, s.AddObject("alice", "person"))
	require.NoError(t, s.AddObject("bob", "person"))
	require.NoError(t, s.AddFact(Comp("vip", NewConst("alice"))))

	instances, err := GroundActions(d, s, action, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, instances, 1)
	assert.Equal(t, "(greet alice)", instances[0].Term.String())
}

func TestGroundActionsMaxGroundingsPerSchema(t *testing.T) {
	d, s := pickupDomainAndState(t)
	cfg := DefaultConfig()
	cfg.MaxGroundingsPerSchema = 1
	_, err := GroundActions(d, s, d.GetActions()[0], cfg)
	require.Error(t, err)
	var gle *GroundingLimitError
	assert.ErrorAs(t, err, &gle)
}

func TestGroundActionsFollowsDeclarationOrderNotSort(t *testing.T) {
	d := NewDomain("blocksworld")
	d.RegisterType("block")
	d.DeclarePredicate("clear", 1)
	d.DeclarePredicate("ontable", 1)
	d.DeclarePredicate("holding", 1)
	d.DeclarePredicate("handempty", 0)
	action := pickupAction()
	d.DeclareAction(action)
	d.Finalize()

	s := NewState()
	// Declared out of alphabetical order: z before a.
	require.NoError(t, s.AddObject("z", "block"))
	require.NoError(t, s.AddObject("a", "block"))
	require.NoError(t, s.AddFact(Comp("clear", NewConst("z"))))
	require.NoError(t, s.AddFact(Comp("ontable", NewConst("z"))))
	require.NoError(t, s.AddFact(Comp("clear", NewConst("a"))))
	require.NoError(t, s.AddFact(Comp("ontable", NewConst("a"))))
	require.NoError(t, s.AddFact(NewConst("handempty")))

	instances, err := GroundActions(d, s, action, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, instances, 2)
	assert.Equal(t, "(pickup z)", instances[0].Term.String())
	assert.Equal(t, "(pickup a)", instances[1].Term.String())
}

func TestDequantifyForallOverObjects(t *testing.T) {
	d := NewDomain("d")
	d.RegisterType("block")
	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))
	require.NoError(t, s.AddObject("b", "block"))

	v := NewVar("X")
	term := Comp(Forall, QVar(v, "block"), Comp("clear", v))
	out := Dequantify(d, s, term)
	c, ok := out.(*Compound)
	require.True(t, ok)
	assert.Equal(t, And, c.Name)
	assert.Len(t, c.Args, 2)
}

func TestDequantifyExistsOverObjects(t *testing.T) {
	d := NewDomain("d")
	d.RegisterType("block")
	s := NewState()
	require.NoError(t, s.AddObject("a", "block"))

	v := NewVar("X")
	term := Comp(Exists, QVar(v, "block"), Comp("clear", v))
	out := Dequantify(d, s, term)
	assert.Equal(t, "(clear a)", out.String())
}

func TestFlattenConditionsSplitsWhenAndPlain(t *testing.T) {
	effect := Comp(And,
		Comp("holding", NewConst("a")),
		Comp(When, Comp("fragile", NewConst("a")), Comp("broken", NewConst("a"))),
	)
	conds, effects := flattenConditions(effect)
	require.Len(t, conds, 2)
	require.Len(t, effects, 2)
	assert.Nil(t, conds[0])
	assert.Equal(t, "(holding a)", effects[0].String())
	assert.Equal(t, "(fragile a)", conds[1].String())
	assert.Equal(t, "(broken a)", effects[1].String())
}

func TestSimplifyStaticsConstantFolds(t *testing.T) {
	d := NewDomain("d")
	d.DeclarePredicate("heavy", 1)
	s := NewState()
	require.NoError(t, s.AddFact(Comp("heavy", NewConst("a"))))
	statics := map[string]bool{"heavy": true}

	out := SimplifyStatics(d, s, Comp("heavy", NewConst("a")), statics)
	assert.True(t, isTrueLit(out))

	out = SimplifyStatics(d, s, Comp("heavy", NewConst("b")), statics)
	assert.True(t, isFalseLit(out))
}

func TestCNFRoundTrip(t *testing.T) {
	term := Comp(And, Comp("clear", NewConst("a")), Comp(Or, Comp("on", NewConst("a"), NewConst("b")), NewConst("handempty")))
	clauses := toCNF(term)
	require.Len(t, clauses, 2)
	assert.Equal(t, "(clear a)", clauses[0].String())
	rebuilt := clauses.ToTerm()
	assert.True(t, TermEqual(rebuilt, term) || rebuilt.String() == term.String())
}
