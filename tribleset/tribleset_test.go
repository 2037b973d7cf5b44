package tribleset_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/tribles/id"
	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/test"
	"github.com/outofforest/tribles/tribleset"
	"github.com/outofforest/tribles/types"
	"github.com/outofforest/tribles/value"
)

var fields = []types.Field{types.FieldEntity, types.FieldAttribute, types.FieldValue}

func TestTrible(t *testing.T) {
	requireT := require.New(t)

	e := id.RNGID()
	a := id.RNGID()
	v := types.RawValue{1, 2, 3}
	tr := tribleset.NewTrible(e, a, v)

	requireT.Equal(e, tr.Entity())
	requireT.Equal(a, tr.Attribute())
	requireT.Equal(v, tr.Value())
	requireT.Equal(types.IDToValue(e), tr.FieldValue(types.FieldEntity))
	requireT.Equal(types.IDToValue(a), tr.FieldValue(types.FieldAttribute))
	requireT.Equal(v, tr.FieldValue(types.FieldValue))
}

func TestInsert(t *testing.T) {
	requireT := require.New(t)

	rnd := rand.New(rand.NewSource(1))
	tribles := test.RandomTribles(rnd, 300)
	s := test.BuildTribleSet(tribles[:200])

	requireT.Equal(200, s.Len())
	requireT.False(s.IsEmpty())
	for _, tr := range tribles[:200] {
		requireT.True(s.Has(tr))
	}
	for _, tr := range tribles[200:] {
		requireT.False(s.Has(tr))
	}

	requireT.True(s.Equal(s.Insert(tribles[0])))
	requireT.True(tribleset.New().IsEmpty())
}

func TestUnion(t *testing.T) {
	requireT := require.New(t)

	rnd := rand.New(rand.NewSource(2))
	tribles := test.RandomTribles(rnd, 300)

	a := test.BuildTribleSet(tribles[:200])
	b := test.BuildTribleSet(tribles[100:])
	all := test.BuildTribleSet(tribles)

	requireT.True(all.Equal(a.Union(b)))
	requireT.True(all.Equal(b.Union(a)))
	requireT.Equal(all.Hash(), a.Union(b).Hash())
	requireT.True(a.Equal(a.Union(a)))
	requireT.Equal(300, a.Union(b).Len())
}

func TestAll(t *testing.T) {
	requireT := require.New(t)

	rnd := rand.New(rand.NewSource(3))
	tribles := test.RandomTribles(rnd, 100)
	s := test.BuildTribleSet(tribles)

	var previous *tribleset.Trible
	var count int
	for tr := range s.All() {
		requireT.True(s.Has(tr))
		if previous != nil {
			requireT.Less(string(previous[:]), string(tr[:]))
		}
		previous = &tr
		count++
	}
	requireT.Equal(100, count)
}

func TestIndexCompleteness(t *testing.T) {
	requireT := require.New(t)

	rnd := rand.New(rand.NewSource(4))
	tribles := test.RandomTribles(rnd, 400)
	s := test.BuildTribleSet(tribles[:300])

	for _, probe := range slices.Concat(tribles[:30], tribles[300:330]) {
		for mask := range 1 << len(fields) {
			ctx := query.NewContext()
			var terms [3]tribleset.Term
			var free []query.VariableID
			var freeFields []types.Field
			for _, f := range fields {
				if mask&(1<<f) != 0 {
					terms[f] = tribleset.Literal(probe.FieldValue(f))
					continue
				}
				v := ctx.NewVariable()
				terms[f] = tribleset.Var(v)
				free = append(free, v)
				freeFields = append(freeFields, f)
			}

			expected := [][]types.RawValue{}
			for _, tr := range tribles[:300] {
				matches := true
				for _, f := range fields {
					if mask&(1<<f) != 0 && tr.FieldValue(f) != probe.FieldValue(f) {
						matches = false
					}
				}
				if !matches {
					continue
				}
				row := []types.RawValue{}
				for _, f := range freeFields {
					row = append(row, tr.FieldValue(f))
				}
				expected = append(expected, row)
			}

			seq, err := query.Find(tribleset.Match(ctx, s, terms[0], terms[1], terms[2]), free...)
			requireT.NoError(err)
			requireT.Equal(test.CountRows(expected), test.CountRows(test.CollectRows(seq)), "mask %03b", mask)
		}
	}
}

func TestEstimateIsUpperBound(t *testing.T) {
	requireT := require.New(t)

	rnd := rand.New(rand.NewSource(5))
	tribles := test.RandomTribles(rnd, 300)
	s := test.BuildTribleSet(tribles)

	ctx := query.NewContext()
	e := ctx.NewVariable()
	a := ctx.NewVariable()
	v := ctx.NewVariable()
	variables := []query.VariableID{e, a, v}
	p := s.Pattern(e, a, v)

	for _, probe := range tribles[:50] {
		for mask := range 1 << len(fields) {
			binding := &query.Binding{}
			for _, f := range fields {
				if mask&(1<<f) != 0 {
					binding.Set(variables[f], probe.FieldValue(f))
				}
			}
			for _, f := range fields {
				if mask&(1<<f) != 0 {
					continue
				}
				proposals := p.Propose(variables[f], binding, nil)
				requireT.GreaterOrEqual(p.Estimate(variables[f], binding), len(proposals))
				requireT.NotEmpty(proposals)
				requireT.Contains(proposals, probe.FieldValue(f))
				requireT.Len(p.Confirm(variables[f], binding, proposals), len(proposals))
			}
		}
	}
}

func TestRomeoAndJuliet(t *testing.T) {
	requireT := require.New(t)

	name := id.RNGID()
	loves := id.RNGID()

	owner := id.NewOwner()
	romeo := owner.Mint(id.UFOID)
	juliet := owner.Mint(id.UFOID)
	defer romeo.Release()
	defer juliet.Release()

	kb := tribleset.Entity(romeo.ID(),
		tribleset.AttributeValue{Attribute: name, Value: value.MustEncode[string](value.ShortString{}, "Romeo")},
		tribleset.AttributeValue{Attribute: loves, Value: juliet.Value()},
	).Union(tribleset.Entity(juliet.ID(),
		tribleset.AttributeValue{Attribute: name, Value: value.MustEncode[string](value.ShortString{}, "Juliet")},
	))
	requireT.Equal(3, kb.Len())

	ctx := query.NewContext()
	x := ctx.NewVariable()
	y := ctx.NewVariable()
	n := ctx.NewVariable()

	seq, err := query.Find(query.Intersection(
		tribleset.Match(ctx, kb, tribleset.Var(x), tribleset.ID(name),
			tribleset.Literal(value.MustEncode[string](value.ShortString{}, "Romeo"))),
		tribleset.Match(ctx, kb, tribleset.Var(x), tribleset.ID(loves), tribleset.Var(y)),
		tribleset.Match(ctx, kb, tribleset.Var(y), tribleset.ID(name), tribleset.Var(n)),
	), n)
	requireT.NoError(err)

	rows := test.CollectRows(seq)
	requireT.Len(rows, 1)
	requireT.Len(rows[0], 1)
	juliet2, err := value.ShortString{}.Decode(rows[0][0])
	requireT.NoError(err)
	requireT.Equal("Juliet", juliet2)
}

func TestEmptySet(t *testing.T) {
	requireT := require.New(t)

	s := tribleset.New()
	ctx := query.NewContext()
	e := ctx.NewVariable()
	a := ctx.NewVariable()
	v := ctx.NewVariable()

	for _, tc := range []struct {
		Constraint query.Constraint
		Projected  []query.VariableID
	}{
		{
			Constraint: s.Pattern(e, a, v),
			Projected:  []query.VariableID{e, a, v},
		},
		{
			Constraint: tribleset.Match(ctx, s, tribleset.ID(id.RNGID()), tribleset.Var(a), tribleset.Var(v)),
			Projected:  []query.VariableID{a, v},
		},
		{
			Constraint: tribleset.Match(ctx, s, tribleset.Var(e), tribleset.Var(a), tribleset.Literal(types.RawValue{1})),
			Projected:  []query.VariableID{e, a},
		},
	} {
		seq, err := query.Find(tc.Constraint, tc.Projected...)
		requireT.NoError(err)
		requireT.Empty(test.CollectRows(seq))
	}
}

func TestRepeatedVariable(t *testing.T) {
	requireT := require.New(t)

	e1 := id.RNGID()
	e2 := id.RNGID()
	a := id.RNGID()
	s := tribleset.New().
		Insert(tribleset.NewTrible(e1, a, types.IDToValue(e1))).
		Insert(tribleset.NewTrible(e2, a, types.IDToValue(e1))).
		Insert(tribleset.NewTrible(e2, a, types.RawValue{1}))

	ctx := query.NewContext()
	x := ctx.NewVariable()
	seq, err := query.Find(tribleset.Match(ctx, s, tribleset.Var(x), tribleset.ID(a), tribleset.Var(x)), x)
	requireT.NoError(err)
	requireT.Equal([][]types.RawValue{{types.IDToValue(e1)}}, test.CollectRows(seq))
}

func TestNonIdentifierBoundToEntity(t *testing.T) {
	requireT := require.New(t)

	s := tribleset.New().Insert(tribleset.NewTrible(id.RNGID(), id.RNGID(), types.RawValue{1}))

	ctx := query.NewContext()
	e := ctx.NewVariable()
	a := ctx.NewVariable()
	v := ctx.NewVariable()
	p := s.Pattern(e, a, v)

	binding := &query.Binding{}
	binding.Set(e, types.RawValue{1})
	requireT.Zero(p.Estimate(a, binding))
	requireT.Empty(p.Propose(a, binding, nil))
	requireT.Empty(p.Confirm(a, binding, []types.RawValue{types.IDToValue(id.RNGID())}))
}

func TestConfirmUnknownVariablePanics(t *testing.T) {
	requireT := require.New(t)

	p := tribleset.New().Pattern(0, 1, 2)
	requireT.Panics(func() {
		p.Confirm(3, &query.Binding{}, nil)
	})
}
