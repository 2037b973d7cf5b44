package id

import (
	"slices"

	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/trie"
	"github.com/outofforest/tribles/types"
)

var setConfig = trie.Config{
	KeyLength: types.IDLength,
}

// NewSet creates set of identifiers.
func NewSet(ids ...types.RawID) Set {
	s := Set{ids: trie.New(setConfig)}
	for _, id := range ids {
		s = s.Insert(id)
	}
	return s
}

// Set is the persistent set of identifiers.
type Set struct {
	ids trie.Trie
}

// Insert returns set containing the identifier.
func (s Set) Insert(id types.RawID) Set {
	s.ids = s.ids.Insert(id[:])
	return s
}

// Remove returns set without the identifier.
func (s Set) Remove(id types.RawID) Set {
	s.ids = s.ids.Remove(id[:])
	return s
}

// Has returns true if identifier belongs to the set.
func (s Set) Has(id types.RawID) bool {
	return s.ids.Has(id[:])
}

// Len returns the number of identifiers.
func (s Set) Len() int {
	return s.ids.Len()
}

// Contains returns constraint restricting variable to identifiers of the set.
func (s Set) Contains(v query.VariableID) query.Constraint {
	return &setConstraint{
		variable: v,
		ids:      s.ids,
	}
}

type setConstraint struct {
	variable query.VariableID
	ids      trie.Trie
}

func (c *setConstraint) Variables() query.VariableSet {
	return query.NewVariableSet(c.variable)
}

func (c *setConstraint) Variable(v query.VariableID) bool {
	return v == c.variable
}

func (c *setConstraint) Estimate(_ query.VariableID, _ *query.Binding) int {
	return c.ids.Len()
}

func (c *setConstraint) Propose(_ query.VariableID, _ *query.Binding, out []types.RawValue) []types.RawValue {
	for key := range c.ids.All() {
		out = append(out, types.IDToValue(types.RawID(key)))
	}
	return out
}

func (c *setConstraint) Confirm(_ query.VariableID, _ *query.Binding, candidates []types.RawValue) []types.RawValue {
	return slices.DeleteFunc(candidates, func(v types.RawValue) bool {
		id, ok := types.ValueToID(v)
		return !ok || !c.ids.Has(id[:])
	})
}
