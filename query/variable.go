package query

import (
	"iter"

	"github.com/outofforest/tribles/bitset"
)

// MaxVariables is the maximum number of variables used by single query.
const MaxVariables = 256

// VariableID identifies query variable.
type VariableID uint8

// VariableSet is the set of variables.
type VariableSet struct {
	set bitset.Set256
}

// NewVariableSet creates set of variables.
func NewVariableSet(variables ...VariableID) VariableSet {
	var s VariableSet
	for _, v := range variables {
		s.Add(v)
	}
	return s
}

// Add adds variable to the set.
func (s *VariableSet) Add(v VariableID) {
	s.set.Set(uint8(v))
}

// Remove removes variable from the set.
func (s *VariableSet) Remove(v VariableID) {
	s.set.Unset(uint8(v))
}

// Has returns true if variable belongs to the set.
func (s VariableSet) Has(v VariableID) bool {
	return s.set.Has(uint8(v))
}

// IsEmpty returns true if set is empty.
func (s VariableSet) IsEmpty() bool {
	return s.set.IsEmpty()
}

// Count returns the number of variables in the set.
func (s VariableSet) Count() int {
	return s.set.Count()
}

// Union returns union of sets.
func (s VariableSet) Union(other VariableSet) VariableSet {
	return VariableSet{set: s.set.Union(other.set)}
}

// Difference returns variables of s which do not belong to other.
func (s VariableSet) Difference(other VariableSet) VariableSet {
	return VariableSet{set: bitset.Set256{
		s.set[0] &^ other.set[0],
		s.set[1] &^ other.set[1],
		s.set[2] &^ other.set[2],
		s.set[3] &^ other.set[3],
	}}
}

// All iterates over variables in ascending order.
func (s VariableSet) All() iter.Seq[VariableID] {
	return func(yield func(VariableID) bool) {
		for v := range s.set.All() {
			if !yield(VariableID(v)) {
				return
			}
		}
	}
}

// NewContext creates new variable context.
func NewContext() *Context {
	return &Context{}
}

// Context allocates variables of single query.
type Context struct {
	next int
}

// NewVariable allocates new variable.
func (c *Context) NewVariable() VariableID {
	if c.next == MaxVariables {
		panic("too many variables")
	}
	v := VariableID(c.next)
	c.next++
	return v
}

// Variables returns all the variables allocated so far.
func (c *Context) Variables() VariableSet {
	var s VariableSet
	for v := range c.next {
		s.Add(VariableID(v))
	}
	return s
}
