package query

import (
	"github.com/outofforest/tribles/types"
)

// Binding assigns values to variables.
type Binding struct {
	bound  VariableSet
	values [MaxVariables]types.RawValue
}

// Get returns value bound to variable.
func (b *Binding) Get(v VariableID) (types.RawValue, bool) {
	if !b.bound.Has(v) {
		return types.RawValue{}, false
	}
	return b.values[v], true
}

// IsBound returns true if variable is bound.
func (b *Binding) IsBound(v VariableID) bool {
	return b.bound.Has(v)
}

// Bound returns the set of bound variables.
func (b *Binding) Bound() VariableSet {
	return b.bound
}

// Set binds value to variable.
func (b *Binding) Set(v VariableID, value types.RawValue) {
	b.bound.Add(v)
	b.values[v] = value
}

// Unset removes binding of variable.
func (b *Binding) Unset(v VariableID) {
	b.bound.Remove(v)
}
