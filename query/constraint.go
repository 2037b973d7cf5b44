package query

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/outofforest/tribles/types"
)

// Constraint restricts values of variables.
type Constraint interface {
	// Variables returns the variables constraint participates in.
	Variables() VariableSet

	// Variable returns true if constraint participates in variable.
	Variable(v VariableID) bool

	// Estimate returns upper bound of the number of values proposed for the variable.
	Estimate(v VariableID, binding *Binding) int

	// Propose appends candidate values of the variable to out. Result must contain every value satisfying
	// the constraint.
	Propose(v VariableID, binding *Binding, out []types.RawValue) []types.RawValue

	// Confirm filters candidates in place, leaving only the values satisfying the constraint.
	Confirm(v VariableID, binding *Binding, candidates []types.RawValue) []types.RawValue
}

// Intersection returns constraint satisfied when all the constraints are satisfied.
func Intersection(constraints ...Constraint) Constraint {
	var variables VariableSet
	for _, c := range constraints {
		variables = variables.Union(c.Variables())
	}
	return &intersection{
		constraints: constraints,
		variables:   variables,
	}
}

type intersection struct {
	constraints []Constraint
	variables   VariableSet
}

type rankedConstraint struct {
	Constraint Constraint
	Estimate   int
}

func (i *intersection) Variables() VariableSet {
	return i.variables
}

func (i *intersection) Variable(v VariableID) bool {
	return i.variables.Has(v)
}

func (i *intersection) Estimate(v VariableID, binding *Binding) int {
	estimate := math.MaxInt
	for _, c := range i.constraints {
		if c.Variable(v) {
			estimate = min(estimate, c.Estimate(v, binding))
		}
	}
	return estimate
}

func (i *intersection) Propose(v VariableID, binding *Binding, out []types.RawValue) []types.RawValue {
	ranked := i.rank(v, binding)
	start := len(out)
	out = ranked[0].Constraint.Propose(v, binding, out)
	for _, rc := range ranked[1:] {
		if len(out) == start {
			break
		}
		out = append(out[:start], rc.Constraint.Confirm(v, binding, out[start:])...)
	}
	return out
}

func (i *intersection) Confirm(v VariableID, binding *Binding, candidates []types.RawValue) []types.RawValue {
	for _, rc := range i.rank(v, binding) {
		if len(candidates) == 0 {
			break
		}
		candidates = rc.Constraint.Confirm(v, binding, candidates)
	}
	return candidates
}

// rank returns constraints participating in variable ordered by estimate. Ties keep declaration order.
// It panics if no constraint participates in variable.
func (i *intersection) rank(v VariableID, binding *Binding) []rankedConstraint {
	ranked := make([]rankedConstraint, 0, len(i.constraints))
	for _, c := range i.constraints {
		if c.Variable(v) {
			ranked = append(ranked, rankedConstraint{
				Constraint: c,
				Estimate:   c.Estimate(v, binding),
			})
		}
	}
	if len(ranked) == 0 {
		panic(fmt.Sprintf("variable %d is not used by any constraint", v))
	}
	slices.SortStableFunc(ranked, func(a, b rankedConstraint) int {
		return cmp.Compare(a.Estimate, b.Estimate)
	})
	return ranked
}

// Constant binds variable to the value.
func Constant(v VariableID, value types.RawValue) Constraint {
	return &constant{
		variable: v,
		value:    value,
	}
}

type constant struct {
	variable VariableID
	value    types.RawValue
}

func (c *constant) Variables() VariableSet {
	return NewVariableSet(c.variable)
}

func (c *constant) Variable(v VariableID) bool {
	return v == c.variable
}

func (c *constant) Estimate(_ VariableID, _ *Binding) int {
	return 1
}

func (c *constant) Propose(_ VariableID, _ *Binding, out []types.RawValue) []types.RawValue {
	return append(out, c.value)
}

func (c *constant) Confirm(_ VariableID, _ *Binding, candidates []types.RawValue) []types.RawValue {
	return slices.DeleteFunc(candidates, func(v types.RawValue) bool {
		return v != c.value
	})
}
