package tribleset

import (
	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/types"
)

// Term is either variable or literal value used in pattern.
type Term struct {
	variable query.VariableID
	value    types.RawValue
	literal  bool
}

// Var returns term referring to variable.
func Var(v query.VariableID) Term {
	return Term{variable: v}
}

// Literal returns term holding value.
func Literal(v types.RawValue) Term {
	return Term{value: v, literal: true}
}

// ID returns term holding identifier.
func ID(id types.RawID) Term {
	return Literal(types.IDToValue(id))
}

// Match returns constraint matching tribles of the set. Literal terms get fresh variables allocated
// from the context and bound to their values.
func Match(ctx *query.Context, set TribleSet, e, a, v Term) query.Constraint {
	var constants []query.Constraint
	variables := [3]query.VariableID{}
	for i, term := range [3]Term{e, a, v} {
		if !term.literal {
			variables[i] = term.variable
			continue
		}
		variables[i] = ctx.NewVariable()
		constants = append(constants, query.Constant(variables[i], term.value))
	}

	p := set.Pattern(variables[0], variables[1], variables[2])
	if len(constants) == 0 {
		return p
	}
	return query.Intersection(append([]query.Constraint{p}, constants...)...)
}

// AttributeValue is the pair of attribute and value describing entity.
type AttributeValue struct {
	Attribute types.RawID
	Value     types.RawValue
}

// Entity returns set of tribles describing entity.
func Entity(e types.RawID, attributes ...AttributeValue) TribleSet {
	s := New()
	for _, av := range attributes {
		s = s.Insert(NewTrible(e, av.Attribute, av.Value))
	}
	return s
}
