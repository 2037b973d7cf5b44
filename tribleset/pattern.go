package tribleset

import (
	"fmt"
	"math"
	"slices"

	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/trie"
	"github.com/outofforest/tribles/types"
)

// Pattern returns constraint satisfied by tribles of the set matching variables.
// The same variable may be used in many positions.
func (s TribleSet) Pattern(e, a, v query.VariableID) query.Constraint {
	return &pattern{
		set:       s,
		variables: [3]query.VariableID{e, a, v},
	}
}

type pattern struct {
	set       TribleSet
	variables [3]query.VariableID
}

func (p *pattern) Variables() query.VariableSet {
	return query.NewVariableSet(p.variables[:]...)
}

func (p *pattern) Variable(v query.VariableID) bool {
	return slices.Contains(p.variables[:], v)
}

func (p *pattern) Estimate(v query.VariableID, binding *query.Binding) int {
	if !p.Variable(v) {
		return math.MaxInt
	}
	c, _, ok := p.lookup(v, binding)
	if !ok {
		return 0
	}
	return c.SegmentCount()
}

func (p *pattern) Propose(v query.VariableID, binding *query.Binding, out []types.RawValue) []types.RawValue {
	c, target, ok := p.lookup(v, binding)
	if !ok {
		return out
	}

	repeated := p.repeated(v)
	for infix := range c.Infixes(target.Length()) {
		var candidate types.RawValue
		if target == types.FieldValue {
			candidate = types.RawValue(infix)
		} else {
			candidate = types.IDToValue(types.RawID(infix))
		}
		if repeated && !p.matches(v, binding, candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

func (p *pattern) Confirm(v query.VariableID, binding *query.Binding, candidates []types.RawValue) []types.RawValue {
	if !p.Variable(v) {
		panic(fmt.Sprintf("confirming variable %d which is not used by pattern", v))
	}
	return slices.DeleteFunc(candidates, func(candidate types.RawValue) bool {
		return !p.matches(v, binding, candidate)
	})
}

// lookup returns cursor positioned after the values of bound fields in the index continuing with the first
// field of the variable.
func (p *pattern) lookup(v query.VariableID, binding *query.Binding) (*trie.Cursor, types.Field, bool) {
	var known [3]bool
	var values [3]types.RawValue
	target := types.Field(len(fields))
	for _, f := range fields {
		variable := p.variables[f]
		if variable != v {
			values[f], known[f] = binding.Get(variable)
			continue
		}
		if target == types.Field(len(fields)) {
			target = f
		}
	}
	if target == types.Field(len(fields)) {
		panic(fmt.Sprintf("variable %d is not used by pattern", v))
	}

	c, ok := p.set.cursor(known, values, target)
	return c, target, ok
}

func (p *pattern) repeated(v query.VariableID) bool {
	var n int
	for _, variable := range p.variables {
		if variable == v {
			n++
		}
	}
	return n > 1
}

// matches returns true if any trible matches bound variables and the candidate assigned to v.
func (p *pattern) matches(v query.VariableID, binding *query.Binding, candidate types.RawValue) bool {
	var known [3]bool
	var values [3]types.RawValue
	for _, f := range fields {
		if variable := p.variables[f]; variable == v {
			values[f], known[f] = candidate, true
		} else {
			values[f], known[f] = binding.Get(variable)
		}
	}

	c, ok := p.set.cursor(known, values)
	return ok && c.Count() > 0
}
