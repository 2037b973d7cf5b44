package hashset

import (
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/tribleset"
	"github.com/outofforest/tribles/types"
)

var fields = [3]types.Field{types.FieldEntity, types.FieldAttribute, types.FieldValue}

type valueSet = map[types.RawValue]struct{}

// New creates empty hash trible set.
func New() *HashTribleSet {
	s := &HashTribleSet{
		all: map[tribleset.Trible]struct{}{},
	}
	for _, x := range fields {
		s.triples[x] = map[[2]types.RawValue]valueSet{}
		for _, y := range fields {
			if x != y {
				s.pairs[x][y] = map[types.RawValue]valueSet{}
			}
		}
	}
	return s
}

// HashTribleSet stores tribles in hash maps keyed by every field and every pair of fields.
// Identifier fields are stored embedded in values.
type HashTribleSet struct {
	// pairs[x][y] maps value of field x to values of field y (ea, ev, ae, av, ve, va).
	pairs [3][3]map[types.RawValue]valueSet

	// triples[z] maps values of the two other fields, in field order, to values of field z (ave, eva, eav).
	triples [3]map[[2]types.RawValue]valueSet

	all map[tribleset.Trible]struct{}
}

// Insert adds trible to the set.
func (s *HashTribleSet) Insert(t tribleset.Trible) {
	if _, exists := s.all[t]; exists {
		return
	}
	s.all[t] = struct{}{}

	var values [3]types.RawValue
	for _, f := range fields {
		values[f] = t.FieldValue(f)
	}

	for _, x := range fields {
		for _, y := range fields {
			if x != y {
				add(s.pairs[x][y], values[x], values[y])
			}
		}
		add(s.triples[x], otherValues(x, values), values[x])
	}
}

// Union adds tribles of other set.
func (s *HashTribleSet) Union(other *HashTribleSet) {
	for t := range other.all {
		s.Insert(t)
	}
}

// Has returns true if trible belongs to the set.
func (s *HashTribleSet) Has(t tribleset.Trible) bool {
	_, exists := s.all[t]
	return exists
}

// Len returns the number of tribles.
func (s *HashTribleSet) Len() int {
	return len(s.all)
}

// Pattern returns constraint satisfied by tribles of the set matching variables.
func (s *HashTribleSet) Pattern(e, a, v query.VariableID) query.Constraint {
	return &pattern{
		set:       s,
		variables: [3]query.VariableID{e, a, v},
	}
}

// candidates returns values of target field in tribles matching known fields.
func (s *HashTribleSet) candidates(target types.Field, known [3]bool, values [3]types.RawValue) (iter.Seq[types.RawValue], int) {
	var knownFields []types.Field
	for _, f := range fields {
		if known[f] {
			knownFields = append(knownFields, f)
		}
	}

	var set valueSet
	switch len(knownFields) {
	case 0:
		m := s.pairs[target][(target+1)%3]
		return maps.Keys(m), len(m)
	case 1:
		x := knownFields[0]
		set = s.pairs[x][target][values[x]]
	default:
		set = s.triples[target][otherValues(target, values)]
	}
	return maps.Keys(set), len(set)
}

// contains returns true if any trible matches known fields.
func (s *HashTribleSet) contains(known [3]bool, values [3]types.RawValue) bool {
	var knownFields []types.Field
	for _, f := range fields {
		if known[f] {
			knownFields = append(knownFields, f)
		}
	}

	switch len(knownFields) {
	case 0:
		return len(s.all) > 0
	case 1:
		x := knownFields[0]
		_, exists := s.pairs[x][(x+1)%3][values[x]]
		return exists
	case 2:
		x, y := knownFields[0], knownFields[1]
		_, exists := s.pairs[x][y][values[x]][values[y]]
		return exists
	default:
		e, ok1 := types.ValueToID(values[types.FieldEntity])
		a, ok2 := types.ValueToID(values[types.FieldAttribute])
		return ok1 && ok2 && s.Has(tribleset.NewTrible(e, a, values[types.FieldValue]))
	}
}

type pattern struct {
	set       *HashTribleSet
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
	_, n := p.lookup(v, binding)
	return n
}

func (p *pattern) Propose(v query.VariableID, binding *query.Binding, out []types.RawValue) []types.RawValue {
	candidates, _ := p.lookup(v, binding)
	start := len(out)
	for candidate := range candidates {
		out = append(out, candidate)
	}
	return append(out[:start], p.Confirm(v, binding, out[start:])...)
}

func (p *pattern) Confirm(v query.VariableID, binding *query.Binding, candidates []types.RawValue) []types.RawValue {
	if !p.Variable(v) {
		panic(fmt.Sprintf("confirming variable %d which is not used by pattern", v))
	}

	return slices.DeleteFunc(candidates, func(candidate types.RawValue) bool {
		var known [3]bool
		var values [3]types.RawValue
		for _, f := range fields {
			if p.variables[f] == v {
				values[f], known[f] = candidate, true
			} else {
				values[f], known[f] = binding.Get(p.variables[f])
			}
		}
		return !p.set.contains(known, values)
	})
}

func (p *pattern) lookup(v query.VariableID, binding *query.Binding) (iter.Seq[types.RawValue], int) {
	var known [3]bool
	var values [3]types.RawValue
	target := types.Field(len(fields))
	for _, f := range fields {
		if variable := p.variables[f]; variable != v {
			values[f], known[f] = binding.Get(variable)
		} else if target == types.Field(len(fields)) {
			target = f
		}
	}
	return p.set.candidates(target, known, values)
}

func add[K comparable](m map[K]valueSet, k K, v types.RawValue) {
	set, exists := m[k]
	if !exists {
		set = valueSet{}
		m[k] = set
	}
	set[v] = struct{}{}
}

// otherValues returns values of fields other than f, in field order.
func otherValues(f types.Field, values [3]types.RawValue) [2]types.RawValue {
	var result [2]types.RawValue
	i := 0
	for _, f2 := range fields {
		if f2 != f {
			result[i] = values[f2]
			i++
		}
	}
	return result
}
