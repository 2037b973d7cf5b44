package query

import (
	"iter"
	"slices"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

// ErrUnconstrained is returned when projected variable is not restricted by any constraint.
var ErrUnconstrained = errors.New("variable is not constrained")

type searchMode int

const (
	modeAdvancing searchMode = iota
	modeConsuming
)

type choicePoint struct {
	Variable   VariableID
	Candidates []types.RawValue
	Next       int
}

// Find returns sequence of values of projected variables satisfying the constraint.
// Sequence is lazy and every iteration over it executes the search from the beginning.
func Find(constraint Constraint, projected ...VariableID) (iter.Seq[[]types.RawValue], error) {
	variables := constraint.Variables()
	for _, v := range projected {
		if !variables.Has(v) {
			return nil, errors.Wrapf(ErrUnconstrained, "variable %d", v)
		}
	}

	return func(yield func([]types.RawValue) bool) {
		search(constraint, variables, projected, yield)
	}, nil
}

func search(constraint Constraint, variables VariableSet, projected []VariableID,
	yield func([]types.RawValue) bool,
) {
	binding := &Binding{}
	stack := make([]choicePoint, 0, variables.Count())
	buffers := make([][]types.RawValue, variables.Count())

	mode := modeAdvancing
	for {
		switch mode {
		case modeAdvancing:
			mode = modeConsuming

			unbound := variables.Difference(binding.Bound())
			if unbound.IsEmpty() {
				row := make([]types.RawValue, 0, len(projected))
				for _, v := range projected {
					value, _ := binding.Get(v)
					row = append(row, value)
				}
				if !yield(row) {
					return
				}
				continue
			}

			v, estimate := nextVariable(constraint, unbound, binding)
			depth := len(stack)
			var candidates []types.RawValue
			if estimate > 0 {
				candidates = constraint.Propose(v, binding, buffers[depth][:0])
				buffers[depth] = candidates
			}
			stack = append(stack, choicePoint{
				Variable:   v,
				Candidates: candidates,
			})
		case modeConsuming:
			if len(stack) == 0 {
				return
			}

			top := &stack[len(stack)-1]
			if top.Next == len(top.Candidates) {
				binding.Unset(top.Variable)
				stack = stack[:len(stack)-1]
				continue
			}

			binding.Set(top.Variable, top.Candidates[top.Next])
			top.Next++
			mode = modeAdvancing
		}
	}
}

// nextVariable returns the unbound variable with the lowest estimate. Ties are resolved by the lowest id.
func nextVariable(constraint Constraint, unbound VariableSet, binding *Binding) (VariableID, int) {
	var chosen VariableID
	best := -1
	for v := range unbound.All() {
		if estimate := constraint.Estimate(v, binding); best < 0 || estimate < best {
			chosen = v
			best = estimate
			if best == 0 {
				break
			}
		}
	}
	return chosen, best
}

// Distinct removes repeated rows from the sequence.
func Distinct(seq iter.Seq[[]types.RawValue]) iter.Seq[[]types.RawValue] {
	return func(yield func([]types.RawValue) bool) {
		seen := map[uint64][][]types.RawValue{}
		var buf []byte

	loop:
		for row := range seq {
			buf = buf[:0]
			for _, v := range row {
				buf = append(buf, v[:]...)
			}
			hash := xxhash.Sum64(buf)

			for _, row2 := range seen[hash] {
				if slices.Equal(row, row2) {
					continue loop
				}
			}
			seen[hash] = append(seen[hash], row)

			if !yield(row) {
				return
			}
		}
	}
}
