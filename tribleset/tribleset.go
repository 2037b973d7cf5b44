package tribleset

import (
	"iter"
	"slices"

	"github.com/outofforest/tribles/trie"
	"github.com/outofforest/tribles/types"
)

var fields = [3]types.Field{types.FieldEntity, types.FieldAttribute, types.FieldValue}

// index is one of the orderings tribles are stored in.
type index struct {
	Fields [3]types.Field
	Config trie.Config
}

// indexes covers every permutation of fields so any combination of known fields followed by the requested one
// is the prefix of some index.
var indexes = [...]index{
	newIndex(types.FieldEntity, types.FieldAttribute, types.FieldValue),
	newIndex(types.FieldEntity, types.FieldValue, types.FieldAttribute),
	newIndex(types.FieldAttribute, types.FieldEntity, types.FieldValue),
	newIndex(types.FieldAttribute, types.FieldValue, types.FieldEntity),
	newIndex(types.FieldValue, types.FieldEntity, types.FieldAttribute),
	newIndex(types.FieldValue, types.FieldAttribute, types.FieldEntity),
}

func newIndex(order ...types.Field) index {
	permutation := make([]int, 0, len(order))
	for _, f := range order {
		permutation = append(permutation, int(f))
	}
	return index{
		Fields: [3]types.Field(order),
		Config: trie.Config{
			KeyLength: types.TribleLength,
			Ordering: trie.NewOrdering(
				[]int{types.FieldEntity.Length(), types.FieldAttribute.Length(), types.FieldValue.Length()},
				permutation,
			),
		},
	}
}

func indexFor(order [3]types.Field) int {
	for i, idx := range indexes {
		if idx.Fields == order {
			return i
		}
	}
	panic("invalid field order")
}

// New creates empty trible set.
func New() TribleSet {
	var s TribleSet
	for i, idx := range indexes {
		s.indexes[i] = trie.New(idx.Config)
	}
	return s
}

// TribleSet is the persistent set of tribles indexed in all the orderings of fields.
type TribleSet struct {
	indexes [len(indexes)]trie.Trie
}

// Insert returns set containing the trible.
func (s TribleSet) Insert(t Trible) TribleSet {
	for i := range s.indexes {
		s.indexes[i] = s.indexes[i].Insert(t[:])
	}
	return s
}

// Union returns set containing tribles of both sets.
func (s TribleSet) Union(other TribleSet) TribleSet {
	for i := range s.indexes {
		s.indexes[i] = s.indexes[i].Union(other.indexes[i])
	}
	return s
}

// Has returns true if trible belongs to the set.
func (s TribleSet) Has(t Trible) bool {
	return s.indexes[0].Has(t[:])
}

// Len returns the number of tribles.
func (s TribleSet) Len() int {
	return s.indexes[0].Len()
}

// IsEmpty returns true if there are no tribles in the set.
func (s TribleSet) IsEmpty() bool {
	return s.indexes[0].IsEmpty()
}

// Hash returns the content hash of the set.
func (s TribleSet) Hash() types.Hash {
	return s.indexes[0].Hash()
}

// Equal returns true if both sets contain the same tribles.
func (s TribleSet) Equal(other TribleSet) bool {
	return s.indexes[0].Equal(other.indexes[0])
}

// All iterates over tribles ordered by entity, attribute and value.
func (s TribleSet) All() iter.Seq[Trible] {
	return func(yield func(Trible) bool) {
		for key := range s.indexes[0].All() {
			if !yield(Trible(key)) {
				return
			}
		}
	}
}

// cursor returns cursor of the index starting with the known fields followed by next ones, positioned after
// the values of the known fields. It returns false if any known identifier field holds value which is not
// an identifier.
func (s TribleSet) cursor(known [3]bool, values [3]types.RawValue, next ...types.Field) (*trie.Cursor, bool) {
	order := make([]types.Field, 0, len(fields))
	prefix := make([]byte, 0, types.TribleLength)
	for _, f := range fields {
		if !known[f] {
			continue
		}
		order = append(order, f)
		if f == types.FieldValue {
			prefix = append(prefix, values[f][:]...)
			continue
		}
		id, ok := types.ValueToID(values[f])
		if !ok {
			return nil, false
		}
		prefix = append(prefix, id[:]...)
	}
	order = append(order, next...)
	for _, f := range fields {
		if len(order) < len(fields) && !known[f] && !slices.Contains(next, f) {
			order = append(order, f)
		}
	}

	c := s.indexes[indexFor([3]types.Field(order))].Cursor()
	for _, b := range prefix {
		c.Push(b)
	}
	return c, true
}
