package trie

import "fmt"

// Ordering maps depths of the tree to indexes of the key and defines segments of the key.
//
// Key is always stored in its canonical form. Ordering decides which key byte is used to dispatch
// children at each tree depth. Segments are contiguous ranges of tree depths treated as one
// logical field, e.g. 16-byte identifier, for the purpose of counting distinct values.
type Ordering struct {
	treeToKey  []int
	keyToTree  []int
	segmentEnd []int
}

// Identity returns ordering where tree order equals key order and the whole key is one segment.
func Identity(keyLength int) Ordering {
	return NewOrdering([]int{keyLength}, []int{0})
}

// NewOrdering creates ordering visiting segments of the canonical key in the order given by
// permutation. segmentLengths describes segments of the canonical key.
func NewOrdering(segmentLengths []int, permutation []int) Ordering {
	if len(segmentLengths) != len(permutation) {
		panic(fmt.Sprintf("permutation of %d segments expected, got %d", len(segmentLengths), len(permutation)))
	}

	offsets := make([]int, len(segmentLengths))
	var keyLength int
	for i, l := range segmentLengths {
		if l <= 0 {
			panic(fmt.Sprintf("segment %d has invalid length %d", i, l))
		}
		offsets[i] = keyLength
		keyLength += l
	}

	o := Ordering{
		treeToKey:  make([]int, 0, keyLength),
		keyToTree:  make([]int, keyLength),
		segmentEnd: make([]int, 0, keyLength),
	}

	seen := make([]bool, len(segmentLengths))
	for _, s := range permutation {
		if s < 0 || s >= len(segmentLengths) || seen[s] {
			panic(fmt.Sprintf("invalid permutation %v", permutation))
		}
		seen[s] = true

		end := len(o.treeToKey) + segmentLengths[s]
		for i := range segmentLengths[s] {
			o.keyToTree[offsets[s]+i] = len(o.treeToKey)
			o.treeToKey = append(o.treeToKey, offsets[s]+i)
			o.segmentEnd = append(o.segmentEnd, end)
		}
	}

	return o
}

// KeyLength returns the length of keys.
func (o Ordering) KeyLength() int {
	return len(o.treeToKey)
}

// KeyIndex returns index of the key byte used at tree depth.
func (o Ordering) KeyIndex(depth int) int {
	return o.treeToKey[depth]
}

// TreeIndex returns tree depth at which key byte is used.
func (o Ordering) TreeIndex(keyIndex int) int {
	return o.keyToTree[keyIndex]
}

// SegmentEnd returns the tree depth where segment containing depth ends (exclusive).
func (o Ordering) SegmentEnd(depth int) int {
	return o.segmentEnd[depth]
}

// TreeKey converts canonical key into tree order.
func (o Ordering) TreeKey(key []byte) []byte {
	treeKey := make([]byte, len(o.treeToKey))
	for d, i := range o.treeToKey {
		treeKey[d] = key[i]
	}
	return treeKey
}

// Key converts key in tree order into canonical key.
func (o Ordering) Key(treeKey []byte) []byte {
	key := make([]byte, len(o.treeToKey))
	for d, i := range o.treeToKey {
		key[i] = treeKey[d]
	}
	return key
}

func (o Ordering) at(key []byte, depth int) byte {
	return key[o.treeToKey[depth]]
}

// mismatch returns the first tree depth in [from, to) where keys differ or to if they are equal in that range.
func (o Ordering) mismatch(a, b []byte, from, to int) int {
	for d := from; d < to; d++ {
		i := o.treeToKey[d]
		if a[i] != b[i] {
			return d
		}
	}
	return to
}
