package trie

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/outofforest/tribles/types"
)

// Config stores trie configuration.
type Config struct {
	KeyLength int
	Ordering  Ordering
}

// New creates new empty trie.
func New(config Config) Trie {
	if config.Ordering.KeyLength() == 0 {
		config.Ordering = Identity(config.KeyLength)
	}
	if config.Ordering.KeyLength() != config.KeyLength {
		panic(fmt.Sprintf("ordering covers %d bytes, key length is %d", config.Ordering.KeyLength(), config.KeyLength))
	}
	return Trie{
		config: config,
	}
}

// Trie is the persistent set of fixed-length keys.
// Operations never modify the trie they are called on, they return new version instead.
// Versions share unchanged nodes and are safe for concurrent use by readers.
type Trie struct {
	config Config
	root   node
}

// Ordering returns the ordering of the trie.
func (t Trie) Ordering() Ordering {
	return t.config.Ordering
}

// KeyLength returns the length of keys.
func (t Trie) KeyLength() int {
	return t.config.KeyLength
}

// Insert returns trie containing the key.
func (t Trie) Insert(key []byte) Trie {
	t.verifyKey(key)

	k := bytes.Clone(key)
	t.root = t.config.Ordering.union(t.root, newLeaf(k, hashKey(k)), 0)
	return t
}

// Remove returns trie without the key.
func (t Trie) Remove(key []byte) Trie {
	t.verifyKey(key)

	t.root = t.config.Ordering.remove(t.root, key)
	return t
}

// Union returns trie containing keys of both tries.
func (t Trie) Union(other Trie) Trie {
	t.verifyCompatible(other)

	t.root = t.config.Ordering.union(t.root, other.root, 0)
	return t
}

// Has returns true if key exists in the trie.
func (t Trie) Has(key []byte) bool {
	t.verifyKey(key)

	n := t.root
	for {
		switch n2 := n.(type) {
		case *branch:
			n = n2.child(t.config.Ordering.at(key, n2.d))
		case *leaf:
			return bytes.Equal(n2.k, key)
		default:
			return false
		}
	}
}

// HasPrefix returns true if any key starts with prefix given in tree order.
func (t Trie) HasPrefix(prefix []byte) bool {
	if len(prefix) > t.config.KeyLength {
		panic(fmt.Sprintf("prefix of %d bytes is longer than key", len(prefix)))
	}

	o := t.config.Ordering
	n := t.root
	for n != nil {
		k := n.key()
		end := min(n.depth(), len(prefix))
		for d := range end {
			if o.at(k, d) != prefix[d] {
				return false
			}
		}
		if end == len(prefix) {
			return true
		}
		n = n.(*branch).child(prefix[end])
	}
	return false
}

// Hash returns the content hash of the trie.
func (t Trie) Hash() types.Hash {
	if t.root == nil {
		return types.Hash{}
	}
	return t.root.hash()
}

// Len returns the number of keys.
func (t Trie) Len() int {
	if t.root == nil {
		return 0
	}
	return t.root.count()
}

// IsEmpty returns true if there are no keys in the trie.
func (t Trie) IsEmpty() bool {
	return t.root == nil
}

// Equal returns true if both tries contain the same keys.
func (t Trie) Equal(other Trie) bool {
	return t.Hash() == other.Hash() && t.Len() == other.Len()
}

// All iterates over canonical keys in tree order.
func (t Trie) All() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		c := t.Cursor()
		for treeKey := range c.Infixes(t.config.KeyLength) {
			if !yield(t.config.Ordering.Key(treeKey)) {
				return
			}
		}
	}
}

// Cursor returns cursor positioned at the root of the trie.
func (t Trie) Cursor() *Cursor {
	return newCursor(t)
}

func (t Trie) verifyKey(key []byte) {
	if len(key) != t.config.KeyLength {
		panic(fmt.Sprintf("key of %d bytes expected, got %d", t.config.KeyLength, len(key)))
	}
}

func (t Trie) verifyCompatible(other Trie) {
	if t.config.KeyLength != other.config.KeyLength {
		panic(fmt.Sprintf("key lengths %d and %d differ", t.config.KeyLength, other.config.KeyLength))
	}
	for d := range t.config.KeyLength {
		if t.config.Ordering.KeyIndex(d) != other.config.Ordering.KeyIndex(d) ||
			t.config.Ordering.SegmentEnd(d) != other.config.Ordering.SegmentEnd(d) {
			panic("orderings differ")
		}
	}
}

// union merges two subtrees whose keys agree on tree depths lower than depth.
func (o Ordering) union(a, b node, depth int) node {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case a.hash() == b.hash() && a.count() == b.count():
		return a
	}

	aDepth := a.depth()
	bDepth := b.depth()
	end := min(aDepth, bDepth)
	if d := o.mismatch(a.key(), b.key(), depth, end); d < end {
		return o.pair(d, a, b)
	}

	switch {
	case aDepth < bDepth:
		return o.mergeInto(a.(*branch), b)
	case bDepth < aDepth:
		return o.mergeInto(b.(*branch), a)
	}

	ab := a.(*branch)
	bb := b.(*branch)
	bitmap := ab.bitmap.Union(bb.bitmap)
	entries := make([]entry, 0, bitmap.Count())
	for i := range bitmap.All() {
		entries = append(entries, entry{
			Byte:  i,
			Child: o.union(ab.child(i), bb.child(i), ab.d+1),
		})
	}
	return o.buildBranch(ab.d, entries)
}

// mergeInto merges node into the branch. Node must branch deeper than the branch.
func (o Ordering) mergeInto(b *branch, n node) node {
	i := o.at(n.key(), b.d)
	child := b.child(i)
	if child == nil {
		return o.withChild(b, i, n)
	}

	merged := o.union(child, n, b.d+1)
	if merged == child {
		return b
	}
	return o.replaceChild(b, i, child, merged)
}

func (o Ordering) remove(n node, key []byte) node {
	switch n2 := n.(type) {
	case *leaf:
		if bytes.Equal(n2.k, key) {
			return nil
		}
		return n
	case *branch:
		i := o.at(key, n2.d)
		child := n2.child(i)
		if child == nil {
			return n
		}

		newChild := o.remove(child, key)
		switch {
		case newChild == child:
			return n
		case newChild != nil:
			return o.replaceChild(n2, i, child, newChild)
		case n2.bitmap.Count() == 2:
			bitmap := n2.bitmap
			bitmap.Unset(i)
			last, _ := bitmap.Min()
			return n2.child(last)
		default:
			return o.withoutChild(n2, i)
		}
	default:
		return nil
	}
}
