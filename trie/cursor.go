package trie

import (
	"github.com/outofforest/tribles/bitset"
)

// Cursor walks the trie byte by byte in tree order.
// Cursor is not safe for concurrent use, but many cursors may walk the same trie concurrently.
type Cursor struct {
	ordering  Ordering
	keyLength int
	nodes     []node
}

func newCursor(t Trie) *Cursor {
	nodes := make([]node, 1, t.config.KeyLength+1)
	nodes[0] = t.root
	return &Cursor{
		ordering:  t.config.Ordering,
		keyLength: t.config.KeyLength,
		nodes:     nodes,
	}
}

// Depth returns the number of bytes pushed.
func (c *Cursor) Depth() int {
	return len(c.nodes) - 1
}

// Peek returns the next byte if all the keys under the cursor share it.
func (c *Cursor) Peek() (byte, bool) {
	depth := c.Depth()
	n := c.nodes[depth]
	if n == nil || depth == c.keyLength || n.depth() == depth {
		return 0, false
	}
	return c.ordering.at(n.key(), depth), true
}

// Propose returns the set of next bytes existing under the cursor.
func (c *Cursor) Propose() bitset.Set256 {
	depth := c.Depth()
	n := c.nodes[depth]
	if b, ok := n.(*branch); ok && b.d == depth {
		return b.bitmap
	}

	var s bitset.Set256
	if i, ok := c.Peek(); ok {
		s.Set(i)
	}
	return s
}

// Push moves cursor one byte deeper. Pushing byte which does not exist moves cursor to empty subtree.
func (c *Cursor) Push(i byte) {
	depth := c.Depth()
	if depth == c.keyLength {
		panic("cursor is at the end of the key")
	}

	n := c.nodes[depth]
	switch {
	case n == nil:
	case n.depth() == depth:
		n = n.(*branch).child(i)
	case c.ordering.at(n.key(), depth) != i:
		n = nil
	}
	c.nodes = append(c.nodes, n)
}

// Pop moves cursor one byte back.
func (c *Cursor) Pop() {
	if c.Depth() == 0 {
		panic("cursor is at the root")
	}
	c.nodes = c.nodes[:len(c.nodes)-1]
}

// Count returns the number of keys under the cursor.
func (c *Cursor) Count() int {
	n := c.nodes[c.Depth()]
	if n == nil {
		return 0
	}
	return n.count()
}

// SegmentCount returns the number of distinct prefixes ending where the segment of the current depth ends.
func (c *Cursor) SegmentCount() int {
	depth := c.Depth()
	switch n := c.nodes[depth].(type) {
	case *branch:
		if c.ordering.SegmentEnd(depth) <= n.d {
			return 1
		}
		return n.segments
	case *leaf:
		return 1
	default:
		return 0
	}
}
