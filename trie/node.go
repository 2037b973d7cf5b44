package trie

import (
	"github.com/zeebo/blake3"

	"github.com/outofforest/tribles/bitset"
	"github.com/outofforest/tribles/types"
)

const (
	// minWidth is the number of child slots in the narrowest branch.
	minWidth = 4

	// denseWidth is the width of branch dispatching children by direct indexing.
	denseWidth = 256
)

// node is either *leaf or *branch. Empty node is represented by nil.
type node interface {
	// hash returns the content hash of the subtree.
	hash() types.Hash

	// count returns the number of keys in the subtree.
	count() int

	// depth returns the tree depth where subtree branches. For leaf it is the key length.
	depth() int

	// key returns canonical key of any leaf in the subtree.
	key() []byte
}

type leaf struct {
	k []byte
	h types.Hash
}

func newLeaf(key []byte, h types.Hash) *leaf {
	return &leaf{
		k: key,
		h: h,
	}
}

func (l *leaf) hash() types.Hash { return l.h }
func (l *leaf) count() int       { return 1 }
func (l *leaf) depth() int       { return len(l.k) }
func (l *leaf) key() []byte      { return l.k }

// branch dispatches children by the key byte at its depth.
//
// Branches narrower than denseWidth keep children sorted and compact, the slot of the child is the
// rank of its byte in the bitmap. Dense branch stores children at the index equal to the byte.
type branch struct {
	k        []byte
	d        int
	h        types.Hash
	n        int
	segments int
	bitmap   bitset.Set256
	children []node
}

func (b *branch) hash() types.Hash { return b.h }
func (b *branch) count() int       { return b.n }
func (b *branch) depth() int       { return b.d }
func (b *branch) key() []byte      { return b.k }

func (b *branch) width() int {
	return cap(b.children)
}

func (b *branch) slot(i uint8) int {
	if b.width() == denseWidth {
		return int(i)
	}
	return b.bitmap.Rank(i)
}

func (b *branch) child(i uint8) node {
	if !b.bitmap.Has(i) {
		return nil
	}
	return b.children[b.slot(i)]
}

// entries iterates over children in ascending order of their bytes.
func (b *branch) entries(yield func(i uint8, child node) bool) {
	for i := range b.bitmap.All() {
		if !yield(i, b.children[b.slot(i)]) {
			return
		}
	}
}

func hashKey(key []byte) types.Hash {
	sum := blake3.Sum256(key)
	var h types.Hash
	copy(h[:], sum[:])
	return h
}

func xorHash(a, b types.Hash) types.Hash {
	for i := range a {
		a[i] ^= b[i]
	}
	return a
}

// segmentContribution returns the number of distinct key prefixes ending at segmentEnd found in the child.
func segmentContribution(child node, segmentEnd int) int {
	if b, ok := child.(*branch); ok && segmentEnd > b.d {
		return b.segments
	}
	return 1
}

func widthFor(numOfChildren int) int {
	width := minWidth
	for width < numOfChildren {
		width <<= 1
	}
	return width
}

type entry struct {
	Byte  uint8
	Child node
}

// buildBranch creates branch at depth from children sorted by byte.
func (o Ordering) buildBranch(depth int, entries []entry) *branch {
	b := &branch{
		k:        entries[0].Child.key(),
		d:        depth,
		children: make([]node, 0, widthFor(len(entries))),
	}
	if b.width() == denseWidth {
		b.children = b.children[:denseWidth]
	}

	segmentEnd := o.SegmentEnd(depth)
	for _, e := range entries {
		b.bitmap.Set(e.Byte)
		if b.width() == denseWidth {
			b.children[e.Byte] = e.Child
		} else {
			b.children = append(b.children, e.Child)
		}
		b.h = xorHash(b.h, e.Child.hash())
		b.n += e.Child.count()
		b.segments += segmentContribution(e.Child, segmentEnd)
	}

	return b
}

// pair creates branch at depth holding two nodes differing at that depth.
func (o Ordering) pair(depth int, a, b node) *branch {
	ai := o.at(a.key(), depth)
	bi := o.at(b.key(), depth)
	if ai > bi {
		a, b = b, a
		ai, bi = bi, ai
	}
	return o.buildBranch(depth, []entry{{Byte: ai, Child: a}, {Byte: bi, Child: b}})
}

// withChild returns copy of the branch with new child added under byte i.
func (o Ordering) withChild(b *branch, i uint8, child node) *branch {
	width := b.width()
	if b.bitmap.Count() == width {
		width <<= 1
	}

	b2 := &branch{
		k:        b.k,
		d:        b.d,
		h:        xorHash(b.h, child.hash()),
		n:        b.n + child.count(),
		segments: b.segments + segmentContribution(child, o.SegmentEnd(b.d)),
		bitmap:   b.bitmap,
	}
	b2.bitmap.Set(i)

	if width == denseWidth {
		b2.children = make([]node, denseWidth)
		for j, c := range b.entries {
			b2.children[j] = c
		}
		b2.children[i] = child
		return b2
	}

	slot := b.bitmap.Rank(i)
	b2.children = make([]node, 0, width)
	b2.children = append(b2.children, b.children[:slot]...)
	b2.children = append(b2.children, child)
	b2.children = append(b2.children, b.children[slot:]...)
	return b2
}

// replaceChild returns copy of the branch where child under byte i is replaced.
func (o Ordering) replaceChild(b *branch, i uint8, oldChild, newChild node) *branch {
	segmentEnd := o.SegmentEnd(b.d)
	b2 := &branch{
		k:        newChild.key(),
		d:        b.d,
		h:        xorHash(xorHash(b.h, oldChild.hash()), newChild.hash()),
		n:        b.n - oldChild.count() + newChild.count(),
		segments: b.segments - segmentContribution(oldChild, segmentEnd) + segmentContribution(newChild, segmentEnd),
		bitmap:   b.bitmap,
		children: make([]node, len(b.children), b.width()),
	}
	copy(b2.children, b.children)
	b2.children[b.slot(i)] = newChild
	return b2
}

// withoutChild returns branch sized to fit the children left after removing the one under byte i.
// Branch must contain at least 3 children.
func (o Ordering) withoutChild(b *branch, i uint8) *branch {
	entries := make([]entry, 0, b.bitmap.Count()-1)
	for j, child := range b.entries {
		if j != i {
			entries = append(entries, entry{Byte: j, Child: child})
		}
	}
	return o.buildBranch(b.d, entries)
}
