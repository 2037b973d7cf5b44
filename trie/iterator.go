package trie

import (
	"iter"
	"slices"

	"github.com/outofforest/tribles/bitset"
)

type iteratorMode int

const (
	modePath iteratorMode = iota
	modeBranch
	modeBacktrack
)

// Infixes iterates over distinct byte strings of the given length existing under the cursor, in tree order.
// Cursor returns to its original depth once iteration finishes.
func (c *Cursor) Infixes(length int) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		start := c.Depth()
		end := start + length
		if end > c.keyLength {
			panic("infix exceeds the key")
		}
		if c.Count() == 0 {
			return
		}
		if length == 0 {
			yield(nil)
			return
		}

		defer func() {
			for c.Depth() > start {
				c.Pop()
			}
		}()

		infix := make([]byte, length)
		branchState := make([]bitset.Set256, length)
		var branchPoints bitset.Set256

		mode := modePath
		for {
			switch mode {
			case modePath:
				mode = modeBacktrack
				for c.Depth() < end {
					i, ok := c.Peek()
					if !ok {
						mode = modeBranch
						break
					}
					infix[c.Depth()-start] = i
					c.Push(i)
				}
				if mode == modeBacktrack && !yield(slices.Clone(infix)) {
					return
				}
			case modeBranch:
				level := c.Depth() - start
				branchState[level] = c.Propose()
				branchPoints.Set(uint8(level))
				mode = modeBacktrack
			case modeBacktrack:
				level, ok := branchPoints.Max()
				if !ok {
					return
				}
				for c.Depth() > start+int(level) {
					c.Pop()
				}
				i, ok := branchState[level].PopMin()
				if !ok {
					branchPoints.Unset(level)
					continue
				}
				infix[level] = i
				c.Push(i)
				mode = modePath
			}
		}
	}
}
