package bitset

import (
	"iter"
	"math/bits"
)

// Set256 is the set of numbers from range [0, 255].
type Set256 [4]uint64

// Set adds i to the set.
func (s *Set256) Set(i uint8) {
	s[i>>6] |= 1 << (i & 63)
}

// Unset removes i from the set.
func (s *Set256) Unset(i uint8) {
	s[i>>6] &^= 1 << (i & 63)
}

// Has returns true if i belongs to the set.
func (s Set256) Has(i uint8) bool {
	return s[i>>6]&(1<<(i&63)) != 0
}

// IsEmpty returns true if there are no elements in the set.
func (s Set256) IsEmpty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// Count returns the number of elements in the set.
func (s Set256) Count() int {
	return bits.OnesCount64(s[0]) + bits.OnesCount64(s[1]) + bits.OnesCount64(s[2]) + bits.OnesCount64(s[3])
}

// Rank returns the number of elements lower than i.
func (s Set256) Rank(i uint8) int {
	word := i >> 6
	var rank int
	for w := range word {
		rank += bits.OnesCount64(s[w])
	}
	return rank + bits.OnesCount64(s[word]&(1<<(i&63)-1))
}

// Min returns the lowest element of the set.
func (s Set256) Min() (uint8, bool) {
	for w, word := range s {
		if word != 0 {
			return uint8(w<<6 + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

// Max returns the highest element of the set.
func (s Set256) Max() (uint8, bool) {
	for w := 3; w >= 0; w-- {
		if s[w] != 0 {
			return uint8(w<<6 + 63 - bits.LeadingZeros64(s[w])), true
		}
	}
	return 0, false
}

// PopMin removes and returns the lowest element of the set.
func (s *Set256) PopMin() (uint8, bool) {
	i, ok := s.Min()
	if ok {
		s.Unset(i)
	}
	return i, ok
}

// Union returns the union of two sets.
func (s Set256) Union(other Set256) Set256 {
	return Set256{s[0] | other[0], s[1] | other[1], s[2] | other[2], s[3] | other[3]}
}

// Intersect returns the intersection of two sets.
func (s Set256) Intersect(other Set256) Set256 {
	return Set256{s[0] & other[0], s[1] & other[1], s[2] & other[2], s[3] & other[3]}
}

// All iterates over elements in ascending order.
func (s Set256) All() iter.Seq[uint8] {
	return func(yield func(uint8) bool) {
		for w, word := range s {
			for word != 0 {
				if !yield(uint8(w<<6 + bits.TrailingZeros64(word))) {
					return
				}
				word &= word - 1
			}
		}
	}
}
