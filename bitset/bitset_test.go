package bitset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndUnset(t *testing.T) {
	requireT := require.New(t)

	var s Set256
	requireT.True(s.IsEmpty())

	for _, i := range []uint8{0, 1, 63, 64, 127, 128, 200, 255} {
		s.Set(i)
		requireT.True(s.Has(i))
	}
	requireT.Equal(8, s.Count())
	requireT.False(s.Has(2))

	s.Unset(64)
	requireT.False(s.Has(64))
	requireT.Equal(7, s.Count())
	requireT.Equal([]uint8{0, 1, 63, 127, 128, 200, 255}, slices.Collect(s.All()))
}

func TestRank(t *testing.T) {
	requireT := require.New(t)

	var s Set256
	for _, i := range []uint8{3, 70, 130, 255} {
		s.Set(i)
	}

	requireT.Equal(0, s.Rank(0))
	requireT.Equal(0, s.Rank(3))
	requireT.Equal(1, s.Rank(4))
	requireT.Equal(1, s.Rank(70))
	requireT.Equal(2, s.Rank(71))
	requireT.Equal(3, s.Rank(255))
}

func TestMinMaxPop(t *testing.T) {
	requireT := require.New(t)

	var s Set256
	_, ok := s.Min()
	requireT.False(ok)
	_, ok = s.Max()
	requireT.False(ok)

	s.Set(77)
	s.Set(12)
	s.Set(250)

	i, ok := s.Min()
	requireT.True(ok)
	requireT.EqualValues(12, i)

	i, ok = s.Max()
	requireT.True(ok)
	requireT.EqualValues(250, i)

	var popped []uint8
	for {
		i, ok := s.PopMin()
		if !ok {
			break
		}
		popped = append(popped, i)
	}
	requireT.Equal([]uint8{12, 77, 250}, popped)
	requireT.True(s.IsEmpty())
}

func TestUnionIntersect(t *testing.T) {
	requireT := require.New(t)

	var a, b Set256
	a.Set(1)
	a.Set(100)
	b.Set(100)
	b.Set(200)

	requireT.Equal([]uint8{1, 100, 200}, slices.Collect(a.Union(b).All()))
	requireT.Equal([]uint8{100}, slices.Collect(a.Intersect(b).All()))
}
