package id_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/tribles/id"
	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/types"
)

func TestRNGID(t *testing.T) {
	requireT := require.New(t)

	seen := map[types.RawID]struct{}{}
	for range 1000 {
		i := id.RNGID()
		requireT.False(i.IsZero())
		seen[i] = struct{}{}
	}
	requireT.Len(seen, 1000)
}

func TestUFOID(t *testing.T) {
	requireT := require.New(t)

	before := uint32(time.Now().UnixMilli())
	i := id.UFOID()
	after := uint32(time.Now().UnixMilli())

	ts := binary.BigEndian.Uint32(i[:4])
	requireT.GreaterOrEqual(ts-before, uint32(0))
	requireT.LessOrEqual(ts-before, after-before)
	requireT.NotEqual(i, id.UFOID())
}

func TestFUCID(t *testing.T) {
	requireT := require.New(t)

	source := id.NewFUCIDSource()
	seen := map[types.RawID]struct{}{}
	for range 10000 {
		seen[source.Next()] = struct{}{}
	}
	requireT.Len(seen, 10000)

	source2 := id.NewFUCIDSource()
	requireT.NotEqual(source.Next(), source2.Next())
}

func TestUUID(t *testing.T) {
	requireT := require.New(t)

	i, err := id.UUIDv7()
	requireT.NoError(err)
	requireT.EqualValues(7, i[6]>>4)

	u := uuid.MustParse("0191b3c8-2f3a-7cc1-9f6e-7a1b2c3d4e5f")
	requireT.Equal(id.MustParse("0191B3C82F3A7CC19F6E7A1B2C3D4E5F"), id.FromUUID(u))
}

func TestParse(t *testing.T) {
	requireT := require.New(t)

	i, err := id.Parse("328edd7583de04e2bedd6bd4fd50e651")
	requireT.NoError(err)
	requireT.Equal("328EDD7583DE04E2BEDD6BD4FD50E651", id.Hex(i))

	i2, err := id.Parse(id.Hex(i))
	requireT.NoError(err)
	requireT.Equal(i, i2)

	_, err = id.Parse("328edd")
	requireT.True(errors.Is(err, id.ErrInvalidID))
	_, err = id.Parse("x28edd7583de04e2bedd6bd4fd50e651")
	requireT.True(errors.Is(err, id.ErrInvalidID))
	requireT.Panics(func() {
		id.MustParse("")
	})
}

func TestSet(t *testing.T) {
	requireT := require.New(t)

	a := id.RNGID()
	b := id.RNGID()
	s := id.NewSet(a)
	s2 := s.Insert(b)

	requireT.Equal(1, s.Len())
	requireT.Equal(2, s2.Len())
	requireT.True(s2.Has(a))
	requireT.True(s2.Has(b))
	requireT.False(s.Has(b))
	requireT.False(s2.Remove(a).Has(a))
}

func TestAcquireTwice(t *testing.T) {
	requireT := require.New(t)

	owner := id.NewOwner()
	owned := owner.Mint(id.UFOID)
	i := owned.ID()
	requireT.False(owner.Owns(i))

	owned.Release()
	requireT.True(owner.Owns(i))
	requireT.Panics(owned.Release)

	owned, ok := owner.TryAcquire(i)
	requireT.True(ok)
	requireT.Equal(i, owned.ID())
	requireT.Equal(types.IDToValue(i), owned.Value())

	_, ok = owner.TryAcquire(i)
	requireT.False(ok)
	_, err := owner.Acquire(i)
	requireT.True(errors.Is(err, id.ErrNotOwned))

	owned.Release()
	owned, err = owner.Acquire(i)
	requireT.NoError(err)
	requireT.Equal(i, owned.ID())
	requireT.Zero(owner.Len())
}

func TestAcquireUnknown(t *testing.T) {
	requireT := require.New(t)

	owner := id.NewOwner()
	_, ok := owner.TryAcquire(id.RNGID())
	requireT.False(ok)
}

func TestOwnerConstraint(t *testing.T) {
	requireT := require.New(t)

	owner := id.NewOwner()
	a := owner.Mint(id.RNGID)
	b := owner.Mint(id.RNGID)
	c := owner.Mint(id.RNGID)
	a.Release()
	b.Release()

	ctx := query.NewContext()
	v := ctx.NewVariable()
	constraint := owner.Has(v)
	requireT.Equal(2, constraint.Estimate(v, &query.Binding{}))

	seq, err := query.Find(constraint, v)
	requireT.NoError(err)

	found := map[types.RawValue]struct{}{}
	for row := range seq {
		found[row[0]] = struct{}{}
	}
	requireT.Equal(map[types.RawValue]struct{}{
		a.Value(): {},
		b.Value(): {},
	}, found)

	candidates := constraint.Confirm(v, &query.Binding{}, []types.RawValue{
		a.Value(), c.Value(), {1},
	})
	requireT.Equal([]types.RawValue{a.Value()}, candidates)
}
