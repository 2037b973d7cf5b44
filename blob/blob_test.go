package blob_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/outofforest/tribles/blob"
	"github.com/outofforest/tribles/types"
	"github.com/outofforest/tribles/value"
)

func TestPutGet(t *testing.T) {
	requireT := require.New(t)

	s := blob.NewSet()
	data := []byte("hello world!")
	digest := s.Put(data)
	requireT.Equal(blob.Digest(data), digest)
	requireT.True(s.Has(digest))

	data[0] = 'H'
	data2, err := s.Get(digest)
	requireT.NoError(err)
	requireT.Equal([]byte("hello world!"), data2)

	requireT.Equal(digest, s.Put([]byte("hello world!")))
	requireT.Equal(1, s.Len())

	_, err = s.Get(types.Digest{})
	requireT.True(errors.Is(err, blob.ErrNotFound))
}

func TestUnion(t *testing.T) {
	requireT := require.New(t)

	s1 := blob.NewSet()
	s2 := blob.NewSet()
	d1 := s1.Put([]byte("a"))
	d2 := s2.Put([]byte("b"))

	s1.Union(s2)
	requireT.Equal(2, s1.Len())
	requireT.True(s1.Has(d1))
	requireT.True(s1.Has(d2))
	requireT.False(s2.Has(d1))
}

func TestLongString(t *testing.T) {
	requireT := require.New(t)

	s := blob.NewSet()
	h1 := blob.PutLongString(s, "hello world!")
	h2 := blob.PutLongString(blob.NewSet(), "hello world!")
	requireT.Equal(h1, h2)

	str, err := blob.GetLongString(s, h1)
	requireT.NoError(err)
	requireT.Equal("hello world!", str)

	v := value.MustEncode[blob.Handle[blob.LongString]](blob.HandleSchema[blob.LongString]{}, h1)
	h3, err := blob.HandleSchema[blob.LongString]{}.Decode(v)
	requireT.NoError(err)
	requireT.Equal(h1, h3)

	_, err = blob.GetLongString(s, blob.Handle[blob.LongString]{Digest: blob.Digest([]byte{0xff})})
	requireT.True(errors.Is(err, blob.ErrNotFound))

	invalid := blob.Handle[blob.LongString]{Digest: s.Put([]byte{0xff})}
	_, err = blob.GetLongString(s, invalid)
	requireT.True(errors.Is(err, value.ErrMalformed))
}
