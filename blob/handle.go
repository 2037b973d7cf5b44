package blob

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
	"github.com/outofforest/tribles/value"
)

// Handle references blob of type T.
type Handle[T any] struct {
	Digest types.Digest
}

// HandleSchema stores handle in value slot.
type HandleSchema[T any] struct{}

// Encode encodes handle.
func (HandleSchema[T]) Encode(h Handle[T]) (types.RawValue, error) {
	return value.Hash{}.Encode(h.Digest)
}

// Decode decodes handle.
func (HandleSchema[T]) Decode(v types.RawValue) (Handle[T], error) {
	d, err := value.Hash{}.Decode(v)
	return Handle[T]{Digest: d}, err
}

// LongString is the blob holding UTF-8 string of any length.
type LongString struct{}

// PutLongString stores string in the blob set.
func PutLongString(s *Set, str string) Handle[LongString] {
	return Handle[LongString]{Digest: s.Put([]byte(str))}
}

// GetLongString reads string from the blob set.
func GetLongString(s *Set, h Handle[LongString]) (string, error) {
	data, err := s.Get(h.Digest)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.Wrapf(value.ErrMalformed, "blob %x is not valid UTF-8", h.Digest)
	}
	return string(data), nil
}
