package value

import (
	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

// ErrMalformed is returned when value slot does not hold valid encoding of the schema.
var ErrMalformed = errors.New("malformed value")

// Schema converts typed values to and from value slots.
type Schema[T any] interface {
	Encode(v T) (types.RawValue, error)
	Decode(v types.RawValue) (T, error)
}

// MustEncode encodes value and panics on error.
func MustEncode[T any](schema Schema[T], v T) types.RawValue {
	raw, err := schema.Encode(v)
	if err != nil {
		panic(err)
	}
	return raw
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
