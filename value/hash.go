package value

import (
	"github.com/outofforest/tribles/types"
)

// Hash stores 32-byte digest as is.
type Hash struct{}

// Encode encodes digest.
func (Hash) Encode(d types.Digest) (types.RawValue, error) {
	return types.RawValue(d), nil
}

// Decode decodes digest.
func (Hash) Decode(v types.RawValue) (types.Digest, error) {
	return types.Digest(v), nil
}
