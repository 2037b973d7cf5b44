package value

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

// UInt64 stores big-endian uint64 in the last 8 bytes of the value. Remaining bytes are zero.
type UInt64 struct{}

// Encode encodes number.
func (UInt64) Encode(n uint64) (types.RawValue, error) {
	var v types.RawValue
	binary.BigEndian.PutUint64(v[types.ValueLength-types.UInt64Length:], n)
	return v, nil
}

// Decode decodes number.
func (UInt64) Decode(v types.RawValue) (uint64, error) {
	if !isZero(v[:types.ValueLength-types.UInt64Length]) {
		return 0, errors.Wrap(ErrMalformed, "number exceeds 64 bits")
	}
	return binary.BigEndian.Uint64(v[types.ValueLength-types.UInt64Length:]), nil
}
