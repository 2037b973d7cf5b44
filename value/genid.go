package value

import (
	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

// GenID stores identifier in the low 16 bytes of the value. High bytes are zero.
type GenID struct{}

// Encode encodes identifier.
func (GenID) Encode(id types.RawID) (types.RawValue, error) {
	return types.IDToValue(id), nil
}

// Decode decodes identifier.
func (GenID) Decode(v types.RawValue) (types.RawID, error) {
	id, ok := types.ValueToID(v)
	if !ok {
		return types.RawID{}, errors.Wrap(ErrMalformed, "value does not hold identifier")
	}
	return id, nil
}
