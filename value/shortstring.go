package value

import (
	"bytes"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

// ShortString stores UTF-8 string of up to 32 bytes padded with zeros.
type ShortString struct{}

// Encode encodes string.
func (ShortString) Encode(s string) (types.RawValue, error) {
	var v types.RawValue
	if len(s) > types.ValueLength {
		return v, errors.Wrapf(ErrMalformed, "string of %d bytes does not fit", len(s))
	}
	if !utf8.ValidString(s) {
		return v, errors.Wrapf(ErrMalformed, "string %q is not valid UTF-8", s)
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return v, errors.Wrap(ErrMalformed, "string contains zero byte")
	}
	copy(v[:], s)
	return v, nil
}

// Decode decodes string.
func (ShortString) Decode(v types.RawValue) (string, error) {
	end := bytes.IndexByte(v[:], 0)
	if end < 0 {
		end = types.ValueLength
	}
	if !isZero(v[end:]) {
		return "", errors.Wrap(ErrMalformed, "string contains zero byte")
	}
	if !utf8.Valid(v[:end]) {
		return "", errors.Wrap(ErrMalformed, "string is not valid UTF-8")
	}
	return string(v[:end]), nil
}
