package value

import (
	"math/big"
	"slices"

	"github.com/pkg/errors"

	"github.com/outofforest/tribles/types"
)

const int128Length = 16

var (
	int128Range = new(big.Int).Lsh(big.NewInt(1), 8*int128Length)
	int128Max   = new(big.Int).Lsh(big.NewInt(1), 8*int128Length-1)
	int128Min   = new(big.Int).Neg(int128Max)
)

// FR256 stores rational number as little-endian 128-bit two's complement numerator followed by denominator.
type FR256 struct{}

// Encode encodes rational number. Numerator and denominator of the reduced fraction must fit in 128 bits.
func (FR256) Encode(r *big.Rat) (types.RawValue, error) {
	var v types.RawValue
	if err := putInt128(v[:int128Length], r.Num()); err != nil {
		return v, errors.WithMessage(err, "numerator")
	}
	if err := putInt128(v[int128Length:], r.Denom()); err != nil {
		return v, errors.WithMessage(err, "denominator")
	}
	return v, nil
}

// Decode decodes rational number.
func (FR256) Decode(v types.RawValue) (*big.Rat, error) {
	denom := int128(v[int128Length:])
	if denom.Sign() == 0 {
		return nil, errors.Wrap(ErrMalformed, "denominator is zero")
	}
	return new(big.Rat).SetFrac(int128(v[:int128Length]), denom), nil
}

func putInt128(b []byte, n *big.Int) error {
	if n.Cmp(int128Min) < 0 || n.Cmp(int128Max) >= 0 {
		return errors.Wrapf(ErrMalformed, "%s does not fit in 128 bits", n)
	}
	if n.Sign() < 0 {
		n = new(big.Int).Add(n, int128Range)
	}
	n.FillBytes(b)
	slices.Reverse(b)
	return nil
}

func int128(b []byte) *big.Int {
	be := slices.Clone(b)
	slices.Reverse(be)
	n := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		n.Sub(n, int128Range)
	}
	return n
}
