package id

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/outofforest/photon"
	"github.com/outofforest/tribles/types"
)

// ErrInvalidID is returned when identifier cannot be parsed.
var ErrInvalidID = errors.New("invalid identifier")

// Minter produces new identifiers.
type Minter func() types.RawID

// RNGID returns identifier made of 128 random bits.
func RNGID() types.RawID {
	var id types.RawID
	if _, err := rand.Read(id[:]); err != nil {
		panic(errors.Wrap(err, "reading random bytes failed"))
	}
	return id
}

// UFOID returns identifier made of rolling 32-bit millisecond timestamp followed by 96 random bits.
// Identifiers minted close in time share prefix.
func UFOID() types.RawID {
	id := RNGID()
	binary.BigEndian.PutUint32(id[:4], uint32(time.Now().UnixMilli()))
	return id
}

// NewFUCIDSource creates new source of FUCIDs.
func NewFUCIDSource() *FUCIDSource {
	return &FUCIDSource{
		salt: RNGID(),
	}
}

// FUCIDSource produces identifiers by XORing random salt with incrementing counter.
// Identifiers of one source are unique and dense, source is not safe for concurrent use.
type FUCIDSource struct {
	salt    types.RawID
	counter [2]uint64
}

// Next returns next identifier.
func (s *FUCIDSource) Next() types.RawID {
	id := s.salt
	words := photon.FromBytes[[2]uint64](id[:])
	words[0] ^= s.counter[0]
	words[1] ^= s.counter[1]

	s.counter[0]++
	if s.counter[0] == 0 {
		s.counter[1]++
	}
	return id
}

// UUIDv7 returns identifier taken from time-ordered UUID version 7.
func UUIDv7() (types.RawID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return types.RawID{}, errors.WithStack(err)
	}
	return FromUUID(u), nil
}

// FromUUID converts UUID to identifier.
func FromUUID(u uuid.UUID) types.RawID {
	return types.RawID(u)
}

// Parse parses identifier from hex string.
func Parse(s string) (types.RawID, error) {
	var id types.RawID
	if len(s) != 2*types.IDLength {
		return id, errors.Wrapf(ErrInvalidID, "%q has %d characters, %d expected", s, len(s), 2*types.IDLength)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, errors.Wrapf(ErrInvalidID, "%q: %s", s, err)
	}
	return id, nil
}

// MustParse parses identifier from hex string and panics on error.
func MustParse(s string) types.RawID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Hex returns upper-case hex representation of identifier.
func Hex(id types.RawID) string {
	return strings.ToUpper(hex.EncodeToString(id[:]))
}
