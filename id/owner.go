package id

import (
	"github.com/pkg/errors"

	"github.com/outofforest/tribles/query"
	"github.com/outofforest/tribles/types"
)

// ErrNotOwned is returned when identifier is not owned by the owner or is already acquired.
var ErrNotOwned = errors.New("identifier is not owned")

// NewOwner creates new owner without identifiers.
func NewOwner() *Owner {
	return &Owner{
		ids: NewSet(),
	}
}

// Owner tracks identifiers owned by single writer context.
// Acquired identifier is removed from the owner until it is released.
// Owner is not safe for concurrent use.
type Owner struct {
	ids Set
}

// Mint mints new identifier and returns it acquired.
func (o *Owner) Mint(mint Minter) *Owned {
	return &Owned{
		owner: o,
		id:    mint(),
	}
}

// TryAcquire acquires identifier. It returns false if identifier is not available to the owner.
func (o *Owner) TryAcquire(id types.RawID) (*Owned, bool) {
	if !o.ids.Has(id) {
		return nil, false
	}
	o.ids = o.ids.Remove(id)
	return &Owned{
		owner: o,
		id:    id,
	}, true
}

// Acquire acquires identifier.
func (o *Owner) Acquire(id types.RawID) (*Owned, error) {
	owned, ok := o.TryAcquire(id)
	if !ok {
		return nil, errors.Wrapf(ErrNotOwned, "identifier %s", Hex(id))
	}
	return owned, nil
}

// Owns returns true if identifier is owned and not acquired.
func (o *Owner) Owns(id types.RawID) bool {
	return o.ids.Has(id)
}

// Len returns the number of owned identifiers which are not acquired.
func (o *Owner) Len() int {
	return o.ids.Len()
}

// Has returns constraint restricting variable to identifiers owned at the moment of the call.
func (o *Owner) Has(v query.VariableID) query.Constraint {
	return o.ids.Contains(v)
}

// Owned is the identifier acquired from the owner.
type Owned struct {
	owner    *Owner
	id       types.RawID
	released bool
}

// ID returns the identifier.
func (o *Owned) ID() types.RawID {
	return o.id
}

// Value returns the identifier embedded in value.
func (o *Owned) Value() types.RawValue {
	return types.IDToValue(o.id)
}

// Release returns identifier to the owner.
func (o *Owned) Release() {
	if o.released {
		panic("identifier released twice")
	}
	o.released = true
	o.owner.ids = o.owner.ids.Insert(o.id)
}
