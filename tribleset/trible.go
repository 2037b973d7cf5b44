package tribleset

import (
	"github.com/outofforest/tribles/types"
)

// Trible is the fact made of entity, attribute and value.
type Trible [types.TribleLength]byte

// NewTrible creates trible.
func NewTrible(e, a types.RawID, v types.RawValue) Trible {
	var t Trible
	copy(t[types.FieldEntity.Offset():], e[:])
	copy(t[types.FieldAttribute.Offset():], a[:])
	copy(t[types.FieldValue.Offset():], v[:])
	return t
}

// Entity returns the entity of the trible.
func (t Trible) Entity() types.RawID {
	return types.RawID(t[types.FieldEntity.Offset():types.FieldAttribute.Offset()])
}

// Attribute returns the attribute of the trible.
func (t Trible) Attribute() types.RawID {
	return types.RawID(t[types.FieldAttribute.Offset():types.FieldValue.Offset()])
}

// Value returns the value of the trible.
func (t Trible) Value() types.RawValue {
	return types.RawValue(t[types.FieldValue.Offset():])
}

// FieldValue returns field embedded in value slot.
func (t Trible) FieldValue(f types.Field) types.RawValue {
	switch f {
	case types.FieldEntity:
		return types.IDToValue(t.Entity())
	case types.FieldAttribute:
		return types.IDToValue(t.Attribute())
	default:
		return t.Value()
	}
}
