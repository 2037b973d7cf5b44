package types

const (
	// UInt64Length is the number of bytes taken by uint64.
	UInt64Length = 8

	// IDLength is the number of bytes taken by entity and attribute identifiers.
	IDLength = 16

	// ValueLength is the number of bytes taken by value slot.
	ValueLength = 32

	// TribleLength is the number of bytes taken by trible.
	TribleLength = 2*IDLength + ValueLength

	// HashLength is the number of bytes taken by content hash of trie node.
	HashLength = 16

	// DigestLength is the number of bytes taken by blob digest.
	DigestLength = 32
)

// Field enumerates fields of the trible.
type Field byte

const (
	// FieldEntity is the entity field.
	FieldEntity Field = iota

	// FieldAttribute is the attribute field.
	FieldAttribute

	// FieldValue is the value field.
	FieldValue
)

// Offset returns offset of the field inside trible.
func (f Field) Offset() int {
	switch f {
	case FieldEntity:
		return 0
	case FieldAttribute:
		return IDLength
	default:
		return 2 * IDLength
	}
}

// Length returns length of the field.
func (f Field) Length() int {
	if f == FieldValue {
		return ValueLength
	}
	return IDLength
}

func (f Field) String() string {
	switch f {
	case FieldEntity:
		return "e"
	case FieldAttribute:
		return "a"
	default:
		return "v"
	}
}

type (
	// RawID is the opaque 128-bit identifier.
	RawID [IDLength]byte

	// RawValue is the 32-byte value slot.
	RawValue [ValueLength]byte

	// Hash is the content hash of the trie node.
	Hash [HashLength]byte

	// Digest is the cryptographic digest of the blob.
	Digest [DigestLength]byte
)

// IsZero returns true if id consists of zero bytes only.
func (id RawID) IsZero() bool {
	return id == RawID{}
}

// IDToValue embeds identifier in the value slot.
func IDToValue(id RawID) RawValue {
	var v RawValue
	copy(v[IDLength:], id[:])
	return v
}

// ValueToID extracts identifier from the value slot. It returns false if value does not carry identifier.
func ValueToID(v RawValue) (RawID, bool) {
	var id RawID
	for _, b := range v[:IDLength] {
		if b != 0 {
			return id, false
		}
	}
	copy(id[:], v[IDLength:])
	return id, true
}
