package tribles

import (
	"github.com/outofforest/tribles/tribleset"
	"github.com/outofforest/tribles/types"
)

// SnapshotID identifies committed snapshot.
type SnapshotID uint64

// Snapshot represents the state at particular point in time.
// PreviousSnapshotID of the oldest existing snapshot is equal to its own id.
type Snapshot struct {
	SnapshotID         SnapshotID
	PreviousSnapshotID SnapshotID
	Tribles            tribleset.TribleSet
}

// Hash returns the content hash of the snapshot tribles.
func (s *Snapshot) Hash() types.Hash {
	return s.Tribles.Hash()
}
