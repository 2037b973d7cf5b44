package tribles

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/logger"
	"github.com/outofforest/tribles/tribleset"
)

// ErrSnapshotNotFound is returned when snapshot does not exist.
var ErrSnapshotNotFound = errors.New("snapshot does not exist")

// Config stores database configuration.
type Config struct {
	// Initial is the set published as snapshot 0.
	Initial tribleset.TribleSet
}

// New creates new database.
func New(config Config) *DB {
	if config.Initial.Len() == 0 {
		config.Initial = tribleset.New()
	}

	snapshot := &Snapshot{
		Tribles: config.Initial,
	}
	db := &DB{
		config: config,
		snapshots: map[SnapshotID]*Snapshot{
			0: snapshot,
		},
	}
	db.head.Store(snapshot)
	return db
}

// DB publishes the latest version of the trible set.
// Readers get the head without locking, writers are serialized.
type DB struct {
	config Config
	head   atomic.Pointer[Snapshot]

	mu        sync.Mutex
	snapshots map[SnapshotID]*Snapshot
}

// Head returns the latest snapshot.
func (db *DB) Head() *Snapshot {
	return db.head.Load()
}

// Snapshot returns snapshot by id.
func (db *DB) Snapshot(snapshotID SnapshotID) (*Snapshot, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot, exists := db.snapshots[snapshotID]
	if !exists {
		return nil, errors.Wrapf(ErrSnapshotNotFound, "snapshot %d", snapshotID)
	}
	return snapshot, nil
}

// Snapshots returns ids of existing snapshots.
func (db *DB) Snapshots() []SnapshotID {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshots := make([]SnapshotID, 0, len(db.snapshots))
	for snapshotID := range db.snapshots {
		snapshots = append(snapshots, snapshotID)
	}
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i] < snapshots[j] })
	return snapshots
}

// Commit merges tribles into the head and publishes the result as the new snapshot.
func (db *DB) Commit(ctx context.Context, tribles tribleset.TribleSet) (SnapshotID, error) {
	return db.Update(ctx, func(head tribleset.TribleSet) (tribleset.TribleSet, error) {
		return head.Union(tribles), nil
	})
}

// Update publishes the set returned by fn as the new snapshot. Head is not changed if fn returns error.
func (db *DB) Update(
	ctx context.Context,
	fn func(head tribleset.TribleSet) (tribleset.TribleSet, error),
) (SnapshotID, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	head := db.head.Load()
	tribles, err := fn(head.Tribles)
	if err != nil {
		return 0, err
	}

	snapshot := &Snapshot{
		SnapshotID:         head.SnapshotID + 1,
		PreviousSnapshotID: head.SnapshotID,
		Tribles:            tribles,
	}
	db.snapshots[snapshot.SnapshotID] = snapshot
	db.head.Store(snapshot)

	if log := logger.Get(ctx); log != nil {
		log.Debug("Snapshot committed",
			zap.Uint64("snapshotID", uint64(snapshot.SnapshotID)),
			zap.Int("tribles", tribles.Len()),
			zap.Int("added", tribles.Len()-head.Tribles.Len()))
	}

	return snapshot.SnapshotID, nil
}

// DeleteSnapshot deletes snapshot. The head cannot be deleted.
func (db *DB) DeleteSnapshot(snapshotID SnapshotID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot, exists := db.snapshots[snapshotID]
	if !exists {
		return errors.Wrapf(ErrSnapshotNotFound, "snapshot %d", snapshotID)
	}
	if snapshot == db.head.Load() {
		return errors.Errorf("snapshot %d is the head", snapshotID)
	}

	for _, s := range db.snapshots {
		if s.PreviousSnapshotID == snapshotID && s.SnapshotID != snapshotID {
			s2 := *s
			s2.PreviousSnapshotID = snapshot.PreviousSnapshotID
			if snapshot.PreviousSnapshotID == snapshotID {
				s2.PreviousSnapshotID = s2.SnapshotID
			}
			db.snapshots[s.SnapshotID] = &s2
			if s == db.head.Load() {
				db.head.Store(&s2)
			}
		}
	}
	delete(db.snapshots, snapshotID)

	return nil
}
