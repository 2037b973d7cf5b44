package blob

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"
	"lukechampine.com/blake3"

	"github.com/outofforest/tribles/types"
)

// ErrNotFound is returned when blob does not exist.
var ErrNotFound = errors.New("blob not found")

// Digest computes digest of the blob.
func Digest(data []byte) types.Digest {
	return blake3.Sum256(data)
}

// NewSet creates empty blob set.
func NewSet() *Set {
	return &Set{
		blobs: map[types.Digest][]byte{},
	}
}

// Set stores blobs addressed by their digests.
type Set struct {
	mu    sync.RWMutex
	blobs map[types.Digest][]byte
}

// Put stores blob and returns its digest.
func (s *Set) Put(data []byte) types.Digest {
	digest := Digest(data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blobs[digest]; !exists {
		s.blobs[digest] = bytes.Clone(data)
	}
	return digest
}

// Get returns blob by digest.
func (s *Set) Get(digest types.Digest) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.blobs[digest]
	if !exists {
		return nil, errors.Wrapf(ErrNotFound, "digest %x", digest)
	}
	return bytes.Clone(data), nil
}

// Has returns true if blob exists.
func (s *Set) Has(digest types.Digest) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.blobs[digest]
	return exists
}

// Len returns the number of blobs.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.blobs)
}

// Union copies blobs of other set.
func (s *Set) Union(other *Set) {
	other.mu.RLock()
	blobs := make(map[types.Digest][]byte, len(other.blobs))
	for digest, data := range other.blobs {
		blobs[digest] = data
	}
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	for digest, data := range blobs {
		s.blobs[digest] = data
	}
}
