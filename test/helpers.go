package test

import (
	"bytes"
	"context"
	"iter"
	"math/rand"
	"sort"
	"testing"

	"github.com/outofforest/logger"
	"github.com/outofforest/tribles/tribleset"
	"github.com/outofforest/tribles/trie"
	"github.com/outofforest/tribles/types"
)

// CollectKeys collects keys available in trie.
func CollectKeys(t trie.Trie) [][]byte {
	keys := [][]byte{}
	for key := range t.All() {
		keys = append(keys, key)
	}
	return keys
}

// SortKeys sorts keys lexicographically.
func SortKeys(keys [][]byte) [][]byte {
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys
}

// RandomKeys generates n distinct random keys of the length. Keys are built from small alphabet to produce
// shared prefixes.
func RandomKeys(rnd *rand.Rand, n, length int) [][]byte {
	seen := map[string]struct{}{}
	keys := make([][]byte, 0, n)
	for len(keys) < n {
		key := make([]byte, length)
		for i := range key {
			key[i] = byte(rnd.Intn(4))
		}
		if _, exists := seen[string(key)]; exists {
			continue
		}
		seen[string(key)] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// BuildTrie inserts keys into empty trie.
func BuildTrie(config trie.Config, keys [][]byte) trie.Trie {
	t := trie.New(config)
	for _, key := range keys {
		t = t.Insert(key)
	}
	return t
}

// RandomTribles generates n distinct tribles. Fields are drawn from small pools so tribles share entities,
// attributes and values.
func RandomTribles(rnd *rand.Rand, n int) []tribleset.Trible {
	seen := map[tribleset.Trible]struct{}{}
	tribles := make([]tribleset.Trible, 0, n)
	for len(tribles) < n {
		e := types.RawID{0x0e, byte(rnd.Intn(n/10 + 2))}
		a := types.RawID{0x0a, byte(rnd.Intn(5))}
		var v types.RawValue
		if rnd.Intn(2) == 0 {
			v = types.IDToValue(types.RawID{0x0e, byte(rnd.Intn(n/10 + 2))})
		} else {
			v = types.RawValue{0x0f, byte(rnd.Intn(n/5 + 2))}
		}

		t := tribleset.NewTrible(e, a, v)
		if _, exists := seen[t]; exists {
			continue
		}
		seen[t] = struct{}{}
		tribles = append(tribles, t)
	}
	return tribles
}

// BuildTribleSet inserts tribles into empty set.
func BuildTribleSet(tribles []tribleset.Trible) tribleset.TribleSet {
	s := tribleset.New()
	for _, t := range tribles {
		s = s.Insert(t)
	}
	return s
}

// CollectRows collects rows produced by query.
func CollectRows(seq iter.Seq[[]types.RawValue]) [][]types.RawValue {
	rows := [][]types.RawValue{}
	for row := range seq {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rowKey(rows[i]) < rowKey(rows[j])
	})
	return rows
}

// CountRows returns the number of occurrences of each row.
func CountRows(rows [][]types.RawValue) map[string]int {
	counts := map[string]int{}
	for _, row := range rows {
		counts[rowKey(row)]++
	}
	return counts
}

func rowKey(row []types.RawValue) string {
	key := make([]byte, 0, len(row)*types.ValueLength)
	for _, v := range row {
		key = append(key, v[:]...)
	}
	return string(key)
}

// Context returns context with logger configured.
func Context(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), logger.New(logger.DefaultConfig)))
	t.Cleanup(cancel)
	return ctx
}
