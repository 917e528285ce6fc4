// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapStore_IdentitiesSkipRoot(t *testing.T) {
	s := NewMapStore[rune, int]()
	seen := make(map[uint64]struct{})
	for i := 0; i < 100; i++ {
		n := s.Allocate()
		require.NotZero(t, n.ID())
		_, dup := seen[n.ID()]
		require.False(t, dup)
		seen[n.ID()] = struct{}{}
	}
	require.Equal(t, 100, s.NodeCount())
}

func TestMapStore_RootKeys(t *testing.T) {
	s := NewMapStore[rune, int]()
	a, b := s.Allocate(), s.Allocate()
	s.SetRelation(0, 'a', a.ID())
	s.SetRelation(0, 'b', b.ID())
	s.SetRelation(a.ID(), 'c', b.ID())
	require.ElementsMatch(t, []rune{'a', 'b'}, s.RootKeys())

	s.RemoveRelation(0, 'a')
	require.Equal(t, []rune{'b'}, s.RootKeys())
}

func TestRemove_ParentForgetsChild(t *testing.T) {
	s := NewMapStore[rune, int]()
	tr := New[uint64, rune, int](s)
	tr.Set(r("a"), 1)
	tr.Set(r("abcd"), 2)
	tr.Remove(r("abcd"))

	id, ok := s.Relation(0, 'a')
	require.True(t, ok)
	n, ok := s.Node(id)
	require.True(t, ok)
	require.Equal(t, 0, n.ChildCount())

	_, ok = s.Relation(id, 'b')
	require.False(t, ok)
}

func TestRefStore_ReferenceIdentity(t *testing.T) {
	s := NewRefStore[rune, int]()
	n := s.Allocate()
	require.NotNil(t, n.ID())

	s.SetNode(n.WithValue(3).WithChild('x'))
	got, ok := s.Node(n.ID())
	require.True(t, ok)
	v, _ := got.Value()
	require.Equal(t, 3, v)
	require.True(t, got.HasChild('x'))

	s.RemoveNode(n.ID())
	_, ok = s.Node(n.ID())
	require.False(t, ok)
	_, ok = s.Node(nil)
	require.False(t, ok)
	require.Equal(t, 0, s.NodeCount())
}

func TestConcurrentStore_ShardCount(t *testing.T) {
	require.Len(t, NewConcurrentStore[rune, int]().nodes, DefaultShardCount)
	require.Len(t, NewConcurrentStore[rune, int](WithShardCount(3)).nodes, DefaultShardCount)
	require.Len(t, NewConcurrentStore[rune, int](WithShardCount(64)).relations, 64)
}

func TestConcurrentStore_ParallelAllocate(t *testing.T) {
	s := NewConcurrentStore[rune, int]()

	const workers, perWorker = 8, 500
	ids := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				n := s.Allocate()
				s.SetRelation(0, rune(n.ID()), n.ID())
				ids <- n.ID()
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]struct{})
	for id := range ids {
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
	require.Equal(t, workers*perWorker, s.NodeCount())
	require.Equal(t, workers*perWorker, s.RelationCount())
	require.Len(t, s.RootKeys(), workers*perWorker)
}

func TestConcurrentStore_SerialisedWritersParallelReaders(t *testing.T) {
	tr := NewConcurrent[rune, int]()
	keys := generateDataset(200)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(keys); i += 4 {
				mu.Lock()
				tr.Set(r(keys[i]), i)
				mu.Unlock()
			}
		}(w)
	}
	for rd := 0; rd < 4; rd++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range keys {
				tr.Contains(r(k), true)
				tr.Get(r(k))
			}
		}()
	}
	wg.Wait()

	for i, k := range keys {
		v, ok := tr.Get(r(k))
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestCachedStore_InvalidSize(t *testing.T) {
	_, err := NewCachedStore[uint64, rune, int](NewMapStore[rune, int](), 0)
	require.Error(t, err)

	require.Panics(t, func() {
		_, _ = NewCachedStore[uint64, rune, int](nil, 8)
	})
}

func TestCachedStore_WritesThrough(t *testing.T) {
	inner := NewMapStore[rune, int]()
	s, err := NewCachedStore[uint64, rune, int](inner, 2)
	require.NoError(t, err)
	tr := New[uint64, rune, int](s)

	tr.Set(r("abc"), 1)
	tr.Set(r("abd"), 2)
	require.Equal(t, 4, inner.NodeCount())

	s.Purge()
	v, ok := tr.Get(r("abd"))
	require.True(t, ok)
	require.Equal(t, 2, v)

	tr.Remove(r("abc"))
	_, ok = inner.Relation(0, 'a')
	require.True(t, ok)
	require.Equal(t, 3, s.NodeCount())

	tr.Remove(r("abd"))
	_, ok = s.Relation(0, 'a')
	require.False(t, ok)
	require.Equal(t, 0, inner.NodeCount())
}

// bareStore hides the optional capabilities of the store it wraps.
type bareStore struct {
	Store[uint64, rune, int]
}

func TestCachedStore_WithoutCapabilities(t *testing.T) {
	s, err := NewCachedStore[uint64, rune, int](bareStore{NewMapStore[rune, int]()}, 4)
	require.NoError(t, err)
	require.Equal(t, -1, s.NodeCount())
	require.Equal(t, -1, s.RelationCount())
	require.Nil(t, s.RootKeys())

	tr := New[uint64, rune, int](bareStore{NewMapStore[rune, int]()})
	tr.Set(r("a"), 1)
	require.False(t, tr.Contains(nil, true))
	_, _, ok := tr.Enumerate(nil).Next()
	require.False(t, ok)
	require.True(t, tr.Contains(r("a"), false))
}
