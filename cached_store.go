// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore fronts another Store with LRU caches for node and relation
// lookups. Writes go through to the inner store and then update the
// caches, so every write to the inner store must go through the
// CachedStore or the caches go stale.
type CachedStore[I comparable, K comparable, V any] struct {
	inner     Store[I, K, V]
	nodes     *lru.Cache[I, *Node[I, K, V]]
	relations *lru.Cache[Relation[I, K], I]
}

var (
	_ Store[uint64, string, any] = (*CachedStore[uint64, string, any])(nil)
	_ RootKeyer[string]          = (*CachedStore[uint64, string, any])(nil)
	_ Counter                    = (*CachedStore[uint64, string, any])(nil)
)

// NewCachedStore wraps inner with caches holding up to size nodes and size
// relations each.
func NewCachedStore[I comparable, K comparable, V any](inner Store[I, K, V], size int) (*CachedStore[I, K, V], error) {
	if inner == nil {
		panic("trie: nil inner store")
	}
	nodes, err := lru.New[I, *Node[I, K, V]](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create node cache: %w", err)
	}
	relations, err := lru.New[Relation[I, K], I](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create relation cache: %w", err)
	}
	return &CachedStore[I, K, V]{
		inner:     inner,
		nodes:     nodes,
		relations: relations,
	}, nil
}

func (s *CachedStore[I, K, V]) Allocate() *Node[I, K, V] {
	n := s.inner.Allocate()
	s.nodes.Add(n.id, n)
	return n
}

func (s *CachedStore[I, K, V]) Node(id I) (*Node[I, K, V], bool) {
	if n, ok := s.nodes.Get(id); ok {
		return n, true
	}
	n, ok := s.inner.Node(id)
	if ok {
		s.nodes.Add(id, n)
	}
	return n, ok
}

func (s *CachedStore[I, K, V]) Relation(parent I, key K) (I, bool) {
	rel := Relation[I, K]{Parent: parent, Key: key}
	if child, ok := s.relations.Get(rel); ok {
		return child, true
	}
	child, ok := s.inner.Relation(parent, key)
	if ok {
		s.relations.Add(rel, child)
	}
	return child, ok
}

func (s *CachedStore[I, K, V]) SetNode(n *Node[I, K, V]) {
	if n == nil {
		return
	}
	s.inner.SetNode(n)
	s.nodes.Add(n.id, n)
}

func (s *CachedStore[I, K, V]) SetRelation(parent I, key K, child I) {
	s.inner.SetRelation(parent, key, child)
	s.relations.Add(Relation[I, K]{Parent: parent, Key: key}, child)
}

func (s *CachedStore[I, K, V]) RemoveNode(id I) {
	s.inner.RemoveNode(id)
	s.nodes.Remove(id)
}

func (s *CachedStore[I, K, V]) RemoveRelation(parent I, key K) {
	s.inner.RemoveRelation(parent, key)
	s.relations.Remove(Relation[I, K]{Parent: parent, Key: key})
}

// RootKeys forwards to the inner store, or returns nil if it cannot list
// root keys.
func (s *CachedStore[I, K, V]) RootKeys() []K {
	if rk, ok := s.inner.(RootKeyer[K]); ok {
		return rk.RootKeys()
	}
	return nil
}

// NodeCount and RelationCount report the inner store's size, or -1 if the
// inner store does not implement Counter.
func (s *CachedStore[I, K, V]) NodeCount() int {
	if c, ok := s.inner.(Counter); ok {
		return c.NodeCount()
	}
	return -1
}

func (s *CachedStore[I, K, V]) RelationCount() int {
	if c, ok := s.inner.(Counter); ok {
		return c.RelationCount()
	}
	return -1
}

// Purge drops every cached entry without touching the inner store.
func (s *CachedStore[I, K, V]) Purge() {
	s.nodes.Purge()
	s.relations.Purge()
}
