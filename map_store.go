// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// MapStore is a single-threaded Store backed by two Go maps. Identities
// are minted from an incrementing counter starting at 1; 0 is the root.
type MapStore[K comparable, V any] struct {
	maxNodeId uint64
	nodes     map[uint64]*Node[uint64, K, V]
	relations map[Relation[uint64, K]]uint64
	rootKeys  map[K]struct{}
}

var (
	_ Store[uint64, string, any] = (*MapStore[string, any])(nil)
	_ RootKeyer[string]          = (*MapStore[string, any])(nil)
	_ Counter                    = (*MapStore[string, any])(nil)
)

func NewMapStore[K comparable, V any]() *MapStore[K, V] {
	return &MapStore[K, V]{
		nodes:     make(map[uint64]*Node[uint64, K, V]),
		relations: make(map[Relation[uint64, K]]uint64),
		rootKeys:  make(map[K]struct{}),
	}
}

func (s *MapStore[K, V]) Allocate() *Node[uint64, K, V] {
	s.maxNodeId++
	n := NewNode[uint64, K, V](s.maxNodeId)
	s.nodes[n.id] = n
	return n
}

func (s *MapStore[K, V]) Node(id uint64) (*Node[uint64, K, V], bool) {
	n, ok := s.nodes[id]
	return n, ok
}

func (s *MapStore[K, V]) Relation(parent uint64, key K) (uint64, bool) {
	child, ok := s.relations[Relation[uint64, K]{Parent: parent, Key: key}]
	return child, ok
}

func (s *MapStore[K, V]) SetNode(n *Node[uint64, K, V]) {
	if n == nil {
		return
	}
	s.nodes[n.id] = n
}

func (s *MapStore[K, V]) SetRelation(parent uint64, key K, child uint64) {
	s.relations[Relation[uint64, K]{Parent: parent, Key: key}] = child
	if parent == 0 {
		s.rootKeys[key] = struct{}{}
	}
}

func (s *MapStore[K, V]) RemoveNode(id uint64) {
	delete(s.nodes, id)
}

func (s *MapStore[K, V]) RemoveRelation(parent uint64, key K) {
	delete(s.relations, Relation[uint64, K]{Parent: parent, Key: key})
	if parent == 0 {
		delete(s.rootKeys, key)
	}
}

func (s *MapStore[K, V]) RootKeys() []K {
	keys := make([]K, 0, len(s.rootKeys))
	for k := range s.rootKeys {
		keys = append(keys, k)
	}
	return keys
}

func (s *MapStore[K, V]) NodeCount() int {
	return len(s.nodes)
}

func (s *MapStore[K, V]) RelationCount() int {
	return len(s.relations)
}
