// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// RefNode is the storage cell behind a RefStore node. Its address is the
// node identity, so no synthetic ids are minted.
type RefNode[K comparable, V any] struct {
	value    V
	hasValue bool
	children []K
	live     bool
}

// RefStore is a reference-based Store: each RefNode keeps its own value and
// child list and a single map keyed by (parent reference, key) supplies the
// child. The nil reference is the root. Not safe for concurrent use.
type RefStore[K comparable, V any] struct {
	edges map[Relation[*RefNode[K, V], K]]*RefNode[K, V]
	live  int
}

var (
	_ Store[*RefNode[string, any], string, any] = (*RefStore[string, any])(nil)
	_ RootKeyer[string]                         = (*RefStore[string, any])(nil)
	_ Counter                                   = (*RefStore[string, any])(nil)
)

func NewRefStore[K comparable, V any]() *RefStore[K, V] {
	return &RefStore[K, V]{
		edges: make(map[Relation[*RefNode[K, V], K]]*RefNode[K, V]),
	}
}

func (s *RefStore[K, V]) snapshot(r *RefNode[K, V]) *Node[*RefNode[K, V], K, V] {
	return &Node[*RefNode[K, V], K, V]{
		id:       r,
		value:    r.value,
		hasValue: r.hasValue,
		children: r.children,
	}
}

func (s *RefStore[K, V]) Allocate() *Node[*RefNode[K, V], K, V] {
	r := &RefNode[K, V]{live: true}
	s.live++
	return s.snapshot(r)
}

func (s *RefStore[K, V]) Node(id *RefNode[K, V]) (*Node[*RefNode[K, V], K, V], bool) {
	if id == nil || !id.live {
		return nil, false
	}
	return s.snapshot(id), true
}

func (s *RefStore[K, V]) Relation(parent *RefNode[K, V], key K) (*RefNode[K, V], bool) {
	child, ok := s.edges[Relation[*RefNode[K, V], K]{Parent: parent, Key: key}]
	return child, ok
}

// SetNode writes the node state back into the cell it was read from.
func (s *RefStore[K, V]) SetNode(n *Node[*RefNode[K, V], K, V]) {
	if n == nil || n.id == nil {
		return
	}
	r := n.id
	if !r.live {
		r.live = true
		s.live++
	}
	r.value = n.value
	r.hasValue = n.hasValue
	r.children = n.children
}

func (s *RefStore[K, V]) SetRelation(parent *RefNode[K, V], key K, child *RefNode[K, V]) {
	s.edges[Relation[*RefNode[K, V], K]{Parent: parent, Key: key}] = child
}

func (s *RefStore[K, V]) RemoveNode(id *RefNode[K, V]) {
	if id == nil || !id.live {
		return
	}
	var zero V
	id.value = zero
	id.hasValue = false
	id.children = nil
	id.live = false
	s.live--
}

func (s *RefStore[K, V]) RemoveRelation(parent *RefNode[K, V], key K) {
	delete(s.edges, Relation[*RefNode[K, V], K]{Parent: parent, Key: key})
}

func (s *RefStore[K, V]) RootKeys() []K {
	var keys []K
	for rel := range s.edges {
		if rel.Parent == nil {
			keys = append(keys, rel.Key)
		}
	}
	return keys
}

func (s *RefStore[K, V]) NodeCount() int {
	return s.live
}

func (s *RefStore[K, V]) RelationCount() int {
	return len(s.edges)
}
