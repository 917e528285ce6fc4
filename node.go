// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"golang.org/x/exp/slices"
)

// Node is a single prefix position in the trie. Nodes are copy-on-write:
// the With* methods return a modified copy and leave the receiver untouched,
// so a node handed out by a Store can be shared with concurrent readers.
//
// Presence of a value is tracked by an explicit flag. A stored zero value is
// a real value and is never confused with "no value".
type Node[I comparable, K comparable, V any] struct {
	id       I
	value    V
	hasValue bool
	children []K
}

// NewNode returns an empty node with the given identity. Store
// implementations use it from Allocate.
func NewNode[I comparable, K comparable, V any](id I) *Node[I, K, V] {
	return &Node[I, K, V]{id: id}
}

func (n *Node[I, K, V]) ID() I {
	return n.id
}

// Value returns the node value and whether one is present.
func (n *Node[I, K, V]) Value() (V, bool) {
	return n.value, n.hasValue
}

func (n *Node[I, K, V]) HasValue() bool {
	return n.hasValue
}

// Children returns a copy of the child key set. Order is unspecified.
func (n *Node[I, K, V]) Children() []K {
	return slices.Clone(n.children)
}

func (n *Node[I, K, V]) ChildCount() int {
	return len(n.children)
}

func (n *Node[I, K, V]) HasChild(k K) bool {
	return slices.Contains(n.children, k)
}

// isPrunable reports whether the node carries nothing and holds up nothing.
func (n *Node[I, K, V]) isPrunable() bool {
	return !n.hasValue && len(n.children) == 0
}

func (n *Node[I, K, V]) clone() *Node[I, K, V] {
	return &Node[I, K, V]{
		id:       n.id,
		value:    n.value,
		hasValue: n.hasValue,
		children: slices.Clone(n.children),
	}
}

// WithValue returns a copy of the node carrying v.
func (n *Node[I, K, V]) WithValue(v V) *Node[I, K, V] {
	nc := n.clone()
	nc.value = v
	nc.hasValue = true
	return nc
}

// WithoutValue returns a copy of the node with its value cleared, or the
// receiver if it had none.
func (n *Node[I, K, V]) WithoutValue() *Node[I, K, V] {
	if !n.hasValue {
		return n
	}
	nc := n.clone()
	var zero V
	nc.value = zero
	nc.hasValue = false
	return nc
}

// WithChild returns a copy of the node with k in its child set, or the
// receiver if k was already there.
func (n *Node[I, K, V]) WithChild(k K) *Node[I, K, V] {
	if slices.Contains(n.children, k) {
		return n
	}
	nc := n.clone()
	nc.children = append(nc.children, k)
	return nc
}

// WithoutChild returns a copy of the node with k dropped from its child set,
// or the receiver if k was not there.
func (n *Node[I, K, V]) WithoutChild(k K) *Node[I, K, V] {
	idx := slices.Index(n.children, k)
	if idx < 0 {
		return n
	}
	nc := n.clone()
	nc.children = slices.Delete(nc.children, idx, idx+1)
	if len(nc.children) == 0 {
		nc.children = nil
	}
	return nc
}
