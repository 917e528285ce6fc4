// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// Store owns node identity, node payloads and the parent/key -> child
// relation graph. The trie engine reads and writes exclusively through it.
//
// The zero value of I is the "none" identity and designates the implicit
// root. Allocate must never return a node with the zero identity, and must
// never reuse an identity still referenced by a live relation.
//
// Every method is atomic with respect to its own backing map only; nothing
// is atomic across nodes and relations. The engine orders its calls so that
// a relation never outlives the node it points to.
type Store[I comparable, K comparable, V any] interface {
	// Allocate creates and registers a valueless, childless node with a
	// fresh identity.
	Allocate() *Node[I, K, V]

	// Node returns the current node for id.
	Node(id I) (*Node[I, K, V], bool)

	// Relation returns the child identity registered for (parent, key).
	Relation(parent I, key K) (I, bool)

	// SetNode upserts n keyed by its identity.
	SetNode(n *Node[I, K, V])

	// SetRelation upserts the edge (parent, key) -> child.
	SetRelation(parent I, key K, child I)

	// RemoveNode deletes the node record for id.
	RemoveNode(id I)

	// RemoveRelation deletes the edge (parent, key).
	RemoveRelation(parent I, key K)
}

// Relation is the key of a parent/key -> child edge.
type Relation[I comparable, K comparable] struct {
	Parent I
	Key    K
}

// RootKeyer is implemented by stores that can list the keys of root-level
// relations. The root is never materialised as a node, so this is the only
// way to enumerate from the empty prefix.
type RootKeyer[K comparable] interface {
	RootKeys() []K
}

// Counter is implemented by stores that can report their size.
type Counter interface {
	NodeCount() int
	RelationCount() int
}
