// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"iter"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/slices"
)

// Trie maps sequences of keys to values. All state lives in the Store; the
// Trie only walks and mutates it. Each method is a single walk-then-mutate
// pass and none of them lock: concurrent writers must be serialised by the
// caller even when the store itself is safe for concurrent use.
type Trie[I comparable, K comparable, V any] struct {
	store  Store[I, K, V]
	logger hclog.Logger
}

// WalkFn is used when walking the trie. Takes a
// key sequence and value, returning if iteration should
// be terminated.
type WalkFn[K comparable, V any] func(seq []K, v V) bool

// New returns a Trie on top of store. It panics if store is nil.
func New[I comparable, K comparable, V any](store Store[I, K, V], opts ...Option) *Trie[I, K, V] {
	if store == nil {
		panic("trie: nil store")
	}
	cfg := newConfig(opts)
	return &Trie[I, K, V]{
		store:  store,
		logger: cfg.logger.Named("trie"),
	}
}

// NewMap returns a Trie backed by a fresh MapStore.
func NewMap[K comparable, V any](opts ...Option) *Trie[uint64, K, V] {
	return New[uint64, K, V](NewMapStore[K, V](), opts...)
}

// NewConcurrent returns a Trie backed by a fresh ConcurrentStore.
func NewConcurrent[K comparable, V any](opts ...Option) *Trie[uint64, K, V] {
	return New[uint64, K, V](NewConcurrentStore[K, V](), opts...)
}

// NewRef returns a Trie backed by a fresh RefStore.
func NewRef[K comparable, V any](opts ...Option) *Trie[*RefNode[K, V], K, V] {
	return New[*RefNode[K, V], K, V](NewRefStore[K, V](), opts...)
}

// Store returns the backing store.
func (t *Trie[I, K, V]) Store() Store[I, K, V] {
	return t.store
}

// Get returns the value stored for seq and whether one is present.
func (t *Trie[I, K, V]) Get(seq []K) (V, bool) {
	n, ok := resolve(t.store, seq)
	if !ok {
		var zero V
		return zero, false
	}
	return n.Value()
}

// Contains reports whether seq carries a value. With includeDescendants it
// also reports true when seq is a prefix of some longer stored sequence.
func (t *Trie[I, K, V]) Contains(seq []K, includeDescendants bool) bool {
	if len(seq) == 0 {
		if !includeDescendants {
			return false
		}
		rk, ok := t.store.(RootKeyer[K])
		return ok && len(rk.RootKeys()) > 0
	}
	n, ok := resolve(t.store, seq)
	if !ok {
		return false
	}
	return n.HasValue() || (includeDescendants && n.ChildCount() > 0)
}

// LongestPrefix returns the longest prefix of seq, seq itself included, that
// carries a value.
func (t *Trie[I, K, V]) LongestPrefix(seq []K) ([]K, V, bool) {
	var zero V
	var parent I
	last := -1
	var lastVal V
	for depth, k := range seq {
		id, ok := t.store.Relation(parent, k)
		if !ok {
			break
		}
		n, ok := t.store.Node(id)
		if !ok {
			break
		}
		if v, ok := n.Value(); ok {
			last = depth
			lastVal = v
		}
		parent = id
	}
	if last < 0 {
		return nil, zero, false
	}
	return slices.Clone(seq[:last+1]), lastVal, true
}

// Enumerate returns a breadth-first iterator over every valued sequence
// under prefix, prefix included. An empty prefix walks the whole trie when
// the store implements RootKeyer.
func (t *Trie[I, K, V]) Enumerate(prefix []K) *Iterator[I, K, V] {
	return &Iterator[I, K, V]{
		store:  t.store,
		prefix: slices.Clone(prefix),
	}
}

// All is the range-over-func form of Enumerate.
func (t *Trie[I, K, V]) All(prefix []K) iter.Seq2[[]K, V] {
	return func(yield func([]K, V) bool) {
		it := t.Enumerate(prefix)
		for {
			seq, v, ok := it.Next()
			if !ok || !yield(seq, v) {
				return
			}
		}
	}
}

// Walk is used to walk the subtree under prefix
func (t *Trie[I, K, V]) Walk(prefix []K, fn WalkFn[K, V]) {
	it := t.Enumerate(prefix)
	for {
		seq, v, ok := it.Next()
		if !ok || fn(seq, v) {
			return
		}
	}
}
