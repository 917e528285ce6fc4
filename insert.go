// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// AddOrUpdate stores add under seq if it has no value yet, otherwise
// replaces the value with update(current). Missing path nodes are created.
func (t *Trie[I, K, V]) AddOrUpdate(seq []K, add V, update func(V) V) {
	t.AddOrUpdateFunc(seq, func() V { return add }, update)
}

// AddOrUpdateFunc is AddOrUpdate with the added value produced lazily.
func (t *Trie[I, K, V]) AddOrUpdateFunc(seq []K, add func() V, update func(V) V) {
	if len(seq) == 0 {
		return
	}
	n := t.path(seq)
	if v, ok := n.Value(); ok {
		n = n.WithValue(update(v))
	} else {
		n = n.WithValue(add())
	}
	t.store.SetNode(n)
}

// Set stores v under seq, overwriting any existing value.
func (t *Trie[I, K, V]) Set(seq []K, v V) {
	if len(seq) == 0 {
		return
	}
	t.store.SetNode(t.path(seq).WithValue(v))
}

// TryAdd stores v under seq only if seq has no value yet.
func (t *Trie[I, K, V]) TryAdd(seq []K, v V) bool {
	if len(seq) == 0 {
		return false
	}
	if n, ok := resolve(t.store, seq); ok && n.HasValue() {
		return false
	}
	t.store.SetNode(t.path(seq).WithValue(v))
	return true
}

// TryUpdate replaces the value under seq with update(current). It returns
// false without creating anything if seq has no value.
func (t *Trie[I, K, V]) TryUpdate(seq []K, update func(V) V) bool {
	n, ok := resolve(t.store, seq)
	if !ok {
		return false
	}
	v, ok := n.Value()
	if !ok {
		return false
	}
	t.store.SetNode(n.WithValue(update(v)))
	return true
}

// path walks seq from the root, allocating and linking a node for every
// prefix not yet present, and returns the terminal node.
func (t *Trie[I, K, V]) path(seq []K) *Node[I, K, V] {
	var parentID I
	var parent, n *Node[I, K, V]
	for depth, k := range seq {
		childID, ok := t.store.Relation(parentID, k)
		if ok {
			n, ok = t.store.Node(childID)
			if !ok {
				t.logger.Warn("relation points at missing node, replacing it", "depth", depth)
			}
		}
		if !ok {
			n = t.store.Allocate()
			t.store.SetRelation(parentID, k, n.ID())
			if parent != nil && !parent.HasChild(k) {
				parent = parent.WithChild(k)
				t.store.SetNode(parent)
			}
			if t.logger.IsTrace() {
				t.logger.Trace("allocated node", "depth", depth, "id", n.ID())
			}
		}
		parentID, parent = n.ID(), n
	}
	return n
}
