// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

// resolve walks seq from the root without mutating anything and returns the
// terminal node. A missing edge, a relation pointing at a missing node, or an
// empty sequence all resolve to nothing.
func resolve[I comparable, K comparable, V any](s Store[I, K, V], seq []K) (*Node[I, K, V], bool) {
	if len(seq) == 0 {
		return nil, false
	}
	var parent I
	var n *Node[I, K, V]
	for _, k := range seq {
		id, ok := s.Relation(parent, k)
		if !ok {
			return nil, false
		}
		n, ok = s.Node(id)
		if !ok {
			return nil, false
		}
		parent = id
	}
	return n, true
}

// extend returns a fresh slice holding seq followed by k.
func extend[K any](seq []K, k K) []K {
	out := make([]K, len(seq)+1)
	copy(out, seq)
	out[len(seq)] = k
	return out
}
