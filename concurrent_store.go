// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package trie

import (
	"sync"
	"sync/atomic"
)

// DefaultShardCount is the number of shards used by ConcurrentStore unless
// WithShardCount says otherwise.
const DefaultShardCount = 16

// ConcurrentStore is a Store whose individual operations are safe for
// concurrent use. Nodes and relations live in sharded maps guarded by
// per-shard RWMutexes; identities come from an atomic counter.
//
// Only single calls are atomic. Compound trie operations running on top of
// a ConcurrentStore still need external serialisation when writers overlap.
type ConcurrentStore[K comparable, V any] struct {
	maxNodeId atomic.Uint64
	nodes     []*nodeShard[K, V]
	relations []*relationShard[K]
	shardMask uint64
}

type nodeShard[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[uint64]*Node[uint64, K, V]
}

type relationShard[K comparable] struct {
	mu    sync.RWMutex
	items map[Relation[uint64, K]]uint64
}

type concurrentStoreConfig struct {
	shardCount int
}

// ConcurrentStoreOption configures a ConcurrentStore.
type ConcurrentStoreOption func(*concurrentStoreConfig)

// WithShardCount sets the shard count. It must be a power of two; any other
// value falls back to DefaultShardCount.
func WithShardCount(n int) ConcurrentStoreOption {
	return func(c *concurrentStoreConfig) {
		c.shardCount = n
	}
}

var (
	_ Store[uint64, string, any] = (*ConcurrentStore[string, any])(nil)
	_ RootKeyer[string]          = (*ConcurrentStore[string, any])(nil)
	_ Counter                    = (*ConcurrentStore[string, any])(nil)
)

func NewConcurrentStore[K comparable, V any](opts ...ConcurrentStoreOption) *ConcurrentStore[K, V] {
	cfg := concurrentStoreConfig{shardCount: DefaultShardCount}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.shardCount <= 0 || cfg.shardCount&(cfg.shardCount-1) != 0 {
		cfg.shardCount = DefaultShardCount
	}

	s := &ConcurrentStore[K, V]{
		nodes:     make([]*nodeShard[K, V], cfg.shardCount),
		relations: make([]*relationShard[K], cfg.shardCount),
		shardMask: uint64(cfg.shardCount - 1),
	}
	for i := 0; i < cfg.shardCount; i++ {
		s.nodes[i] = &nodeShard[K, V]{items: make(map[uint64]*Node[uint64, K, V])}
		s.relations[i] = &relationShard[K]{items: make(map[Relation[uint64, K]]uint64)}
	}
	return s
}

// shardIndex spreads sequential ids across shards (Fibonacci hashing).
func (s *ConcurrentStore[K, V]) shardIndex(id uint64) uint64 {
	return ((id * 0x9E3779B97F4A7C15) >> 32) & s.shardMask
}

func (s *ConcurrentStore[K, V]) shardForNode(id uint64) *nodeShard[K, V] {
	return s.nodes[s.shardIndex(id)]
}

// Relations shard by parent so that all edges out of one node share a lock.
func (s *ConcurrentStore[K, V]) shardForRelation(parent uint64) *relationShard[K] {
	return s.relations[s.shardIndex(parent)]
}

func (s *ConcurrentStore[K, V]) Allocate() *Node[uint64, K, V] {
	n := NewNode[uint64, K, V](s.maxNodeId.Add(1))
	shard := s.shardForNode(n.id)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[n.id] = n
	return n
}

func (s *ConcurrentStore[K, V]) Node(id uint64) (*Node[uint64, K, V], bool) {
	shard := s.shardForNode(id)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	n, ok := shard.items[id]
	return n, ok
}

func (s *ConcurrentStore[K, V]) Relation(parent uint64, key K) (uint64, bool) {
	shard := s.shardForRelation(parent)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	child, ok := shard.items[Relation[uint64, K]{Parent: parent, Key: key}]
	return child, ok
}

func (s *ConcurrentStore[K, V]) SetNode(n *Node[uint64, K, V]) {
	if n == nil {
		return
	}
	shard := s.shardForNode(n.id)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[n.id] = n
}

func (s *ConcurrentStore[K, V]) SetRelation(parent uint64, key K, child uint64) {
	shard := s.shardForRelation(parent)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[Relation[uint64, K]{Parent: parent, Key: key}] = child
}

func (s *ConcurrentStore[K, V]) RemoveNode(id uint64) {
	shard := s.shardForNode(id)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.items, id)
}

func (s *ConcurrentStore[K, V]) RemoveRelation(parent uint64, key K) {
	shard := s.shardForRelation(parent)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.items, Relation[uint64, K]{Parent: parent, Key: key})
}

func (s *ConcurrentStore[K, V]) RootKeys() []K {
	shard := s.shardForRelation(0)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	var keys []K
	for rel := range shard.items {
		if rel.Parent == 0 {
			keys = append(keys, rel.Key)
		}
	}
	return keys
}

func (s *ConcurrentStore[K, V]) NodeCount() int {
	count := 0
	for _, shard := range s.nodes {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

func (s *ConcurrentStore[K, V]) RelationCount() int {
	count := 0
	for _, shard := range s.relations {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}
