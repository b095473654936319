// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package index is an ordered string-keyed store layered on the AVL tree.
// Misses are answered from a bloom filter before touching the tree, and
// recent hits are served from an expiring read cache.
package index

import (
	"strings"
	"sync"
	"time"

	"github.com/cybrota/avltree/avl"
	"github.com/ledgerwatch/log/v3"
	"github.com/patrickmn/go-cache"
	"github.com/willf/bloom"
)

type Config struct {
	BloomSize    uint          `yaml:"bloom_size"`
	BloomHashes  uint          `yaml:"bloom_hashes"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	CacheCleanup time.Duration `yaml:"cache_cleanup"`
	RebuildAfter int           `yaml:"rebuild_after"` // deletions tolerated before the filter is rebuilt
}

func DefaultConfig() Config {
	return Config{
		BloomSize:    1 << 16,
		BloomHashes:  5,
		CacheTTL:     30 * time.Minute,
		CacheCleanup: 5 * time.Minute,
		RebuildAfter: 1024,
	}
}

// Entry is a key/value pair returned by scans
type Entry[V any] struct {
	Key   string
	Value V
}

type Stats struct {
	Keys          int
	CacheHits     int
	CacheMisses   int
	FilterRejects int
	Rebuilds      int
	StaleDeletes  int
}

type Option func(*options)

type options struct {
	logger log.Logger
}

// WithLogger overrides the default package logger
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

type Index[V any] struct {
	mu     sync.Mutex
	tree   *avl.Tree[string, V]
	filter *bloom.BloomFilter
	cache  *cache.Cache
	config Config
	logger log.Logger
	stats  Stats
}

func New[V any](config Config, opts ...Option) *Index[V] {
	defaults := DefaultConfig()
	if config.BloomSize == 0 {
		config.BloomSize = defaults.BloomSize
	}
	if config.BloomHashes == 0 {
		config.BloomHashes = defaults.BloomHashes
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = defaults.CacheTTL
	}
	if config.CacheCleanup == 0 {
		config.CacheCleanup = defaults.CacheCleanup
	}
	if config.RebuildAfter <= 0 {
		config.RebuildAfter = defaults.RebuildAfter
	}

	o := options{logger: log.New("pkg", "index")}
	for _, opt := range opts {
		opt(&o)
	}

	return &Index[V]{
		tree:   avl.New[string, V](),
		filter: bloom.New(config.BloomSize, config.BloomHashes),
		cache:  cache.New(config.CacheTTL, config.CacheCleanup),
		config: config,
		logger: o.logger,
	}
}

// Put stores value under key, replacing any previous value.
func (ix *Index[V]) Put(key string, value V) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if node, ok := ix.tree.Search(key); ok {
		node.SetValue(value)
	} else {
		ix.tree.Insert(key, value)
		ix.filter.AddString(key)
	}
	ix.cache.Delete(key)
}

// Update stores fn(old, present) under key in one step. It reads the tree
// directly, leaving the read cache and its statistics untouched.
func (ix *Index[V]) Update(key string, fn func(old V, present bool) V) V {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var value V
	if node, ok := ix.tree.Search(key); ok {
		value = fn(node.Value, true)
		node.SetValue(value)
	} else {
		var zero V
		value = fn(zero, false)
		ix.tree.Insert(key, value)
		ix.filter.AddString(key)
	}
	ix.cache.Delete(key)
	return value
}

// Get returns the value stored under key.
func (ix *Index[V]) Get(key string) (V, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var zero V
	if !ix.filter.TestString(key) {
		ix.stats.FilterRejects++
		return zero, false
	}

	if cached, ok := ix.cache.Get(key); ok {
		ix.stats.CacheHits++
		return cached.(V), true
	}
	ix.stats.CacheMisses++

	value, ok := ix.tree.Get(key)
	if !ok {
		return zero, false
	}
	ix.cache.Set(key, value, ix.config.CacheTTL)
	return value, true
}

func (ix *Index[V]) Has(key string) bool {
	_, ok := ix.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (ix *Index[V]) Delete(key string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.cache.Delete(key)
	if !ix.tree.Remove(key) {
		return false
	}

	// The filter keeps answering "maybe" for deleted keys until rebuilt
	ix.stats.StaleDeletes++
	if ix.stats.StaleDeletes >= ix.config.RebuildAfter {
		ix.rebuildFilter()
	}
	return true
}

func (ix *Index[V]) rebuildFilter() {
	start := time.Now()
	filter := bloom.New(ix.config.BloomSize, ix.config.BloomHashes)
	ix.tree.Ascend(func(n *avl.Node[string, V]) bool {
		filter.AddString(n.Key())
		return true
	})
	ix.filter = filter
	ix.stats.Rebuilds++
	ix.logger.Debug("Rebuilt bloom filter", "keys", ix.tree.Len(), "stale", ix.stats.StaleDeletes, "elapsed", time.Since(start))
	ix.stats.StaleDeletes = 0
}

// Compact rebuilds the bloom filter now, dropping stale deletions.
func (ix *Index[V]) Compact() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.rebuildFilter()
}

func (ix *Index[V]) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.tree.Len()
}

// Keys returns every key in ascending order.
func (ix *Index[V]) Keys() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.tree.InOrder()
}

// Range returns the entries with low <= key < high in ascending order.
func (ix *Index[V]) Range(low, high string) []Entry[V] {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var results []Entry[V]
	ix.tree.Range(low, high, func(n *avl.Node[string, V]) bool {
		results = append(results, Entry[V]{Key: n.Key(), Value: n.Value})
		return true
	})
	return results
}

// Prefix returns the entries whose key starts with prefix, in ascending order.
func (ix *Index[V]) Prefix(prefix string) []Entry[V] {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	// Keys sharing a prefix are contiguous in byte order
	var results []Entry[V]
	ix.tree.AscendFrom(prefix, func(n *avl.Node[string, V]) bool {
		if !strings.HasPrefix(n.Key(), prefix) {
			return false
		}
		results = append(results, Entry[V]{Key: n.Key(), Value: n.Value})
		return true
	})
	return results
}

func (ix *Index[V]) Stats() Stats {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	s := ix.stats
	s.Keys = ix.tree.Len()
	return s
}

// Validate checks the invariants of the underlying tree.
func (ix *Index[V]) Validate() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.tree.Validate()
}
