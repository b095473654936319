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

package index

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPutGetDelete(t *testing.T) {
	ix := New[int](DefaultConfig())

	ix.Put("kubectl get pods", 3)
	ix.Put("git status", 10)
	ix.Put("ls -la", 7)

	v, ok := ix.Get("git status")
	require.True(t, ok)
	require.Equal(t, 10, v)

	ix.Put("git status", 11)
	v, ok = ix.Get("git status")
	require.True(t, ok)
	require.Equal(t, 11, v, "Put must invalidate the cached value")
	require.Equal(t, 3, ix.Len())

	require.True(t, ix.Delete("ls -la"))
	require.False(t, ix.Delete("ls -la"))
	require.False(t, ix.Has("ls -la"))
	require.Equal(t, []string{"git status", "kubectl get pods"}, ix.Keys())
	require.NoError(t, ix.Validate())
}

func TestUpdate(t *testing.T) {
	ix := New[int](DefaultConfig())
	ix.Put("a", 1)

	v, ok := ix.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	require.Equal(t, 2, ix.Update("a", func(old int, present bool) int {
		require.True(t, present)
		return old + 1
	}))
	v, _ = ix.Get("a")
	require.Equal(t, 2, v, "Update must invalidate the cached value")

	require.Equal(t, 7, ix.Update("b", func(old int, present bool) int {
		require.False(t, present)
		require.Zero(t, old)
		return 7
	}))
	require.Equal(t, 2, ix.Stats().CacheMisses)
	require.Equal(t, 0, ix.Stats().CacheHits)

	require.True(t, ix.Has("b"))
	require.Equal(t, []string{"a", "b"}, ix.Keys())
}

func TestMissesAreRejectedByFilter(t *testing.T) {
	ix := New[string](DefaultConfig())
	ix.Put("present", "yes")

	_, ok := ix.Get("absent")
	require.False(t, ok)

	stats := ix.Stats()
	require.Equal(t, 1, stats.FilterRejects)
	require.Equal(t, 0, stats.CacheMisses)
}

func TestCacheServesRepeatedReads(t *testing.T) {
	ix := New[int](DefaultConfig())
	ix.Put("a", 1)

	for i := 0; i < 3; i++ {
		v, ok := ix.Get("a")
		require.True(t, ok)
		require.Equal(t, 1, v)
	}

	stats := ix.Stats()
	require.Equal(t, 1, stats.CacheMisses)
	require.Equal(t, 2, stats.CacheHits)
}

func TestCacheExpiry(t *testing.T) {
	config := DefaultConfig()
	config.CacheTTL = 50 * time.Millisecond
	config.CacheCleanup = 10 * time.Millisecond
	ix := New[int](config)
	ix.Put("a", 1)

	_, _ = ix.Get("a")
	time.Sleep(100 * time.Millisecond)
	_, _ = ix.Get("a")

	require.Equal(t, 2, ix.Stats().CacheMisses)
}

func TestFilterRebuildAfterDeletes(t *testing.T) {
	config := DefaultConfig()
	config.RebuildAfter = 4
	ix := New[int](config)

	for i := 0; i < 10; i++ {
		ix.Put(fmt.Sprintf("key-%02d", i), i)
	}
	for i := 0; i < 4; i++ {
		require.True(t, ix.Delete(fmt.Sprintf("key-%02d", i)))
	}

	stats := ix.Stats()
	require.Equal(t, 1, stats.Rebuilds)
	require.Equal(t, 0, stats.StaleDeletes)
	require.Equal(t, 6, stats.Keys)

	for i := 4; i < 10; i++ {
		v, ok := ix.Get(fmt.Sprintf("key-%02d", i))
		require.True(t, ok, "rebuilt filter must keep live keys")
		require.Equal(t, i, v)
	}
}

func TestPrefixAndRange(t *testing.T) {
	ix := New[int](Config{})
	for i, key := range []string{"go test", "git log", "gofmt", "git", "ls", "git status"} {
		ix.Put(key, i)
	}

	var keys []string
	for _, e := range ix.Prefix("git") {
		keys = append(keys, e.Key)
	}
	require.Equal(t, []string{"git", "git log", "git status"}, keys)

	entries := ix.Range("go", "l")
	require.Equal(t, []Entry[int]{{Key: "go test", Value: 0}, {Key: "gofmt", Value: 2}}, entries)

	require.Empty(t, ix.Prefix("docker"))
}

func TestPrefixMatchesKeysPastBasicPlane(t *testing.T) {
	ix := New[int](Config{})
	for i, key := range []string{"gj", "git\U0001F600", "git", "git\uffff\uffffx", "gis"} {
		ix.Put(key, i)
	}

	var keys []string
	for _, e := range ix.Prefix("git") {
		keys = append(keys, e.Key)
	}
	require.Equal(t, []string{"git", "git\uffff\uffffx", "git\U0001F600"}, keys)

	var all []string
	for _, e := range ix.Prefix("") {
		all = append(all, e.Key)
	}
	require.Equal(t, ix.Keys(), all)

	require.Len(t, ix.Prefix("\xff\xff"), 0)
}

func TestCompact(t *testing.T) {
	ix := New[int](DefaultConfig())
	ix.Put("a", 1)
	ix.Delete("a")
	require.Equal(t, 1, ix.Stats().StaleDeletes)

	ix.Compact()
	stats := ix.Stats()
	require.Equal(t, 0, stats.StaleDeletes)
	require.Equal(t, 1, stats.Rebuilds)

	_, ok := ix.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, ix.Stats().FilterRejects)
}
