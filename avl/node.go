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

package avl

// Node is a single entry of the tree. Key and structure are owned by the tree;
// callers holding a handle from Search may read the key and update Value.
type Node[K, V any] struct {
	key    K
	Value  V
	height int // -1 is reserved for an absent child
	left   *Node[K, V]
	right  *Node[K, V]
}

func newLeaf[K, V any](key K, value V) *Node[K, V] {
	return &Node[K, V]{key: key, Value: value, height: 0}
}

func (n *Node[K, V]) Key() K { return n.key }

// SetValue replaces the payload stored with the key.
func (n *Node[K, V]) SetValue(v V) { n.Value = v }

// Height returns the cached height of the subtree rooted at n, or -1 for nil.
func (n *Node[K, V]) Height() int { return height(n) }

// BalanceFactor returns height(left) - height(right), or 0 for nil.
func (n *Node[K, V]) BalanceFactor() int { return balanceFactor(n) }

func (n *Node[K, V]) Left() *Node[K, V] {
	if n == nil {
		return nil
	}
	return n.left
}

func (n *Node[K, V]) Right() *Node[K, V] {
	if n == nil {
		return nil
	}
	return n.right
}

// height reads the cache, it never recomputes.
func height[K, V any](n *Node[K, V]) int {
	if n == nil {
		return -1
	}
	return n.height
}

func updateHeight[K, V any](n *Node[K, V]) {
	n.height = max(height(n.left), height(n.right)) + 1
}

func balanceFactor[K, V any](n *Node[K, V]) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}
