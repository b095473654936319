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

// LevelOrder returns keys breadth-first, left to right within each level.
func (tree *Tree[K, V]) LevelOrder() []K {
	result := make([]K, 0, tree.size)
	if tree.root == nil {
		return result
	}

	queue := []*Node[K, V]{tree.root}
	for len(queue) > 0 {
		node := queue[0]
		queue[0] = nil
		queue = queue[1:]

		result = append(result, node.key)
		if node.left != nil {
			queue = append(queue, node.left)
		}
		if node.right != nil {
			queue = append(queue, node.right)
		}
	}
	return result
}

func (tree *Tree[K, V]) PreOrder() []K {
	result := make([]K, 0, tree.size)
	preOrder(tree.root, &result)
	return result
}

func preOrder[K, V any](node *Node[K, V], result *[]K) {
	if node == nil {
		return
	}
	*result = append(*result, node.key)
	preOrder(node.left, result)
	preOrder(node.right, result)
}

// InOrder returns keys in ascending order.
func (tree *Tree[K, V]) InOrder() []K {
	result := make([]K, 0, tree.size)
	inOrder(tree.root, &result)
	return result
}

func inOrder[K, V any](node *Node[K, V], result *[]K) {
	if node == nil {
		return
	}
	inOrder(node.left, result)
	*result = append(*result, node.key)
	inOrder(node.right, result)
}

func (tree *Tree[K, V]) PostOrder() []K {
	result := make([]K, 0, tree.size)
	postOrder(tree.root, &result)
	return result
}

func postOrder[K, V any](node *Node[K, V], result *[]K) {
	if node == nil {
		return
	}
	postOrder(node.left, result)
	postOrder(node.right, result)
	*result = append(*result, node.key)
}

// Ascend calls fn for every node in ascending key order until fn returns false.
func (tree *Tree[K, V]) Ascend(fn func(node *Node[K, V]) bool) {
	ascend(tree.root, fn)
}

func ascend[K, V any](node *Node[K, V], fn func(*Node[K, V]) bool) bool {
	if node == nil {
		return true
	}
	return ascend(node.left, fn) && fn(node) && ascend(node.right, fn)
}

// AscendFrom calls fn in ascending order for every node with key >= low
// until fn returns false.
func (tree *Tree[K, V]) AscendFrom(low K, fn func(node *Node[K, V]) bool) {
	tree.ascendFrom(tree.root, low, fn)
}

func (tree *Tree[K, V]) ascendFrom(node *Node[K, V], low K, fn func(*Node[K, V]) bool) bool {
	if node == nil {
		return true
	}
	if tree.compare(node.key, low) < 0 {
		return tree.ascendFrom(node.right, low, fn)
	}
	return tree.ascendFrom(node.left, low, fn) && fn(node) && ascend(node.right, fn)
}

// Range calls fn, in ascending order, for every node whose key satisfies
// low <= key < high, stopping early when fn returns false. Subtrees that
// cannot hold a key in range are skipped.
func (tree *Tree[K, V]) Range(low, high K, fn func(node *Node[K, V]) bool) {
	tree.rangeSearch(tree.root, low, high, fn)
}

func (tree *Tree[K, V]) rangeSearch(node *Node[K, V], low, high K, fn func(*Node[K, V]) bool) bool {
	if node == nil {
		return true
	}

	aboveLow := tree.compare(node.key, low) >= 0
	belowHigh := tree.compare(node.key, high) < 0

	// If node.key can still be >= low, the left subtree may hold matches
	if aboveLow && !tree.rangeSearch(node.left, low, high, fn) {
		return false
	}
	if aboveLow && belowHigh && !fn(node) {
		return false
	}
	if belowHigh {
		return tree.rangeSearch(node.right, low, high, fn)
	}
	return true
}
