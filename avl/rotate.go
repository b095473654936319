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

// rotateRight lifts node.left into node's position and returns it.
func rotateRight[K, V any](node *Node[K, V]) *Node[K, V] {
	if node == nil || node.left == nil {
		panic("avl: right rotation requires a left child")
	}

	pivot := node.left
	node.left = pivot.right
	pivot.right = node

	// child first, the pivot's height depends on it
	updateHeight(node)
	updateHeight(pivot)

	return pivot
}

// rotateLeft lifts node.right into node's position and returns it.
func rotateLeft[K, V any](node *Node[K, V]) *Node[K, V] {
	if node == nil || node.right == nil {
		panic("avl: left rotation requires a right child")
	}

	pivot := node.right
	node.right = pivot.left
	pivot.left = node

	updateHeight(node)
	updateHeight(pivot)

	return pivot
}

// rebalance restores the balance invariant at node, assuming both subtrees are
// balanced and |balanceFactor(node)| <= 2. The caller must have refreshed
// node's height and must re-attach the returned subtree root.
func rebalance[K, V any](node *Node[K, V]) *Node[K, V] {
	bf := balanceFactor(node)

	// Left-heavy
	if bf > 1 {
		if balanceFactor(node.left) >= 0 {
			return rotateRight(node)
		}
		// Left-Right case
		node.left = rotateLeft(node.left)
		return rotateRight(node)
	}

	// Right-heavy
	if bf < -1 {
		if balanceFactor(node.right) <= 0 {
			return rotateLeft(node)
		}
		// Right-Left case
		node.right = rotateRight(node.right)
		return rotateLeft(node)
	}

	return node
}
