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

// Package avl implements an in-memory ordered index backed by a height-balanced
// (AVL) binary search tree. A Tree is not safe for concurrent use; callers must
// serialise Insert and Remove against each other and against readers.
package avl

import "cmp"

type Tree[K, V any] struct {
	root    *Node[K, V]
	size    int
	compare func(a, b K) int
}

// New returns an empty tree ordered by the natural ordering of K.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{compare: cmp.Compare[K]}
}

// NewFunc returns an empty tree ordered by compare, which must define a strict
// total order: negative when a < b, zero when equal, positive when a > b.
func NewFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	return &Tree[K, V]{compare: compare}
}

func (tree *Tree[K, V]) Root() *Node[K, V] { return tree.root }

func (tree *Tree[K, V]) Len() int { return tree.size }

// Height returns the height of the root, -1 for an empty tree.
func (tree *Tree[K, V]) Height() int { return height(tree.root) }

func (tree *Tree[K, V]) Clear() {
	tree.root = nil
	tree.size = 0
}

// Insert adds key with value and reports whether a new node was created.
// Inserting a key that is already present leaves the tree and the stored value
// untouched.
func (tree *Tree[K, V]) Insert(key K, value V) bool {
	before := tree.size
	tree.root = tree.insertRecursive(tree.root, key, value)
	return tree.size != before
}

func (tree *Tree[K, V]) insertRecursive(node *Node[K, V], key K, value V) *Node[K, V] {
	if node == nil {
		tree.size++
		return newLeaf(key, value)
	}

	switch c := tree.compare(key, node.key); {
	case c < 0:
		node.left = tree.insertRecursive(node.left, key, value)
	case c > 0:
		node.right = tree.insertRecursive(node.right, key, value)
	default:
		return node
	}

	updateHeight(node)
	return rebalance(node)
}

// Remove deletes key and reports whether it was present.
func (tree *Tree[K, V]) Remove(key K) bool {
	before := tree.size
	tree.root = tree.removeRecursive(tree.root, key)
	return tree.size != before
}

func (tree *Tree[K, V]) removeRecursive(node *Node[K, V], key K) *Node[K, V] {
	if node == nil {
		return nil // Key not found
	}

	switch c := tree.compare(key, node.key); {
	case c < 0:
		node.left = tree.removeRecursive(node.left, key)
	case c > 0:
		node.right = tree.removeRecursive(node.right, key)
	default:
		// No children or a single child: splice the node out.
		if node.left == nil {
			tree.size--
			return node.right
		}
		if node.right == nil {
			tree.size--
			return node.left
		}
		// Two children: promote the in-order successor's payload, then remove
		// the successor, which has no left child, from the right subtree.
		successor := findMin(node.right)
		node.key = successor.key
		node.Value = successor.Value
		node.right = tree.removeRecursive(node.right, successor.key)
	}

	updateHeight(node)
	return rebalance(node)
}

func findMin[K, V any](node *Node[K, V]) *Node[K, V] {
	for node.left != nil {
		node = node.left
	}
	return node
}

func findMax[K, V any](node *Node[K, V]) *Node[K, V] {
	for node.right != nil {
		node = node.right
	}
	return node
}

// Search walks down from the root and returns the node holding key.
func (tree *Tree[K, V]) Search(key K) (*Node[K, V], bool) {
	node := tree.root
	for node != nil {
		switch c := tree.compare(key, node.key); {
		case c < 0:
			node = node.left
		case c > 0:
			node = node.right
		default:
			return node, true
		}
	}
	return nil, false
}

// SearchRecursive is the recursive form of Search and returns the same node.
func (tree *Tree[K, V]) SearchRecursive(key K) (*Node[K, V], bool) {
	return tree.searchNode(tree.root, key)
}

func (tree *Tree[K, V]) searchNode(node *Node[K, V], key K) (*Node[K, V], bool) {
	if node == nil {
		return nil, false
	}

	c := tree.compare(key, node.key)
	if c < 0 {
		return tree.searchNode(node.left, key)
	} else if c > 0 {
		return tree.searchNode(node.right, key)
	}
	return node, true
}

func (tree *Tree[K, V]) Get(key K) (V, bool) {
	node, ok := tree.Search(key)
	if !ok {
		var zero V
		return zero, false
	}
	return node.Value, true
}

func (tree *Tree[K, V]) Contains(key K) bool {
	_, ok := tree.Search(key)
	return ok
}

// Min returns the smallest key and its value.
func (tree *Tree[K, V]) Min() (K, V, bool) {
	if tree.root == nil {
		var k K
		var v V
		return k, v, false
	}
	node := findMin(tree.root)
	return node.key, node.Value, true
}

// Max returns the largest key and its value.
func (tree *Tree[K, V]) Max() (K, V, bool) {
	if tree.root == nil {
		var k K
		var v V
		return k, v, false
	}
	node := findMax(tree.root)
	return node.key, node.Value, true
}
