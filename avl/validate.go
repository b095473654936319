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

import (
	"errors"
	"fmt"
)

var (
	ErrOrder   = errors.New("avl: order invariant violated")
	ErrHeight  = errors.New("avl: cached height is stale")
	ErrBalance = errors.New("avl: balance invariant violated")
	ErrSize    = errors.New("avl: node count does not match size")
)

// Validate checks every node for key order, cached height and balance, and
// that the node count agrees with Len. It returns the first violation found.
func (tree *Tree[K, V]) Validate() error {
	count := 0
	if _, err := tree.validate(tree.root, nil, nil, &count); err != nil {
		return err
	}
	if count != tree.size {
		return fmt.Errorf("%w: counted %d, size %d", ErrSize, count, tree.size)
	}
	return nil
}

// validate returns the recomputed height of node. lo and hi are exclusive
// bounds inherited from ancestors, nil when unbounded.
func (tree *Tree[K, V]) validate(node *Node[K, V], lo, hi *K, count *int) (int, error) {
	if node == nil {
		return -1, nil
	}
	*count++

	if lo != nil && tree.compare(node.key, *lo) <= 0 {
		return 0, fmt.Errorf("%w: key %v not greater than %v", ErrOrder, node.key, *lo)
	}
	if hi != nil && tree.compare(node.key, *hi) >= 0 {
		return 0, fmt.Errorf("%w: key %v not less than %v", ErrOrder, node.key, *hi)
	}

	lh, err := tree.validate(node.left, lo, &node.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := tree.validate(node.right, &node.key, hi, count)
	if err != nil {
		return 0, err
	}

	h := max(lh, rh) + 1
	if node.height != h {
		return 0, fmt.Errorf("%w: key %v caches %d, actual %d", ErrHeight, node.key, node.height, h)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, fmt.Errorf("%w: key %v has balance factor %d", ErrBalance, node.key, bf)
	}
	return h, nil
}
