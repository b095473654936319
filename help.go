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

package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **avltree %s**

Explore a self-balancing (AVL) binary search tree from the terminal. Every insert
and remove rebalances the tree on the way back to the root, so the height stays
within about 1.44 * log2(n).

Built with Go %s

# 1. Commands
* **build** insert keys, optionally remove some, print the tree and its traversals
* **shell** line based REPL, one command per line
* **explore** interactive terminal UI over the same commands
* **dot** export the tree as Graphviz DOT
* **index** count words of a file in the ordered index and list prefix matches
* **bench** randomized invariant checks over several insertion workloads
* **config** show settings from ~/.avltree.yaml

# 2. Shell commands
* insert, remove, search with one or more keys
* levelorder, preorder, inorder, postorder, traversals
* print, dot, stats, validate, clear, copy, help, quit

# 3. Keys
Keys are integers by default. Set tree.key_type to string in ~/.avltree.yaml or
pass --keys string. Quote string keys that contain spaces.

# License
Licensed under the Apache License, Version 2.0

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
