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

package render

import (
	"fmt"

	"github.com/cybrota/avltree/avl"
	"github.com/emicklei/dot"
)

// DOT exports the subtree rooted at root as a Graphviz digraph. Each node is
// labelled with its key, cached height and balance factor; edges carry L or R.
func DOT[K, V any](root *avl.Node[K, V]) string {
	g := dot.NewGraph(dot.Directed)
	g.Attr("ordering", "out")

	if root != nil {
		addNode(g, root, "n")
	}
	return g.String()
}

// addNode names nodes by their path from the root so that keys with
// arbitrary text never clash with DOT identifiers.
func addNode[K, V any](g *dot.Graph, node *avl.Node[K, V], path string) dot.Node {
	n := g.Node(path).
		Label(fmt.Sprintf("%v (h=%d, bf=%d)", node.Key(), node.Height(), node.BalanceFactor())).
		Box()

	if left := node.Left(); left != nil {
		g.Edge(n, addNode(g, left, path+"l"), "L")
	}
	if right := node.Right(); right != nil {
		g.Edge(n, addNode(g, right, path+"r"), "R")
	}
	return n
}
