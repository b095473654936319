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
	"strings"
	"testing"

	"github.com/cybrota/avltree/avl"
)

func TestText(t *testing.T) {
	tree := avl.New[int, struct{}]()
	for _, key := range []int{2, 1} {
		tree.Insert(key, struct{}{})
	}

	expected := "Root: 2\n" +
		"  L1: 1\n" +
		"    L2: <None>\n" +
		"    R2: <None>\n" +
		"  R1: <None>\n"

	if got := Text(tree.Root(), PlainStyles()); got != expected {
		t.Errorf("Text() =\n%s\nwant\n%s", got, expected)
	}
}

func TestTextEmptyTree(t *testing.T) {
	tree := avl.New[string, int]()
	if got := Text(tree.Root(), PlainStyles()); got != "Root: <None>\n" {
		t.Errorf("Text() on empty tree = %q", got)
	}
}

func TestTextWithMeta(t *testing.T) {
	tree := avl.New[int, struct{}]()
	tree.Insert(1, struct{}{})

	styles := PlainStyles()
	styles.ShowMeta = true
	if got := Text(tree.Root(), styles); !strings.HasPrefix(got, "Root: 1 (h=0, bf=0)\n") {
		t.Errorf("Text() with meta = %q", got)
	}
}

func TestDOT(t *testing.T) {
	tree := avl.New[int, struct{}]()
	for _, key := range []int{1, 2, 3} {
		tree.Insert(key, struct{}{})
	}

	out := DOT(tree.Root())
	for _, want := range []string{"digraph", "2 (h=1, bf=0)", "1 (h=0, bf=0)", "3 (h=0, bf=0)", "label=\"L\"", "label=\"R\""} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT() missing %q in:\n%s", want, out)
		}
	}
	if strings.Count(out, "->") != 2 {
		t.Errorf("DOT() expected 2 edges:\n%s", out)
	}
}
