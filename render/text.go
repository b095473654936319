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
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avltree/avl"
)

// Styles controls how Text decorates each line
type Styles struct {
	Prefix lipgloss.Style
	Key    lipgloss.Style
	Meta   lipgloss.Style
	Empty  lipgloss.Style
	// ShowMeta appends the cached height and balance factor to each key
	ShowMeta bool
	Colored  bool
}

func (s Styles) paint(style lipgloss.Style, text string) string {
	if !s.Colored {
		return text
	}
	return style.Render(text)
}

// PlainStyles renders without any ANSI sequences
func PlainStyles() Styles {
	return Styles{
		Prefix: lipgloss.NewStyle(),
		Key:    lipgloss.NewStyle(),
		Meta:   lipgloss.NewStyle(),
		Empty:  lipgloss.NewStyle(),
	}
}

// Text dumps the subtree rooted at root, one node per line, indented two
// spaces per level. Children are tagged L<level> and R<level>; absent
// children print as <None>.
func Text[K, V any](root *avl.Node[K, V], styles Styles) string {
	var sb strings.Builder
	writeNode(&sb, root, 0, "Root: ", styles)
	return sb.String()
}

func writeNode[K, V any](sb *strings.Builder, node *avl.Node[K, V], level int, prefix string, styles Styles) {
	sb.WriteString(strings.Repeat("  ", level))
	sb.WriteString(styles.paint(styles.Prefix, prefix))

	if node == nil {
		sb.WriteString(styles.paint(styles.Empty, "<None>"))
		sb.WriteByte('\n')
		return
	}

	sb.WriteString(styles.paint(styles.Key, fmt.Sprintf("%v", node.Key())))
	if styles.ShowMeta {
		sb.WriteString(" ")
		sb.WriteString(styles.paint(styles.Meta, fmt.Sprintf("(h=%d, bf=%d)", node.Height(), node.BalanceFactor())))
	}
	sb.WriteByte('\n')

	next := level + 1
	writeNode(sb, node.Left(), next, fmt.Sprintf("L%d: ", next), styles)
	writeNode(sb, node.Right(), next, fmt.Sprintf("R%d: ", next), styles)
}
