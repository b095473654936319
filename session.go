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
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cybrota/avltree/avl"
	"github.com/cybrota/avltree/render"
)

var (
	errQuit       = errors.New("quit")
	errNoArgs     = errors.New("command needs at least one key")
	errNoOutput   = errors.New("nothing to copy yet")
	copyClipboard = clipboard.WriteAll
)

// Session drives a single tree from textual commands. The shell, the TUI and
// the build command all share it.
type Session interface {
	Exec(args []string) (string, error)
	Render() string
	Len() int
}

type session[K cmp.Ordered] struct {
	tree   *avl.Tree[K, struct{}]
	parse  func(string) (K, error)
	styles render.Styles
	last   string
}

func newSession(keyType string, styles render.Styles) (Session, error) {
	switch keyType {
	case "", "int":
		return &session[int]{
			tree:   avl.New[int, struct{}](),
			parse:  strconv.Atoi,
			styles: styles,
		}, nil
	case "string":
		return &session[string]{
			tree:   avl.New[string, struct{}](),
			parse:  func(s string) (string, error) { return s, nil },
			styles: styles,
		}, nil
	}
	return nil, fmt.Errorf("unsupported key type %q", keyType)
}

const sessionHelp = `insert <key>...    insert keys, duplicates are ignored
remove <key>...    remove keys, absent keys are ignored
search <key>...    look keys up
levelorder | preorder | inorder | postorder
traversals         print all four traversals
print              show the tree
dot                print the tree as Graphviz DOT
stats              size, height, min and max
validate           check order, height and balance invariants
clear              drop every key
copy               copy the previous output to the clipboard
help | quit`

func (s *session[K]) Len() int { return s.tree.Len() }

func (s *session[K]) Render() string { return render.Text(s.tree.Root(), s.styles) }

func (s *session[K]) Exec(args []string) (string, error) {
	if len(args) == 0 {
		return "", nil
	}

	out, err := s.dispatch(strings.ToLower(args[0]), args[1:])
	if err == nil && out != "" {
		s.last = out
	}
	return out, err
}

func (s *session[K]) dispatch(name string, args []string) (string, error) {
	switch name {
	case "insert", "add", "i":
		return s.insert(args)
	case "remove", "delete", "rm", "r":
		return s.remove(args)
	case "search", "find", "s":
		return s.search(args)
	case "levelorder", "level":
		return joinKeys(s.tree.LevelOrder()), nil
	case "preorder", "pre":
		return joinKeys(s.tree.PreOrder()), nil
	case "inorder", "in":
		return joinKeys(s.tree.InOrder()), nil
	case "postorder", "post":
		return joinKeys(s.tree.PostOrder()), nil
	case "traversals", "all":
		return s.traversals(), nil
	case "print", "show", "p":
		return strings.TrimRight(s.Render(), "\n"), nil
	case "dot":
		return render.DOT(s.tree.Root()), nil
	case "stats":
		return s.stats(), nil
	case "validate":
		if err := s.tree.Validate(); err != nil {
			return "", err
		}
		return fmt.Sprintf("ok: %d keys, height %d", s.tree.Len(), s.tree.Height()), nil
	case "clear":
		s.tree.Clear()
		return "cleared", nil
	case "copy":
		if s.last == "" {
			return "", errNoOutput
		}
		if err := copyClipboard(s.last); err != nil {
			return "", fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return "", nil
	case "help", "?":
		return sessionHelp, nil
	case "quit", "exit", "q":
		return "", errQuit
	}
	return "", fmt.Errorf("unknown command %q, try help", name)
}

func (s *session[K]) parseKeys(args []string) ([]K, error) {
	if len(args) == 0 {
		return nil, errNoArgs
	}
	keys := make([]K, 0, len(args))
	for _, arg := range args {
		key, err := s.parse(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid key %q: %w", arg, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (s *session[K]) insert(args []string) (string, error) {
	keys, err := s.parseKeys(args)
	if err != nil {
		return "", err
	}
	inserted := 0
	for _, key := range keys {
		if s.tree.Insert(key, struct{}{}) {
			inserted++
		}
	}
	return fmt.Sprintf("inserted %d, ignored %d duplicate(s)", inserted, len(keys)-inserted), nil
}

func (s *session[K]) remove(args []string) (string, error) {
	keys, err := s.parseKeys(args)
	if err != nil {
		return "", err
	}
	removed := 0
	for _, key := range keys {
		if s.tree.Remove(key) {
			removed++
		}
	}
	return fmt.Sprintf("removed %d, %d absent", removed, len(keys)-removed), nil
}

func (s *session[K]) search(args []string) (string, error) {
	keys, err := s.parseKeys(args)
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		if node, ok := s.tree.Search(key); ok {
			lines = append(lines, fmt.Sprintf("%v: found (height %d, balance %d)", key, node.Height(), node.BalanceFactor()))
		} else {
			lines = append(lines, fmt.Sprintf("%v: not found", key))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (s *session[K]) traversals() string {
	return strings.Join([]string{
		"level: " + joinKeys(s.tree.LevelOrder()),
		"pre:   " + joinKeys(s.tree.PreOrder()),
		"in:    " + joinKeys(s.tree.InOrder()),
		"post:  " + joinKeys(s.tree.PostOrder()),
	}, "\n")
}

func (s *session[K]) stats() string {
	if s.tree.Len() == 0 {
		return "empty tree"
	}
	lo, _, _ := s.tree.Min()
	hi, _, _ := s.tree.Max()
	return fmt.Sprintf("keys %d, height %d, min %v, max %v", s.tree.Len(), s.tree.Height(), lo, hi)
}

func joinKeys[K any](keys []K) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprint(key)
	}
	return strings.Join(parts, " ")
}
