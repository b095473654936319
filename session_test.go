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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cybrota/avltree/render"
)

func newTestSession(t *testing.T, keyType string) Session {
	t.Helper()
	s, err := newSession(keyType, render.PlainStyles())
	if err != nil {
		t.Fatalf("newSession(%q) returned error: %v", keyType, err)
	}
	return s
}

func TestSessionCommands(t *testing.T) {
	s := newTestSession(t, "int")

	testCases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"insert", []string{"insert", "3", "5", "1", "2", "4", "6", "7", "8", "9", "9"}, "inserted 9, ignored 1 duplicate(s)"},
		{"inorder", []string{"inorder"}, "1 2 3 4 5 6 7 8 9"},
		{"levelorder", []string{"level"}, "3 1 7 2 5 8 4 6 9"},
		{"preorder", []string{"preorder"}, "3 1 2 7 5 4 6 8 9"},
		{"postorder", []string{"POST"}, "2 1 4 6 5 9 8 7 3"},
		{"search", []string{"search", "7", "10"}, "7: found (height 2, balance 0)\n10: not found"},
		{"remove", []string{"remove", "3", "999"}, "removed 1, 1 absent"},
		{"inorder after remove", []string{"in"}, "1 2 4 5 6 7 8 9"},
		{"stats", []string{"stats"}, "keys 8, height 3, min 1, max 9"},
		{"validate", []string{"validate"}, "ok: 8 keys, height 3"},
		{"clear", []string{"clear"}, "cleared"},
		{"stats empty", []string{"stats"}, "empty tree"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Exec(tc.args)
			if err != nil {
				t.Fatalf("Exec(%v) returned error: %v", tc.args, err)
			}
			if got != tc.expected {
				t.Errorf("Exec(%v) = %q; want %q", tc.args, got, tc.expected)
			}
		})
	}
}

func TestSessionErrors(t *testing.T) {
	s := newTestSession(t, "int")

	if _, err := s.Exec([]string{"insert", "x"}); err == nil || !strings.Contains(err.Error(), "invalid key") {
		t.Errorf("Expected invalid key error, got %v", err)
	}
	if _, err := s.Exec([]string{"insert"}); !errors.Is(err, errNoArgs) {
		t.Errorf("Expected errNoArgs, got %v", err)
	}
	if _, err := s.Exec([]string{"frobnicate"}); err == nil {
		t.Errorf("Expected unknown command error")
	}
	if _, err := s.Exec([]string{"quit"}); !errors.Is(err, errQuit) {
		t.Errorf("Expected errQuit, got %v", err)
	}
	if _, err := newSession("float", render.PlainStyles()); err == nil {
		t.Errorf("Expected error for unsupported key type")
	}
}

func TestSessionCopy(t *testing.T) {
	var copied string
	original := copyClipboard
	copyClipboard = func(text string) error {
		copied = text
		return nil
	}
	defer func() { copyClipboard = original }()

	s := newTestSession(t, "string")
	if _, err := s.Exec([]string{"copy"}); !errors.Is(err, errNoOutput) {
		t.Errorf("Expected errNoOutput before any output, got %v", err)
	}

	s.Exec([]string{"insert", "banana", "apple", "cherry"})
	s.Exec([]string{"inorder"})
	if _, err := s.Exec([]string{"copy"}); err != nil {
		t.Fatalf("copy returned error: %v", err)
	}
	if copied != "apple banana cherry" {
		t.Errorf("Expected in-order keys on clipboard, got %q", copied)
	}
}

func TestSessionRender(t *testing.T) {
	s := newTestSession(t, "int")
	s.Exec([]string{"insert", "1", "2", "3"})

	expected := "Root: 2\n" +
		"  L1: 1\n" +
		"    L2: <None>\n" +
		"    R2: <None>\n" +
		"  R1: 3\n" +
		"    L2: <None>\n" +
		"    R2: <None>\n"
	if got := s.Render(); got != expected {
		t.Errorf("Render() =\n%s\nwant\n%s", got, expected)
	}
}

func TestRenderBuild(t *testing.T) {
	s := newTestSession(t, "int")
	s.Exec([]string{"insert", "1", "2", "3"})

	text, err := renderBuild(s, "text")
	if err != nil {
		t.Fatalf("renderBuild(text) returned error: %v", err)
	}
	if !strings.HasPrefix(text, "Root: 2\n") || !strings.Contains(text, "in:    1 2 3\n") {
		t.Errorf("Unexpected text output:\n%s", text)
	}

	dot, err := renderBuild(s, "dot")
	if err != nil {
		t.Fatalf("renderBuild(dot) returned error: %v", err)
	}
	if !strings.Contains(dot, "digraph") || strings.Contains(dot, "Root:") {
		t.Errorf("Expected DOT output only, got:\n%s", dot)
	}

	if _, err := renderBuild(s, "svg"); err == nil {
		t.Errorf("Expected error for unknown style")
	}
}

func TestRunShell(t *testing.T) {
	s := newTestSession(t, "string")
	input := strings.Join([]string{
		"# comments and blank lines are skipped",
		"",
		`insert "git status" ls "go test"`,
		"inorder",
		"remove ls",
		"bogus",
		"quit",
		"inorder",
	}, "\n")

	var out bytes.Buffer
	if err := runShell(s, strings.NewReader(input), &out, ""); err != nil {
		t.Fatalf("runShell returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	expected := []string{
		"inserted 3, ignored 0 duplicate(s)",
		"git status go test ls",
		"removed 1, 0 absent",
		`error: unknown command "bogus", try help`,
	}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines of output, got %d: %q", len(expected), len(lines), out.String())
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i, expected[i], lines[i])
		}
	}
}

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file uses defaults", func(t *testing.T) {
		config, err := loadConfigFrom(filepath.Join(dir, "missing.yaml"))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if config.Tree.KeyType != "int" || config.Bench.Workers != 4 {
			t.Errorf("Expected defaults, got %+v", config)
		}
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		data := "tree:\n  key_type: string\nbench:\n  size: 50\nindex:\n  cache_ttl: 10s\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		config, err := loadConfigFrom(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if config.Tree.KeyType != "string" || config.Bench.Size != 50 {
			t.Errorf("File values not applied: %+v", config)
		}
		if config.Bench.Trials != defaultConfig.Bench.Trials || !config.Render.Color {
			t.Errorf("Defaults lost for unset fields: %+v", config)
		}
		if config.Index.CacheTTL.Seconds() != 10 {
			t.Errorf("Expected cache_ttl 10s, got %v", config.Index.CacheTTL)
		}
	})

	t.Run("invalid key type falls back", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("tree:\n  key_type: float\n"), 0644); err != nil {
			t.Fatal(err)
		}
		config, err := loadConfigFrom(path)
		if err == nil {
			t.Errorf("Expected validation error")
		}
		if config.Tree.KeyType != "int" {
			t.Errorf("Expected fallback to default key type, got %q", config.Tree.KeyType)
		}
	})

	t.Run("render style", func(t *testing.T) {
		path := filepath.Join(dir, "style.yaml")
		if err := os.WriteFile(path, []byte("render:\n  style: dot\n"), 0644); err != nil {
			t.Fatal(err)
		}
		config, err := loadConfigFrom(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if config.Render.Style != "dot" || !config.Render.Color {
			t.Errorf("Expected dot style with default color, got %+v", config.Render)
		}

		if err := os.WriteFile(path, []byte("render:\n  style: svg\n"), 0644); err != nil {
			t.Fatal(err)
		}
		config, err = loadConfigFrom(path)
		if err == nil {
			t.Errorf("Expected validation error for unknown style")
		}
		if config.Render.Style != "text" {
			t.Errorf("Expected fallback to text style, got %q", config.Render.Style)
		}
	})

	t.Run("malformed yaml falls back", func(t *testing.T) {
		path := filepath.Join(dir, "malformed.yaml")
		if err := os.WriteFile(path, []byte("tree: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		config, err := loadConfigFrom(path)
		if err == nil {
			t.Errorf("Expected parse error")
		}
		if config == nil || config.Tree.KeyType != "int" {
			t.Errorf("Expected default config on parse error")
		}
	})
}

func TestCollectKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	if err := os.WriteFile(path, []byte("5 4\n\t3\n  2 1  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	keys, err := collectKeys([]string{"9"}, path, false)
	if err != nil {
		t.Fatalf("collectKeys returned error: %v", err)
	}
	if strings.Join(keys, ",") != "9,5,4,3,2,1" {
		t.Errorf("Unexpected keys: %v", keys)
	}

	if _, err := collectKeys(nil, filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestBuildWordIndex(t *testing.T) {
	ix := buildWordIndex(strings.Fields("Go go gopher, golang. Rust go"), defaultConfig.Index)

	entries := ix.Prefix("go")
	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Key+"="+string(rune('0'+e.Value)))
	}
	if strings.Join(got, " ") != "go=3 golang=1 gopher=1" {
		t.Errorf("Unexpected prefix entries: %v", got)
	}
	if ix.Len() != 4 {
		t.Errorf("Expected 4 distinct words, got %d", ix.Len())
	}
	if stats := ix.Stats(); stats.CacheHits != 0 || stats.CacheMisses != 0 {
		t.Errorf("Counting must not touch the read cache, got %+v", stats)
	}
}
