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

package workload

import (
	"fmt"
	"sort"
	"strings"
)

// Manager keeps the registered workload generators
type Manager struct {
	generators []Generator
}

// NewManager creates a manager with all built-in generators
func NewManager() *Manager {
	manager := &Manager{}

	manager.Register(SequentialGenerator{})
	manager.Register(ReverseGenerator{})
	manager.Register(ShuffledGenerator{})
	manager.Register(ZigZagGenerator{})
	manager.Register(SawtoothGenerator{Run: 8})

	return manager
}

// Register adds a generator, replacing any previous one with the same name
func (m *Manager) Register(g Generator) {
	for i, existing := range m.generators {
		if existing.Name() == g.Name() {
			m.generators[i] = g
			return
		}
	}
	m.generators = append(m.generators, g)
}

// Get returns the generator registered under name
func (m *Manager) Get(name string) (Generator, error) {
	for _, g := range m.generators {
		if g.Name() == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("unknown workload %q (available: %s)", name, strings.Join(m.Names(), ", "))
}

// All returns the generators in priority order
func (m *Manager) All() []Generator {
	all := make([]Generator, len(m.generators))
	copy(all, m.generators)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Priority() < all[j].Priority()
	})
	return all
}

func (m *Manager) Names() []string {
	var names []string
	for _, g := range m.All() {
		names = append(names, g.Name())
	}
	return names
}

// Describe lists each workload with its description, one per line
func (m *Manager) Describe() string {
	var sb strings.Builder
	for _, g := range m.All() {
		fmt.Fprintf(&sb, "  %-12s %s\n", g.Name(), g.Describe())
	}
	return sb.String()
}

// Select resolves a list of names, dropping repeats; an empty list selects
// everything
func (m *Manager) Select(names []string) ([]Generator, error) {
	if len(names) == 0 {
		return m.All(), nil
	}
	selected := make([]Generator, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if seen[name] {
			continue
		}
		g, err := m.Get(name)
		if err != nil {
			return nil, err
		}
		seen[name] = true
		selected = append(selected, g)
	}
	return selected, nil
}
