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

import "math/rand"

// Generator produces an insertion order of distinct integer keys
type Generator interface {
	Name() string
	Describe() string
	Keys(n int, rng *rand.Rand) []int
	Priority() int // Lower number = higher priority
}

func ascending(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i + 1
	}
	return keys
}

// SequentialGenerator inserts 1..n in order, every insert lands on the right spine
type SequentialGenerator struct{}

func (SequentialGenerator) Name() string     { return "sequential" }
func (SequentialGenerator) Describe() string { return "ascending keys, repeated right-right rotations" }
func (SequentialGenerator) Priority() int    { return 1 }

func (SequentialGenerator) Keys(n int, _ *rand.Rand) []int {
	return ascending(n)
}

// ReverseGenerator inserts n..1
type ReverseGenerator struct{}

func (ReverseGenerator) Name() string     { return "reverse" }
func (ReverseGenerator) Describe() string { return "descending keys, repeated left-left rotations" }
func (ReverseGenerator) Priority() int    { return 2 }

func (ReverseGenerator) Keys(n int, _ *rand.Rand) []int {
	keys := ascending(n)
	for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
		keys[i], keys[j] = keys[j], keys[i]
	}
	return keys
}

// ShuffledGenerator is a uniform random permutation of 1..n
type ShuffledGenerator struct{}

func (ShuffledGenerator) Name() string     { return "shuffled" }
func (ShuffledGenerator) Describe() string { return "random permutation" }
func (ShuffledGenerator) Priority() int    { return 3 }

func (ShuffledGenerator) Keys(n int, rng *rand.Rand) []int {
	keys := ascending(n)
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}

// ZigZagGenerator alternates between the low and high ends and walks inwards,
// so each new key falls between the last two and forces double rotations.
type ZigZagGenerator struct{}

func (ZigZagGenerator) Name() string     { return "zigzag" }
func (ZigZagGenerator) Describe() string { return "alternating extremes, left-right and right-left rotations" }
func (ZigZagGenerator) Priority() int    { return 4 }

func (ZigZagGenerator) Keys(n int, _ *rand.Rand) []int {
	keys := make([]int, 0, n)
	lo, hi := 1, n
	for lo <= hi {
		keys = append(keys, lo)
		lo++
		if lo <= hi {
			keys = append(keys, hi)
			hi--
		}
	}
	return keys
}

// SawtoothGenerator emits short descending runs in ascending blocks
type SawtoothGenerator struct {
	Run int
}

func (SawtoothGenerator) Name() string     { return "sawtooth" }
func (SawtoothGenerator) Describe() string { return "descending runs inside ascending blocks" }
func (SawtoothGenerator) Priority() int    { return 5 }

func (s SawtoothGenerator) Keys(n int, _ *rand.Rand) []int {
	run := s.Run
	if run <= 0 {
		run = 8
	}
	keys := make([]int, 0, n)
	for start := 1; start <= n; start += run {
		end := min(start+run-1, n)
		for k := end; k >= start; k-- {
			keys = append(keys, k)
		}
	}
	return keys
}
