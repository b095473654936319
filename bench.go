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
	"math/rand"
	"os"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cybrota/avltree/avl"
	"github.com/cybrota/avltree/workload"
	"github.com/ledgerwatch/log/v3"
	"github.com/panjf2000/ants/v2"
	"github.com/schollz/progressbar/v3"
)

type benchOptions struct {
	Workers         int
	Trials          int
	Size            int
	Seed            int64
	ValidateEveryOp bool
	Workloads       []string
	ShowProgress    bool
}

type benchJob struct {
	generator workload.Generator
	gen       int // position in the selected generators
	trial     int
	seed      int64
}

type trialOutcome struct {
	Workload  string
	Height    int
	Remaining int
	Elapsed   time.Duration
	Err       error
	gen       int
}

// WorkloadSummary aggregates every trial of one workload
type WorkloadSummary struct {
	Workload  string
	Trials    int
	Failures  int
	MaxHeight int
	Bound     int
	Elapsed   time.Duration
	FirstErr  error
}

// avlHeightBound is the worst-case AVL height for n keys, about 1.44*log2(n)
func avlHeightBound(n int) int {
	h, a, b := 0, 1, 2 // minimum node counts for heights h and h+1
	for b <= n {
		a, b = b, a+b+1
		h++
	}
	return h
}

// runTrial builds one tree from the workload, removes a random half and
// checks the invariants along the way.
func runTrial(job benchJob, size int, validateEveryOp bool) trialOutcome {
	start := time.Now()
	outcome := trialOutcome{Workload: job.generator.Name()}
	rng := rand.New(rand.NewSource(job.seed))

	tree := avl.New[int, struct{}]()
	keys := job.generator.Keys(size, rng)
	bound := avlHeightBound(size)

	check := func(stage string) bool {
		if err := tree.Validate(); err != nil {
			outcome.Err = fmt.Errorf("%s: %w", stage, err)
			return false
		}
		if tree.Height() > bound {
			outcome.Err = fmt.Errorf("%s: height %d exceeds bound %d", stage, tree.Height(), bound)
			return false
		}
		return true
	}

	for _, key := range keys {
		tree.Insert(key, struct{}{})
		if validateEveryOp && !check("insert "+strconv.Itoa(key)) {
			return outcome
		}
	}
	if !check("after inserts") {
		return outcome
	}
	outcome.Height = tree.Height()

	removals := slices.Clone(keys)
	rng.Shuffle(len(removals), func(i, j int) { removals[i], removals[j] = removals[j], removals[i] })
	removals = removals[:len(removals)/2]
	for _, key := range removals {
		if !tree.Remove(key) {
			outcome.Err = fmt.Errorf("remove %d: key missing", key)
			return outcome
		}
		if validateEveryOp && !check("remove "+strconv.Itoa(key)) {
			return outcome
		}
	}
	if !check("after removals") {
		return outcome
	}

	remaining := tree.InOrder()
	if !sort.IntsAreSorted(remaining) || len(remaining) != size-len(removals) {
		outcome.Err = fmt.Errorf("in-order sequence corrupt: %d keys", len(remaining))
	}
	outcome.Remaining = len(remaining)
	outcome.Elapsed = time.Since(start)
	return outcome
}

// runBench resolves the requested workloads and runs their trials.
func runBench(opts benchOptions) ([]WorkloadSummary, error) {
	if opts.Size < 0 {
		return nil, fmt.Errorf("bench size must not be negative, got %d", opts.Size)
	}
	generators, err := workload.NewManager().Select(opts.Workloads)
	if err != nil {
		return nil, err
	}
	return runTrials(generators, opts)
}

// runTrials spreads trials over an ants worker pool. Each trial owns its tree,
// nothing is shared between workers except the result map.
func runTrials(generators []workload.Generator, opts benchOptions) ([]WorkloadSummary, error) {
	total := len(generators) * opts.Trials
	results := haxmap.New[int, trialOutcome]()

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Running trials..."),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(opts.ShowProgress),
		progressbar.OptionClearOnFinish(),
	)

	var wg sync.WaitGroup
	pool, err := ants.NewPoolWithFunc(opts.Workers, func(i interface{}) {
		defer wg.Done()
		job := i.(benchJob)
		outcome := trialOutcome{Workload: job.generator.Name()}

		// The tree reports broken invariants by panicking, which must count
		// as a failed trial rather than vanish inside the pool.
		defer func() {
			if r := recover(); r != nil {
				outcome.Err = fmt.Errorf("trial %d panicked: %v", job.trial, r)
			}
			outcome.gen = job.gen
			results.Set(job.gen*opts.Trials+job.trial, outcome)
			_ = bar.Add(1)
		}()
		outcome = runTrial(job, opts.Size, opts.ValidateEveryOp)
	}, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	log.Info("Starting bench", "workloads", len(generators), "trials", opts.Trials, "size", opts.Size, "workers", opts.Workers)
	for gi, g := range generators {
		for trial := 0; trial < opts.Trials; trial++ {
			wg.Add(1)
			job := benchJob{generator: g, gen: gi, trial: trial, seed: opts.Seed + int64(gi*opts.Trials+trial)}
			if err := pool.Invoke(job); err != nil {
				wg.Done()
				return nil, fmt.Errorf("failed to submit trial: %w", err)
			}
		}
	}
	wg.Wait()
	_ = bar.Finish()

	summaries := summarize(generators, results, opts.Size)
	reported := 0
	for _, s := range summaries {
		reported += s.Trials
	}
	if reported != total {
		return summaries, fmt.Errorf("only %d of %d trials reported a result", reported, total)
	}
	return summaries, nil
}

func summarize(generators []workload.Generator, results *haxmap.Map[int, trialOutcome], size int) []WorkloadSummary {
	summaries := make([]WorkloadSummary, len(generators))
	for i, g := range generators {
		summaries[i] = WorkloadSummary{Workload: g.Name(), Bound: avlHeightBound(size)}
	}

	results.ForEach(func(_ int, outcome trialOutcome) bool {
		s := &summaries[outcome.gen]
		s.Trials++
		s.Elapsed += outcome.Elapsed
		if outcome.Err != nil {
			s.Failures++
			if s.FirstErr == nil {
				s.FirstErr = outcome.Err
			}
			log.Warn("Trial failed", "workload", outcome.Workload, "err", outcome.Err)
		}
		s.MaxHeight = max(s.MaxHeight, outcome.Height)
		return true
	})
	return summaries
}

func formatBenchTable(summaries []WorkloadSummary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("workload", "trials", "failures", "max height", "bound", "avg time")

	for _, s := range summaries {
		avg := time.Duration(0)
		if s.Trials > 0 {
			avg = s.Elapsed / time.Duration(s.Trials)
		}
		t.Row(
			s.Workload,
			strconv.Itoa(s.Trials),
			strconv.Itoa(s.Failures),
			strconv.Itoa(s.MaxHeight),
			strconv.Itoa(s.Bound),
			avg.Round(time.Microsecond).String(),
		)
	}
	return t.String()
}
