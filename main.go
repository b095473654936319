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
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/cybrota/avltree/index"
	"github.com/cybrota/avltree/workload"
	"github.com/ledgerwatch/log/v3"
	"github.com/spf13/cobra"
)

var version = "v0.3.0"

// appConfig is loaded once per invocation by the root command
var appConfig = defaultConfig

func main() {
	var (
		keyType  string
		logLevel string
		noColor  bool
	)

	var rootCmd = &cobra.Command{
		Use:     "avltree",
		Version: version,
		Short:   "Build, inspect and stress-test AVL trees from the terminal",
		Long:    "avltree keeps an in-memory AVL tree and shows how every insert and remove rebalances it.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig()
			if err != nil {
				// Defaults are still usable, only report the problem
				fmt.Fprintf(os.Stderr, "Failed to load configuration: %v. Using default settings.\n", err)
			}
			appConfig = *config

			if cmd.Flags().Changed("keys") {
				appConfig.Tree.KeyType = keyType
			}
			if cmd.Flags().Changed("log-level") {
				appConfig.Log.Level = logLevel
			}
			if noColor {
				appConfig.Render.Color = false
			}

			if err := setupLogging(appConfig.Log.Level); err != nil {
				log.Warn("Unknown log level, using info", "level", appConfig.Log.Level)
			}
			InitializeColors(appConfig.Render.Color)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the shell when no subcommand is provided
			return shellCommand(cmd, "avl> ")
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&keyType, "keys", "int", "key type: int or string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	var cmdBuild = &cobra.Command{
		Use:   "build [keys...]",
		Short: "Insert keys, print the tree and its traversals",
		Example: "  avltree build 3 5 1 2 4 6 7 8 9 --remove 3\n" +
			"  avltree build --keys string --file words.txt --copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			removals, _ := cmd.Flags().GetStringSlice("remove")
			copyOut, _ := cmd.Flags().GetBool("copy")
			progress, _ := cmd.Flags().GetBool("progress")

			keys, err := collectKeys(args, file, progress)
			if err != nil {
				return err
			}
			s, err := buildSession(keys, removals)
			if err != nil {
				return err
			}

			out, err := renderBuild(s, appConfig.Render.Style)
			if err != nil {
				return err
			}
			fmt.Print(out)

			if copyOut {
				inorder, _ := s.Exec([]string{"inorder"})
				if err := clipboard.WriteAll(inorder); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				printSuccess("In-order keys copied to clipboard")
			}
			return nil
		},
	}
	cmdBuild.Flags().String("file", "", "read whitespace separated keys from a file")
	cmdBuild.Flags().StringSlice("remove", nil, "keys to remove after inserting")
	cmdBuild.Flags().Bool("copy", false, "copy the in-order traversal to the clipboard")
	cmdBuild.Flags().Bool("progress", true, "show a progress bar while reading --file")

	var cmdDot = &cobra.Command{
		Use:   "dot [keys...]",
		Short: "Print the tree built from keys as Graphviz DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			removals, _ := cmd.Flags().GetStringSlice("remove")
			keys, err := collectKeys(args, file, false)
			if err != nil {
				return err
			}
			s, err := buildSession(keys, removals)
			if err != nil {
				return err
			}
			out, err := s.Exec([]string{"dot"})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	cmdDot.Flags().String("file", "", "read whitespace separated keys from a file")
	cmdDot.Flags().StringSlice("remove", nil, "keys to remove after inserting")

	var cmdShell = &cobra.Command{
		Use:   "shell",
		Short: "Run the line based tree shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, _ := cmd.Flags().GetString("prompt")
			return shellCommand(cmd, prompt)
		},
	}
	cmdShell.Flags().String("prompt", "avl> ", "prompt printed before each line, empty for none")

	var cmdExplore = &cobra.Command{
		Use:   "explore [keys...]",
		Short: "Launch the interactive tree explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildSession(args, nil)
			if err != nil {
				return err
			}
			return runExplorer(s)
		},
	}

	var cmdIndex = &cobra.Command{
		Use:   "index <file>",
		Short: "Count the words of a file in the ordered index and list prefix matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString("prefix")
			progress, _ := cmd.Flags().GetBool("progress")

			words, err := readKeysFile(args[0], progress)
			if err != nil {
				return err
			}
			ix := buildWordIndex(words, appConfig.Index)
			for _, e := range ix.Prefix(prefix) {
				fmt.Printf("%6d  %s\n", e.Value, e.Key)
			}

			stats := ix.Stats()
			log.Debug("Index stats", "keys", stats.Keys, "cache_hits", stats.CacheHits,
				"cache_misses", stats.CacheMisses, "filter_rejects", stats.FilterRejects)
			return ix.Validate()
		},
	}
	cmdIndex.Flags().String("prefix", "", "only list words starting with this prefix")
	cmdIndex.Flags().Bool("progress", true, "show a progress bar while reading the file")

	var cmdBench = &cobra.Command{
		Use:   "bench",
		Short: "Stress the tree with randomized insert/remove workloads",
		Long: "Build a fresh tree per trial, insert every key of the workload, remove a\n" +
			"random half and check the AVL invariants.\n\nWorkloads:\n" + workload.NewManager().Describe(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := benchOptions{
				Workers:         appConfig.Bench.Workers,
				Trials:          appConfig.Bench.Trials,
				Size:            appConfig.Bench.Size,
				Seed:            appConfig.Bench.Seed,
				ValidateEveryOp: appConfig.Bench.ValidateEveryOp,
			}
			flags := cmd.Flags()
			if flags.Changed("workers") {
				opts.Workers, _ = flags.GetInt("workers")
			}
			if flags.Changed("trials") {
				opts.Trials, _ = flags.GetInt("trials")
			}
			if flags.Changed("size") {
				opts.Size, _ = flags.GetInt("size")
			}
			if flags.Changed("seed") {
				opts.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("validate") {
				opts.ValidateEveryOp, _ = flags.GetBool("validate")
			}
			opts.Workloads, _ = flags.GetStringSlice("workload")
			opts.ShowProgress, _ = flags.GetBool("progress")
			opts.Workers = max(opts.Workers, 1)
			opts.Trials = max(opts.Trials, 1)

			summaries, err := runBench(opts)
			if err != nil {
				return err
			}
			fmt.Println(formatBenchTable(summaries))

			for _, s := range summaries {
				if s.Failures > 0 {
					return fmt.Errorf("workload %s failed %d of %d trials: %v", s.Workload, s.Failures, s.Trials, s.FirstErr)
				}
			}
			printSuccess("All trials kept the tree balanced")
			return nil
		},
	}
	cmdBench.Flags().Int("workers", 4, "number of concurrent workers")
	cmdBench.Flags().Int("trials", 8, "trials per workload")
	cmdBench.Flags().Int("size", 1000, "keys per trial")
	cmdBench.Flags().Int64("seed", 1, "base random seed")
	cmdBench.Flags().Bool("validate", false, "validate the whole tree after every operation")
	cmdBench.Flags().StringSlice("workload", nil, "workloads to run (default all)")
	cmdBench.Flags().Bool("progress", true, "show a progress bar")

	var cmdConfig = &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			displaySettings(&appConfig)
		},
	}

	var cmdUsage = &cobra.Command{
		Use:   "usage",
		Short: "Print avltree usage guide",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(getHelpMessage())
		},
	}

	var cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print avltree version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	rootCmd.AddCommand(cmdBuild, cmdDot, cmdShell, cmdExplore, cmdIndex, cmdBench, cmdConfig, cmdUsage, cmdVersion)
	if err := rootCmd.Execute(); err != nil {
		printError("Error: %v", err)
		os.Exit(1)
	}
}

func shellCommand(cmd *cobra.Command, prompt string) error {
	s, err := newSession(appConfig.Tree.KeyType, treeStyles(appConfig.Render.ShowMeta))
	if err != nil {
		return err
	}
	return runShell(s, cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
}

// buildSession creates a session for the configured key type and applies the
// inserts and removals in order.
func buildSession(keys, removals []string) (Session, error) {
	s, err := newSession(appConfig.Tree.KeyType, treeStyles(appConfig.Render.ShowMeta))
	if err != nil {
		return nil, err
	}
	if len(keys) > 0 {
		if _, err := s.Exec(append([]string{"insert"}, keys...)); err != nil {
			return nil, err
		}
	}
	if len(removals) > 0 {
		if _, err := s.Exec(append([]string{"remove"}, removals...)); err != nil {
			return nil, err
		}
	}
	log.Debug("Built tree", "keys", s.Len())
	return s, nil
}

// renderBuild formats a built tree in the configured render style
func renderBuild(s Session, style string) (string, error) {
	switch style {
	case "dot":
		return s.Exec([]string{"dot"})
	case "text", "":
		traversals, err := s.Exec([]string{"traversals"})
		if err != nil {
			return "", err
		}
		return s.Render() + "\n" + traversals + "\n", nil
	default:
		return "", fmt.Errorf("unknown render style %q", style)
	}
}

// buildWordIndex counts occurrences of each word
func buildWordIndex(words []string, config index.Config) *index.Index[int] {
	ix := index.New[int](config)
	for _, word := range words {
		word = strings.ToLower(strings.Trim(word, ".,;:!?\"'()[]{}"))
		if word == "" {
			continue
		}
		ix.Update(word, func(count int, _ bool) int { return count + 1 })
	}
	return ix
}
