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
	"path/filepath"
	"time"

	"github.com/cybrota/avltree/index"
	"gopkg.in/yaml.v3"
)

type TreeConfig struct {
	KeyType string `yaml:"key_type"` // int or string
}

type RenderConfig struct {
	Color    bool   `yaml:"color"`
	ShowMeta bool   `yaml:"show_meta"`
	Style    string `yaml:"style"` // text or dot, the output of build
}

type BenchConfig struct {
	Workers         int   `yaml:"workers"`
	Trials          int   `yaml:"trials"`
	Size            int   `yaml:"size"`
	Seed            int64 `yaml:"seed"`
	ValidateEveryOp bool  `yaml:"validate_every_op"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Tree   TreeConfig   `yaml:"tree"`
	Render RenderConfig `yaml:"render"`
	Bench  BenchConfig  `yaml:"bench"`
	Index  index.Config `yaml:"index"`
	Log    LogConfig    `yaml:"log"`
}

var defaultConfig = Config{
	Tree: TreeConfig{
		KeyType: "int",
	},
	Render: RenderConfig{
		Color:    true,
		ShowMeta: false,
		Style:    "text",
	},
	Bench: BenchConfig{
		Workers:         4,
		Trials:          8,
		Size:            1000,
		Seed:            1,
		ValidateEveryOp: false,
	},
	Index: index.Config{
		BloomSize:    1 << 16,
		BloomHashes:  5,
		CacheTTL:     30 * time.Minute,
		CacheCleanup: 5 * time.Minute,
		RebuildAfter: 1024,
	},
	Log: LogConfig{
		Level: "info",
	},
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".avltree.yaml"), nil
}

// LoadConfig reads ~/.avltree.yaml, falling back to the defaults when the
// file is missing or unreadable.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := defaultConfig
		return &config, nil
	}
	return loadConfigFrom(configPath)
}

func loadConfigFrom(configPath string) (*Config, error) {
	config := defaultConfig

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &config, nil
		}
		return &config, fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields missing from the file keep their default values
	if err := yaml.Unmarshal(data, &config); err != nil {
		fallback := defaultConfig
		return &fallback, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	if err := config.validate(); err != nil {
		fallback := defaultConfig
		return &fallback, err
	}
	return &config, nil
}

func (c *Config) validate() error {
	switch c.Tree.KeyType {
	case "int", "string":
	default:
		return fmt.Errorf("tree.key_type must be int or string, got %q", c.Tree.KeyType)
	}
	switch c.Render.Style {
	case "text", "dot":
	default:
		return fmt.Errorf("render.style must be text or dot, got %q", c.Render.Style)
	}
	if c.Bench.Workers < 1 || c.Bench.Trials < 1 || c.Bench.Size < 0 {
		return fmt.Errorf("bench settings must be positive: workers=%d trials=%d size=%d",
			c.Bench.Workers, c.Bench.Trials, c.Bench.Size)
	}
	return nil
}

func createDefaultConfigFile(configPath string) error {
	data, err := yaml.Marshal(&defaultConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func displaySettings(config *Config) {
	configPath, err := getConfigPath()
	if err != nil {
		printError("Failed to get config path: %v", err)
		return
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Configuration file not found. Creating default configuration...\n\n")
		if err := createDefaultConfigFile(configPath); err != nil {
			printError("Failed to create default config file: %v", err)
			return
		}
		printSuccess("Created default configuration at: %s\n", configPath)
	}

	fmt.Println(titleStyle().Render("avltree configuration"))
	fmt.Printf("Config file: %s\n\n", configPath)

	data, err := yaml.Marshal(config)
	if err != nil {
		printError("Failed to render configuration: %v", err)
		return
	}
	fmt.Print(string(data))
}
