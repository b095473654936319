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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// readKeysFile returns the whitespace separated tokens of path. A byte
// progress bar is drawn on stderr when showProgress is set.
func readKeysFile(path string, showProgress bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("key file %s not found", path)
		}
		return nil, err
	}
	defer file.Close()

	var reader io.Reader = file
	if showProgress {
		if stat, err := file.Stat(); err == nil {
			bar := progressbar.NewOptions64(stat.Size(),
				progressbar.OptionSetDescription("Loading keys..."),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowBytes(true),
				progressbar.OptionSetWidth(50),
				progressbar.OptionClearOnFinish(),
			)
			defer bar.Finish()
			reader = io.TeeReader(file, bar)
		}
	}

	var keys []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		keys = append(keys, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// collectKeys merges positional keys with the contents of an optional file
func collectKeys(args []string, file string, showProgress bool) ([]string, error) {
	keys := append([]string(nil), args...)
	if file == "" {
		return keys, nil
	}
	fromFile, err := readKeysFile(file, showProgress)
	if err != nil {
		return nil, err
	}
	return append(keys, fromFile...), nil
}
