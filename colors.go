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

	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avltree/render"
)

type TerminalMode int

const (
	TerminalModeUnknown TerminalMode = iota
	TerminalModeLight
	TerminalModeDark
)

// ColorScheme holds the palette for the current terminal background
type ColorScheme struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
}

var (
	currentColorScheme *ColorScheme
	colorEnabled       = true
)

// detectTerminalMode attempts to detect whether the terminal is in light or dark mode
func detectTerminalMode() TerminalMode {
	// COLORFGBG format is typically "foreground;background"
	if colorScheme := os.Getenv("COLORFGBG"); colorScheme != "" {
		parts := strings.Split(colorScheme, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "0" || bg == "8" || bg == "16" {
				return TerminalModeDark
			} else if bg == "15" || bg == "7" || bg == "255" {
				return TerminalModeLight
			}
		}
	}

	for _, env := range []string{"TERM_THEME", "THEME"} {
		if theme := strings.ToLower(os.Getenv(env)); theme != "" {
			if strings.Contains(theme, "dark") {
				return TerminalModeDark
			} else if strings.Contains(theme, "light") {
				return TerminalModeLight
			}
		}
	}

	if lipgloss.HasDarkBackground() {
		return TerminalModeDark
	}
	return TerminalModeLight
}

func createLightColorScheme() *ColorScheme {
	return &ColorScheme{
		Primary:   lipgloss.Color("4"),
		Success:   lipgloss.Color("2"),
		Warning:   lipgloss.Color("3"),
		Error:     lipgloss.Color("1"),
		Text:      lipgloss.Color("0"),
		TextMuted: lipgloss.Color("240"),
		Border:    lipgloss.Color("8"),
	}
}

func createDarkColorScheme() *ColorScheme {
	return &ColorScheme{
		Primary:   lipgloss.Color("39"),
		Success:   lipgloss.Color("46"),
		Warning:   lipgloss.Color("11"),
		Error:     lipgloss.Color("196"),
		Text:      lipgloss.Color("252"),
		TextMuted: lipgloss.Color("243"),
		Border:    lipgloss.Color("62"),
	}
}

// InitializeColors picks the palette once at startup. NO_COLOR or a false
// render.color setting turns styling off entirely.
func InitializeColors(enabled bool) {
	colorEnabled = enabled && os.Getenv("NO_COLOR") == ""
	if detectTerminalMode() == TerminalModeLight {
		currentColorScheme = createLightColorScheme()
	} else {
		currentColorScheme = createDarkColorScheme()
	}
}

func GetColorScheme() *ColorScheme {
	if currentColorScheme == nil {
		InitializeColors(true)
	}
	return currentColorScheme
}

func styled(fg lipgloss.Color) lipgloss.Style {
	if !colorEnabled {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(fg)
}

func titleStyle() lipgloss.Style {
	return styled(GetColorScheme().Primary).Bold(colorEnabled)
}

func printSuccess(format string, args ...interface{}) {
	fmt.Println(styled(GetColorScheme().Success).Render(fmt.Sprintf(format, args...)))
}

func printError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, styled(GetColorScheme().Error).Render(fmt.Sprintf(format, args...)))
}

// treeStyles maps the palette onto the tree renderer
func treeStyles(showMeta bool) render.Styles {
	if !colorEnabled {
		styles := render.PlainStyles()
		styles.ShowMeta = showMeta
		return styles
	}
	scheme := GetColorScheme()
	return render.Styles{
		Prefix:   lipgloss.NewStyle().Foreground(scheme.TextMuted),
		Key:      lipgloss.NewStyle().Foreground(scheme.Primary).Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(scheme.TextMuted),
		Empty:    lipgloss.NewStyle().Foreground(scheme.Border).Italic(true),
		ShowMeta: showMeta,
		Colored:  true,
	}
}
