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
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-shellwords"
)

// Styles holds all the styling for the explorer
type Styles struct {
	Border       lipgloss.Style
	Title        lipgloss.Style
	InputPrompt  lipgloss.Style
	HelpDesc     lipgloss.Style
	Message      lipgloss.Style
	ErrorMessage lipgloss.Style
}

func NewStyles() *Styles {
	scheme := GetColorScheme()
	return &Styles{
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border),
		Title: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(scheme.TextMuted),
		Message: lipgloss.NewStyle().
			Foreground(scheme.Success),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Bold(true),
	}
}

// explorerModel is the Bubble Tea state for the explore command
type explorerModel struct {
	session   Session
	input     textinput.Model
	treeView  viewport.Model
	parser    *shellwords.Parser
	styles    *Styles
	message   string
	failed    bool
	history   []string
	historyAt int
	ready     bool
	width     int
	height    int
}

func newExplorerModel(s Session) explorerModel {
	ti := textinput.New()
	ti.Placeholder = "insert 3 5 1 2 4 | remove 3 | search 4 | help"
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent(s.Render())

	return explorerModel{
		session:  s,
		input:    ti,
		treeView: vp,
		parser:   shellwords.NewParser(),
		styles:   NewStyles(),
	}
}

func (m explorerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m explorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "up":
			if m.historyAt > 0 {
				m.historyAt--
				m.input.SetValue(m.history[m.historyAt])
				m.input.CursorEnd()
			}
			return m, nil
		case "down":
			if m.historyAt < len(m.history)-1 {
				m.historyAt++
				m.input.SetValue(m.history[m.historyAt])
			} else {
				m.historyAt = len(m.history)
				m.input.SetValue("")
			}
			m.input.CursorEnd()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.treeView, cmd = m.treeView.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// submit runs the current input line against the session
func (m explorerModel) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.history = append(m.history, line)
	m.historyAt = len(m.history)

	args, err := m.parser.Parse(line)
	if err != nil {
		m.message, m.failed = err.Error(), true
		return m, nil
	}

	out, err := m.session.Exec(args)
	if errors.Is(err, errQuit) {
		return m, tea.Quit
	}
	if err != nil {
		m.message, m.failed = err.Error(), true
	} else {
		m.message, m.failed = out, false
	}
	m.treeView.SetContent(m.session.Render())
	return m, nil
}

func (m *explorerModel) updateLayout() {
	// title, input, message and help lines plus the border
	reserved := 8
	m.treeView.Width = max(m.width-4, 10)
	m.treeView.Height = max(m.height-reserved, 3)
	m.input.Width = max(m.width-6, 10)
}

func (m explorerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := m.styles.Title.Render(fmt.Sprintf("AVL explorer · %d keys", m.session.Len()))
	tree := m.styles.Border.Render(m.treeView.View())

	message := m.styles.Message.Render(m.message)
	if m.failed {
		message = m.styles.ErrorMessage.Render(m.message)
	}
	help := m.styles.HelpDesc.Render("enter: run · ↑/↓: history · pgup/pgdown: scroll · esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		tree,
		m.styles.InputPrompt.Render(m.input.View()),
		message,
		help,
	)
}

func runExplorer(s Session) error {
	p := tea.NewProgram(newExplorerModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
