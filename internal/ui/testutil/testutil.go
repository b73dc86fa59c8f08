// Package testutil drives bubbletea components in tests.
package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Harness feeds messages to a model and records the commands it returns.
type Harness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewHarness wraps m, recording its Init command.
func NewHarness(m tea.Model) *Harness {
	h := &Harness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the current model for type assertion.
func (h *Harness) Model() tea.Model {
	return h.model
}

// Send delivers msg and returns the resulting command.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendRunes simulates typing s.
func (h *Harness) SendRunes(s string) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// SendKey simulates a special key such as tea.KeyEnter.
func (h *Harness) SendKey(k tea.KeyType) tea.Cmd {
	return h.Send(tea.KeyMsg{Type: k})
}

// LastMsg runs the most recent command and returns its message, or nil.
func (h *Harness) LastMsg() tea.Msg {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]()
}

// CommandCount returns how many commands were recorded.
func (h *Harness) CommandCount() int {
	return len(h.cmds)
}

// View returns the model's view without colour codes.
func (h *Harness) View() string {
	return StripANSI(h.model.View())
}

// ViewContains reports whether the uncoloured view contains substr.
func (h *Harness) ViewContains(substr string) bool {
	return strings.Contains(h.View(), substr)
}
