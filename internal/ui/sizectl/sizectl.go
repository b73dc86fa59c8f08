// Package sizectl provides the thumbnail size control. It moves along the
// size ladder one step at a time, so small sizes change in fine increments
// and large ones in coarse increments.
package sizectl

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/pagethumbs/internal/thumbnail"
	"github.com/llehouerou/pagethumbs/internal/ui/styles"
)

const (
	maxBarWidth = 40
	minBarWidth = 10
)

// KeyMap defines the control's bindings.
type KeyMap struct {
	Smaller key.Binding
	Larger  key.Binding
	Min     key.Binding
	Max     key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Smaller: key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "smaller")),
		Larger:  key.NewBinding(key.WithKeys("right", "l", "+", "="), key.WithHelp("→/l", "larger")),
		Min:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home", "smallest")),
		Max:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end", "largest")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel")),
	}
}

// ChangedMsg is sent whenever the selected size changes.
type ChangedMsg struct{ Size int }

// ConfirmedMsg is sent when the user accepts the selected size.
type ConfirmedMsg struct{ Size int }

// CancelledMsg is sent when the user backs out. Size is the initial size.
type CancelledMsg struct{ Size int }

// Model is the size control.
type Model struct {
	keys    KeyMap
	step    float64
	initial int
	width   int
	active  bool
}

// New creates a control positioned at size.
func New(size int) Model {
	size = thumbnail.ClampSize(size)
	return Model{
		keys:    DefaultKeyMap(),
		step:    thumbnail.SizeToStep(float64(size)),
		initial: size,
		active:  true,
	}
}

// Size returns the selected pixel size.
func (m Model) Size() int {
	return thumbnail.QuantizeStep(m.step)
}

// Step returns the current control position.
func (m Model) Step() float64 {
	return m.step
}

// Active reports whether the control still accepts input.
func (m Model) Active() bool {
	return m.active
}

// SetWidth sets the available width in cells.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := m.Size()

	switch {
	case key.Matches(msg, m.keys.Smaller):
		m.step = max(prevStop(m.step), thumbnail.MinStep())
	case key.Matches(msg, m.keys.Larger):
		m.step = min(nextStop(m.step), thumbnail.MaxStep())
	case key.Matches(msg, m.keys.Min):
		m.step = thumbnail.MinStep()
	case key.Matches(msg, m.keys.Max):
		m.step = thumbnail.MaxStep()
	case key.Matches(msg, m.keys.Confirm):
		m.active = false
		size := m.Size()
		return m, func() tea.Msg { return ConfirmedMsg{Size: size} }
	case key.Matches(msg, m.keys.Cancel):
		m.active = false
		m.step = thumbnail.SizeToStep(float64(m.initial))
		size := m.initial
		return m, func() tea.Msg { return CancelledMsg{Size: size} }
	default:
		return m, nil
	}

	if size := m.Size(); size != before {
		return m, func() tea.Msg { return ChangedMsg{Size: size} }
	}
	return m, nil
}

// stopEpsilon absorbs float error so a position on a stop counts as on it.
const stopEpsilon = 1e-9

// nextStop returns the first whole step above step.
func nextStop(step float64) float64 {
	return math.Floor(step+stopEpsilon) + 1
}

// prevStop returns the first whole step below step.
func prevStop(step float64) float64 {
	return math.Ceil(step-stopEpsilon) - 1
}

// View implements tea.Model.
func (m Model) View() string {
	size := m.Size()

	barWidth := maxBarWidth
	if m.width > 0 {
		barWidth = min(max(m.width-4, minBarWidth), maxBarWidth)
	}
	span := thumbnail.MaxStep() - thumbnail.MinStep()
	filled := int(math.Round((m.step - thumbnail.MinStep()) / span * float64(barWidth)))
	t := styles.T()
	bar := styles.Bar(filled, barWidth, t.Accent, t.AccentEnd, t.FgSubtle)

	//nolint:gosec // size is bounded by MaxSize
	memory := humanize.IBytes(uint64(size * size * 4))
	value := t.S().Base.Render(fmt.Sprintf("%d × %d px  (%s)", size, size, memory))

	hint := t.S().Subtle.Render("←→/hl resize · home/end min/max · enter save · esc cancel")

	return styles.Gradient("Thumbnail size", t.Accent, t.AccentEnd) + "\n\n" + bar + "\n" + value + "\n\n" + hint
}
