package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient renders bold text blending from one colour to another.
func Gradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, cluster := range clusters {
		c := blend(from, to, float64(i)/float64(len(clusters)-1))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(cluster))
	}
	return b.String()
}

// Bar renders a meter of width cells with the first filled cells lit.
// Each lit cell keeps the colour of its position on the full-width
// gradient, so growing the bar only appends colours.
func Bar(filled, width int, from, to, empty lipgloss.Color) string {
	filled = min(max(filled, 0), width)

	var b strings.Builder
	for i := 0; i < filled; i++ {
		t := 0.0
		if width > 1 {
			t = float64(i) / float64(width-1)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(blend(from, to, t)).Render("█"))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(empty).Render(strings.Repeat("░", width-filled)))
	return b.String()
}

// blend mixes two hex colours in HCL space. Non-hex colours such as ANSI
// indexes are returned unblended.
func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	c1, err := colorful.Hex(string(from))
	if err != nil {
		return from
	}
	c2, err := colorful.Hex(string(to))
	if err != nil {
		return from
	}
	return lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
}
