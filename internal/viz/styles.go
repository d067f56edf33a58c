package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorAccent = lipgloss.Color("#5fd7ff")
	colorMuted  = lipgloss.Color("#7a7a99")
	colorGood   = lipgloss.Color("#5fff87")
	colorWarn   = lipgloss.Color("#ffaf00")
	colorBad    = lipgloss.Color("#ff5f5f")
)

var (
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Padding(0, 2)

	Title = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	Muted = lipgloss.NewStyle().Foreground(colorMuted)

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(colorGood)
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(colorWarn)
	ErrorText     = lipgloss.NewStyle().Bold(true).Foreground(colorBad)

	MetricLabel = lipgloss.NewStyle().Foreground(colorMuted).Width(16)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(colorMuted)

	barDone = lipgloss.NewStyle().Foreground(colorAccent)
	barTodo = lipgloss.NewStyle().Foreground(colorMuted)
)

// ProgressBar renders fraction (clamped to [0, 1]) of width cells.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = max(0, min(filled, width))
	return barDone.Render(strings.Repeat("━", filled)) + barTodo.Render(strings.Repeat("─", width-filled))
}

// RenderSummary draws a titled panel of label/value rows. Rows are sorted
// by label.
func RenderSummary(title string, header string, values map[string]float64) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(Title.Render(title) + "\n")
	if header != "" {
		b.WriteString(Muted.Render(header) + "\n")
	}
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(MetricLabel.Render(k) + MetricValue.Render(fmt.Sprintf("%.6g", values[k])) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// RenderError formats a failed run for the terminal.
func RenderError(err error) string {
	return ErrorText.Render("error: ") + err.Error()
}
