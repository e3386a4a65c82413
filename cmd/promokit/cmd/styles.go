package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	dryRunStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// row is one label/value line of a summary
type row struct {
	label string
	value string
}

// renderSummary draws a boxed block of aligned label/value rows
func renderSummary(title string, dryRun bool, rows []row) string {
	width := 0
	for _, r := range rows {
		if len(r.label) > width {
			width = len(r.label)
		}
	}

	lines := make([]string, 0, len(rows)+1)
	heading := titleStyle.Render(title)
	if dryRun {
		heading += " " + dryRunStyle.Render("(dry run)")
	}
	lines = append(lines, heading)
	for _, r := range rows {
		label := labelStyle.Width(width + 2).Render(r.label + ":")
		lines = append(lines, label+valueStyle.Render(r.value))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

func printSummary(w io.Writer, title string, dryRun bool, rows ...row) {
	fmt.Fprintln(w, renderSummary(title, dryRun, rows))
}
