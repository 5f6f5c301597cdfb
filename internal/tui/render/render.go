// Package render draws the explorer's header and status line.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/molmark/internal/colors"
)

// HeaderState defines the inputs needed to render the header.
type HeaderState struct {
	Title       string
	Granularity string
	Width       int
}

// StatusState defines the inputs needed to render the status line.
type StatusState struct {
	Residue     string
	Highlighted string
	Selected    int
	Message     string
	// Warning renders Message in the warning color.
	Warning bool
}

// Header renders the title and the active granularity.
func Header(state HeaderState) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ansiColorNumber(colors.Blue)))
	granularityStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := titleStyle.Render(state.Title)
	granularity := granularityStyle.Render("granularity: " + state.Granularity)

	gap := state.Width - lipgloss.Width(title) - lipgloss.Width(granularity)
	if gap < 2 {
		gap = 2
	}
	return title + strings.Repeat(" ", gap) + granularity
}

// Status renders the cursor residue, the highlight and the selection size.
func Status(state StatusState) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	parts := []string{
		fmt.Sprintf("residue %s", state.Residue),
		fmt.Sprintf("highlight %s", orNone(state.Highlighted)),
		fmt.Sprintf("selected %d", state.Selected),
	}
	line := strings.Join(parts, "  ")
	if state.Message != "" {
		color := colors.Cyan
		if state.Warning {
			color = colors.Yellow
		}
		msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ansiColorNumber(color)))
		line += "  " + msgStyle.Render(state.Message)
	}
	return style.Render(line)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// ansiColorNumber extracts the color number from an ANSI escape sequence.
// Example: "\033[0;34m" -> "34"
func ansiColorNumber(ansi string) string {
	if len(ansi) < 2 {
		return ""
	}
	lastSemicolon := strings.LastIndex(ansi, ";")
	if lastSemicolon == -1 {
		return ""
	}
	return ansi[lastSemicolon+1 : len(ansi)-1]
}
