// Package layout renders the header bar and key-hint footer framing each
// command's output.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Width is the frame width used when the terminal size is unknown.
const Width = 80

// AppName is shown on the left of the header.
const AppName = "StudyBuddy"

// KeyHint represents an input hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// RenderHeader renders the header bar: app name, title, and a right-hand
// status such as the student's class and board.
func RenderHeader(title, status string, width int) string {
	if theme.Plain() {
		parts := []string{AppName, title}
		if status != "" {
			parts = append(parts, status)
		}
		line := strings.Join(parts, " | ")
		return line + "\n" + strings.Repeat("=", min(max(len(line), 1), width))
	}

	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  " + AppName)

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	// Calculate spacing
	leftLen := lipgloss.Width(left)
	centerLen := lipgloss.Width(center)
	rightLen := lipgloss.Width(right)

	innerWidth := max(width-4, 0) // border padding

	leftGap := max((innerWidth-centerLen)/2-leftLen, 1)
	rightGap := max(innerWidth-leftLen-leftGap-centerLen-rightLen, 1)

	content := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFooter renders the input hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		if theme.Plain() {
			parts = append(parts, h.Key+" "+h.Description)
			continue
		}
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	content := "  " + strings.Join(parts, "   ")
	if theme.Plain() {
		return content
	}

	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}
