package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0.0-1.0
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar. With styling off the bar is drawn with
// '#' and '-'.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Render(theme.Body, p.Label) + "  "
	}

	barWidth := p.Width - len(p.Label) - 2
	if p.ShowPercent {
		barWidth -= 6 // "  100%"
	}
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	if theme.Plain() {
		result += "[" + strings.Repeat("#", filled) + strings.Repeat("-", empty) + "]"
	} else {
		result += theme.Render(theme.ProgressFilled, strings.Repeat(" ", filled)) +
			theme.Render(theme.ProgressEmpty, strings.Repeat(" ", empty))
	}

	if p.ShowPercent {
		result += theme.Render(theme.Subtitle, fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
