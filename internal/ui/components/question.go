package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// OptionLabels are the letters shown next to each option.
var OptionLabels = []string{"A", "B", "C", "D"}

// ParseOption converts a typed label ("b", "B" or "2") to an option index.
func ParseOption(s string, count int) (int, bool) {
	s = strings.TrimSpace(strings.ToUpper(s))
	for i, label := range OptionLabels[:min(count, len(OptionLabels))] {
		if s == label || s == fmt.Sprint(i+1) {
			return i, true
		}
	}
	return 0, false
}

// QuestionView renders one quiz question. Once Chosen is set the correct
// option and the explanation are revealed.
type QuestionView struct {
	Number   int // 1-based
	Total    int
	Question studygen.Question
	Chosen   *int
}

// View renders the question.
func (v QuestionView) View() string {
	var b strings.Builder

	header := fmt.Sprintf("Question %d of %d", v.Number, v.Total)
	b.WriteString(theme.Render(theme.Subtitle, header) + "\n")
	b.WriteString(theme.Render(theme.Body.Bold(true), v.Question.Text) + "\n\n")

	for i, opt := range v.Question.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		line := fmt.Sprintf("  %s)  %s", label, opt)

		switch {
		case v.Chosen == nil:
			b.WriteString(theme.Render(theme.Body, line))
		case i == v.Question.CorrectAnswerIndex:
			b.WriteString(theme.Render(theme.Correct, line+"  ✓"))
		case i == *v.Chosen:
			b.WriteString(theme.Render(theme.Incorrect, line+"  ✗"))
		default:
			b.WriteString(theme.Render(theme.Subtitle, line))
		}
		b.WriteString("\n")
	}

	if v.Chosen != nil {
		b.WriteString("\n")
		if v.Question.IsCorrect(*v.Chosen) {
			b.WriteString(theme.Render(theme.Correct, "Correct!"))
		} else {
			b.WriteString(theme.Render(theme.Incorrect, "Not quite."))
		}
		if v.Question.Explanation != "" {
			b.WriteString(" " + theme.Render(theme.Hint, v.Question.Explanation))
		}
		b.WriteString("\n")
	}

	return b.String()
}
