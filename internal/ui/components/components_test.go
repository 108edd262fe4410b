package components

import (
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/studygen"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

func plainTheme(t *testing.T) {
	t.Helper()
	prev := theme.Plain()
	theme.SetPlain(true)
	t.Cleanup(func() { theme.SetPlain(prev) })
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"a", 0, true},
		{"B", 1, true},
		{" d ", 3, true},
		{"3", 2, true},
		{"e", 0, false},
		{"5", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseOption(tt.in, 4)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseOption(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

var sample = studygen.Question{
	Text:               "SI unit of force?",
	Options:            []string{"Joule", "Newton", "Watt", "Pascal"},
	CorrectAnswerIndex: 1,
	Explanation:        "F = ma, measured in newtons.",
}

func TestQuestionView_Unanswered(t *testing.T) {
	plainTheme(t)

	out := QuestionView{Number: 1, Total: 5, Question: sample}.View()
	for _, want := range []string{"Question 1 of 5", "SI unit of force?", "A)  Joule", "D)  Pascal"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "newtons") {
		t.Error("explanation must stay hidden before answering")
	}
}

func TestQuestionView_Revealed(t *testing.T) {
	plainTheme(t)

	wrong := 2
	out := QuestionView{Number: 2, Total: 5, Question: sample, Chosen: &wrong}.View()
	for _, want := range []string{"B)  Newton  ✓", "C)  Watt  ✗", "Not quite.", "measured in newtons"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	right := 1
	out = QuestionView{Number: 2, Total: 5, Question: sample, Chosen: &right}.View()
	if !strings.Contains(out, "Correct!") {
		t.Errorf("view missing Correct!:\n%s", out)
	}
}

func TestProgressBar_Plain(t *testing.T) {
	plainTheme(t)

	out := NewProgressBar("Score", 0.5, true, 31).View()
	if !strings.Contains(out, "Score  [") || !strings.Contains(out, "50%") {
		t.Errorf("progress bar = %q", out)
	}
	if strings.Count(out, "#") != strings.Count(out, "-") {
		t.Errorf("half-full bar should be balanced: %q", out)
	}
}
