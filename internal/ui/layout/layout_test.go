package layout

import (
	"strings"
	"testing"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

func TestRenderHeaderPlain(t *testing.T) {
	prev := theme.Plain()
	theme.SetPlain(true)
	defer theme.SetPlain(prev)

	got := RenderHeader("Quiz", "Class 10 · CBSE", Width)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), got)
	}
	if lines[0] != "StudyBuddy | Quiz | Class 10 · CBSE" {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Trim(lines[1], "=") != "" {
		t.Errorf("underline = %q", lines[1])
	}

	if got := RenderHeader("Status", "", Width); !strings.HasPrefix(got, "StudyBuddy | Status\n") {
		t.Errorf("header without status = %q", got)
	}
}

func TestRenderFooterPlain(t *testing.T) {
	prev := theme.Plain()
	theme.SetPlain(true)
	defer theme.SetPlain(prev)

	got := RenderFooter([]KeyHint{{"A-D", "answer"}, {"q", "quit"}}, Width)
	if got != "  A-D answer   q quit" {
		t.Errorf("footer = %q", got)
	}
}

func TestRenderHeaderStyledContainsParts(t *testing.T) {
	prev := theme.Plain()
	theme.SetPlain(false)
	defer theme.SetPlain(prev)

	got := RenderHeader("Board Paper", "Class 9 · ICSE", Width)
	for _, want := range []string{AppName, "Board Paper", "Class 9 · ICSE"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q:\n%s", want, got)
		}
	}
}
