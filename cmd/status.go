package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the profile, study context and quiz progress",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.session.Snapshot()
	p := st.Profile
	printHeader("Status", p)
	fmt.Println(theme.Render(theme.Title, fmt.Sprintf("Hi %s!", p.Name)))
	fmt.Println()

	printContext(st.Context)
	fmt.Println()

	q := st.Quiz
	switch {
	case q.Empty():
		fmt.Println("Quiz:       none yet")
	case q.Finished:
		fmt.Printf("Quiz:       finished, %d/%d (%d%%)\n", q.Score, len(q.Questions), q.Percentage())
	default:
		answered := len(q.Answers)
		bar := components.NewProgressBar("Quiz", float64(answered)/float64(len(q.Questions)), false, 21)
		fmt.Printf("%s  %d/%d answered, score %d\n", bar.View(), answered, len(q.Questions), q.Score)
	}
	fmt.Printf("Transcript: %d messages\n", len(st.ChatHistory))
	return nil
}

func printContext(sc session.Context) {
	if !sc.Ready() {
		fmt.Println(theme.Render(theme.Hint, `No topic chosen. Run "studybuddy study --subject <subject> --topic <topic>".`))
		return
	}
	fmt.Printf("%s %s\n", theme.Render(theme.Label, "Subject:"), sc.Subject)
	fmt.Printf("%s %s\n", theme.Render(theme.Label, "Topic:  "), sc.Topic)
	if sc.Mode != session.ModeNone {
		fmt.Printf("%s %s\n", theme.Render(theme.Label, "Mode:   "), sc.Mode)
	}
}

// printHeader prints the header bar with the student's class and board.
func printHeader(title string, p session.Profile) {
	fmt.Println(layout.RenderHeader(title, fmt.Sprintf("Class %s · %s", p.ClassName, p.Board), layout.Width))
	fmt.Println()
}
