package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a multiple-choice quiz on the current topic",
	Long: `Generate a quiz for the current subject and topic and answer it
question by question. Answer with a letter (A-D) or number (1-4); type q to
stop. Progress is saved after every answer, so an interrupted quiz can be
continued with --resume.

If generation fails the previous quiz is kept.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("difficulty", "", "Difficulty label sent to the model (default Medium)")
	quizCmd.Flags().Bool("resume", false, "Continue the saved quiz instead of generating a new one")
	quizCmd.Flags().Bool("review", false, "Show the saved quiz with answers and exit")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	resume, _ := cmd.Flags().GetBool("resume")
	review, _ := cmd.Flags().GetBool("review")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if review {
		return reviewQuiz(a.session.Quiz())
	}

	cfg := quiz.Config{Difficulty: a.v.GetString("quiz.difficulty")}
	if d, _ := cmd.Flags().GetString("difficulty"); d != "" {
		cfg.Difficulty = d
	}

	saved := a.session.Quiz()
	if resume && (saved.Empty() || saved.Finished) {
		return fmt.Errorf("no quiz in progress to resume")
	}

	ctrl := quiz.NewController(nil, a.session, cfg, a.log)
	if !resume {
		// The context hint comes before any LLM configuration error.
		sc, err := a.requireContext()
		if err != nil {
			return err
		}
		gw, err := a.gateway(cmd.Context())
		if err != nil {
			return err
		}
		ctrl = quiz.NewController(gw, a.session, cfg, a.log)

		fmt.Printf("Generating a %s quiz on %s: %s...\n\n", strings.ToLower(cfg.Difficulty), sc.Subject, sc.Topic)
		if err := ctrl.StartNewQuiz(cmd.Context(), a.session.Profile(), sc); err != nil {
			if errors.Is(err, quiz.ErrGenerationFailed) {
				fmt.Println(theme.Render(theme.Warning, "Failed to generate quiz. Please try again."))
			}
			return err
		}
	}

	sc := a.session.Context()
	printHeader(fmt.Sprintf("Quiz: %s", sc.Topic), a.session.Profile())
	fmt.Println(layout.RenderFooter(quizHints, layout.Width))
	fmt.Println()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		q := a.session.Quiz()
		if q.Finished {
			break
		}
		cur, ok := q.Current()
		if !ok {
			ctrl.Complete()
			break
		}

		view := components.QuestionView{Number: q.CurrentIndex + 1, Total: len(q.Questions), Question: cur}
		if chosen, answered := q.Answered(q.CurrentIndex); answered {
			// Resumed on a question that was already answered.
			view.Chosen = &chosen
			fmt.Println(view.View())
			ctrl.Next()
			continue
		}
		fmt.Println(view.View())

		choice, ok := readOption(scanner, len(cur.Options))
		if !ok {
			fmt.Println("\nProgress saved. Continue with: studybuddy quiz --resume")
			return nil
		}

		ctrl.SubmitAnswer(q.CurrentIndex, choice)
		view.Chosen = &choice
		fmt.Println()
		fmt.Println(view.View())
		ctrl.Next()
	}

	printResult(a.session.Quiz())
	return nil
}

var quizHints = []layout.KeyHint{
	{Key: "A-D", Description: "answer"},
	{Key: "1-4", Description: "answer"},
	{Key: "q", Description: "save and quit"},
}

// readOption prompts until a valid option is entered. It returns false when
// the student quits or input ends.
func readOption(scanner *bufio.Scanner, count int) (int, bool) {
	for {
		fmt.Print(theme.Render(theme.Hint, "Your answer (A-D, q to quit): "))
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			return 0, false
		}
		in := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(in, "q") {
			return 0, false
		}
		if opt, ok := components.ParseOption(in, count); ok {
			return opt, true
		}
		fmt.Println("Please enter one of A, B, C, D.")
	}
}

func printResult(q session.Quiz) {
	fmt.Println(theme.Render(theme.Title, "Quiz Completed!"))
	bar := components.NewProgressBar("Score", float64(q.Percentage())/100, true, 31)
	fmt.Println(bar.View())
	fmt.Printf("You scored %d out of %d.\n", q.Score, len(q.Questions))
}

func reviewQuiz(q session.Quiz) error {
	if q.Empty() {
		fmt.Println("No quiz yet.")
		return nil
	}
	for i, question := range q.Questions {
		view := components.QuestionView{Number: i + 1, Total: len(q.Questions), Question: question}
		if chosen, ok := q.Answered(i); ok {
			view.Chosen = &chosen
		}
		fmt.Println(view.View())
	}
	if q.Finished {
		printResult(q)
	} else {
		fmt.Printf("In progress: question %d of %d, score %d.\n", q.CurrentIndex+1, len(q.Questions), q.Score)
	}
	return nil
}
