package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a written answer out of 10",
	Example: `  studybuddy grade --question "State Newton's first law." \
      --answer "An object stays at rest or in uniform motion unless a force acts on it."`,
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().String("question", "", "The exam question (required)")
	gradeCmd.Flags().String("answer", "", "The student's answer (required)")
	_ = gradeCmd.MarkFlagRequired("question")
	_ = gradeCmd.MarkFlagRequired("answer")
}

func runGrade(cmd *cobra.Command, args []string) error {
	question, _ := cmd.Flags().GetString("question")
	answer, _ := cmd.Flags().GetString("answer")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	gw, err := a.gateway(cmd.Context())
	if err != nil {
		return err
	}

	grade, err := gw.GradeAnswer(cmd.Context(), question, answer)
	if err != nil {
		fmt.Println(theme.Render(theme.Warning, "Could not grade the answer. Please try again."))
		return err
	}

	bar := components.NewProgressBar("Score", float64(grade.Score)/10, false, 31)
	fmt.Println(bar.View())
	fmt.Printf("%s %d/10\n", theme.Render(theme.Label, "Score:"), grade.Score)
	fmt.Println(grade.Feedback)
	return nil
}
