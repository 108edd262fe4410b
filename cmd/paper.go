package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/prep"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var paperCmd = &cobra.Command{
	Use:   "paper",
	Short: "Generate a board-exam sample paper for the current subject",
	Long: `Generate a full board-style sample question paper for your class,
board and current subject. The paper is rendered as Markdown; use --output to
also save the raw text.`,
	RunE: runPaper,
}

func init() {
	paperCmd.Flags().StringP("output", "o", "", "Also write the paper's Markdown to this file")
}

func runPaper(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sc := a.session.Context()
	if sc.Subject == "" {
		return fmt.Errorf(`no subject set; run "studybuddy study --subject <subject> --topic <topic>" first`)
	}
	profile := a.session.Profile()

	gw, err := a.gateway(cmd.Context())
	if err != nil {
		return err
	}
	ctrl := prep.NewController(gw, a.log)

	fmt.Printf("Generating a %s Class %s %s sample paper...\n\n", profile.Board, profile.ClassName, sc.Subject)
	paper, err := ctrl.Generate(cmd.Context(), profile, sc)
	if err != nil {
		fmt.Println(theme.Render(theme.Warning, "Failed to generate the paper. Please try again."))
		return err
	}

	printHeader(fmt.Sprintf("%s Board Exam: %s", profile.Board, sc.Subject), profile)
	fmt.Println(theme.Render(theme.Subtitle, "Max Marks: 80  |  Time: 3 Hours"))
	fmt.Println()

	md, err := theme.NewMarkdownRenderer(theme.DefaultWrap)
	if err != nil {
		a.log.Warn("markdown renderer unavailable", "error", err)
	}
	fmt.Print(md.Render(paper))

	if output != "" {
		if err := os.WriteFile(output, []byte(paper), 0o644); err != nil {
			return fmt.Errorf("write paper: %w", err)
		}
		fmt.Printf("\nSaved to %s\n", output)
	}
	return nil
}
