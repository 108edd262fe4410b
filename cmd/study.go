package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study",
	Short: "Choose what to study",
	Long: `Set the subject and topic used by quiz, paper and chat.

The previous quiz and transcript are kept; they are replaced only when a new
quiz is generated or the transcript is cleared.`,
	Example: `  studybuddy study --subject Science --topic "Chemical Reactions" --mode quiz`,
	RunE:    runStudy,
}

func init() {
	studyCmd.Flags().String("subject", "", "Subject, e.g. Mathematics (required)")
	studyCmd.Flags().String("topic", "", "Topic within the subject (required)")
	studyCmd.Flags().String("mode", "", "Activity: quiz, prep or chat")
	_ = studyCmd.MarkFlagRequired("subject")
	_ = studyCmd.MarkFlagRequired("topic")
}

func runStudy(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	modeVal, _ := cmd.Flags().GetString("mode")

	mode, ok := session.ParseMode(strings.ToLower(modeVal))
	if !ok {
		return fmt.Errorf("invalid mode %q: must be quiz, prep or chat", modeVal)
	}

	sc := session.Context{
		Subject: strings.TrimSpace(subject),
		Topic:   strings.TrimSpace(topic),
		Mode:    mode,
	}
	if !sc.Ready() {
		return fmt.Errorf("subject and topic must not be blank")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.SetContext(sc)
	printContext(sc)

	switch mode {
	case session.ModeQuiz:
		fmt.Println(`Run "studybuddy quiz" to start.`)
	case session.ModePrep:
		fmt.Println(`Run "studybuddy paper" to generate a sample paper.`)
	case session.ModeChat:
		fmt.Println(`Run "studybuddy chat" to talk to the tutor.`)
	}
	return nil
}
