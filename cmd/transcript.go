package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/chat"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript",
	Short: "Show or clear the tutor transcript",
	RunE:  runTranscriptShow,
}

var transcriptShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the tutor transcript",
	RunE:  runTranscriptShow,
}

var transcriptClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all tutor messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		n := len(a.session.Transcript())
		chat.NewController(nil, a.session, a.log).Reset()
		fmt.Printf("Cleared %d messages.\n", n)
		return nil
	},
}

func init() {
	transcriptCmd.AddCommand(transcriptShowCmd)
	transcriptCmd.AddCommand(transcriptClearCmd)
}

func runTranscriptShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	msgs := a.session.Transcript()
	if len(msgs) == 0 {
		fmt.Println("No messages yet.")
		return nil
	}
	for _, m := range msgs {
		printMessage(nil, m)
	}
	return nil
}
