package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the study session",
	Long: `Delete the saved profile, study context, quiz and transcript. With
--events the LLM request log is purged as well.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, _ := cmd.Flags().GetBool("events")

		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.persister.Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Session reset.")

		if events {
			n, err := a.db.EventRepo().Purge(ctx)
			if err != nil {
				return fmt.Errorf("purge events: %w", err)
			}
			fmt.Printf("Deleted %d LLM events.\n", n)
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("events", false, "Also delete recorded LLM requests")
}
