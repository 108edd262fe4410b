package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "studybuddy",
	Short: "AI study assistant for school students",
	Long: `studybuddy turns your class, subject and topic into practice quizzes,
board-style sample papers and a tutoring chat, powered by an LLM.

Set a study context with "studybuddy study", then run "quiz", "paper" or "chat".`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			theme.SetPlain(true)
		}
	},
	RunE: runStatus,
}

// ExecuteContext runs the root command. ctx is cancelled on interrupt, which
// aborts any in-flight LLM request.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(transcriptCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(pf *pflag.FlagSet) {
	pf.String("db", "", "Path to SQLite database file (overrides STUDYBUDDY_DB env var)")
	pf.String("config", "", "Path to a config file (default: ./studybuddy.yaml or ~/.config/studybuddy/studybuddy.yaml)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("llm-provider", "", "LLM provider: openai, anthropic, gemini, openrouter, mock")
	pf.String("llm-model", "", "Model name or alias")
	pf.String("llm-base-url", "", "Base URL of an OpenAI-compatible endpoint")
	pf.Bool("plain", false, "Disable colors and styling")
}

// resolveDBPath returns the database path using the db setting (flag,
// STUDYBUDDY_DB or config file), then the default XDG path.
func resolveDBPath(p string) (string, error) {
	if p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
