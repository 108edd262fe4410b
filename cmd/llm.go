package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// knownPurposes are the labels the gateway attaches to requests.
var knownPurposes = []string{llm.PurposeQuiz, llm.PurposePaper, llm.PurposeChat, llm.PurposeGrade}

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
	Long: `Every request sent to the model is recorded with its purpose, token
usage, latency and outcome. Purposes: quiz, board-paper, tutor-chat, grade.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE:  runLLMList,
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE:  runLLMView,
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE:  runLLMStats,
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose: "+strings.Join(knownPurposes, ", "))
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")
	llmListCmd.Flags().Duration("since", 0, "Only show requests newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

func runLLMList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	purpose, _ := cmd.Flags().GetString("purpose")
	failed, _ := cmd.Flags().GetBool("failed")
	since, _ := cmd.Flags().GetDuration("since")

	if purpose != "" && !slices.Contains(knownPurposes, purpose) {
		return fmt.Errorf("unknown purpose %q: must be one of %s", purpose, strings.Join(knownPurposes, ", "))
	}

	opts := store.QueryOpts{Limit: limit, Purpose: purpose, FailedOnly: failed}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No LLM requests recorded.")
		return nil
	}

	fmt.Println(theme.Render(theme.Label, fmt.Sprintf("%-5s  %-19s  %-11s  %-28s  %6s  %6s  %7s  %s",
		"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Status")))
	fmt.Println(strings.Repeat("─", 100))

	for _, e := range events {
		fmt.Printf("%-5d  %-19s  %-11s  %-28s  %6d  %6d  %7d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			outcome(e),
		)
	}
	return nil
}

func runLLMView(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid ID %q: %w", args[0], err)
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get event: %w", err)
	}
	if e == nil {
		return fmt.Errorf("event %d not found", id)
	}

	field := func(name, value string) {
		fmt.Printf("%s %s\n", theme.Render(theme.Label, fmt.Sprintf("%-10s", name+":")), value)
	}
	field("ID", strconv.Itoa(e.ID))
	field("Request", e.RequestID)
	field("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	if c := llm.LookupCost(e.Model); c != nil {
		field("Cost", formatCost(c.Cost(e.InputTokens, e.OutputTokens)))
	}
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Outcome", outcome(*e))
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}

	section := func(title, body string) {
		sep := strings.Repeat("─", 60)
		fmt.Println(sep)
		fmt.Println(theme.Render(theme.Title, title))
		fmt.Println(sep)
		if body == "" {
			body = "(not captured)"
		}
		fmt.Println(body)
	}
	fmt.Println()
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
	return nil
}

func runLLMStats(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	stats, err := s.EventRepo().LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No LLM usage recorded yet.")
		return nil
	}

	rule := strings.Repeat("─", 72)

	fmt.Println(theme.Render(theme.Title, "Usage by Purpose"))
	fmt.Println(rule)
	fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	fmt.Println(rule)

	var total store.UsageStat
	for _, st := range stats {
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.InputTokens+st.OutputTokens, st.AvgLatencyMs)
		total.Calls += st.Calls
		total.InputTokens += st.InputTokens
		total.OutputTokens += st.OutputTokens
	}
	fmt.Println(rule)
	fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", total.Calls, total.InputTokens, total.OutputTokens, total.InputTokens+total.OutputTokens)

	byModel, err := s.EventRepo().LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}

	fmt.Println()
	fmt.Println(theme.Render(theme.Title, "Estimated Cost (USD)"))
	fmt.Println(rule)
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(rule)

	var totalCost float64
	var unpriced []string
	for _, mu := range byModel {
		cost := "?"
		if c := llm.LookupCost(mu.Model); c != nil {
			usd := c.Cost(mu.InputTokens, mu.OutputTokens)
			totalCost += usd
			cost = formatCost(usd)
		} else {
			unpriced = append(unpriced, mu.Model)
		}
		fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
			truncate(mu.Model, 32), mu.Calls, mu.InputTokens, mu.OutputTokens, cost)
	}

	fmt.Println(rule)
	label := "TOTAL"
	if len(unpriced) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))
	if len(unpriced) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
	}
	return nil
}

// outcome summarizes an event's result: "ok", the HTTP status, or "error"
// for network failures.
func outcome(e store.LLMEvent) string {
	switch {
	case e.Success:
		return theme.Render(theme.Correct, "ok")
	case e.StatusCode > 0:
		return theme.Render(theme.Incorrect, strconv.Itoa(e.StatusCode))
	default:
		return theme.Render(theme.Incorrect, "error")
	}
}

// openStore opens the database without restoring the session.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	v, err := viperForCmd(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(v.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
