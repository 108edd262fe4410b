package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/chat"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the AI tutor about the current topic",
	Long: `Chat with the AI tutor. With a message argument a single turn is sent;
without one an interactive session starts. In the interactive session type
/clear to clear the transcript and /exit (or an empty line at EOF) to leave.

Every turn is saved to the transcript, including the fallback reply shown
when the tutor cannot be reached.`,
	Example: `  studybuddy chat "Why does iron rust?"
  studybuddy chat`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	gw, err := a.gateway(cmd.Context())
	if err != nil {
		return err
	}
	ctrl := chat.NewController(gw, a.session, a.log)

	md, err := theme.NewMarkdownRenderer(theme.DefaultWrap)
	if err != nil {
		a.log.Warn("markdown renderer unavailable", "error", err)
	}

	send := func(text string) {
		reply, ok := ctrl.Send(cmd.Context(), text, a.session.Profile(), a.session.Context())
		if ok {
			printMessage(md, reply)
		}
	}

	if len(args) > 0 {
		send(strings.Join(args, " "))
		return nil
	}

	sc := a.session.Context()
	title := "AI Tutor"
	if sc.Subject != "" {
		title = fmt.Sprintf("AI Tutor: %s", sc.Subject)
	}
	printHeader(title, a.session.Profile())
	fmt.Println(layout.RenderFooter([]layout.KeyHint{
		{Key: "/clear", Description: "start over"},
		{Key: "/exit", Description: "leave"},
	}, layout.Width))
	fmt.Println()

	for _, m := range a.session.Transcript() {
		printMessage(md, m)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Print(theme.Render(theme.UserBubble, "You: "))
		if !scanner.Scan() {
			fmt.Println()
			return nil
		}
		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			ctrl.Reset()
			fmt.Println(theme.Render(theme.Hint, "Transcript cleared."))
			continue
		}
		send(text)
		if cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
	}
}

func printMessage(md *theme.MarkdownRenderer, m session.ChatMessage) {
	if m.Role == session.RoleUser {
		fmt.Printf("%s %s\n", theme.Render(theme.UserBubble, "You:"), m.Content)
		return
	}
	fmt.Println(theme.Render(theme.TutorBubble, "Tutor:"))
	fmt.Println(md.Render(m.Content))
}
