package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
)

// clearLLMEnv unsets the vendor key variables so DiscoverConfig is
// deterministic.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GROQ_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

// testCmd returns a command carrying fresh copies of the global flags,
// parsed from args.
func testCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addGlobalFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLLMConfigDefaults(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())

	v, err := viperForCmd(testCmd(t))
	require.NoError(t, err)

	cfg := llmConfig(v)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.OpenAI.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.Error(t, cfg.Validate(), "no key configured")
}

func TestLLMConfigGroqKey(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("GROQ_API_KEY", "gsk-test")

	v, err := viperForCmd(testCmd(t))
	require.NoError(t, err)

	cfg := llmConfig(v)
	assert.Equal(t, "gsk-test", cfg.OpenAI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLLMConfigOverrides(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("STUDYBUDDY_LLM_API_KEY", "sk-env")
	t.Setenv("STUDYBUDDY_LLM_TEMPERATURE", "0.2")
	t.Setenv("STUDYBUDDY_LLM_TIMEOUT", "15s")
	t.Setenv("STUDYBUDDY_LLM_RETRY_MAX_ATTEMPTS", "3")

	v, err := viperForCmd(testCmd(t,
		"--llm-provider", "openrouter",
		"--llm-model", "some/model",
		"--llm-base-url", "http://localhost:9999/v1",
	))
	require.NoError(t, err)

	cfg := llmConfig(v)
	assert.Equal(t, "openrouter", cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenRouter.APIKey)
	assert.Equal(t, "some/model", cfg.OpenRouter.Model)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenRouter.BaseURL)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.True(t, cfg.Retry.Enabled())
}

func TestViperReadsConfigFile(t *testing.T) {
	clearLLMEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "studybuddy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log-level: debug
llm:
  provider: anthropic
  model: claude-sonnet
quiz:
  difficulty: Hard
`), 0o600))

	v, err := viperForCmd(testCmd(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, "debug", v.GetString("log-level"))
	assert.Equal(t, "Hard", v.GetString("quiz.difficulty"))

	cfg := llmConfig(v)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet", cfg.Anthropic.Model)
}

func TestViperMissingConfigFile(t *testing.T) {
	_, err := viperForCmd(testCmd(t, "--config", filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestStudyAndProfilePersist(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "study.db")

	run := func(args ...string) {
		t.Helper()
		rootCmd.SetArgs(append([]string{"--db", dbPath, "--plain"}, args...))
		require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	}

	run("study", "--subject", "Science", "--topic", "Acids and Bases", "--mode", "quiz")
	run("profile", "set", "--name", "Asha", "--class", "9")

	db, err := store.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()

	p := session.NewSnapshotPersister(db.SnapshotRepo())
	st, err := p.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, st)

	assert.Equal(t, session.Profile{Name: "Asha", ClassName: "9", Board: "CBSE"}, st.Profile)
	assert.Equal(t, session.Context{Subject: "Science", Topic: "Acids and Bases", Mode: session.ModeQuiz}, st.Context)
	assert.True(t, st.Quiz.Empty())
}

func TestQuizWithoutContextAsksForStudy(t *testing.T) {
	clearLLMEnv(t)
	t.Chdir(t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "study.db")

	rootCmd.SetArgs([]string{"--db", dbPath, "--plain", "quiz"})
	err := rootCmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "studybuddy study")
	assert.NotContains(t, err.Error(), "LLM provider not configured")
}
