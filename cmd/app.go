package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// app bundles the dependencies shared by the study commands.
type app struct {
	v         *viper.Viper
	log       *logger.Logger
	db        *store.Store
	persister *session.SnapshotPersister
	session   *session.Store
}

// openApp resolves configuration, opens the database and restores the
// persisted session. The LLM provider is built on demand by gateway.
func openApp(cmd *cobra.Command) (*app, error) {
	v, err := viperForCmd(cmd)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(v)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	dbPath, err := resolveDBPath(v.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "path", dbPath)

	persister := session.NewSnapshotPersister(db.SnapshotRepo())
	sess, err := session.Open(cmd.Context(), persister, persister, log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &app{v: v, log: log, db: db, persister: persister, session: sess}, nil
}

// gateway builds the LLM provider chain and the generation gateway on top
// of it. Requests are recorded in the event log.
func (a *app) gateway(ctx context.Context) (*studygen.Gateway, error) {
	cfg := llmConfig(a.v)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	provider, err := llm.NewProvider(ctx, cfg, a.db.EventRepo(), a.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}

	gcfg := studygen.DefaultConfig()
	gcfg.Temperature = cfg.Temperature
	if a.v.IsSet("quiz.questions") {
		gcfg.QuestionCount = a.v.GetInt("quiz.questions")
	}
	return studygen.New(provider, gcfg, a.log), nil
}

// requireContext fails when no subject and topic have been chosen.
func (a *app) requireContext() (session.Context, error) {
	sc := a.session.Context()
	if !sc.Ready() {
		return sc, fmt.Errorf(`no study context set; run "studybuddy study --subject <subject> --topic <topic>" first`)
	}
	return sc, nil
}

func (a *app) Close() {
	a.log.Sync()
	a.db.Close()
}
