// Package quiz orchestrates quiz generation and answering on top of a
// session.Store.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// DefaultDifficulty is the difficulty requested when none is configured.
const DefaultDifficulty = "Medium"

var (
	// ErrGenerationFailed is returned when no quiz could be generated. The
	// previous quiz, if any, is left as it was.
	ErrGenerationFailed = errors.New("failed to generate quiz")

	// ErrSuperseded is returned by a generation that finished after a newer
	// one was started. Its result is discarded.
	ErrSuperseded = errors.New("quiz generation superseded by a newer request")
)

// Generator produces quiz questions.
type Generator interface {
	GenerateQuiz(ctx context.Context, input studygen.QuizInput) ([]studygen.Question, error)
}

// Config controls quiz generation.
type Config struct {
	Difficulty string
}

// Controller starts quizzes and routes answers to the session store.
// Only the most recently started generation may replace the quiz.
type Controller struct {
	gen    Generator
	store  *session.Store
	config Config
	log    *logger.Logger

	mu     sync.Mutex
	latest uint64
	cancel context.CancelFunc
}

// NewController creates a Controller. log may be nil.
func NewController(gen Generator, store *session.Store, cfg Config, log *logger.Logger) *Controller {
	if cfg.Difficulty == "" {
		cfg.Difficulty = DefaultDifficulty
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{gen: gen, store: store, config: cfg, log: log}
}

// generation identifies one StartNewQuiz call.
type generation struct {
	seq    uint64
	cancel context.CancelFunc
}

// begin cancels any in-flight generation and registers a new one.
func (c *Controller) begin(parent context.Context) (context.Context, generation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	c.latest++
	c.cancel = cancel
	return ctx, generation{seq: c.latest, cancel: cancel}
}

func (c *Controller) end(g generation) {
	c.mu.Lock()
	if c.latest == g.seq {
		c.cancel = nil
	}
	c.mu.Unlock()
	g.cancel()
}

// StartNewQuiz generates a quiz for the profile's class and the context's
// subject and topic, and starts it. On failure the current quiz is kept and
// an error wrapping ErrGenerationFailed is returned.
func (c *Controller) StartNewQuiz(ctx context.Context, profile session.Profile, sc session.Context) error {
	ctx, g := c.begin(ctx)
	defer c.end(g)

	input := studygen.QuizInput{
		ClassName:  profile.ClassName,
		Subject:    sc.Subject,
		Topic:      sc.Topic,
		Difficulty: c.config.Difficulty,
	}
	log := c.log.With(
		"generation_id", uuid.NewString(),
		"subject", input.Subject,
		"topic", input.Topic,
	)
	log.Debug("generating quiz", "class", input.ClassName, "difficulty", input.Difficulty)

	questions, err := c.gen.GenerateQuiz(ctx, input)

	// The check and the store update happen under one lock so a newer
	// generation cannot start in between.
	c.mu.Lock()
	current := c.latest == g.seq
	if current && err == nil {
		c.store.StartQuiz(questions)
	}
	c.mu.Unlock()

	if !current {
		log.Info("discarding superseded quiz generation")
		return ErrSuperseded
	}
	if err != nil {
		log.Warn("quiz generation failed", "error", err)
		return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	log.Info("quiz started", "questions", len(questions))
	return nil
}

// Cancel aborts the in-flight generation, if any.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// SubmitAnswer records option for question index. Re-answering is a no-op.
func (c *Controller) SubmitAnswer(index, option int) {
	c.store.AnswerCurrent(index, option)
}

// GoNext moves to the next question.
func (c *Controller) GoNext() {
	c.store.Advance()
}

// Complete finishes the quiz.
func (c *Controller) Complete() {
	c.store.Finish()
}

// Next finishes the quiz on its last question and moves on otherwise.
// It reports whether the quiz is now finished.
func (c *Controller) Next() bool {
	if c.store.Quiz().IsLast() {
		c.Complete()
		return true
	}
	c.GoNext()
	return false
}
