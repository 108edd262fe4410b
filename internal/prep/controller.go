// Package prep generates board-exam practice papers.
package prep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// ErrGenerationFailed is returned when no paper could be generated. The
// previous paper is kept.
var ErrGenerationFailed = errors.New("failed to generate paper")

// Generator produces board papers.
type Generator interface {
	GenerateBoardPaper(ctx context.Context, input studygen.PaperInput) (string, error)
}

// Controller generates papers and remembers the last one that succeeded.
type Controller struct {
	gen Generator
	log *logger.Logger

	mu    sync.Mutex
	paper string
}

// NewController creates a Controller. log may be nil.
func NewController(gen Generator, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{gen: gen, log: log}
}

// Generate creates a paper for the profile's class and board and the
// context's subject.
func (c *Controller) Generate(ctx context.Context, profile session.Profile, sc session.Context) (string, error) {
	input := studygen.PaperInput{
		ClassName: profile.ClassName,
		Subject:   sc.Subject,
		Board:     profile.Board,
	}

	paper, err := c.gen.GenerateBoardPaper(ctx, input)
	if err != nil {
		c.log.Warn("board paper generation failed", "subject", input.Subject, "error", err)
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	c.mu.Lock()
	c.paper = paper
	c.mu.Unlock()

	c.log.Info("board paper generated", "subject", input.Subject, "board", input.Board, "bytes", len(paper))
	return paper, nil
}

// Paper returns the last successfully generated paper, or "".
func (c *Controller) Paper() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paper
}
