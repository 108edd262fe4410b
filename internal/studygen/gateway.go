// Package studygen turns study context into prompts, sends them through an
// llm.Provider and converts the replies into typed quiz, paper, chat and
// grade results.
package studygen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/logger"
)

// Gateway is the single entry point for generated study content. It never
// retries; a failed call is reported as *GenerationError.
type Gateway struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates a Gateway on top of provider. log may be nil.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = DefaultConfig().QuestionCount
	}
	return &Gateway{provider: provider, config: cfg, log: log}
}

// GenerateQuiz asks for a set of multiple-choice questions. The number of
// questions returned is whatever the model produced.
func (g *Gateway) GenerateQuiz(ctx context.Context, input QuizInput) ([]Question, error) {
	const op = "generate quiz"
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	raw, err := g.complete(ctx, op, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizPrompt(input, g.config.QuestionCount)},
		},
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	v, err := decodeLoose(raw)
	if err != nil {
		return nil, g.fail(op, raw, err)
	}

	var questions []Question
	if err := decodeInto(questionListSchema, unwrapQuestions(v), &questions); err != nil {
		return nil, g.fail(op, raw, err)
	}
	return questions, nil
}

// GenerateBoardPaper returns a Markdown exam paper verbatim. An empty board
// means DefaultBoard.
func (g *Gateway) GenerateBoardPaper(ctx context.Context, input PaperInput) (string, error) {
	const op = "generate board paper"
	ctx = llm.WithPurpose(ctx, llm.PurposePaper)

	return g.complete(ctx, op, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildPaperPrompt(input)},
		},
	})
}

// ChatWithTutor sends one tutoring turn. contextSummary is embedded in the
// system instruction. The reply is returned verbatim.
func (g *Gateway) ChatWithTutor(ctx context.Context, message, contextSummary string) (string, error) {
	const op = "chat with tutor"
	ctx = llm.WithPurpose(ctx, llm.PurposeChat)

	return g.complete(ctx, op, llm.Request{
		System: buildTutorSystemPrompt(contextSummary),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: message},
		},
	})
}

// GradeAnswer scores a free-text answer on a 0-10 scale.
func (g *Gateway) GradeAnswer(ctx context.Context, question, userAnswer string) (*Grade, error) {
	const op = "grade answer"
	ctx = llm.WithPurpose(ctx, llm.PurposeGrade)

	raw, err := g.complete(ctx, op, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGradePrompt(question, userAnswer)},
		},
		JSONMode: true,
	})
	if err != nil {
		return nil, err
	}

	v, err := decodeLoose(raw)
	if err != nil {
		return nil, g.fail(op, raw, err)
	}

	var grade Grade
	if err := decodeInto(gradeSchema, v, &grade); err != nil {
		return nil, g.fail(op, raw, err)
	}
	return &grade, nil
}

// complete performs the transport call and returns the reply text.
func (g *Gateway) complete(ctx context.Context, op string, req llm.Request) (string, error) {
	req.Temperature = g.config.Temperature
	req.MaxTokens = g.config.MaxTokens

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		var te *llm.TransportError
		if !errors.As(err, &te) {
			err = &llm.TransportError{Err: err}
		}
		return "", &GenerationError{Op: op, Err: err}
	}
	return resp.Content, nil
}

func (g *Gateway) fail(op, raw string, err error) error {
	g.log.Warn("discarding malformed model reply",
		"op", op,
		"reply_bytes", len(raw),
		"error", err,
	)
	return &GenerationError{Op: op, Raw: raw, Err: fmt.Errorf("malformed reply: %w", err)}
}
