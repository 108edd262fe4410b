// Package chat runs tutoring turns and records them in the session
// transcript.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/session"
)

// FallbackReply is recorded in place of the tutor's reply when a turn fails.
const FallbackReply = "I'm having trouble connecting right now. Please try again."

// defaultTopic stands in for an unset topic in the context summary.
const defaultTopic = "General"

// Tutor answers a student's message.
type Tutor interface {
	ChatWithTutor(ctx context.Context, message, contextSummary string) (string, error)
}

// Controller sends chat turns one at a time. Failures never reach the
// caller; they become a FallbackReply in the transcript.
type Controller struct {
	tutor Tutor
	store *session.Store
	log   *logger.Logger

	mu sync.Mutex
}

// NewController creates a Controller. log may be nil.
func NewController(tutor Tutor, store *session.Store, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{tutor: tutor, store: store, log: log}
}

// ContextSummary describes the student's situation to the tutor.
func ContextSummary(profile session.Profile, sc session.Context) string {
	topic := sc.Topic
	if topic == "" {
		topic = defaultTopic
	}
	return fmt.Sprintf("User is in Class %s, studying %s. Topic: %s.", profile.ClassName, sc.Subject, topic)
}

// Send appends the user's message, asks the tutor and appends the reply
// (or FallbackReply). It returns the recorded reply. Blank input is ignored
// and reported with ok == false.
func (c *Controller) Send(ctx context.Context, text string, profile session.Profile, sc session.Context) (reply session.ChatMessage, ok bool) {
	if strings.TrimSpace(text) == "" {
		return session.ChatMessage{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store.AppendMessage(session.ChatMessage{Role: session.RoleUser, Content: text})

	content, err := c.tutor.ChatWithTutor(ctx, text, ContextSummary(profile, sc))
	if err != nil {
		c.log.Warn("tutor reply failed, using fallback", "subject", sc.Subject, "error", err)
		content = FallbackReply
	}

	reply = session.ChatMessage{Role: session.RoleAI, Content: content}
	c.store.AppendMessage(reply)
	return reply, true
}

// Reset clears the transcript.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ClearTranscript()
}
