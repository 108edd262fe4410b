package llm

import (
	"context"
)

// Provider is the core abstraction for chat-completion transport.
// Consumers call Generate with a Request and receive the first completion's
// text. Providers never retry and never parse the content.
type Provider interface {
	// Generate issues a single non-streaming chat-completion request.
	// A non-success HTTP status or network failure is returned as
	// *TransportError.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system instruction. Sent as the first message with the
	// "system" role when non-empty.
	System string

	// Messages is the ordered conversation that follows the system message.
	Messages []Message

	// JSONMode asks the provider for JSON-constrained output
	// (response_format {"type":"json_object"} on OpenAI-compatible APIs).
	// Providers without a schema-less JSON mode ignore it.
	JSONMode bool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default in place.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 2.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Content is the first completion choice's message content, verbatim.
	Content string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
