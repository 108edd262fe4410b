package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// geminiModels maps friendly names to Gemini model IDs.
var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.0-flash",
	"gemini-pro":   "gemini-2.0-pro",
}

// GeminiProvider implements Provider on the Gemini API. JSONMode maps to
// the application/json response MIME type.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client: client,
		model:  resolveModel(cfg.Model, geminiModels),
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	system, msgs := splitSystem(req)

	result, err := p.client.Models.GenerateContent(ctx, p.model, buildGeminiContents(msgs), geminiConfig(req, system))
	if err != nil {
		return nil, mapGeminiError(err)
	}
	return geminiResponse(p.model, result)
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// geminiConfig translates a Request. The temperature is always sent, so a
// configured 0 means deterministic output rather than the model default.
func geminiConfig(req Request, system string) *genai.GenerateContentConfig {
	temp := float32(req.Temperature)
	config := &genai.GenerateContentConfig{Temperature: &temp}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if req.JSONMode {
		config.ResponseMIMEType = "application/json"
	}
	return config
}

func buildGeminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

// geminiResponse takes the first candidate's text. A blocked prompt or a
// response without candidates is ErrNoContent.
func geminiResponse(model string, result *genai.GenerateContentResponse) (*Response, error) {
	if result == nil {
		return nil, ErrNoContent
	}
	if fb := result.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrNoContent, fb.BlockReason)
	}
	if len(result.Candidates) == 0 {
		return nil, ErrNoContent
	}

	resp := &Response{
		Content:    result.Text(),
		Model:      model,
		StopReason: "end",
	}
	if result.ModelVersion != "" {
		resp.Model = result.ModelVersion
	}
	if result.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		resp.StopReason = "max_tokens"
	}
	if u := result.UsageMetadata; u != nil {
		resp.Usage = Usage{
			InputTokens:  int(u.PromptTokenCount),
			OutputTokens: int(u.CandidatesTokenCount),
			TotalTokens:  int(u.TotalTokenCount),
		}
	}
	return resp, nil
}

// mapGeminiError converts SDK errors to *TransportError. The SDK has
// returned APIError both by value and by pointer across releases.
func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{Status: apiErr.Code, Body: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &TransportError{Status: apiErrPtr.Code, Body: apiErrPtr.Message, Err: err}
	}
	return &TransportError{Err: err}
}
