// Package assistant implements the conversational action dispatcher: it
// turns one user utterance into at most one persisted side effect, delegating
// language understanding to an external model behind the Completer interface.
package assistant

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// Completer is the pluggable intent-classifier boundary: text in,
// structured-action-or-text out (as raw model text). Implementations must be
// safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// GeminiCompleter calls the Gemini chat-completion API with fixed sampling
// parameters. The client is constructed once per process and injected.
type GeminiCompleter struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

const (
	completionTemperature     = 0.7
	completionMaxOutputTokens = 1500
)

// NewGeminiCompleter creates a Gemini-backed completer.
func NewGeminiCompleter(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiCompleter{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Complete sends the system prompt and one user turn to the model and returns
// its raw text. Timeouts surface as ordinary errors; the dispatcher treats
// them like any other model failure.
func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: user}},
		},
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		Temperature:       genai.Ptr(float32(completionTemperature)),
		MaxOutputTokens:   completionMaxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
