// Package llm condenses article text into a short summary via a
// chat-completion endpoint.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You summarize web pages. Respond with a 1-2 sentence summary that is clear and informative. Do not add commentary or preamble."

// Low temperature keeps repeated summaries of the same page close to
// deterministic; maxTokens bounds the output well above the 2-sentence
// target so the model is never cut off mid-sentence.
const (
	temperature = 0.3
	maxTokens   = 160
)

// Summarizer wraps the chat-completion client. Without an API key it
// reports unconfigured and is never called; the pipeline short-circuits
// to the not-configured fallback instead.
type Summarizer struct {
	client *openai.Client
	model  string
}

// NewSummarizer builds a Summarizer. baseURL overrides the provider
// endpoint (used by tests and self-hosted gateways); empty keeps the default.
func NewSummarizer(apiKey, baseURL, model string) *Summarizer {
	if apiKey == "" {
		return &Summarizer{}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Summarizer{client: openai.NewClientWithConfig(cfg), model: model}
}

func (s *Summarizer) Configured() bool {
	return s.client != nil
}

func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
