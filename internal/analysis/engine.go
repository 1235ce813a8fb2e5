// Package analysis builds the fixed analysis prompt, calls the completion
// API, and defensively parses its JSON-shaped answer.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrUpstream covers failed completion calls.
	ErrUpstream = errors.New("analysis API request failed")

	// ErrEmptyResponse means the call succeeded but produced no text.
	ErrEmptyResponse = errors.New("analysis API returned an empty response")
)

const (
	defaultModel = openai.GPT4oMini

	// Articles longer than this are truncated before prompting; the
	// analysis does not need the full tail of very long pieces.
	maxArticleChars = 24000
)

// CompletionClient is the slice of the OpenAI client the engine uses.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Engine is the AI analysis stage.
type Engine struct {
	client CompletionClient
	model  string
}

func NewEngine(client CompletionClient) *Engine {
	model := os.Getenv("ANALYSIS_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Engine{client: client, model: model}
}

// Generate runs one single-turn completion over the article and returns the
// raw response text. Parsing is a separate, fail-soft step.
func (e *Engine) Generate(ctx context.Context, text, title string) (string, error) {
	if len(text) > maxArticleChars {
		text = text[:maxArticleChars]
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(text, title),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}

	slog.Info("[AnalysisEngine] Completion received",
		slog.String("model", e.model),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)))

	return resp.Choices[0].Message.Content, nil
}
