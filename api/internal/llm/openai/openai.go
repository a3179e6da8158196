// Package openai is the engine for OpenAI-compatible chat completion APIs:
// OpenAI itself, Groq and DeepSeek.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
)

type Engine struct {
	name   string
	Model  string
	client *goopenai.Client
}

// New builds an engine registered as name. An empty baseURL keeps the OpenAI default.
func New(name, key, model, baseURL string, timeout time.Duration) *Engine {
	cfg := goopenai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Engine{
		name:   name,
		Model:  model,
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (e *Engine) Name() string { return e.name }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s completion %d: %w", e.name, apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("%s completion: %w", e.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s completion: empty response", e.name)
	}
	return resp.Choices[0].Message.Content, nil
}
