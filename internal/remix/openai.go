package remix

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jacksmith/mealmix/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAI remixes recipes with the Chat Completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	hasKey bool
}

// NewOpenAI creates a client for opts.Model. An empty opts.BaseURL uses the
// public OpenAI endpoint. A missing key is reported when Remix is called.
func NewOpenAI(opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  opts.Model,
		hasKey: opts.APIKey != "",
	}
}

// Remix sends the prompt for r and theme and returns the first choice.
func (o *OpenAI) Remix(ctx context.Context, r *model.Recipe, theme string) (string, error) {
	if !o.hasKey {
		return "", ErrNoCredential
	}
	prompt, err := BuildPrompt(r, theme)
	if err != nil {
		return "", err
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
