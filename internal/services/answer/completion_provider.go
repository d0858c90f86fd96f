// File: internal/services/answer/completion_provider.go
package answer

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are Pill-AI, a medicines information assistant for New Zealand.
Answer questions about medicines using trusted consumer medicine information.
Keep answers short and factual, mention when a pharmacist or GP should be consulted,
and never give a diagnosis.`

const simplifyInstruction = `Explain the answer in simple, plain language that a 12-year-old could understand.`

// CompletionProvider answers with one stateless chat completion. It keeps no
// conversation, so ThreadID is ignored and returned empty.
type CompletionProvider struct {
	config *Config
	client *openai.Client
	logger Logger
}

func NewCompletionProvider(config *Config, logger Logger) *CompletionProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &CompletionProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

func (p *CompletionProvider) Ask(ctx context.Context, req Request) (*Answer, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if req.Simplify {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: simplifyInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Question,
	})

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: p.config.Temperature,
		TopP:        p.config.TopP,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError("completion", ctx.Err())
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			p.logger.Error("answer source API error",
				"status", apiErr.HTTPStatusCode, "type", apiErr.Type, "message", apiErr.Message)
		}
		return nil, NewProviderError("completion", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &AnswerError{
			Type:      ErrTypeEmpty,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	p.logger.Debug("completion answer received", "model", p.config.Model, "chars", len(resp.Choices[0].Message.Content))
	return &Answer{Text: resp.Choices[0].Message.Content}, nil
}
