// File: internal/services/translate/llm_provider.go
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const translatePrompt = `Translate the following medicine information from English into %s.
Keep drug names, doses and numbers unchanged. Return only the translation.`

// LLMProvider translates with a chat completion model.
type LLMProvider struct {
	config *Config
	client *openai.Client
	logger Logger
}

func NewLLMProvider(config *Config, logger Logger) *LLMProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &LLMProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

func (p *LLMProvider) Translate(ctx context.Context, text string, target Language) (string, error) {
	if target.IsSource() || strings.TrimSpace(text) == "" {
		return text, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(translatePrompt, target.Name)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			p.logger.Error("Translation API error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
			return "", &TranslationError{Type: ErrTypeProvider, Code: apiErr.HTTPStatusCode, Message: apiErr.Message, Cause: err}
		}
		return "", &TranslationError{Type: ErrTypeNetwork, Message: "translation request failed", Cause: err}
	}

	if len(resp.Choices) == 0 {
		return "", &TranslationError{Type: ErrTypeEmpty, Message: "no choices in translation response"}
	}
	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	translation = strings.Trim(translation, "\"'")
	if translation == "" {
		p.logger.Warn("Translation API returned empty result", "target", target.Code)
		return "", &TranslationError{Type: ErrTypeEmpty, Message: "translation returned empty result"}
	}

	p.logger.Debug("Translation completed", "target", target.Code, "model", p.config.Model)
	return translation, nil
}
