// File: internal/services/answer/assistant_provider.go
package answer

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// AssistantProvider talks to a hosted assistant: the question is appended to a
// thread, a run is started and polled until it reaches a terminal state, and
// the messages produced by that run form the answer.
type AssistantProvider struct {
	config *Config
	client *openai.Client
	logger Logger
}

func NewAssistantProvider(config *Config, logger Logger) *AssistantProvider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	return &AssistantProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
		logger: logger,
	}
}

func (p *AssistantProvider) Ask(ctx context.Context, req Request) (*Answer, error) {
	threadID := req.ThreadID
	if threadID == "" {
		thread, err := p.client.CreateThread(ctx, openai.ThreadRequest{})
		if err != nil {
			return nil, p.wrap(ctx, "create_thread", "failed to create thread", err)
		}
		threadID = thread.ID
		p.logger.Debug("assistant thread created", "thread_id", threadID)
	}

	if _, err := p.client.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Question,
	}); err != nil {
		return nil, p.wrap(ctx, "create_message", "failed to add question to thread", err)
	}

	runReq := openai.RunRequest{AssistantID: p.config.AssistantID}
	if req.Simplify {
		runReq.AdditionalInstructions = simplifyInstruction
	}
	run, err := p.client.CreateRun(ctx, threadID, runReq)
	if err != nil {
		return nil, p.wrap(ctx, "create_run", "failed to start run", err)
	}

	run, err = p.waitForRun(ctx, threadID, run)
	if err != nil {
		return nil, err
	}
	if run.Status != openai.RunStatusCompleted {
		msg := "run ended with status " + string(run.Status)
		if run.LastError != nil && run.LastError.Message != "" {
			msg = run.LastError.Message
		}
		p.logger.Warn("assistant run did not complete", "thread_id", threadID, "run_id", run.ID, "status", run.Status)
		return nil, &AnswerError{
			Type:      ErrTypeRunFailed,
			Operation: "run",
			Message:   msg,
			RunStatus: string(run.Status),
		}
	}

	text, err := p.runOutput(ctx, threadID, run.ID)
	if err != nil {
		return nil, err
	}
	return &Answer{Text: text, ThreadID: threadID, RunID: run.ID}, nil
}

// runOutput joins the text of the assistant messages created by runID, oldest first.
func (p *AssistantProvider) runOutput(ctx context.Context, threadID, runID string) (string, error) {
	limit := 20
	order := "asc"
	list, err := p.client.ListMessage(ctx, threadID, &limit, &order, nil, nil, &runID)
	if err != nil {
		return "", p.wrap(ctx, "list_messages", "failed to read run output", err)
	}

	var parts []string
	for _, msg := range list.Messages {
		if msg.Role != openai.ChatMessageRoleAssistant {
			continue
		}
		for _, content := range msg.Content {
			if content.Text != nil && content.Text.Value != "" {
				parts = append(parts, content.Text.Value)
			}
		}
	}
	if len(parts) == 0 {
		return "", &AnswerError{Type: ErrTypeEmpty, Operation: "list_messages", Message: "assistant returned no text"}
	}
	return strings.Join(parts, "\n\n"), nil
}

// cancelRun asks the service to stop a run we gave up on. Best effort only.
func (p *AssistantProvider) cancelRun(threadID, runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := p.client.CancelRun(ctx, threadID, runID); err != nil {
		p.logger.Warn("could not cancel abandoned run", "thread_id", threadID, "run_id", runID, "error", err)
	}
}

func (p *AssistantProvider) wrap(ctx context.Context, operation, msg string, err error) error {
	if ctx.Err() != nil {
		return NewTimeoutError(operation, ctx.Err())
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		p.logger.Error("assistant API error",
			"operation", operation, "status", apiErr.HTTPStatusCode, "type", apiErr.Type, "message", apiErr.Message)
	}
	return NewProviderError(operation, msg, err)
}
