package answer

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
)

var errRunPending = errors.New("run still pending")

// IsTerminal reports whether a run has stopped changing. requires_action is
// terminal here because no tools are registered with the assistant.
func IsTerminal(status openai.RunStatus) bool {
	switch status {
	case openai.RunStatusQueued, openai.RunStatusInProgress, openai.RunStatusCancelling:
		return false
	}
	return true
}

// waitForRun polls the run with exponential backoff until it is terminal or
// PollTimeout elapses.
func (p *AssistantProvider) waitForRun(ctx context.Context, threadID string, run openai.Run) (openai.Run, error) {
	if IsTerminal(run.Status) {
		return run, nil
	}

	pollCtx, cancel := context.WithTimeout(ctx, p.config.PollTimeout)
	defer cancel()

	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(p.config.PollInitialInterval),
		backoff.WithMaxInterval(p.config.PollMaxInterval),
		backoff.WithMaxElapsedTime(p.config.PollTimeout),
	)

	attempts := 0
	poll := func() (openai.Run, error) {
		attempts++
		current, err := p.client.RetrieveRun(pollCtx, threadID, run.ID)
		if err != nil {
			// reads are safe to repeat; keep polling until the budget runs out
			return run, err
		}
		if IsTerminal(current.Status) {
			return current, nil
		}
		return current, errRunPending
	}
	notify := func(err error, wait time.Duration) {
		if !errors.Is(err, errRunPending) {
			p.logger.Warn("run status poll failed", "run_id", run.ID, "error", err, "next_poll", wait)
		}
	}

	final, err := backoff.RetryNotifyWithData(poll, backoff.WithContext(policy, pollCtx), notify)
	if err == nil {
		p.logger.Debug("run reached terminal state", "run_id", final.ID, "status", final.Status, "polls", attempts)
		return final, nil
	}

	if errors.Is(err, errRunPending) || pollCtx.Err() != nil {
		p.cancelRun(threadID, run.ID)
		p.logger.Warn("run polling timed out", "run_id", run.ID, "polls", attempts)
		return final, NewTimeoutError("poll_run", err)
	}
	return final, NewProviderError("poll_run", "failed to read run status", err)
}
