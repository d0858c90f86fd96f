// File: internal/services/translate/google_provider.go
package translate

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"
)

// GoogleProvider uses the public web translation endpoint. Answers longer than
// MaxChunkChars are sent paragraph by paragraph.
type GoogleProvider struct {
	config *Config
	client *http.Client
	logger Logger
}

func NewGoogleProvider(config *Config, logger Logger) *GoogleProvider {
	return &GoogleProvider{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

func (p *GoogleProvider) Translate(ctx context.Context, text string, target Language) (string, error) {
	if target.IsSource() || strings.TrimSpace(text) == "" {
		return text, nil
	}

	chunks := splitChunks(text, p.config.MaxChunkChars)
	translated := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := p.translateWithRetry(ctx, chunk, target)
		if err != nil {
			p.logger.Error("Translation chunk failed", "chunk", i, "chunks", len(chunks), "target", target.Code, "error", err)
			return "", err
		}
		translated = append(translated, out)
	}

	p.logger.Debug("Translation completed", "target", target.Code, "chunks", len(chunks), "chars", utf8.RuneCountInString(text))
	return strings.Join(translated, "\n\n"), nil
}

func (p *GoogleProvider) translateWithRetry(ctx context.Context, chunk string, target Language) (string, error) {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.config.RetryDelay), p.config.MaxRetries),
		ctx,
	)
	attempt := 0
	op := func() (string, error) {
		attempt++
		out, err := p.translateChunk(ctx, chunk, target)
		if err != nil && !retryable(err) {
			return "", backoff.Permanent(err)
		}
		return out, err
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Warn("Translation request failed, retrying", "attempt", attempt, "error", err, "wait", wait)
	}
	return backoff.RetryNotifyWithData(op, policy, notify)
}

func (p *GoogleProvider) translateChunk(ctx context.Context, chunk string, target Language) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", English.Code)
	params.Set("tl", target.Code)
	params.Set("dt", "t")
	params.Set("q", chunk)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(p.config.GoogleBaseURL, "/")+"/translate_a/single?"+params.Encode(), nil)
	if err != nil {
		return "", &TranslationError{Type: ErrTypeValidation, Message: "failed to create request", Cause: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", &TranslationError{Type: ErrTypeNetwork, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TranslationError{Type: ErrTypeNetwork, Message: "failed to read response", Cause: err}
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &TranslationError{Type: ErrTypeRateLimit, Code: resp.StatusCode, Message: "rate limit exceeded"}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &TranslationError{Type: ErrTypeProvider, Code: resp.StatusCode, Message: string(body)}
	}

	return parseGoogleResponse(body)
}

// parseGoogleResponse joins the translated segments of a translate_a/single
// reply: [[["translated","original",...],...],...].
func parseGoogleResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", &TranslationError{Type: ErrTypeProvider, Message: "malformed translation response"}
	}
	segments := gjson.GetBytes(body, "0")
	if !segments.IsArray() {
		return "", &TranslationError{Type: ErrTypeProvider, Message: "translation response has no segments"}
	}

	var sb strings.Builder
	segments.ForEach(func(_, segment gjson.Result) bool {
		sb.WriteString(segment.Get("0").String())
		return true
	})
	if strings.TrimSpace(sb.String()) == "" {
		return "", &TranslationError{Type: ErrTypeEmpty, Message: "translation returned empty result"}
	}
	return sb.String(), nil
}

// splitChunks groups paragraphs into chunks of at most max runes. A paragraph
// longer than max is cut at rune boundaries.
func splitChunks(text string, max int) []string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return []string{text}
	}

	var chunks []string
	var current []string
	size := 0
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.Join(current, "\n\n"))
			current, size = nil, 0
		}
	}

	for _, para := range strings.Split(text, "\n\n") {
		n := utf8.RuneCountInString(para)
		if n > max {
			flush()
			runes := []rune(para)
			for len(runes) > max {
				chunks = append(chunks, string(runes[:max]))
				runes = runes[max:]
			}
			para, n = string(runes), len(runes)
		}
		sep := 0
		if len(current) > 0 {
			sep = 2
		}
		if size+sep+n > max {
			flush()
			sep = 0
		}
		current = append(current, para)
		size += sep + n
	}
	flush()
	return chunks
}
