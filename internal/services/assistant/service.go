// File: internal/services/assistant/service.go
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pillai-nz/go-pillai/internal/domain"
	"github.com/pillai-nz/go-pillai/internal/services/answer"
	"github.com/pillai-nz/go-pillai/internal/services/translate"
)

// Service runs one question through the answer source, the translator and the
// reference matcher. Callers serialise calls that share a session.
type Service struct {
	config     *Config
	source     answer.Source
	translator translate.Provider
	matcher    ReferenceMatcher
	recorder   Recorder
	logger     Logger
}

// NewService wires the pipeline. recorder may be nil when the question log is disabled.
func NewService(
	config *Config,
	source answer.Source,
	translator translate.Provider,
	matcher ReferenceMatcher,
	recorder Recorder,
	logger Logger,
) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, NewValidationError("config", err.Error())
	}
	if source == nil {
		return nil, NewValidationError("constructor", "answer source is required")
	}
	if translator == nil {
		return nil, NewValidationError("constructor", "translator is required")
	}
	if matcher == nil {
		return nil, NewValidationError("constructor", "reference matcher is required")
	}

	return &Service{
		config:     config,
		source:     source,
		translator: translator,
		matcher:    matcher,
		recorder:   recorder,
		logger:     logger,
	}, nil
}

func (s *Service) Ask(ctx context.Context, session *domain.Session, req AskRequest) (*AskResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, NewEmptyInputError(session.ID)
	}
	if utf8.RuneCountInString(question) > s.config.MaxQuestionChars {
		return nil, NewValidationError("ask", "question is too long")
	}
	lang, err := translate.ParseLanguage(req.Language)
	if err != nil {
		return nil, NewValidationError("language", "unsupported language "+req.Language)
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	s.logger.Info("Processing question", "session_id", session.ID, "language", lang.Code, "simplify", req.Simplify)

	reply, err := s.source.Ask(ctx, answer.Request{
		Question: question,
		Simplify: req.Simplify,
		ThreadID: session.ThreadID,
	})
	if err != nil {
		aErr := s.classifyAnswerError(session.ID, err)
		s.logger.Error("Answer source failed", "session_id", session.ID, "error", err)
		s.record(session, question, lang, req.Simplify, statusFor(aErr), 0, started)
		return nil, aErr
	}

	if reply.ThreadID != "" {
		session.ThreadID = reply.ThreadID
	}
	sanitized := answer.StripCitations(reply.Text)

	displayed := sanitized
	if !lang.IsSource() {
		displayed, err = s.translator.Translate(ctx, sanitized, lang)
		if err != nil {
			aErr := s.classifyTranslationError(ctx, session.ID, err)
			s.logger.Error("Translation failed", "session_id", session.ID, "language", lang.Code, "error", err)
			s.record(session, question, lang, req.Simplify, statusFor(aErr), 0, started)
			return nil, aErr
		}
	}

	references := s.matcher.Match(sanitized)
	s.record(session, question, lang, req.Simplify, domain.InteractionAnswered, len(references), started)

	session.LastQuestion = question
	session.LastAnswer = sanitized
	session.Language = lang.Code
	session.UpdatedAt = time.Now()

	s.logger.Info("Question answered",
		"session_id", session.ID, "language", lang.Code, "references", len(references),
		"duration_ms", time.Since(started).Milliseconds())

	return &AskResponse{
		Answer:     displayed,
		Language:   lang.Code,
		References: references,
		Disclaimer: s.config.Disclaimer,
	}, nil
}

func (s *Service) classifyAnswerError(sessionID string, err error) *AssistantError {
	var srcErr *answer.AnswerError
	if errors.As(err, &srcErr) && srcErr.Type == answer.ErrTypeTimeout {
		return NewTimeoutError(sessionID, "answer", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(sessionID, "answer", err)
	}
	msg := err.Error()
	if srcErr != nil {
		msg = srcErr.Message
	}
	return NewAnswerSourceError(sessionID, msg, err)
}

func (s *Service) classifyTranslationError(ctx context.Context, sessionID string, err error) *AssistantError {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return NewTimeoutError(sessionID, "translate", err)
	}
	return NewTranslationError(sessionID, "the answer could not be translated, please try again or choose English", err)
}

func statusFor(err *AssistantError) domain.InteractionStatus {
	switch err.Type {
	case ErrTypeTimeout:
		return domain.InteractionTimedOut
	case ErrTypeTranslation:
		return domain.InteractionTranslationFailed
	default:
		return domain.InteractionAnswerFailed
	}
}

// record writes the question log entry. Failures are logged and swallowed.
func (s *Service) record(session *domain.Session, question string, lang translate.Language, simplified bool,
	status domain.InteractionStatus, referenceCount int, started time.Time) {
	if s.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.recorder.Record(ctx, &domain.Interaction{
		SessionID:      session.ID,
		Question:       question,
		Language:       lang.Code,
		Simplified:     simplified,
		Status:         status,
		ReferenceCount: referenceCount,
		DurationMs:     time.Since(started).Milliseconds(),
	})
	if err != nil {
		s.logger.Warn("Failed to record interaction", "session_id", session.ID, "error", err)
	}
}
