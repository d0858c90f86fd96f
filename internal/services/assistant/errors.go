// File: internal/services/assistant/errors.go
package assistant

import "fmt"

type ErrorType string

const (
	ErrTypeEmptyInput   ErrorType = "EMPTY_INPUT"
	ErrTypeValidation   ErrorType = "VALIDATION"
	ErrTypeAnswerSource ErrorType = "ANSWER_SOURCE"
	ErrTypeTranslation  ErrorType = "TRANSLATION"
	ErrTypeTimeout      ErrorType = "TIMEOUT"
)

type AssistantError struct {
	Type      ErrorType
	Operation string
	Message   string
	SessionID string
	Cause     error
}

func (e *AssistantError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Assistant %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Assistant %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AssistantError) Unwrap() error {
	return e.Cause
}

func NewEmptyInputError(sessionID string) *AssistantError {
	return &AssistantError{Type: ErrTypeEmptyInput, Operation: "ask", Message: "please enter a question", SessionID: sessionID}
}

func NewValidationError(operation, msg string) *AssistantError {
	return &AssistantError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewAnswerSourceError(sessionID, msg string, cause error) *AssistantError {
	return &AssistantError{Type: ErrTypeAnswerSource, Operation: "answer", Message: msg, SessionID: sessionID, Cause: cause}
}

func NewTranslationError(sessionID, msg string, cause error) *AssistantError {
	return &AssistantError{Type: ErrTypeTranslation, Operation: "translate", Message: msg, SessionID: sessionID, Cause: cause}
}

func NewTimeoutError(sessionID, operation string, cause error) *AssistantError {
	return &AssistantError{
		Type:      ErrTypeTimeout,
		Operation: operation,
		Message:   "the medicine service took too long to answer, please try again",
		SessionID: sessionID,
		Cause:     cause,
	}
}
