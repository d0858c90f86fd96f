// File: internal/services/answer/errors.go
package answer

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeRunFailed  ErrorType = "RUN_FAILED"
	ErrTypeTimeout    ErrorType = "TIMEOUT"
	ErrTypeEmpty      ErrorType = "EMPTY"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type AnswerError struct {
	Type      ErrorType
	Operation string
	Message   string
	RunStatus string
	Cause     error
}

func (e *AnswerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("answer %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("answer %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AnswerError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AnswerError {
	return &AnswerError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation, msg string, cause error) *AnswerError {
	return &AnswerError{Type: ErrTypeProvider, Operation: operation, Message: msg, Cause: cause}
}

func NewTimeoutError(operation string, cause error) *AnswerError {
	return &AnswerError{Type: ErrTypeTimeout, Operation: operation, Message: "answer source did not finish in time", Cause: cause}
}
