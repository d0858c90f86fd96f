// File: internal/services/translate/errors.go
package translate

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeRateLimit  ErrorType = "RATE_LIMIT"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeEmpty      ErrorType = "EMPTY"
)

type TranslationError struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *TranslationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("translation %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("translation %s error: %s", e.Type, e.Message)
}

func (e *TranslationError) Unwrap() error {
	return e.Cause
}

// retryable reports whether a failed request may succeed if sent again.
func retryable(err error) bool {
	tErr, ok := err.(*TranslationError)
	if !ok {
		return true
	}
	switch tErr.Type {
	case ErrTypeNetwork, ErrTypeRateLimit:
		return true
	case ErrTypeProvider:
		return tErr.Code >= 500
	}
	return false
}
