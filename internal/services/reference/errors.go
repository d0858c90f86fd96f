package reference

import "fmt"

// CatalogLoadError reports a catalog file that could not be read or parsed.
// It is never fatal: callers fall back to an empty catalog.
type CatalogLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *CatalogLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s (caused by: %v)", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.Path, e.Message)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Cause
}
