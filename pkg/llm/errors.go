package llm

import "fmt"

// BackendError marks a failure that originated in the language backend:
// unreachable endpoint, non-2xx status, or a response body that could not
// be decoded. It is not retried anywhere; callers propagate it upward.
type BackendError struct {
	Provider string
	Err      error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("llm backend %s: %v", e.Provider, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
