package mlsapi

import "fmt"

// TransientError marks upstream failures worth retrying: network
// errors, rate-limit responses and 5xx. The client retries these with
// exponential backoff before escalating to a PermanentError.
type TransientError struct {
	StatusCode int
	Err        error
}

func (e *TransientError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transient upstream error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transient upstream error: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError aborts the whole run: non-retryable 4xx, malformed
// response bodies, or exhausted retries.
type PermanentError struct {
	StatusCode int
	Err        error
}

func (e *PermanentError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("permanent upstream error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("permanent upstream error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// isTransientStatus reports whether an HTTP status is retryable
func isTransientStatus(code int) bool {
	return code == 429 || code >= 500
}
