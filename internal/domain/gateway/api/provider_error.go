package api

import "fmt"

// ProviderError reports a failed, error-coded or malformed provider answer.
// Unavailable marks transport failures, timeouts and 5xx answers, the only ones that trip the circuit breaker.
type ProviderError struct {
	Operation   string
	StatusCode  int
	Message     string
	Unavailable bool
	Err         error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("weather provider %s failed with status %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("weather provider %s failed: %s", e.Operation, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
