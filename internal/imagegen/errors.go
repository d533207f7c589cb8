package imagegen

import "fmt"

// FetchError describes one failed attempt to fetch an image.
type FetchError struct {
	Attempt int
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("attempt %d: HTTP %d: %v", e.Attempt, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("attempt %d: %v", e.Attempt, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
