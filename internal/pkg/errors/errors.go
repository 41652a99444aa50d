package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfig     = errors.New("configuration missing")
	ErrValidation = errors.New("invalid request")
	ErrNotFound   = errors.New("not found")
)

// UpstreamError carries a non-2xx provider response. Body is truncated
// before construction so it is safe to log and to echo to the client.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// TimeoutError marks a provider call that exceeded its budget.
// Surfaced as 504, distinct from UpstreamError.
type TimeoutError struct {
	Op string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out", e.Op)
}

// PartialFailureError marks a two-step operation whose first step
// succeeded and whose second failed. Step names the failed step,
// ResourceID the provider resource left behind.
type PartialFailureError struct {
	Step       string
	ResourceID string
	Cause      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("step %s failed, resource %s orphaned: %v", e.Step, e.ResourceID, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.Status == 404
}

func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

func AsUpstream(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	ok := errors.As(err, &ue)
	return ue, ok
}

func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pe *PartialFailureError
	ok := errors.As(err, &pe)
	return pe, ok
}
