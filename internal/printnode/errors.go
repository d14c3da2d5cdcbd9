package printnode

import (
	"errors"
	"fmt"

	"labelprint/pkg/platform/sentinel"
)

// SubmitError is a failed print job submission. Status is zero when PrintNode
// could not be reached at all.
type SubmitError struct {
	Status     int
	Body       string
	Underlying error
}

func (e *SubmitError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("PrintNode unreachable: %v", e.Underlying)
	}
	return fmt.Sprintf("PrintNode error %d: %s", e.Status, e.Body)
}

// Unwrap exposes sentinel.ErrUnavailable or sentinel.ErrRejected.
func (e *SubmitError) Unwrap() error {
	return e.Underlying
}

func unreachable(err error) *SubmitError {
	return &SubmitError{Underlying: fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)}
}

func rejected(status int, body string) *SubmitError {
	return &SubmitError{Status: status, Body: body, Underlying: sentinel.ErrRejected}
}

// StatusOf returns the HTTP status of a SubmitError, or zero.
func StatusOf(err error) int {
	var se *SubmitError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}
