package tools

import (
	"errors"
	"fmt"
)

var (
	// ErrNoService is returned when a job operation is attempted on a
	// client that was not bound to a service name.
	ErrNoService = errors.New("tools: no service specified")

	// ErrUnknownFailure is returned when a job failed and the diagnostic
	// error payload itself could not be retrieved.
	ErrUnknownFailure = errors.New("tools: job failed and no diagnostic could be retrieved (check your input)")

	// ErrDeadlineExceeded is returned when a poll deadline was configured
	// and the job did not leave the RUNNING state in time.
	ErrDeadlineExceeded = errors.New("tools: poll deadline exceeded")
)

// AlreadyRunningError is returned by Run when the per-service lock is held
// by a job that the service still reports as RUNNING.
type AlreadyRunningError struct {
	Service   string
	JobID     string
	StatusURL string
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("tools: a %s job (%s) is already running, wait for it to complete or check %s",
		e.Service, e.JobID, e.StatusURL)
}

// ExecutionError is returned when a job reached a terminal status other
// than FINISHED, or when the service produced explicit error content.
// Diagnostic holds the error payload retrieved from the service, if any.
type ExecutionError struct {
	JobID      string
	Status     string
	Diagnostic string
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("tools: job %s could not be completed", e.JobID)
	if e.Status != "" {
		msg += fmt.Sprintf(" (status %s)", e.Status)
	}
	if e.Diagnostic != "" {
		msg += ": " + e.Diagnostic
	}
	return msg
}
