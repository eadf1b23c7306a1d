package apperr

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the request carries no usable credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the credential is valid but the principal's
// role or identity does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalid is returned when the input fails validation (malformed id,
// missing required field, unknown status value).
var ErrInvalid = errors.New("invalid input")

// ErrUpstream indicates that a store or external provider call failed.
var ErrUpstream = errors.New("upstream failure")

// Upstream tags err as a store or provider failure, unless it already
// carries a taxonomy sentinel of its own.
func Upstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalid) {
		return err
	}
	return errors.Join(ErrUpstream, err)
}

// Kind returns the stable machine-readable name for an error, matching the
// sentinel it wraps. Unknown errors map to "internal".
func Kind(err error) string {
	switch {
	case IsPartial(err):
		return "partial_failure"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalid):
		return "invalid_argument"
	case errors.Is(err, ErrUpstream):
		return "upstream_failure"
	default:
		return "internal"
	}
}

// StepOutcome records the result of one step of a multi-entity write.
type StepOutcome struct {
	Step string `json:"step"`
	Done bool   `json:"done"`
	Err  string `json:"error,omitempty"`
}

// PartialError reports a two-step cross-entity write that committed its
// first step and failed its second. The store offers no multi-document
// atomicity, so the caller must see both outcomes rather than a collapsed
// success or failure.
type PartialError struct {
	Op    string
	First StepOutcome
	Last  StepOutcome
	cause error
}

// NewPartialError builds a PartialError for operation op with the completed
// first step and the failed last step.
func NewPartialError(op string, first, last StepOutcome, cause error) *PartialError {
	return &PartialError{Op: op, First: first, Last: last, cause: cause}
}

// Error formats both step outcomes.
func (e *PartialError) Error() string {
	return fmt.Sprintf("%s: partial failure: %s done, %s failed: %v", e.Op, e.First.Step, e.Last.Step, e.cause)
}

// Unwrap exposes the underlying cause of the failed step.
func (e *PartialError) Unwrap() error { return e.cause }

// Outcomes returns both step outcomes, first then last.
func (e *PartialError) Outcomes() []StepOutcome {
	return []StepOutcome{e.First, e.Last}
}

// IsPartial reports whether err is (or wraps) a PartialError.
func IsPartial(err error) bool {
	var pe *PartialError
	return errors.As(err, &pe)
}

// AsPartial extracts a PartialError from err, or returns nil.
func AsPartial(err error) *PartialError {
	var pe *PartialError
	if errors.As(err, &pe) {
		return pe
	}
	return nil
}
