package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/devlink/jobscout/internal/job"
)

// Provider is an external job-search data source queried through a
// documented REST contract.
type Provider interface {
	Name() string
	Search(ctx context.Context, filters *job.Filters) (*job.Jobs, error)
}

// ErrorKind classifies a provider failure. The aggregator's fallback policy
// depends on this classification, so it must be total: every failure maps to
// exactly one kind.
type ErrorKind string

const (
	ErrorAuth          ErrorKind = "auth"
	ErrorQuotaExceeded ErrorKind = "quota_exceeded"
	ErrorServer        ErrorKind = "server_error"
	ErrorNetwork       ErrorKind = "network_error"
	ErrorUnknown       ErrorKind = "unknown"
)

// Error is the typed failure returned by every adapter. It never escapes the
// aggregator.
type Error struct {
	Kind     ErrorKind
	Provider string
	Err      error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s: %s", e.Provider, e.Kind)
	}
	return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify maps an HTTP status or transport failure to a provider error.
// A non-nil err always wins and is treated as a network failure, including
// timeouts and canceled contexts.
func Classify(name string, status int, err error) *Error {
	if err != nil {
		return &Error{Kind: ErrorNetwork, Provider: name, Err: err}
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: ErrorAuth, Provider: name, Err: fmt.Errorf("status %d", status)}
	case status == http.StatusPaymentRequired:
		return &Error{Kind: ErrorQuotaExceeded, Provider: name, Err: fmt.Errorf("status %d", status)}
	case status >= http.StatusInternalServerError:
		return &Error{Kind: ErrorServer, Provider: name, Err: fmt.Errorf("status %d", status)}
	default:
		return &Error{Kind: ErrorUnknown, Provider: name, Err: fmt.Errorf("status %d", status)}
	}
}

// KindOf extracts the error kind from any error chain, defaulting to unknown.
func KindOf(err error) ErrorKind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return ErrorUnknown
}
