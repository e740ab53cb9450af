package guide

import (
	"errors"
	"fmt"
)

// Kind classifies why a lookup failed.
type Kind int

const (
	// KindMissingInput means the city or building name was empty.
	KindMissingInput Kind = iota + 1
	// KindMissingCredential means no API key was configured.
	KindMissingCredential
	// KindService means the external call failed.
	KindService
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMissingInput:
		return "MissingInput"
	case KindMissingCredential:
		return "MissingCredential"
	case KindService:
		return "ServiceError"
	default:
		return "Unknown"
	}
}

// Sentinel errors for errors.Is checks against a lookup failure.
var (
	ErrMissingInput      = &Error{Kind: KindMissingInput}
	ErrMissingCredential = &Error{Kind: KindMissingCredential}
	ErrService           = &Error{Kind: KindService}
)

// Error is the only error type FetchBuildingInfo returns.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying backend error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can compare against the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// UserMessage is the text shown to the user for this failure.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindMissingInput:
		return "Please enter both a city and a building name."
	case KindMissingCredential:
		return "API key is not configured (set GEMINI_API_KEY)."
	case KindService:
		return "An error occurred: " + e.Message
	default:
		return e.Error()
	}
}

// IsWarning reports whether the failure is a user input problem rather than an error.
func (e *Error) IsWarning() bool {
	return e.Kind == KindMissingInput
}

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func missingInput() *Error {
	return &Error{Kind: KindMissingInput, Message: "city and building name are required"}
}

func missingCredential() *Error {
	return &Error{Kind: KindMissingCredential, Message: "no API key configured"}
}

func serviceError(err error) *Error {
	msg := err.Error()
	if msg == "" {
		msg = "unknown service failure"
	}
	return &Error{Kind: KindService, Message: msg, Err: err}
}
