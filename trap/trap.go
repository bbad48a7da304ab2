// Package trap defines the structured failure type shared by the smart-account
// core.
//
// Every failure in this system is a trap: it aborts the enclosing invocation
// and the hosting environment discards all state mutations the invocation
// attempted. There are no recoverable errors below the environment boundary;
// recovery is caller-driven (predict before creating, re-sign and resubmit).
package trap

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Code rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	KindInit     Kind = "Init"
	KindDeploy   Kind = "Deploy"
	KindAuth     Kind = "Auth"
	KindCrypto   Kind = "Crypto"
	KindStorage  Kind = "Storage"
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// Code is a stable identifier (e.g., SAF-INIT-101, SAF-DEPLOY-201) that names
// the violated invariant.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns a trap with the given kind, stable code and message.
func New(kind Kind, code, msg string) error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Wrap is New with a cause attached for errors.Is/errors.As chains.
func Wrap(kind Kind, code, msg string, cause error) error {
	if cause == nil {
		return New(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// Code returns the stable code for a structured error, or "" if unknown.
func Code(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}
