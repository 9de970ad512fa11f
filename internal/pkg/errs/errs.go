// Package errs holds the error kinds shared by the providers, the
// orchestrators and the HTTP layer. Callers wrap them with fmt.Errorf("%w: ...")
// so the remote diagnostic text survives unchanged.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a malformed or incomplete request.
	ErrValidation = errors.New("invalid request")
	// ErrUnknownModel marks a model-selection key missing from the registry.
	ErrUnknownModel = errors.New("unknown model")
	// ErrMissingCredential marks a provider selected without its API key.
	ErrMissingCredential = errors.New("missing credential")
	// ErrUpstream marks a failed remote call or a remote-reported failure.
	ErrUpstream = errors.New("upstream error")
	// ErrParse marks model output that holds no usable JSON object.
	ErrParse = errors.New("parse error")
	// ErrTimeout marks a polling loop that hit its attempt ceiling.
	ErrTimeout = errors.New("timeout")
)

// Upstream wraps a remote failure, keeping msg verbatim.
func Upstream(provider, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrUpstream, provider, msg)
}

// UpstreamErr wraps a failed remote call. cause stays reachable through
// errors.Is, so context deadlines are still recognised.
func UpstreamErr(provider string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, provider, cause)
}

// Validation wraps a request validation failure.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// IsClient reports whether err should be answered with a 4xx status.
func IsClient(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrUnknownModel) ||
		errors.Is(err, ErrMissingCredential)
}
