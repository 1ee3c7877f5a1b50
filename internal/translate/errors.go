package translate

import (
	"errors"
	"fmt"
)

// AuthError indicates a credential or permission failure. No row can
// succeed after one, so it aborts the whole run.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %v", e.Provider, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// Remediation returns an operator hint for fixing the credentials.
func (e *AuthError) Remediation() string {
	if e.Provider == "bedrock" {
		return "check your AWS credentials (aws configure) and IAM permissions for bedrock:InvokeModel"
	}
	return "check that the API key is set and valid"
}

// ModelUnavailableError indicates the requested model is not enabled or
// does not exist in the configured region. Fatal, aborts the run.
type ModelUnavailableError struct {
	Provider string
	Model    string
	Region   string
	Err      error
}

func (e *ModelUnavailableError) Error() string {
	if e.Region != "" {
		return fmt.Sprintf("%s: model %q not available in region %s: %v", e.Provider, e.Model, e.Region, e.Err)
	}
	return fmt.Sprintf("%s: model %q not available: %v", e.Provider, e.Model, e.Err)
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// Remediation returns an operator hint for enabling the model.
func (e *ModelUnavailableError) Remediation() string {
	if e.Provider == "bedrock" {
		return "enable model access in the Bedrock console, or run with --list-models to see what is available"
	}
	return "check the model identifier, or run with --list-models"
}

// RateLimitError indicates transient upstream throttling. The row
// processor retries it with backoff.
type RateLimitError struct {
	Provider   string
	RetryAfter int // seconds, 0 when the service gave no hint
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: rate limit exceeded: %v", e.Provider, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// IsFatal reports whether err must abort the whole run instead of
// failing a single row.
func IsFatal(err error) bool {
	var authErr *AuthError
	var modelErr *ModelUnavailableError
	return errors.As(err, &authErr) || errors.As(err, &modelErr)
}

// IsRateLimit reports whether err is recoverable throttling.
func IsRateLimit(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
