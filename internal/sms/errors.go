package sms

import "fmt"

// ConfigurationError reports missing or invalid settings: no provider name,
// an unknown namespace, an unreadable config file. Not retryable.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "sms: configuration error: " + e.Reason
}

// ProviderNotFoundError reports a provider key that is absent from the
// registry after discovery has run. Indicates a configuration/deployment
// mismatch, not a transient failure.
type ProviderNotFoundError struct {
	Key       string
	Namespace string
}

func (e *ProviderNotFoundError) Error() string {
	return fmt.Sprintf("sms: provider %q not found in namespace %q", e.Key, e.Namespace)
}

// ProviderError reports a transport or auth failure inside a provider
// implementation. The dispatch core never generates these; it passes them
// through unmodified.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("sms: %s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// UnexpectedError wraps a failure outside the known taxonomy, raised at the
// factory boundary when discovery or backend construction breaks in an
// unforeseen way. The original cause is preserved for errors.As/Is.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("sms: unexpected error during %s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }
