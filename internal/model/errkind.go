package model

import "fmt"

// ErrorKind classifies why a source produced no usable metric.
type ErrorKind string

const (
	// ErrNetwork covers transport failures, timeouts, and unexpected HTTP
	// statuses. Retryable in principle; the pipeline surfaces it per record
	// instead of retrying.
	ErrNetwork ErrorKind = "NetworkError"
	// ErrBlocked means the source returned an anti-automation challenge.
	// Sustained occurrences escalate to a run-level skip for that source.
	ErrBlocked ErrorKind = "Blocked"
	// ErrNotFound means the source has no record matching the venue.
	ErrNotFound ErrorKind = "NotFound"
	// ErrMissingIdentifier means a required lookup key (ISSN) was absent.
	// No network call is made.
	ErrMissingIdentifier ErrorKind = "MissingIdentifier"
	// ErrAuth means the credential was rejected. Fatal for that source for
	// the remainder of the run.
	ErrAuth ErrorKind = "AuthError"
	// ErrQuotaExceeded means the metered source refused the call for rate or
	// quota reasons. Benign per call, alarming in aggregate.
	ErrQuotaExceeded ErrorKind = "QuotaExceeded"
	// ErrParse means the response completed but its shape was unusable.
	ErrParse ErrorKind = "ParseError"
	// ErrSkipped marks venues never attempted because the source was
	// disabled earlier in the run.
	ErrSkipped ErrorKind = "Skipped"
)

// SourceError annotates a SourceResult that carries no metric. A result is
// either usable or holds exactly one SourceError, never both.
type SourceError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message,omitempty"`
}

func (e *SourceError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewSourceError builds a SourceError with a formatted message.
func NewSourceError(kind ErrorKind, format string, args ...any) *SourceError {
	return &SourceError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
