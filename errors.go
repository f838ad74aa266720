package aiklyra

import "fmt"

// ValidationError reports input that failed a local check. It is always
// returned before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidAPIKeyError reports that the service rejected the bearer token.
type InvalidAPIKeyError struct {
	Detail string
}

func (e *InvalidAPIKeyError) Error() string {
	return fmt.Sprintf("invalid API key: %s", e.Detail)
}

// InsufficientCreditsError reports that the account has no credits left for
// this call.
type InsufficientCreditsError struct {
	Detail string
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: %s", e.Detail)
}

// AnalysisError reports a 200 response whose body does not match the service
// contract, typically a missing transition_matrix or intent_by_cluster field.
// It signals a client/server contract mismatch rather than a caller mistake.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// APIError is the catch-all for any other non-success status. The message
// embeds the literal status code as "Error <code>: <body>" so callers and
// tests can match on it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}
