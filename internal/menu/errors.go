package menu

import "fmt"

// The pipeline fails closed: every error below aborts the whole call
// and no partial structure is returned. Callers match with errors.As.

// ConfigurationError indicates a missing or unusable backend credential,
// detected before any network call is attempted.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// BackendError indicates the generative backend returned a non-success
// status. Status and Body are kept for diagnostics.
type BackendError struct {
	Status int
	Body   string
	Err    error
}

func (e *BackendError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend error: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// EmptyResponseError indicates the backend call succeeded but returned
// no usable text.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "backend returned an empty response"
}

// MalformedResponseError indicates no parseable JSON object could be
// located in the response text. Snippet carries a truncated prefix of
// the raw text for diagnostics.
type MalformedResponseError struct {
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("no parseable JSON in backend response: %q", e.Snippet)
}

// SchemaError indicates the parsed JSON lacks the required categories
// array.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("backend response schema violation: %s", e.Reason)
}

// EmptyMenuError indicates zero categories after normalization.
type EmptyMenuError struct{}

func (e *EmptyMenuError) Error() string {
	return "extracted menu has no categories"
}

// EmptyItemsError indicates zero items across all categories after
// normalization.
type EmptyItemsError struct{}

func (e *EmptyItemsError) Error() string {
	return "extracted menu has no items in any category"
}
