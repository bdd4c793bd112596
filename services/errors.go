package services

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures are recoverable by the submitter; upstream failures by
// retrying or dropping the item; ErrMissingAPIKey needs an operator.
var (
	ErrEmptyBatch    = errors.New("no urls to submit")
	ErrMissingAPIKey = errors.New("youtube api key is missing")
	ErrEmptyPlaylist = errors.New("playlist is empty or private")
)

// InvalidURLError marks a playlist url that carries no recognizable
// playlist id.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid youtube playlist url: %s", e.URL)
}

// DuplicateInBatchError marks a url appearing twice in one submission.
type DuplicateInBatchError struct {
	URL string
}

func (e *DuplicateInBatchError) Error() string {
	return fmt.Sprintf("duplicate url in submission: %s", e.URL)
}

// AlreadyExistsError lists submitted urls already present in the store.
type AlreadyExistsError struct {
	Kind string
	URLs []string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("these %s already exist: %s", e.Kind, strings.Join(e.URLs, ", "))
}

// UpstreamError wraps a failed call to the video metadata API.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetching playlist data for %s: %v", e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is a submitter-correctable failure.
func IsValidationError(err error) bool {
	var invalidURL *InvalidURLError
	var dup *DuplicateInBatchError
	var exists *AlreadyExistsError
	return errors.Is(err, ErrEmptyBatch) ||
		errors.As(err, &invalidURL) ||
		errors.As(err, &dup) ||
		errors.As(err, &exists)
}
