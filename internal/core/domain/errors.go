package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent lifecycle failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResolution indicates no view is registered for a content type.
	// It is fatal to the CreateDocument call that raised it and nothing else.
	ErrResolution = errors.New("no view registered for content type")

	// ErrInvalidState indicates an operation referenced a document that is
	// destroyed or not registered. Lifecycle calls on a destroyed document
	// are no-ops; this error is only returned by APIs that have an error result.
	ErrInvalidState = errors.New("invalid document state")

	// ErrContentDisposal matches any *ContentDisposalError.
	ErrContentDisposal = errors.New("content disposal failed")

	// ErrManagerClosed indicates the manager has started shutting down.
	ErrManagerClosed = errors.New("document manager closed")
)

// ContentDisposalError wraps a failure raised while disposing a content model.
// It is returned after the document's own bookkeeping has been released.
type ContentDisposalError struct {
	// DocumentID is the key of the document whose content failed.
	DocumentID string

	// ContentType is the content type of the document.
	ContentType string

	// Err is the underlying failure.
	Err error
}

// Error implements error.
func (e *ContentDisposalError) Error() string {
	if e.DocumentID == "" {
		return fmt.Sprintf("%s (%s): %v", ErrContentDisposal, e.ContentType, e.Err)
	}
	return fmt.Sprintf("%s for document %q: %v", ErrContentDisposal, e.DocumentID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ContentDisposalError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrContentDisposal.
func (e *ContentDisposalError) Is(target error) bool {
	return target == ErrContentDisposal
}

// ResolutionError returns ErrResolution annotated with the content type.
func ResolutionError(contentType string) error {
	return fmt.Errorf("%w: %q", ErrResolution, contentType)
}
