package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentFormat indicates the snapshot could not be turned into orders.
	// Always wrapped by a *DocumentFormatError carrying the reason.
	ErrDocumentFormat = errors.New("document format error")

	// Image Errors.

	// ErrImageFetch indicates an image could not be downloaded.
	ErrImageFetch = errors.New("image fetch failed")

	// ErrImageRejected indicates downloaded bytes failed content validation.
	ErrImageRejected = errors.New("image rejected")
)

// DocumentFormatReason classifies a fatal document failure.
type DocumentFormatReason string

// Fatal document failure reasons.
const (
	// ReasonBoundaryNotFound means the multipart boundary could not be discovered.
	ReasonBoundaryNotFound DocumentFormatReason = "BoundaryNotFound"

	// ReasonHTMLPartNotFound means no text/html part exists in the archive.
	ReasonHTMLPartNotFound DocumentFormatReason = "HTMLPartNotFound"

	// ReasonHTMLTooShort means the decoded HTML is implausibly short.
	ReasonHTMLTooShort DocumentFormatReason = "HTMLTooShort"

	// ReasonNoOrdersFound means every extraction strategy came up empty.
	ReasonNoOrdersFound DocumentFormatReason = "NoOrdersFound"
)

// DocumentFormatError is the only failure that aborts an import.
// No partial result accompanies it.
type DocumentFormatError struct {
	Reason DocumentFormatReason
	Detail string
}

// NewDocumentFormatError creates a DocumentFormatError.
func NewDocumentFormatError(reason DocumentFormatReason, detail string) *DocumentFormatError {
	return &DocumentFormatError{Reason: reason, Detail: detail}
}

func (e *DocumentFormatError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrDocumentFormat, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrDocumentFormat, e.Reason, e.Detail)
}

// Unwrap lets errors.Is match ErrDocumentFormat.
func (e *DocumentFormatError) Unwrap() error {
	return ErrDocumentFormat
}

// IsDocumentFormatReason reports whether err is a DocumentFormatError with the given reason.
func IsDocumentFormatReason(err error, reason DocumentFormatReason) bool {
	var dfe *DocumentFormatError
	if !errors.As(err, &dfe) {
		return false
	}
	return dfe.Reason == reason
}
