package port

import "errors"

var (
	// ErrUnauthorized means the presented token resolved to no identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers absent records, absent size variants, and access
	// denials. Denials deliberately look like absence so private file ids
	// cannot be probed.
	ErrNotFound = errors.New("not found")

	// ErrParentNotFound and ErrParentNotFolder reject creations whose
	// parentId does not reference an existing folder.
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrFolderHasNoData rejects content retrieval for folders.
	ErrFolderHasNoData = errors.New("a folder doesn't have content")

	// ErrInvalidData rejects creation payloads that are not valid base64.
	ErrInvalidData = errors.New("invalid data")

	// ErrEmailTaken rejects registration with an already-used email.
	ErrEmailTaken = errors.New("already exist")

	// ErrTerminalJob marks a queue job that can never succeed; the consumer
	// acks it instead of leaving it for redelivery.
	ErrTerminalJob = errors.New("terminal job failure")
)

// MissingFieldError reports a required creation input that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing " + e.Field
}

// MissingField builds the validation error for one absent field.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}
