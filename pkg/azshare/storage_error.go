package azshare

import (
	"errors"
	"fmt"
)

// StorageError describes an error response from the storage REST API.
type StorageError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("(HTTP Status: %d) %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsNotFound reports whether err is a storage error for a missing resource,
// including a missing parent directory.
func IsNotFound(err error) bool {
	var serr *StorageError
	if errors.As(err, &serr) {
		return serr.StatusCode == 404
	}

	return false
}

// IsAlreadyExists reports whether err is a storage conflict error, such as
// creating a directory that already exists or renaming onto an existing one.
func IsAlreadyExists(err error) bool {
	var serr *StorageError
	if errors.As(err, &serr) {
		return serr.StatusCode == 409
	}

	return false
}

// ErrorMessage returns the provider's message for a storage error, or the
// plain error string for anything else.
func ErrorMessage(err error) string {
	var serr *StorageError
	if errors.As(err, &serr) {
		return serr.Message
	}

	return err.Error()
}
