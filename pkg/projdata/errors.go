package projdata

import "errors"

// ErrProjectDocumentsNotFound signals that the documents directory for a
// project does not exist on the share. Callers turn this into a 404 rather
// than an empty listing.
var ErrProjectDocumentsNotFound = errors.New("project documents folder not found")

// ErrRunDataNotFound signals that the requested run data directory does not
// exist on the share.
var ErrRunDataNotFound = errors.New("run data not found")

// FolderCreationError is returned when the share reports a conflict or a
// missing parent while creating or renaming project directories. Message
// carries the provider's message verbatim; callers surface it as a 400.
type FolderCreationError struct {
	Message string
}

func (e *FolderCreationError) Error() string {
	return e.Message
}
