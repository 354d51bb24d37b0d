// Package azshare is a client adapter for an Azure File Share. It exposes the
// small set of share operations the data gateway needs: directory listing,
// per-file metadata, ranged downloads, directory create/rename, shared access
// signature URLs and service-level CORS properties. The share itself owns
// durability and consistency; this package only talks to it.
package azshare

import "time"

// DirEntry is one entry from a directory listing. The bulk listing response
// carries the size for files but not the last-modified time; that requires a
// per-file properties call.
type DirEntry struct {
	Name        string
	IsDirectory bool
	Size        int64
}

// FileProperties is the per-file metadata returned by a properties call.
type FileProperties struct {
	Name         string
	Size         int64
	LastModified time.Time
}

// RangeResponse is the result of a ranged download. ContentLength is the total
// length of the file, not the length of the returned range.
type RangeResponse struct {
	Content       []byte
	ContentLength int64
}

// Client is the set of share operations used by the gateway. RestyClient is
// the real implementation; MockClient backs the tests.
type Client interface {
	// ListDirectory returns the direct children of dirPath.
	ListDirectory(dirPath string) ([]DirEntry, error)

	// GetFileProperties fetches the metadata for a single file.
	GetFileProperties(filePath string) (*FileProperties, error)

	// DownloadRange fetches the byte range [startRange, endRange] of a file.
	// An endRange < 0 means read through the end of the file.
	DownloadRange(dirPath, fileName string, startRange, endRange int64) (*RangeResponse, error)

	// CreateDirectory creates a single directory. The parent must exist.
	CreateDirectory(dirPath string) error

	// RenameDirectory renames dirPath to destPath. With overwrite false the
	// rename fails if destPath already exists.
	RenameDirectory(dirPath, destPath string, overwrite bool) error

	// FileSASURL mints a signed URL granting perm on exactly one file for the
	// given time window.
	FileSASURL(dirPath, fileName string, perm Permission, start, expiry time.Time) string

	// SetCORSPolicy replaces the CORS rules on the file service.
	SetCORSPolicy(allowedOrigins []string) error
}
