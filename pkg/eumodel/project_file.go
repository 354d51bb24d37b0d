package eumodel

import "time"

// ProjectFile is one file on the share as returned by a listing. LastModified
// is only present when the listing ran in detailed mode; the bulk directory
// listing response does not include it.
type ProjectFile struct {
	Name         string     `json:"name"`
	LastModified *time.Time `json:"last_modified"`
	Size         int64      `json:"size"`
	Path         string     `json:"path,omitempty"`
}
