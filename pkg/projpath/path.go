// Package projpath defines the canonical shapes for project data paths on the
// file share and checks that a caller is allowed to touch them.
//
// Run data lives under <prefix>/<project>/runs/<run>/<data_type>/... and
// project documents under <prefix>/<project>/documents/... . Project and run
// segments are limited to word characters, hyphens and spaces, so a path can
// never smuggle separators or control characters into a directory name.
package projpath

import (
	"regexp"
	"strings"

	"github.com/wiwski/euphrosyne-tools-api/pkg/eumodel"
)

// InvalidPathError is returned when a path fails the grammar or the caller
// has no access to the project owning it. Both cases are client input errors.
type InvalidPathError struct {
	Message string
}

func (e *InvalidPathError) Error() string {
	return e.Message
}

// Validator validates run-data and document paths against the grammar rooted
// at a fixed projects prefix.
type Validator struct {
	prefix      string
	runDataRE   *regexp.Regexp
	documentsRE *regexp.Regexp
}

// NewValidator builds a Validator for the given projects prefix. The prefix
// may be empty, in which case project directories sit at the path root.
func NewValidator(prefix string) *Validator {
	anchor := "^"
	if prefix != "" {
		anchor = "^" + regexp.QuoteMeta(prefix) + "/"
	}

	return &Validator{
		prefix:      prefix,
		runDataRE:   regexp.MustCompile(anchor + `[\w\- ]+/runs/[\w\- ]+/(raw_data|processed_data|HDF5)/`),
		documentsRE: regexp.MustCompile(anchor + `[\w\- ]+/documents`),
	}
}

// Prefix returns the configured projects prefix.
func (v *Validator) Prefix() string {
	return v.prefix
}

// ValidateRunDataPath checks that path points inside a run data directory and
// that user may access the owning project.
func (v *Validator) ValidateRunDataPath(path string, user *eumodel.User) error {
	if !v.runDataRE.MatchString(path) {
		return &InvalidPathError{
			Message: "path must start with {projects_path_prefix}/<project_name>/runs/<run_name>/(processed_data|raw_data|HDF5)/",
		}
	}

	return v.validateProjectAccess(path, user)
}

// ValidateDocumentPath checks that path points inside a project documents
// directory and that user may access the owning project.
func (v *Validator) ValidateDocumentPath(path string, user *eumodel.User) error {
	if !v.documentsRE.MatchString(path) {
		return &InvalidPathError{
			Message: "path must start with {projects_path_prefix}/<project_name>/documents/",
		}
	}

	return v.validateProjectAccess(path, user)
}

// validateProjectAccess extracts the project segment from an
// already-grammar-checked path and requires membership or the admin flag.
func (v *Validator) validateProjectAccess(path string, user *eumodel.User) error {
	projectName := v.projectSegment(path)
	if !user.HasProject(projectName) && !user.IsAdmin {
		return &InvalidPathError{Message: "user is not part of project " + projectName}
	}

	return nil
}

func (v *Validator) projectSegment(path string) string {
	withoutPrefix := path
	if v.prefix != "" {
		withoutPrefix = strings.Replace(path, v.prefix+"/", "", 1)
	}

	segment, _, _ := strings.Cut(withoutPrefix, "/")
	return segment
}
