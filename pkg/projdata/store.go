// Package projdata is the project/run scoped view over the file share: it
// lists project documents and run data, mints shared access signature URLs
// according to a fixed permission policy, and manages the fixed directory
// skeleton created when projects and runs are initialized.
package projdata

import (
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/wiwski/euphrosyne-tools-api/pkg/azshare"
	"github.com/wiwski/euphrosyne-tools-api/pkg/eumodel"
)

// RunDataType names one of the typed data areas inside a run directory.
type RunDataType string

const (
	RunDataTypeRaw       RunDataType = "raw_data"
	RunDataTypeProcessed RunDataType = "processed_data"
	RunDataTypeHDF5      RunDataType = "HDF5"
)

func (t RunDataType) Valid() bool {
	switch t {
	case RunDataTypeRaw, RunDataTypeProcessed, RunDataTypeHDF5:
		return true
	}
	return false
}

// Shared access signature URLs are valid for this long, starting now.
const sasValidity = 5 * time.Minute

// Store is the set of project data operations the web layer depends on.
type Store interface {
	GetProjectDocuments(projectName string) ([]eumodel.ProjectFile, error)
	GetRunFiles(projectName, runName string, dataType RunDataType) ([]eumodel.ProjectFile, error)
	DownloadRunFile(filePath string) *azshare.ShareFile
	GenerateRunDataSASURL(dirPath, fileName string, isAdmin bool) string
	GenerateProjectDocumentsUploadSASURL(projectName, fileName string) string
	GenerateProjectDocumentsSASURL(dirPath, fileName string) string
	InitProjectDirectory(projectName string) error
	InitRunDirectory(projectName, runName string) error
	RenameRunDirectory(projectName, runName, newName string) error
	SetFileShareCORSPolicy(allowedOrigins string) error
}

// AzureStore implements Store on top of an azshare.Client.
type AzureStore struct {
	client azshare.Client
	prefix string
	now    func() time.Time
}

func NewAzureStore(client azshare.Client, projectsPrefix string) *AzureStore {
	return &AzureStore{
		client: client,
		prefix: projectsPrefix,
		now:    time.Now,
	}
}

// GetProjectDocuments lists every file under the project's documents
// directory, including last-modified times (detailed mode, one extra round
// trip per file).
func (s *AzureStore) GetProjectDocuments(projectName string) ([]eumodel.ProjectFile, error) {
	dirPath := path.Join(s.prefix, projectName, "documents")

	files, err := s.listFilesRecursive(dirPath, true)
	if err != nil {
		if azshare.IsNotFound(err) {
			return nil, ErrProjectDocumentsNotFound
		}
		return nil, err
	}

	return files, nil
}

// GetRunFiles lists every file under one typed data area of a run. The bulk
// listing is enough here, so entries carry no last-modified time.
func (s *AzureStore) GetRunFiles(projectName, runName string, dataType RunDataType) ([]eumodel.ProjectFile, error) {
	dirPath := path.Join(s.prefix, projectName, "runs", runName, string(dataType))

	files, err := s.listFilesRecursive(dirPath, false)
	if err != nil {
		if azshare.IsNotFound(err) {
			return nil, ErrRunDataNotFound
		}
		return nil, err
	}

	return files, nil
}

// DownloadRunFile returns a seekable handle for a server-mediated download of
// one file on the share.
func (s *AzureStore) DownloadRunFile(filePath string) *azshare.ShareFile {
	return azshare.NewShareFile(s.client, path.Dir(filePath), path.Base(filePath))
}

// GenerateRunDataSASURL mints a signed URL for run data. Regular users can
// read; admins can also write, create and delete.
func (s *AzureStore) GenerateRunDataSASURL(dirPath, fileName string, isAdmin bool) string {
	permission := azshare.Permission{
		Read:   true,
		Create: isAdmin,
		Write:  isAdmin,
		Delete: isAdmin,
	}

	return s.sasURL(dirPath, fileName, permission)
}

// GenerateProjectDocumentsUploadSASURL mints a signed URL to upload one
// document into a project's documents directory. Permissions are write and
// create; downloading and deleting go through GenerateProjectDocumentsSASURL.
func (s *AzureStore) GenerateProjectDocumentsUploadSASURL(projectName, fileName string) string {
	dirPath := path.Join(s.prefix, projectName, "documents")
	permission := azshare.Permission{Create: true, Write: true}

	return s.sasURL(dirPath, fileName, permission)
}

// GenerateProjectDocumentsSASURL mints a signed URL to download or delete one
// project document.
func (s *AzureStore) GenerateProjectDocumentsSASURL(dirPath, fileName string) string {
	permission := azshare.Permission{Read: true, Delete: true}

	return s.sasURL(dirPath, fileName, permission)
}

// InitProjectDirectory creates the project directory with its two fixed
// children, documents and runs. The project name is slugged; run names are
// not (see InitRunDirectory). The three creates are sequential and there is
// no rollback if a later one fails.
func (s *AzureStore) InitProjectDirectory(projectName string) error {
	base := path.Join(s.prefix, slug.Make(projectName))

	return s.createDirectories(base, path.Join(base, "documents"), path.Join(base, "runs"))
}

// InitRunDirectory creates a run directory under the project's runs
// directory, with its typed data children. The run name is used as given,
// unslugged; the euphrosyne backend constrains run names before calling.
func (s *AzureStore) InitRunDirectory(projectName, runName string) error {
	base := path.Join(s.prefix, slug.Make(projectName), "runs", runName)

	return s.createDirectories(
		base,
		path.Join(base, "processed_data"),
		path.Join(base, "raw_data"),
		path.Join(base, "HDF5"),
	)
}

// RenameRunDirectory renames a run directory. The rename never overwrites: an
// existing destination is a conflict reported as FolderCreationError.
func (s *AzureStore) RenameRunDirectory(projectName, runName, newName string) error {
	runsPath := path.Join(s.prefix, slug.Make(projectName), "runs")

	err := s.client.RenameDirectory(path.Join(runsPath, runName), path.Join(runsPath, newName), false)
	if err != nil {
		return folderCreationOrRaw(err)
	}

	return nil
}

// SetFileShareCORSPolicy replaces the CORS rules on the file service.
// allowedOrigins is a comma-separated origin list.
func (s *AzureStore) SetFileShareCORSPolicy(allowedOrigins string) error {
	return s.client.SetCORSPolicy(strings.Split(allowedOrigins, ","))
}

func (s *AzureStore) sasURL(dirPath, fileName string, permission azshare.Permission) string {
	start := s.now().UTC()
	return s.client.FileSASURL(dirPath, fileName, permission, start, start.Add(sasValidity))
}

func (s *AzureStore) createDirectories(dirPaths ...string) error {
	for _, dirPath := range dirPaths {
		if err := s.client.CreateDirectory(dirPath); err != nil {
			return folderCreationOrRaw(err)
		}
	}

	return nil
}

// folderCreationOrRaw maps conflict and missing-parent provider errors to
// FolderCreationError and lets anything else (transient transport failures)
// propagate untouched.
func folderCreationOrRaw(err error) error {
	if azshare.IsNotFound(err) || azshare.IsAlreadyExists(err) {
		return &FolderCreationError{Message: azshare.ErrorMessage(err)}
	}

	return err
}
