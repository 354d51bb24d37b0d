package projdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wiwski/euphrosyne-tools-api/pkg/azshare"
)

var lastModified = time.Date(2024, 6, 22, 11, 22, 33, 0, time.UTC)

// newDocumentsTree builds projects/project/documents with three files spread
// over nested directories and two empty directories.
func newDocumentsTree() *azshare.MockClient {
	mock := azshare.NewMockClient()
	mock.AddFile("projects/project/documents/a.txt", []byte("aaa"), lastModified)
	mock.AddFile("projects/project/documents/sub/b.txt", []byte("bbbb"), lastModified)
	mock.AddFile("projects/project/documents/sub/deep/c.txt", []byte("c"), lastModified)
	mock.AddDirectory("projects/project/documents/empty")
	mock.AddDirectory("projects/project/documents/sub/empty")

	return mock
}

func TestGetProjectDocuments(t *testing.T) {
	mock := newDocumentsTree()
	store := NewAzureStore(mock, "projects")

	files, err := store.GetProjectDocuments("project")
	require.NoError(t, err)

	// Empty directories contribute nothing; files come before subdirectory
	// contents.
	require.Len(t, files, 3)
	require.Equal(t, "a.txt", files[0].Name)
	require.Equal(t, "b.txt", files[1].Name)
	require.Equal(t, "c.txt", files[2].Name)
	require.Equal(t, "projects/project/documents/sub/deep/c.txt", files[2].Path)
	require.Equal(t, int64(4), files[1].Size)

	// Detailed mode: one properties call per file, last-modified filled in.
	require.Equal(t, 3, mock.PropertiesCalls)
	for _, f := range files {
		require.NotNil(t, f.LastModified)
		require.Equal(t, lastModified, *f.LastModified)
	}
}

func TestGetProjectDocumentsNotFound(t *testing.T) {
	store := NewAzureStore(azshare.NewMockClient(), "projects")

	_, err := store.GetProjectDocuments("project")
	require.ErrorIs(t, err, ErrProjectDocumentsNotFound)
}

func TestGetRunFiles(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddFile("projects/project/runs/run/raw_data/scan1.dat", []byte("12345"), lastModified)
	mock.AddFile("projects/project/runs/run/raw_data/batch/scan2.dat", []byte("678"), lastModified)
	mock.AddDirectory("projects/project/runs/run/raw_data/empty")
	store := NewAzureStore(mock, "projects")

	files, err := store.GetRunFiles("project", "run", RunDataTypeRaw)
	require.NoError(t, err)
	require.Len(t, files, 2)
	require.Equal(t, "scan1.dat", files[0].Name)
	require.Equal(t, int64(5), files[0].Size)
	require.Equal(t, "projects/project/runs/run/raw_data/scan1.dat", files[0].Path)
	require.Equal(t, "scan2.dat", files[1].Name)

	// Fast mode: no per-file properties fetch, no last-modified.
	require.Equal(t, 0, mock.PropertiesCalls)
	for _, f := range files {
		require.Nil(t, f.LastModified)
	}
}

func TestGetRunFilesNotFound(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects/project/runs/run/raw_data")
	store := NewAzureStore(mock, "projects")

	_, err := store.GetRunFiles("project", "run", RunDataTypeProcessed)
	require.ErrorIs(t, err, ErrRunDataNotFound)
}

func TestGetRunFilesEmptyDirectoryIsNotAnError(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects/project/runs/run/HDF5")
	store := NewAzureStore(mock, "projects")

	files, err := store.GetRunFiles("project", "run", RunDataTypeHDF5)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestRunDataTypeValid(t *testing.T) {
	require.True(t, RunDataTypeRaw.Valid())
	require.True(t, RunDataTypeProcessed.Valid())
	require.True(t, RunDataTypeHDF5.Valid())
	require.False(t, RunDataType("documents").Valid())
	require.False(t, RunDataType("").Valid())
}
