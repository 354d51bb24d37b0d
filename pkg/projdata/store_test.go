package projdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wiwski/euphrosyne-tools-api/pkg/azshare"
)

var fixedNow = time.Date(2024, 6, 22, 11, 22, 33, 0, time.UTC)

func newTestStore(mock *azshare.MockClient) *AzureStore {
	store := NewAzureStore(mock, "projects")
	store.now = func() time.Time { return fixedNow }
	return store
}

func TestGenerateRunDataSASURL(t *testing.T) {
	var tests = []struct {
		name               string
		isAdmin            bool
		expectedPermission azshare.Permission
	}{
		{
			name:               "regular user can only read",
			isAdmin:            false,
			expectedPermission: azshare.Permission{Read: true},
		},
		{
			name:               "admin can read, write, create and delete",
			isAdmin:            true,
			expectedPermission: azshare.Permission{Read: true, Create: true, Write: true, Delete: true},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mock := azshare.NewMockClient()
			store := newTestStore(mock)

			url := store.GenerateRunDataSASURL("projects/project/runs/run/raw_data", "file.txt", test.isAdmin)

			require.Equal(t, "https://storageaccount.file.core.windows.net/fileshare/projects/project/runs/run/raw_data/file.txt?params=params", url)
			require.Equal(t, test.expectedPermission, mock.LastPermission)
			require.Equal(t, fixedNow, mock.LastSASStart)
			require.Equal(t, fixedNow.Add(5*time.Minute), mock.LastSASExpiry)
		})
	}
}

func TestGenerateProjectDocumentsUploadSASURL(t *testing.T) {
	mock := azshare.NewMockClient()
	store := newTestStore(mock)

	url := store.GenerateProjectDocumentsUploadSASURL("project", "hello.txt")

	require.Equal(t, "https://storageaccount.file.core.windows.net/fileshare/projects/project/documents/hello.txt?params=params", url)
	require.Equal(t, "projects/project/documents", mock.LastSASDir)
	require.Equal(t, "hello.txt", mock.LastSASFile)
	require.Equal(t, azshare.Permission{Create: true, Write: true}, mock.LastPermission)
}

func TestGenerateProjectDocumentsSASURL(t *testing.T) {
	mock := azshare.NewMockClient()
	store := newTestStore(mock)

	url := store.GenerateProjectDocumentsSASURL("projects/project/documents", "hello.txt")

	require.Equal(t, "https://storageaccount.file.core.windows.net/fileshare/projects/project/documents/hello.txt?params=params", url)
	require.Equal(t, azshare.Permission{Read: true, Delete: true}, mock.LastPermission)
}

func TestInitProjectDirectory(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	require.NoError(t, store.InitProjectDirectory("My Project"))

	// The project name is slugged, the fixed children are created.
	require.True(t, mock.HasDirectory("projects/my-project"))
	require.True(t, mock.HasDirectory("projects/my-project/documents"))
	require.True(t, mock.HasDirectory("projects/my-project/runs"))
	require.Equal(t, 3, mock.CreateCalls)

	// A second init conflicts.
	err := store.InitProjectDirectory("My Project")
	var folderErr *FolderCreationError
	require.ErrorAs(t, err, &folderErr)
	require.Equal(t, "The specified resource already exists.", folderErr.Message)
}

func TestInitRunDirectory(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	require.NoError(t, store.InitProjectDirectory("My Project"))
	require.NoError(t, store.InitRunDirectory("My Project", "Run 1"))

	// The run name is used as given, without slugging.
	require.True(t, mock.HasDirectory("projects/my-project/runs/Run 1"))
	require.True(t, mock.HasDirectory("projects/my-project/runs/Run 1/processed_data"))
	require.True(t, mock.HasDirectory("projects/my-project/runs/Run 1/raw_data"))
	require.True(t, mock.HasDirectory("projects/my-project/runs/Run 1/HDF5"))

	err := store.InitRunDirectory("My Project", "Run 1")
	var folderErr *FolderCreationError
	require.ErrorAs(t, err, &folderErr)
}

func TestInitRunDirectoryWithoutProject(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	// The parent runs directory does not exist.
	err := store.InitRunDirectory("My Project", "run")
	var folderErr *FolderCreationError
	require.ErrorAs(t, err, &folderErr)
	require.Equal(t, "The specified parent path does not exist.", folderErr.Message)
}

func TestRenameRunDirectory(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	require.NoError(t, store.InitProjectDirectory("My Project"))
	require.NoError(t, store.InitRunDirectory("My Project", "myrun"))

	require.NoError(t, store.RenameRunDirectory("My Project", "myrun", "myrun2"))
	require.False(t, mock.HasDirectory("projects/my-project/runs/myrun"))
	require.True(t, mock.HasDirectory("projects/my-project/runs/myrun2"))
	require.True(t, mock.HasDirectory("projects/my-project/runs/myrun2/raw_data"))
}

func TestRenameRunDirectoryExistingDestination(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	require.NoError(t, store.InitProjectDirectory("My Project"))
	require.NoError(t, store.InitRunDirectory("My Project", "myrun"))
	require.NoError(t, store.InitRunDirectory("My Project", "myrun2"))

	err := store.RenameRunDirectory("My Project", "myrun", "myrun2")
	var folderErr *FolderCreationError
	require.ErrorAs(t, err, &folderErr)

	// The source is left intact.
	require.True(t, mock.HasDirectory("projects/my-project/runs/myrun"))
}

func TestRenameRunDirectoryMissingSource(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddDirectory("projects")
	store := newTestStore(mock)

	require.NoError(t, store.InitProjectDirectory("My Project"))

	err := store.RenameRunDirectory("My Project", "nope", "other")
	var folderErr *FolderCreationError
	require.ErrorAs(t, err, &folderErr)
}

func TestDownloadRunFile(t *testing.T) {
	mock := azshare.NewMockClient()
	mock.AddFile("projects/project/runs/run/raw_data/scan.dat", []byte("0123456789"), fixedNow)
	store := newTestStore(mock)

	f := store.DownloadRunFile("projects/project/runs/run/raw_data/scan.dat")
	content, err := f.ReadToEnd()
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), content)
}

func TestSetFileShareCORSPolicy(t *testing.T) {
	mock := azshare.NewMockClient()
	store := newTestStore(mock)

	require.NoError(t, store.SetFileShareCORSPolicy("https://a.example.com,https://b.example.com"))
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, mock.LastCORS)
	require.Equal(t, 1, mock.CORSCalls)
}
