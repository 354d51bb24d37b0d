package projpath

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wiwski/euphrosyne-tools-api/pkg/eumodel"
)

var (
	member = &eumodel.User{ID: 1, Projects: []eumodel.Project{{ID: 10, Name: "project"}}}
	admin  = &eumodel.User{ID: 2, IsAdmin: true}
)

func TestValidateRunDataPath(t *testing.T) {
	var tests = []struct {
		name        string
		prefix      string
		path        string
		user        *eumodel.User
		expectedErr string
	}{
		{
			name:   "valid raw_data path",
			prefix: "projects",
			path:   "projects/project/runs/run/raw_data/file.txt",
			user:   member,
		},
		{
			name:   "valid HDF5 path",
			prefix: "projects",
			path:   "projects/project/runs/run/HDF5/scan.h5",
			user:   member,
		},
		{
			name:   "valid path with empty prefix",
			prefix: "",
			path:   "project/runs/run/processed_data/file.txt",
			user:   member,
		},
		{
			name:   "project and run names may contain spaces and hyphens",
			prefix: "projects",
			path:   "projects/project/runs/Run - 01/raw_data/file.txt",
			user:   member,
		},
		{
			name:        "missing data type segment",
			prefix:      "projects",
			path:        "projects/project/runs/run/file.txt",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/runs/<run_name>/(processed_data|raw_data|HDF5)/",
		},
		{
			name:        "disallowed data type",
			prefix:      "projects",
			path:        "projects/project/runs/run/other_data/file.txt",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/runs/<run_name>/(processed_data|raw_data|HDF5)/",
		},
		{
			name:        "pipe character in project segment",
			prefix:      "projects",
			path:        "projects/pro|ject/runs/run/raw_data/file.txt",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/runs/<run_name>/(processed_data|raw_data|HDF5)/",
		},
		{
			name:        "wrong prefix",
			prefix:      "projects",
			path:        "other/project/runs/run/raw_data/file.txt",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/runs/<run_name>/(processed_data|raw_data|HDF5)/",
		},
		{
			name:        "user not in project",
			prefix:      "projects",
			path:        "projects/project2/runs/run/raw_data/file.txt",
			user:        member,
			expectedErr: "user is not part of project project2",
		},
		{
			name:   "admin bypasses membership",
			prefix: "projects",
			path:   "projects/project2/runs/run/raw_data/file.txt",
			user:   admin,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := NewValidator(test.prefix).ValidateRunDataPath(test.path, test.user)
			if test.expectedErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, test.expectedErr)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	var tests = []struct {
		name        string
		prefix      string
		path        string
		user        *eumodel.User
		expectedErr string
	}{
		{
			name:   "valid document path",
			prefix: "projects",
			path:   "projects/project/documents/report.pdf",
			user:   member,
		},
		{
			name:   "valid document path with empty prefix",
			prefix: "",
			path:   "project/documents/report.pdf",
			user:   member,
		},
		{
			name:        "missing documents segment",
			prefix:      "projects",
			path:        "projects/project/report.pdf",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/documents/",
		},
		{
			name:        "run data path is not a document path",
			prefix:      "projects",
			path:        "projects/project/runs/run/raw_data/file.txt",
			user:        member,
			expectedErr: "path must start with {projects_path_prefix}/<project_name>/documents/",
		},
		{
			name:        "user not in project",
			prefix:      "projects",
			path:        "projects/project2/documents/report.pdf",
			user:        member,
			expectedErr: "user is not part of project project2",
		},
		{
			name:   "admin bypasses membership",
			prefix: "projects",
			path:   "projects/project2/documents/report.pdf",
			user:   admin,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := NewValidator(test.prefix).ValidateDocumentPath(test.path, test.user)
			if test.expectedErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, test.expectedErr)
			}
		})
	}
}
