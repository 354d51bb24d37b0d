package projdata

import (
	"path"

	"github.com/wiwski/euphrosyne-tools-api/pkg/eumodel"
)

// walkFiles walks dirPath depth-first and calls fn for every file below it,
// as soon as it is known. Files of a directory come before anything from its
// subdirectories, and subdirectories are visited in listing order. Empty
// directories contribute nothing. A non-nil error from fn stops the walk.
//
// The walk keeps an explicit worklist instead of recursing, so tree depth is
// not bounded by the call stack.
//
// In detailed mode one extra properties call is made per file to fill in the
// last-modified time the bulk listing omits.
func (s *AzureStore) walkFiles(dirPath string, detailed bool, fn func(eumodel.ProjectFile) error) error {
	pending := []string{dirPath}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := s.client.ListDirectory(current)
		if err != nil {
			return err
		}

		var subdirs []string
		for _, entry := range entries {
			entryPath := path.Join(current, entry.Name)

			if entry.IsDirectory {
				subdirs = append(subdirs, entryPath)
				continue
			}

			file := eumodel.ProjectFile{
				Name: entry.Name,
				Size: entry.Size,
				Path: entryPath,
			}

			if detailed {
				props, err := s.client.GetFileProperties(entryPath)
				if err != nil {
					return err
				}
				lastModified := props.LastModified
				file.LastModified = &lastModified
				file.Size = props.Size
			}

			if err := fn(file); err != nil {
				return err
			}
		}

		// Push in reverse so the first subdirectory is walked next.
		for i := len(subdirs) - 1; i >= 0; i-- {
			pending = append(pending, subdirs[i])
		}
	}

	return nil
}

func (s *AzureStore) listFilesRecursive(dirPath string, detailed bool) ([]eumodel.ProjectFile, error) {
	var files []eumodel.ProjectFile

	err := s.walkFiles(dirPath, detailed, func(file eumodel.ProjectFile) error {
		files = append(files, file)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
