package azshare

import (
	"path"
	"sort"
	"strings"
	"time"
)

type mockFile struct {
	content      []byte
	lastModified time.Time
}

// MockClient is an in-memory Client used by tests. It keeps a directory tree,
// counts calls so tests can assert on network round trips, and records the
// arguments of the last SAS request.
type MockClient struct {
	Account string
	Share   string

	ListCalls       int
	PropertiesCalls int
	DownloadCalls   int
	CreateCalls     int
	RenameCalls     int
	CORSCalls       int

	LastPermission Permission
	LastSASDir     string
	LastSASFile    string
	LastSASStart   time.Time
	LastSASExpiry  time.Time
	LastCORS       []string

	dirs  map[string]bool
	files map[string]*mockFile
	err   error
}

func NewMockClient() *MockClient {
	return &MockClient{
		Account: "storageaccount",
		Share:   "fileshare",
		dirs:    make(map[string]bool),
		files:   make(map[string]*mockFile),
	}
}

// SetError forces every subsequent call to fail with err.
func (c *MockClient) SetError(err error) {
	c.err = err
}

// AddDirectory creates dirPath and any missing parents.
func (c *MockClient) AddDirectory(dirPath string) {
	p := path.Clean(dirPath)
	for p != "." && p != "/" {
		c.dirs[p] = true
		p = path.Dir(p)
	}
}

// AddFile creates a file and its parent directories.
func (c *MockClient) AddFile(filePath string, content []byte, lastModified time.Time) {
	filePath = path.Clean(filePath)
	c.AddDirectory(path.Dir(filePath))
	c.files[filePath] = &mockFile{content: content, lastModified: lastModified}
}

// HasDirectory reports whether dirPath currently exists.
func (c *MockClient) HasDirectory(dirPath string) bool {
	return c.dirs[path.Clean(dirPath)]
}

func (c *MockClient) ListDirectory(dirPath string) ([]DirEntry, error) {
	c.ListCalls++
	if c.err != nil {
		return nil, c.err
	}

	dirPath = path.Clean(dirPath)
	if !c.dirExists(dirPath) {
		return nil, notFoundError()
	}

	var files, dirs []string
	for p := range c.files {
		if path.Dir(p) == dirPath {
			files = append(files, path.Base(p))
		}
	}
	for p := range c.dirs {
		if path.Dir(p) == dirPath {
			dirs = append(dirs, path.Base(p))
		}
	}
	sort.Strings(files)
	sort.Strings(dirs)

	var entries []DirEntry
	for _, name := range files {
		entries = append(entries, DirEntry{Name: name, Size: int64(len(c.files[path.Join(dirPath, name)].content))})
	}
	for _, name := range dirs {
		entries = append(entries, DirEntry{Name: name, IsDirectory: true})
	}

	return entries, nil
}

func (c *MockClient) GetFileProperties(filePath string) (*FileProperties, error) {
	c.PropertiesCalls++
	if c.err != nil {
		return nil, c.err
	}

	f, ok := c.files[path.Clean(filePath)]
	if !ok {
		return nil, notFoundError()
	}

	return &FileProperties{
		Name:         path.Base(filePath),
		Size:         int64(len(f.content)),
		LastModified: f.lastModified,
	}, nil
}

func (c *MockClient) DownloadRange(dirPath, fileName string, startRange, endRange int64) (*RangeResponse, error) {
	c.DownloadCalls++
	if c.err != nil {
		return nil, c.err
	}

	f, ok := c.files[path.Join(dirPath, fileName)]
	if !ok {
		return nil, notFoundError()
	}

	length := int64(len(f.content))
	start := startRange
	if start > length {
		start = length
	}
	end := length
	if endRange >= 0 && endRange+1 < length {
		end = endRange + 1
	}
	if end < start {
		end = start
	}

	return &RangeResponse{Content: f.content[start:end], ContentLength: length}, nil
}

func (c *MockClient) CreateDirectory(dirPath string) error {
	c.CreateCalls++
	if c.err != nil {
		return c.err
	}

	dirPath = path.Clean(dirPath)
	if c.dirs[dirPath] {
		return alreadyExistsError()
	}
	if !c.dirExists(path.Dir(dirPath)) {
		return &StorageError{StatusCode: 404, Code: "ParentNotFound", Message: "The specified parent path does not exist."}
	}

	c.dirs[dirPath] = true
	return nil
}

func (c *MockClient) RenameDirectory(dirPath, destPath string, overwrite bool) error {
	c.RenameCalls++
	if c.err != nil {
		return c.err
	}

	dirPath, destPath = path.Clean(dirPath), path.Clean(destPath)
	if !c.dirs[dirPath] {
		return notFoundError()
	}
	if c.dirs[destPath] && !overwrite {
		return alreadyExistsError()
	}

	rename := func(p string) (string, bool) {
		if p == dirPath {
			return destPath, true
		}
		if strings.HasPrefix(p, dirPath+"/") {
			return destPath + strings.TrimPrefix(p, dirPath), true
		}
		return p, false
	}

	for p := range c.dirs {
		if moved, ok := rename(p); ok {
			delete(c.dirs, p)
			c.dirs[moved] = true
		}
	}
	for p, f := range c.files {
		if moved, ok := rename(p); ok {
			delete(c.files, p)
			c.files[moved] = f
		}
	}

	return nil
}

func (c *MockClient) FileSASURL(dirPath, fileName string, perm Permission, start, expiry time.Time) string {
	c.LastPermission = perm
	c.LastSASDir = dirPath
	c.LastSASFile = fileName
	c.LastSASStart = start
	c.LastSASExpiry = expiry

	return "https://" + c.Account + ".file.core.windows.net/" + path.Join(c.Share, dirPath, fileName) + "?params=params"
}

func (c *MockClient) SetCORSPolicy(allowedOrigins []string) error {
	c.CORSCalls++
	if c.err != nil {
		return c.err
	}

	c.LastCORS = allowedOrigins
	return nil
}

func (c *MockClient) dirExists(dirPath string) bool {
	if dirPath == "." || dirPath == "/" || dirPath == "" {
		return true
	}
	return c.dirs[dirPath]
}

func notFoundError() *StorageError {
	return &StorageError{StatusCode: 404, Code: "ResourceNotFound", Message: "The specified resource does not exist."}
}

func alreadyExistsError() *StorageError {
	return &StorageError{StatusCode: 409, Code: "ResourceAlreadyExists", Message: "The specified resource already exists."}
}
