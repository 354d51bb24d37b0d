package azshare

import (
	"fmt"
	"io"
	"path"
)

type byteRange struct {
	start int64
	end   int64
}

// ShareFile is a seekable read-only handle on one file of the share. Reads
// are served by ranged downloads and memoized per exact range for the
// lifetime of the handle, so repeating an identical read after seeking back
// does not hit the network again. The cache belongs to this handle alone and
// goes away with it.
//
// The file is assumed not to change while the handle is in use: the content
// length is fetched once and never re-validated.
type ShareFile struct {
	client        Client
	dirPath       string
	fileName      string
	offset        int64
	contentLength int64
	lengthKnown   bool
	chunks        map[byteRange][]byte
}

func NewShareFile(client Client, dirPath, fileName string) *ShareFile {
	return &ShareFile{
		client:   client,
		dirPath:  dirPath,
		fileName: fileName,
		chunks:   make(map[byteRange][]byte),
	}
}

// Read fetches the byte range [offset, offset+len(p)) and advances the offset
// by len(p), whether or not the share returned that many bytes. Seeking past
// the end of the file is legal; reading there returns io.EOF.
func (f *ShareFile) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	content, err := f.readChunk(f.offset, f.offset+int64(len(p))-1)
	if err != nil {
		return 0, err
	}

	f.offset += int64(len(p))

	n := copy(p, content)
	if n == 0 {
		return 0, io.EOF
	}
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

// ReadToEnd fetches everything from the current offset through the end of the
// file and leaves the offset at the end.
func (f *ShareFile) ReadToEnd() ([]byte, error) {
	key := byteRange{start: f.offset, end: -1}
	content, ok := f.chunks[key]
	if !ok {
		resp, err := f.client.DownloadRange(f.dirPath, f.fileName, f.offset, -1)
		if err != nil {
			return nil, err
		}
		f.contentLength = resp.ContentLength
		f.lengthKnown = true
		content = resp.Content
		f.chunks[key] = content
	}

	f.offset = f.contentLength
	return content, nil
}

func (f *ShareFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		f.offset = offset
	case io.SeekCurrent:
		f.offset += offset
	case io.SeekEnd:
		length, err := f.Length()
		if err != nil {
			return 0, err
		}
		f.offset = length + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if f.offset < 0 {
		return 0, fmt.Errorf("negative position: %d", f.offset)
	}

	return f.offset, nil
}

// Tell returns the current offset.
func (f *ShareFile) Tell() int64 {
	return f.offset
}

// Length returns the total file size. It is fetched lazily on first use and
// treated as immutable afterwards.
func (f *ShareFile) Length() (int64, error) {
	if !f.lengthKnown {
		props, err := f.client.GetFileProperties(path.Join(f.dirPath, f.fileName))
		if err != nil {
			return 0, err
		}
		f.contentLength = props.Size
		f.lengthKnown = true
	}

	return f.contentLength, nil
}

func (f *ShareFile) readChunk(start, end int64) ([]byte, error) {
	key := byteRange{start: start, end: end}
	if content, ok := f.chunks[key]; ok {
		return content, nil
	}

	resp, err := f.client.DownloadRange(f.dirPath, f.fileName, start, end)
	if err != nil {
		return nil, err
	}

	f.chunks[key] = resp.Content
	return resp.Content, nil
}
