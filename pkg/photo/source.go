package photo

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Source is a user selected file.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type pathSource string

// FromPath returns a Source reading the file at path.
func FromPath(path string) Source {
	return pathSource(path)
}

func (p pathSource) Name() string {
	return filepath.Base(string(p))
}

func (p pathSource) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

type bytesSource struct {
	name string
	data []byte
}

// FromBytes returns a Source over an in-memory file.
func FromBytes(name string, data []byte) Source {
	return bytesSource{name: name, data: append([]byte(nil), data...)}
}

func (b bytesSource) Name() string {
	return b.name
}

func (b bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}
