package storage

import (
	"io"
	"os"
	"path/filepath"
)

// Sink creates named artifacts. Create must truncate an existing artifact.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes artifacts as regular files inside Dir. An empty Dir means
// the current working directory.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	return os.OpenFile(s.Path(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

// Path returns where an artifact with the given name is stored.
func (s *DirSink) Path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}
