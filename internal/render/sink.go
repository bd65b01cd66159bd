package render

import (
	"os"
	"path/filepath"

	"github.com/yanun0323/errors"

	"orderflow/pkg/exception"
)

// Sink stores one named artifact. Implementations must accept concurrent writes
// of distinct names.
type Sink interface {
	WriteArtifact(name string, data []byte) error
}

// DirSink writes artifacts as files under Dir.
type DirSink struct {
	Dir string
}

// NewDirSink ensures the directory exists.
func NewDirSink(dir string) (DirSink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return DirSink{}, errors.Wrapf(err, "mkdir %s", dir)
	}
	return DirSink{Dir: dir}, nil
}

// WriteArtifact writes data to Dir/name.
func (s DirSink) WriteArtifact(name string, data []byte) error {
	if name == "" {
		return exception.ErrEmptyPath
	}
	return os.WriteFile(filepath.Join(s.Dir, name), data, 0o644)
}
