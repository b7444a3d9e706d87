// Package staging buffers uploaded byte streams to local disk before they
// are forwarded to the remote object store.
package staging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// StagedFile is a handle to a fully written local copy of an upload.
type StagedFile struct {
	Path string
	Size int64

	cleanup sync.Once
}

// Cleanup removes the staged file. It is idempotent and safe to call on
// every exit path, including after a partial failure.
func (f *StagedFile) Cleanup() {
	f.cleanup.Do(func() {
		_ = os.Remove(f.Path)
	})
}

// Area stages incoming streams into a local directory.
type Area struct {
	dir string
}

// NewArea creates a staging area rooted at dir. An empty dir means the
// OS temp directory.
func NewArea(dir string) *Area {
	return &Area{dir: dir}
}

// Stage copies r to a uniquely named file under the staging directory and
// returns a handle to it. The file is fully written and closed before the
// handle is returned. On any copy failure the partial file is removed and
// no handle is returned.
func (a *Area) Stage(r io.Reader, ext string) (*StagedFile, error) {
	f, err := os.CreateTemp(a.dir, "staged-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("stage upload: %w", err)
	}

	return &StagedFile{Path: f.Name(), Size: n}, nil
}
