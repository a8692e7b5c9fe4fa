package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// File replaces Path atomically: the document lands in a temp file in the
// same directory which is then renamed over Path.
type File struct {
	Path string
	Perm os.FileMode // zero means 0o644
}

// Write stores doc at Path. A failed write leaves any existing file intact.
func (f *File) Write(doc []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), ".memlens-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(doc); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	perm := f.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}
