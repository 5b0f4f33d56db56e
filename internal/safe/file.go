// Package safe provides guarded file IO for configuration and generated
// output.
package safe

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize is the default maximum file size for safe reads (1MB).
const DefaultMaxFileSize = 1 << 20

// ReadFileOptions configures the behavior of ReadFile.
type ReadFileOptions struct {
	// MaxSize is the maximum allowed file size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// AllowSymlinks allows reading through symlink sources. Default is false for security.
	AllowSymlinks bool
}

// ReadFile reads a file with security validations.
// It rejects symlinks by default to prevent file inclusion attacks,
// validates file size, and ensures only regular files are read.
func ReadFile(path string, opts *ReadFileOptions) ([]byte, error) {
	if opts == nil {
		opts = &ReadFileOptions{}
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxFileSize
	}

	cleanPath := filepath.Clean(path)

	// Check file info without following symlinks.
	info, err := os.Lstat(cleanPath)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 && !opts.AllowSymlinks {
		return nil, fmt.Errorf("file %q is a symlink, which is not allowed for security reasons", path)
	}

	// If it's a symlink and allowed, follow it to get the real file info.
	if info.Mode()&os.ModeSymlink != 0 {
		info, err = os.Stat(cleanPath)
		if err != nil {
			return nil, err
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path %q is not a regular file", path)
	}

	// Check file size to prevent resource exhaustion.
	if info.Size() > maxSize {
		return nil, fmt.Errorf("file exceeds maximum allowed size of %d bytes", maxSize)
	}

	return os.ReadFile(cleanPath)
}

// AtomicFile stages writes in a temporary file next to the destination and
// renames it into place on Commit, so a failure partway through never
// clobbers previous content at the destination.
type AtomicFile struct {
	f         *os.File
	path      string
	tmp       string
	committed bool
}

// CreateAtomic opens a staging file for the given destination. Failure here
// is a usage error the caller reports before doing any work.
func CreateAtomic(path string) (*AtomicFile, error) {
	path = filepath.Clean(path)
	f, err := os.CreateTemp(filepath.Dir(path), ".libhook-*")
	if err != nil {
		return nil, fmt.Errorf("cannot open output %q: %w", path, err)
	}
	return &AtomicFile{f: f, path: path, tmp: f.Name()}, nil
}

// WriteString writes to the staging file.
func (a *AtomicFile) WriteString(s string) (int, error) {
	return a.f.WriteString(s)
}

// Commit publishes the staged content at the destination path.
func (a *AtomicFile) Commit() error {
	if err := a.f.Chmod(0o644); err != nil {
		return fmt.Errorf("cannot write output %q: %w", a.path, err)
	}
	if err := a.f.Close(); err != nil {
		return fmt.Errorf("cannot write output %q: %w", a.path, err)
	}
	if err := os.Rename(a.tmp, a.path); err != nil {
		_ = os.Remove(a.tmp)
		return fmt.Errorf("cannot write output %q: %w", a.path, err)
	}
	a.committed = true
	return nil
}

// Close discards the staged file unless Commit already ran, making it safe
// to defer alongside a later Commit.
func (a *AtomicFile) Close() error {
	if a.committed {
		return nil
	}
	err := a.f.Close()
	if rmErr := os.Remove(a.tmp); err == nil {
		err = rmErr
	}
	return err
}
