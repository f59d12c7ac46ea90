// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package download saves processed files returned by the server. Bodies are
// streamed into a temporary file in the output directory and renamed into
// place once fully written, so a partial download never appears under its
// final name.
package download

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
)

// Saver writes downloads into a directory.
type Saver struct {
	fs  afero.Fs
	dir string
}

// NewSaver returns a Saver writing into dir on fs. A nil fs uses the OS
// filesystem.
func NewSaver(fs afero.Fs, dir string) *Saver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Saver{fs: fs, dir: dir}
}

// Dir returns the output directory.
func (s *Saver) Dir() string { return s.dir }

// Save copies body to dir/name through a temporary file and returns the
// final path and byte count. The temporary file is removed on failure.
// An existing file with the same name is replaced. Only the base of name is
// used, and names that resolve outside dir are rejected.
func (s *Saver) Save(name string, body io.Reader) (string, int64, error) {
	name = filepath.Base(name)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", 0, fmt.Errorf("invalid download name %q", name)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating directory %s: %w", s.dir, err)
	}
	destPath := filepath.Join(s.dir, name)

	tmpFile, err := afero.TempFile(s.fs, s.dir, ".download-*.tmp")
	if err != nil {
		return "", 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	n, copyErr := io.Copy(tmpFile, body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		s.fs.Remove(tmpPath)
		return "", 0, fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		s.fs.Remove(tmpPath)
		return "", 0, fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := s.fs.Rename(tmpPath, destPath); err != nil {
		s.fs.Remove(tmpPath)
		return "", 0, fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, n, nil
}
