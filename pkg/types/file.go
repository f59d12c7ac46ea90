// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pdf-toolkit: form
// definitions, selected files, UI state, and submission results.
package types

import (
	"io"
	"os"
	"path/filepath"
)

// File is a user-selected file: a name, a byte size, and a way to read it.
type File struct {
	// Name is the file name as presented to the server (no directory).
	Name string `json:"name" yaml:"name"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Open returns a fresh reader over the file contents.
	Open func() (io.ReadCloser, error) `json:"-" yaml:"-"`
}

// LocalFile stats path and returns a File that reads it from disk.
func LocalFile(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, err
	}
	return File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// ButtonState is the visible state of a form's submit control.
type ButtonState struct {
	Disabled bool   `json:"disabled" yaml:"disabled"`
	Label    string `json:"label" yaml:"label"`
}

// Banner is an error message shown at the top of the page.
type Banner struct {
	Message     string `json:"message" yaml:"message"`
	Dismissible bool   `json:"dismissible" yaml:"dismissible"`
}

// Result describes a completed submission.
type Result struct {
	// FormID is the form that was submitted.
	FormID string `json:"form_id" yaml:"form_id"`

	// FileName is the download name derived from the response.
	FileName string `json:"file_name" yaml:"file_name"`

	// Path is where the downloaded file was written.
	Path string `json:"path" yaml:"path"`

	// Bytes is the size of the downloaded file.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// ContentType is the response Content-Type, if any.
	ContentType string `json:"content_type,omitempty" yaml:"content_type,omitempty"`
}
