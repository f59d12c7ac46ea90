// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks selected files before they are uploaded. A file
// must carry a .pdf extension (any case) and must not exceed the configured
// size limit. Validation runs over every file before any network call, so a
// single bad file aborts the whole submission.
package validate

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ContentTypePDF is the MIME type accepted by Content.
const ContentTypePDF = "application/pdf"

var (
	// ErrNotPDF is returned for files that are not PDFs.
	ErrNotPDF = errors.New("Only PDF files are allowed")

	// ErrTooLarge is returned for files over the size limit.
	ErrTooLarge = errors.New("File size must be less than 100MB")

	// ErrNoFiles is returned when a submission carries no files.
	ErrNoFiles = errors.New("No files selected")
)

// Error reports which file failed validation. Its message is the user-facing
// reason; Unwrap exposes the sentinel.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// IsPDFName reports whether name ends in ".pdf", ignoring case.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// File checks a single file's extension and size. A maxSize of zero or less
// uses types.DefaultMaxFileSize. A size equal to the limit passes.
func File(f types.File, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = types.DefaultMaxFileSize
	}
	if !IsPDFName(f.Name) {
		return &Error{File: f.Name, Err: ErrNotPDF}
	}
	if f.Size > maxSize {
		if maxSize != types.DefaultMaxFileSize {
			return &Error{File: f.Name, Err: fmt.Errorf("%w (limit %d bytes)", ErrTooLarge, maxSize)}
		}
		return &Error{File: f.Name, Err: ErrTooLarge}
	}
	return nil
}

// All validates files in order and returns the first failure.
func All(files []types.File, maxSize int64) error {
	if len(files) == 0 {
		return ErrNoFiles
	}
	for _, f := range files {
		if err := File(f, maxSize); err != nil {
			return err
		}
	}
	return nil
}

// Content sniffs the leading bytes of r and returns ErrNotPDF unless they
// identify a PDF document.
func Content(r io.Reader) error {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return fmt.Errorf("reading file header: %w", err)
	}
	if !mt.Is(ContentTypePDF) {
		return ErrNotPDF
	}
	return nil
}

// Contents opens each file and runs Content over it.
func Contents(files []types.File) error {
	for _, f := range files {
		if f.Open == nil {
			return &Error{File: f.Name, Err: fmt.Errorf("file %s cannot be opened", f.Name)}
		}
		rc, err := f.Open()
		if err != nil {
			return &Error{File: f.Name, Err: fmt.Errorf("opening %s: %w", f.Name, err)}
		}
		err = Content(rc)
		rc.Close()
		if err != nil {
			return &Error{File: f.Name, Err: err}
		}
	}
	return nil
}
