// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for building form submissions and
// reading server error bodies.
package httputil

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"strings"
)

// MaxErrorBody caps how much of a failed response body is read as the error
// message. Tests override this.
var MaxErrorBody int64 = 64 << 10

// Part is one file in a multipart payload.
type Part struct {
	// FileName is the name sent in the part's Content-Disposition.
	FileName string

	// ContentType is the part's Content-Type (default application/octet-stream).
	ContentType string

	// Open returns the part contents. The reader is closed after copying.
	Open func() (io.ReadCloser, error)
}

// Payload is a multipart form: text fields plus files under one key.
type Payload struct {
	// FieldName is the key every file is sent under.
	FieldName string

	// Files are written in order.
	Files []Part

	// Fields are extra text fields, written in sorted key order before the files.
	Fields map[string]string
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Stream opens every file part and returns a reader producing p as
// multipart/form-data, with the matching Content-Type header value. The body
// is written by a goroutine as the reader is consumed, so files are never
// buffered whole in memory. A part without Open, or one whose Open fails, is
// reported here before any byte is produced. Closing the reader early stops
// the writer and closes any files not yet copied.
func (p Payload) Stream() (io.ReadCloser, string, error) {
	readers := make([]io.ReadCloser, 0, len(p.Files))
	closeAll := func() {
		for _, rc := range readers {
			rc.Close()
		}
	}
	for _, part := range p.Files {
		if part.Open == nil {
			closeAll()
			return nil, "", fmt.Errorf("part %s has no content", part.FileName)
		}
		rc, err := part.Open()
		if err != nil {
			closeAll()
			return nil, "", fmt.Errorf("opening %s: %w", part.FileName, err)
		}
		readers = append(readers, rc)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer closeAll()
		pw.CloseWithError(p.write(mw, readers))
	}()
	return pr, mw.FormDataContentType(), nil
}

func (p Payload) write(mw *multipart.Writer, readers []io.ReadCloser) error {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := mw.WriteField(k, p.Fields[k]); err != nil {
			return fmt.Errorf("writing field %s: %w", k, err)
		}
	}

	for i, part := range p.Files {
		if err := writePart(mw, p.FieldName, part, readers[i]); err != nil {
			return err
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart writer: %w", err)
	}
	return nil
}

func writePart(mw *multipart.Writer, field string, part Part, r io.Reader) error {
	ct := part.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(part.FileName)))
	h.Set("Content-Type", ct)

	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("creating part for %s: %w", part.FileName, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("reading %s: %w", part.FileName, err)
	}
	return nil
}

// NewPostRequest builds a POST request to url whose body streams p. The
// length is unknown up front, so the body is sent chunked.
func NewPostRequest(ctx context.Context, url string, p Payload) (*http.Request, error) {
	body, contentType, err := p.Stream()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return req, nil
}

// ErrorText reads up to MaxErrorBody bytes of resp.Body and returns them
// trimmed. It returns fallback when the body is empty or unreadable.
func ErrorText(resp *http.Response, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBody))
	if err != nil {
		return fallback
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fallback
	}
	return text
}
