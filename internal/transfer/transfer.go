// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transfer posts form submissions to the processing server and
// hands back the returned file. Each upload is a single attempt; failures
// are surfaced to the caller and never retried.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/pdf-toolkit/internal/httputil"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// GenericFailure is the error message used when a failed response has no body.
const GenericFailure = "Operation failed"

// StatusError is returned for non-2xx responses. Its message is the server's
// error text, so it can be shown to the user unchanged.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string { return e.Message }

// Request is a populated submission.
type Request struct {
	// Endpoint is the absolute URL the form posts to.
	Endpoint string

	// FieldName is the multipart key for the files ("pdf" or "pdfs").
	FieldName string

	// Files are the validated files to upload.
	Files []types.File

	// Fields are extra text fields (e.g. password).
	Fields map[string]string
}

// Response is a successful server reply. The caller must close Body.
type Response struct {
	// FileName is the download name derived from Content-Disposition.
	FileName string

	// ContentType is the response Content-Type header.
	ContentType string

	// Body is the processed file.
	Body io.ReadCloser
}

// Client uploads forms over HTTP.
type Client struct {
	http *http.Client
	cfg  types.UploadConfig
}

// NewClient returns a Client using hc for requests. When hc is nil a client
// with the configured timeout is created.
func NewClient(hc *http.Client, cfg types.UploadConfig) *Client {
	cfg = cfg.WithDefaults()
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: hc, cfg: cfg}
}

// Upload posts req as multipart/form-data. A non-2xx status yields a
// *StatusError carrying the response text, or GenericFailure when the body
// is empty. On success the body is returned unread. Files are streamed, so
// no request is sent when any file cannot be opened.
func (c *Client) Upload(ctx context.Context, req Request) (*Response, error) {
	payload := httputil.Payload{
		FieldName: req.FieldName,
		Fields:    req.Fields,
	}
	for _, f := range req.Files {
		if f.Open == nil {
			return nil, fmt.Errorf("file %s has no content to upload", f.Name)
		}
		payload.Files = append(payload.Files, httputil.Part{
			FileName:    f.Name,
			ContentType: "application/pdf",
			Open:        f.Open,
		})
	}

	httpReq, err := httputil.NewPostRequest(ctx, req.Endpoint, payload)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", req.Endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    httputil.ErrorText(resp, GenericFailure),
		}
	}

	return &Response{
		FileName:    FileName(resp.Header.Get("Content-Disposition"), c.cfg.FallbackName),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        resp.Body,
	}, nil
}
