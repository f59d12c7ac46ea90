// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transfer

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

const fakePDFContent = "%PDF-1.4 fake"

func pdfFile(name string) types.File {
	return types.File{
		Name: name,
		Size: int64(len(fakePDFContent)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(fakePDFContent)), nil
		},
	}
}

func newClient(ts *httptest.Server) *Client {
	return NewClient(ts.Client(), types.UploadConfig{})
}

func TestUpload_Success(t *testing.T) {
	var gotAgent, gotField string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			for k := range r.MultipartForm.File {
				gotField = k
			}
		}
		w.Header().Set("Content-Disposition", "attachment; filename=out.pdf")
		w.Header().Set("Content-Type", "application/pdf")
		io.WriteString(w, "processed bytes")
	}))
	defer ts.Close()

	resp, err := newClient(ts).Upload(context.Background(), Request{
		Endpoint:  ts.URL + "/compress",
		FieldName: "pdf",
		Files:     []types.File{pdfFile("in.pdf")},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, "out.pdf", resp.FileName)
	assert.Equal(t, "application/pdf", resp.ContentType)
	assert.Equal(t, "processed bytes", string(body))
	assert.Equal(t, types.DefaultUserAgent, gotAgent)
	assert.Equal(t, "pdf", gotField)
}

func TestUpload_NoContentDisposition(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "bytes")
	}))
	defer ts.Close()

	resp, err := newClient(ts).Upload(context.Background(), Request{
		Endpoint:  ts.URL,
		FieldName: "pdf",
		Files:     []types.File{pdfFile("in.pdf")},
	})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "processed.pdf", resp.FileName)
}

func TestUpload_CustomFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, "bytes")
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), types.UploadConfig{FallbackName: "result.zip"})
	resp, err := c.Upload(context.Background(), Request{Endpoint: ts.URL, FieldName: "pdfs"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "result.zip", resp.FileName)
}

func TestUpload_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"server error with text", http.StatusInternalServerError, "server error", "server error"},
		{"bad request with text", http.StatusBadRequest, "Password and files are required", "Password and files are required"},
		{"empty body", http.StatusBadGateway, "", GenericFailure},
		{"payload too large", http.StatusRequestEntityTooLarge, "  \n", GenericFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer ts.Close()

			resp, err := newClient(ts).Upload(context.Background(), Request{
				Endpoint:  ts.URL,
				FieldName: "pdfs",
				Files:     []types.File{pdfFile("a.pdf")},
			})
			require.Error(t, err)
			assert.Nil(t, resp)
			assert.EqualError(t, err, tt.wantMsg)

			var serr *StatusError
			require.True(t, errors.As(err, &serr))
			assert.Equal(t, tt.status, serr.StatusCode)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "uploads are not retried")
		})
	}
}

func TestUpload_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewClient(nil, types.UploadConfig{}).Upload(context.Background(), Request{
		Endpoint:  url,
		FieldName: "pdf",
		Files:     []types.File{pdfFile("a.pdf")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posting to")
}

func TestUpload_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newClient(ts).Upload(ctx, Request{Endpoint: ts.URL, FieldName: "pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUpload_UnopenableFileSendsNothing(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer ts.Close()

	tests := []struct {
		name string
		file types.File
		want string
	}{
		{
			name: "no opener",
			file: types.File{Name: "empty.pdf", Size: 10},
			want: "empty.pdf has no content",
		},
		{
			name: "open fails",
			file: types.File{Name: "gone.pdf", Open: func() (io.ReadCloser, error) {
				return nil, errors.New("removed")
			}},
			want: "opening gone.pdf",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newClient(ts).Upload(context.Background(), Request{
				Endpoint:  ts.URL,
				FieldName: "pdfs",
				Files:     []types.File{pdfFile("ok.pdf"), tt.file},
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Zero(t, calls.Load())
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"plain", "attachment; filename=out.pdf", "out.pdf"},
		{"quoted", `attachment; filename="encrypted_pdfs.zip"`, "encrypted_pdfs.zip"},
		{"quoted with space", `attachment; filename="a b.pdf"`, "a b.pdf"},
		{"trailing params", "attachment; filename=out.pdf; size=10", "out.pdf"},
		{"missing header", "", "processed.pdf"},
		{"no filename", "inline", "processed.pdf"},
		{"empty filename", "attachment; filename=", "processed.pdf"},
		{"empty quoted", `attachment; filename=""`, "processed.pdf"},
		{"path traversal", "attachment; filename=../../etc/passwd", "passwd"},
		{"windows path", `attachment; filename="C:\tmp\out.pdf"`, "out.pdf"},
		{"dot dot", "attachment; filename=..", "processed.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.header, "processed.pdf"))
		})
	}
}
