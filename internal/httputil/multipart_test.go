// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPart(name, content string) Part {
	return Part{
		FileName:    name,
		ContentType: "application/pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func TestNewPostRequest_ServerReadsForm(t *testing.T) {
	type received struct {
		password string
		names    []string
		bodies   []string
		types    []string
	}
	var got received

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		got.password = r.FormValue("password")
		for _, fh := range r.MultipartForm.File["pdfs"] {
			f, err := fh.Open()
			if !assert.NoError(t, err) {
				continue
			}
			data, _ := io.ReadAll(f)
			f.Close()
			got.names = append(got.names, fh.Filename)
			got.bodies = append(got.bodies, string(data))
			got.types = append(got.types, fh.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	p := Payload{
		FieldName: "pdfs",
		Files:     []Part{stringPart("a.pdf", "%PDF-a"), stringPart(`we"ird.pdf`, "%PDF-b")},
		Fields:    map[string]string{"password": "s3cret"},
	}
	req, err := NewPostRequest(context.Background(), ts.URL, p)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "s3cret", got.password)
	assert.Equal(t, []string{"a.pdf", `we"ird.pdf`}, got.names)
	assert.Equal(t, []string{"%PDF-a", "%PDF-b"}, got.bodies)
	assert.Equal(t, []string{"application/pdf", "application/pdf"}, got.types)
}

func TestStream_OpenFailure(t *testing.T) {
	var closed bool
	p := Payload{
		FieldName: "pdfs",
		Files: []Part{
			{
				FileName: "first.pdf",
				Open: func() (io.ReadCloser, error) {
					return closeFunc{Reader: strings.NewReader("a"), close: func() { closed = true }}, nil
				},
			},
			{
				FileName: "gone.pdf",
				Open:     func() (io.ReadCloser, error) { return nil, errors.New("no such file") },
			},
		},
	}
	_, _, err := p.Stream()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening gone.pdf")
	assert.True(t, closed, "already opened parts are closed")
}

func TestStream_MissingOpen(t *testing.T) {
	p := Payload{FieldName: "pdf", Files: []Part{{FileName: "x.pdf"}}}
	body, _, err := p.Stream()
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Contains(t, err.Error(), "x.pdf has no content")

	_, err = NewPostRequest(context.Background(), "http://localhost/encrypt", p)
	assert.Error(t, err)
}

func TestStream_DefaultContentType(t *testing.T) {
	p := Payload{FieldName: "pdf", Files: []Part{{
		FileName: "x.pdf",
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("%PDF")), nil },
	}}}
	body, ct, err := p.Stream()
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))
	assert.Contains(t, string(data), "Content-Type: application/octet-stream")
	assert.Contains(t, string(data), `name="pdf"; filename="x.pdf"`)
	assert.Contains(t, string(data), "%PDF")
}

func TestStream_ReadFailureSurfacesToReader(t *testing.T) {
	p := Payload{FieldName: "pdf", Files: []Part{{
		FileName: "bad.pdf",
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(io.MultiReader(strings.NewReader("%PDF"), errReader{})), nil
		},
	}}}
	body, _, err := p.Stream()
	require.NoError(t, err)
	defer body.Close()

	_, err = io.ReadAll(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading bad.pdf")
}

func TestStream_EarlyCloseReleasesFiles(t *testing.T) {
	closed := make(chan struct{})
	p := Payload{FieldName: "pdf", Files: []Part{{
		FileName: "big.pdf",
		Open: func() (io.ReadCloser, error) {
			big := strings.NewReader(strings.Repeat("x", 1<<20))
			return closeFunc{Reader: big, close: func() { close(closed) }}, nil
		},
	}}}
	body, _, err := p.Stream()
	require.NoError(t, err)

	buf := make([]byte, 16)
	_, err = io.ReadFull(body, buf)
	require.NoError(t, err)
	require.NoError(t, body.Close())

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("file was not closed after the body was closed")
	}
}

type closeFunc struct {
	io.Reader
	close func()
}

func (c closeFunc) Close() error {
	c.close()
	return nil
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk error") }

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain text", "server error", "server error"},
		{"trimmed", "  Password and files are required\n", "Password and files are required"},
		{"empty", "", "Operation failed"},
		{"whitespace only", " \n\t", "Operation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Body: io.NopCloser(strings.NewReader(tt.body))}
			assert.Equal(t, tt.want, ErrorText(resp, "Operation failed"))
		})
	}
}

func TestErrorText_Truncates(t *testing.T) {
	old := MaxErrorBody
	MaxErrorBody = 4
	defer func() { MaxErrorBody = old }()

	resp := &http.Response{Body: io.NopCloser(strings.NewReader("abcdefgh"))}
	assert.Equal(t, "abcd", ErrorText(resp, "fallback"))
}
