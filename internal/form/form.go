// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form binds configured upload forms and runs submissions. Each
// bound Form carries its resolved endpoint, multipart field name, and its
// own submit Button; Submit validates, uploads, and saves as one linear
// step bracketed by the busy indicator.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/url"
	"strings"

	"github.com/pdiddy/pdf-toolkit/internal/download"
	"github.com/pdiddy/pdf-toolkit/internal/status"
	"github.com/pdiddy/pdf-toolkit/internal/transfer"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ErrUnknownForm is returned when submitting a form id that was never bound.
var ErrUnknownForm = errors.New("unknown form")

// Form is a bound upload form.
type Form struct {
	// ID names the form.
	ID string

	// Endpoint is the resolved absolute URL the form posts to.
	Endpoint string

	// FieldName is the multipart key for the files.
	FieldName string

	// Multiple reports whether more than one file may be submitted.
	Multiple bool

	// Fields are extra text fields sent with every submission.
	Fields map[string]string

	// Button is the form's submit control.
	Button *status.Button
}

// Deps are the collaborators a submission needs.
type Deps struct {
	Client   *transfer.Client
	Saver    *download.Saver
	Reporter *status.Reporter

	// MaxFileSize is the per-file size limit in bytes.
	MaxFileSize int64

	// SniffContent enables checking file contents for a PDF header.
	SniffContent bool
}

// Binder holds the bound forms in configuration order.
type Binder struct {
	forms []*Form
	byID  map[string]*Form
	deps  Deps
}

// NewBinder binds every form in cfgs. Relative endpoints are resolved
// against baseURL. Each form's button records its original label.
func NewBinder(cfgs []types.FormConfig, baseURL string, deps Deps) (*Binder, error) {
	b := &Binder{byID: make(map[string]*Form), deps: deps}
	for _, cfg := range cfgs {
		f, err := bind(cfg, baseURL)
		if err != nil {
			return nil, err
		}
		if _, dup := b.byID[f.ID]; dup {
			return nil, fmt.Errorf("duplicate form id %q", f.ID)
		}
		b.forms = append(b.forms, f)
		b.byID[f.ID] = f
	}
	return b, nil
}

func bind(cfg types.FormConfig, baseURL string) (*Form, error) {
	id := strings.TrimSpace(cfg.ID)
	if id == "" {
		return nil, fmt.Errorf("form with endpoint %q has no id", cfg.Endpoint)
	}
	endpoint, err := ResolveEndpoint(baseURL, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("form %q: %w", id, err)
	}
	field := cfg.FieldName
	if field == "" {
		field = "pdf"
		if cfg.Multiple {
			field = "pdfs"
		}
	}
	label := cfg.Label
	if label == "" {
		label = "Submit"
	}
	return &Form{
		ID:        id,
		Endpoint:  endpoint,
		FieldName: field,
		Multiple:  cfg.Multiple,
		Fields:    maps.Clone(cfg.Fields),
		Button:    status.NewButton(label),
	}, nil
}

// ResolveEndpoint returns endpoint as an absolute URL. Absolute endpoints
// are returned unchanged; relative ones are resolved against baseURL.
func ResolveEndpoint(baseURL, endpoint string) (string, error) {
	if endpoint == "" {
		return "", errors.New("endpoint is empty")
	}
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if baseURL == "" {
		return "", fmt.Errorf("relative endpoint %q requires base_url", endpoint)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base_url %q: %w", baseURL, err)
	}
	if !base.IsAbs() {
		return "", fmt.Errorf("base_url %q is not absolute", baseURL)
	}
	return base.ResolveReference(ref).String(), nil
}

// Forms returns the bound forms in configuration order.
func (b *Binder) Forms() []*Form {
	return b.forms
}

// Lookup returns the bound form with the given id.
func (b *Binder) Lookup(id string) (*Form, error) {
	f, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, id)
	}
	return f, nil
}

// Submit runs a submission of files through the form named id. extra fields
// override the form's configured fields for this submission only.
func (b *Binder) Submit(ctx context.Context, id string, files []types.File, extra map[string]string) (*types.Result, error) {
	f, err := b.Lookup(id)
	if err != nil {
		if b.deps.Reporter != nil {
			b.deps.Reporter.Error(err.Error())
		}
		return nil, err
	}
	return Submit(ctx, f, files, extra, b.deps)
}
