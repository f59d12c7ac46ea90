// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/pdiddy/pdf-toolkit/internal/status"
	"github.com/pdiddy/pdf-toolkit/internal/transfer"
	"github.com/pdiddy/pdf-toolkit/internal/validate"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ErrSingleFile is returned when several files are submitted to a form that
// accepts one.
var ErrSingleFile = errors.New("This form accepts a single file")

// Submit validates files, uploads them to f's endpoint, and saves the
// returned file. Any failure is shown as an error banner and returned.
// Validation failures happen before any network call and before the button
// turns busy; once busy, the button is restored whatever the outcome.
func Submit(ctx context.Context, f *Form, files []types.File, extra map[string]string, d Deps) (*types.Result, error) {
	reporter := d.Reporter
	if reporter == nil {
		reporter = status.NewReporter(nil)
	}

	res, err := submit(ctx, f, files, extra, d, reporter)
	if err != nil {
		reporter.Error(err.Error())
		return nil, err
	}
	reporter.Success(fmt.Sprintf("File processed successfully! Saved %s (%d bytes)", res.Path, res.Bytes))
	return res, nil
}

func submit(ctx context.Context, f *Form, files []types.File, extra map[string]string, d Deps, reporter *status.Reporter) (*types.Result, error) {
	if !f.Multiple && len(files) > 1 {
		return nil, ErrSingleFile
	}
	if err := validate.All(files, d.MaxFileSize); err != nil {
		return nil, err
	}
	if d.SniffContent {
		if err := validate.Contents(files); err != nil {
			return nil, err
		}
	}

	f.Button.Busy()
	defer f.Button.Idle()

	reporter.Infof("processing: %s (%d file(s)) -> %s", f.ID, len(files), f.Endpoint)

	fields := maps.Clone(f.Fields)
	if fields == nil && len(extra) > 0 {
		fields = make(map[string]string, len(extra))
	}
	maps.Copy(fields, extra)

	resp, err := d.Client.Upload(ctx, transfer.Request{
		Endpoint:  f.Endpoint,
		FieldName: f.FieldName,
		Files:     files,
		Fields:    fields,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	path, n, err := d.Saver.Save(resp.FileName, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("saving %s: %w", resp.FileName, err)
	}

	return &types.Result{
		FormID:      f.ID,
		FileName:    resp.FileName,
		Path:        path,
		Bytes:       n,
		ContentType: resp.ContentType,
	}, nil
}
