// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/form"
	"github.com/pdiddy/pdf-toolkit/internal/secrets"
	"github.com/pdiddy/pdf-toolkit/internal/status"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var submitCmd = &cobra.Command{
	Use:   "submit <form> <files...>",
	Short: "Upload PDFs through a form and save the processed result",
	Long: `Submit validates the given PDFs (extension .pdf, at most 100MB each), posts
them to the form's endpoint as multipart/form-data, and saves the returned
file to the output directory. The file name comes from the server's
Content-Disposition header, or "processed.pdf" when none is given.

Extra form fields such as a password are passed with --field key=value or
read from .secrets/ (form-<id>-<field>, or form-password for forms that
declare a password field).`,
	Example: `  pdf-toolkit submit encrypt --base-url http://localhost:5000 --field password=s3cret a.pdf b.pdf`,
	RunE:    runSubmit,
}

func init() {
	submitCmd.Flags().StringToString("field", nil, "extra form field as key=value (repeatable)")

	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("provide a form id and one or more PDF files")
	}
	binder, reporter, err := newBinder(viper.GetViper(), os.Stdout)
	if err != nil {
		return err
	}
	flagFields, _ := cmd.Flags().GetStringToString("field")
	return submitPaths(cmd.Context(), binder, reporter, loadedSecrets, args[0], args[1:], flagFields)
}

// submitPaths reads paths from disk and submits them through form id. Text
// fields come from secrets first, then flag values, which win.
func submitPaths(ctx context.Context, binder *form.Binder, reporter *status.Reporter, set secrets.Set, id string, paths []string, flagFields map[string]string) error {
	f, err := binder.Lookup(id)
	if err != nil {
		reporter.Error(err.Error())
		return err
	}

	files := make([]types.File, 0, len(paths))
	for _, p := range paths {
		file, err := types.LocalFile(p)
		if err != nil {
			reporter.Error(fmt.Sprintf("cannot read %s: %v", p, err))
			return fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, file)
	}

	if _, err := binder.Submit(ctx, id, files, submitFields(set, f, flagFields)); err != nil {
		return fmt.Errorf("form %s: submission failed: %w", id, err)
	}
	return nil
}

// submitFields merges the secrets that apply to f with flag values.
func submitFields(set secrets.Set, f *form.Form, flagFields map[string]string) map[string]string {
	fields := set.FormFields(f.ID, f.Fields)
	for k, v := range flagFields {
		fields[k] = v
	}
	return fields
}
