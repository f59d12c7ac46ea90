package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/validate"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate <files...>",
	Short: "Check files against the upload rules without submitting them",
	Long: `Validate applies the same checks submit runs before uploading: each file
must have a .pdf extension and be no larger than the size limit. With --sniff
the file header is checked too. Every file is reported; nothing is sent.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more files to validate")
	}
	cfg := uploadConfig(viper.GetViper())
	if failed := validatePaths(os.Stdout, args, cfg); failed > 0 {
		return fmt.Errorf("%d file(s) failed validation", failed)
	}
	return nil
}

// validatePaths checks every path and prints one line per file. It returns
// the number of failures.
func validatePaths(w io.Writer, paths []string, cfg types.UploadConfig) int {
	failed := 0
	for _, p := range paths {
		f, err := types.LocalFile(p)
		if err == nil {
			err = validate.File(f, cfg.MaxFileSize)
		}
		if err == nil && cfg.SniffContent {
			err = validate.Contents([]types.File{f})
		}
		if err != nil {
			fmt.Fprintf(w, "invalid: %s (%v)\n", p, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "ok:      %s (%d bytes)\n", p, f.Size)
	}
	fmt.Fprintf(w, "\nValidation summary: %d ok, %d invalid (total: %d)\n",
		len(paths)-failed, failed, len(paths))
	return failed
}
