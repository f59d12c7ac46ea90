package main

import (
	"fmt"
	"io"

	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/download"
	"github.com/pdiddy/pdf-toolkit/internal/form"
	"github.com/pdiddy/pdf-toolkit/internal/status"
	"github.com/pdiddy/pdf-toolkit/internal/transfer"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// uploadConfig assembles the upload settings from config file, environment,
// and flags (flags bound in init win).
func uploadConfig(v *viper.Viper) types.UploadConfig {
	cfg := types.UploadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration("timeout"),
			UserAgent: v.GetString("user_agent"),
		},
		BaseURL:      v.GetString("base_url"),
		OutputDir:    v.GetString("output_dir"),
		FallbackName: v.GetString("fallback_name"),
		MaxFileSize:  v.GetInt64("max_file_size"),
		SniffContent: v.GetBool("sniff_content"),
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "pdf-toolkit/" + version
	}
	return cfg.WithDefaults()
}

// formConfigs decodes the "forms" list, falling back to the default forms
// when none are configured.
func formConfigs(v *viper.Viper) ([]types.FormConfig, error) {
	var forms []types.FormConfig
	if err := v.UnmarshalKey("forms", &forms); err != nil {
		return nil, fmt.Errorf("decoding forms: %w", err)
	}
	if len(forms) == 0 {
		forms = types.DefaultForms()
	}
	return forms, nil
}

// newBinder wires the submission collaborators and binds every configured form.
func newBinder(v *viper.Viper, out io.Writer) (*form.Binder, *status.Reporter, error) {
	cfg := uploadConfig(v)
	forms, err := formConfigs(v)
	if err != nil {
		return nil, nil, err
	}

	reporter := status.NewReporter(out)
	deps := form.Deps{
		Client:       transfer.NewClient(nil, cfg),
		Saver:        download.NewSaver(nil, cfg.OutputDir),
		Reporter:     reporter,
		MaxFileSize:  cfg.MaxFileSize,
		SniffContent: cfg.SniffContent,
	}
	b, err := form.NewBinder(forms, cfg.BaseURL, deps)
	if err != nil {
		return nil, nil, err
	}
	return b, reporter, nil
}
