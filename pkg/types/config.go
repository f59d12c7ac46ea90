package types

import "time"

// Defaults applied when configuration leaves a value unset.
const (
	DefaultMaxFileSize  = int64(100 * 1024 * 1024) // 104,857,600 bytes
	DefaultFallbackName = "processed.pdf"
	DefaultOutputDir    = "."
	DefaultTimeout      = 5 * time.Minute
	DefaultUserAgent    = "pdf-toolkit/0.1"
)

// HTTPConfig holds shared HTTP settings used when talking to the server.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Processing large PDFs is slow,
	// so the default is generous.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdf-toolkit/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// UploadConfig holds settings for submitting forms and saving the results.
type UploadConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is joined with relative form endpoints (e.g. "http://localhost:5000").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// OutputDir is the directory downloaded files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// FallbackName is the download name used when the server does not
	// suggest one via Content-Disposition (default "processed.pdf").
	FallbackName string `json:"fallback_name" yaml:"fallback_name" mapstructure:"fallback_name"`

	// MaxFileSize is the largest accepted file in bytes (default 100 MiB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size" mapstructure:"max_file_size"`

	// SniffContent enables checking the leading bytes of each file in
	// addition to its extension.
	SniffContent bool `json:"sniff_content" yaml:"sniff_content" mapstructure:"sniff_content"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c UploadConfig) WithDefaults() UploadConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.FallbackName == "" {
		c.FallbackName = DefaultFallbackName
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	return c
}

// FormConfig describes one upload form: where it posts and how the files
// are keyed in the multipart payload.
type FormConfig struct {
	// ID names the form (e.g. "encrypt").
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Endpoint is the form action, either an absolute URL or a path
	// resolved against UploadConfig.BaseURL.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// FieldName is the multipart key the files are sent under ("pdf" or "pdfs").
	FieldName string `json:"field_name" yaml:"field_name" mapstructure:"field_name"`

	// Multiple reports whether the form accepts more than one file.
	Multiple bool `json:"multiple" yaml:"multiple" mapstructure:"multiple"`

	// Label is the submit control's idle label.
	Label string `json:"label" yaml:"label" mapstructure:"label"`

	// Fields holds extra text fields sent with every submission. Declaring
	// "password" (even empty) lets the stored form-password fill it.
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}

// DefaultForms returns the forms served by the PDF toolkit page. A field
// declared with an empty value is a placeholder filled from secrets or flags.
func DefaultForms() []FormConfig {
	return []FormConfig{
		{
			ID:        "encrypt",
			Endpoint:  "/encrypt",
			FieldName: "pdfs",
			Multiple:  true,
			Label:     "Encrypt PDFs",
			Fields:    map[string]string{"password": ""},
		},
	}
}
