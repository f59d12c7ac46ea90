// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-toolkit/internal/form"
)

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "List the bound forms as YAML",
	Long: `Forms binds every configured form and prints its resolved endpoint,
multipart field name, submit label, and the names of its extra fields.
Field values are omitted since they may hold passwords.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		binder, _, err := newBinder(viper.GetViper(), io.Discard)
		if err != nil {
			return err
		}
		return writeForms(os.Stdout, binder.Forms())
	},
}

func init() {
	rootCmd.AddCommand(formsCmd)
}

// formListing is the YAML view of a bound form.
type formListing struct {
	ID        string   `yaml:"id"`
	Endpoint  string   `yaml:"endpoint"`
	FieldName string   `yaml:"field_name"`
	Multiple  bool     `yaml:"multiple"`
	Label     string   `yaml:"label"`
	Fields    []string `yaml:"fields,omitempty"`
}

func writeForms(w io.Writer, forms []*form.Form) error {
	listing := make([]formListing, 0, len(forms))
	for _, f := range forms {
		l := formListing{
			ID:        f.ID,
			Endpoint:  f.Endpoint,
			FieldName: f.FieldName,
			Multiple:  f.Multiple,
			Label:     f.Button.Original(),
		}
		for k := range f.Fields {
			l.Fields = append(l.Fields, k)
		}
		sort.Strings(l.Fields)
		listing = append(listing, l)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(listing); err != nil {
		return err
	}
	return enc.Close()
}
