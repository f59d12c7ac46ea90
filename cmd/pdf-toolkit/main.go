// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-toolkit CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-toolkit/internal/secrets"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds form credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// rootCmd is the base command for the pdf-toolkit CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf-toolkit",
	Short: "Submit PDFs to a PDF-processing server and save the results",
	Long: `pdf-toolkit submits PDF files to the forms of a PDF-processing web service.
Each form posts one or more PDFs to a server endpoint; the processed file the
server returns is saved to the output directory under the name the server
suggests.

Forms are defined in the config file under "forms". Without a config file the
toolkit binds the default "encrypt" form.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(viper.GetString("secrets_dir"), os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./pdf-toolkit.yaml or ~/.config/pdf-toolkit/pdf-toolkit.yaml)")
	pf.String("base-url", "", "server base URL that relative form endpoints resolve against")
	pf.String("output-dir", types.DefaultOutputDir, "directory processed files are saved to")
	pf.Duration("timeout", types.DefaultTimeout, "HTTP request timeout")
	pf.Int64("max-file-size", types.DefaultMaxFileSize, "largest accepted file in bytes")
	pf.Bool("sniff", false, "also check that file contents start with a PDF header")
	pf.String("secrets-dir", ".secrets", "directory of secret files (form-password, form-<id>-<field>)")

	for key, flag := range map[string]string{
		"base_url":      "base-url",
		"output_dir":    "output-dir",
		"timeout":       "timeout",
		"max_file_size": "max-file-size",
		"sniff_content": "sniff",
		"secrets_dir":   "secrets-dir",
	} {
		viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-toolkit")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-toolkit"))
		}
	}

	viper.SetEnvPrefix("PDF_TOOLKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
