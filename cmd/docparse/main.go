// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the docparse CLI. The bare invocation
// is the parse adapter: it resolves a file path from the arguments or stdin,
// converts the document, and prints a single JSON envelope on stdout.
// Subcommands cover batch conversion, invocation history, and version info.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/docparse/internal/parse"
	"github.com/pdiddy/docparse/internal/secrets"
	"github.com/pdiddy/docparse/internal/store"
	"github.com/pdiddy/docparse/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, then the loaded secret for key,
// then empty.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// errNoInput marks the one case that exits non-zero: no resolvable file
// path. The envelope has already been printed when it is returned.
var errNoInput = errors.New("no file path provided")

// rootCmd is both the base command and the parse adapter.
var rootCmd = &cobra.Command{
	Use:   "docparse [file]",
	Short: "Convert documents into a Markdown JSON envelope",
	Long: `docparse converts a document (PDF, DOCX, XLSX, CSV, Markdown, text) into
Markdown plus extracted tables and metadata, and prints the result as a single
JSON envelope on stdout.

The file path comes from the first argument, or from the first line of stdin
when no argument is given. Conversion failures are reported inside the
envelope (success: false) with exit status 0; only a missing file path exits
non-zero.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
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
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := parse.ResolvePath(args, cmd.InOrStdin())
	if path == "" {
		if err := parse.Write(out, types.Failed(parse.MsgNoPath)); err != nil {
			return err
		}
		return errNoInput
	}

	cfg, err := loadConfig()
	if err != nil {
		// Backend construction problems (missing image, no runtime, bad
		// config) are conversion failures: report in the envelope, exit 0.
		return parse.Write(out, types.Failed(err.Error()))
	}
	converter, backend, err := newConverter(cmd, cfg)
	if err != nil {
		return parse.Write(out, types.Failed(err.Error()))
	}

	result := parse.Run(converter, path)

	record, _ := cmd.Flags().GetBool("record")
	if record || cfg.History.Enabled {
		if err := recordResult(cmd, cfg, result, backend); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not record invocation: %v\n", err)
		}
	}

	return parse.Write(out, result)
}

// recordResult appends the envelope outcome to the history database.
func recordResult(cmd *cobra.Command, cfg types.Config, result types.ParseResult, backend types.Backend) error {
	path, err := historyPath(cfg)
	if err != nil {
		return err
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	entry := store.Entry{
		FileName:  result.Metadata.FileName,
		FileType:  result.Metadata.FileType,
		Backend:   string(backend),
		Success:   result.Success,
		Error:     result.Error,
		NumTables: len(result.Tables),
		NumPages:  result.Metadata.NumPages,
	}
	return s.Record(cmd.Context(), entry)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./docparse.yaml or ~/.config/docparse/config.yaml)")
	rootCmd.PersistentFlags().String("backend", "", "conversion backend: native, markitdown, or remote")
	rootCmd.Flags().Bool("record", false, "record this invocation in the history database")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("docparse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "docparse"))
		}
	}

	viper.SetEnvPrefix("DOCPARSE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errNoInput) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
