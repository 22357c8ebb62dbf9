// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docparse/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch [files...]",
	Short: "Convert multiple documents into Markdown files with metadata sidecars",
	Long: `Batch converts each file into <out>/<base>.md plus a <base>.yaml metadata
sidecar, printing a status line per file and a summary. Files whose Markdown
output already exists are skipped, so re-running a batch only processes new
documents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	converter, _, err := newConverter(cmd, cfg)
	if err != nil {
		return err
	}

	result := convert.ConvertBatch(converter, args, outDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	batchCmd.Flags().String("out", "parsed", "output directory for Markdown and metadata files")

	rootCmd.AddCommand(batchCmd)
}
