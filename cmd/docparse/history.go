// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docparse/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recorded parse invocations",
	Long: `History lists invocations recorded with --record (or history.enabled in the
config file), newest first. Each line shows when the parse ran, whether it
succeeded, the file, the backend, and the table count.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := historyPath(cfg)
	if err != nil {
		return err
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded invocations.")
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "failed: " + e.Error
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-10s %s  tables=%d  [%s]\n",
			e.ParsedAt.Local().Format(time.DateTime), e.Backend, e.FileName, e.NumTables, status)
	}
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")

	rootCmd.AddCommand(historyCmd)
}
