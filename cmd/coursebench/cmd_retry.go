package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maslennikov-ig/coursebench/internal/bench"
	"github.com/maslennikov-ig/coursebench/internal/config"
)

var retryRunDir string

func newRetryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retry <config.yaml>",
		Short: "Re-execute only the failed cells of an existing run",
		Long: `Re-execute the cells of a prior run whose generation failed, overwrite
their artifacts in place, and rescore the whole run. Cells that
succeeded keep their original artifacts.`,
		Args: cobra.ExactArgs(1),
		RunE: retryCommandE,
	}

	cmd.Flags().StringVar(&retryRunDir, "run", "", "Run directory (default: <output-dir>/latest)")

	return cmd
}

func retryCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	runDir := retryRunDir
	if runDir == "" {
		runDir = filepath.Join(cfg.OutputDir, "latest")
	}

	runner, err := bench.NewRunner(cfg, slog.Default())
	if err != nil {
		return err
	}

	st, retried, err := runner.Retry(cmd.Context(), runDir)
	if err != nil {
		return err
	}
	if retried == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No failed cells to retry.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Retried %d cells.\n\n", retried)
	return printStoredReport(cmd, st)
}
