package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/maslennikov-ig/coursebench/internal/bench"
	"github.com/maslennikov-ig/coursebench/internal/config"
)

var (
	runOutputDir     string
	runRepetitions   int
	runMaxConcurrent int
	runStrict        bool
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Run the full benchmark grid",
		Long: `Run every (model, scenario, repetition) cell defined by the config,
score the generated artifacts, and write all records to a fresh
timestamped run directory.`,
		Args: cobra.ExactArgs(1),
		RunE: runCommandE,
	}

	cmd.Flags().StringVarP(&runOutputDir, "output-dir", "o", "", "Base directory for run output (overrides config)")
	cmd.Flags().IntVar(&runRepetitions, "repetitions", 0, "Repetitions per (model, scenario) pair (overrides config)")
	cmd.Flags().IntVar(&runMaxConcurrent, "max-concurrent", -1, "Global cap on in-flight cells, 0 = unbounded (overrides config)")
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Exit non-zero when any cell fails generation")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	// CLI flags override the config file.
	if runOutputDir != "" {
		cfg.OutputDir = runOutputDir
	}
	if runRepetitions > 0 {
		cfg.Repetitions = runRepetitions
	}
	if runMaxConcurrent >= 0 {
		cfg.MaxConcurrent = runMaxConcurrent
	}

	runner, err := bench.NewRunner(cfg, slog.Default())
	if err != nil {
		return err
	}

	st, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := printStoredReport(cmd, st); err != nil {
		return err
	}

	summary, err := st.ReadSummary()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nRun written to %s\n", st.Dir())

	if runStrict && summary.Failed > 0 {
		return &CellFailureError{Failed: summary.Failed}
	}
	return nil
}
