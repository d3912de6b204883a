package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/reporting"
	"github.com/maslennikov-ig/coursebench/internal/store"
)

var (
	reportRunDir string
	reportFormat string
	reportOutput string
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <config.yaml>",
		Short: "Render a stored run as a report",
		Long: `Render the records of a stored run in the chosen format. Nothing is
recomputed; the report reflects the run directory as-is.`,
		Args: cobra.ExactArgs(1),
		RunE: reportCommandE,
	}

	cmd.Flags().StringVar(&reportRunDir, "run", "", "Run directory (default: <output-dir>/latest)")
	cmd.Flags().StringVar(&reportFormat, "format", "console", "Output format: console, markdown, junit")
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}

func reportCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	runDir := reportRunDir
	if runDir == "" {
		runDir = filepath.Join(cfg.OutputDir, "latest")
	}
	st, err := store.Open(runDir)
	if err != nil {
		return err
	}

	summary, err := st.ReadSummary()
	if err != nil {
		return err
	}

	switch reportFormat {
	case "junit":
		metas, err := st.ReadMetas()
		if err != nil {
			return err
		}
		if reportOutput == "" {
			return fmt.Errorf("--output is required for the junit format")
		}
		return reporting.WriteJUnitXML(summary, metas, reportOutput)

	case "markdown", "console":
		aggs, err := st.ReadAggregates()
		if err != nil {
			return err
		}
		rankings, err := st.ReadRankings()
		if err != nil {
			return err
		}

		var text string
		if reportFormat == "markdown" {
			text = reporting.FormatMarkdown(summary, aggs, rankings)
		} else {
			text = reporting.FormatConsoleReport(summary, aggs, rankings)
		}
		if reportOutput != "" {
			return os.WriteFile(reportOutput, []byte(text), 0o644)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err

	default:
		return fmt.Errorf("unknown format %q", reportFormat)
	}
}

// printStoredReport renders the console report for a store handle.
func printStoredReport(cmd *cobra.Command, st *store.Store) error {
	summary, err := st.ReadSummary()
	if err != nil {
		return err
	}
	aggs, err := st.ReadAggregates()
	if err != nil {
		return err
	}
	rankings, err := st.ReadRankings()
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), reporting.FormatConsoleReport(summary, aggs, rankings))
	return err
}
