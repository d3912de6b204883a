package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maslennikov-ig/coursebench/internal/bench"
	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/store"
)

var rankRunDir string

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <config.yaml>",
		Short: "Rescore a stored run and print its rankings",
		Long: `Recompute scores, aggregates, and rankings from the artifacts of a
stored run without calling any backend. Useful after changing score
weights or content expectations in the config.`,
		Args: cobra.ExactArgs(1),
		RunE: rankCommandE,
	}

	cmd.Flags().StringVar(&rankRunDir, "run", "", "Run directory (default: <output-dir>/latest)")

	return cmd
}

func rankCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	runDir := rankRunDir
	if runDir == "" {
		runDir = filepath.Join(cfg.OutputDir, "latest")
	}

	st, err := bench.Rescore(cfg, runDir)
	if err != nil {
		return err
	}
	return printRankings(cmd, st)
}

func printRankings(cmd *cobra.Command, st *store.Store) error {
	rankings, err := st.ReadRankings()
	if err != nil {
		return err
	}
	for _, cat := range rankings {
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", cat.Category)
		for _, e := range cat.Entries {
			line := fmt.Sprintf("  %d. %-24s %.3f", e.Rank, e.Model, e.Score)
			if e.Consistency != nil {
				line += fmt.Sprintf(" (consistency %.3f)", *e.Consistency)
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
	return nil
}
