package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maslennikov-ig/coursebench/internal/config"
	"github.com/maslennikov-ig/coursebench/internal/matrix"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a benchmark config without running it",
		Long: `Load the config, apply defaults, and run every validation check.
Prints the resulting grid size on success.`,
		Args: cobra.ExactArgs(1),
		RunE: validateCommandE,
	}
}

func validateCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	cells, err := matrix.Build(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Config OK: %d models x %d scenarios x %d repetitions = %d cells\n",
		len(cfg.Models), len(cfg.Scenarios), cfg.Repetitions, len(cells))
	return nil
}
