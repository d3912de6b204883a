package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coursebench",
		Short: "Coursebench - benchmark LLM backends for course generation",
		Long: `Coursebench runs a model x scenario x repetition benchmark grid against
LLM backends, scores every generated artifact on schema, content, and
language quality, and ranks the models per scenario and overall.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newRetryCommand())
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newReportCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
