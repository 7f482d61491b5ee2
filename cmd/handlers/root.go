// Package handlers contains the cobra commands that make up the newswire CLI.
package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "newswire",
		Short: "Newswire aggregates articles from multiple news providers and serves a filtered article API.",
		Long: `Newswire ingests articles from the Guardian, NewsAPI and the New York
Times, normalizes them into one schema, deduplicates against prior ingests and
serves them through a filtered, paginated, preference-aware HTTP API.

Ingestion and serving are separate commands: run 'newswire fetch' from an
external timer (cron or similar) and keep 'newswire serve' running for reads.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.newswire.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewFetchCmd())
	rootCmd.AddCommand(NewMigrateCmd())
	rootCmd.AddCommand(NewSeedCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
