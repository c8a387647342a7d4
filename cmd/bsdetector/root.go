package main

import (
	"fmt"
	"os"

	"github.com/nao1215/bsdetector/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for bsdetector.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bsdetector",
		Short: "Detect bullshit in web articles",
		Long: `bsdetector rates how likely a web article is to be misleading.

It retrieves the article through public retrieval backends and scores its
headline, text and page structure. When the article cannot be retrieved,
the URL alone is scored with reduced confidence.

Users can vote on analyses. Votes are stored locally (SQLite by default)
or in Redis, and adjust the rating shown for an article.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .bsdetector in current or home directory)")
	cmd.PersistentFlags().String("store", config.StoreSQLite,
		"Vote store: memory, sqlite or redis")
	cmd.PersistentFlags().String("db-dir", "",
		"Directory of the SQLite vote database (default: XDG data directory)")
	cmd.PersistentFlags().String("redis-addr", "",
		"Redis server address (host:port) for the redis store")

	// Add subcommands
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewVoteCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
