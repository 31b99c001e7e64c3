// ABOUTME: Root CLI command with global flags and subcommand wiring
// ABOUTME: Entry point for the kensaku document retrieval CLI
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kensaku",
		Short: "Bilingual document search engine",
		Long: `
██╗  ██╗███████╗███╗   ██╗███████╗ █████╗ ██╗  ██╗██╗   ██╗
██║ ██╔╝██╔════╝████╗  ██║██╔════╝██╔══██╗██║ ██╔╝██║   ██║
█████╔╝ █████╗  ██╔██╗ ██║███████╗███████║█████╔╝ ██║   ██║
██╔═██╗ ██╔══╝  ██║╚██╗██║╚════██║██╔══██║██╔═██╗ ██║   ██║
██║  ██╗███████╗██║ ╚████║███████║██║  ██║██║  ██╗╚██████╔╝
╚═╝  ╚═╝╚══════╝╚═╝  ╚═══╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝

Semantic search over English and Japanese documents.

Documents are chunked, embedded, and indexed locally; queries are
answered in the language they were asked in.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "table", "Output format (table or json)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	rootCmd.AddCommand(NewIngestCmd())
	rootCmd.AddCommand(NewSearchCmd())
	rootCmd.AddCommand(NewStatsCmd())
	rootCmd.AddCommand(NewMCPCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
