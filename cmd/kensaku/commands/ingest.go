// ABOUTME: CLI command to ingest documents into the search index
// ABOUTME: Supports single files and full rebuilds from the documents directory
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestRebuild bool

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [file...]",
		Short: "Add documents to the search index",
		Long: `Add documents to the search index.

With file arguments, each file is chunked, embedded, and folded into
the existing index. With no arguments, the configured documents
directory is (re)indexed.

Examples:
  kensaku ingest report_en.txt report_jp.txt
  kensaku ingest
  kensaku ingest --rebuild`,
		RunE: runIngest,
	}

	cmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "Discard the persisted index and rebuild from the documents directory")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	svc, cfg, err := newService()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := svc.Initialize(ctx, ingestRebuild); err != nil {
		return fmt.Errorf("initializing index: %w", err)
	}

	totalAdded := 0
	for _, path := range args {
		added, err := svc.AddDocument(ctx, path)
		if err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		totalAdded += added
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s (%d chunks)\n", path, added)
		}
	}

	if !quiet {
		stats := svc.Stats()
		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %s\n", stats.TotalChunks, cfg.DocumentsDir)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d chunks, %d total in index\n", totalAdded, stats.TotalChunks)
		}
	}
	return nil
}
