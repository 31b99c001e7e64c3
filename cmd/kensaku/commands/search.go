// ABOUTME: CLI command to search indexed documents
// ABOUTME: Language-aware semantic search with table, json, and context output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kensakuhq/kensaku/internal/core"
)

var (
	searchLimit   int
	searchContext bool
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed documents",
		Long: `Search indexed documents by semantic similarity.

The query language (English or Japanese) is detected automatically
and only passages in that language are returned, best match first.

Examples:
  kensaku search "revenue growth last quarter"
  kensaku search "売上の成長率"
  kensaku search --limit 10 "dividend policy"
  kensaku search --format json "operating margins"
  kensaku search --context "What changed this year?"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", core.DefaultTopK, "Maximum results to return")
	cmd.Flags().BoolVar(&searchContext, "context", false, "Print results as a context block instead of a table")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	svc, _, err := newService()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if err := svc.Initialize(ctx, false); err != nil {
		return fmt.Errorf("initializing index: %w", err)
	}

	query := args[0]
	results, language, err := svc.Ask(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if searchContext {
		fmt.Fprintln(cmd.OutOrStdout(), core.FormatContext(results, language))
		return nil
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No results for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	// Table format
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tLANG\tSOURCE\tTEXT\n")
	fmt.Fprintf(w, "-----\t----\t------\t----\n")
	for _, res := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%s\n",
			res.Score,
			res.Chunk.Language,
			truncate(res.Chunk.SourceID, 25),
			truncate(res.Chunk.Text, 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s) [%s]\n", len(results), language)
	}
	return nil
}
