// ABOUTME: CLI command to show index statistics
// ABOUTME: Chunk counts by language and by source document
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kensakuhq/kensaku/internal/models"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long: `Show index statistics.

Prints the total chunk count and breakdowns by language and by
source document for the persisted index.`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}
	if err := svc.Initialize(cmd.Context(), false); err != nil {
		return fmt.Errorf("initializing index: %w", err)
	}

	stats := svc.Stats()

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total chunks: %d\n\n", stats.TotalChunks)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LANGUAGE\tCHUNKS\n")
	languages := make([]string, 0, len(stats.ByLanguage))
	for l := range stats.ByLanguage {
		languages = append(languages, string(l))
	}
	sort.Strings(languages)
	for _, l := range languages {
		fmt.Fprintf(w, "%s\t%d\n", l, stats.ByLanguage[models.Language(l)])
	}
	w.Flush()

	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SOURCE\tCHUNKS\n")
	sources := make([]string, 0, len(stats.BySource))
	for s := range stats.BySource {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, s := range sources {
		fmt.Fprintf(w, "%s\t%d\n", truncate(s, 40), stats.BySource[s])
	}
	w.Flush()

	return nil
}
