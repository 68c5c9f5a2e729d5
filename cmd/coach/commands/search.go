// ABOUTME: CLI command to search the module knowledge base
// ABOUTME: Ranks chunks with the keyword scorer used by the coach
package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/retrieval"
)

var searchLimit int

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the TAP module knowledge base",
		Long: `Search the loaded module sections by keyword.

Uses the same scoring the coach uses to pick context: title and
content keyword matches plus module keyword boosts.

Examples:
  coach search "sponsorship tiers"
  coach search --limit 10 "cold email"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum results")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	results := retrieval.Rank(a.loader.Load(cmd.Context()), query)
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No sections found for query: %s\n", query)
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

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tMODULE\tTITLE\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t------\t-----\t-------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			r.Score,
			r.Chunk.ModuleID,
			truncate(r.Chunk.Title, 30),
			truncate(singleLine(r.Chunk.Content), 60))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s)\n", len(results))
	}
	return nil
}
