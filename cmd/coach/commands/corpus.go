// ABOUTME: CLI commands to manage the cached module knowledge base
// ABOUTME: load (re)fetches sources, status reports counts, clear drops the cache
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/corpus"
	"github.com/harper/tap-coach/internal/models"
)

var corpusRefresh bool

// NewCorpusCmd creates the corpus command group
func NewCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage the module knowledge base",
		Long: `Manage the chunked module knowledge base.

Module documents are read from COACH_CORPUS_DIR (module1.md..module7.md)
or from the sources listed in COACH_CORPUS_MANIFEST, split into sections,
and cached so later runs skip the fetch.`,
	}

	load := &cobra.Command{
		Use:   "load",
		Short: "Load module documents into the knowledge base",
		Args:  cobra.NoArgs,
		RunE:  runCorpusLoad,
	}
	load.Flags().BoolVar(&corpusRefresh, "refresh", false, "ignore the cache and fetch every source again")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show knowledge base section counts per module",
		Args:  cobra.NoArgs,
		RunE:  runCorpusStatus,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached knowledge base",
		Args:  cobra.NoArgs,
		RunE:  runCorpusClear,
	}

	cmd.AddCommand(load, status, clearCmd)
	return cmd
}

func runCorpusLoad(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if corpusRefresh {
		a.loader.Reload(cmd.Context())
	} else {
		a.loader.Load(cmd.Context())
	}
	return printCorpusStats(cmd, a.loader.Stats())
}

func runCorpusStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.loader.Load(cmd.Context())
	return printCorpusStats(cmd, a.loader.Stats())
}

func runCorpusClear(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.loader.Clear(); err != nil {
		return fmt.Errorf("clearing knowledge base: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Knowledge base cache cleared")
	}
	return nil
}

func printCorpusStats(cmd *cobra.Command, stats corpus.Stats) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "MODULE\tTITLE\tSECTIONS\n")
	fmt.Fprintf(w, "------\t-----\t--------\n")
	for _, m := range models.Catalog {
		fmt.Fprintf(w, "%s\t%s\t%d\n", m.ID, m.Title, stats.PerModule[m.ID])
	}
	w.Flush()

	if !quiet {
		source := "sources"
		if stats.FromCache {
			source = "cache"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d section(s) from %s\n", stats.Chunks, source)
		for _, id := range stats.Failed {
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: module %s could not be loaded\n", id)
		}
	}
	return nil
}
