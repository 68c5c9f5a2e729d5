// ABOUTME: CLI command to find local businesses as sponsor prospects
// ABOUTME: Runs the Apify Google Maps scraper within a monthly credit budget
package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/lookup"
)

var (
	businessMaxResults int
	businessCSV        string
)

// NewBusinessCmd creates the business command
func NewBusinessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "business <query> <location>",
		Short: "Find local businesses to approach as sponsors",
		Long: `Search Google Maps for local businesses via Apify.

Requires APIFY_API_TOKEN. Each search is charged against a monthly
credit budget that resets on the first of the month.

Examples:
  coach business "outdoor gear" "Portland, OR"
  coach business "coffee roasters" "Austin, TX" --max-results 10 --csv prospects.csv`,
		Args: cobra.ExactArgs(2),
		RunE: runBusiness,
	}

	cmd.Flags().IntVarP(&businessMaxResults, "max-results", "n", 20, "maximum businesses to return")
	cmd.Flags().StringVar(&businessCSV, "csv", "", "also write results to this CSV file")

	return cmd
}

func runBusiness(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(businessMaxResults, "max-results"); err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.ApifyToken == "" {
		return fmt.Errorf("business lookup: %w (set APIFY_API_TOKEN)", lookup.ErrMissingAPIKey)
	}

	usage := a.store.LoadUsage(time.Now())
	cost := lookup.EstimateCost(businessMaxResults)
	if err := usage.CheckBudget(cost); err != nil {
		return err
	}

	client := lookup.NewApifyClient(a.cfg.ApifyToken, a.cfg.ApifyBaseURL, a.cfg.LookupTimeout)
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Searching for %q near %s (estimated cost $%.2f)...\n", args[0], args[1], cost)
	}
	businesses, err := client.FindBusinesses(cmd.Context(), lookup.BusinessQuery{
		Query:      args[0],
		Location:   args[1],
		MaxResults: businessMaxResults,
	})
	if err != nil {
		return fmt.Errorf("business lookup: %w", err)
	}

	usage.Record(cost)
	if err := a.store.SaveUsage(usage); err != nil {
		return fmt.Errorf("saving usage: %w", err)
	}

	if businessCSV != "" {
		if err := writeBusinessCSV(businessCSV, businesses); err != nil {
			return err
		}
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(businesses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "NAME\tRATING\tPHONE\tWEBSITE\tADDRESS\n")
	fmt.Fprintf(w, "----\t------\t-----\t-------\t-------\n")
	for _, b := range businesses {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\t%s\n",
			truncate(b.Name, 30), b.Rating, b.Phone, truncate(b.Website, 30), truncate(b.Address, 40))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d business(es). Credits remaining this month: $%.2f\n",
			len(businesses), usage.CreditsRemaining)
	}
	return nil
}

func writeBusinessCSV(path string, businesses []lookup.Business) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"name", "address", "phone", "website", "rating", "reviews", "category"})
	for _, b := range businesses {
		_ = w.Write([]string{
			b.Name,
			b.Address,
			b.Phone,
			b.Website,
			strconv.FormatFloat(b.Rating, 'f', 1, 64),
			strconv.Itoa(b.ReviewCount),
			b.Category,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}
