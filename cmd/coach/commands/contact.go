// ABOUTME: CLI command to find a sponsor contact's email address
// ABOUTME: Queries Hunter.io by company domain and person name
package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/lookup"
)

var (
	contactFirstName string
	contactLastName  string
	contactCompany   string
)

// NewContactCmd creates the contact command
func NewContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact <domain>",
		Short: "Find a contact's email address at a company",
		Long: `Find the most likely email address for a person at a company.

Requires HUNTER_API_KEY.

Examples:
  coach contact patagonia.com --first Jane --last Doe
  coach contact rei.com --first Sam --last Lee --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runContact,
	}

	cmd.Flags().StringVar(&contactFirstName, "first", "", "first name")
	cmd.Flags().StringVar(&contactLastName, "last", "", "last name")
	cmd.Flags().StringVar(&contactCompany, "company", "", "company name")

	return cmd
}

func runContact(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	hunter := a.hunter()
	if hunter == nil {
		return fmt.Errorf("contact lookup: %w (set HUNTER_API_KEY)", lookup.ErrMissingAPIKey)
	}

	result, err := hunter.FindEmail(cmd.Context(), lookup.EmailQuery{
		Domain:    args[0],
		FirstName: contactFirstName,
		LastName:  contactLastName,
		Company:   contactCompany,
	})
	if errors.Is(err, lookup.ErrNotFound) {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No email found at %s\n", args[0])
		}
		return nil
	}
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Email:      %s\n", result.Email)
	fmt.Fprintf(out, "Confidence: %d%%\n", result.Confidence)
	if name := joinName(result.FirstName, result.LastName); name != "" {
		fmt.Fprintf(out, "Name:       %s\n", name)
	}
	if result.Position != "" {
		fmt.Fprintf(out, "Position:   %s\n", result.Position)
	}
	if result.LinkedIn != "" {
		fmt.Fprintf(out, "LinkedIn:   %s\n", result.LinkedIn)
	}
	if result.Verification.Status != "" {
		fmt.Fprintf(out, "Verified:   %s\n", result.Verification.Status)
	}
	return nil
}
