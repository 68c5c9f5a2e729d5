// ABOUTME: CLI command listing the curriculum modules
// ABOUTME: Prints the fixed M1..M7 catalog
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/models"
)

// NewModulesCmd creates the modules command
func NewModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the TAP curriculum modules",
		Args:  cobra.NoArgs,
		RunE:  runModules,
	}

	return cmd
}

func runModules(cmd *cobra.Command, args []string) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(models.Catalog, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTITLE\n")
	fmt.Fprintf(w, "--\t-----\n")
	for _, m := range models.Catalog {
		fmt.Fprintf(w, "%s\t%s\n", m.ID, m.Title)
	}
	return w.Flush()
}
