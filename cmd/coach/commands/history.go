// ABOUTME: CLI commands to show and clear the persisted chat history
// ABOUTME: History is shared with the chat TUI and the MCP tools
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/models"
	"github.com/harper/tap-coach/internal/storage"
)

var (
	historyLimit   int
	historyConfirm bool
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the chat history",
		Long: `Show the persisted chat history, oldest first.

Use --limit to show only the most recent messages.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show only the last N messages (0 = all)")
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the chat history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryClear,
	}

	cmd.Flags().BoolVar(&historyConfirm, "confirm", false, "confirm deletion")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyLimit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", historyLimit)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	messages, err := a.store.LoadHistory()
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("loading history: %w", err)
	}
	if historyLimit > 0 && len(messages) > historyLimit {
		messages = messages[len(messages)-historyLimit:]
	}

	if outputFormat == "json" {
		if messages == nil {
			messages = []models.Message{}
		}
		jsonData, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if len(messages) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No chat history yet")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tROLE\tMODULE\tMESSAGE\n")
	fmt.Fprintf(w, "--\t----\t------\t-------\n")
	for _, m := range messages {
		module := "-"
		if id := m.Recommendation(); id != "" {
			module = string(id)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.Role, module, truncate(singleLine(m.Content), 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d message(s)\n", len(messages))
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !historyConfirm {
		return fmt.Errorf("refusing to clear history without --confirm")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.store.ClearHistory(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "Chat history cleared")
	}
	return nil
}
