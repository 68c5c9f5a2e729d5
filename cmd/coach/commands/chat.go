// ABOUTME: CLI command for the interactive chat TUI
// ABOUTME: Runs the Bubble Tea chat view over the coaching session
package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the coach interactively",
		Long: `Open an interactive chat with the coach.

Enter sends a message, PgUp/PgDown scroll the transcript,
Ctrl+L clears the history (after confirmation), Ctrl+C quits.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Loading knowledge base...")
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	program := tea.NewProgram(tui.New(ctx, a.session), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat UI: %w", err)
	}
	return nil
}
