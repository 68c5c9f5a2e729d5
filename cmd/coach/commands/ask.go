// ABOUTME: CLI command to ask the coach a single question
// ABOUTME: Prints the reply and the recommended module
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/interpret"
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the coach one question",
		Long: `Ask the coach one question and print its reply.

The question and reply are appended to the persisted chat history.
Without OPENAI_API_KEY the coach answers in limited mode with a
module recommendation inferred from your question.

Examples:
  coach ask "How do I find the right contact at Patagonia?"
  coach ask --format json "What should a gold sponsorship tier include?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	reply, err := a.session.Submit(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		out := map[string]interface{}{
			"reply":        reply.Content,
			"limited_mode": a.session.Degraded(),
			"links":        interpret.ModuleLinks(reply.Content),
		}
		if id := reply.Recommendation(); id != "" {
			out["recommended_module"] = id
			out["module_title"] = id.Title()
		}
		jsonData, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
	if id := reply.Recommendation(); id != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "\nRecommended module: %s (%s)\n", id, id.Title())
	}
	if a.session.Degraded() && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "(limited mode: the completion service is unavailable)")
	}
	return nil
}
