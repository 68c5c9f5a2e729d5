// ABOUTME: Root CLI command, global flags and logging setup
// ABOUTME: Every subcommand hangs off NewRootCmd
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/logging"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	logLevel     string
	logJSON      bool
	ephemeral    bool
)

const banner = `
 ██████  ██████   █████   ██████ ██   ██
██      ██    ██ ██   ██ ██      ██   ██
██      ██    ██ ███████ ██      ███████
██      ██    ██ ██   ██ ██      ██   ██
 ██████  ██████  ██   ██  ██████ ██   ██
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Sponsorship outreach coach for The Total Altruism Project",
		Long: banner + `
A coaching assistant for nonprofit sponsorship outreach.

Answers questions from the seven-module TAP curriculum using keyword
retrieval over the module documents, and always ends with a recommended
next module. Works in limited mode when no OpenAI key is configured.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupGlobals,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print results and errors")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from COACH_LOG_LEVEL)")
	cmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
	cmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep state in memory only for this run")

	cmd.AddCommand(
		NewAskCmd(),
		NewChatCmd(),
		NewSearchCmd(),
		NewHistoryCmd(),
		NewCorpusCmd(),
		NewModulesCmd(),
		NewContactCmd(),
		NewSyncCmd(),
		NewBusinessCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	if verbose && quiet {
		return errors.New("--verbose and --quiet are mutually exclusive")
	}
	switch outputFormat {
	case "auto", "table", "json":
	default:
		return fmt.Errorf("unknown --format %q (want auto, table or json)", outputFormat)
	}

	// Load .env for API keys
	_ = godotenv.Load()

	level := logLevel
	if level == "" {
		level = os.Getenv("COACH_LOG_LEVEL")
	}
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(level)
	if verbose {
		cfg.Level = logging.DebugLevel
	} else if quiet {
		cfg.Level = logging.ErrorLevel
	}
	cfg.Output = cmd.ErrOrStderr()
	cfg.JSON = logJSON || os.Getenv("COACH_LOG_JSON") == "true"
	logging.Init(cfg)

	return nil
}
