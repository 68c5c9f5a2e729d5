// ABOUTME: Sync command for Charm cloud synchronization
// ABOUTME: Pushes and pulls chat history and the knowledge base cache
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/config"
	"github.com/harper/tap-coach/internal/storage"
)

// NewSyncCmd creates the sync command
func NewSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync state with Charm cloud",
		Long: `Force an immediate sync with Charm cloud.

Chat history, the knowledge base cache and lookup spending live in a
Charm KV database (COACH_DB on CHARM_HOST). Set CHARM_AUTO_SYNC=true
to sync after every write instead.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	defer store.Close()

	if !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Syncing...")
	}
	if err := store.Sync(); err != nil {
		if errors.Is(err, storage.ErrSyncUnsupported) {
			return fmt.Errorf("nothing to sync: %w (drop --ephemeral)", err)
		}
		return fmt.Errorf("sync failed: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Sync complete (%s on %s)\n", cfg.CharmDBName, cfg.CharmHost)
	}
	return nil
}
