package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/cache"
	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/output"
)

// clearConfirmDelay is how long the clear confirmation stays visible
// before it is wiped from the terminal.
const clearConfirmDelay = 2500 * time.Millisecond

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   "Manage the search result cache",
		GroupID: GroupCache,
	}

	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheCleanCmd())

	return cmd
}

func newCacheClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached search results",
		Args:  cobra.NoArgs,
		Long: `Clear the in-memory, file, and structured cache tiers.

Reports how many entries were dropped. Partial failures (an unreadable
cache directory, a missing store) are logged and never block the rest
of the clear.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			facade, cleanup := openFacade(ctx, cfg)
			defer cleanup()

			count := facade.Clear(ctx)

			msg := fmt.Sprintf("Cleared %d cached search(es)", count)
			if interactive() {
				fmt.Fprint(os.Stderr, msg)
				time.Sleep(clearConfirmDelay)
				// Wipe the confirmation line
				fmt.Fprint(os.Stderr, "\r\033[K")
			} else {
				output.FromContext(ctx).Println(msg)
			}
			return nil
		},
	}

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var maxAge time.Duration

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove stale cache files",
		Args:  cobra.NoArgs,
		Long: `Remove cache files that are older than the stale age, unreadable,
or written by an incompatible version.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)

			facade, cleanup := openFacade(ctx, cfg)
			defer cleanup()

			removed := facade.CleanupStale(ctx, maxAge)
			out.Printf("Removed %d stale cache file(s)\n", removed)
			return nil
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", cache.DefaultStaleAge, "Age beyond which cache files are removed")

	return cmd
}
