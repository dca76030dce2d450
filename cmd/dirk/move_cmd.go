package main

import (
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/workspace"
)

// runTwoStepOp drives the pick-source-then-pick-destination flow shared
// by move and copy.
func runTwoStepOp(cmd *cobra.Command, args []string, kind workspace.OpKind) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	l := log.FromContext(ctx)

	facade, cleanup := openFacade(ctx, cfg)
	defer cleanup()

	srcPath, cancelled, err := resolveTarget(ctx, facade, cfg, args, "Pick directory to "+kind.String())
	if err != nil || cancelled {
		return err
	}

	pending := workspace.PendingOperation{
		Kind:    kind,
		Sources: []search.DirectoryItem{{FullPath: srcPath}},
	}

	destDir, cancelled, err := resolveTarget(ctx, facade, cfg, args[min(1, len(args)):], "Pick destination")
	if err != nil || cancelled {
		return err
	}

	ws, path, err := loadWorkspace(cfg)
	if err != nil {
		return err
	}

	newPaths, err := pending.Complete(ws, destDir)
	if err != nil {
		return err
	}
	if err := ws.Save(path); err != nil {
		return err
	}

	// The moved/copied tree invalidates cached listings
	count := facade.Clear(ctx)
	l.Debug("cleared cache after workspace operation", "entries", count)

	past := "Moved"
	if kind == workspace.OpCopy {
		past = "Copied"
	}
	for _, p := range newPaths {
		l.Printf("%s %s to %s\n", past, srcPath, p)
	}
	return nil
}

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "move [src] [dest]",
		Short:   "Move a directory, updating the workspace",
		Aliases: []string{"mv"},
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(2),
		Long: `Move a directory into another directory on disk. If the source
was a workspace folder, the entry follows the move.

Missing arguments are picked interactively: first the source, then
the destination.`,
		Example: `  dirk move                          # pick source, then destination
  dirk move ~/old/api ~/projects     # move ~/old/api to ~/projects/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTwoStepOp(cmd, args, workspace.OpMove)
		},
	}

	return cmd
}
