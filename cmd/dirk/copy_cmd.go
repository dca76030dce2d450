package main

import (
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/workspace"
)

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy [src] [dest]",
		Short:   "Copy a directory recursively",
		Aliases: []string{"cp"},
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(2),
		Long: `Copy a directory tree into another directory on disk.

Missing arguments are picked interactively: first the source, then
the destination.`,
		Example: `  dirk copy                          # pick source, then destination
  dirk copy ~/projects/api ~/backup  # copy ~/projects/api to ~/backup/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTwoStepOp(cmd, args, workspace.OpCopy)
		},
	}

	return cmd
}
