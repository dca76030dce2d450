package main

import (
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/workspace"
)

func newReplaceCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "replace <old-path> [new-path]",
		Short:   "Swap one workspace folder for another",
		GroupID: GroupWorkspace,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Replace a workspace folder with a different directory, keeping
its position in the workspace file.

With only the old path given, the interactive picker opens to choose
the replacement.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			facade, cleanup := openFacade(ctx, cfg)
			defer cleanup()

			oldPath := args[0]
			newPath, cancelled, err := resolveTarget(ctx, facade, cfg, args[1:], "Pick replacement")
			if err != nil || cancelled {
				return err
			}

			ws, path, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			if err := ws.Replace(oldPath, workspace.Folder{Path: newPath, Name: name}); err != nil {
				return err
			}
			if err := ws.Save(path); err != nil {
				return err
			}

			l.Printf("Replaced %s with %s\n", oldPath, newPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the new workspace folder")

	return cmd
}
