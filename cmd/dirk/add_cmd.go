package main

import (
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/workspace"
)

func newAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "add [path]",
		Short:   "Add a directory to the workspace",
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(1),
		Long: `Add a directory to the workspace file.

With no argument, the interactive picker opens to choose the directory.`,
		Example: `  dirk add                    # pick a directory to add
  dirk add ~/projects/api     # add an explicit path
  dirk add --name api ~/projects/api-v2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			facade, cleanup := openFacade(ctx, cfg)
			defer cleanup()

			target, cancelled, err := resolveTarget(ctx, facade, cfg, args, "Add to workspace")
			if err != nil || cancelled {
				return err
			}

			ws, path, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}
			if err := ws.Add(workspace.Folder{Path: target, Name: name}); err != nil {
				return err
			}
			if err := ws.Save(path); err != nil {
				return err
			}

			l.Printf("Added %s to workspace\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name for the workspace folder")

	return cmd
}
