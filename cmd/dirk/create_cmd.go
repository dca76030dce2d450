package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/workspace"
)

func newCreateCmd() *cobra.Command {
	var noAdd bool

	cmd := &cobra.Command{
		Use:     "create <name> [parent]",
		Short:   "Create a directory and add it to the workspace",
		GroupID: GroupWorkspace,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Create a new directory under a parent and add it to the
workspace file.

With no parent given, the interactive picker opens to choose one;
without a terminal the working directory is used.`,
		Example: `  dirk create api              # pick a parent, create api under it
  dirk create api ~/projects   # create ~/projects/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			name := args[0]

			var parent string
			if len(args) > 1 {
				parent = args[1]
			} else if interactive() {
				facade, cleanup := openFacade(ctx, cfg)
				defer cleanup()

				picked, cancelled, err := resolveTarget(ctx, facade, cfg, nil, "Pick parent directory")
				if err != nil || cancelled {
					return err
				}
				parent = picked
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				parent = cwd
			}

			ws, path, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}

			target := ws
			if noAdd {
				target = nil
			}
			newPath, err := workspace.CreateDir(target, parent, name)
			if err != nil {
				return err
			}
			if !noAdd {
				if err := ws.Save(path); err != nil {
					return err
				}
			}

			l.Printf("Created %s\n", newPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAdd, "no-add", false, "Create the directory without adding it to the workspace")

	return cmd
}
