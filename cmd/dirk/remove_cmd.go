package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/ui/picker"
	"github.com/rvth/dirk/internal/workspace"
)

// workspaceItems turns workspace folders into pickable items.
func workspaceItems(ws *workspace.Workspace) []workspace.DecoratedItem {
	items := make([]search.DirectoryItem, len(ws.Folders))
	for i, f := range ws.Folders {
		items[i] = search.DirectoryItem{
			FullPath:    f.Path,
			Label:       f.DisplayName(),
			Description: f.Path,
		}
	}
	decorated := workspace.Decorate(items, nil, ws)
	return decorated
}

// pickWorkspaceFolder opens the picker over the workspace's own folders.
func pickWorkspaceFolder(ws *workspace.Workspace, title string) (string, bool, error) {
	if len(ws.Folders) == 0 {
		return "", false, fmt.Errorf("workspace is empty")
	}
	if !interactive() {
		return "", false, fmt.Errorf("no path given and stdout is not a terminal")
	}

	result, err := picker.Pick(title, workspaceItems(ws))
	if err != nil || result.Cancelled {
		return "", result.Cancelled, err
	}
	return result.Item.FullPath, false, nil
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove [path]",
		Short:   "Remove a directory from the workspace",
		Aliases: []string{"rm"},
		GroupID: GroupWorkspace,
		Args:    cobra.MaximumNArgs(1),
		Long: `Remove a directory from the workspace file.

The directory itself is untouched; only the workspace entry goes away.
With no argument, pick among the current workspace folders.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			ws, path, err := loadWorkspace(cfg)
			if err != nil {
				return err
			}

			var target string
			if len(args) > 0 {
				target = args[0]
			} else {
				var cancelled bool
				target, cancelled, err = pickWorkspaceFolder(ws, "Remove from workspace")
				if err != nil || cancelled {
					return err
				}
			}

			if err := ws.Remove(target); err != nil {
				return err
			}
			if err := ws.Save(path); err != nil {
				return err
			}

			l.Printf("Removed %s from workspace\n", target)
			return nil
		},
	}

	return cmd
}
