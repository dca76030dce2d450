package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/history"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/output"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/ui/picker"
	"github.com/rvth/dirk/internal/workspace"
)

// shellQuote escapes a string for safe use in shell commands.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

func newPickCmd() *cobra.Command {
	var (
		filterQuery     string
		copyToClipboard bool
		execCommand     string
		workspaceFiles  bool
	)

	cmd := &cobra.Command{
		Use:     "pick",
		Short:   "Search directories and pick one",
		Aliases: []string{"p"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Search the configured paths with fd and pick a directory.

Results come from the cache when available; stale results are refreshed
in the background. On a terminal an interactive fuzzy picker opens;
otherwise all paths are printed for piping.`,
		Example: `  cd $(dirk pick)                 # pick and cd into a directory
  dirk pick --filter api          # print ranked matches for "api"
  dirk pick --copy                # copy the picked path to the clipboard
  dirk pick --exec "code {path}"  # open the picked directory in an editor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			// Workspace definition files: rare enough to search uncached
			if workspaceFiles {
				return runWorkspaceFilePick(cmd, filterQuery)
			}

			facade, cleanup := openFacade(ctx, cfg)
			defer cleanup()

			// Non-interactive filter mode: print ranked matches
			if filterQuery != "" {
				items, err := findDirectories(ctx, facade, cfg)
				if err != nil {
					return err
				}
				for _, item := range search.Filter(ctx, items, filterQuery) {
					out.Println(item.FullPath)
				}
				return nil
			}

			if !interactive() {
				// Piped: print all paths plain
				items, err := findDirectories(ctx, facade, cfg)
				if err != nil {
					return err
				}
				for _, item := range items {
					out.Println(item.FullPath)
				}
				return nil
			}

			item, cancelled, err := pickDirectory(ctx, facade, cfg, "Pick a directory")
			if err != nil {
				return err
			}
			if cancelled {
				return nil
			}

			if err := history.RecordPick(item.FullPath, history.Path()); err != nil {
				l.Debug("record pick history", "error", err)
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(item.FullPath); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}

			if execCommand != "" {
				return runExecCommand(item.FullPath, execCommand)
			}

			out.Println(item.FullPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterQuery, "filter", "f", "", "Print ranked matches for a query instead of picking")
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the picked path to the clipboard")
	cmd.Flags().StringVarP(&execCommand, "exec", "x", "", "Run a command with {path} replaced by the picked path")
	cmd.Flags().BoolVarP(&workspaceFiles, "workspaces", "w", false, "Search for workspace definition files instead of directories")

	return cmd
}

// runWorkspaceFilePick searches *.code-workspace files and prints or
// picks among them.
func runWorkspaceFilePick(cmd *cobra.Command, filterQuery string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	out := output.FromContext(ctx)

	items, err := search.FdExecutor{}.SearchWorkspaceFiles(ctx, searchParams(cfg))
	if err != nil {
		return err
	}

	if filterQuery != "" {
		items = search.Filter(ctx, items, filterQuery)
	}
	if !interactive() || filterQuery != "" {
		for _, item := range items {
			out.Println(item.FullPath)
		}
		return nil
	}

	if len(items) == 0 {
		return fmt.Errorf("no workspace files found under %v", cfg.ValidatedSearchPaths())
	}
	result, err := picker.Pick("Pick a workspace file", workspace.Decorate(items, nil, nil))
	if err != nil || result.Cancelled {
		return err
	}
	out.Println(result.Item.FullPath)
	return nil
}

// substitutePath replaces {path} with the shell-quoted picked path.
func substitutePath(command, path string) string {
	return strings.ReplaceAll(command, "{path}", shellQuote(path))
}

// runExecCommand substitutes {path} and runs the command through the shell.
func runExecCommand(path, command string) error {
	cmd := substitutePath(command, path)

	shellCmd := exec.Command("sh", "-c", cmd)
	shellCmd.Dir = path
	shellCmd.Stdout = os.Stdout
	shellCmd.Stderr = os.Stderr
	shellCmd.Stdin = os.Stdin

	if err := shellCmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", command, err)
	}
	return nil
}
