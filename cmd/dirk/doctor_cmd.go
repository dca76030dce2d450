package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/search"
	"github.com/rvth/dirk/internal/storage"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose setup issues",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Diagnose setup issues.

Checks:
- fd is installed (required for searching)
- fzf is installed (optional, used for --filter ranking)
- Configured search paths exist
- Cache directory is writable
- Workspace file is valid JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			var issues int

			fmt.Println("Running diagnostics...")
			fmt.Println()

			if err := search.CheckFd(); err != nil {
				fmt.Printf("❌ fd not found: %v\n", err)
				issues++
			} else {
				fmt.Println("✓ fd is available")
			}

			if err := search.CheckFzf(); err != nil {
				fmt.Println("⚠ fzf not found (optional, in-process matching is used instead)")
			} else {
				fmt.Println("✓ fzf is available")
			}

			fmt.Println()

			// Search paths
			if len(cfg.SearchPaths) == 0 {
				fmt.Println("⚠ No search paths configured (searching the working directory)")
			} else {
				valid := cfg.ValidatedSearchPaths()
				fmt.Printf("✓ %d of %d configured search path(s) exist\n", len(valid), len(cfg.SearchPaths))
				if len(valid) < len(cfg.SearchPaths) {
					fmt.Println("⚠ Some configured search paths don't exist and are skipped")
				}
			}

			// Cache directory writable
			if dir, err := storage.CacheDir(); err != nil {
				fmt.Printf("❌ Cache directory unavailable: %v\n", err)
				issues++
			} else {
				probe := filepath.Join(dir, ".doctor")
				if err := os.WriteFile(probe, nil, 0o600); err != nil {
					fmt.Printf("❌ Cache directory not writable: %v\n", err)
					issues++
				} else {
					os.Remove(probe)
					fmt.Printf("✓ Cache directory is writable (%s)\n", dir)
				}
			}

			// Workspace file parses
			ws, path, err := loadWorkspace(cfg)
			if err != nil {
				fmt.Printf("❌ Workspace file invalid: %v\n", err)
				issues++
			} else {
				fmt.Printf("✓ Workspace file ok (%d folder(s), %s)\n", len(ws.Folders), path)
				for _, f := range ws.Folders {
					if _, err := os.Stat(f.Path); os.IsNotExist(err) {
						fmt.Printf("⚠ Workspace folder missing on disk: %s\n", f.Path)
					}
				}
			}

			fmt.Println()
			if issues > 0 {
				fmt.Printf("Found %d issue(s)\n", issues)
				return fmt.Errorf("%d issues found", issues)
			}

			fmt.Println("All checks passed")
			return nil
		},
	}

	return cmd
}
