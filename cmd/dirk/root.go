package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rvth/dirk/internal/config"
	"github.com/rvth/dirk/internal/log"
	"github.com/rvth/dirk/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore      = "core"
	GroupWorkspace = "workspace"
	GroupCache     = "cache"
	GroupConfig    = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dirk",
	Short: "Fast directory picker with cached fd searches",
	Long: `dirk locates directories under your configured search paths with fd,
lets you pick one interactively, and keeps results in a tiered cache so
repeat searches are instant. Stale results are served immediately and
refreshed in the background.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load config, overlay a .dirk.toml from the working directory
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg := &loadedCfg
	if workDir, err := os.Getwd(); err == nil {
		local, err := config.LoadLocal(workDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if local != nil {
			cfg = config.MergeLocal(cfg, local)
		}
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	ctx = config.WithConfig(ctx, cfg)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'dirk -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupWorkspace, Title: "Workspace Commands:"},
		&cobra.Group{ID: GroupCache, Title: "Cache Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newRecentCmd())

	// Workspace commands
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newReplaceCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newCopyCmd())
	rootCmd.AddCommand(newCreateCmd())

	// Cache commands
	rootCmd.AddCommand(newCacheCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newDoctorCmd())
}
