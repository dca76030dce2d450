// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in error
// messages, making command failures more informative for users.
//
// # Usage
//
//	if err := cmd.RunContext(ctx, "", "fd", "--type", "d", "."); err != nil {
//	    // err contains stderr output if available
//	    return fmt.Errorf("fd failed: %w", err)
//	}
//
//	// For commands that return output:
//	output, err := cmd.OutputContext(ctx, "", "fd", "--type", "d", ".")
//	if err != nil {
//	    // err contains stderr output
//	}
//
// # Design Notes
//
// dirk shells out to the fd and fzf CLIs rather than reimplementing
// recursive search and fuzzy filtering. This keeps results identical to what
// users see in their shell and inherits their tool configuration
// (.fdignore, FZF_DEFAULT_OPTS, etc.).
package cmd
