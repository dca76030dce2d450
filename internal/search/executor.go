package search

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rvth/dirk/internal/cmd"
)

// ErrFdNotFound indicates fd is not installed or not in PATH
var ErrFdNotFound = fmt.Errorf("fd not found: please install fd (https://github.com/sharkdp/fd)")

// CheckFd verifies that fd is available in PATH
func CheckFd() error {
	if _, err := exec.LookPath("fd"); err != nil {
		return ErrFdNotFound
	}
	return nil
}

// Executor runs a directory search. Implementations must honor ctx
// cancellation promptly since refreshes run them under a timeout.
type Executor interface {
	Search(ctx context.Context, params Params) ([]DirectoryItem, error)
}

// FdExecutor searches directories by shelling out to fd.
type FdExecutor struct{}

// Search runs fd with the given parameters and parses its output into
// directory items. Results keep fd's output order.
func (FdExecutor) Search(ctx context.Context, params Params) ([]DirectoryItem, error) {
	if err := CheckFd(); err != nil {
		return nil, err
	}

	args := []string{"--type", "d", "--absolute-path"}
	for _, pattern := range params.ExcludePatterns {
		args = append(args, "--exclude", pattern)
	}
	args = append(args, params.AdditionalArgs...)
	// Match-all pattern; search roots follow the pattern.
	args = append(args, ".")
	args = append(args, params.SearchPaths...)

	out, err := cmd.OutputContext(ctx, "", "fd", args...)
	if err != nil {
		return nil, fmt.Errorf("fd search: %w", err)
	}

	return parseFdOutput(string(out), ItemDirectory), nil
}

// SearchWorkspaceFiles finds workspace definition files (*.code-workspace)
// under the search paths. Always runs in the foreground, uncached.
func (FdExecutor) SearchWorkspaceFiles(ctx context.Context, params Params) ([]DirectoryItem, error) {
	if err := CheckFd(); err != nil {
		return nil, err
	}

	args := []string{"--type", "f", "--absolute-path", "--extension", "code-workspace"}
	for _, pattern := range params.ExcludePatterns {
		args = append(args, "--exclude", pattern)
	}
	args = append(args, ".")
	args = append(args, params.SearchPaths...)

	out, err := cmd.OutputContext(ctx, "", "fd", args...)
	if err != nil {
		return nil, fmt.Errorf("fd workspace file search: %w", err)
	}

	return parseFdOutput(string(out), ItemWorkspaceFile), nil
}

// parseFdOutput converts fd's line-delimited output into items.
func parseFdOutput(out string, typ ItemType) []DirectoryItem {
	var items []DirectoryItem
	for line := range strings.Lines(out) {
		path := strings.TrimRight(line, "\r\n")
		if path == "" {
			continue
		}
		path = strings.TrimSuffix(path, string(filepath.Separator))
		items = append(items, DirectoryItem{
			FullPath:    path,
			Label:       filepath.Base(path),
			Description: filepath.Dir(path),
			Type:        typ,
		})
	}
	return items
}
