package search

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/rvth/dirk/internal/cmd"
	"github.com/rvth/dirk/internal/log"
)

// ErrFzfNotFound indicates fzf is not installed or not in PATH
var ErrFzfNotFound = fmt.Errorf("fzf not found: please install fzf (https://github.com/junegunn/fzf)")

// CheckFzf verifies that fzf is available in PATH
func CheckFzf() error {
	if _, err := exec.LookPath("fzf"); err != nil {
		return ErrFzfNotFound
	}
	return nil
}

// itemSource implements fuzzy.Source over directory item paths.
type itemSource []DirectoryItem

func (s itemSource) String(i int) string { return s[i].FullPath }
func (s itemSource) Len() int            { return len(s) }

// Filter ranks items against query, best match first. It pipes paths through
// fzf --filter when fzf is installed and falls back to in-process fuzzy
// matching otherwise. An empty query returns items unchanged.
func Filter(ctx context.Context, items []DirectoryItem, query string) []DirectoryItem {
	if query == "" || len(items) == 0 {
		return items
	}

	if CheckFzf() == nil {
		filtered, err := filterWithFzf(ctx, items, query)
		if err == nil {
			return filtered
		}
		log.FromContext(ctx).Debug("fzf filter failed, using built-in matcher", "err", err)
	}

	return FilterFuzzy(items, query)
}

// filterWithFzf feeds item paths to fzf --filter and maps the ranked output
// lines back to items.
func filterWithFzf(ctx context.Context, items []DirectoryItem, query string) ([]DirectoryItem, error) {
	byPath := make(map[string]DirectoryItem, len(items))
	var input strings.Builder
	for _, item := range items {
		byPath[item.FullPath] = item
		input.WriteString(item.FullPath)
		input.WriteByte('\n')
	}

	out, err := cmd.InputOutputContext(ctx, []byte(input.String()), "fzf", "--filter", query)
	if err != nil {
		// fzf exits 1 when nothing matches
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}

	var filtered []DirectoryItem
	for line := range strings.Lines(string(out)) {
		path := strings.TrimRight(line, "\r\n")
		if item, ok := byPath[path]; ok {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

// FilterFuzzy ranks items with the in-process matcher, best score first.
func FilterFuzzy(items []DirectoryItem, query string) []DirectoryItem {
	matches := fuzzy.FindFrom(query, itemSource(items))
	filtered := make([]DirectoryItem, len(matches))
	for i, m := range matches {
		filtered[i] = items[m.Index]
	}
	return filtered
}
