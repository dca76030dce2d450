package workspace

import "github.com/rvth/dirk/internal/search"

// Decoration holds display hints for a directory item. Decorations are
// computed up front and carried next to the item, never merged into it.
type Decoration struct {
	GitRepo bool // Directory is a git repository
	Member  bool // Directory is a workspace folder
}

// Badges returns the short labels to render after the item's name.
func (d Decoration) Badges() []string {
	var badges []string
	if d.GitRepo {
		badges = append(badges, "git")
	}
	if d.Member {
		badges = append(badges, "workspace")
	}
	return badges
}

// DecoratedItem pairs a directory item with its display hints.
type DecoratedItem struct {
	search.DirectoryItem
	Decoration
}

// Decorate projects items into decorated items. gitRepo reports whether
// a path is a git repository; a nil workspace means no member badges.
func Decorate(items []search.DirectoryItem, gitRepo func(string) bool, w *Workspace) []DecoratedItem {
	decorated := make([]DecoratedItem, len(items))
	for i, item := range items {
		var d Decoration
		if gitRepo != nil {
			d.GitRepo = gitRepo(item.FullPath)
		}
		if w != nil {
			d.Member = w.Contains(item.FullPath)
		}
		decorated[i] = DecoratedItem{DirectoryItem: item, Decoration: d}
	}
	return decorated
}
