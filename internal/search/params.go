package search

// ItemType distinguishes plain directories from workspace files.
type ItemType int

const (
	// ItemDirectory is a directory found by the search tool.
	ItemDirectory ItemType = iota
	// ItemWorkspaceFile is a workspace definition file.
	ItemWorkspaceFile
)

// String returns the JSON-stable name of the item type.
func (t ItemType) String() string {
	switch t {
	case ItemWorkspaceFile:
		return "workspace-file"
	default:
		return "directory"
	}
}

// DirectoryItem is a single search result. Produced by the executor,
// consumed read-only by the cache and the picker.
type DirectoryItem struct {
	FullPath    string   `json:"fullPath"`
	Label       string   `json:"label"`
	Description string   `json:"description,omitempty"`
	Type        ItemType `json:"itemType"`
}

// Params describes a directory search. Element order in every field is
// significant: the same values in a different order are a different search.
type Params struct {
	SearchPaths     []string `json:"search_paths"`
	ExcludePatterns []string `json:"exclude_patterns"`
	AdditionalArgs  []string `json:"additional_args"`
}
