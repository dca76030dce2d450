// Package picker provides the interactive directory picker.
//
// The picker shows search results in a fuzzy-filterable list: typing
// narrows the list, enter confirms, esc cancels. Decorations (git,
// workspace membership) are rendered as badges after the item name.
package picker

import (
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/rvth/dirk/internal/ui/styles"
	"github.com/rvth/dirk/internal/workspace"
)

// maxVisible is the number of list rows rendered at once.
const maxVisible = 10

// Result holds the outcome of a picker session.
type Result struct {
	Item      workspace.DecoratedItem
	Cancelled bool
}

// itemSource implements fuzzy.Source over the item labels.
type itemSource []workspace.DecoratedItem

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

type pickerModel struct {
	title       string
	items       []workspace.DecoratedItem
	filterInput textinput.Model
	filtered    []fuzzy.Match // matches with scores and indices
	cursor      int           // position in filtered list
	selected    int           // selected index in items, -1 if none
	done        bool
	cancelled   bool
}

func newModel(title string, items []workspace.DecoratedItem) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "Filter: "
	ti.Focus()

	m := pickerModel{
		title:       title,
		items:       items,
		filterInput: ti,
		selected:    -1,
	}
	m.applyFilter()
	return m
}

func (m pickerModel) filter() string {
	return m.filterInput.Value()
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case "home", "pgup":
			m.cursor = 0
			return m, nil
		case "end", "pgdown":
			m.cursor = max(0, len(m.filtered)-1)
			return m, nil
		case "enter":
			if len(m.filtered) > 0 && m.cursor >= 0 && m.cursor < len(m.filtered) {
				m.selected = m.filtered[m.cursor].Index
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}

	// Everything else edits the filter
	before := m.filter()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filter() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m pickerModel) View() tea.View {
	return tea.NewView(m.render())
}

// render produces the frame content as a plain string.
func (m pickerModel) render() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.PrimaryStyle.Render(m.title) + "\n")
	b.WriteString(m.filterInput.View() + "\n\n")

	// Show filtered list with scroll
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		item := m.items[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		label := item.Label
		if m.filter() != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(item.Label, match.MatchedIndexes, i == m.cursor)
		} else if i == m.cursor {
			label = styles.AccentStyle.Render(label)
		} else {
			label = styles.NormalStyle.Render(label)
		}

		b.WriteString(cursor + label)
		for _, badge := range item.Badges() {
			b.WriteString(" " + styles.Badge(badge))
		}
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString("    " + styles.MutedStyle.Render(item.Description) + "\n")
		}
	}

	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching directories") + "\n")
	}

	b.WriteString("\n" + styles.InfoStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")

	return b.String()
}

// highlightMatches renders the label with matched characters highlighted.
func highlightMatches(label string, matchedIndexes []int, isSelected bool) string {
	matchSet := make(map[int]bool)
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	var result strings.Builder
	for i, r := range []rune(label) {
		char := string(r)
		switch {
		case matchSet[i]:
			result.WriteString(styles.HighlightStyle.Render(char))
		case isSelected:
			result.WriteString(styles.AccentStyle.Render(char))
		default:
			result.WriteString(styles.NormalStyle.Render(char))
		}
	}
	return result.String()
}

func (m *pickerModel) applyFilter() {
	if m.filter() == "" {
		// No filter - show all items in original order
		m.filtered = make([]fuzzy.Match, len(m.items))
		for i := range m.items {
			m.filtered[i] = fuzzy.Match{
				Str:   m.items[i].Label,
				Index: i,
			}
		}
	} else {
		// Results are sorted by score, best first
		m.filtered = fuzzy.FindFrom(m.filter(), itemSource(m.items))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Pick shows the interactive picker and returns the user's selection.
func Pick(title string, items []workspace.DecoratedItem) (Result, error) {
	if len(items) == 0 {
		return Result{Cancelled: true}, nil
	}

	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(newModel(title, items),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)
	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	m := finalModel.(pickerModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(items) {
		return Result{Cancelled: true}, nil
	}
	return Result{Item: items[m.selected]}, nil
}
