// Package groups provides the group list view component for the TUI.
package groups

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/styles"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// View is the group list view. Groups are filtered by their notes:
// typing in the filter narrows the list to directories whose notes
// contain the query.
type View struct {
	styles     *styles.Styles
	collection *domain.Collection

	visible      []string
	selected     int
	scrollOffset int
	filtering    bool
	filterInput  textinput.Model
	width        int
	height       int
	err          error
}

// NewView creates a new group list view.
func NewView(s *styles.Styles, collection *domain.Collection) *View {
	input := textinput.New()
	input.Placeholder = "filter by notes..."
	input.CharLimit = 128

	v := &View{
		styles:      s,
		collection:  collection,
		filterInput: input,
	}
	v.applyFilter("")
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Filtering reports whether the filter input has focus, so the app
// knows not to treat letter keys as shortcuts.
func (v *View) Filtering() bool {
	return v.filtering
}

// SelectedDirectory returns the highlighted group's directory, or ""
// when the filtered list is empty.
func (v *View) SelectedDirectory() string {
	if v.selected < 0 || v.selected >= len(v.visible) {
		return ""
	}
	return v.visible[v.selected]
}

// Refresh recomputes the filtered list, keeping the current query.
// Called after notes change so the filter reflects the new text.
func (v *View) Refresh() {
	v.applyFilter(v.filterInput.Value())
}

// applyFilter rebuilds the visible list for a query.
func (v *View) applyFilter(query string) {
	v.visible = v.collection.FilterByNotes(query)
	if v.selected >= len(v.visible) {
		v.selected = len(v.visible) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	v.scrollOffset = 0
}

// Update handles messages for the group list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.handleFilterKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

// handleKeyMsg handles navigation keys.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.ensureVisible()
		}

	case "down", "j":
		if v.selected < len(v.visible)-1 {
			v.selected++
			v.ensureVisible()
		}

	case "/":
		v.filtering = true
		return v, v.filterInput.Focus()

	case "enter":
		directory := v.SelectedDirectory()
		if directory == "" {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.GroupChosen{Directory: directory}
		}
	}
	return v, nil
}

// handleFilterKeyMsg handles keys while the filter input has focus.
func (v *View) handleFilterKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.filtering = false
		v.filterInput.Blur()
		v.filterInput.SetValue("")
		v.applyFilter("")
		return v, nil

	case "enter":
		v.filtering = false
		v.filterInput.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.filterInput, cmd = v.filterInput.Update(msg)
	v.applyFilter(v.filterInput.Value())
	return v, cmd
}

// ensureVisible scrolls the list so the selection stays on screen.
func (v *View) ensureVisible() {
	visibleRows := v.listHeight()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
	if v.selected >= v.scrollOffset+visibleRows {
		v.scrollOffset = v.selected - visibleRows + 1
	}
}

// listHeight returns the number of list rows that fit on screen.
func (v *View) listHeight() int {
	// Title, filter, blank line, status bar.
	h := v.height - 5
	if h < 1 {
		return 1
	}
	return h
}

// View renders the group list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Model groups"))
	b.WriteString("\n")

	if v.filtering || v.filterInput.Value() != "" {
		b.WriteString(v.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}

	if len(v.visible) == 0 {
		b.WriteString(v.styles.Muted.Render("No groups match."))
		b.WriteString("\n")
	}

	end := v.scrollOffset + v.listHeight()
	if end > len(v.visible) {
		end = len(v.visible)
	}
	for i := v.scrollOffset; i < end; i++ {
		directory := v.visible[i]
		group, ok := v.collection.Get(directory)
		if !ok {
			continue
		}

		line := fmt.Sprintf("%-40s %4d models", directory, group.Len())
		if summary := notesSummary(group.Notes()); summary != "" {
			line += "  " + summary
		}

		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("↑/↓ navigate • enter open • / filter by notes • q quit"))
	return b.String()
}

// notesSummary returns the first line of the notes, truncated.
func notesSummary(notes string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(notes), "\n")
	if len(line) > 40 {
		line = line[:37] + "..."
	}
	return line
}
