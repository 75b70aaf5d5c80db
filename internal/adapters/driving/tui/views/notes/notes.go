// Package notes provides the notes editor view for the TUI.
package notes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/styles"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// View is the notes editor for one group. Saving writes through the
// annotation service; clearing the text removes the sidecar.
type View struct {
	styles      *styles.Styles
	annotations driving.AnnotationService

	group  *domain.Group
	editor textarea.Model
	width  int
	height int
	err    error
}

// NewView creates a new notes editor view.
func NewView(s *styles.Styles, annotations driving.AnnotationService) *View {
	editor := textarea.New()
	editor.Placeholder = "Notes about this design round..."
	editor.ShowLineNumbers = false

	return &View{
		styles:      s,
		annotations: annotations,
		editor:      editor,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetDimensions updates the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.editor.SetWidth(width - 4)
	if height > 8 {
		v.editor.SetHeight(height - 6)
	}
}

// SetGroup opens the editor on a group's current notes.
func (v *View) SetGroup(group *domain.Group) tea.Cmd {
	v.group = group
	v.editor.SetValue(group.Notes())
	v.err = nil
	return v.editor.Focus()
}

// Update handles messages for the notes editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			v.editor.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewModels}
			}

		case "ctrl+s":
			return v, v.save()
		}

	case messages.NotesSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.editor.Blur()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewModels}
		}
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// save returns a command that persists the editor's text.
func (v *View) save() tea.Cmd {
	group, text := v.group, v.editor.Value()
	return func() tea.Msg {
		err := v.annotations.SetNotes(group, text)
		return messages.NotesSaved{Directory: group.Directory, Err: err}
	}
}

// View renders the notes editor.
func (v *View) View() string {
	if v.group == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Notes: " + v.group.Directory))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}

	b.WriteString(v.editor.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("ctrl+s save • esc cancel"))
	return b.String()
}
