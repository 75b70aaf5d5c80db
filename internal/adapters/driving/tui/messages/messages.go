// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewGroups is the group list with the notes filter.
	ViewGroups ViewType = iota
	// ViewModels is the per-group model table.
	ViewModels
	// ViewNotes is the notes editor.
	ViewNotes
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewGroups:
		return "groups"
	case ViewModels:
		return "models"
	case ViewNotes:
		return "notes"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// GroupChosen is sent when a group is opened from the list.
type GroupChosen struct {
	Directory string
}

// PlotBuilt carries freshly built plot data back to the models view.
type PlotBuilt struct {
	Data *driving.PlotData
	Err  error
}

// NotesSaved reports the outcome of a notes write.
type NotesSaved struct {
	Directory string
	Err       error
}

// RepresentativeChanged reports a representative pin or unpin.
type RepresentativeChanged struct {
	Directory string
	Index     *int
	Err       error
}

// ScriptsLoaded carries discovered helper scripts for the script menu.
type ScriptsLoaded struct {
	Actions []driving.ScriptAction
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
