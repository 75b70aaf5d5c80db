package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/styles"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/views/groups"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/views/models"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/views/notes"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// collection holds the loaded groups, in load order.
	collection *domain.Collection

	// groupsView is the group list view component.
	groupsView *groups.View

	// modelsView is the per-group model table view component.
	modelsView *models.View

	// notesView is the notes editor view component.
	notesView *notes.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application over an already-loaded
// collection. xMetric and yMetric pick the starting axis pair.
func NewApp(ports *Ports, collection *domain.Collection, xMetric, yMetric string) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if collection == nil || collection.Len() == 0 {
		return nil, ErrNoGroups
	}

	s := styles.DefaultStyles()
	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		collection:  collection,
		groupsView:  groups.NewView(s, collection),
		modelsView:  models.NewView(s, ports.Plot, ports.Annotations, ports.Actions, xMetric, yMetric),
		notesView:   notes.NewView(s, ports.Annotations),
		currentView: messages.ViewGroups,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("smd - Show My Designs"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.groupsView.SetDimensions(msg.Width, msg.Height)
		a.modelsView.SetDimensions(msg.Width, msg.Height)
		a.notesView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		// q quits outside text entry
		if msg.String() == "q" && a.quitAllowed() {
			return a, tea.Quit
		}
		return a.updateCurrentView(msg)

	case messages.GroupChosen:
		group, ok := a.collection.Get(msg.Directory)
		if !ok {
			return a, nil
		}
		a.currentView = messages.ViewModels
		return a, a.modelsView.SetGroup(group)

	case messages.ViewChanged:
		return a.changeView(msg.View)
	}

	return a.updateCurrentView(msg)
}

// quitAllowed reports whether plain q should quit: never while typing
// into the notes editor or the filter input.
func (a *App) quitAllowed() bool {
	if a.currentView == messages.ViewNotes {
		return false
	}
	if a.currentView == messages.ViewGroups && a.groupsView.Filtering() {
		return false
	}
	return true
}

// changeView switches the active view, refreshing whatever the
// previous view may have changed.
func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch view {
	case messages.ViewGroups:
		// Notes edited in other views feed the filter.
		a.groupsView.Refresh()

	case messages.ViewModels:
		if a.currentView == messages.ViewNotes {
			a.groupsView.Refresh()
		}

	case messages.ViewNotes:
		if group := a.modelsView.Group(); group != nil {
			cmd = a.notesView.SetGroup(group)
		}
	}
	a.currentView = view
	return a, cmd
}

// updateCurrentView forwards a message to the active view.
func (a *App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewGroups:
		a.groupsView, cmd = a.groupsView.Update(msg)
	case messages.ViewModels:
		a.modelsView, cmd = a.modelsView.Update(msg)
	case messages.ViewNotes:
		a.notesView, cmd = a.notesView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.currentView {
	case messages.ViewModels:
		return a.modelsView.View()
	case messages.ViewNotes:
		return a.notesView.View()
	default:
		return a.groupsView.View()
	}
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Collection returns the loaded groups.
func (a *App) Collection() *domain.Collection {
	return a.collection
}
