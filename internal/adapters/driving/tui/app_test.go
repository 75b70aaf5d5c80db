package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/services"
)

func testPorts() *Ports {
	return NewPorts(
		services.NewAnnotations(annotationsfile.NewStore()),
		services.NewPlot(domain.DefaultRegistry()),
		services.NewActions(),
	)
}

func testGroup(t *testing.T) *domain.Group {
	t.Helper()

	a := domain.NewRecord("model_001.pdb")
	a.SetNumber(domain.TotalScore, -300)
	a.SetNumber("loop_rmsd", 1.2)
	b := domain.NewRecord("model_002.pdb")
	b.SetNumber(domain.TotalScore, -320)
	b.SetNumber("loop_rmsd", 0.8)

	return domain.NewGroup(t.TempDir(), domain.NewTable([]*domain.Record{a, b}))
}

func testCollection(t *testing.T) *domain.Collection {
	t.Helper()
	c := domain.NewCollection()
	c.Add(testGroup(t))
	c.Add(testGroup(t))
	return c
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(testPorts(), testCollection(t), "loop_rmsd", domain.TotalScore)
	require.NoError(t, err)

	// Size the views so rendering has room.
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return model.(*App)
}

func TestNewApp_ValidatesPorts(t *testing.T) {
	_, err := NewApp(&Ports{}, testCollection(t), "loop_rmsd", domain.TotalScore)
	assert.ErrorIs(t, err, ErrMissingAnnotationService)
}

func TestNewApp_RequiresGroups(t *testing.T) {
	_, err := NewApp(testPorts(), domain.NewCollection(), "loop_rmsd", domain.TotalScore)
	assert.ErrorIs(t, err, ErrNoGroups)

	_, err = NewApp(testPorts(), nil, "loop_rmsd", domain.TotalScore)
	assert.ErrorIs(t, err, ErrNoGroups)
}

func TestApp_StartsOnGroupList(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, messages.ViewGroups, app.CurrentView())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_QQuitsFromGroupList(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_GroupChosenOpensModels(t *testing.T) {
	app := newTestApp(t)
	directory := app.Collection().Directories()[0]

	model, cmd := app.Update(messages.GroupChosen{Directory: directory})

	app = model.(*App)
	assert.Equal(t, messages.ViewModels, app.CurrentView())
	assert.NotNil(t, cmd, "opening a group schedules a plot build")
}

func TestApp_GroupChosenUnknownDirectoryIgnored(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(messages.GroupChosen{Directory: "not-loaded"})

	app = model.(*App)
	assert.Equal(t, messages.ViewGroups, app.CurrentView())
}

func TestApp_ViewChangedRouting(t *testing.T) {
	app := newTestApp(t)
	directory := app.Collection().Directories()[0]

	model, _ := app.Update(messages.GroupChosen{Directory: directory})
	app = model.(*App)

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewNotes})
	app = model.(*App)
	assert.Equal(t, messages.ViewNotes, app.CurrentView())

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewModels})
	app = model.(*App)
	assert.Equal(t, messages.ViewModels, app.CurrentView())

	model, _ = app.Update(messages.ViewChanged{View: messages.ViewGroups})
	app = model.(*App)
	assert.Equal(t, messages.ViewGroups, app.CurrentView())
}

func TestApp_QDoesNotQuitWhileEditingNotes(t *testing.T) {
	app := newTestApp(t)
	directory := app.Collection().Directories()[0]

	model, _ := app.Update(messages.GroupChosen{Directory: directory})
	app = model.(*App)
	model, _ = app.Update(messages.ViewChanged{View: messages.ViewNotes})
	app = model.(*App)

	model, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	app = model.(*App)

	assert.Equal(t, messages.ViewNotes, app.CurrentView())
	if cmd != nil {
		assert.NotEqual(t, tea.Quit(), cmd())
	}
}

func TestApp_ViewRendersGroupList(t *testing.T) {
	app := newTestApp(t)

	out := app.View()
	assert.Contains(t, out, "Model groups")
}
