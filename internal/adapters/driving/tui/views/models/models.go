// Package models provides the per-group model table view for the TUI.
package models

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/styles"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// View is the model table view for one group. It shows every model
// with the current axis metric pair and lets the user change the pair,
// pin the representative, and browse the helper-script menu.
type View struct {
	styles      *styles.Styles
	plotService driving.PlotService
	annotations driving.AnnotationService
	actions     driving.ActionService

	group    *domain.Group
	defaultX string
	defaultY string

	metricNames  []string
	xIdx         int
	yIdx         int
	plotData     *driving.PlotData
	selected     int
	scrollOffset int

	showingMenu  bool
	menuSelected int
	scripts      []driving.ScriptAction

	status string
	width  int
	height int
	err    error
}

// NewView creates a new model table view.
func NewView(
	s *styles.Styles,
	plotService driving.PlotService,
	annotations driving.AnnotationService,
	actions driving.ActionService,
	defaultX, defaultY string,
) *View {
	return &View{
		styles:      s,
		plotService: plotService,
		annotations: annotations,
		actions:     actions,
		defaultX:    defaultX,
		defaultY:    defaultY,
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
}

// Group returns the group currently shown.
func (v *View) Group() *domain.Group {
	return v.group
}

// SetGroup switches the view to a group and rebuilds the plot data.
func (v *View) SetGroup(group *domain.Group) tea.Cmd {
	v.group = group
	v.metricNames = group.DefinedMetrics()
	v.xIdx = metricIndex(v.metricNames, v.defaultX, 0)
	v.yIdx = metricIndex(v.metricNames, v.defaultY, 1)
	v.plotData = nil
	v.selected = 0
	v.scrollOffset = 0
	v.showingMenu = false
	v.status = ""
	v.err = nil
	return v.buildPlot()
}

// metricIndex returns the index of name in names, or fallback when the
// name is not defined on this group.
func metricIndex(names []string, name string, fallback int) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	if fallback >= len(names) {
		fallback = len(names) - 1
	}
	if fallback < 0 {
		fallback = 0
	}
	return fallback
}

// buildPlot returns a command that rebuilds the plot data for the
// current metric pair.
func (v *View) buildPlot() tea.Cmd {
	group := v.group
	x, y := v.metricNames[v.xIdx], v.metricNames[v.yIdx]
	return func() tea.Msg {
		data, err := v.plotService.Build([]*domain.Group{group}, x, y)
		return messages.PlotBuilt{Data: data, Err: err}
	}
}

// Update handles messages for the model table view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.showingMenu {
			return v.handleMenuKeyMsg(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.PlotBuilt:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.plotData = msg.Data
			v.err = nil
		}
		return v, nil

	case messages.RepresentativeChanged:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		if msg.Index != nil {
			v.status = fmt.Sprintf("Pinned model %d as representative.", *msg.Index)
		} else {
			v.status = "Representative unpinned."
		}
		// Representative markers live in the plot data.
		return v, v.buildPlot()

	case messages.ScriptsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.scripts = msg.Actions
		v.menuSelected = 0
		v.showingMenu = true
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case statusMsg:
		v.status = string(msg)
		return v, nil
	}
	return v, nil
}

// handleKeyMsg handles table navigation and annotation keys.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.ensureVisible()
		}

	case "down", "j":
		if v.selected < v.group.Len()-1 {
			v.selected++
			v.ensureVisible()
		}

	case "x":
		v.xIdx = (v.xIdx + 1) % len(v.metricNames)
		return v, v.buildPlot()

	case "y":
		v.yIdx = (v.yIdx + 1) % len(v.metricNames)
		return v, v.buildPlot()

	case "r":
		return v, v.pinRepresentative(v.selected)

	case "R":
		return v, v.clearRepresentative()

	case "n":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewNotes}
		}

	case "s":
		return v, v.discoverScripts()

	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewGroups}
		}
	}
	return v, nil
}

// handleMenuKeyMsg handles keys while the script menu is open.
func (v *View) handleMenuKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.menuSelected > 0 {
			v.menuSelected--
		}

	case "down", "j":
		if v.menuSelected < len(v.scripts)-1 {
			v.menuSelected++
		}

	case "enter":
		if v.menuSelected < len(v.scripts) {
			v.showingMenu = false
			return v, v.describeAction(v.scripts[v.menuSelected])
		}

	case "esc":
		v.showingMenu = false
	}
	return v, nil
}

// pinRepresentative returns a command that pins index as the
// representative model.
func (v *View) pinRepresentative(index int) tea.Cmd {
	group := v.group
	return func() tea.Msg {
		err := v.annotations.SetRepresentative(group, index)
		return messages.RepresentativeChanged{
			Directory: group.Directory,
			Index:     &index,
			Err:       err,
		}
	}
}

// clearRepresentative returns a command that reverts to the derived
// representative.
func (v *View) clearRepresentative() tea.Cmd {
	group := v.group
	return func() tea.Msg {
		err := v.annotations.ClearRepresentative(group)
		return messages.RepresentativeChanged{Directory: group.Directory, Err: err}
	}
}

// discoverScripts returns a command that loads the script menu.
func (v *View) discoverScripts() tea.Cmd {
	group := v.group
	return func() tea.Msg {
		actions, err := v.actions.DiscoverScripts(group.Directory)
		return messages.ScriptsLoaded{Actions: actions, Err: err}
	}
}

// describeAction returns a command that resolves the selected model's
// context for a script and reports the invocation it implies. Running
// scripts is left to the user's shell.
func (v *View) describeAction(action driving.ScriptAction) tea.Cmd {
	group, index := v.group, v.selected
	return func() tea.Msg {
		context, err := v.actions.ModelContext(group, index)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return statusMsg(fmt.Sprintf("%s %s", action.Path, context.Path))
	}
}

// statusMsg updates the status line.
type statusMsg string

// View renders the model table.
func (v *View) View() string {
	if v.group == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render(v.group.Directory))
	b.WriteString("\n")
	b.WriteString(v.renderAxes())
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %v", v.err)))
		b.WriteString("\n")
	}

	if v.showingMenu {
		b.WriteString(v.renderMenu())
	} else {
		b.WriteString(v.renderTable())
	}

	b.WriteString("\n")
	if v.status != "" {
		b.WriteString(v.styles.Muted.Render(v.status))
		b.WriteString("\n")
	}
	b.WriteString(v.styles.Help.Render(
		"↑/↓ navigate • x/y change axes • r pin • R unpin • n notes • s scripts • esc back"))
	return b.String()
}

// renderAxes renders the current metric pair with axis ranges and
// guide lines.
func (v *View) renderAxes() string {
	x, y := v.metricNames[v.xIdx], v.metricNames[v.yIdx]
	if v.plotData == nil {
		return v.styles.Muted.Render(fmt.Sprintf("x: %s  y: %s", x, y))
	}

	return v.styles.Subtitle.Render(fmt.Sprintf(
		"x: %s %s  y: %s %s",
		v.plotData.XTitle, axisRange(v.plotData.XMin, v.plotData.XMax, v.plotData.XGuide),
		v.plotData.YTitle, axisRange(v.plotData.YMin, v.plotData.YMax, v.plotData.YGuide),
	))
}

// axisRange formats an axis interval and optional guide value.
func axisRange(low, high float64, guide *float64) string {
	s := fmt.Sprintf("[%.2f, %.2f]", low, high)
	if guide != nil {
		s += fmt.Sprintf(" guide %.2f", *guide)
	}
	return s
}

// renderTable renders the scrollable model rows.
func (v *View) renderTable() string {
	var b strings.Builder

	x, y := v.metricNames[v.xIdx], v.metricNames[v.yIdx]
	b.WriteString(v.styles.Muted.Render(
		fmt.Sprintf("    %-40s %14s %14s", "model", x, y)))
	b.WriteString("\n")

	rep := v.representativeIndex()
	paths := v.group.Paths()
	xs, xerr := v.group.Metric(x)
	ys, yerr := v.group.Metric(y)
	if xerr != nil || yerr != nil {
		return b.String()
	}

	end := v.scrollOffset + v.tableHeight()
	if end > len(paths) {
		end = len(paths)
	}
	for i := v.scrollOffset; i < end; i++ {
		marker := " "
		if i == rep {
			marker = "*"
		}
		line := fmt.Sprintf("%s %-40s %14s %14s",
			marker, paths[i], formatValue(xs[i]), formatValue(ys[i]))

		switch {
		case i == v.selected:
			b.WriteString(v.styles.Selected.Render("> " + line))
		case i == rep:
			b.WriteString(v.styles.Representative.Render("  " + line))
		default:
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMenu renders the helper-script menu.
func (v *View) renderMenu() string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render("Scripts"))
	b.WriteString("\n")

	if len(v.scripts) == 0 {
		b.WriteString(v.styles.Muted.Render("No scripts found."))
		b.WriteString("\n")
		return b.String()
	}
	for i, action := range v.scripts {
		line := fmt.Sprintf("%-30s %s", action.Title, action.Path)
		if i == v.menuSelected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// representativeIndex returns the representative row, or -1 when it
// cannot be derived.
func (v *View) representativeIndex() int {
	index, err := v.group.RepresentativeIndex()
	if err != nil {
		return -1
	}
	return index
}

// ensureVisible scrolls the table so the selection stays on screen.
func (v *View) ensureVisible() {
	visibleRows := v.tableHeight()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	}
	if v.selected >= v.scrollOffset+visibleRows {
		v.scrollOffset = v.selected - visibleRows + 1
	}
}

// tableHeight returns the number of table rows that fit on screen.
func (v *View) tableHeight() int {
	// Title, axes, blank, header, blank, status, help.
	h := v.height - 8
	if h < 1 {
		return 1
	}
	return h
}

// formatValue renders one metric cell; absent values show as a dash.
func formatValue(value float64) string {
	if math.IsNaN(value) {
		return "-"
	}
	return fmt.Sprintf("%.3f", value)
}
