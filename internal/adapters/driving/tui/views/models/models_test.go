package models

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/messages"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driving/tui/styles"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/services"
)

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

func testView(t *testing.T) *View {
	t.Helper()
	v := NewView(
		styles.DefaultStyles(),
		services.NewPlot(domain.DefaultRegistry()),
		services.NewAnnotations(annotationsfile.NewStore()),
		services.NewActions(),
		"loop_rmsd", domain.TotalScore,
	)
	v.SetDimensions(120, 40)
	return v
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestView_SetGroupPicksDefaultAxes(t *testing.T) {
	v := testView(t)

	cmd := v.SetGroup(testGroup(t))
	require.NotNil(t, cmd)

	built, ok := cmd().(messages.PlotBuilt)
	require.True(t, ok)
	require.NoError(t, built.Err)
	assert.Equal(t, "loop_rmsd", built.Data.XMetric)
	assert.Equal(t, domain.TotalScore, built.Data.YMetric)
}

func TestView_SetGroupFallsBackForUnknownDefaults(t *testing.T) {
	v := NewView(
		styles.DefaultStyles(),
		services.NewPlot(domain.DefaultRegistry()),
		services.NewAnnotations(annotationsfile.NewStore()),
		services.NewActions(),
		"no_such_metric", "also_missing",
	)
	v.SetDimensions(120, 40)

	cmd := v.SetGroup(testGroup(t))
	built := cmd().(messages.PlotBuilt)
	require.NoError(t, built.Err)

	// Defined metrics are sorted: loop_rmsd, total_score.
	assert.Equal(t, "loop_rmsd", built.Data.XMetric)
	assert.Equal(t, domain.TotalScore, built.Data.YMetric)
}

func TestView_CyclesAxes(t *testing.T) {
	v := testView(t)
	v.SetGroup(testGroup(t))

	v, cmd := v.Update(key('x'))
	require.NotNil(t, cmd)
	built := cmd().(messages.PlotBuilt)
	assert.Equal(t, domain.TotalScore, built.Data.XMetric, "x key advances to the next metric")

	v, cmd = v.Update(key('x'))
	built = cmd().(messages.PlotBuilt)
	assert.Equal(t, "loop_rmsd", built.Data.XMetric, "cycling wraps around")
	_ = v
}

func TestView_PinAndUnpinRepresentative(t *testing.T) {
	v := testView(t)
	group := testGroup(t)
	v.SetGroup(group)

	// Select row 0 and pin it; derivation would pick row 1.
	v, cmd := v.Update(key('r'))
	require.NotNil(t, cmd)
	changed := cmd().(messages.RepresentativeChanged)
	require.NoError(t, changed.Err)
	require.NotNil(t, changed.Index)
	assert.Equal(t, 0, *changed.Index)

	index, err := group.RepresentativeIndex()
	require.NoError(t, err)
	assert.Equal(t, 0, index)

	v, cmd = v.Update(key('R'))
	require.NotNil(t, cmd)
	changed = cmd().(messages.RepresentativeChanged)
	require.NoError(t, changed.Err)
	assert.Nil(t, changed.Index)

	index, err = group.RepresentativeIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	_ = v
}

func TestView_EscReturnsToGroups(t *testing.T) {
	v := testView(t)
	v.SetGroup(testGroup(t))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewGroups, msg.View)
}

func TestView_NOpensNotes(t *testing.T) {
	v := testView(t)
	v.SetGroup(testGroup(t))

	_, cmd := v.Update(key('n'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewNotes, msg.View)
}

func TestView_RendersTable(t *testing.T) {
	v := testView(t)
	v.SetGroup(testGroup(t))

	// Feed the plot data back in, as the program loop would.
	built := v.buildPlot()().(messages.PlotBuilt)
	v, _ = v.Update(built)

	out := v.View()
	assert.Contains(t, out, "model_001.pdb")
	assert.Contains(t, out, "model_002.pdb")
	assert.Contains(t, out, "Loop RMSD")
	assert.Contains(t, out, "*", "representative row is marked")
}

func TestMetricIndex(t *testing.T) {
	names := []string{"loop_rmsd", "total_score"}

	assert.Equal(t, 1, metricIndex(names, "total_score", 0))
	assert.Equal(t, 0, metricIndex(names, "missing", 0))
	assert.Equal(t, 1, metricIndex(names, "missing", 1))
	assert.Equal(t, 1, metricIndex(names, "missing", 5), "fallback clamps to the last metric")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-310.500", formatValue(-310.5))
	assert.Equal(t, "-", formatValue(math.NaN()))
}
