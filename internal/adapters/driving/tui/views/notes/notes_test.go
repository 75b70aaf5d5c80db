package notes

import (
	"os"
	"path/filepath"
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

	r := domain.NewRecord("model_001.pdb")
	r.SetNumber(domain.TotalScore, -300)
	r.SetNumber("loop_rmsd", 1)
	return domain.NewGroup(t.TempDir(), domain.NewTable([]*domain.Record{r}))
}

func testView() *View {
	v := NewView(styles.DefaultStyles(), services.NewAnnotations(annotationsfile.NewStore()))
	v.SetDimensions(120, 40)
	return v
}

func TestView_SetGroupShowsExistingNotes(t *testing.T) {
	v := testView()
	group := testGroup(t)
	group.SetNotes("promising round")

	v.SetGroup(group)

	assert.Contains(t, v.View(), "promising round")
}

func TestView_SavePersistsNotes(t *testing.T) {
	v := testView()
	group := testGroup(t)
	v.SetGroup(group)

	for _, r := range "keep this" {
		v, _ = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)

	saved, ok := cmd().(messages.NotesSaved)
	require.True(t, ok)
	require.NoError(t, saved.Err)
	assert.Equal(t, group.Directory, saved.Directory)

	assert.Equal(t, "keep this", group.Notes())
	data, err := os.ReadFile(filepath.Join(group.Directory, annotationsfile.NotesFile))
	require.NoError(t, err)
	assert.Equal(t, "keep this", string(data))
}

func TestView_SavedMessageReturnsToModels(t *testing.T) {
	v := testView()
	v.SetGroup(testGroup(t))

	v, cmd := v.Update(messages.NotesSaved{Directory: "x"})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewModels, msg.View)
	_ = v
}

func TestView_EscCancels(t *testing.T) {
	v := testView()
	v.SetGroup(testGroup(t))

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewModels, msg.View)
}
