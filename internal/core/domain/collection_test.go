package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupWithMetrics(directory string, metrics ...string) *Group {
	r := NewRecord("model_001.pdb")
	for i, name := range metrics {
		r.SetNumber(name, float64(i))
	}
	return NewGroup(directory, NewTable([]*Record{r}))
}

func TestCollection_OrderPreserved(t *testing.T) {
	c := NewCollection()
	c.Add(groupWithMetrics("b", TotalScore))
	c.Add(groupWithMetrics("a", TotalScore))
	c.Add(groupWithMetrics("c", TotalScore))

	assert.Equal(t, []string{"b", "a", "c"}, c.Directories())
	assert.Equal(t, 3, c.Len())
}

func TestCollection_AddReplacesInPlace(t *testing.T) {
	c := NewCollection()
	c.Add(groupWithMetrics("a", TotalScore))
	c.Add(groupWithMetrics("b", TotalScore))

	replacement := groupWithMetrics("a", TotalScore, "loop_rmsd")
	c.Add(replacement)

	assert.Equal(t, []string{"a", "b"}, c.Directories())
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestCollection_SharedMetrics(t *testing.T) {
	c := NewCollection()
	c.Add(groupWithMetrics("a", TotalScore, "loop_rmsd", "fragment_rmsd"))
	c.Add(groupWithMetrics("b", TotalScore, "loop_rmsd"))

	assert.Equal(t, []string{"loop_rmsd", TotalScore}, c.SharedMetrics())
}

func TestCollection_SharedMetrics_Empty(t *testing.T) {
	assert.Nil(t, NewCollection().SharedMetrics())
}

func TestCollection_FilterByNotes(t *testing.T) {
	withNotes := func(directory, notes string) *Group {
		g := groupWithMetrics(directory, TotalScore)
		g.SetNotes(notes)
		return g
	}

	c := NewCollection()
	c.Add(withNotes("a", "loop closes"))
	c.Add(withNotes("b", "needs redesign"))
	c.Add(withNotes("c", "Loop is strained"))

	assert.Equal(t, []string{"a", "c"}, c.FilterByNotes("loop"))
	assert.Equal(t, []string{"c"}, c.FilterByNotes("Loop"))
	assert.Equal(t, []string{"a", "b", "c"}, c.FilterByNotes(""))
}
