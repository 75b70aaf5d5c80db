package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
)

func TestRepCmd_ShowDerived(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{
		"model_001.pdb": modelOne, // -310.5, the better score
		"model_002.pdb": modelTwo,
	})

	out, err := execute(t, "rep", "show", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "model_001.pdb")
	assert.Contains(t, out, "derived from total score")
}

func TestRepCmd_SetAndClear(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{
		"model_001.pdb": modelOne,
		"model_002.pdb": modelTwo,
	})

	out, err := execute(t, "rep", "set", dir, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "model_002.pdb")

	out, err = execute(t, "rep", "show", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "model_002.pdb")
	assert.Contains(t, out, "pinned")

	_, err = execute(t, "rep", "clear", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, annotationsfile.RepresentativeFile))
	assert.ErrorIs(t, err, os.ErrNotExist)

	out, err = execute(t, "rep", "show", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "model_001.pdb")
}

func TestRepCmd_SetOutOfRange(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{"model_001.pdb": modelOne})

	_, err := execute(t, "rep", "set", dir, "5")
	assert.Error(t, err)
}

func TestRepCmd_SetNonNumeric(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{"model_001.pdb": modelOne})

	_, err := execute(t, "rep", "set", dir, "best")
	assert.Error(t, err)
}
