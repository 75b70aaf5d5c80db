package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsCmd_PrintsRepresentatives(t *testing.T) {
	setupServices(t)
	dirA := writeModelDir(t, map[string]string{
		"model_001.pdb": modelOne,
		"model_002.pdb": modelTwo,
	})
	dirB := writeModelDir(t, map[string]string{"model_001.pdb": modelTwo})

	out, err := execute(t, "paths", dirA, dirB)

	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dirA, "model_001.pdb"))
	assert.Contains(t, out, filepath.Join(dirB, "model_001.pdb"))
}

func TestPathsCmd_WritesFile(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{"model_001.pdb": modelOne})
	outputPath := filepath.Join(t.TempDir(), "reps.txt")

	defer func() { pathsOutput = "" }()
	_, err := execute(t, "paths", "-o", outputPath, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "model_001.pdb")+"\n", string(data))
}

func TestCacheCmd_ReportsSummary(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{
		"model_001.pdb": modelOne,
		"model_002.pdb": modelTwo,
	})

	out, err := execute(t, "cache", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "2 models")
	assert.Contains(t, out, "2 metrics")

	// The cache database now sits in the directory.
	_, statErr := os.Stat(filepath.Join(dir, "models.db"))
	assert.NoError(t, statErr)
}

func TestScriptsCmd_ListsScripts(t *testing.T) {
	setupServices(t)
	dir := writeModelDir(t, map[string]string{"model_001.pdb": modelOne})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "show_loops.sho"), []byte("#!/bin/sh\n"), 0755))

	out, err := execute(t, "scripts", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Show loops")
	assert.Contains(t, out, "show_loops.sho")
}
