package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644))
	return dir
}

func TestLoad_AbsentFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "loop_rmsd", cfg.DefaultXMetric)
	assert.Equal(t, domain.TotalScore, cfg.DefaultYMetric)
	assert.Equal(t, "*.pdb*", cfg.ModelGlob)
	assert.Empty(t, cfg.Metrics)
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := writeConfig(t, `
default_x_metric = "fragment_rmsd"
default_y_metric = "total_score"
model_glob = "*.out"

[[metric]]
name = "fragment_rmsd"
prefixes = ["fragment_rmsd"]
title = "Fragment RMSD (Å)"
guide = 1.5
limits = "lower_fraction"
limits_arg = 0.05
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "fragment_rmsd", cfg.DefaultXMetric)
	assert.Equal(t, "*.out", cfg.ModelGlob)
	require.Len(t, cfg.Metrics, 1)
	assert.Equal(t, "fragment_rmsd", cfg.Metrics[0].Name)
	require.NotNil(t, cfg.Metrics[0].Guide)
	assert.Equal(t, 1.5, *cfg.Metrics[0].Guide)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := writeConfig(t, "default_x_metric = [broken")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestLoad_EmptyGlobFallsBack(t *testing.T) {
	dir := writeConfig(t, `model_glob = ""`)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "*.pdb*", cfg.ModelGlob)
}

func TestConfig_BuildRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = []MetricConfig{
		{
			Name:      "fragment_rmsd",
			Prefixes:  []string{"fragment_rmsd"},
			Limits:    "lower_fraction",
			LimitsArg: 0.05,
		},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	m, ok := registry.Lookup("fragment_rmsd")
	require.True(t, ok)
	assert.Equal(t, 1, m.Column, "zero column defaults to the conventional index")
	require.NotNil(t, m.Limits)

	min, max := m.Limits([]float64{2, 10})
	assert.InDelta(t, 0.5, min, 1e-9)
	assert.Equal(t, 10.0, max)

	// Built-ins are still present.
	_, ok = registry.Lookup(domain.TotalScore)
	assert.True(t, ok)
}

func TestConfig_BuildRegistry_UnknownLimitsPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = []MetricConfig{
		{Name: "x", Prefixes: []string{"x"}, Limits: "percentile_of_doom"},
	}

	_, err := cfg.BuildRegistry()
	assert.Error(t, err)
}

func TestConfig_BuildRegistry_DuplicateOfBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = []MetricConfig{
		{Name: domain.TotalScore, Prefixes: []string{"score"}},
	}

	_, err := cfg.BuildRegistry()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfig_BuildRegistry_UpperPercentile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics = []MetricConfig{
		{Name: "clash_score", Prefixes: []string{"clash_score"}, Limits: "upper_percentile", LimitsArg: 50},
	}

	registry, err := cfg.BuildRegistry()
	require.NoError(t, err)

	m, ok := registry.Lookup("clash_score")
	require.True(t, ok)
	require.NotNil(t, m.Limits)

	min, max := m.Limits([]float64{0, 1, 2, 3, 4})
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 2.0, max)
}
