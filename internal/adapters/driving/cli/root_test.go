package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/config/file"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/services"
	"github.com/kortemme-lab/smd-cli/internal/parser"
)

// setupServices wires a real service stack for command tests and
// resets the injected services afterwards.
func setupServices(t *testing.T) {
	t.Helper()

	registry := domain.DefaultRegistry()
	annotationStore := annotationsfile.NewStore()
	SetServices(Services{
		Loader: services.NewLoader(
			parser.New(registry),
			sqlite.NewStore(),
			annotationStore,
			"",
		),
		Annotations: services.NewAnnotations(annotationStore),
		Plot:        services.NewPlot(registry),
		Actions:     services.NewActions(),
		Registry:    registry,
		Config:      configfile.DefaultConfig(),
	})

	t.Cleanup(func() {
		SetServices(Services{})
	})
}

// writeModelDir creates a directory holding model files the default
// registry can extract two metrics from.
func writeModelDir(t *testing.T, models map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range models {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

const (
	modelOne = "total_score -310.5\nloop_backbone_rmsd 0.62\n"
	modelTwo = "total_score -298.1\nloop_backbone_rmsd 1.4\n"
)
