// Package cli provides the command-line interface for smd.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	annotationsfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/annotations/file"
	"github.com/kortemme-lab/smd-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/kortemme-lab/smd-cli/internal/adapters/driven/config/file"
	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
	"github.com/kortemme-lab/smd-cli/internal/core/services"
	"github.com/kortemme-lab/smd-cli/internal/logger"
	"github.com/kortemme-lab/smd-cli/internal/parser"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verboseFlag   bool
	forceFlag     bool
	configDirFlag string
)

// Services aggregates everything the commands need. Tests and main can
// inject a pre-built set; otherwise the root command wires the default
// stack from the user's configuration before any command runs.
type Services struct {
	Loader      driving.GroupLoader
	Annotations driving.AnnotationService
	Plot        driving.PlotService
	Actions     driving.ActionService
	Registry    *domain.Registry
	Config      *configfile.Config
}

var (
	loaderService     driving.GroupLoader
	annotationService driving.AnnotationService
	plotService       driving.PlotService
	actionService     driving.ActionService
	metricRegistry    *domain.Registry
	appConfig         *configfile.Config
)

// SetServices injects pre-built services, bypassing the default wiring.
func SetServices(s Services) {
	loaderService = s.Loader
	annotationService = s.Annotations
	plotService = s.Plot
	actionService = s.Actions
	metricRegistry = s.Registry
	appConfig = s.Config
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

// rootCmd represents the base command. Running it with directory
// arguments is a shorthand for the view command.
var rootCmd = &cobra.Command{
	Use:   "smd [directory...]",
	Short: "Browse models produced by protein design pipelines",
	Long: `smd scans directories of protein design models, extracts the metrics
recorded in each model file, and presents them for comparison.

Parsed metrics are cached per directory, so revisiting a directory only
reads files added since the last visit. Each directory can carry free-text
notes and a pinned representative model, stored next to the models.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runView(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&forceFlag, "force", "f", false, "ignore cached metrics and re-parse every model file")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.smd)")
}

// initServices wires the default service stack unless one was injected.
func initServices(*cobra.Command, []string) error {
	logger.SetVerbose(verboseFlag)

	if loaderService != nil {
		return nil
	}

	cfg, err := configfile.Load(configDirFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		return fmt.Errorf("building metric registry: %w", err)
	}

	annotationStore := annotationsfile.NewStore()
	loaderService = services.NewLoader(
		parser.New(registry),
		sqlite.NewStore(),
		annotationStore,
		cfg.ModelGlob,
	)
	annotationService = services.NewAnnotations(annotationStore)
	plotService = services.NewPlot(registry)
	actionService = services.NewActions()
	metricRegistry = registry
	appConfig = cfg
	return nil
}

// loadOptions builds the load options shared by all commands.
func loadOptions() driving.LoadOptions {
	return driving.LoadOptions{
		UseCache:   !forceFlag,
		OnProgress: progressReporter(),
	}
}

// loadSingleGroup loads one directory with the shared options.
func loadSingleGroup(cmd *cobra.Command, directory string) (*domain.Group, error) {
	if loaderService == nil {
		return nil, fmt.Errorf("group loader not configured")
	}
	group, err := loaderService.LoadGroup(cmd.Context(), directory, loadOptions())
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", directory, err)
	}
	return group, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
