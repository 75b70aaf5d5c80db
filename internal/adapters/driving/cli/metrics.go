package cli

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
)

// metricsCmd represents the metrics command.
var metricsCmd = &cobra.Command{
	Use:   "metrics <directory> [metric]",
	Short: "List the metrics found in a directory",
	Long: `List every numeric metric defined across a directory's models, with
the value range observed. Given a metric name, print that metric's value
for each model instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	if loaderService == nil {
		return errors.New("group loader not configured")
	}

	group, err := loaderService.LoadGroup(cmd.Context(), args[0], loadOptions())
	if err != nil {
		return fmt.Errorf("loading %q: %w", args[0], err)
	}

	if len(args) == 2 {
		return outputMetricValues(cmd, group, args[1])
	}
	return outputMetricList(cmd, group)
}

func outputMetricList(cmd *cobra.Command, group *domain.Group) error {
	cmd.Printf("Metrics in %s (%d models):\n\n", group.Directory, group.Len())
	for _, name := range group.DefinedMetrics() {
		values, err := group.Metric(name)
		if err != nil {
			return err
		}
		low, high := observedRange(values)

		title := ""
		if metricRegistry != nil {
			title = metricRegistry.Title(name)
		}
		cmd.Printf("  %-24s %12.2f .. %-12.2f %s\n", name, low, high, title)
		if metricRegistry != nil {
			if guide := metricRegistry.Guide(name); guide != nil {
				cmd.Printf("  %-24s guide at %.2f\n", "", *guide)
			}
		}
	}
	return nil
}

func outputMetricValues(cmd *cobra.Command, group *domain.Group, metric string) error {
	values, err := group.Metric(metric)
	if err != nil {
		return err
	}
	paths := group.Paths()
	for i, value := range values {
		if math.IsNaN(value) {
			cmd.Printf("%s\t-\n", paths[i])
			continue
		}
		cmd.Printf("%s\t%g\n", paths[i], value)
	}
	return nil
}

// observedRange returns the finite min and max of values.
func observedRange(values []float64) (low, high float64) {
	low, high = math.NaN(), math.NaN()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(low) || v < low {
			low = v
		}
		if math.IsNaN(high) || v > high {
			high = v
		}
	}
	return low, high
}
