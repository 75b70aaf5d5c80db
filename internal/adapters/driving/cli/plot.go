package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	plotXMetric string
	plotYMetric string
)

// plotCmd represents the plot command.
var plotCmd = &cobra.Command{
	Use:   "plot <directory>...",
	Short: "Summarise the plot data for one or more directories",
	Long: `Assemble the scatter-plot data for the given directories and print a
summary: axis titles, axis bounds, guide lines, and each directory's
series with its representative model. Axis bounds are computed over all
directories at once, so the numbers match what the browser shows.

The metrics must be defined in every directory; use the metrics command
to see what a directory defines.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVarP(&plotXMetric, "x-metric", "x", "", "metric for the x axis (default from configuration)")
	plotCmd.Flags().StringVarP(&plotYMetric, "y-metric", "y", "", "metric for the y axis (default from configuration)")
	rootCmd.AddCommand(plotCmd)
}

func runPlot(cmd *cobra.Command, args []string) error {
	if loaderService == nil || plotService == nil {
		return errors.New("plot service not configured")
	}

	collection, err := loaderService.LoadGroups(cmd.Context(), args, loadOptions())
	if err != nil {
		return fmt.Errorf("loading model directories: %w", err)
	}

	xMetric, yMetric := plotXMetric, plotYMetric
	if xMetric == "" || yMetric == "" {
		defaultX, defaultY := defaultAxes()
		if xMetric == "" {
			xMetric = defaultX
		}
		if yMetric == "" {
			yMetric = defaultY
		}
	}

	shared := collection.SharedMetrics()
	for _, metric := range []string{xMetric, yMetric} {
		if !contains(shared, metric) {
			return fmt.Errorf("metric %q is not defined in every directory; shared metrics are: %s",
				metric, strings.Join(shared, ", "))
		}
	}

	data, err := plotService.Build(collection.Groups(), xMetric, yMetric)
	if err != nil {
		return fmt.Errorf("building plot data: %w", err)
	}

	cmd.Printf("x: %s [%.3f, %.3f]", data.XTitle, data.XMin, data.XMax)
	if data.XGuide != nil {
		cmd.Printf(" guide %.3f", *data.XGuide)
	}
	cmd.Println()
	cmd.Printf("y: %s [%.3f, %.3f]", data.YTitle, data.YMin, data.YMax)
	if data.YGuide != nil {
		cmd.Printf(" guide %.3f", *data.YGuide)
	}
	cmd.Println()
	cmd.Println()

	for _, series := range data.Series {
		group, ok := collection.Get(series.Directory)
		if !ok {
			continue
		}
		path, err := group.RepresentativePath()
		if err != nil {
			return err
		}
		cmd.Printf("%s: %d models, representative %s (index %d)\n",
			series.Directory, len(series.X), path, series.RepIndex)
	}
	return nil
}

// contains reports whether names holds name.
func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
