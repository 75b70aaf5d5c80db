package driving

import "github.com/kortemme-lab/smd-cli/internal/core/domain"

// Series is one group's points for a metric combination.
type Series struct {
	// Directory identifies the group.
	Directory string

	// Label is the series label shown in a legend.
	Label string

	// X and Y hold one coordinate pair per model, in table row order.
	X []float64
	Y []float64

	// RepIndex is the row index of the representative model, drawn
	// highlighted.
	RepIndex int
}

// PlotData is everything a renderer needs to draw one scatter plot of
// score versus distance metrics. The core computes it; drawing is
// entirely outside the core.
type PlotData struct {
	// XMetric and YMetric are the plotted metric names.
	XMetric string
	YMetric string

	// XTitle and YTitle are the display axis titles.
	XTitle string
	YTitle string

	// Axis bounds from each metric's limits policy, computed over the
	// concatenated values of every series so the axes stay put while
	// cycling through groups.
	XMin, XMax float64
	YMin, YMax float64

	// XGuide and YGuide are optional reference-line values.
	XGuide *float64
	YGuide *float64

	// Series holds one entry per group, in collection order.
	Series []Series
}

// PlotService assembles plot data from loaded groups.
type PlotService interface {
	// Build computes the plot data for the given groups and metric
	// combination. It fails with an *domain.UnknownMetricError when a
	// metric is not defined on every group.
	Build(groups []*domain.Group, xMetric, yMetric string) (*PlotData, error)
}
