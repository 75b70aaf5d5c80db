package services

import (
	"fmt"

	"github.com/kortemme-lab/smd-cli/internal/core/domain"
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// Ensure Plot implements the interface.
var _ driving.PlotService = (*Plot)(nil)

// Plot assembles scatter-plot data from loaded groups. Axis bounds
// come from each metric's limits policy evaluated over every plotted
// group at once, so the axes hold still while cycling through groups.
type Plot struct {
	registry *domain.Registry
}

// NewPlot creates the plot service over a metric registry.
func NewPlot(registry *domain.Registry) *Plot {
	return &Plot{registry: registry}
}

// Build implements driving.PlotService.
func (p *Plot) Build(groups []*domain.Group, xMetric, yMetric string) (*driving.PlotData, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("building plot: %w: no groups selected", domain.ErrInvalidInput)
	}

	data := &driving.PlotData{
		XMetric: xMetric,
		YMetric: yMetric,
		XTitle:  p.registry.Title(xMetric),
		YTitle:  p.registry.Title(yMetric),
		XGuide:  p.registry.Guide(xMetric),
		YGuide:  p.registry.Guide(yMetric),
	}

	var allX, allY []float64
	for _, group := range groups {
		xs, err := group.Metric(xMetric)
		if err != nil {
			return nil, err
		}
		ys, err := group.Metric(yMetric)
		if err != nil {
			return nil, err
		}
		rep, err := group.RepresentativeIndex()
		if err != nil {
			return nil, err
		}

		data.Series = append(data.Series, driving.Series{
			Directory: group.Directory,
			Label:     group.Directory,
			X:         xs,
			Y:         ys,
			RepIndex:  rep,
		})
		allX = append(allX, xs...)
		allY = append(allY, ys...)
	}

	data.XMin, data.XMax = p.registry.AxisLimits(xMetric, allX)
	data.YMin, data.YMax = p.registry.AxisLimits(yMetric, allY)
	return data, nil
}
