// Package tui provides the interactive terminal user interface for smd.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/kortemme-lab/smd-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Annotations persists notes and representative pins.
	Annotations driving.AnnotationService

	// Plot assembles axis data for the selected metric pair.
	Plot driving.PlotService

	// Actions provides model context and helper-script discovery.
	Actions driving.ActionService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	annotations driving.AnnotationService,
	plot driving.PlotService,
	actions driving.ActionService,
) *Ports {
	return &Ports{
		Annotations: annotations,
		Plot:        plot,
		Actions:     actions,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Annotations == nil {
		return ErrMissingAnnotationService
	}
	if p.Plot == nil {
		return ErrMissingPlotService
	}
	if p.Actions == nil {
		return ErrMissingActionService
	}
	return nil
}
