package tui

import "errors"

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrMissingPlotService is returned when the plot service is not provided.
var ErrMissingPlotService = errors.New("tui: plot service is required")

// ErrMissingActionService is returned when the action service is not provided.
var ErrMissingActionService = errors.New("tui: action service is required")

// ErrNoGroups is returned when the app is started without any loaded groups.
var ErrNoGroups = errors.New("tui: no model groups loaded")
