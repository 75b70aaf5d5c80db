// Package domain contains the core entities of smd: metric records and
// tables parsed from structural model files, the model groups that own
// them, and the metric registry that drives parsing and presentation.
//
// The domain layer has no dependencies on adapters or external libraries.
// Persistence of caches and annotations is defined by ports and performed
// by services.
package domain
