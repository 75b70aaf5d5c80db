// Package services implements the driving port interfaces.
// Services contain the core business logic, such as the group load
// protocol and annotation persistence, and orchestrate calls
// to driven ports (adapters).
//
// Services are pure Go with no external dependencies.
package services
