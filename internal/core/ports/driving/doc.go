// Package driving defines the service interfaces offered to external
// actors: the CLI and the TUI. These are the only surfaces through
// which the UI reads metric data and mutates annotations.
package driving
