package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrCacheMiss indicates no usable cache exists for a directory.
	// A corrupt or unreadable cache is reported the same way as an
	// absent one; callers fall back to a full reparse.
	ErrCacheMiss = errors.New("cache miss")

	// ErrIndexOutOfRange indicates a model row index outside the table.
	ErrIndexOutOfRange = errors.New("model index out of range")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// DirectoryError reports a model directory that cannot be loaded:
// it is missing, not a directory, empty, or holds no model files.
// It is fatal to that group's load.
type DirectoryError struct {
	// Directory is the offending path.
	Directory string

	// Reason describes what is wrong with the directory.
	Reason string
}

// Error implements the error interface.
func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %q %s", e.Directory, e.Reason)
}

// MetricError reports a group whose metric table cannot support the
// viewer: fewer than two numeric metrics were found, or a required
// metric is absent when deriving the representative model.
type MetricError struct {
	// Directory is the group the error applies to.
	Directory string

	// Metric names the offending metric, when one is identifiable.
	Metric string

	// Reason describes the failure.
	Reason string
}

// Error implements the error interface.
func (e *MetricError) Error() string {
	if e.Metric != "" {
		return fmt.Sprintf("metric %q: %s (models in %q)", e.Metric, e.Reason, e.Directory)
	}
	return fmt.Sprintf("%s (models in %q)", e.Reason, e.Directory)
}

// UnknownMetricError reports a query for a metric name that is not a
// numeric column of the table. It is local to the query and lists the
// valid alternatives so callers can recover.
type UnknownMetricError struct {
	// Metric is the requested name.
	Metric string

	// Defined are the numeric metric names currently available, sorted.
	Defined []string
}

// Error implements the error interface.
func (e *UnknownMetricError) Error() string {
	quoted := make([]string, len(e.Defined))
	for i, name := range e.Defined {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("no such metric %q; defined metrics are: %s",
		e.Metric, strings.Join(quoted, ", "))
}

// ReadError reports a model file that could not be read or
// decompressed. The file is skipped; the batch continues.
type ReadError struct {
	// Path is the unreadable file.
	Path string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("reading model %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// ExtractError reports a matched metric line whose value could not be
// parsed. Only that metric is lost; the rest of the record survives.
type ExtractError struct {
	// Metric is the metric whose extractor failed.
	Metric string

	// Line is the offending input line.
	Line string

	// Err is the underlying parse failure.
	Err error
}

// Error implements the error interface.
func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting metric %q from line %q: %v", e.Metric, e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExtractError) Unwrap() error {
	return e.Err
}
