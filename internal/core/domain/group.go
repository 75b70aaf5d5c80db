package domain

import (
	"fmt"
	"math"
	"strings"
)

// Group represents one directory of models: its metric table plus the
// user's annotations. The table is immutable after load; notes and the
// representative override are mutated through the annotation service,
// which persists them to sidecar files.
type Group struct {
	// Directory is the group's identity key.
	Directory string

	table          *Table
	notes          string
	representative *int
}

// NewGroup creates a group over an already-built metric table.
func NewGroup(directory string, table *Table) *Group {
	return &Group{Directory: directory, table: table}
}

// String implements fmt.Stringer.
func (g *Group) String() string {
	return fmt.Sprintf("<ModelGroup dir=%s>", g.Directory)
}

// Len returns the number of models in the group.
func (g *Group) Len() int {
	return g.table.Len()
}

// Table returns the group's metric table.
func (g *Group) Table() *Table {
	return g.table
}

// Paths returns the model file base names in table row order.
func (g *Group) Paths() []string {
	return g.table.Paths()
}

// DefinedMetrics returns the numeric metric names available on this
// group, sorted.
func (g *Group) DefinedMetrics() []string {
	return g.table.NumericColumns()
}

// Metric returns the named metric column, one value per model in table
// row order. Unknown names fail with an UnknownMetricError.
func (g *Group) Metric(name string) ([]float64, error) {
	return g.table.Column(name)
}

// Coordinate returns one model's (x, y) pair for a metric combination.
func (g *Group) Coordinate(xMetric, yMetric string, index int) (x, y float64, err error) {
	xs, err := g.Metric(xMetric)
	if err != nil {
		return 0, 0, err
	}
	ys, err := g.Metric(yMetric)
	if err != nil {
		return 0, 0, err
	}
	if index < 0 || index >= len(xs) {
		return 0, 0, ErrIndexOutOfRange
	}
	return xs[index], ys[index], nil
}

// Validate enforces the group's metric invariant: at least two numeric
// columns must exist, or there is nothing to plot.
func (g *Group) Validate() error {
	defined := g.DefinedMetrics()
	switch len(defined) {
	case 0:
		return &MetricError{
			Directory: g.Directory,
			Reason:    "no metrics defined",
		}
	case 1:
		return &MetricError{
			Directory: g.Directory,
			Metric:    defined[0],
			Reason:    "only one metric found, need at least two",
		}
	default:
		return nil
	}
}

// Notes returns the group's free-text annotation.
func (g *Group) Notes() string {
	return g.notes
}

// SetNotes replaces the in-memory notes. Persistence is the
// annotation service's responsibility.
func (g *Group) SetNotes(notes string) {
	g.notes = notes
}

// RepresentativeOverride returns the explicitly chosen representative
// index, or nil when the representative is derived.
func (g *Group) RepresentativeOverride() *int {
	return g.representative
}

// SetRepresentativeOverride replaces the in-memory override. Nil
// reverts to derivation. Persistence is the annotation service's
// responsibility.
func (g *Group) SetRepresentativeOverride(index *int) {
	g.representative = index
}

// RepresentativeIndex returns the representative model's row index:
// the stored override when set, else the row with the minimum total
// score, ties broken by first occurrence. The derivation fails with a
// MetricError when the total score metric is absent.
func (g *Group) RepresentativeIndex() (int, error) {
	if g.representative != nil {
		return *g.representative, nil
	}

	scores, err := g.Metric(TotalScore)
	if err != nil {
		return 0, &MetricError{
			Directory: g.Directory,
			Metric:    TotalScore,
			Reason:    "required to derive the representative model",
		}
	}

	best := -1
	bestScore := math.Inf(1)
	for i, score := range scores {
		if math.IsNaN(score) {
			continue
		}
		if score < bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return 0, &MetricError{
			Directory: g.Directory,
			Metric:    TotalScore,
			Reason:    "no model carries a total score",
		}
	}
	return best, nil
}

// RepresentativePath returns the representative model's file base name.
func (g *Group) RepresentativePath() (string, error) {
	index, err := g.RepresentativeIndex()
	if err != nil {
		return "", err
	}
	row, err := g.table.Row(index)
	if err != nil {
		return "", err
	}
	return row.Path, nil
}

// MatchesNotes reports whether the group's notes contain the query.
// An all-lowercase query matches case-insensitively; a query with any
// capitals matches exactly.
func (g *Group) MatchesNotes(query string) bool {
	haystack := g.notes
	if query == strings.ToLower(query) {
		haystack = strings.ToLower(haystack)
	}
	return strings.Contains(haystack, query)
}
