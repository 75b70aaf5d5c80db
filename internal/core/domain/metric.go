package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// TotalScore is the metric used to derive a group's representative
// model when no explicit override is set.
const TotalScore = "total_score"

// LimitsFunc computes plot axis bounds from a full numeric column.
// NaN entries are ignored.
type LimitsFunc func(values []float64) (min, max float64)

// Metric describes one recognised quality metric: how to find it in a
// model file and how to present it. Metrics are configuration, not
// logic; adding one never touches the parser or the group loader.
type Metric struct {
	// Name is the column name the extracted value is stored under.
	Name string

	// Prefixes are the line prefixes that identify this metric's line.
	// A line matches when it starts with any of them.
	Prefixes []string

	// Column is the whitespace-delimited token index carrying the
	// value. The conventional annotation format puts it at index 1,
	// right after the prefix token.
	Column int

	// Title is the display title. Empty falls back to a title-cased
	// form of the name with underscores and hyphens spaced out.
	Title string

	// Limits computes axis bounds for this metric. Nil means the
	// literal minimum and maximum of the column.
	Limits LimitsFunc

	// Guide is an optional reference value drawn as a guide line on
	// the metric's axis.
	Guide *float64
}

// Match reports whether the line carries this metric.
func (m Metric) Match(line string) bool {
	for _, prefix := range m.Prefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Extract parses the metric's value out of a matched line.
func (m Metric) Extract(line string) (float64, error) {
	fields := strings.Fields(line)
	if m.Column < 0 || m.Column >= len(fields) {
		return 0, &ExtractError{
			Metric: m.Name,
			Line:   line,
			Err:    fmt.Errorf("no token at column %d", m.Column),
		}
	}

	v, err := strconv.ParseFloat(fields[m.Column], 64)
	if err != nil {
		return 0, &ExtractError{Metric: m.Name, Line: line, Err: err}
	}
	return v, nil
}

// DisplayTitle returns the metric's title, deriving one from the name
// when none is configured.
func (m Metric) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	return NaiveTitle(m.Name)
}

// NaiveTitle converts a metric name into a readable title: underscores
// and hyphens become spaces and each word is capitalised.
func NaiveTitle(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Registry is an ordered collection of metric descriptors. Order
// matters: the parser scans descriptors in registration order, and
// earlier descriptors win when two claim the same name.
type Registry struct {
	metrics []Metric
	index   map[string]int
}

// NewRegistry creates a registry holding the given metrics in order.
func NewRegistry(metrics ...Metric) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}
	for _, m := range metrics {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends a metric descriptor. Duplicate names and nameless
// or prefixless descriptors are rejected.
func (r *Registry) Register(m Metric) error {
	if m.Name == "" || len(m.Prefixes) == 0 {
		return fmt.Errorf("registering metric: %w: name and at least one prefix required", ErrInvalidInput)
	}
	if m.Name == PathColumn {
		return fmt.Errorf("registering metric: %w: %q is reserved", ErrInvalidInput, PathColumn)
	}
	if _, exists := r.index[m.Name]; exists {
		return fmt.Errorf("registering metric: %w: duplicate name %q", ErrInvalidInput, m.Name)
	}

	r.index[m.Name] = len(r.metrics)
	r.metrics = append(r.metrics, m)
	return nil
}

// Metrics returns the descriptors in registration order.
func (r *Registry) Metrics() []Metric {
	out := make([]Metric, len(r.metrics))
	copy(out, r.metrics)
	return out
}

// Lookup returns the descriptor for a name.
func (r *Registry) Lookup(name string) (Metric, bool) {
	i, ok := r.index[name]
	if !ok {
		return Metric{}, false
	}
	return r.metrics[i], true
}

// Names returns all registered metric names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.metrics))
	for _, m := range r.metrics {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

// Title returns the display title for a metric name, falling back to
// the derived title for unregistered names.
func (r *Registry) Title(name string) string {
	if m, ok := r.Lookup(name); ok {
		return m.DisplayTitle()
	}
	return NaiveTitle(name)
}

// AxisLimits computes the axis bounds for a metric over a column,
// using the metric's limits policy or the literal min/max when the
// metric has none (or is unregistered).
func (r *Registry) AxisLimits(name string, values []float64) (min, max float64) {
	if m, ok := r.Lookup(name); ok && m.Limits != nil {
		return m.Limits(values)
	}
	return MinMaxLimits(values)
}

// Guide returns the guide-line value for a metric, or nil.
func (r *Registry) Guide(name string) *float64 {
	m, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	return m.Guide
}

// MinMaxLimits is the default limits policy: the literal minimum and
// maximum of the column.
func MinMaxLimits(values []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min > max {
		return 0, 0
	}
	return min, max
}

// UpperPercentileLimits bounds the axis between the column minimum and
// the given percentile, cutting off a long tail of poor scores.
func UpperPercentileLimits(pct float64) LimitsFunc {
	return func(values []float64) (min, max float64) {
		min, _ = MinMaxLimits(values)
		return min, Percentile(values, pct)
	}
}

// LowerFractionLimits bounds the axis between a fraction of the column
// maximum and the maximum, which keeps near-zero distance metrics
// readable on a log-friendly scale.
func LowerFractionLimits(fraction float64) LimitsFunc {
	return func(values []float64) (min, max float64) {
		_, max = MinMaxLimits(values)
		return fraction * max, max
	}
}

// Percentile computes the pct-th percentile of the column with linear
// interpolation between the two nearest ranks. NaN entries are ignored.
func Percentile(values []float64, pct float64) float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN()
	}

	sort.Float64s(clean)
	if pct <= 0 {
		return clean[0]
	}
	if pct >= 100 {
		return clean[len(clean)-1]
	}

	rank := pct / 100 * float64(len(clean)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return clean[lower]
	}
	weight := rank - float64(lower)
	return clean[lower]*(1-weight) + clean[upper]*weight
}

// DefaultRegistry returns the built-in metric set recognised in model
// files produced by the design pipeline.
func DefaultRegistry() *Registry {
	loopGuide := 1.0

	r, err := NewRegistry(
		Metric{
			Name:     TotalScore,
			Prefixes: []string{"total_score", "pose"},
			Column:   1,
			Title:    "Total Score (REU)",
			Limits:   UpperPercentileLimits(85),
		},
		Metric{
			Name:     "loop_rmsd",
			Prefixes: []string{"loop_backbone_rmsd"},
			Column:   1,
			Title:    "Loop RMSD (Å)",
			Limits:   LowerFractionLimits(0.025),
			Guide:    &loopGuide,
		},
		Metric{
			Name:     "delta_buried_unsats",
			Prefixes: []string{"delta_buried_unsats"},
			Column:   1,
			Title:    "Δ Buried Unsats",
		},
	)
	if err != nil {
		// The built-in set is static; a registration failure here is
		// a programming error.
		panic(err)
	}
	return r
}
