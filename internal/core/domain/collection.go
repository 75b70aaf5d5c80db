package domain

// Collection is an ordered set of groups keyed by directory. The order
// is the caller's input order, which the UI relies on for stable
// colouring and selection.
type Collection struct {
	order  []string
	groups map[string]*Group
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{groups: make(map[string]*Group)}
}

// Add appends a group. A group for the same directory replaces the
// earlier one without changing its position.
func (c *Collection) Add(g *Group) {
	if _, exists := c.groups[g.Directory]; !exists {
		c.order = append(c.order, g.Directory)
	}
	c.groups[g.Directory] = g
}

// Get returns the group for a directory.
func (c *Collection) Get(directory string) (*Group, bool) {
	g, ok := c.groups[directory]
	return g, ok
}

// Len returns the number of groups.
func (c *Collection) Len() int {
	return len(c.order)
}

// Directories returns the directories in insertion order.
func (c *Collection) Directories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Groups returns the groups in insertion order.
func (c *Collection) Groups() []*Group {
	out := make([]*Group, 0, len(c.order))
	for _, dir := range c.order {
		out = append(out, c.groups[dir])
	}
	return out
}

// SharedMetrics returns the numeric metrics defined on every group in
// the collection, sorted. Axis menus are built from this intersection
// so any selection is plottable for all groups at once.
func (c *Collection) SharedMetrics() []string {
	if len(c.order) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, g := range c.Groups() {
		for _, name := range g.DefinedMetrics() {
			counts[name]++
		}
	}

	shared := make([]string, 0, len(counts))
	for _, name := range c.groups[c.order[0]].DefinedMetrics() {
		if counts[name] == len(c.order) {
			shared = append(shared, name)
		}
	}
	return shared
}

// FilterByNotes returns the directories whose group notes match the
// query, in collection order. An empty query matches everything.
func (c *Collection) FilterByNotes(query string) []string {
	matched := make([]string, 0, len(c.order))
	for _, g := range c.Groups() {
		if query == "" || g.MatchesNotes(query) {
			matched = append(matched, g.Directory)
		}
	}
	return matched
}
