package walker

// Group holds the dependency URLs declared by the manifest of one directory.
//
// Fields:
//   - Dir: Directory that owns the manifest, as reached from the walk root
//   - URLs: Declared URLs in manifest line order
type Group struct {
	Dir  string
	URLs []string
}

// Groups maps directories to their Group while remembering insertion order.
//
// The zero value is not usable; create one with NewGroups.
type Groups struct {
	order []string
	byDir map[string]*Group
}

// NewGroups returns an empty Groups mapping.
func NewGroups() *Groups {
	return &Groups{byDir: make(map[string]*Group)}
}

// Ensure returns the group for dir, creating an empty one at the end of the
// order when dir has not been seen yet.
func (g *Groups) Ensure(dir string) *Group {
	if grp, ok := g.byDir[dir]; ok {
		return grp
	}
	grp := &Group{Dir: dir}
	g.byDir[dir] = grp
	g.order = append(g.order, dir)
	return grp
}

// Append adds urls to the group for dir. Nothing is created when urls is empty.
func (g *Groups) Append(dir string, urls ...string) {
	if len(urls) == 0 {
		return
	}
	grp := g.Ensure(dir)
	grp.URLs = append(grp.URLs, urls...)
}

// Get returns the group for dir, if any.
func (g *Groups) Get(dir string) (*Group, bool) {
	grp, ok := g.byDir[dir]
	return grp, ok
}

// Dirs returns the directories in insertion order.
func (g *Groups) Dirs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// All returns the groups in insertion order.
func (g *Groups) All() []*Group {
	out := make([]*Group, 0, len(g.order))
	for _, dir := range g.order {
		out = append(out, g.byDir[dir])
	}
	return out
}

// Len returns the number of directories with at least one group entry.
func (g *Groups) Len() int {
	return len(g.order)
}

// Count returns the total number of URLs across all groups.
func (g *Groups) Count() int {
	n := 0
	for _, grp := range g.byDir {
		n += len(grp.URLs)
	}
	return n
}

// Empty reports whether no URL was collected at all.
func (g *Groups) Empty() bool {
	return g.Count() == 0
}
