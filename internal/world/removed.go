package world

import "slices"

// RemovedSet holds the names of harvested objects. Areas built with the set
// never instantiate those objects again.
type RemovedSet map[string]struct{}

// NewRemovedSet builds a set from a list of object names.
func NewRemovedSet(names ...string) RemovedSet {
	rs := make(RemovedSet, len(names))
	for _, n := range names {
		rs[n] = struct{}{}
	}
	return rs
}

// Add records an object name as removed.
func (rs RemovedSet) Add(name string) {
	rs[name] = struct{}{}
}

// Contains reports whether name has been removed.
func (rs RemovedSet) Contains(name string) bool {
	_, ok := rs[name]
	return ok
}

// Names returns the removed names in sorted order.
func (rs RemovedSet) Names() []string {
	names := make([]string, 0, len(rs))
	for n := range rs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
