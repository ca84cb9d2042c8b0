package library

import "slices"

// pair identifies a join row by its two foreign ids.
type pair struct {
	parent string
	child  string
}

// membership holds one join table: the rows in insertion order plus the
// lookup indices that keep count, existence, and cascade checks off the
// full row scan. R is the join row type.
type membership[R any] struct {
	rows     []R
	parentOf func(R) string
	childOf  func(R) string

	children map[string][]string            // parent -> child ids, insertion order
	parents  map[string]map[string]struct{} // child -> parent ids
	pairs    map[pair]struct{}
}

func newMembership[R any](parentOf, childOf func(R) string) *membership[R] {
	return &membership[R]{
		parentOf: parentOf,
		childOf:  childOf,
		children: make(map[string][]string),
		parents:  make(map[string]map[string]struct{}),
		pairs:    make(map[pair]struct{}),
	}
}

func (m *membership[R]) has(parent, child string) bool {
	_, ok := m.pairs[pair{parent, child}]
	return ok
}

func (m *membership[R]) count(parent string) int {
	return len(m.children[parent])
}

func (m *membership[R]) len() int {
	return len(m.rows)
}

// add appends row. The caller has already checked has().
func (m *membership[R]) add(row R) {
	p, c := m.parentOf(row), m.childOf(row)
	m.rows = append(m.rows, row)
	m.children[p] = append(m.children[p], c)
	if m.parents[c] == nil {
		m.parents[c] = make(map[string]struct{})
	}
	m.parents[c][p] = struct{}{}
	m.pairs[pair{p, c}] = struct{}{}
}

// remove deletes the row for (parent, child) and reports whether one existed.
func (m *membership[R]) remove(parent, child string) bool {
	if !m.has(parent, child) {
		return false
	}
	m.rows = slices.DeleteFunc(m.rows, func(r R) bool {
		return m.parentOf(r) == parent && m.childOf(r) == child
	})
	m.unindex(parent, child)
	return true
}

// removeParent deletes every row whose parent is parent.
func (m *membership[R]) removeParent(parent string) int {
	kids := m.children[parent]
	if len(kids) == 0 {
		return 0
	}
	m.rows = slices.DeleteFunc(m.rows, func(r R) bool {
		return m.parentOf(r) == parent
	})
	delete(m.children, parent)
	for _, c := range kids {
		delete(m.pairs, pair{parent, c})
		if ps := m.parents[c]; ps != nil {
			delete(ps, parent)
			if len(ps) == 0 {
				delete(m.parents, c)
			}
		}
	}
	return len(kids)
}

// removeChild deletes every row whose child is child.
func (m *membership[R]) removeChild(child string) int {
	ps := m.parents[child]
	if len(ps) == 0 {
		return 0
	}
	n := len(ps)
	m.rows = slices.DeleteFunc(m.rows, func(r R) bool {
		return m.childOf(r) == child
	})
	for p := range ps {
		m.unindex(p, child)
	}
	return n
}

func (m *membership[R]) unindex(parent, child string) {
	delete(m.pairs, pair{parent, child})

	kids := slices.DeleteFunc(m.children[parent], func(c string) bool { return c == child })
	if len(kids) == 0 {
		delete(m.children, parent)
	} else {
		m.children[parent] = kids
	}

	if ps := m.parents[child]; ps != nil {
		delete(ps, parent)
		if len(ps) == 0 {
			delete(m.parents, child)
		}
	}
}

// childrenOf returns a copy of parent's child ids in insertion order.
func (m *membership[R]) childrenOf(parent string) []string {
	return slices.Clone(m.children[parent])
}

// parentsOf returns the parents of child in no particular order.
func (m *membership[R]) parentsOf(child string) []string {
	out := make([]string, 0, len(m.parents[child]))
	for p := range m.parents[child] {
		out = append(out, p)
	}
	return out
}

// list returns a copy of all rows in insertion order.
func (m *membership[R]) list() []R {
	return slices.Clone(m.rows)
}
