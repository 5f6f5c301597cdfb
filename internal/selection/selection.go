// Package selection keeps the accumulated element selection of every
// structure. Entries are keyed by root structure, so regions picked on any
// derived copy land in the same entry once remapped.
package selection

import (
	"github.com/google/uuid"

	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/structure"
)

// Manager owns the selected set.
type Manager struct {
	entries map[uuid.UUID]loci.Element
	order   []uuid.UUID
}

// NewManager creates an empty selection manager.
func NewManager() *Manager {
	return &Manager{entries: make(map[uuid.UUID]loci.Element)}
}

// entry returns the selection for the root of s, creating an empty one when missing.
func (m *Manager) entry(s *structure.Structure) loci.Element {
	root := s.Root()
	if e, ok := m.entries[root.ID()]; ok {
		return e
	}
	e := loci.NewElement(root)
	m.entries[root.ID()] = e
	m.order = append(m.order, root.ID())
	return e
}

func (m *Manager) store(e loci.Element) {
	m.entries[e.Structure.Root().ID()] = e
}

// toRoot expresses l on its root structure.
func toRoot(l loci.Element) loci.Element {
	return l.Remap(l.Structure.Root())
}

// Add merges l into the selection.
func (m *Manager) Add(l loci.Element) {
	l = toRoot(l)
	m.store(m.entry(l.Structure).Union(l))
}

// Remove drops the elements of l from the selection.
func (m *Manager) Remove(l loci.Element) {
	l = toRoot(l)
	m.store(m.entry(l.Structure).Subtract(l))
}

// Set replaces the selection of l's structure with l.
func (m *Manager) Set(l loci.Element) {
	l = toRoot(l)
	m.entry(l.Structure)
	m.store(l)
}

// Clear empties the selection of every structure.
func (m *Manager) Clear() {
	for id, e := range m.entries {
		m.entries[id] = loci.NewElement(e.Structure)
	}
}

// Has reports whether l is non-empty and fully selected.
func (m *Manager) Has(l loci.Element) bool {
	l = toRoot(l)
	if l.IsEmpty() {
		return false
	}
	e, ok := m.entries[l.Structure.ID()]
	if !ok {
		return false
	}
	return l.IsSubset(e)
}

// Get returns the selection of s's root structure.
func (m *Manager) Get(s *structure.Structure) loci.Element {
	if e, ok := m.entries[s.Root().ID()]; ok {
		return e
	}
	return loci.NewElement(s.Root())
}

// Selections returns the non-empty selections in first-touched order.
func (m *Manager) Selections() []loci.Element {
	out := make([]loci.Element, 0, len(m.order))
	for _, id := range m.order {
		if e := m.entries[id]; !e.IsEmpty() {
			out = append(out, e)
		}
	}
	return out
}

// ElementCount returns the number of selected elements across all structures.
func (m *Manager) ElementCount() int {
	n := 0
	for _, e := range m.entries {
		n += e.Size()
	}
	return n
}

// TryGetRange extends l to a contiguous span reaching the nearest selected
// element of the same chain. It reports false when l is empty or nothing in
// that chain is selected.
func (m *Manager) TryGetRange(l loci.Element) (loci.Element, bool) {
	l = toRoot(l)
	first, ok := l.First()
	if !ok {
		return loci.Element{}, false
	}
	last, _ := l.Last()
	sel, ok := m.entries[l.Structure.ID()]
	if !ok || sel.IsEmpty() {
		return loci.Element{}, false
	}

	model := l.Structure.Model()
	chainStart, chainEnd := model.ChainAtoms(model.ChainOf(first))

	before, hasBefore := closestBelow(sel, first, chainStart)
	after, hasAfter := closestAbove(sel, last, chainEnd)

	var from, to structure.ElementIndex
	switch {
	case hasBefore && hasAfter:
		if first-before <= after-last {
			from, to = before, last
		} else {
			from, to = first, after
		}
	case hasBefore:
		from, to = before, last
	case hasAfter:
		from, to = first, after
	default:
		return loci.Element{}, false
	}

	span := make([]structure.ElementIndex, 0, to-from+1)
	for e := from; e <= to; e++ {
		if l.Structure.Contains(e) {
			span = append(span, e)
		}
	}
	return loci.NewElement(l.Structure, span...), true
}

// closestBelow returns the highest selected element in [floor, e).
func closestBelow(sel loci.Element, e, floor structure.ElementIndex) (structure.ElementIndex, bool) {
	for i := len(sel.Indices) - 1; i >= 0; i-- {
		x := sel.Indices[i]
		if x >= e {
			continue
		}
		return x, x >= floor
	}
	return 0, false
}

// closestAbove returns the lowest selected element in (e, ceil).
func closestAbove(sel loci.Element, e, ceil structure.ElementIndex) (structure.ElementIndex, bool) {
	for _, x := range sel.Indices {
		if x <= e {
			continue
		}
		return x, x < ceil
	}
	return 0, false
}
