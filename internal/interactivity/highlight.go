package interactivity

import (
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/marker"
)

// LociHighlightManager tracks the single highlighted region.
type LociHighlightManager struct {
	*lociMarkManager
	prev Loci
}

func newLociHighlightManager(base *lociMarkManager) *LociHighlightManager {
	m := &LociHighlightManager{lociMarkManager: base, prev: EmptyLoci}
	base.onRemove = func(p MarkProvider) {
		if !loci.IsEmpty(m.prev.Loci) {
			p(m.prev, marker.RemoveHighlight)
		}
	}
	return m
}

// Previous returns the currently highlighted region.
func (m *LociHighlightManager) Previous() Loci {
	return m.prev
}

// HighlightOnly replaces the highlight with current. Element regions are
// always re-marked; other regions only when they differ from the previous one.
func (m *LociHighlightManager) HighlightOnly(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	m.logOp("highlight-only", normalized)
	if _, ok := normalized.isElement(); ok {
		m.replace(normalized)
		return
	}
	if !m.prev.Equal(normalized) {
		m.replace(normalized)
	}
}

// HighlightOnlyExtend highlights the contiguous range between the current
// selection and current. It does nothing for non-element regions.
func (m *LociHighlightManager) HighlightOnlyExtend(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	el, ok := normalized.isElement()
	if !ok {
		return
	}
	m.logOp("highlight-only-extend", normalized)
	toHighlight := Loci{Loci: el, Repr: normalized.Repr}
	if r, ok := m.sel.TryGetRange(el); ok {
		toHighlight.Loci = r
	}
	m.replace(toHighlight)
}

// Clear removes the highlight and resets the previous region to Empty.
func (m *LociHighlightManager) Clear() {
	if loci.IsEmpty(m.prev.Loci) {
		return
	}
	m.mark(m.prev, marker.RemoveHighlight)
	m.prev = EmptyLoci
}

func (m *LociHighlightManager) replace(next Loci) {
	m.mark(m.prev, marker.RemoveHighlight)
	m.mark(next, marker.Highlight)
	m.prev = next
}
