package interactivity

import (
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/marker"
)

// LociSelectManager mutates the selected set and broadcasts the changes.
// Only element regions change the set; other variants are broadcast only.
type LociSelectManager struct {
	*lociMarkManager
	lastToggle *toggleRecord
}

// toggleRecord remembers what the last adding toggle changed, so toggling
// the same region again restores the selection it started from.
type toggleRecord struct {
	region loci.Element
	added  loci.Element
	after  loci.Element
}

func newLociSelectManager(base *lociMarkManager) *LociSelectManager {
	base.onRemove = func(p MarkProvider) {
		p(EveryLoci, marker.Deselect)
	}
	return &LociSelectManager{lociMarkManager: base}
}

// SelectToggle flips the selection of current. Non-element regions are
// broadcast as Toggle for providers to interpret.
func (m *LociSelectManager) SelectToggle(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	m.logOp("select-toggle", normalized)
	if _, ok := normalized.isElement(); ok {
		m.toggleSel(normalized)
		return
	}
	m.mark(normalized, marker.Toggle)
}

// SelectExtend toggles the contiguous range between the current selection
// and current. It does nothing for non-element regions.
func (m *LociSelectManager) SelectExtend(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	el, ok := normalized.isElement()
	if !ok {
		return
	}
	m.logOp("select-extend", normalized)
	target := Loci{Loci: el, Repr: normalized.Repr}
	if r, ok := m.sel.TryGetRange(el); ok {
		target.Loci = r
	}
	m.toggleSel(target)
}

// Select adds current to the selection. The Select broadcast is sent even
// for non-element regions.
func (m *LociSelectManager) Select(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	m.logOp("select", normalized)
	if el, ok := normalized.isElement(); ok {
		m.sel.Add(el)
	}
	m.mark(normalized, marker.Select)
}

// SelectOnly makes current the sole selection.
func (m *LociSelectManager) SelectOnly(current Loci, applyGranularity bool) {
	m.DeselectAll()
	normalized := m.NormalizedLoci(current, applyGranularity)
	m.logOp("select-only", normalized)
	if el, ok := normalized.isElement(); ok {
		m.sel.Set(el)
	}
	m.mark(normalized, marker.Select)
}

// Deselect removes current from the selection. The Deselect broadcast is
// sent even for non-element regions.
func (m *LociSelectManager) Deselect(current Loci, applyGranularity bool) {
	normalized := m.NormalizedLoci(current, applyGranularity)
	m.logOp("deselect", normalized)
	if el, ok := normalized.isElement(); ok {
		m.sel.Remove(el)
	}
	m.mark(normalized, marker.Deselect)
}

// DeselectAll clears the selection and broadcasts Deselect(Every).
func (m *LociSelectManager) DeselectAll() {
	m.logger.Debug("deselect-all")
	m.sel.Clear()
	m.mark(EveryLoci, marker.Deselect)
}

// DeselectAllOnEmpty clears the selection when the raw region of current
// is Empty. Normalization is not applied.
func (m *LociSelectManager) DeselectAllOnEmpty(current Loci) {
	if loci.IsEmpty(current.Loci) {
		m.DeselectAll()
	}
}

func (m *LociSelectManager) toggleSel(current Loci) {
	el := current.Loci.(loci.Element)
	if m.sel.Has(el) {
		m.sel.Remove(m.toggleRemoval(el))
		m.lastToggle = nil
		m.mark(current, marker.Deselect)
		return
	}
	added := el.Subtract(m.sel.Get(el.Structure))
	m.sel.Add(el)
	m.lastToggle = &toggleRecord{region: el, added: added, after: m.sel.Get(el.Structure)}
	m.mark(current, marker.Select)
}

// toggleRemoval returns the elements a deselecting toggle of el drops. When
// el was added by the previous toggle and the selection has not changed
// since, only the elements that toggle added are dropped.
func (m *LociSelectManager) toggleRemoval(el loci.Element) loci.Element {
	t := m.lastToggle
	if t == nil || !loci.AreEqual(t.region, el) || !loci.AreEqual(t.after, m.sel.Get(el.Structure)) {
		return el
	}
	return t.added
}
