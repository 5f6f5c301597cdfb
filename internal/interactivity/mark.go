package interactivity

import (
	"github.com/cristianoliveira/molmark/internal/logging"
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/marker"
	"github.com/cristianoliveira/molmark/internal/selection"
)

// MarkProvider receives every highlight/select broadcast.
type MarkProvider func(current Loci, action marker.Action)

// ProviderID identifies one registration of a MarkProvider.
type ProviderID uint64

type providerEntry struct {
	id       ProviderID
	provider MarkProvider
}

// lociMarkManager is the registry and normalizer shared by the highlight and
// select managers. Props are read from the owning facade on every call.
type lociMarkManager struct {
	props     func() Props
	sel       *selection.Manager
	logger    logging.Logger
	providers []providerEntry
	lastID    ProviderID
	// onRemove lets the concrete manager clear a provider it is dropping.
	onRemove func(MarkProvider)
}

func newLociMarkManager(props func() Props, sel *selection.Manager, logger logging.Logger) *lociMarkManager {
	return &lociMarkManager{props: props, sel: sel, logger: logger}
}

// Props returns the current configuration.
func (m *lociMarkManager) Props() Props {
	return m.props()
}

// AddProvider registers p and returns the handle that removes it.
// Registering the same function twice yields two independent registrations.
func (m *lociMarkManager) AddProvider(p MarkProvider) ProviderID {
	m.lastID++
	m.providers = append(m.providers, providerEntry{id: m.lastID, provider: p})
	return m.lastID
}

// RemoveProvider drops the registration id. The dropped provider alone
// receives a clearing broadcast; remaining providers are not notified.
// It reports whether id was registered.
func (m *lociMarkManager) RemoveProvider(id ProviderID) bool {
	for i, e := range m.providers {
		if e.id != id {
			continue
		}
		m.providers = append(m.providers[:i:i], m.providers[i+1:]...)
		if m.onRemove != nil {
			m.onRemove(e.provider)
		}
		return true
	}
	return false
}

// ProviderCount returns the number of registered providers.
func (m *lociMarkManager) ProviderCount() int {
	return len(m.providers)
}

// NormalizedLoci converts current to its canonical form: links and whole
// structures become element regions, element regions move to the root
// structure, and then (optionally) the granularity expansion is applied.
// The order matters: granularity must be applied after remapping.
func (m *lociMarkManager) NormalizedLoci(current Loci, applyGranularity bool) Loci {
	return Loci{
		Loci: normalize(current.Loci, m.props().Granularity, applyGranularity),
		Repr: current.Repr,
	}
}

func normalize(l loci.Loci, g Granularity, applyGranularity bool) loci.Loci {
	switch v := l.(type) {
	case loci.Link:
		// element granularity keeps bonds addressable as bonds
		if g != GranularityElement {
			l = v.ToElement()
		}
	case loci.StructureWide:
		l = v.ToElement()
	case loci.Element, loci.EmptyLoci, loci.EveryLoci:
	}
	if el, ok := l.(loci.Element); ok {
		l = el.Remap(el.Structure.Root())
	}
	if applyGranularity {
		l = g.apply(l)
	}
	return l
}

// mark invokes every provider in registration order.
func (m *lociMarkManager) mark(current Loci, action marker.Action) {
	for _, e := range m.providers {
		e.provider(current, action)
	}
}

func (m *lociMarkManager) logOp(op string, normalized Loci) {
	m.logger.Debug(op,
		"granularity", m.props().Granularity.String(),
		"kind", string(normalized.Loci.Kind()),
		"region", normalized.String())
}
