// Package interactivity tracks which parts of the displayed structures are
// highlighted or selected and broadcasts every change to the registered mark
// providers, so all representations of a structure stay in sync.
//
// All operations are synchronous and must be called from a single goroutine
// (the UI event loop). Providers are invoked in registration order; a
// provider that panics aborts the broadcast for the remaining providers.
package interactivity

import (
	"github.com/cristianoliveira/molmark/internal/loci"
)

// Representation is a visual representation a region was picked from.
// Implementations must be comparable, typically pointers.
type Representation interface {
	Label() string
}

// Loci pairs a region with the representation it was picked from, if any.
type Loci struct {
	Loci loci.Loci
	Repr Representation
}

// EmptyLoci is the empty region with no representation.
var EmptyLoci = Loci{Loci: loci.Empty}

// EveryLoci is the universal region with no representation.
var EveryLoci = Loci{Loci: loci.Every}

// Equal reports whether both the representation and the region match.
func (l Loci) Equal(o Loci) bool {
	return l.Repr == o.Repr && loci.AreEqual(l.Loci, o.Loci)
}

func (l Loci) String() string {
	if l.Repr == nil {
		return l.Loci.String()
	}
	return l.Loci.String() + "@" + l.Repr.Label()
}

// isElement returns the element region of l, if that is its variant.
func (l Loci) isElement() (loci.Element, bool) {
	el, ok := l.Loci.(loci.Element)
	return el, ok
}
