package interactivity

import (
	"fmt"

	"github.com/cristianoliveira/molmark/internal/loci"
)

// Granularity is the unit a picked region is expanded to.
type Granularity string

const (
	GranularityElement   Granularity = "element"
	GranularityResidue   Granularity = "residue"
	GranularityChain     Granularity = "chain"
	GranularityStructure Granularity = "structure"
)

// Granularities lists the granularities from finest to coarsest.
func Granularities() []Granularity {
	return []Granularity{GranularityElement, GranularityResidue, GranularityChain, GranularityStructure}
}

// IsValid checks if the granularity is known.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityElement, GranularityResidue, GranularityChain, GranularityStructure:
		return true
	default:
		return false
	}
}

// String returns the string representation of the granularity.
func (g Granularity) String() string {
	return string(g)
}

// Next returns the next coarser granularity, wrapping to element.
func (g Granularity) Next() Granularity {
	all := Granularities()
	for i, x := range all {
		if x == g {
			return all[(i+1)%len(all)]
		}
	}
	return GranularityElement
}

// ParseGranularity returns the granularity with the given name.
func ParseGranularity(name string) (Granularity, error) {
	g := Granularity(name)
	if !g.IsValid() {
		return "", fmt.Errorf("invalid granularity: %q", name)
	}
	return g, nil
}

// apply expands an element region to the granularity; other variants pass through.
func (g Granularity) apply(l loci.Loci) loci.Loci {
	el, ok := l.(loci.Element)
	if !ok {
		return l
	}
	switch g {
	case GranularityResidue:
		return el.ExtendToWholeResidues()
	case GranularityChain:
		return el.ExtendToWholeChains()
	case GranularityStructure:
		return loci.NewStructure(el.Structure)
	default:
		return el
	}
}

// Props is the interactivity configuration.
type Props struct {
	// Granularity controls whether picks expand to whole residues, chains,
	// structures, or stay as atoms and coarse elements.
	Granularity Granularity `toml:"granularity" yaml:"granularity"`
}

// DefaultProps returns the default configuration.
func DefaultProps() Props {
	return Props{Granularity: GranularityResidue}
}

// merge returns p with the set fields of partial applied. Zero fields are
// left unchanged; invalid values are reported and skipped.
func (p Props) merge(partial Props) (Props, []error) {
	var errs []error
	if partial.Granularity != "" {
		if partial.Granularity.IsValid() {
			p.Granularity = partial.Granularity
		} else {
			errs = append(errs, fmt.Errorf("invalid granularity: %q", partial.Granularity))
		}
	}
	return p, errs
}
