package loci

import (
	"slices"

	"github.com/cristianoliveira/molmark/internal/structure"
)

// IsEmpty reports whether the region contains no elements.
func (l Element) IsEmpty() bool { return len(l.Indices) == 0 }

// Size returns the number of elements in the region.
func (l Element) Size() int { return len(l.Indices) }

// First returns the lowest element of the region.
func (l Element) First() (structure.ElementIndex, bool) {
	if l.IsEmpty() {
		return 0, false
	}
	return l.Indices[0], true
}

// Last returns the highest element of the region.
func (l Element) Last() (structure.ElementIndex, bool) {
	if l.IsEmpty() {
		return 0, false
	}
	return l.Indices[len(l.Indices)-1], true
}

// Union returns the elements of l or o. Both must share a structure.
func (l Element) Union(o Element) Element {
	return Element{Structure: l.Structure, Indices: union(l.Indices, o.Indices)}
}

// Subtract returns the elements of l that are not in o. Both must share a structure.
func (l Element) Subtract(o Element) Element {
	return Element{Structure: l.Structure, Indices: subtract(l.Indices, o.Indices)}
}

// IsSubset reports whether every element of l is in o.
func (l Element) IsSubset(o Element) bool {
	return isSubset(l.Indices, o.Indices)
}

// Intersects reports whether l and o share an element.
func (l Element) Intersects(o Element) bool {
	return intersects(l.Indices, o.Indices)
}

// ExtendToWholeResidues grows the region to every element of each touched residue.
func (l Element) ExtendToWholeResidues() Element {
	m := l.Structure.Model()
	return l.extend(func(e structure.ElementIndex) (structure.ElementIndex, structure.ElementIndex) {
		return m.ResidueAtoms(m.ResidueOf(e))
	})
}

// ExtendToWholeChains grows the region to every element of each touched chain.
func (l Element) ExtendToWholeChains() Element {
	m := l.Structure.Model()
	return l.extend(func(e structure.ElementIndex) (structure.ElementIndex, structure.ElementIndex) {
		return m.ChainAtoms(m.ChainOf(e))
	})
}

// extend adds the range span(e) for every element, keeping only elements the
// structure contains.
func (l Element) extend(span func(structure.ElementIndex) (structure.ElementIndex, structure.ElementIndex)) Element {
	var out []structure.ElementIndex
	var coveredEnd structure.ElementIndex = -1
	for _, e := range l.Indices {
		if e < coveredEnd {
			continue
		}
		start, end := span(e)
		for x := start; x < end; x++ {
			if l.Structure.Contains(x) {
				out = append(out, x)
			}
		}
		coveredEnd = end
	}
	return Element{Structure: l.Structure, Indices: out}
}

// Remap re-expresses the region on target, dropping elements target does not contain.
func (l Element) Remap(target *structure.Structure) Element {
	if l.Structure == target {
		return l
	}
	out := make([]structure.ElementIndex, 0, len(l.Indices))
	for _, e := range l.Indices {
		if target.Contains(e) {
			out = append(out, e)
		}
	}
	return Element{Structure: target, Indices: out}
}

// Contains reports whether element e is in the region.
func (l Element) Contains(e structure.ElementIndex) bool {
	_, found := slices.BinarySearch(l.Indices, e)
	return found
}

// ToElement converts the bonds to the set of their endpoint elements.
func (l Link) ToElement() Element {
	indices := make([]structure.ElementIndex, 0, len(l.Bonds)*2)
	for _, b := range l.Bonds {
		if l.Structure.Contains(b.A) {
			indices = append(indices, b.A)
		}
		if l.Structure.Contains(b.B) {
			indices = append(indices, b.B)
		}
	}
	return NewElement(l.Structure, indices...)
}

// ToElement converts the region to an Element region covering the whole structure.
func (l StructureWide) ToElement() Element {
	return Element{Structure: l.Structure, Indices: slices.Clone(l.Structure.Elements())}
}
