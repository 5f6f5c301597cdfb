// Package structure provides the molecular model that regions address:
// atoms grouped into residues, residues grouped into chains, and the bonds
// between atoms. Structures are views over a model; every structure knows its
// root, the untransformed instance used as the shared coordinate frame.
package structure

import "sort"

// ElementIndex addresses one atom (or coarse element) of a model.
// Indices are shared by every structure built on the same model.
type ElementIndex int

// Atom is a single element of the model.
type Atom struct {
	Name         string
	ResidueIndex int
}

// Residue groups a contiguous atom range [AtomStart, AtomEnd).
type Residue struct {
	Name       string
	Code       byte
	SeqID      int
	ChainIndex int
	AtomStart  ElementIndex
	AtomEnd    ElementIndex
}

// Chain groups a contiguous residue range [ResidueStart, ResidueEnd).
type Chain struct {
	ID           string
	ResidueStart int
	ResidueEnd   int
}

// Bond links two atoms.
type Bond struct {
	A ElementIndex
	B ElementIndex
}

// Model is the immutable atom/residue/chain hierarchy of a structure.
type Model struct {
	Label    string
	Atoms    []Atom
	Residues []Residue
	Chains   []Chain
	Bonds    []Bond
}

// AtomCount returns the number of atoms in the model.
func (m *Model) AtomCount() int {
	return len(m.Atoms)
}

// ResidueOf returns the residue index of element e.
func (m *Model) ResidueOf(e ElementIndex) int {
	return m.Atoms[e].ResidueIndex
}

// ChainOf returns the chain index of element e.
func (m *Model) ChainOf(e ElementIndex) int {
	return m.Residues[m.ResidueOf(e)].ChainIndex
}

// ResidueAtoms returns the atom range [start, end) of residue r.
func (m *Model) ResidueAtoms(r int) (start, end ElementIndex) {
	res := m.Residues[r]
	return res.AtomStart, res.AtomEnd
}

// ChainAtoms returns the atom range [start, end) of chain c.
func (m *Model) ChainAtoms(c int) (start, end ElementIndex) {
	ch := m.Chains[c]
	if ch.ResidueStart == ch.ResidueEnd {
		return 0, 0
	}
	return m.Residues[ch.ResidueStart].AtomStart, m.Residues[ch.ResidueEnd-1].AtomEnd
}

// ChainByID returns the index of the chain with the given id.
func (m *Model) ChainByID(id string) (int, bool) {
	for i, ch := range m.Chains {
		if ch.ID == id {
			return i, true
		}
	}
	return -1, false
}

// FindResidue returns the index of the residue with seqID in chain c.
func (m *Model) FindResidue(c int, seqID int) (int, bool) {
	ch := m.Chains[c]
	residues := m.Residues[ch.ResidueStart:ch.ResidueEnd]
	i := sort.Search(len(residues), func(i int) bool { return residues[i].SeqID >= seqID })
	if i < len(residues) && residues[i].SeqID == seqID {
		return ch.ResidueStart + i, true
	}
	return -1, false
}

// FindAtom returns the element with the given name in residue r.
func (m *Model) FindAtom(r int, name string) (ElementIndex, bool) {
	start, end := m.ResidueAtoms(r)
	for e := start; e < end; e++ {
		if m.Atoms[e].Name == name {
			return e, true
		}
	}
	return -1, false
}
