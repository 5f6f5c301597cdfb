package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cristianoliveira/molmark/internal/interactivity"
	"github.com/cristianoliveira/molmark/internal/loci"
	"github.com/cristianoliveira/molmark/internal/structure"
)

// World holds the structures a scenario declares, roots and derived copies,
// in declaration order.
type World struct {
	names      []string
	structures map[string]*structure.Structure
}

// BuildWorld builds every structure of f.
func BuildWorld(f *File) (*World, error) {
	w := &World{structures: make(map[string]*structure.Structure)}
	for _, def := range f.Structures {
		b := structure.NewBuilder(def.Name)
		for _, c := range def.Chains {
			b.AddChain(c.ID, c.Sequence)
		}
		model, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("structure %s: %w", def.Name, err)
		}
		root := structure.NewRoot(def.Name, model)
		if err := w.add(root); err != nil {
			return nil, err
		}
		for _, d := range def.Derive {
			derived, err := root.Derive(d.Name, d.Chains...)
			if err != nil {
				return nil, fmt.Errorf("structure %s: %w", def.Name, err)
			}
			if err := w.add(derived); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}

func (w *World) add(s *structure.Structure) error {
	if s.Label() == "" {
		return fmt.Errorf("%w: structure without a name", ErrInvalidTarget)
	}
	if _, exists := w.structures[s.Label()]; exists {
		return fmt.Errorf("%w: duplicate structure %q", ErrInvalidTarget, s.Label())
	}
	w.structures[s.Label()] = s
	w.names = append(w.names, s.Label())
	return nil
}

// Names returns the structure names in declaration order.
func (w *World) Names() []string { return w.names }

// Structure returns the structure with the given name.
func (w *World) Structure(name string) (*structure.Structure, error) {
	s, ok := w.structures[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStructure, name)
	}
	return s, nil
}

// Region resolves the target of step to a region.
func (w *World) Region(step Step) (loci.Loci, error) {
	switch step.Region {
	case "empty":
		return loci.Empty, nil
	case "every":
		return loci.Every, nil
	}

	s, err := w.Structure(step.Structure)
	if err != nil {
		return nil, err
	}
	switch step.Region {
	case "structure":
		return loci.NewStructure(s), nil
	case "bond":
		return w.bond(s, step.Bond)
	case "", "element":
		return w.elements(s, step)
	default:
		return nil, fmt.Errorf("%w: region %q", ErrInvalidTarget, step.Region)
	}
}

// elements resolves a chain, one residue of it, or one atom of that residue.
func (w *World) elements(s *structure.Structure, step Step) (loci.Loci, error) {
	if step.Chain == "" {
		return nil, fmt.Errorf("%w: element target needs a chain", ErrInvalidTarget)
	}
	m := s.Model()
	c, ok := m.ChainByID(step.Chain)
	if !ok {
		return nil, fmt.Errorf("%s chain %s: %w", s.Label(), step.Chain, structure.ErrUnknownChain)
	}
	if step.Residue == 0 {
		if step.Atom != "" {
			return nil, fmt.Errorf("%w: atom %s needs a residue", ErrInvalidTarget, step.Atom)
		}
		start, end := m.ChainAtoms(c)
		return within(s, span(s, start, end), "chain "+step.Chain)
	}
	r, ok := m.FindResidue(c, step.Residue)
	if !ok {
		return nil, fmt.Errorf("%s %s%d: %w", s.Label(), step.Chain, step.Residue, ErrUnknownResidue)
	}
	if step.Atom == "" {
		start, end := m.ResidueAtoms(r)
		return within(s, span(s, start, end), fmt.Sprintf("residue %s%d", step.Chain, step.Residue))
	}
	e, ok := m.FindAtom(r, step.Atom)
	if !ok {
		return nil, fmt.Errorf("%s %s%d.%s: %w", s.Label(), step.Chain, step.Residue, step.Atom, ErrUnknownAtom)
	}
	return within(s, loci.NewElement(s, e), fmt.Sprintf("atom %s%d.%s", step.Chain, step.Residue, step.Atom))
}

// within rejects a region with elements the structure does not contain,
// such as a chain left out of a derived copy.
func within(s *structure.Structure, region loci.Element, what string) (loci.Element, error) {
	for _, e := range region.Indices {
		if !s.Contains(e) {
			return loci.Element{}, fmt.Errorf("%w: %s is not part of %s", ErrInvalidTarget, what, s.Label())
		}
	}
	return region, nil
}

func span(s *structure.Structure, start, end structure.ElementIndex) loci.Element {
	indices := make([]structure.ElementIndex, 0, end-start)
	for e := start; e < end; e++ {
		indices = append(indices, e)
	}
	return loci.NewElement(s, indices...)
}

// bond resolves a pair of atom references of the form CHAIN/SEQID/ATOM.
func (w *World) bond(s *structure.Structure, refs []string) (loci.Loci, error) {
	if len(refs) != 2 {
		return nil, fmt.Errorf("%w: bond needs two atoms, got %d", ErrInvalidTarget, len(refs))
	}
	var ends [2]structure.ElementIndex
	for i, ref := range refs {
		e, err := w.atomRef(s, ref)
		if err != nil {
			return nil, err
		}
		ends[i] = e
	}
	return loci.NewLink(s, structure.Bond{A: ends[0], B: ends[1]}), nil
}

func (w *World) atomRef(s *structure.Structure, ref string) (structure.ElementIndex, error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: atom reference %q, want CHAIN/SEQID/ATOM", ErrInvalidTarget, ref)
	}
	seqID, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: atom reference %q: %v", ErrInvalidTarget, ref, err)
	}
	region, err := w.elements(s, Step{Chain: parts[0], Residue: seqID, Atom: parts[2]})
	if err != nil {
		return 0, err
	}
	return region.(loci.Element).Indices[0], nil
}

// Target resolves step to a region scoped to repr when the step asks for it.
func (w *World) Target(step Step, repr interactivity.Representation) (interactivity.Loci, error) {
	l, err := w.Region(step)
	if err != nil {
		return interactivity.Loci{}, err
	}
	target := interactivity.Loci{Loci: l}
	if step.Scoped {
		target.Repr = repr
	}
	return target, nil
}
