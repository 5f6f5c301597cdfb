package structure

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySequence indicates a chain was added without residues.
	ErrEmptySequence = errors.New("empty sequence")
	// ErrDuplicateChain indicates a chain id was used twice in one model.
	ErrDuplicateChain = errors.New("duplicate chain id")
	// ErrUnknownResidueCode indicates a one-letter code with no residue name.
	ErrUnknownResidueCode = errors.New("unknown residue code")
)

// BackboneAtoms are the atoms generated for every residue, in order.
var BackboneAtoms = []string{"N", "CA", "C", "O"}

var residueNames = map[byte]string{
	'A': "ALA", 'R': "ARG", 'N': "ASN", 'D': "ASP", 'C': "CYS",
	'Q': "GLN", 'E': "GLU", 'G': "GLY", 'H': "HIS", 'I': "ILE",
	'L': "LEU", 'K': "LYS", 'M': "MET", 'F': "PHE", 'P': "PRO",
	'S': "SER", 'T': "THR", 'W': "TRP", 'Y': "TYR", 'V': "VAL",
}

// Builder assembles a Model from chain sequences.
// The first error sticks; Build reports it.
type Builder struct {
	model *Model
	err   error
}

// NewBuilder creates a builder for a model with the given label.
func NewBuilder(label string) *Builder {
	return &Builder{model: &Model{Label: label}}
}

// AddChain appends a chain whose residues are given as one-letter codes.
// Residues are numbered from 1.
func (b *Builder) AddChain(id, sequence string) *Builder {
	if b.err != nil {
		return b
	}
	sequence = strings.ToUpper(strings.TrimSpace(sequence))
	if sequence == "" {
		b.err = fmt.Errorf("chain %s: %w", id, ErrEmptySequence)
		return b
	}
	if _, exists := b.model.ChainByID(id); exists {
		b.err = fmt.Errorf("chain %s: %w", id, ErrDuplicateChain)
		return b
	}

	m := b.model
	chainIndex := len(m.Chains)
	chain := Chain{ID: id, ResidueStart: len(m.Residues)}
	for i := 0; i < len(sequence); i++ {
		code := sequence[i]
		name, ok := residueNames[code]
		if !ok {
			b.err = fmt.Errorf("chain %s position %d %q: %w", id, i+1, code, ErrUnknownResidueCode)
			return b
		}
		residueIndex := len(m.Residues)
		start := ElementIndex(len(m.Atoms))
		for _, atomName := range BackboneAtoms {
			m.Atoms = append(m.Atoms, Atom{Name: atomName, ResidueIndex: residueIndex})
		}
		end := ElementIndex(len(m.Atoms))
		m.Residues = append(m.Residues, Residue{
			Name:       name,
			Code:       code,
			SeqID:      i + 1,
			ChainIndex: chainIndex,
			AtomStart:  start,
			AtomEnd:    end,
		})
		// N-CA, CA-C, C-O
		m.Bonds = append(m.Bonds,
			Bond{A: start, B: start + 1},
			Bond{A: start + 1, B: start + 2},
			Bond{A: start + 2, B: start + 3},
		)
		if i > 0 {
			// peptide bond C(i-1)-N(i)
			m.Bonds = append(m.Bonds, Bond{A: start - 2, B: start})
		}
	}
	chain.ResidueEnd = len(m.Residues)
	m.Chains = append(m.Chains, chain)
	return b
}

// Build returns the assembled model.
func (b *Builder) Build() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.model, nil
}
