package structure

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// ErrUnknownChain indicates a derived structure referenced a missing chain.
var ErrUnknownChain = errors.New("unknown chain")

// Structure is an instance of a model. A root structure contains every atom of
// its model; derived structures (transformed copies, components) contain a
// subset and point back to the root they were derived from.
type Structure struct {
	id       uuid.UUID
	label    string
	model    *Model
	root     *Structure
	elements []ElementIndex
}

// NewRoot creates the root structure of a model.
func NewRoot(label string, model *Model) *Structure {
	elements := make([]ElementIndex, model.AtomCount())
	for i := range elements {
		elements[i] = ElementIndex(i)
	}
	s := &Structure{
		id:       uuid.New(),
		label:    label,
		model:    model,
		elements: elements,
	}
	s.root = s
	return s
}

// Derive creates a copy of s restricted to the given chains. With no chain
// ids the copy contains every element of s. The copy's root is s's root.
func (s *Structure) Derive(label string, chainIDs ...string) (*Structure, error) {
	elements := s.elements
	if len(chainIDs) > 0 {
		elements = nil
		for _, id := range chainIDs {
			c, ok := s.model.ChainByID(id)
			if !ok {
				return nil, fmt.Errorf("derive %s: chain %s: %w", label, id, ErrUnknownChain)
			}
			start, end := s.model.ChainAtoms(c)
			for e := start; e < end; e++ {
				if s.Contains(e) {
					elements = append(elements, e)
				}
			}
		}
		slices.Sort(elements)
		elements = slices.Compact(elements)
	}
	return &Structure{
		id:       uuid.New(),
		label:    label,
		model:    s.model,
		root:     s.root,
		elements: slices.Clone(elements),
	}, nil
}

// ID returns the unique identity of the structure instance.
func (s *Structure) ID() uuid.UUID { return s.id }

// Label returns the display label.
func (s *Structure) Label() string { return s.label }

// Model returns the underlying model.
func (s *Structure) Model() *Model { return s.model }

// Root returns the canonical untransformed structure.
func (s *Structure) Root() *Structure { return s.root }

// IsRoot reports whether s is its own root.
func (s *Structure) IsRoot() bool { return s.root == s }

// ElementCount returns the number of elements the structure contains.
func (s *Structure) ElementCount() int { return len(s.elements) }

// Elements returns the sorted elements of the structure. Callers must not modify it.
func (s *Structure) Elements() []ElementIndex { return s.elements }

// Contains reports whether element e is part of the structure.
func (s *Structure) Contains(e ElementIndex) bool {
	_, found := slices.BinarySearch(s.elements, e)
	return found
}

func (s *Structure) String() string {
	return fmt.Sprintf("%s(%d elements)", s.label, len(s.elements))
}
