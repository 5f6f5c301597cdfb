// Package loci models selectable regions of a structure.
//
// A Loci is one of a closed set of variants: Empty, Every, Element (a set of
// atoms within one structure), Link (a set of bonds) and StructureWide (a
// whole structure instance). Consumers switch on the concrete type.
package loci

import (
	"fmt"
	"slices"

	"github.com/cristianoliveira/molmark/internal/structure"
)

// Kind names a Loci variant.
type Kind string

const (
	KindEmpty     Kind = "empty-loci"
	KindEvery     Kind = "every-loci"
	KindElement   Kind = "element-loci"
	KindLink      Kind = "link-loci"
	KindStructure Kind = "structure-loci"
)

// Loci is a selectable region.
type Loci interface {
	Kind() Kind
	String() string
	isLoci()
}

// EmptyLoci is the region containing nothing.
type EmptyLoci struct{}

// EveryLoci is the universal region.
type EveryLoci struct{}

var (
	// Empty is the shared empty region.
	Empty Loci = EmptyLoci{}
	// Every is the shared universal region.
	Every Loci = EveryLoci{}
)

// Element is a set of elements of a single structure. Indices are sorted and unique.
type Element struct {
	Structure *structure.Structure
	Indices   []structure.ElementIndex
}

// Link is a set of bonds of a single structure.
type Link struct {
	Structure *structure.Structure
	Bonds     []structure.Bond
}

// StructureWide covers a whole structure instance.
type StructureWide struct {
	Structure *structure.Structure
}

func (EmptyLoci) Kind() Kind     { return KindEmpty }
func (EveryLoci) Kind() Kind     { return KindEvery }
func (Element) Kind() Kind       { return KindElement }
func (Link) Kind() Kind          { return KindLink }
func (StructureWide) Kind() Kind { return KindStructure }

func (EmptyLoci) isLoci()     {}
func (EveryLoci) isLoci()     {}
func (Element) isLoci()       {}
func (Link) isLoci()          {}
func (StructureWide) isLoci() {}

func (EmptyLoci) String() string { return string(KindEmpty) }
func (EveryLoci) String() string { return string(KindEvery) }

func (l Element) String() string {
	return fmt.Sprintf("%s(%s: %d elements)", KindElement, l.Structure.Label(), len(l.Indices))
}

func (l Link) String() string {
	return fmt.Sprintf("%s(%s: %d bonds)", KindLink, l.Structure.Label(), len(l.Bonds))
}

func (l StructureWide) String() string {
	return fmt.Sprintf("%s(%s)", KindStructure, l.Structure.Label())
}

// IsEmpty reports whether l is the Empty variant.
func IsEmpty(l Loci) bool {
	_, ok := l.(EmptyLoci)
	return ok
}

// AreEqual reports whether a and b are the same variant over the same
// structure instance with the same underlying set.
func AreEqual(a, b Loci) bool {
	switch a := a.(type) {
	case EmptyLoci:
		_, ok := b.(EmptyLoci)
		return ok
	case EveryLoci:
		_, ok := b.(EveryLoci)
		return ok
	case Element:
		b, ok := b.(Element)
		return ok && a.Structure == b.Structure && slices.Equal(a.Indices, b.Indices)
	case Link:
		b, ok := b.(Link)
		return ok && a.Structure == b.Structure && slices.Equal(a.Bonds, b.Bonds)
	case StructureWide:
		b, ok := b.(StructureWide)
		return ok && a.Structure == b.Structure
	default:
		return false
	}
}

// NewElement creates an Element region. Indices are copied, sorted and deduplicated.
func NewElement(s *structure.Structure, indices ...structure.ElementIndex) Element {
	return Element{Structure: s, Indices: normalizeIndices(indices)}
}

// NewLink creates a Link region over the given bonds.
func NewLink(s *structure.Structure, bonds ...structure.Bond) Link {
	return Link{Structure: s, Bonds: slices.Clone(bonds)}
}

// NewStructure creates a region covering all of s.
func NewStructure(s *structure.Structure) StructureWide {
	return StructureWide{Structure: s}
}
