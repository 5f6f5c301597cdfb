package loci

import (
	"slices"

	"github.com/cristianoliveira/molmark/internal/structure"
)

// Sorted-set helpers over element indices. Inputs must be sorted and unique.

func normalizeIndices(indices []structure.ElementIndex) []structure.ElementIndex {
	out := slices.Clone(indices)
	slices.Sort(out)
	return slices.Compact(out)
}

func union(a, b []structure.ElementIndex) []structure.ElementIndex {
	out := make([]structure.ElementIndex, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

func subtract(a, b []structure.ElementIndex) []structure.ElementIndex {
	out := make([]structure.ElementIndex, 0, len(a))
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j < len(b) && b[j] == x {
			continue
		}
		out = append(out, x)
	}
	return out
}

func isSubset(a, b []structure.ElementIndex) bool {
	j := 0
	for _, x := range a {
		for j < len(b) && b[j] < x {
			j++
		}
		if j == len(b) || b[j] != x {
			return false
		}
	}
	return true
}

func intersects(a, b []structure.ElementIndex) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			return true
		}
	}
	return false
}
